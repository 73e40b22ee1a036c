// Package invoicerepo provides data transfer objects and mapping functions for
// invoice persistence. This package implements the repository pattern for the
// billing invoice aggregate, handling the conversion between domain entities
// and database representations.
package invoicerepo

import (
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InvoiceDTO represents the database structure for persisting invoice aggregates.
//
// The partial unique index on (consolidation_id, client_id) is the final
// arbiter of bulk-billing idempotency: a concurrent run that slips past the
// application-level exists check hits the index instead. Voided invoices
// (status 3) are excluded so a voided batch invoice can be reissued.
type InvoiceDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number          string     `gorm:"type:varchar(64);not null;uniqueIndex"`
	ClientID        *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_invoices_consolidation_client,where:status <> 3"`
	PayerName       string     `gorm:"type:varchar(255)"`
	PayerTaxID      string     `gorm:"type:varchar(64)"`
	ConsolidationID *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_invoices_consolidation_client"`
	Subtotal        float64    `gorm:"type:numeric(12,2);not null"`
	Total           float64    `gorm:"type:numeric(12,2);not null"`
	Currency        string     `gorm:"type:varchar(3);not null"`
	Status          int        `gorm:"type:int;not null;index"`
	IssuedAt        time.Time
	Lines           []InvoiceLineDTO `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for invoice entities.
// Overrides GORM's default naming convention to use "invoices".
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// InvoiceLineDTO represents one billed position of an invoice.
type InvoiceLineDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:varchar(255);not null"`
	Quantity    int       `gorm:"type:int;not null"`
	UnitPrice   float64   `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for invoice line items.
func (InvoiceLineDTO) TableName() string {
	return "invoice_lines"
}

// fromDomain converts an invoice domain aggregate to its database representation.
func fromDomain(inv *billing.Invoice) InvoiceDTO {
	invID := inv.ID().Bytes()

	var clientID *uuid.UUID
	if id := inv.Client(); id != nil {
		raw := id.Bytes()
		clientID = &raw
	}

	var consolidationID *uuid.UUID
	if id := inv.Consolidation(); id != nil {
		raw := id.Bytes()
		consolidationID = &raw
	}

	domainLines := inv.Lines()
	lines := make([]InvoiceLineDTO, 0, len(domainLines))
	for _, li := range domainLines {
		lines = append(lines, InvoiceLineDTO{
			InvoiceID:   invID,
			Description: li.Description(),
			Quantity:    li.Quantity(),
			UnitPrice:   li.UnitPrice(),
		})
	}

	return InvoiceDTO{
		ID:              invID,
		Number:          inv.Number(),
		ClientID:        clientID,
		PayerName:       inv.PayerName(),
		PayerTaxID:      inv.PayerTaxID(),
		ConsolidationID: consolidationID,
		Subtotal:        inv.Subtotal(),
		Total:           inv.Total(),
		Currency:        inv.Currency(),
		Status:          int(inv.Status()),
		IssuedAt:        inv.IssuedAt(),
		Lines:           lines,
	}
}

// toDomain converts a database DTO to an invoice domain aggregate.
// Totals are recomputed from the line items by the domain constructor, which
// keeps the total-equals-sum-of-lines invariant authoritative.
func toDomain(dto InvoiceDTO) (*billing.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var clientID *kernel.UUID
	if dto.ClientID != nil {
		cID, clientErr := kernel.UUIDFromBytes((*dto.ClientID)[:])
		if clientErr != nil {
			return nil, clientErr
		}
		clientID = &cID
	}

	var consolidationID *kernel.UUID
	if dto.ConsolidationID != nil {
		consID, consErr := kernel.UUIDFromBytes((*dto.ConsolidationID)[:])
		if consErr != nil {
			return nil, consErr
		}
		consolidationID = &consID
	}

	lines := make([]billing.LineItem, 0, len(dto.Lines))
	for _, row := range dto.Lines {
		li, lineErr := billing.NewLineItem(row.Description, row.Quantity, row.UnitPrice)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, li)
	}

	return billing.RestoreInvoice(
		id,
		dto.Number,
		clientID,
		dto.PayerName,
		dto.PayerTaxID,
		consolidationID,
		lines,
		dto.Currency,
		billing.InvoiceStatus(dto.Status),
		dto.IssuedAt,
	)
}
