package ports

import (
	"context"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
)

// InvoiceRepository defines the persistence contract for invoice aggregates.
type InvoiceRepository interface {
	// Add persists a new invoice together with its line items. The storage
	// enforces uniqueness of (consolidation, client) for batch-billed
	// invoices; a duplicate surfaces as errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *billing.Invoice) error

	// Update persists status changes to an existing invoice.
	Update(ctx context.Context, aggregate *billing.Invoice) error

	// Get retrieves an invoice aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error)

	// ExistsForConsolidationAndClient reports whether a non-voided invoice
	// already exists for the given consolidation and client. Used to make
	// bulk billing idempotent.
	ExistsForConsolidationAndClient(ctx context.Context, consolidationID, clientID kernel.UUID) (bool, error)
}
