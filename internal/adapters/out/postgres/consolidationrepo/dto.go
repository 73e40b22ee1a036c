// Package consolidationrepo provides data transfer objects and mapping functions
// for consolidation persistence. This package implements the repository pattern
// for the consolidation domain aggregate, handling the conversion between domain
// entities and database representations.
package consolidationrepo

import (
	"time"

	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ConsolidationDTO represents the database structure for persisting consolidation
// aggregates. The version column backs the optimistic concurrency check in Update.
type ConsolidationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code           string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	OriginID       uuid.UUID `gorm:"type:uuid;not null;index"`
	DestinationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         int       `gorm:"type:int;not null;index"`
	TotalWeightLbs float64   `gorm:"type:numeric(10,2);not null"`
	Version        int       `gorm:"type:int;not null"`
	CreatedAt      time.Time
	Parcels        []ConsolidationParcelDTO `gorm:"foreignKey:ConsolidationID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for consolidation entities.
// Overrides GORM's default naming convention to use "consolidations".
func (ConsolidationDTO) TableName() string {
	return "consolidations"
}

// ConsolidationParcelDTO represents one row of the fixed parcel membership.
// Membership is written once at creation and never modified afterwards.
type ConsolidationParcelDTO struct {
	ConsolidationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID        uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName specifies the database table name for consolidation membership rows.
func (ConsolidationParcelDTO) TableName() string {
	return "consolidation_parcels"
}

// ConsolidationEventDTO represents one append-only audit record of a
// consolidation. The raw label text is stored next to the parsed label so the
// trail preserves exactly what the operator recorded.
type ConsolidationEventDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConsolidationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Label           int       `gorm:"type:int;not null"`
	LabelText       string    `gorm:"type:varchar(64);not null"`
	City            string    `gorm:"type:varchar(255)"`
	Comment         string    `gorm:"type:text"`
	NotifyEmail     bool      `gorm:"not null"`
	NotifyWhatsapp  bool      `gorm:"not null"`
	Actor           string    `gorm:"type:varchar(255);not null"`
	EventDate       time.Time `gorm:"index"`
}

// TableName specifies the database table name for consolidation audit events.
func (ConsolidationEventDTO) TableName() string {
	return "consolidation_events"
}

// fromDomain converts a consolidation domain aggregate to its database
// representation, including the membership rows.
func fromDomain(cons *consolidation.Consolidation) ConsolidationDTO {
	consID := cons.ID().Bytes()
	parcelIDs := cons.ParcelIDs()

	parcels := make([]ConsolidationParcelDTO, 0, len(parcelIDs))
	for _, id := range parcelIDs {
		parcels = append(parcels, ConsolidationParcelDTO{
			ConsolidationID: consID,
			ParcelID:        id.Bytes(),
		})
	}

	return ConsolidationDTO{
		ID:             consID,
		Code:           cons.Code(),
		OriginID:       cons.Origin().Bytes(),
		DestinationID:  cons.Destination().Bytes(),
		Status:         int(cons.Status()),
		TotalWeightLbs: cons.TotalWeight().Pounds(),
		Version:        cons.Version(),
		CreatedAt:      cons.CreatedAt(),
		Parcels:        parcels,
	}
}

// toDomain converts a database DTO to a consolidation domain aggregate.
// Reconstructs the complete aggregate including membership using
// RestoreConsolidation.
func toDomain(dto ConsolidationDTO) (*consolidation.Consolidation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originID, err := kernel.UUIDFromBytes(dto.OriginID[:])
	if err != nil {
		return nil, err
	}

	destinationID, err := kernel.UUIDFromBytes(dto.DestinationID[:])
	if err != nil {
		return nil, err
	}

	totalWeight, err := kernel.NewWeight(dto.TotalWeightLbs)
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.Parcels))
	for _, row := range dto.Parcels {
		parcelID, rowErr := kernel.UUIDFromBytes(row.ParcelID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		parcelIDs = append(parcelIDs, parcelID)
	}

	return consolidation.RestoreConsolidation(
		id,
		dto.Code,
		originID,
		destinationID,
		parcelIDs,
		totalWeight,
		consolidation.Status(dto.Status),
		dto.Version,
		dto.CreatedAt,
	)
}

// eventFromDomain converts a consolidation audit event to its database representation.
func eventFromDomain(e *consolidation.Event) ConsolidationEventDTO {
	return ConsolidationEventDTO{
		ID:              e.ID().Bytes(),
		ConsolidationID: e.ConsolidationID().Bytes(),
		Label:           int(e.Label()),
		LabelText:       e.LabelText(),
		City:            e.City(),
		Comment:         e.Comment(),
		NotifyEmail:     e.Notify().Email,
		NotifyWhatsapp:  e.Notify().WhatsApp,
		Actor:           e.Actor(),
		EventDate:       e.EventDate(),
	}
}

// eventToDomain converts an event DTO back to the domain form, keeping the
// stored raw label text.
func eventToDomain(dto ConsolidationEventDTO) (*consolidation.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	consID, err := kernel.UUIDFromBytes(dto.ConsolidationID[:])
	if err != nil {
		return nil, err
	}

	return consolidation.RestoreEvent(
		id,
		consID,
		consolidation.StatusLabel(dto.Label),
		dto.LabelText,
		dto.City,
		dto.Comment,
		consolidation.NotifyPolicy{Email: dto.NotifyEmail, WhatsApp: dto.NotifyWhatsapp},
		dto.Actor,
		dto.EventDate,
	)
}
