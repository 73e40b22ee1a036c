// Package ports defines repository interfaces for the freight domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates
// and their audit events.
type ParcelRepository interface {
	// Add persists a new parcel aggregate to storage.
	// The parcel must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate.
	// The parcel must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByIDs retrieves parcels for the given identifiers. Every requested
	// parcel must exist; a missing ID is an error, not a shorter result.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// AddEvent appends an audit event to a parcel's history. Events are
	// append-only and are recorded even when the parcel's status does not
	// change.
	AddEvent(ctx context.Context, event *parcel.Event) error
}
