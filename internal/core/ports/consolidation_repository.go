package ports

import (
	"context"

	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
)

// ConsolidationRepository defines the persistence contract for consolidation
// aggregates, their membership and their audit events.
type ConsolidationRepository interface {
	// Add persists a new consolidation aggregate together with its parcel
	// membership.
	Add(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Update persists changes to an existing consolidation aggregate using
	// optimistic concurrency: the row's stored version must be exactly one
	// below the aggregate's. Returns errs.ErrVersionIsInvalid on a stale
	// aggregate.
	Update(ctx context.Context, aggregate *consolidation.Consolidation) error

	// Get retrieves a consolidation aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error)

	// GetForUpdate retrieves a consolidation and locks its row for the
	// duration of the current transaction, serializing concurrent status
	// advances and billing runs over the same consolidation.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error)

	// AddEvent appends an audit event to a consolidation's history. Events
	// are append-only and are recorded for every advance, including ones
	// that leave the status unchanged.
	AddEvent(ctx context.Context, event *consolidation.Event) error

	// GetEvents retrieves a consolidation's audit events ordered by event
	// date, oldest first.
	GetEvents(ctx context.Context, consolidationID kernel.UUID) ([]*consolidation.Event, error)
}
