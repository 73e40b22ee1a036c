package consolidationrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConsolidationRepository implements ConsolidationRepository using GORM.
type GormConsolidationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsolidationRepository creates a new GORM consolidation repository.
func NewGormConsolidationRepository(db *gorm.DB, tracker aggregateTracker) *GormConsolidationRepository {
	return &GormConsolidationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consolidation together with its membership rows.
func (r *GormConsolidationRepository) Add(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status changes of an existing consolidation using optimistic
// concurrency: the row's stored version must be exactly one below the
// aggregate's. A stale aggregate or a missing row surfaces as
// errs.ErrVersionIsInvalid. Membership is immutable and is never rewritten.
func (r *GormConsolidationRepository) Update(ctx context.Context, aggregate *consolidation.Consolidation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ConsolidationDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version-1).
		Updates(map[string]any{
			"status":  dto.Status,
			"version": dto.Version,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("consolidation " + aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consolidation by ID, including its parcel membership.
func (r *GormConsolidationRepository) Get(ctx context.Context, id kernel.UUID) (*consolidation.Consolidation, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate retrieves a consolidation and locks its row for the duration of
// the current transaction. Concurrent status advances and billing runs over
// the same consolidation queue up behind the lock.
func (r *GormConsolidationRepository) GetForUpdate(
	ctx context.Context,
	id kernel.UUID,
) (*consolidation.Consolidation, error) {
	return r.get(ctx, id, true)
}

func (r *GormConsolidationRepository) get(
	ctx context.Context,
	id kernel.UUID,
	forUpdate bool,
) (*consolidation.Consolidation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	tx := r.db.WithContext(ctx)
	if forUpdate {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "consolidations"}})
	}

	var dto ConsolidationDTO
	if err := tx.Preload("Parcels").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("consolidation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// AddEvent appends an audit event to a consolidation's history.
func (r *GormConsolidationRepository) AddEvent(ctx context.Context, event *consolidation.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetEvents retrieves a consolidation's audit events ordered by event date,
// oldest first.
func (r *GormConsolidationRepository) GetEvents(
	ctx context.Context,
	consolidationID kernel.UUID,
) ([]*consolidation.Event, error) {
	if err := consolidationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ConsolidationEventDTO
	if err := r.db.WithContext(ctx).
		Order("event_date, id").
		Find(&dtos, "consolidation_id = ?", consolidationID.Bytes()).Error; err != nil {
		return nil, err
	}

	events := make([]*consolidation.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := eventToDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, nil
}
