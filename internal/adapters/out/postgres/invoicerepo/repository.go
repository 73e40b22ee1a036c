package invoicerepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// GormInvoiceRepository implements InvoiceRepository using GORM.
type GormInvoiceRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInvoiceRepository creates a new GORM invoice repository.
func NewGormInvoiceRepository(db *gorm.DB, tracker aggregateTracker) *GormInvoiceRepository {
	return &GormInvoiceRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new invoice together with its line items. A unique-key violation
// on the invoice number or on the (consolidation, client) pair surfaces as
// errs.ErrObjectAlreadyExists.
func (r *GormInvoiceRepository) Add(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewObjectAlreadyExistsErrorWithCause("invoice", aggregate.Number(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves status changes to an existing invoice. Line items are immutable
// after issuing and are never rewritten.
func (r *GormInvoiceRepository) Update(ctx context.Context, aggregate *billing.Invoice) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Update("status", int(aggregate.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("invoice", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an invoice by ID, including its line items.
func (r *GormInvoiceRepository) Get(ctx context.Context, id kernel.UUID) (*billing.Invoice, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InvoiceDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("invoice", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsForConsolidationAndClient reports whether a non-voided invoice already
// exists for the given consolidation and client. Bulk billing uses this to
// skip already billed clients on repeat runs.
func (r *GormInvoiceRepository) ExistsForConsolidationAndClient(
	ctx context.Context,
	consolidationID, clientID kernel.UUID,
) (bool, error) {
	if err := consolidationID.Validate(); err != nil {
		return false, err
	}
	if err := clientID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&InvoiceDTO{}).
		Where("consolidation_id = ? AND client_id = ? AND status <> ?",
			consolidationID.Bytes(), clientID.Bytes(), int(billing.InvoiceVoided)).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
