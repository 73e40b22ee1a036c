package notificationrepo

import (
	"context"

	"freight/internal/core/domain/model/billing"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Add persists a new notification request.
func (r *GormNotificationRepository) Add(ctx context.Context, request *billing.NotificationRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := fromDomain(request)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists dispatch status changes to an existing request.
func (r *GormNotificationRepository) Update(ctx context.Context, request *billing.NotificationRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", request.ID().Bytes()).
		Update("status", int(request.Status()))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", request.ID().String())
	}

	return nil
}

// GetAllPending retrieves all requests awaiting dispatch, oldest first.
func (r *GormNotificationRepository) GetAllPending(ctx context.Context) ([]*billing.NotificationRequest, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", int(billing.NotificationPending)).Error; err != nil {
		return nil, err
	}

	requests := make([]*billing.NotificationRequest, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		requests = append(requests, n)
	}

	return requests, nil
}
