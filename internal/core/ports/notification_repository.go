package ports

import (
	"context"

	"freight/internal/core/domain/model/billing"
)

// NotificationRepository defines the persistence contract for queued
// outbound notifications.
type NotificationRepository interface {
	// Add persists a new notification request in pending status.
	Add(ctx context.Context, request *billing.NotificationRequest) error

	// Update persists dispatch status changes to an existing request.
	Update(ctx context.Context, request *billing.NotificationRequest) error

	// GetAllPending retrieves all requests awaiting dispatch, oldest first.
	GetAllPending(ctx context.Context) ([]*billing.NotificationRequest, error)
}
