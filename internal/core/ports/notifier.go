package ports

import (
	"context"

	"freight/internal/core/domain/model/billing"
)

// Notifier delivers a notification request over its channel. Implementations
// must not assume the request is persisted; dispatch status bookkeeping is
// the caller's concern.
type Notifier interface {
	Send(ctx context.Context, request *billing.NotificationRequest) error
}
