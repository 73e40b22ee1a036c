// Package notify provides outbound notification delivery adapters.
package notify

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/billing"
)

// LogNotifier is a Notifier that writes notifications to the structured log
// instead of an external messaging provider. It stands in for the email and
// WhatsApp gateways in environments where none is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs every dispatched message.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With("component", "log-notifier"),
	}
}

// Send logs the notification and reports success.
func (n *LogNotifier) Send(ctx context.Context, request *billing.NotificationRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "Notification dispatched",
		"notificationId", request.ID().String(),
		"clientId", request.Client().String(),
		"channel", request.Channel().String(),
		"subject", request.Subject(),
	)
	return nil
}
