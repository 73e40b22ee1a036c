package commands

import (
	"context"
	"log/slog"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/ports"
)

// DispatchNotificationsCommandHandler drains the pending notification queue.
// Each request is sent over its channel and marked sent or failed; a send
// failure never stops the rest of the batch.
type DispatchNotificationsCommandHandler struct {
	uowFactory NotificationUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates a handler for notification
// dispatch runs.
func NewDispatchNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger.With("component", "notification-dispatch"),
	}
}

// Handle processes one dispatch run. All status updates occur within a single
// transaction; the sends themselves are best-effort.
func (h *DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	notifRepo := uow.NotificationRepository()
	pending, err := notifRepo.GetAllPending(ctx)
	if err != nil {
		return err
	}

	for _, request := range pending {
		if err = h.dispatchRequest(ctx, notifRepo, request); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// dispatchRequest sends one request and records the outcome. Send errors are
// recorded as a failed dispatch, not returned.
func (h *DispatchNotificationsCommandHandler) dispatchRequest(
	ctx context.Context,
	notifRepo ports.NotificationRepository,
	request *billing.NotificationRequest,
) error {
	if sendErr := h.notifier.Send(ctx, request); sendErr != nil {
		h.logger.Warn("notification send failed",
			"notification_id", request.ID().String(),
			"channel", request.Channel().String(),
			"error", sendErr)

		if err := request.MarkFailed(); err != nil {
			return err
		}
		return notifRepo.Update(ctx, request)
	}

	if err := request.MarkSent(); err != nil {
		return err
	}
	return notifRepo.Update(ctx, request)
}
