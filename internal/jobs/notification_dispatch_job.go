package jobs

import (
	"context"
	"log/slog"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotificationDispatchJob periodically drains the pending notification queue.
// Billing enqueues requests after its transaction commits; this job is the
// only component that actually talks to the messaging side.
type NotificationDispatchJob struct {
	handler  commands.DispatchNotificationsCommandHandler
	cron     *cron.Cron
	cronSpec string
	logger   *slog.Logger
}

// NewNotificationDispatchJob creates a job that dispatches queued
// notifications on the given cron schedule.
func NewNotificationDispatchJob(
	handler commands.DispatchNotificationsCommandHandler,
	cronSpec string,
	logger *slog.Logger,
) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		cronSpec: cronSpec,
		logger:   logger.With("component", "notification_dispatch_job"),
	}
}

// Start begins the notification dispatch job on its schedule.
func (j *NotificationDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.cronSpec, func() {
		ctx := context.Background()
		cmd := commands.NewDispatchNotificationsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "schedule", j.cronSpec)
	return nil
}

// Stop stops the notification dispatch job.
func (j *NotificationDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}
