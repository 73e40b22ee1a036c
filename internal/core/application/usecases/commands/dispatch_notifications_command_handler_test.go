package commands_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingRequest(t *testing.T) *billing.NotificationRequest {
	t.Helper()

	request, err := billing.NewNotificationRequest(
		kernel.NewUUID(), kernel.NewUUID(), billing.ChannelEmail,
		"Your shipment has been billed", "An invoice was issued.", time.Now().UTC(),
	)
	require.NoError(t, err)
	return request
}

func TestDispatchNotificationsCommandHandler_Handle_SendsPending(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchNotificationsCommand()

	r1 := pendingRequest(t)
	r2 := pendingRequest(t)

	notifRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notifRepo).Once(),
		notifRepo.On("GetAllPending", mock.Anything).
			Return([]*billing.NotificationRequest{r1, r2}, nil).Once(),
		notifier.On("Send", mock.Anything, r1).Return(nil).Once(),
		notifRepo.On("Update", mock.Anything, r1).Return(nil).Once(),
		notifier.On("Send", mock.Anything, r2).Return(errors.New("smtp unreachable")).Once(),
		notifRepo.On("Update", mock.Anything, r2).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchNotificationsCommandHandler(factory, notifier, slog.Default())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, billing.NotificationSent, r1.Status())
	assert.Equal(t, billing.NotificationFailed, r2.Status())
	notifRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDispatchNotificationsCommandHandler_Handle_EmptyQueue(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchNotificationsCommand()

	notifRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notifRepo).Once(),
		notifRepo.On("GetAllPending", mock.Anything).
			Return([]*billing.NotificationRequest{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchNotificationsCommandHandler(factory, notifier, slog.Default())
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatchNotificationsCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewDispatchNotificationsCommand()

	r := pendingRequest(t)

	notifRepo := new(MockNotificationRepository)
	notifier := new(MockNotifier)
	uow := new(MockNotificationUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(notifRepo).Once(),
		notifRepo.On("GetAllPending", mock.Anything).
			Return([]*billing.NotificationRequest{r}, nil).Once(),
		notifier.On("Send", mock.Anything, r).Return(nil).Once(),
		notifRepo.On("Update", mock.Anything, r).Return(errors.New("update error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockNotificationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDispatchNotificationsCommandHandler(factory, notifier, slog.Default())
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
