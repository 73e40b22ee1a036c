package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

// DispatchNotificationsCommand triggers dispatch of all pending notification
// requests. This batch operation sends each queued message over its channel
// and records the result.
//
// Example:
//
//	cmd := NewDispatchNotificationsCommand()
//	handler := NewDispatchNotificationsCommandHandler(uowFactory, notifier, logger)
//
//	// Run periodically from a scheduler
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("notification dispatch failed: %v", err)
//	}
type DispatchNotificationsCommand struct {
	guard guard.ConstructorGuard
}

var ErrDispatchNotificationsCommandIsNotConstructed = errors.New(
	"DispatchNotificationsCommand must be created via NewDispatchNotificationsCommand constructor",
)

// NewDispatchNotificationsCommand creates a command to drain the pending
// notification queue. This is a parameterless command.
func NewDispatchNotificationsCommand() DispatchNotificationsCommand {
	command := DispatchNotificationsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchNotificationsCommandIsNotConstructed if validation fails.
func (c *DispatchNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchNotificationsCommandIsNotConstructed)
}
