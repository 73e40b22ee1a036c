package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGenerateBulkInvoicesCommandIsNotConstructed = errors.New(
	"GenerateBulkInvoicesCommand must be created via NewGenerateBulkInvoicesCommand constructor",
)

// GenerateBulkInvoicesCommand represents a request to bill every client with
// parcels in a consolidation. The run is idempotent per (consolidation,
// client): repeated runs never produce duplicate invoices.
//
// Example:
//
//	cmd, err := NewGenerateBulkInvoicesCommand(consolidationID, time.Now().UTC())
//	if err != nil {
//	    return fmt.Errorf("invalid billing request: %w", err)
//	}
//
//	handler := NewGenerateBulkInvoicesCommandHandler(uowFactory, "USD", logger)
//	outcomes, err := handler.Handle(ctx, cmd)
type GenerateBulkInvoicesCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	issuedAt        time.Time

	guard guard.ConstructorGuard
}

// NewGenerateBulkInvoicesCommand creates a command to run bulk billing over
// one consolidation.
func NewGenerateBulkInvoicesCommand(
	consolidationID kernel.UUID,
	issuedAt time.Time,
) (GenerateBulkInvoicesCommand, error) {
	command := GenerateBulkInvoicesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setConsolidationID(consolidationID),
		command.setIssuedAt(issuedAt),
	); err != nil {
		return GenerateBulkInvoicesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrGenerateBulkInvoicesCommandIsNotConstructed if validation fails.
func (c GenerateBulkInvoicesCommand) Validate() error {
	return c.guard.Validate(ErrGenerateBulkInvoicesCommandIsNotConstructed)
}

// ConsolidationID returns the consolidation to bill.
func (c GenerateBulkInvoicesCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// IssuedAt returns the issue timestamp for the generated invoices.
func (c GenerateBulkInvoicesCommand) IssuedAt() time.Time {
	return c.issuedAt
}

func (c *GenerateBulkInvoicesCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *GenerateBulkInvoicesCommand) setIssuedAt(issuedAt time.Time) error {
	if issuedAt.IsZero() {
		return errs.NewValueIsRequiredError("issuedAt")
	}

	c.issuedAt = issuedAt
	return nil
}
