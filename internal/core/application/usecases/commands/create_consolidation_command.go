package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrCreateConsolidationCommandIsNotConstructed = errors.New(
		"CreateConsolidationCommand must be created via NewCreateConsolidationCommand constructor",
	)
	ErrConsolidationCodeIsRequired = errors.New("consolidation code is required")
	ErrParcelSelectionIsEmpty      = errors.New("parcel selection must not be empty")
)

// CreateConsolidationCommand represents a request to group parcels into a new
// master shipment. The parcel selection is fixed at creation time.
//
// Example:
//
//	consolidationID := kernel.NewUUID()
//	cmd, err := NewCreateConsolidationCommand(
//	    consolidationID, "MIA-TGU-0142", originID, destinationID,
//	    parcelIDs, "ops@example.com", time.Now().UTC(),
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid consolidation data: %w", err)
//	}
//
//	handler := NewCreateConsolidationCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create consolidation: %w", err)
//	}
type CreateConsolidationCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	code            string
	originID        kernel.UUID
	destinationID   kernel.UUID
	parcelIDs       []kernel.UUID
	actor           string
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewCreateConsolidationCommand creates a command to open a new consolidation.
// Validates that all identifiers are set, the code is not empty and at least
// one parcel is selected.
func NewCreateConsolidationCommand(
	consolidationID kernel.UUID,
	code string,
	originID kernel.UUID,
	destinationID kernel.UUID,
	parcelIDs []kernel.UUID,
	actor string,
	createdAt time.Time,
) (CreateConsolidationCommand, error) {
	command := CreateConsolidationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setConsolidationID(consolidationID),
		command.setCode(code),
		command.setRoute(originID, destinationID),
		command.setParcelIDs(parcelIDs),
		command.setActor(actor),
		command.setCreatedAt(createdAt),
	); err != nil {
		return CreateConsolidationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateConsolidationCommandIsNotConstructed if validation fails.
func (c CreateConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsolidationCommandIsNotConstructed)
}

// ConsolidationID returns the unique identifier for the new consolidation.
func (c CreateConsolidationCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// Code returns the human-facing consolidation code.
func (c CreateConsolidationCommand) Code() string {
	return c.code
}

// OriginID returns the origin warehouse identifier.
func (c CreateConsolidationCommand) OriginID() kernel.UUID {
	return c.originID
}

// DestinationID returns the destination zone identifier.
func (c CreateConsolidationCommand) DestinationID() kernel.UUID {
	return c.destinationID
}

// ParcelIDs returns a copy of the selected parcel identifiers.
func (c CreateConsolidationCommand) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.parcelIDs))
	copy(ids, c.parcelIDs)
	return ids
}

// Actor returns who requested the consolidation.
func (c CreateConsolidationCommand) Actor() string {
	return c.actor
}

// CreatedAt returns the creation timestamp.
func (c CreateConsolidationCommand) CreatedAt() time.Time {
	return c.createdAt
}

func (c *CreateConsolidationCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *CreateConsolidationCommand) setCode(code string) error {
	if code == "" {
		return ErrConsolidationCodeIsRequired
	}

	c.code = code
	return nil
}

func (c *CreateConsolidationCommand) setRoute(originID, destinationID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originId", err)
	}
	if err := destinationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destinationId", err)
	}

	c.originID = originID
	c.destinationID = destinationID
	return nil
}

func (c *CreateConsolidationCommand) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return ErrParcelSelectionIsEmpty
	}
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("parcelId", err)
		}
	}

	c.parcelIDs = make([]kernel.UUID, len(parcelIDs))
	copy(c.parcelIDs, parcelIDs)
	return nil
}

func (c *CreateConsolidationCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *CreateConsolidationCommand) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}

	c.createdAt = createdAt
	return nil
}
