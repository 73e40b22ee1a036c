package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAdvanceConsolidationStatusCommandIsNotConstructed = errors.New(
	"AdvanceConsolidationStatusCommand must be created via NewAdvanceConsolidationStatusCommand constructor",
)

// AdvanceConsolidationStatusCommand represents one status update of a master
// shipment. The label text is parsed into a known status label and also
// retained verbatim for the audit trail.
//
// Example:
//
//	cmd, err := NewAdvanceConsolidationStatusCommand(
//	    consolidationID, "At customs", "Miami", "awaiting clearance",
//	    true, false, "ops@example.com", time.Now().UTC(),
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid status update: %w", err)
//	}
//
//	handler := NewAdvanceConsolidationStatusCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update failed: %w", err)
//	}
type AdvanceConsolidationStatusCommand struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID
	label           consolidation.StatusLabel
	labelText       string
	city            string
	comment         string
	notify          consolidation.NotifyPolicy
	actor           string
	eventDate       time.Time

	guard guard.ConstructorGuard
}

// NewAdvanceConsolidationStatusCommand creates a command to record a status
// update. The label text must parse into one of the known status labels;
// city and comment are optional.
func NewAdvanceConsolidationStatusCommand(
	consolidationID kernel.UUID,
	labelText string,
	city string,
	comment string,
	notifyEmail bool,
	notifyWhatsApp bool,
	actor string,
	eventDate time.Time,
) (AdvanceConsolidationStatusCommand, error) {
	command := AdvanceConsolidationStatusCommand{
		city:    city,
		comment: comment,
		notify: consolidation.NotifyPolicy{
			Email:    notifyEmail,
			WhatsApp: notifyWhatsApp,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setConsolidationID(consolidationID),
		command.setLabel(labelText),
		command.setActor(actor),
		command.setEventDate(eventDate),
	); err != nil {
		return AdvanceConsolidationStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAdvanceConsolidationStatusCommandIsNotConstructed if validation fails.
func (c AdvanceConsolidationStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceConsolidationStatusCommandIsNotConstructed)
}

// ConsolidationID returns the consolidation to update.
func (c AdvanceConsolidationStatusCommand) ConsolidationID() kernel.UUID {
	return c.consolidationID
}

// Label returns the parsed status label.
func (c AdvanceConsolidationStatusCommand) Label() consolidation.StatusLabel {
	return c.label
}

// LabelText returns the raw label text as recorded by the operator.
func (c AdvanceConsolidationStatusCommand) LabelText() string {
	return c.labelText
}

// City returns the optional city where the update happened.
func (c AdvanceConsolidationStatusCommand) City() string {
	return c.city
}

// Comment returns the optional operator comment.
func (c AdvanceConsolidationStatusCommand) Comment() string {
	return c.comment
}

// Notify returns the per-channel notification flags.
func (c AdvanceConsolidationStatusCommand) Notify() consolidation.NotifyPolicy {
	return c.notify
}

// Actor returns who recorded the update.
func (c AdvanceConsolidationStatusCommand) Actor() string {
	return c.actor
}

// EventDate returns when the update was recorded.
func (c AdvanceConsolidationStatusCommand) EventDate() time.Time {
	return c.eventDate
}

func (c *AdvanceConsolidationStatusCommand) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return err
	}

	c.consolidationID = consolidationID
	return nil
}

func (c *AdvanceConsolidationStatusCommand) setLabel(labelText string) error {
	label, err := consolidation.ParseLabel(labelText)
	if err != nil {
		return err
	}

	c.label = label
	c.labelText = labelText
	return nil
}

func (c *AdvanceConsolidationStatusCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}

func (c *AdvanceConsolidationStatusCommand) setEventDate(eventDate time.Time) error {
	if eventDate.IsZero() {
		return errs.NewValueIsRequiredError("eventDate")
	}

	c.eventDate = eventDate
	return nil
}
