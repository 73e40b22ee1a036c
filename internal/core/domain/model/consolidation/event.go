package consolidation

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event was not created via NewEvent.
var ErrEventIsNotConstructed = errors.New(
	"consolidation Event must be created via NewEvent constructor")

// NotifyPolicy carries the per-channel notification flags chosen by the
// operator when recording a status update. The flags are audit data; the
// actual dispatch happens elsewhere and is best-effort.
type NotifyPolicy struct {
	Email    bool
	WhatsApp bool
}

// Event is one append-only audit record for a consolidation. Exactly one is
// written for every status update, before any other write of the cascade.
// Events are never mutated or deleted.
//
// The raw label text is retained next to the parsed label so the audit trail
// preserves exactly what the operator recorded.
type Event struct {
	id              kernel.UUID
	consolidationID kernel.UUID
	label           StatusLabel
	labelText       string
	city            string
	comment         string
	notify          NotifyPolicy
	actor           string
	eventDate       time.Time

	isConstructed bool
}

// NewEvent creates a consolidation audit event. Label, actor, and event date
// are required; city and comment are optional.
func NewEvent(
	id kernel.UUID,
	consolidationID kernel.UUID,
	label StatusLabel,
	city string,
	comment string,
	notify NotifyPolicy,
	actor string,
	eventDate time.Time,
) (*Event, error) {
	e := &Event{
		notify:        notify,
		city:          city,
		comment:       comment,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setConsolidationID(consolidationID),
		e.setLabel(label),
		e.setActor(actor),
		e.setEventDate(eventDate),
	); err != nil {
		return nil, err
	}

	return e, nil
}

// RestoreEvent reconstructs an event from persistence, keeping the stored
// raw label text even if it differs from the label's current display form.
func RestoreEvent(
	id kernel.UUID,
	consolidationID kernel.UUID,
	label StatusLabel,
	labelText string,
	city string,
	comment string,
	notify NotifyPolicy,
	actor string,
	eventDate time.Time,
) (*Event, error) {
	e, err := NewEvent(id, consolidationID, label, city, comment, notify, actor, eventDate)
	if err != nil {
		return nil, err
	}
	if labelText != "" {
		e.labelText = labelText
	}
	return e, nil
}

// Validate ensures the Event was created via NewEvent.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's unique identifier.
func (e *Event) ID() kernel.UUID { return e.id }

// ConsolidationID returns the consolidation the event belongs to.
func (e *Event) ConsolidationID() kernel.UUID { return e.consolidationID }

// Label returns the parsed status label.
func (e *Event) Label() StatusLabel { return e.label }

// LabelText returns the raw display text recorded with the event.
func (e *Event) LabelText() string { return e.labelText }

// City returns the optional city where the update happened.
func (e *Event) City() string { return e.city }

// Comment returns the optional operator comment.
func (e *Event) Comment() string { return e.comment }

// Notify returns the per-channel notification flags.
func (e *Event) Notify() NotifyPolicy { return e.notify }

// Actor returns who recorded the update.
func (e *Event) Actor() string { return e.actor }

// EventDate returns when the update was recorded.
func (e *Event) EventDate() time.Time { return e.eventDate }

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("consolidationId", err)
	}
	e.consolidationID = consolidationID
	return nil
}

func (e *Event) setLabel(label StatusLabel) error {
	if err := label.Validate(); err != nil {
		return err
	}
	e.label = label
	e.labelText = label.String()
	return nil
}

func (e *Event) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}

func (e *Event) setEventDate(eventDate time.Time) error {
	if eventDate.IsZero() {
		return errs.NewValueIsRequiredError("eventDate")
	}
	e.eventDate = eventDate
	return nil
}
