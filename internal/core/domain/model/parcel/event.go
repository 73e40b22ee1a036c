package parcel

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event was not created via NewEvent.
var ErrEventIsNotConstructed = errors.New("parcel Event must be created via NewEvent constructor")

// Event is one append-only audit record for a parcel. One event is written for
// every master-shipment update that reaches the parcel, even when the parcel's
// own status does not change. Events are never mutated or deleted.
type Event struct {
	id         kernel.UUID
	parcelID   kernel.UUID
	fromLabel  string
	toLabel    string
	actor      string
	note       string
	occurredAt time.Time

	isConstructed bool
}

// NewEvent creates a parcel audit event. The note is free text and usually
// references the consolidation event that triggered the cascade.
func NewEvent(
	id kernel.UUID,
	parcelID kernel.UUID,
	fromLabel string,
	toLabel string,
	actor string,
	note string,
	occurredAt time.Time,
) (*Event, error) {
	e := &Event{isConstructed: true}

	if err := errors.Join(
		e.setID(id),
		e.setParcelID(parcelID),
		e.setLabels(fromLabel, toLabel),
		e.setActor(actor),
		e.setOccurredAt(occurredAt),
	); err != nil {
		return nil, err
	}

	e.note = note
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

// ParcelID returns the parcel the event belongs to.
func (e *Event) ParcelID() kernel.UUID { return e.parcelID }

// FromLabel returns the parcel status label before the update.
func (e *Event) FromLabel() string { return e.fromLabel }

// ToLabel returns the parcel status label after the update.
func (e *Event) ToLabel() string { return e.toLabel }

// Actor returns who performed the triggering operation.
func (e *Event) Actor() string { return e.actor }

// Note returns the free-text note attached to the event.
func (e *Event) Note() string { return e.note }

// OccurredAt returns when the event was recorded.
func (e *Event) OccurredAt() time.Time { return e.occurredAt }

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("parcelId", err)
	}
	e.parcelID = parcelID
	return nil
}

func (e *Event) setLabels(fromLabel, toLabel string) error {
	if fromLabel == "" || toLabel == "" {
		return errs.NewValueIsRequiredError("event labels")
	}
	e.fromLabel = fromLabel
	e.toLabel = toLabel
	return nil
}

func (e *Event) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}

func (e *Event) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	e.occurredAt = occurredAt
	return nil
}
