package parcel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
// It implements a forward-only state machine:
//
//	Received ──> InWarehouse ──> ReadyToConsolidate ──> Consolidated ──> InTransit ──> Delivered
//	    │              │                  │
//	    └──────────────┴──────────────────┘
//	      (any of the three may join a consolidation directly)
//
// Any non-terminal state may additionally move to Returned or Lost through a
// manual operation. Delivered, Returned, and Lost are terminal: no transition
// ever leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status assigned at intake.
	Received

	// InWarehouse indicates the parcel has been shelved at the origin warehouse.
	InWarehouse

	// ReadyToConsolidate indicates the parcel has been cleared to join a
	// master shipment.
	ReadyToConsolidate

	// Consolidated indicates the parcel belongs to a consolidation.
	// There is no transition back out of this state; only the cascade
	// moves the parcel forward.
	Consolidated

	// InTransit indicates the parcel's consolidation has left the origin country.
	InTransit

	// Delivered is terminal: the parcel reached its recipient.
	Delivered

	// Returned is terminal: the parcel was sent back to the shipper.
	Returned

	// Lost is terminal: the parcel could not be located.
	Lost
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Received:           "received",
		InWarehouse:        "in_warehouse",
		ReadyToConsolidate: "ready_to_consolidate",
		Consolidated:       "consolidated",
		InTransit:          "in_transit",
		Delivered:          "delivered",
		Returned:           "returned",
		Lost:               "lost",
	}
}

// getTransitions returns the closed set of legal forward transitions.
// Returned and Lost are reachable from every non-terminal state and are
// handled separately in CanTransitionTo.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Received:           {InWarehouse, ReadyToConsolidate, Consolidated},
		InWarehouse:        {ReadyToConsolidate, Consolidated},
		ReadyToConsolidate: {Consolidated},
		Consolidated:       {InTransit},
		InTransit:          {Delivered},
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition may ever leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Lost
}

// CanTransitionTo reports whether moving from s to target is legal.
// Returned and Lost are reachable from any non-terminal state; everything
// else follows the forward graph.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == Returned || target == Lost {
		return true
	}
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Join transitions the status to Consolidated.
// Valid only from Received, InWarehouse, or ReadyToConsolidate.
func (s Status) Join() (Status, error) {
	if !s.CanTransitionTo(Consolidated) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to join a consolidation", s.String()),
		)
	}
	return Consolidated, nil
}
