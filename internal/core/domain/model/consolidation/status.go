package consolidation

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the lifecycle state of a consolidation:
//
//	Open ──> InTransit ──> Delivered
//
// The state is driven entirely by the status-label projection in
// StatusLabel.ConsolidationStatus; no other code path mutates it.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusOpen is the initial status: the consolidation is being built
	// at the origin warehouse.
	StatusOpen

	// StatusInTransit indicates the master shipment has left the origin.
	// All customs and intermediate labels coerce the consolidation here.
	StatusInTransit

	// StatusDelivered indicates the master shipment reached its destination zone.
	StatusDelivered

	// StatusClosed is declared for compatibility with the persisted schema
	// but is produced by no code path; no label projects onto it.
	StatusClosed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusOpen:      "open",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusClosed:    "closed",
	}
}

// Validate checks if the Status value is one of the declared states.
// StatusClosed is accepted here because historical rows may carry it,
// even though nothing writes it anymore.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
