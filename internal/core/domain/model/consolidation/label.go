package consolidation

import (
	"fmt"
	"strings"

	"freight/internal/core/domain/model/parcel"
	"freight/internal/pkg/errs"
)

// StatusLabel is one of the nine operator-facing status labels recorded on a
// consolidation event. Labels are richer than the three-value Status: most of
// them describe intermediate customs or handling milestones.
//
// Each label projects twice:
//   - ConsolidationStatus maps the label onto the master-shipment status.
//     Every label that is neither LabelOpened nor LabelDelivered coerces the
//     consolidation into StatusInTransit. That fallback is policy, not an
//     error: a shipment "at customs" or under "alert" is still in transit.
//   - ParcelTarget maps the label onto the member parcels' target status.
//     This map is coarser: informational labels (alert, insured, mobile
//     update) leave the parcels' own status untouched.
type StatusLabel int

const (
	// LabelUnknown represents an unrecognized label value.
	LabelUnknown StatusLabel = iota

	// LabelOpened marks the consolidation as assembled at the origin warehouse.
	LabelOpened

	// LabelInTransit marks the departure of the master shipment.
	LabelInTransit

	// LabelAtCustoms marks arrival at the destination customs facility.
	LabelAtCustoms

	// LabelDutiesPaid marks payment of import duties.
	LabelDutiesPaid

	// LabelAtBranchOffice marks arrival at the destination branch office.
	LabelAtBranchOffice

	// LabelAlert marks an operational alert on the shipment.
	LabelAlert

	// LabelInsured marks the shipment as covered by transit insurance.
	LabelInsured

	// LabelMobileUpdate marks a position update sent from a courier device.
	LabelMobileUpdate

	// LabelDelivered marks final delivery of the master shipment.
	LabelDelivered
)

func getLabelStrings() map[StatusLabel]string {
	return map[StatusLabel]string{
		LabelOpened:         "Opened",
		LabelInTransit:      "In transit",
		LabelAtCustoms:      "At customs",
		LabelDutiesPaid:     "Duties paid",
		LabelAtBranchOffice: "Branch office",
		LabelAlert:          "Alert",
		LabelInsured:        "Insured",
		LabelMobileUpdate:   "Mobile update",
		LabelDelivered:      "Delivered",
	}
}

// ParseLabel resolves a display string to its StatusLabel, ignoring case and
// surrounding whitespace. Returns an error for anything outside the closed set.
func ParseLabel(s string) (StatusLabel, error) {
	needle := strings.TrimSpace(s)
	for label, str := range getLabelStrings() {
		if strings.EqualFold(str, needle) {
			return label, nil
		}
	}
	return LabelUnknown, errs.NewValueIsInvalidErrorWithCause("statusLabel",
		fmt.Errorf("%q is not a recognized status label", s))
}

// Validate checks if the label is one of the nine enumerated values.
func (l StatusLabel) Validate() error {
	if _, ok := getLabelStrings()[l]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("statusLabel",
			fmt.Errorf("%d is not a valid status label", l))
	}
	return nil
}

// String returns the operator-facing display text of the label.
func (l StatusLabel) String() string {
	if str, ok := getLabelStrings()[l]; ok {
		return str
	}
	return "unknown"
}

// ConsolidationStatus projects the label onto the master-shipment status.
// Unmapped labels default to StatusInTransit; the fallback is deliberate.
func (l StatusLabel) ConsolidationStatus() Status {
	switch l {
	case LabelOpened:
		return StatusOpen
	case LabelDelivered:
		return StatusDelivered
	default:
		return StatusInTransit
	}
}

// ParcelTarget projects the label onto the member parcels' target status.
// The second return value is false for informational labels that must not
// change the parcels' own state; the cascade still records an audit event
// for them.
func (l StatusLabel) ParcelTarget() (parcel.Status, bool) {
	switch l {
	case LabelOpened:
		return parcel.Consolidated, true
	case LabelInTransit, LabelAtCustoms, LabelDutiesPaid, LabelAtBranchOffice:
		return parcel.InTransit, true
	case LabelDelivered:
		return parcel.Delivered, true
	default:
		return parcel.Unknown, false
	}
}
