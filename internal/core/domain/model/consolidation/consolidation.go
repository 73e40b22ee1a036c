package consolidation

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrConsolidationIsNotConstructed is returned when a Consolidation instance
	// was not created through NewConsolidation or RestoreConsolidation.
	ErrConsolidationIsNotConstructed = errors.New(
		"Consolidation must be created via NewConsolidation constructor")

	// ErrEmptyParcelSelection is returned when a consolidation is created
	// without any member parcels.
	ErrEmptyParcelSelection = errors.New("consolidation requires at least one parcel")

	// ErrCodeIsRequired is returned when a consolidation is created without a code.
	ErrCodeIsRequired = errors.New("consolidation code is required")
)

// Consolidation represents a master shipment: a fixed group of parcels that
// travel together from an origin warehouse to a destination zone.
//
// Consolidation follows these invariants:
//   - Membership is captured once at creation and never modified afterwards
//   - The total weight is a snapshot taken at creation, never recomputed
//   - Status is driven exclusively by status-label projections
//   - The version counter increments on every mutation and backs the
//     optimistic concurrency check in the repository
type Consolidation struct {
	id            kernel.UUID
	code          string
	originID      kernel.UUID
	destinationID kernel.UUID
	status        Status
	totalWeight   kernel.Weight
	parcelIDs     []kernel.UUID
	version       int
	createdAt     time.Time

	isConstructed bool
}

// NewConsolidation creates an open consolidation with its full, immutable
// parcel membership. The totalWeight argument is the snapshot of the members'
// pooled billable weight at creation time.
func NewConsolidation(
	id kernel.UUID,
	code string,
	originID kernel.UUID,
	destinationID kernel.UUID,
	parcelIDs []kernel.UUID,
	totalWeight kernel.Weight,
	createdAt time.Time,
) (*Consolidation, error) {
	c := &Consolidation{
		status:        StatusOpen,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setCode(code),
		c.setRoute(originID, destinationID),
		c.setParcelIDs(parcelIDs),
		c.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	c.totalWeight = totalWeight
	return c, nil
}

// RestoreConsolidation reconstructs a consolidation from persistence.
func RestoreConsolidation(
	id kernel.UUID,
	code string,
	originID kernel.UUID,
	destinationID kernel.UUID,
	parcelIDs []kernel.UUID,
	totalWeight kernel.Weight,
	status Status,
	version int,
	createdAt time.Time,
) (*Consolidation, error) {
	c, err := NewConsolidation(id, code, originID, destinationID, parcelIDs, totalWeight, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("consolidation version")
	}

	c.status = status
	c.version = version
	return c, nil
}

// Validate ensures the Consolidation instance was properly constructed.
func (c *Consolidation) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConsolidationIsNotConstructed
	}
	return nil
}

// IsEqual compares two consolidations by their unique identifiers.
func (c *Consolidation) IsEqual(other *Consolidation) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the consolidation's unique identifier.
func (c *Consolidation) ID() kernel.UUID {
	return c.id
}

// Code returns the human-facing consolidation code.
func (c *Consolidation) Code() string {
	return c.code
}

// Origin returns the origin warehouse ID.
func (c *Consolidation) Origin() kernel.UUID {
	return c.originID
}

// Destination returns the destination zone ID.
func (c *Consolidation) Destination() kernel.UUID {
	return c.destinationID
}

// Status returns the current master-shipment status.
func (c *Consolidation) Status() Status {
	return c.status
}

// TotalWeight returns the weight snapshot captured at creation.
func (c *Consolidation) TotalWeight() kernel.Weight {
	return c.totalWeight
}

// ParcelIDs returns a copy of the fixed membership set.
func (c *Consolidation) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.parcelIDs))
	copy(ids, c.parcelIDs)
	return ids
}

// Version returns the optimistic-concurrency version of the aggregate.
// It reflects the version the aggregate will have once persisted.
func (c *Consolidation) Version() int {
	return c.version
}

// CreatedAt returns the creation timestamp.
func (c *Consolidation) CreatedAt() time.Time {
	return c.createdAt
}

// ApplyLabel rewrites the master-shipment status through the label's
// projection and bumps the aggregate version. The projection is authoritative:
// whatever status the label maps to is the new status.
func (c *Consolidation) ApplyLabel(label StatusLabel) error {
	if err := label.Validate(); err != nil {
		return err
	}
	c.status = label.ConsolidationStatus()
	c.version++
	return nil
}

func (c *Consolidation) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Consolidation) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}
	c.code = code
	return nil
}

func (c *Consolidation) setRoute(originID, destinationID kernel.UUID) error {
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

func (c *Consolidation) setParcelIDs(parcelIDs []kernel.UUID) error {
	if len(parcelIDs) == 0 {
		return ErrEmptyParcelSelection
	}
	seen := make(map[kernel.UUID]struct{}, len(parcelIDs))
	ids := make([]kernel.UUID, 0, len(parcelIDs))
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("parcelId", err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	c.parcelIDs = ids
	return nil
}

func (c *Consolidation) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	c.createdAt = createdAt
	return nil
}
