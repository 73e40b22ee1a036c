package parcel

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
	// through the NewParcel or RestoreParcel factory functions.
	ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel constructor")

	// ErrTrackingCodeIsRequired is returned when a parcel is created without a tracking code.
	ErrTrackingCodeIsRequired = errors.New("tracking code is required")
)

// Parcel represents a single package in the freight-forwarding pipeline.
// It is an aggregate root that owns the parcel lifecycle from intake through
// consolidation, transit, and delivery.
//
// Parcel follows these invariants:
//   - Must have a valid unique identifier and a non-empty tracking code
//   - Must reference its origin warehouse
//   - Weight is non-negative; piece count is at least 1
//   - Status only moves forward along the lifecycle graph; Delivered,
//     Returned, and Lost are terminal
//   - A parcel may have no client (orphaned parcels are allowed and are
//     excluded from billing)
type Parcel struct {
	id           kernel.UUID
	trackingCode string

	// clientID is nil for orphaned parcels received without a registered client.
	clientID *kernel.UUID

	originID   kernel.UUID
	weight     kernel.Weight
	dimensions *kernel.Dimensions
	pieceCount int
	fragile    bool
	repack     bool
	status     Status
	receivedAt time.Time

	isConstructed bool
}

// NewParcel creates a parcel at intake, in Received status with a piece count
// of 1. Optional attributes (client, dimensions, piece count, handling flags)
// are set through their dedicated methods before the parcel joins a
// consolidation.
func NewParcel(
	id kernel.UUID,
	trackingCode string,
	originID kernel.UUID,
	weight kernel.Weight,
	receivedAt time.Time,
) (*Parcel, error) {
	p := &Parcel{
		status:        Received,
		pieceCount:    1,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setOriginID(originID),
		p.setReceivedAt(receivedAt),
	); err != nil {
		return nil, err
	}

	p.weight = weight
	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence without applying
// lifecycle rules. The stored status must still be a defined one.
func RestoreParcel(
	id kernel.UUID,
	trackingCode string,
	clientID *kernel.UUID,
	originID kernel.UUID,
	weight kernel.Weight,
	dimensions *kernel.Dimensions,
	pieceCount int,
	fragile bool,
	repack bool,
	status Status,
	receivedAt time.Time,
) (*Parcel, error) {
	p, err := NewParcel(id, trackingCode, originID, weight, receivedAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if clientID != nil {
		if err = p.AssignClient(*clientID); err != nil {
			return nil, err
		}
	}
	if dimensions != nil {
		if err = p.SetDimensions(*dimensions); err != nil {
			return nil, err
		}
	}
	if err = p.SetPieceCount(pieceCount); err != nil {
		return nil, err
	}

	p.fragile = fragile
	p.repack = repack
	p.status = status
	return p, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by their unique identifiers.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the unique tracking code assigned at intake.
func (p *Parcel) TrackingCode() string {
	return p.trackingCode
}

// Client returns the owning client's ID, or nil for orphaned parcels.
func (p *Parcel) Client() *kernel.UUID {
	return p.clientID
}

// Origin returns the origin warehouse ID.
func (p *Parcel) Origin() kernel.UUID {
	return p.originID
}

// Weight returns the scale weight measured at intake.
func (p *Parcel) Weight() kernel.Weight {
	return p.weight
}

// Dimensions returns the measured dimensions, or nil when not captured.
func (p *Parcel) Dimensions() *kernel.Dimensions {
	return p.dimensions
}

// PieceCount returns the number of physical pieces in the parcel.
func (p *Parcel) PieceCount() int {
	return p.pieceCount
}

// IsFragile reports whether the parcel requires fragile handling.
func (p *Parcel) IsFragile() bool {
	return p.fragile
}

// NeedsRepack reports whether the parcel was flagged for repacking.
func (p *Parcel) NeedsRepack() bool {
	return p.repack
}

// Status returns the current lifecycle status.
func (p *Parcel) Status() Status {
	return p.status
}

// ReceivedAt returns the intake timestamp.
func (p *Parcel) ReceivedAt() time.Time {
	return p.receivedAt
}

// BillableWeight returns the weight used for tariff pooling: the greater of
// the scale weight and the volumetric weight when dimensions were captured.
func (p *Parcel) BillableWeight() kernel.Weight {
	if p.dimensions == nil {
		return p.weight
	}
	if vw := p.dimensions.VolumetricWeight(); vw.Pounds() > p.weight.Pounds() {
		return vw
	}
	return p.weight
}

// AssignClient links the parcel to a registered client.
func (p *Parcel) AssignClient(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	p.clientID = &clientID
	return nil
}

// SetDimensions records the measured dimensions.
func (p *Parcel) SetDimensions(dims kernel.Dimensions) error {
	if err := dims.Validate(); err != nil {
		return err
	}
	p.dimensions = &dims
	return nil
}

// SetPieceCount sets the number of physical pieces; must be at least 1.
func (p *Parcel) SetPieceCount(count int) error {
	if count < 1 {
		return errs.NewValueIsOutOfRangeError("pieceCount", count, 1, int(^uint(0)>>1))
	}
	p.pieceCount = count
	return nil
}

// MarkFragile flags the parcel for fragile handling.
func (p *Parcel) MarkFragile() {
	p.fragile = true
}

// MarkForRepack flags the parcel for repacking before consolidation.
func (p *Parcel) MarkForRepack() {
	p.repack = true
}

// MoveToWarehouse shelves the parcel at the origin warehouse.
func (p *Parcel) MoveToWarehouse() error {
	return p.transitionTo(InWarehouse)
}

// MarkReadyToConsolidate clears the parcel for consolidation.
func (p *Parcel) MarkReadyToConsolidate() error {
	return p.transitionTo(ReadyToConsolidate)
}

// JoinConsolidation moves the parcel into the Consolidated status.
// Valid only from Received, InWarehouse, or ReadyToConsolidate; membership is
// fixed at consolidation creation, so there is no inverse operation.
func (p *Parcel) JoinConsolidation() error {
	newStatus, err := p.status.Join()
	if err != nil {
		return err
	}
	p.status = newStatus
	return nil
}

// ApplyCascadeTarget moves the parcel to the target status propagated from its
// consolidation. Illegal transitions are skipped, not rejected: the cascade
// contract is that the audit trail records the master update either way.
// Returns true when the parcel's status actually changed.
func (p *Parcel) ApplyCascadeTarget(target Status) bool {
	if p.status == target || !p.status.CanTransitionTo(target) {
		return false
	}
	p.status = target
	return true
}

// MarkReturned moves the parcel to the terminal Returned status.
// Allowed from any non-terminal status; happens outside the cascade.
func (p *Parcel) MarkReturned() error {
	return p.transitionTo(Returned)
}

// MarkLost moves the parcel to the terminal Lost status.
// Allowed from any non-terminal status; happens outside the cascade.
func (p *Parcel) MarkLost() error {
	return p.transitionTo(Lost)
}

func (p *Parcel) transitionTo(target Status) error {
	if !p.status.CanTransitionTo(target) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition from %s to %s", p.status, target))
	}
	p.status = target
	return nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(code string) error {
	if code == "" {
		return ErrTrackingCodeIsRequired
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setOriginID(originID kernel.UUID) error {
	if err := originID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("originId", err)
	}
	p.originID = originID
	return nil
}

func (p *Parcel) setReceivedAt(receivedAt time.Time) error {
	if receivedAt.IsZero() {
		return errs.NewValueIsRequiredError("receivedAt")
	}
	p.receivedAt = receivedAt
	return nil
}
