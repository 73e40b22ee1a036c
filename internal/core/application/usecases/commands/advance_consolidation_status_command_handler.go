package commands

import (
	"context"

	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/ports"
)

// AdvanceConsolidationStatusCommandHandler handles one master-shipment status
// update and its cascade onto every member parcel.
//
// The cascade is append-first: the consolidation audit event is written before
// any state change, and every member parcel receives an audit event even when
// its own status does not move. Parcel statuses only move along their legal
// transitions; an update that would violate them is skipped, not failed.
//
// Example:
//
//	handler := NewAdvanceConsolidationStatusCommandHandler(uowFactory)
//	cmd, _ := NewAdvanceConsolidationStatusCommand(consolidationID,
//	    "In transit", "", "", true, false, "ops@example.com", time.Now().UTC())
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("status update failed: %w", err)
//	}
type AdvanceConsolidationStatusCommandHandler struct {
	uowFactory ConsolidationUoWFactory
}

// NewAdvanceConsolidationStatusCommandHandler creates a handler for
// status-cascade operations. Requires a ConsolidationUoWFactory for
// transactional persistence across both aggregates.
func NewAdvanceConsolidationStatusCommandHandler(
	uowFactory ConsolidationUoWFactory,
) AdvanceConsolidationStatusCommandHandler {
	return AdvanceConsolidationStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one status update.
// Locks the consolidation row, appends the consolidation audit event, applies
// the label's status projection with an optimistic version bump, and cascades
// onto every member parcel within the same transaction.
func (h *AdvanceConsolidationStatusCommandHandler) Handle(
	ctx context.Context,
	cmd AdvanceConsolidationStatusCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	consRepo := uow.ConsolidationRepository()
	parcelRepo := uow.ParcelRepository()

	cons, err := consRepo.GetForUpdate(ctx, cmd.ConsolidationID())
	if err != nil {
		return err
	}

	// The audit event is written first and unconditionally: the trail must
	// record the update even when no status changes come out of it.
	event, err := consolidation.RestoreEvent(
		kernel.NewUUID(), cons.ID(),
		cmd.Label(), cmd.LabelText(),
		cmd.City(), cmd.Comment(), cmd.Notify(),
		cmd.Actor(), cmd.EventDate(),
	)
	if err != nil {
		return err
	}
	if err = consRepo.AddEvent(ctx, event); err != nil {
		return err
	}

	if err = cons.ApplyLabel(cmd.Label()); err != nil {
		return err
	}
	if err = consRepo.Update(ctx, cons); err != nil {
		return err
	}

	parcels, err := parcelRepo.GetByIDs(ctx, cons.ParcelIDs())
	if err != nil {
		return err
	}

	target, hasTarget := cmd.Label().ParcelTarget()
	for _, p := range parcels {
		if err = h.cascadeToParcel(ctx, parcelRepo, p, cmd, target, hasTarget); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// cascadeToParcel records the member parcel's audit event and moves its
// status when the label projects onto one and the move is legal.
func (h *AdvanceConsolidationStatusCommandHandler) cascadeToParcel(
	ctx context.Context,
	parcelRepo ports.ParcelRepository,
	p *parcel.Parcel,
	cmd AdvanceConsolidationStatusCommand,
	target parcel.Status,
	hasTarget bool,
) error {
	from := p.Status().String()
	to := from

	changed := false
	if hasTarget {
		changed = p.ApplyCascadeTarget(target)
		if changed {
			to = p.Status().String()
		}
	}

	event, err := parcel.NewEvent(
		kernel.NewUUID(), p.ID(),
		from, to,
		cmd.Actor(), cmd.LabelText(), cmd.EventDate(),
	)
	if err != nil {
		return err
	}
	if err = parcelRepo.AddEvent(ctx, event); err != nil {
		return err
	}

	if changed {
		return parcelRepo.Update(ctx, p)
	}
	return nil
}
