package commands

import (
	"context"
	"fmt"

	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
)

// CreateConsolidationCommandHandler handles the business logic for opening a
// new consolidation. Every selected parcel joins the consolidation and the
// pooled billable weight is captured as a snapshot.
//
// Example:
//
//	handler := NewCreateConsolidationCommandHandler(uowFactory)
//	cmd, _ := NewCreateConsolidationCommand(id, "MIA-TGU-0142", originID,
//	    destinationID, parcelIDs, "ops@example.com", time.Now().UTC())
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("consolidation creation failed: %w", err)
//	}
type CreateConsolidationCommandHandler struct {
	uowFactory ConsolidationUoWFactory
}

// NewCreateConsolidationCommandHandler creates a handler for consolidation
// creation operations. Requires a ConsolidationUoWFactory for transactional
// persistence across both aggregates.
func NewCreateConsolidationCommandHandler(uowFactory ConsolidationUoWFactory) CreateConsolidationCommandHandler {
	return CreateConsolidationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the consolidation creation command.
// Loads the selected parcels, transitions each into the consolidated status,
// snapshots the pooled billable weight and persists the new consolidation
// together with the parcel updates and their audit events in one transaction.
func (h *CreateConsolidationCommandHandler) Handle(ctx context.Context, cmd CreateConsolidationCommand) error {
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

	parcelRepo := uow.ParcelRepository()
	consRepo := uow.ConsolidationRepository()

	parcels, err := parcelRepo.GetByIDs(ctx, cmd.ParcelIDs())
	if err != nil {
		return err
	}

	var totalWeight kernel.Weight
	priorStatuses := make([]string, len(parcels))
	for i, p := range parcels {
		priorStatuses[i] = p.Status().String()
		if err = p.JoinConsolidation(); err != nil {
			return fmt.Errorf("parcel %s cannot join consolidation: %w", p.TrackingCode(), err)
		}
		totalWeight = totalWeight.Add(p.BillableWeight())
	}

	cons, err := consolidation.NewConsolidation(
		cmd.ConsolidationID(), cmd.Code(),
		cmd.OriginID(), cmd.DestinationID(),
		cmd.ParcelIDs(), totalWeight, cmd.CreatedAt(),
	)
	if err != nil {
		return err
	}

	if err = consRepo.Add(ctx, cons); err != nil {
		return err
	}

	note := "joined consolidation " + cmd.Code()
	for i, p := range parcels {
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}

		event, eventErr := parcel.NewEvent(
			kernel.NewUUID(), p.ID(),
			priorStatuses[i], p.Status().String(),
			cmd.Actor(), note, cmd.CreatedAt(),
		)
		if eventErr != nil {
			return eventErr
		}
		if err = parcelRepo.AddEvent(ctx, event); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
