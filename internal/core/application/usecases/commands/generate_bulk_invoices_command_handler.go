package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/core/domain/model/tariff"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// OutcomeStatus classifies the per-client result of a bulk billing run.
type OutcomeStatus int

const (
	// OutcomeStatusUnknown represents an invalid or undefined outcome.
	OutcomeStatusUnknown OutcomeStatus = iota

	// OutcomeInvoiced means an invoice was created for the client.
	OutcomeInvoiced

	// OutcomeSkipped means the client was deliberately not billed, for
	// example because an invoice already exists for this consolidation.
	OutcomeSkipped

	// OutcomeFailed means billing was attempted but produced no invoice.
	OutcomeFailed
)

// String returns the snake_case name of the outcome status.
func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeInvoiced:
		return "invoiced"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// BillingOutcome is the per-client result of a bulk billing run. ClientID is
// nil for the collective outcome covering parcels without a client.
type BillingOutcome struct {
	ClientID  *kernel.UUID
	InvoiceID *kernel.UUID
	Status    OutcomeStatus
	Reason    string
}

// GenerateBulkInvoicesCommandHandler handles bulk billing of a consolidation.
// Parcels are grouped by client, each group's pooled billable weight is
// priced through the tariff resolver, and one invoice per client is created.
//
// The whole run commits or rolls back as one transaction. Business-level
// conditions (no client, already billed, no tariff, non-positive amount)
// become per-client outcomes instead of failing the run; persistence errors
// abort everything. Notifications are enqueued after the commit so a
// notification problem can never undo an invoice.
type GenerateBulkInvoicesCommandHandler struct {
	uowFactory BillingUoWFactory
	resolver   services.TariffResolver
	currency   string
	logger     *slog.Logger
}

// NewGenerateBulkInvoicesCommandHandler creates a handler for bulk billing
// runs. The currency is applied to every generated invoice.
func NewGenerateBulkInvoicesCommandHandler(
	uowFactory BillingUoWFactory,
	currency string,
	logger *slog.Logger,
) GenerateBulkInvoicesCommandHandler {
	return GenerateBulkInvoicesCommandHandler{
		uowFactory: uowFactory,
		resolver:   services.NewTariffResolver(),
		currency:   currency,
		logger:     logger.With("component", "bulk-billing"),
	}
}

// Handle processes one bulk billing run and returns the per-client outcomes.
func (h *GenerateBulkInvoicesCommandHandler) Handle(
	ctx context.Context,
	cmd GenerateBulkInvoicesCommand,
) ([]BillingOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cons, err := uow.ConsolidationRepository().GetForUpdate(ctx, cmd.ConsolidationID())
	if err != nil {
		return nil, err
	}

	parcels, err := uow.ParcelRepository().GetByIDs(ctx, cons.ParcelIDs())
	if err != nil {
		return nil, err
	}

	tiers, err := uow.TariffRepository().GetActiveByOrigin(ctx, cons.Origin())
	if err != nil {
		return nil, err
	}

	byClient, unassigned := groupParcelsByClient(parcels)

	var outcomes []BillingOutcome
	if unassigned > 0 {
		outcomes = append(outcomes, BillingOutcome{
			Status: OutcomeSkipped,
			Reason: fmt.Sprintf("%d parcels have no client assigned", unassigned),
		})
	}

	invoiceRepo := uow.InvoiceRepository()
	for _, clientID := range sortedClientIDs(byClient) {
		outcome, outcomeErr := h.billClient(
			ctx, invoiceRepo, cmd, cons.ID(), cons.Code(), clientID, byClient[clientID], tiers,
		)
		if outcomeErr != nil {
			return nil, outcomeErr
		}
		outcomes = append(outcomes, outcome)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.enqueueNotifications(ctx, uow, cons.Code(), outcomes)

	return outcomes, nil
}

// billClient prices one client's parcel group and creates its invoice.
// Returns a non-nil error only for persistence failures that must abort the
// whole run.
func (h *GenerateBulkInvoicesCommandHandler) billClient(
	ctx context.Context,
	invoiceRepo ports.InvoiceRepository,
	cmd GenerateBulkInvoicesCommand,
	consolidationID kernel.UUID,
	consolidationCode string,
	clientID kernel.UUID,
	group []*parcel.Parcel,
	tiers []*tariff.Tier,
) (BillingOutcome, error) {
	client := clientID

	exists, err := invoiceRepo.ExistsForConsolidationAndClient(ctx, consolidationID, clientID)
	if err != nil {
		return BillingOutcome{}, err
	}
	if exists {
		return BillingOutcome{
			ClientID: &client,
			Status:   OutcomeSkipped,
			Reason:   "already billed for this consolidation",
		}, nil
	}

	var pooled kernel.Weight
	pieces := 0
	for _, p := range group {
		pooled = pooled.Add(p.BillableWeight())
		pieces += p.PieceCount()
	}

	res, err := h.resolver.Resolve(tiers, pooled, pieces)
	if errors.Is(err, services.ErrNoActiveTariffs) {
		return BillingOutcome{
			ClientID: &client,
			Status:   OutcomeSkipped,
			Reason:   "no active tariff tiers for origin",
		}, nil
	}
	if err != nil {
		return BillingOutcome{}, err
	}

	if res.Amount <= 0 {
		return BillingOutcome{
			ClientID: &client,
			Status:   OutcomeFailed,
			Reason:   fmt.Sprintf("computed amount %.2f is not positive", res.Amount),
		}, nil
	}

	line, err := billing.NewLineItem(
		fmt.Sprintf("%s %s (%s)", res.Tier.Service(), pooled, consolidationCode), 1, res.Amount,
	)
	if err != nil {
		return BillingOutcome{}, err
	}

	invoiceID := kernel.NewUUID()
	number := fmt.Sprintf("INV-%s-%.8s", cmd.IssuedAt().Format("20060102"), invoiceID.String())
	invoice, err := billing.NewInvoice(
		invoiceID, number,
		&client, "", "",
		&consolidationID, []billing.LineItem{line},
		h.currency, cmd.IssuedAt(),
	)
	if err != nil {
		return BillingOutcome{}, err
	}

	if err = invoiceRepo.Add(ctx, invoice); err != nil {
		// A concurrent run can slip past the exists check; the unique key
		// on (consolidation, client) is the final arbiter.
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return BillingOutcome{
				ClientID: &client,
				Status:   OutcomeSkipped,
				Reason:   "already billed for this consolidation",
			}, nil
		}
		return BillingOutcome{}, err
	}

	reason := ""
	if res.Fallback {
		reason = "billed at the base tier: no tier range matched the pooled weight"
	}

	return BillingOutcome{
		ClientID:  &client,
		InvoiceID: &invoiceID,
		Status:    OutcomeInvoiced,
		Reason:    reason,
	}, nil
}

// enqueueNotifications queues an email per invoiced client after the billing
// transaction has committed. Failures are logged and never propagated.
func (h *GenerateBulkInvoicesCommandHandler) enqueueNotifications(
	ctx context.Context,
	uow BillingUoW,
	consolidationCode string,
	outcomes []BillingOutcome,
) {
	invoiced := make([]BillingOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Status == OutcomeInvoiced && outcome.ClientID != nil {
			invoiced = append(invoiced, outcome)
		}
	}
	if len(invoiced) == 0 {
		return
	}

	notifRepo := uow.NotificationRepository()
	for _, outcome := range invoiced {

		request, err := billing.NewNotificationRequest(
			kernel.NewUUID(), *outcome.ClientID, billing.ChannelEmail,
			"Your shipment has been billed",
			fmt.Sprintf("An invoice was issued for consolidation %s.", consolidationCode),
			time.Now().UTC(),
		)
		if err != nil {
			h.logger.Warn("failed to build billing notification",
				"client_id", outcome.ClientID.String(), "error", err)
			continue
		}

		if err = notifRepo.Add(ctx, request); err != nil {
			h.logger.Warn("failed to enqueue billing notification",
				"client_id", outcome.ClientID.String(), "error", err)
		}
	}
}

func groupParcelsByClient(parcels []*parcel.Parcel) (map[kernel.UUID][]*parcel.Parcel, int) {
	byClient := make(map[kernel.UUID][]*parcel.Parcel)
	unassigned := 0
	for _, p := range parcels {
		clientID := p.Client()
		if clientID == nil {
			unassigned++
			continue
		}
		byClient[*clientID] = append(byClient[*clientID], p)
	}
	return byClient, unassigned
}

func sortedClientIDs(byClient map[kernel.UUID][]*parcel.Parcel) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(byClient))
	for id := range byClient {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}
