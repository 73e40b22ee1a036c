package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tariff"
	"freight/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveTariffQueryHandler prices pooled weights against the stored tariff
// tiers. Uses direct SQL for the read and the domain resolver for the
// selection policy, so quotes and billing always agree.
//
// Example:
//
//	handler := NewResolveTariffQueryHandler(db)
//	query, _ := NewResolveTariffQuery(originID, 12.5, 3)
//
//	quote, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("quoting failed: %v", err)
//	    return err
//	}
//	fmt.Printf("amount: %.2f (fallback=%v)\n", quote.Amount, quote.Fallback)
type ResolveTariffQueryHandler struct {
	db       *gorm.DB
	resolver services.TariffResolver
}

// NewResolveTariffQueryHandler creates a handler for tariff quoting queries.
// Requires a GORM database connection for query execution.
func NewResolveTariffQueryHandler(db *gorm.DB) ResolveTariffQueryHandler {
	return ResolveTariffQueryHandler{
		db:       db,
		resolver: services.NewTariffResolver(),
	}
}

// Handle executes the quoting query.
// Loads the origin's active tiers ordered by minimum weight and runs the
// tier-selection policy over them. Returns services.ErrNoActiveTariffs when
// the origin has no active tiers.
func (h ResolveTariffQueryHandler) Handle(
	ctx context.Context,
	query ResolveTariffQuery,
) (ResolveTariffQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveTariffQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			origin_id,
			service,
			charge_type,
			rate,
			min_weight,
			max_weight,
			active
		FROM tariff_tiers
		WHERE origin_id = ? AND active
		ORDER BY min_weight
	`, query.OriginID().Bytes()).Rows()
	if err != nil {
		return ResolveTariffQueryResponse{}, err
	}
	defer rows.Close()

	tiers := make([]*tariff.Tier, 0)
	for rows.Next() {
		var (
			id, originID       uuid.UUID
			service, chargeStr string
			rate, minWeight    float64
			maxWeight          sql.NullFloat64
			active             bool
		)

		err = rows.Scan(&id, &originID, &service, &chargeStr, &rate, &minWeight, &maxWeight, &active)
		if err != nil {
			return ResolveTariffQueryResponse{}, err
		}

		tier, tierErr := restoreTier(id, originID, service, chargeStr, rate, minWeight, maxWeight, active)
		if tierErr != nil {
			return ResolveTariffQueryResponse{}, tierErr
		}
		tiers = append(tiers, tier)
	}

	if err = rows.Err(); err != nil {
		return ResolveTariffQueryResponse{}, err
	}

	resolution, err := h.resolver.Resolve(tiers, query.Weight(), query.PackageCount())
	if err != nil {
		return ResolveTariffQueryResponse{}, err
	}

	return ResolveTariffQueryResponse{
		TierID:     resolution.Tier.ID(),
		Service:    resolution.Tier.Service(),
		ChargeType: resolution.Tier.ChargeType().String(),
		Rate:       resolution.Tier.Rate(),
		Amount:     resolution.Amount,
		Fallback:   resolution.Fallback,
	}, nil
}

func restoreTier(
	id, originID uuid.UUID,
	service, chargeStr string,
	rate, minWeight float64,
	maxWeight sql.NullFloat64,
	active bool,
) (*tariff.Tier, error) {
	tierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	origin, err := kernel.UUIDFromBytes(originID[:])
	if err != nil {
		return nil, err
	}
	chargeType, err := tariff.ParseChargeType(chargeStr)
	if err != nil {
		return nil, err
	}

	var upper *float64
	if maxWeight.Valid {
		upper = &maxWeight.Float64
	}

	return tariff.NewTier(tierID, origin, service, chargeType, rate, minWeight, upper, active)
}
