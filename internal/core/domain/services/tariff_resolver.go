package services

import (
	"errors"
	"sort"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tariff"
)

// ErrNoActiveTariffs is returned when the origin warehouse has no active
// tariff tiers at all, making any charge computation impossible.
var ErrNoActiveTariffs = errors.New("no active tariff tiers for origin")

// Resolution is the outcome of tier selection: the chosen tier, the computed
// amount, and whether the fallback policy was applied because no tier's
// weight range matched.
type Resolution struct {
	Tier     *tariff.Tier
	Amount   float64
	Fallback bool
}

// TariffResolver is a domain service responsible for selecting the billing
// tier for a pooled weight and computing the resulting charge.
//
// Business rules:
//   - Tiers are considered in ascending order of their minimum weight
//   - The first tier whose weight range contains the pooled weight wins
//   - When no range matches, the first tier (after ordering) is used anyway
//     and the resolution is marked as a fallback; clients with unusual
//     weights are billed at the base tier rather than not billed at all
//   - Per-pound charges apply a one-pound minimum to the pooled weight
type TariffResolver struct{}

// NewTariffResolver creates a new TariffResolver instance.
func NewTariffResolver() TariffResolver {
	return TariffResolver{}
}

// Resolve selects the tier for the pooled weight among the origin's active
// tiers and computes the charge for it.
//
// Returns ErrNoActiveTariffs when tiers is empty, or a validation error when
// a tier was not properly constructed. Inactive tiers are skipped.
func (r TariffResolver) Resolve(
	tiers []*tariff.Tier,
	weight kernel.Weight,
	packageCount int,
) (Resolution, error) {
	candidates, err := r.activeByMinWeight(tiers)
	if err != nil {
		return Resolution{}, err
	}
	if len(candidates) == 0 {
		return Resolution{}, ErrNoActiveTariffs
	}

	for _, t := range candidates {
		if t.Matches(weight) {
			return Resolution{
				Tier:   t,
				Amount: t.Charge(weight, packageCount),
			}, nil
		}
	}

	// No range contains this weight: fall back to the base tier.
	base := candidates[0]
	return Resolution{
		Tier:     base,
		Amount:   base.Charge(weight, packageCount),
		Fallback: true,
	}, nil
}

func (r TariffResolver) activeByMinWeight(tiers []*tariff.Tier) ([]*tariff.Tier, error) {
	candidates := make([]*tariff.Tier, 0, len(tiers))
	for _, t := range tiers {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if !t.IsActive() {
			continue
		}
		candidates = append(candidates, t)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MinWeight() < candidates[j].MinWeight()
	})

	return candidates, nil
}
