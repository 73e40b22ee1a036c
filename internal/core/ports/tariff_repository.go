package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tariff"
)

// TariffRepository defines the read contract for tariff tiers.
type TariffRepository interface {
	// GetActiveByOrigin retrieves the active tariff tiers of an origin
	// warehouse ordered by minimum weight ascending. An empty result is not
	// an error at this level; resolution decides how to handle it.
	GetActiveByOrigin(ctx context.Context, originID kernel.UUID) ([]*tariff.Tier, error)
}
