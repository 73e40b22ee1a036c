package tariffrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tariff"

	"gorm.io/gorm"
)

// GormTariffRepository implements TariffRepository using GORM.
type GormTariffRepository struct {
	db *gorm.DB
}

// NewGormTariffRepository creates a new GORM tariff repository.
func NewGormTariffRepository(db *gorm.DB) *GormTariffRepository {
	return &GormTariffRepository{db: db}
}

// GetActiveByOrigin retrieves the active tariff tiers of an origin warehouse
// ordered by minimum weight ascending. An empty result is not an error at this
// level; tier resolution decides how to handle it.
func (r *GormTariffRepository) GetActiveByOrigin(
	ctx context.Context,
	originID kernel.UUID,
) ([]*tariff.Tier, error) {
	if err := originID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TariffTierDTO
	if err := r.db.WithContext(ctx).
		Order("min_weight").
		Find(&dtos, "origin_id = ? AND active", originID.Bytes()).Error; err != nil {
		return nil, err
	}

	tiers := make([]*tariff.Tier, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}

	return tiers, nil
}
