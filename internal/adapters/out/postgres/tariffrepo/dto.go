// Package tariffrepo provides data transfer objects and mapping functions for
// tariff tier persistence. Tiers are reference data maintained out of band;
// the repository exposes the read path used by quoting and billing.
package tariffrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tariff"

	"github.com/google/uuid"
)

// TariffTierDTO represents the database structure for persisting tariff tiers.
// The charge type is stored in its string form so the rows stay readable.
type TariffTierDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OriginID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Service    string    `gorm:"type:varchar(255);not null"`
	ChargeType string    `gorm:"type:varchar(16);not null"`
	Rate       float64   `gorm:"type:numeric(10,2);not null"`
	MinWeight  float64   `gorm:"type:numeric(10,2);not null"`
	MaxWeight  *float64  `gorm:"type:numeric(10,2)"`
	Active     bool      `gorm:"not null;index"`
}

// TableName specifies the database table name for tariff tiers.
// Overrides GORM's default naming convention to use "tariff_tiers".
func (TariffTierDTO) TableName() string {
	return "tariff_tiers"
}

// FromDomain converts a tariff tier to its database representation.
// Exported so migrations and tests can seed tiers through the same mapping.
func FromDomain(t *tariff.Tier) TariffTierDTO {
	return TariffTierDTO{
		ID:         t.ID().Bytes(),
		OriginID:   t.Origin().Bytes(),
		Service:    t.Service(),
		ChargeType: t.ChargeType().String(),
		Rate:       t.Rate(),
		MinWeight:  t.MinWeight(),
		MaxWeight:  t.MaxWeight(),
		Active:     t.IsActive(),
	}
}

// toDomain converts a database DTO to a tariff tier.
func toDomain(dto TariffTierDTO) (*tariff.Tier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	originID, err := kernel.UUIDFromBytes(dto.OriginID[:])
	if err != nil {
		return nil, err
	}

	chargeType, err := tariff.ParseChargeType(dto.ChargeType)
	if err != nil {
		return nil, err
	}

	return tariff.NewTier(id, originID, dto.Service, chargeType, dto.Rate, dto.MinWeight, dto.MaxWeight, dto.Active)
}
