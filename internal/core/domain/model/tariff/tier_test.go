package tariff_test

import (
	"testing"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/tariff"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTier(t *testing.T, chargeType tariff.ChargeType, rate, minW float64, maxW *float64) *tariff.Tier {
	t.Helper()

	tier, err := tariff.NewTier(
		kernel.NewUUID(), kernel.NewUUID(), "air freight",
		chargeType, rate, minW, maxW, true,
	)
	require.NoError(t, err)
	return tier
}

func weightOf(t *testing.T, pounds float64) kernel.Weight {
	t.Helper()
	w, err := kernel.NewWeight(pounds)
	require.NoError(t, err)
	return w
}

func float64Ptr(v float64) *float64 { return &v }

func TestParseChargeType(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want tariff.ChargeType
	}{
		{"per_pound", tariff.PerPound},
		{"flat", tariff.Flat},
		{"per_package", tariff.PerPackage},
	} {
		got, err := tariff.ParseChargeType(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := tariff.ParseChargeType("per_kilogram")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewTier(t *testing.T) {
	t.Run("valid tier", func(t *testing.T) {
		tier := newTier(t, tariff.PerPound, 2.5, 0, float64Ptr(50))

		require.NoError(t, tier.Validate())
		assert.Equal(t, tariff.PerPound, tier.ChargeType())
		assert.True(t, tier.IsActive())
	})

	t.Run("missing service name is rejected", func(t *testing.T) {
		_, err := tariff.NewTier(
			kernel.NewUUID(), kernel.NewUUID(), "",
			tariff.Flat, 10, 0, nil, true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("negative rate is rejected", func(t *testing.T) {
		_, err := tariff.NewTier(
			kernel.NewUUID(), kernel.NewUUID(), "air freight",
			tariff.Flat, -1, 0, nil, true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("max weight below min weight is rejected", func(t *testing.T) {
		_, err := tariff.NewTier(
			kernel.NewUUID(), kernel.NewUUID(), "air freight",
			tariff.Flat, 10, 20, float64Ptr(10), true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("invalid charge type is rejected", func(t *testing.T) {
		_, err := tariff.NewTier(
			kernel.NewUUID(), kernel.NewUUID(), "air freight",
			tariff.ChargeTypeUnknown, 10, 0, nil, true,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var tier tariff.Tier
		require.ErrorIs(t, tier.Validate(), tariff.ErrTierIsNotConstructed)
	})
}

func TestTier_Matches(t *testing.T) {
	t.Run("bounded range", func(t *testing.T) {
		tier := newTier(t, tariff.PerPound, 2, 10, float64Ptr(50))

		assert.False(t, tier.Matches(weightOf(t, 9.99)))
		assert.True(t, tier.Matches(weightOf(t, 10)))
		assert.True(t, tier.Matches(weightOf(t, 50)))
		assert.False(t, tier.Matches(weightOf(t, 50.01)))
	})

	t.Run("unbounded range", func(t *testing.T) {
		tier := newTier(t, tariff.PerPound, 2, 10, nil)

		assert.True(t, tier.Matches(weightOf(t, 10)))
		assert.True(t, tier.Matches(weightOf(t, 9999)))
		assert.False(t, tier.Matches(weightOf(t, 5)))
	})
}

func TestTier_Charge(t *testing.T) {
	t.Run("per_pound charges weight times rate", func(t *testing.T) {
		tier := newTier(t, tariff.PerPound, 2, 0, nil)
		assert.InDelta(t, 10, tier.Charge(weightOf(t, 5), 3), 0.0001)
	})

	t.Run("per_pound applies the one-pound minimum", func(t *testing.T) {
		tier := newTier(t, tariff.PerPound, 10, 0, nil)
		assert.InDelta(t, 10, tier.Charge(weightOf(t, 0.3), 1), 0.0001)
	})

	t.Run("flat ignores weight and count", func(t *testing.T) {
		tier := newTier(t, tariff.Flat, 35, 0, nil)
		assert.InDelta(t, 35, tier.Charge(weightOf(t, 123), 7), 0.0001)
		assert.InDelta(t, 35, tier.Charge(weightOf(t, 0), 0), 0.0001)
	})

	t.Run("per_package charges count times rate", func(t *testing.T) {
		tier := newTier(t, tariff.PerPackage, 4, 0, nil)
		assert.InDelta(t, 12, tier.Charge(weightOf(t, 100), 3), 0.0001)
	})
}
