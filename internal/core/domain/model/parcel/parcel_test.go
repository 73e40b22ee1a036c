package parcel_test

import (
	"testing"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/parcel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParcel(t *testing.T) *parcel.Parcel {
	t.Helper()

	weight, err := kernel.NewWeight(5)
	require.NoError(t, err)

	p, err := parcel.NewParcel(kernel.NewUUID(), "TRK-0001", kernel.NewUUID(), weight, time.Now())
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("valid parcel", func(t *testing.T) {
		p := newTestParcel(t)

		require.NoError(t, p.Validate())
		assert.Equal(t, parcel.Received, p.Status())
		assert.Equal(t, 1, p.PieceCount())
		assert.Nil(t, p.Client())
		assert.Nil(t, p.Dimensions())
		assert.False(t, p.IsFragile())
		assert.False(t, p.NeedsRepack())
	})

	t.Run("empty tracking code is rejected", func(t *testing.T) {
		weight, _ := kernel.NewWeight(5)
		_, err := parcel.NewParcel(kernel.NewUUID(), "", kernel.NewUUID(), weight, time.Now())
		require.ErrorIs(t, err, parcel.ErrTrackingCodeIsRequired)
	})

	t.Run("missing origin is rejected", func(t *testing.T) {
		weight, _ := kernel.NewWeight(5)
		var origin kernel.UUID
		_, err := parcel.NewParcel(kernel.NewUUID(), "TRK-0001", origin, weight, time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero receivedAt is rejected", func(t *testing.T) {
		weight, _ := kernel.NewWeight(5)
		_, err := parcel.NewParcel(kernel.NewUUID(), "TRK-0001", kernel.NewUUID(), weight, time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var p parcel.Parcel
		require.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}

func TestParcel_AssignClient(t *testing.T) {
	p := newTestParcel(t)
	clientID := kernel.NewUUID()

	require.NoError(t, p.AssignClient(clientID))
	require.NotNil(t, p.Client())
	assert.True(t, p.Client().IsEqual(clientID))
}

func TestParcel_SetPieceCount(t *testing.T) {
	p := newTestParcel(t)

	require.NoError(t, p.SetPieceCount(3))
	assert.Equal(t, 3, p.PieceCount())

	require.ErrorIs(t, p.SetPieceCount(0), errs.ErrValueIsOutOfRange)
}

func TestParcel_BillableWeight(t *testing.T) {
	t.Run("without dimensions, scale weight applies", func(t *testing.T) {
		p := newTestParcel(t)
		assert.InDelta(t, 5, p.BillableWeight().Pounds(), 0.0001)
	})

	t.Run("volumetric weight wins when larger", func(t *testing.T) {
		p := newTestParcel(t)
		dims, err := kernel.NewDimensions(20, 14, 10) // 2800/166 ~ 16.87 lb
		require.NoError(t, err)
		require.NoError(t, p.SetDimensions(dims))

		assert.InDelta(t, 2800.0/166.0, p.BillableWeight().Pounds(), 0.0001)
	})

	t.Run("scale weight wins when larger", func(t *testing.T) {
		p := newTestParcel(t)
		dims, err := kernel.NewDimensions(2, 2, 2) // 8/166 lb, well below 5 lb
		require.NoError(t, err)
		require.NoError(t, p.SetDimensions(dims))

		assert.InDelta(t, 5, p.BillableWeight().Pounds(), 0.0001)
	})
}

func TestParcel_JoinConsolidation(t *testing.T) {
	t.Run("from received", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.JoinConsolidation())
		assert.Equal(t, parcel.Consolidated, p.Status())
	})

	t.Run("from warehouse", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.MoveToWarehouse())
		require.NoError(t, p.JoinConsolidation())
		assert.Equal(t, parcel.Consolidated, p.Status())
	})

	t.Run("joining twice is rejected", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.JoinConsolidation())
		require.Error(t, p.JoinConsolidation())
	})
}

func TestParcel_ApplyCascadeTarget(t *testing.T) {
	t.Run("legal transition applies", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.JoinConsolidation())

		assert.True(t, p.ApplyCascadeTarget(parcel.InTransit))
		assert.Equal(t, parcel.InTransit, p.Status())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.JoinConsolidation())
		require.True(t, p.ApplyCascadeTarget(parcel.InTransit))

		assert.False(t, p.ApplyCascadeTarget(parcel.InTransit))
		assert.Equal(t, parcel.InTransit, p.Status())
	})

	t.Run("illegal transition is skipped, not applied", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.MarkReturned())

		assert.False(t, p.ApplyCascadeTarget(parcel.InTransit))
		assert.Equal(t, parcel.Returned, p.Status())
	})

	t.Run("skipping ahead is not allowed", func(t *testing.T) {
		p := newTestParcel(t)

		// Received parcel cannot jump straight to delivered.
		assert.False(t, p.ApplyCascadeTarget(parcel.Delivered))
		assert.Equal(t, parcel.Received, p.Status())
	})
}

func TestParcel_ManualTerminalTransitions(t *testing.T) {
	t.Run("returned from any non-terminal state", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.JoinConsolidation())
		require.NoError(t, p.MarkReturned())
		assert.Equal(t, parcel.Returned, p.Status())
	})

	t.Run("lost from transit", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.JoinConsolidation())
		require.True(t, p.ApplyCascadeTarget(parcel.InTransit))
		require.NoError(t, p.MarkLost())
		assert.Equal(t, parcel.Lost, p.Status())
	})

	t.Run("no transition out of a terminal state", func(t *testing.T) {
		p := newTestParcel(t)
		require.NoError(t, p.MarkLost())
		require.Error(t, p.MarkReturned())
		require.Error(t, p.MoveToWarehouse())
	})
}

func TestRestoreParcel(t *testing.T) {
	id := kernel.NewUUID()
	clientID := kernel.NewUUID()
	originID := kernel.NewUUID()
	weight, _ := kernel.NewWeight(7.5)
	dims, _ := kernel.NewDimensions(10, 10, 10)
	receivedAt := time.Now().Add(-24 * time.Hour)

	p, err := parcel.RestoreParcel(
		id, "TRK-0042", &clientID, originID, weight, &dims, 2, true, true,
		parcel.InTransit, receivedAt,
	)

	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.True(t, p.ID().IsEqual(id))
	assert.Equal(t, parcel.InTransit, p.Status())
	assert.Equal(t, 2, p.PieceCount())
	assert.True(t, p.IsFragile())
	assert.True(t, p.NeedsRepack())
	require.NotNil(t, p.Client())
	assert.True(t, p.Client().IsEqual(clientID))
}

func TestNewEvent(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		e, err := parcel.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(),
			"consolidated", "in_transit",
			"ops@example.com", "cascade from consolidation CONS-9",
			time.Now(),
		)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.Equal(t, "consolidated", e.FromLabel())
		assert.Equal(t, "in_transit", e.ToLabel())
	})

	t.Run("missing actor is rejected", func(t *testing.T) {
		_, err := parcel.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(),
			"consolidated", "in_transit", "", "", time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing labels are rejected", func(t *testing.T) {
		_, err := parcel.NewEvent(
			kernel.NewUUID(), kernel.NewUUID(),
			"", "in_transit", "ops", "", time.Now(),
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
