package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceConsolidationStatusCommand(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewAdvanceConsolidationStatusCommand(
			kernel.NewUUID(), "At customs", "Miami", "awaiting clearance",
			true, false, "ops@example.com", now,
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, consolidation.LabelAtCustoms, cmd.Label())
		assert.Equal(t, "At customs", cmd.LabelText())
		assert.True(t, cmd.Notify().Email)
		assert.False(t, cmd.Notify().WhatsApp)
	})

	t.Run("label parsing is case-insensitive and keeps the raw text", func(t *testing.T) {
		cmd, err := commands.NewAdvanceConsolidationStatusCommand(
			kernel.NewUUID(), "  in TRANSIT ", "", "",
			false, false, "ops@example.com", now,
		)

		require.NoError(t, err)
		assert.Equal(t, consolidation.LabelInTransit, cmd.Label())
		assert.Equal(t, "  in TRANSIT ", cmd.LabelText())
	})

	t.Run("unknown label is rejected", func(t *testing.T) {
		_, err := commands.NewAdvanceConsolidationStatusCommand(
			kernel.NewUUID(), "teleported", "", "",
			false, false, "ops@example.com", now,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing actor is rejected", func(t *testing.T) {
		_, err := commands.NewAdvanceConsolidationStatusCommand(
			kernel.NewUUID(), "Delivered", "", "",
			false, false, "", now,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero event date is rejected", func(t *testing.T) {
		_, err := commands.NewAdvanceConsolidationStatusCommand(
			kernel.NewUUID(), "Delivered", "", "",
			false, false, "ops@example.com", time.Time{},
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AdvanceConsolidationStatusCommand
		require.ErrorIs(t, cmd.Validate(),
			commands.ErrAdvanceConsolidationStatusCommandIsNotConstructed)
	})
}
