package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateConsolidationCommand(t *testing.T) {
	now := time.Now().UTC()
	parcelIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "MIA-TGU-0142",
			kernel.NewUUID(), kernel.NewUUID(),
			parcelIDs, "ops@example.com", now,
		)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "MIA-TGU-0142", cmd.Code())
		assert.Len(t, cmd.ParcelIDs(), 2)
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		_, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "",
			kernel.NewUUID(), kernel.NewUUID(),
			parcelIDs, "ops@example.com", now,
		)
		require.ErrorIs(t, err, commands.ErrConsolidationCodeIsRequired)
	})

	t.Run("empty parcel selection is rejected", func(t *testing.T) {
		_, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "MIA-TGU-0142",
			kernel.NewUUID(), kernel.NewUUID(),
			nil, "ops@example.com", now,
		)
		require.ErrorIs(t, err, commands.ErrParcelSelectionIsEmpty)
	})

	t.Run("missing actor is rejected", func(t *testing.T) {
		_, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "MIA-TGU-0142",
			kernel.NewUUID(), kernel.NewUUID(),
			parcelIDs, "", now,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unset origin is rejected", func(t *testing.T) {
		_, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "MIA-TGU-0142",
			kernel.UUID{}, kernel.NewUUID(),
			parcelIDs, "ops@example.com", now,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateConsolidationCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateConsolidationCommandIsNotConstructed)
	})

	t.Run("parcel id slice is copied", func(t *testing.T) {
		input := []kernel.UUID{kernel.NewUUID()}
		cmd, err := commands.NewCreateConsolidationCommand(
			kernel.NewUUID(), "MIA-TGU-0142",
			kernel.NewUUID(), kernel.NewUUID(),
			input, "ops@example.com", now,
		)
		require.NoError(t, err)

		input[0] = kernel.NewUUID()
		assert.NotEqual(t, input[0], cmd.ParcelIDs()[0])
	})
}
