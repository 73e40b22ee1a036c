package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewGenerateBulkInvoicesCommand(t *testing.T) {
	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewGenerateBulkInvoicesCommand(kernel.NewUUID(), time.Now().UTC())
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("unset consolidation id is rejected", func(t *testing.T) {
		_, err := commands.NewGenerateBulkInvoicesCommand(kernel.UUID{}, time.Now().UTC())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero issue date is rejected", func(t *testing.T) {
		_, err := commands.NewGenerateBulkInvoicesCommand(kernel.NewUUID(), time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.GenerateBulkInvoicesCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrGenerateBulkInvoicesCommandIsNotConstructed)
	})
}
