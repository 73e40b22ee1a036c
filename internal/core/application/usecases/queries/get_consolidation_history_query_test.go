package queries_test

import (
	"testing"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetConsolidationHistoryQuery_Valid(t *testing.T) {
	id := kernel.NewUUID()
	query, err := queries.NewGetConsolidationHistoryQuery(id)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ConsolidationID().IsEqual(id))
}

func TestNewGetConsolidationHistoryQuery_UnsetID(t *testing.T) {
	_, err := queries.NewGetConsolidationHistoryQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetConsolidationHistoryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetConsolidationHistoryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetConsolidationHistoryQueryIsNotConstructed)
}
