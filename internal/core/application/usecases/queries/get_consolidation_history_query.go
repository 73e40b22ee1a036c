package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrGetConsolidationHistoryQueryIsNotConstructed = errors.New(
	"GetConsolidationHistoryQuery must be created via NewGetConsolidationHistoryQuery constructor",
)

// GetConsolidationHistoryQuery retrieves the full audit trail of one
// consolidation, oldest event first.
//
// Example:
//
//	query, err := NewGetConsolidationHistoryQuery(consolidationID)
//	if err != nil {
//	    return fmt.Errorf("invalid history request: %w", err)
//	}
//
//	handler := NewGetConsolidationHistoryQueryHandler(db)
//	events, err := handler.Handle(ctx, query)
type GetConsolidationHistoryQuery struct { //nolint:recvcheck //using for validation
	consolidationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetConsolidationHistoryQuery creates a query for one consolidation's
// audit trail.
func NewGetConsolidationHistoryQuery(consolidationID kernel.UUID) (GetConsolidationHistoryQuery, error) {
	query := GetConsolidationHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setConsolidationID(consolidationID); err != nil {
		return GetConsolidationHistoryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetConsolidationHistoryQueryIsNotConstructed if validation fails.
func (q GetConsolidationHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetConsolidationHistoryQueryIsNotConstructed)
}

// ConsolidationID returns the consolidation whose history is requested.
func (q GetConsolidationHistoryQuery) ConsolidationID() kernel.UUID {
	return q.consolidationID
}

func (q *GetConsolidationHistoryQuery) setConsolidationID(consolidationID kernel.UUID) error {
	if err := consolidationID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("consolidationId", err)
	}

	q.consolidationID = consolidationID
	return nil
}

// GetConsolidationHistoryQueryResponse is one audit event in the read model.
// LabelText carries the label exactly as the operator recorded it.
type GetConsolidationHistoryQueryResponse struct {
	EventID        kernel.UUID
	LabelText      string
	City           string
	Comment        string
	NotifyEmail    bool
	NotifyWhatsApp bool
	Actor          string
	EventDate      time.Time
}
