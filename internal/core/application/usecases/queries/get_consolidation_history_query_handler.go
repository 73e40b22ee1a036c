package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetConsolidationHistoryQueryHandler retrieves a consolidation's audit
// events from the database. Uses direct SQL queries for optimal read
// performance in the CQRS pattern.
//
// Example:
//
//	handler := NewGetConsolidationHistoryQueryHandler(db)
//	query, _ := NewGetConsolidationHistoryQuery(consolidationID)
//
//	events, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to load history: %v", err)
//	    return err
//	}
//	fmt.Printf("%d events recorded\n", len(events))
type GetConsolidationHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetConsolidationHistoryQueryHandler creates a handler for history
// queries. Requires a GORM database connection for query execution.
func NewGetConsolidationHistoryQueryHandler(db *gorm.DB) GetConsolidationHistoryQueryHandler {
	return GetConsolidationHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve one consolidation's audit trail.
// Returns events ordered by event date, oldest first.
func (h GetConsolidationHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetConsolidationHistoryQuery,
) ([]GetConsolidationHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	events := make([]GetConsolidationHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			label_text,
			city,
			comment,
			notify_email,
			notify_whatsapp,
			actor,
			event_date
		FROM consolidation_events
		WHERE consolidation_id = ?
		ORDER BY event_date, id
	`, query.ConsolidationID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetConsolidationHistoryQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&event.LabelText,
			&event.City,
			&event.Comment,
			&event.NotifyEmail,
			&event.NotifyWhatsApp,
			&event.Actor,
			&event.EventDate,
		)
		if err != nil {
			return nil, err
		}

		eventID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		event.EventID = eventID
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
