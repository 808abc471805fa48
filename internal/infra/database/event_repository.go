package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) List(ctx context.Context, eventType string, limit, offset int) ([]entity.Event, int, error) {
	countQuery := `SELECT COUNT(*) FROM events WHERE ($1 = '' OR event_type = $1)`

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, eventType).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, prospect_id, event_type, heyreach_lead_id, created_at
		FROM events
		WHERE ($1 = '' OR event_type = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(ctx, query, eventType, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events, err := scanEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// ListByProspect returns the full history oldest-first, the order a funnel
// reads naturally.
func (r *EventRepository) ListByProspect(ctx context.Context, prospectID int64) ([]entity.Event, error) {
	query := `
		SELECT id, prospect_id, event_type, heyreach_lead_id, created_at
		FROM events
		WHERE prospect_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, prospectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func (r *EventRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total)
	return total, err
}

func (r *EventRepository) LastEventAt(ctx context.Context) (*time.Time, error) {
	var last time.Time
	err := r.DB.QueryRowContext(ctx, `SELECT created_at FROM events ORDER BY created_at DESC LIMIT 1`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &last, nil
}

func scanEvents(rows *sql.Rows) ([]entity.Event, error) {
	events := []entity.Event{}
	for rows.Next() {
		var e entity.Event
		var prospectID sql.NullInt64
		var leadID sql.NullString

		if err := rows.Scan(&e.ID, &prospectID, &e.EventType, &leadID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if prospectID.Valid {
			e.ProspectID = &prospectID.Int64
		}
		e.HeyreachLeadID = leadID.String
		events = append(events, e)
	}
	return events, rows.Err()
}
