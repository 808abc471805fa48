package entity

import (
	"context"
	"time"
)

// Event types that drive status transitions. Anything else from upstream is
// stored in the ledger but leaves the prospect status untouched.
const (
	EventConnectionSent     = "connection_request_sent"
	EventConnectionAccepted = "connection_request_accepted"
)

// Entidade: Event — append-only ledger row. Never updated or deleted;
// duplicate deliveries produce duplicate rows on purpose (audit trail, not a
// dedup index). ProspectID is nullable in the schema, reserved for payloads
// whose prospect could not be materialized.
type Event struct {
	ID             int64     `json:"id"`
	ProspectID     *int64    `json:"prospect_id,omitempty"`
	EventType      string    `json:"event_type"`
	HeyreachLeadID string    `json:"heyreach_lead_id,omitempty"`
	RawPayload     string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

type EventRepositoryInterface interface {
	List(ctx context.Context, eventType string, limit, offset int) ([]Event, int, error)
	ListByProspect(ctx context.Context, prospectID int64) ([]Event, error)
	CountAll(ctx context.Context) (int, error)
	LastEventAt(ctx context.Context) (*time.Time, error)
}
