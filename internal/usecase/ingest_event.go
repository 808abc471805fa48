package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// Source of one delivery. The backfill source gets the already-connected skip
// (no write at all, so reruns stay idempotent and countable); the live webhook
// source always appends a ledger row, duplicates included.
const (
	SourceWebhook  = "webhook"
	SourceBackfill = "backfill"
)

const conflictRetries = 3

// IngestInput is one canonical delivery, from either channel.
type IngestInput struct {
	EventType  string
	Lead       map[string]any
	RawPayload string
	Source     string
}

// IngestResult reports what the transaction actually did, for caller-side
// counting.
type IngestResult struct {
	Prospect         *entity.Prospect
	Created          bool
	StatusChanged    bool
	AlreadyConnected bool
}

type IngestEventUseCase struct {
	Store IngestionStore
}

func NewIngestEventUseCase(store IngestionStore) *IngestEventUseCase {
	return &IngestEventUseCase{Store: store}
}

// ParseWebhook validates a raw webhook body into a canonical delivery.
// Upstream has used both event_type and event for the type field.
func ParseWebhook(body []byte) (IngestInput, error) {
	var envelope struct {
		EventType string         `json:"event_type"`
		Event     string         `json:"event"`
		Lead      map[string]any `json:"lead"`
		Timestamp string         `json:"timestamp"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return IngestInput{}, &ValidationError{Message: "invalid JSON payload"}
	}
	eventType := envelope.EventType
	if eventType == "" {
		eventType = envelope.Event
	}
	if eventType == "" {
		return IngestInput{}, &ValidationError{Message: "missing event_type"}
	}
	if len(envelope.Lead) == 0 {
		return IngestInput{}, &ValidationError{Message: "missing lead object"}
	}
	return IngestInput{
		EventType:  eventType,
		Lead:       envelope.Lead,
		RawPayload: string(body),
		Source:     SourceWebhook,
	}, nil
}

// Resolve runs the validation and identity steps only. The backfill dry-run
// mode uses this to preview a record without touching the store.
func (uc *IngestEventUseCase) Resolve(input IngestInput) (CanonicalLead, string, error) {
	lead := NormalizeLead(input.Lead)
	identity, err := lead.Identity()
	if err != nil {
		return CanonicalLead{}, "", err
	}
	return lead, identity, nil
}

// Execute runs the full pipeline for one delivery: resolve identity, then
// merge prospect + append event + reconcile status as a single transaction.
// The transaction is retried on write conflicts; a concurrent delivery for
// the same prospect serializes on the row lock.
func (uc *IngestEventUseCase) Execute(ctx context.Context, input IngestInput) (IngestResult, error) {
	lead, identity, err := uc.Resolve(input)
	if err != nil {
		return IngestResult{}, err
	}

	var result IngestResult
	for attempt := 1; ; attempt++ {
		result = IngestResult{}
		err = uc.Store.WithinTx(ctx, func(tx ProspectTx) error {
			return uc.ingest(ctx, tx, input, lead, identity, &result)
		})
		if err == nil || !errors.Is(err, entity.ErrConflict) || attempt >= conflictRetries {
			break
		}
		log.Printf("ingest: write conflict on %s, retrying (attempt %d)", identity, attempt)
	}
	return result, err
}

func (uc *IngestEventUseCase) ingest(ctx context.Context, tx ProspectTx, input IngestInput, lead CanonicalLead, identity string, result *IngestResult) error {
	now := time.Now().UTC()

	prospect, err := tx.LockByLinkedInURL(ctx, identity)
	if err != nil {
		return err
	}

	switch {
	case prospect == nil:
		prospect = &entity.Prospect{
			LinkedInURL: identity,
			Status:      entity.StatusQualified,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		prospect.MergeFields(lead.Fields)
		if err := tx.CreateProspect(ctx, prospect); err != nil {
			return err
		}
		result.Created = true
		log.Printf("ingest: created prospect %s", identity)

	case input.Source == SourceBackfill && prospect.Status == entity.StatusConnected &&
		input.EventType == entity.EventConnectionAccepted:
		// Pure re-observation of a state we already hold: skip without
		// writing, so the rerun does not inflate the event ledger.
		result.Prospect = prospect
		result.AlreadyConnected = true
		return nil

	default:
		if prospect.MergeFields(lead.Fields) {
			prospect.UpdatedAt = now
			if err := tx.UpdateProspect(ctx, prospect); err != nil {
				return err
			}
			log.Printf("ingest: updated prospect %s", identity)
		}
	}

	event := &entity.Event{
		ProspectID:     &prospect.ID,
		EventType:      input.EventType,
		HeyreachLeadID: lead.LeadID,
		RawPayload:     input.RawPayload,
		CreatedAt:      now,
	}
	if err := tx.AppendEvent(ctx, event); err != nil {
		return err
	}

	if ReconcileStatus(prospect, input.EventType, now) {
		if err := tx.UpdateProspect(ctx, prospect); err != nil {
			return err
		}
		result.StatusChanged = true
		log.Printf("ingest: prospect %d status -> %s", prospect.ID, prospect.Status)
	}

	result.Prospect = prospect
	return nil
}
