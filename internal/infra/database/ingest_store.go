package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
	"github.com/xavierca1/linkedin-tracker/internal/usecase"
)

// IngestStore runs one ingestion (merge + append + reconcile) as a single
// transaction. The prospect row is taken FOR UPDATE so a concurrent webhook
// delivery and a backfill sighting of the same prospect serialize instead of
// racing a lost update.
type IngestStore struct {
	DB *sql.DB
}

func NewIngestStore(db *sql.DB) *IngestStore {
	return &IngestStore{DB: db}
}

func (s *IngestStore) WithinTx(ctx context.Context, fn func(tx usecase.ProspectTx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&prospectTx{tx: tx}); err != nil {
		tx.Rollback()
		return mapConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return mapConflict(err)
	}
	return nil
}

// mapConflict turns unique-key races and serialization failures into the
// retryable conflict sentinel.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "40001", "40P01":
			return fmt.Errorf("%w: %s", entity.ErrConflict, pgErr.Code)
		}
	}
	return err
}

type prospectTx struct {
	tx *sql.Tx
}

func (t *prospectTx) LockByLinkedInURL(ctx context.Context, linkedinURL string) (*entity.Prospect, error) {
	query := `
		SELECT id, linkedin_url, first_name, last_name, company, title, email,
		       heyreach_lead_id, status, connection_sent_at, connection_accepted_at,
		       blacklisted, created_at, updated_at
		FROM prospects
		WHERE linkedin_url = $1
		FOR UPDATE
	`

	p, err := scanProspect(t.tx.QueryRowContext(ctx, query, linkedinURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (t *prospectTx) CreateProspect(ctx context.Context, p *entity.Prospect) error {
	query := `
		INSERT INTO prospects (linkedin_url, first_name, last_name, company, title,
		                       email, heyreach_lead_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	return t.tx.QueryRowContext(ctx, query,
		p.LinkedInURL,
		nullString(p.FirstName),
		nullString(p.LastName),
		nullString(p.Company),
		nullString(p.Title),
		nullString(p.Email),
		nullString(p.HeyreachLeadID),
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
}

func (t *prospectTx) UpdateProspect(ctx context.Context, p *entity.Prospect) error {
	query := `
		UPDATE prospects
		SET first_name = $2, last_name = $3, company = $4, title = $5, email = $6,
		    heyreach_lead_id = $7, status = $8, connection_sent_at = $9,
		    connection_accepted_at = $10, updated_at = $11
		WHERE id = $1
	`

	_, err := t.tx.ExecContext(ctx, query,
		p.ID,
		nullString(p.FirstName),
		nullString(p.LastName),
		nullString(p.Company),
		nullString(p.Title),
		nullString(p.Email),
		nullString(p.HeyreachLeadID),
		p.Status,
		p.ConnectionSentAt,
		p.ConnectionAcceptedAt,
		p.UpdatedAt,
	)
	return err
}

func (t *prospectTx) AppendEvent(ctx context.Context, e *entity.Event) error {
	query := `
		INSERT INTO events (prospect_id, event_type, heyreach_lead_id, raw_payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return t.tx.QueryRowContext(ctx, query,
		e.ProspectID,
		e.EventType,
		nullString(e.HeyreachLeadID),
		nullString(e.RawPayload),
		e.CreatedAt,
	).Scan(&e.ID)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
