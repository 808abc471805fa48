package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

const prospectColumns = `id, linkedin_url, first_name, last_name, company, title, email,
	heyreach_lead_id, status, connection_sent_at, connection_accepted_at,
	blacklisted, created_at, updated_at`

type ProspectRepository struct {
	DB *sql.DB
}

func NewProspectRepository(db *sql.DB) *ProspectRepository {
	return &ProspectRepository{DB: db}
}

func (r *ProspectRepository) List(ctx context.Context, status string, limit, offset int) ([]entity.Prospect, int, error) {
	countQuery := `SELECT COUNT(*) FROM prospects WHERE ($1 = '' OR status = $1)`

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + prospectColumns + `
		FROM prospects
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	prospects := []entity.Prospect{}
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, 0, err
		}
		prospects = append(prospects, *p)
	}
	return prospects, total, rows.Err()
}

func (r *ProspectRepository) FindByID(ctx context.Context, id int64) (*entity.Prospect, error) {
	query := `SELECT ` + prospectColumns + ` FROM prospects WHERE id = $1`

	p, err := scanProspect(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProspectNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProspectRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(entity.AllStatuses))
	for _, status := range entity.AllStatuses {
		counts[status] = 0
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM prospects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProspect(row rowScanner) (*entity.Prospect, error) {
	var p entity.Prospect
	var firstName, lastName, company, title, email, leadID sql.NullString
	var sentAt, acceptedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.LinkedInURL,
		&firstName,
		&lastName,
		&company,
		&title,
		&email,
		&leadID,
		&p.Status,
		&sentAt,
		&acceptedAt,
		&p.Blacklisted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.FirstName = firstName.String
	p.LastName = lastName.String
	p.Company = company.String
	p.Title = title.String
	p.Email = email.String
	p.HeyreachLeadID = leadID.String
	if sentAt.Valid {
		p.ConnectionSentAt = &sentAt.Time
	}
	if acceptedAt.Valid {
		p.ConnectionAcceptedAt = &acceptedAt.Time
	}
	return &p, nil
}
