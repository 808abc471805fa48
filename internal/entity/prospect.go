package entity

import (
	"context"
	"time"
)

// Status values a prospect moves through during outreach.
// expired and blacklisted are reserved: nothing in the webhook taxonomy
// produces them, but the query layer filters on them.
const (
	StatusQualified      = "qualified"
	StatusConnectionSent = "connection_sent"
	StatusConnected      = "connected"
	StatusExpired        = "expired"
	StatusBlacklisted    = "blacklisted"
)

// AllStatuses in funnel order, used for zero-filled stats projections.
var AllStatuses = []string{
	StatusQualified,
	StatusConnectionSent,
	StatusConnected,
	StatusExpired,
	StatusBlacklisted,
}

// Entidade: Prospect — one row per LinkedIn profile being tracked.
// LinkedInURL is the canonical identity (unique constraint), possibly a
// synthetic heyreach_lead_<id> key when upstream never sent a profile URL.
type Prospect struct {
	ID                   int64      `json:"id"`
	LinkedInURL          string     `json:"linkedin_url"`
	FirstName            string     `json:"first_name,omitempty"`
	LastName             string     `json:"last_name,omitempty"`
	Company              string     `json:"company,omitempty"`
	Title                string     `json:"title,omitempty"`
	Email                string     `json:"email,omitempty"`
	HeyreachLeadID       string     `json:"heyreach_lead_id,omitempty"`
	Status               string     `json:"status"`
	ConnectionSentAt     *time.Time `json:"connection_sent_at,omitempty"`
	ConnectionAcceptedAt *time.Time `json:"connection_accepted_at,omitempty"`
	Blacklisted          bool       `json:"blacklisted"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// MergeFields copies every non-empty incoming value that differs from the
// stored one. Empty incoming values never clear stored data. Reports whether
// anything changed so the caller knows to bump updated_at.
func (p *Prospect) MergeFields(in ProspectFields) bool {
	changed := false
	apply := func(dst *string, src string) {
		if src != "" && *dst != src {
			*dst = src
			changed = true
		}
	}
	apply(&p.HeyreachLeadID, in.HeyreachLeadID)
	apply(&p.FirstName, in.FirstName)
	apply(&p.LastName, in.LastName)
	apply(&p.Company, in.Company)
	apply(&p.Title, in.Title)
	apply(&p.Email, in.Email)
	return changed
}

// ProspectFields is the partial field set carried by one upstream sighting.
type ProspectFields struct {
	HeyreachLeadID string
	FirstName      string
	LastName       string
	Company        string
	Title          string
	Email          string
}

type ProspectRepositoryInterface interface {
	List(ctx context.Context, status string, limit, offset int) ([]Prospect, int, error)
	FindByID(ctx context.Context, id int64) (*Prospect, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}
