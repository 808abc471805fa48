package usecase

import (
	"context"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// IngestionStore owns the atomicity boundary: merge + append + reconcile
// happen inside one WithinTx call or not at all. Implementations map
// concurrent-write collisions to ErrConflict so the pipeline can retry.
type IngestionStore interface {
	WithinTx(ctx context.Context, fn func(tx ProspectTx) error) error
}

// ProspectTx is the write surface available inside one ingestion transaction.
type ProspectTx interface {
	// LockByLinkedInURL returns the prospect row locked for update, or nil
	// when no row exists yet.
	LockByLinkedInURL(ctx context.Context, linkedinURL string) (*entity.Prospect, error)
	CreateProspect(ctx context.Context, p *entity.Prospect) error
	UpdateProspect(ctx context.Context, p *entity.Prospect) error
	AppendEvent(ctx context.Context, e *entity.Event) error
}

// CampaignLeadSource is the slice of the HeyReach API the backfill needs.
type CampaignLeadSource interface {
	GetAllCampaignLeads(ctx context.Context, campaignID string) ([]map[string]any, error)
}
