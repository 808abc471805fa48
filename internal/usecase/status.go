package usecase

import (
	"time"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// ReconcileStatus applies the status transition for one incoming event type.
// Pure over (prospect, event type, now); unknown event types leave the
// prospect untouched. Timestamps are stamped once and never re-stamped, so
// replaying the same event is a no-op. Reports whether anything changed.
func ReconcileStatus(p *entity.Prospect, eventType string, now time.Time) bool {
	switch eventType {
	case entity.EventConnectionSent:
		changed := false
		if p.ConnectionSentAt == nil {
			p.ConnectionSentAt = &now
			changed = true
		}
		// A sent event can arrive after the accept (out-of-order delivery,
		// or a backfill racing the live channel). Never regress a connected
		// prospect.
		if p.Status != entity.StatusConnected && p.Status != entity.StatusConnectionSent {
			p.Status = entity.StatusConnectionSent
			changed = true
		}
		if changed {
			p.UpdatedAt = now
		}
		return changed
	case entity.EventConnectionAccepted:
		changed := false
		if p.ConnectionAcceptedAt == nil {
			p.ConnectionAcceptedAt = &now
			changed = true
		}
		if p.Status != entity.StatusConnected {
			p.Status = entity.StatusConnected
			changed = true
		}
		if changed {
			p.UpdatedAt = now
		}
		return changed
	default:
		return false
	}
}
