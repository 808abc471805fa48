package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

func TestReconcileStatusConnectionSent(t *testing.T) {
	now := time.Now().UTC()
	p := &entity.Prospect{Status: entity.StatusQualified}

	changed := ReconcileStatus(p, entity.EventConnectionSent, now)

	assert.True(t, changed)
	assert.Equal(t, entity.StatusConnectionSent, p.Status)
	assert.Equal(t, now, *p.ConnectionSentAt)
}

func TestReconcileStatusConnectionAccepted(t *testing.T) {
	now := time.Now().UTC()
	p := &entity.Prospect{Status: entity.StatusConnectionSent}

	changed := ReconcileStatus(p, entity.EventConnectionAccepted, now)

	assert.True(t, changed)
	assert.Equal(t, entity.StatusConnected, p.Status)
	assert.Equal(t, now, *p.ConnectionAcceptedAt)
}

func TestReconcileStatusUnknownEventTypesAreNoOps(t *testing.T) {
	for _, eventType := range []string{"message_sent", "reply_received", "", "CONNECTION_REQUEST_SENT"} {
		p := &entity.Prospect{Status: entity.StatusQualified}
		changed := ReconcileStatus(p, eventType, time.Now().UTC())

		assert.False(t, changed, "event type %q should not transition", eventType)
		assert.Equal(t, entity.StatusQualified, p.Status)
		assert.Nil(t, p.ConnectionSentAt)
		assert.Nil(t, p.ConnectionAcceptedAt)
	}
}

func TestReconcileStatusNeverRegressesFromConnected(t *testing.T) {
	acceptedAt := time.Now().UTC().Add(-time.Hour)
	p := &entity.Prospect{Status: entity.StatusConnected, ConnectionAcceptedAt: &acceptedAt}

	// Out-of-order sent event after the accept.
	ReconcileStatus(p, entity.EventConnectionSent, time.Now().UTC())
	assert.Equal(t, entity.StatusConnected, p.Status)

	// Duplicate accept does not re-stamp.
	changed := ReconcileStatus(p, entity.EventConnectionAccepted, time.Now().UTC())
	assert.False(t, changed)
	assert.Equal(t, acceptedAt, *p.ConnectionAcceptedAt)
}

func TestReconcileStatusIdempotent(t *testing.T) {
	now := time.Now().UTC()
	p := &entity.Prospect{Status: entity.StatusQualified}

	ReconcileStatus(p, entity.EventConnectionSent, now)
	snapshot := *p

	changed := ReconcileStatus(p, entity.EventConnectionSent, now.Add(time.Minute))
	assert.False(t, changed)
	assert.Equal(t, snapshot, *p)
}
