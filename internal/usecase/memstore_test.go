package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/linkedin-tracker/internal/entity"
)

// memStore is an in-memory IngestionStore with real transaction semantics:
// writes land on a staged copy and only become visible on commit. conflicts
// makes the next N commits fail with the retryable conflict error, to
// exercise the pipeline's retry loop.
type memStore struct {
	prospects map[string]entity.Prospect
	events    []entity.Event
	nextID    int64
	conflicts int
	txCount   int
}

func newMemStore() *memStore {
	return &memStore{prospects: map[string]entity.Prospect{}}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx ProspectTx) error) error {
	s.txCount++

	tx := &memTx{store: s, staged: map[string]entity.Prospect{}}
	for url, p := range s.prospects {
		tx.staged[url] = p
	}

	if err := fn(tx); err != nil {
		return err
	}

	if s.conflicts > 0 {
		s.conflicts--
		return fmt.Errorf("%w: simulated", entity.ErrConflict)
	}

	s.prospects = tx.staged
	s.events = append(s.events, tx.stagedEvents...)
	return nil
}

func (s *memStore) prospect(url string) *entity.Prospect {
	p, ok := s.prospects[url]
	if !ok {
		return nil
	}
	return &p
}

type memTx struct {
	store        *memStore
	staged       map[string]entity.Prospect
	stagedEvents []entity.Event
}

func (t *memTx) LockByLinkedInURL(ctx context.Context, url string) (*entity.Prospect, error) {
	p, ok := t.staged[url]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memTx) CreateProspect(ctx context.Context, p *entity.Prospect) error {
	t.store.nextID++
	p.ID = t.store.nextID
	t.staged[p.LinkedInURL] = *p
	return nil
}

func (t *memTx) UpdateProspect(ctx context.Context, p *entity.Prospect) error {
	t.staged[p.LinkedInURL] = *p
	return nil
}

func (t *memTx) AppendEvent(ctx context.Context, e *entity.Event) error {
	t.store.nextID++
	e.ID = t.store.nextID
	t.stagedEvents = append(t.stagedEvents, *e)
	return nil
}
