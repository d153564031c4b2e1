package repositories

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/retailcore/pos-gateway/internal/errors"
	"github.com/retailcore/pos-gateway/internal/purchase"
)

// DraftStore holds open purchase order drafts in memory, keyed by draft ID.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[uuid.UUID]*purchase.Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{
		drafts: make(map[uuid.UUID]*purchase.Draft),
	}
}

func (s *DraftStore) Create(ctx context.Context) *purchase.Draft {
	d := purchase.NewDraft()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[d.ID] = d

	return d
}

func (s *DraftStore) Get(ctx context.Context, id uuid.UUID) (*purchase.Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, errors.NotFoundError("Purchase order draft not found")
	}

	return d, nil
}

func (s *DraftStore) Delete(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
}

func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.drafts)
}
