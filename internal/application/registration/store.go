// internal/application/registration/store.go
package registration

import (
	"errors"
	"sync"
)

var ErrDraftNotFound = errors.New("registration draft not found")

// DraftStore keeps in-progress drafts in memory, keyed by draft ID.
// Drafts are process-scoped scratch state, not durable data; losing
// them on restart only loses unsubmitted form input.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*Draft)}
}

// Create starts a new draft and registers it. The returned draft is a
// snapshot; changes reach the stored draft only through Update.
func (s *DraftStore) Create() *Draft {
	d := NewDraft()
	s.mu.Lock()
	s.drafts[d.ID] = d
	snap := d.Clone()
	s.mu.Unlock()
	return snap
}

// Get returns a snapshot of the draft, copied under the store lock.
// The stored draft never escapes the lock, so a caller can encode the
// snapshot while a concurrent submit settles the draft.
func (s *DraftStore) Get(id string) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d.Clone(), nil
}

// Discard drops a draft. Discarding an unknown ID is a no-op.
func (s *DraftStore) Discard(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}

// Update runs fn on the draft under the store lock. fn must not block.
func (s *DraftStore) Update(id string, fn func(*Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return ErrDraftNotFound
	}
	return fn(d)
}
