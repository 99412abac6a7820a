// Package state holds the client's local view of the summarizer service: the ordered
// document list and the single selected document. Both containers are observable and are
// only mutated with results the service has already confirmed.
package state

import (
	"errors"
	"sync"

	"docsum/internal/model"
)

// ErrDuplicateID is returned by InsertAtFront when the identifier is already stored.
var ErrDuplicateID = errors.New("state: document id already present")

// Lookup is the read side of Documents needed to reconcile a selection.
type Lookup interface {
	Contains(id string) bool
}

// Documents is the ordered, most-recent-first collection of document records.
// It is safe for concurrent use by multiple goroutines.
type Documents struct {
	mu   sync.RWMutex
	docs []model.Document
	gen  uint64 // bumped on every mutation
	obs  Observers
}

var _ Lookup = (*Documents)(nil)

// NewDocuments returns an empty store.
func NewDocuments() *Documents {
	return &Documents{}
}

// InsertAtFront prepends doc. The store is left unchanged if the id already exists.
func (s *Documents) InsertAtFront(doc model.Document) error {
	s.mu.Lock()
	if s.indexLocked(doc.ID) >= 0 {
		s.mu.Unlock()
		return ErrDuplicateID
	}
	s.docs = append(s.docs, model.Document{})
	copy(s.docs[1:], s.docs)
	s.docs[0] = doc
	s.gen++
	s.mu.Unlock()

	s.obs.Notify()
	return nil
}

// Remove deletes the record with the given id. It reports whether a record was removed;
// removing an absent id is a no-op.
func (s *Documents) Remove(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	s.gen++
	s.mu.Unlock()

	s.obs.Notify()
	return true
}

// RemoveAll empties the store.
func (s *Documents) RemoveAll() {
	s.mu.Lock()
	s.docs = nil
	s.gen++
	s.mu.Unlock()

	s.obs.Notify()
}

// Replace swaps the stored record that has doc's id for doc, keeping its position.
// It reports false, and changes nothing, when no such record exists.
func (s *Documents) Replace(doc model.Document) bool {
	s.mu.Lock()
	i := s.indexLocked(doc.ID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.docs[i] = doc
	s.gen++
	s.mu.Unlock()

	s.obs.Notify()
	return true
}

// Reset replaces the whole collection with a confirmed listing, keeping the given order.
// Later duplicates of an id are dropped.
func (s *Documents) Reset(docs []model.Document) {
	out := dedupe(docs)

	s.mu.Lock()
	s.docs = out
	s.gen++
	s.mu.Unlock()

	s.obs.Notify()
}

// ResetIf is Reset guarded by a generation read before the listing was requested.
// It reports false, and changes nothing, when the store was mutated since gen.
func (s *Documents) ResetIf(gen uint64, docs []model.Document) bool {
	out := dedupe(docs)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return false
	}
	s.docs = out
	s.gen++
	s.mu.Unlock()

	s.obs.Notify()
	return true
}

// Generation returns a counter that changes with every mutation of the store.
func (s *Documents) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Contains reports whether a record with the id is stored.
func (s *Documents) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// Get returns the stored record with the id.
func (s *Documents) Get(id string) (model.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.docs[i], true
	}
	return model.Document{}, false
}

// Len returns the number of stored records.
func (s *Documents) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Snapshot returns a copy of the records in display order.
func (s *Documents) Snapshot() []model.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Subscribe registers fn to run after every change. Call cancel to unsubscribe.
func (s *Documents) Subscribe(fn Listener) (cancel func()) {
	return s.obs.Subscribe(fn)
}

func (s *Documents) indexLocked(id string) int {
	for i := range s.docs {
		if s.docs[i].ID == id {
			return i
		}
	}
	return -1
}

func dedupe(docs []model.Document) []model.Document {
	seen := make(map[string]struct{}, len(docs))
	out := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		out = append(out, d)
	}
	return out
}
