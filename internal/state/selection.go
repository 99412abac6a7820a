package state

import (
	"sync"

	"docsum/internal/model"
)

// Selection tracks the document currently shown in detail, if any.
// It is safe for concurrent use by multiple goroutines.
type Selection struct {
	mu  sync.RWMutex
	id  string
	set bool
	obs Observers
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Select points the selection at id without checking that it exists.
func (s *Selection) Select(id string) {
	s.mu.Lock()
	changed := !s.set || s.id != id
	s.id, s.set = id, true
	s.mu.Unlock()

	if changed {
		s.obs.Notify()
	}
}

// SelectIfPresent points the selection at id only if docs still holds it. The check and
// the update happen under the selection lock, so a removal followed by Reconcile cannot
// interleave and leave the selection dangling. It reports whether id is now selected.
func (s *Selection) SelectIfPresent(id string, docs Lookup) bool {
	s.mu.Lock()
	if !docs.Contains(id) {
		s.mu.Unlock()
		return false
	}
	changed := !s.set || s.id != id
	s.id, s.set = id, true
	s.mu.Unlock()

	if changed {
		s.obs.Notify()
	}
	return true
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	changed := s.set
	s.id, s.set = "", false
	s.mu.Unlock()

	if changed {
		s.obs.Notify()
	}
}

// Current returns the selected id.
func (s *Selection) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id, s.set
}

// Is reports whether id is the current selection.
func (s *Selection) Is(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set && s.id == id
}

// Reconcile clears the selection when its record is no longer in docs.
// It reports whether the selection was cleared.
func (s *Selection) Reconcile(docs Lookup) bool {
	s.mu.Lock()
	if !s.set || docs.Contains(s.id) {
		s.mu.Unlock()
		return false
	}
	s.id, s.set = "", false
	s.mu.Unlock()

	s.obs.Notify()
	return true
}

// Subscribe registers fn to run after every change. Call cancel to unsubscribe.
func (s *Selection) Subscribe(fn Listener) (cancel func()) {
	return s.obs.Subscribe(fn)
}

// Resolve returns the selected record. A selection whose record is missing from docs
// resolves to nothing, so views never render a dangling selection.
func Resolve(docs *Documents, sel *Selection) (model.Document, bool) {
	id, ok := sel.Current()
	if !ok {
		return model.Document{}, false
	}
	return docs.Get(id)
}
