package catalog

import (
	"sync/atomic"

	"github.com/hemant18-09/DOCai/internal/model"
)

// Store holds the current catalog snapshot behind a single atomic
// reference. Readers always see a complete snapshot, never a
// half-applied update; an in-flight assessment keeps scoring against
// the snapshot it loaded even if a swap happens concurrently.
type Store struct {
	current atomic.Pointer[model.Catalog]
}

// NewStore creates a store seeded with the given snapshot. A nil
// initial snapshot is replaced with an empty catalog so Current never
// returns nil.
func NewStore(initial *model.Catalog) *Store {
	s := &Store{}
	if initial == nil {
		initial = model.EmptyCatalog()
	}
	s.current.Store(initial)
	return s
}

// Current returns the catalog snapshot in effect right now.
func (s *Store) Current() *model.Catalog {
	return s.current.Load()
}

// Swap publishes a new snapshot. Nil is ignored: a failed refresh must
// never evict the last-known-good catalog.
func (s *Store) Swap(next *model.Catalog) {
	if next == nil {
		return
	}
	s.current.Store(next)
}
