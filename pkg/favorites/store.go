// Package favorites keeps the locally persisted set of favorite recipe ids
// and resolves it into full recipes.
package favorites

import (
	"slices"
	"sync"

	json "github.com/json-iterator/go"
	"github.com/zfogg/resep/pkg/events"
	"github.com/zfogg/resep/pkg/logger"
	"github.com/zfogg/resep/pkg/storage"
)

// StorageKey is the key the set is persisted under
const StorageKey = "favorites"

// Set is an ordered list of unique recipe ids
type Set []string

// Change is broadcast after every mutation. External is true when the
// change was made by another process sharing the same storage; RecipeID is
// empty in that case since only the whole blob is known to have changed.
type Change struct {
	RecipeID    string
	IsFavorited bool
	External    bool
}

// Store wraps the persisted favorites blob. Safe for concurrent use within
// one process; across processes the last writer wins.
type Store struct {
	mu      sync.Mutex
	backend storage.Store
	bus     *events.Bus[Change]
	unwatch func()
}

// NewStore creates a store over backend and starts relaying external
// changes of the favorites key to OnChange listeners
func NewStore(backend storage.Store) *Store {
	s := &Store{
		backend: backend,
		bus:     events.NewBus[Change](),
	}
	s.unwatch = backend.Subscribe(StorageKey, func(storage.Event) {
		s.bus.Publish(Change{External: true})
	})
	return s
}

// Close stops relaying external changes
func (s *Store) Close() {
	if s.unwatch != nil {
		s.unwatch()
	}
}

// OnChange registers fn for every change notification
func (s *Store) OnChange(fn func(Change)) (unsubscribe func()) {
	return s.bus.Subscribe(fn)
}

// load reads the persisted set. Missing or malformed data is an empty set;
// duplicates in the blob are dropped keeping the first occurrence.
func (s *Store) load() Set {
	raw, ok, err := s.backend.Get(StorageKey)
	if err != nil {
		logger.Warn("Failed to read favorites", "error", err)
		return Set{}
	}
	if !ok || raw == "" {
		return Set{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		logger.Warn("Ignoring malformed favorites", "error", err)
		return Set{}
	}

	out := make(Set, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Store) save(set Set) {
	data, err := json.Marshal(set)
	if err != nil {
		logger.Error("Failed to encode favorites", "error", err)
		return
	}
	if err := s.backend.Set(StorageKey, string(data)); err != nil {
		logger.Error("Failed to persist favorites", "error", err)
	}
}

// List returns a copy of the current set
func (s *Store) List() Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Has reports whether id is a favorite
func (s *Store) Has(id string) bool {
	return slices.Contains(s.List(), id)
}

// Count returns the number of favorites
func (s *Store) Count() int {
	return len(s.List())
}

// Toggle flips membership of id and returns the new state
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	set := s.load()
	favorited := true
	if i := slices.Index(set, id); i >= 0 {
		set = slices.Delete(set, i, i+1)
		favorited = false
	} else {
		set = append(set, id)
	}
	s.save(set)
	s.mu.Unlock()

	s.bus.Publish(Change{RecipeID: id, IsFavorited: favorited})
	return favorited
}

// Add adds id and reports whether it was absent before
func (s *Store) Add(id string) bool {
	s.mu.Lock()
	set := s.load()
	if slices.Contains(set, id) {
		s.mu.Unlock()
		return false
	}
	s.save(append(set, id))
	s.mu.Unlock()

	s.bus.Publish(Change{RecipeID: id, IsFavorited: true})
	return true
}

// Remove removes id and reports whether it was present before
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	set := s.load()
	i := slices.Index(set, id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.save(slices.Delete(set, i, i+1))
	s.mu.Unlock()

	s.bus.Publish(Change{RecipeID: id, IsFavorited: false})
	return true
}
