package storage

import (
	"sync"

	"github.com/zfogg/resep/pkg/events"
)

// Compile-time interface check.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps values in memory. Used by tests and as a fallback when
// the storage directory cannot be created.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	writeErr error
	writes   int
	bus      *events.Bus[Event]
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
		bus:  events.NewBus[Event](),
	}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}
	s.data[key] = value
	s.writes++
	return nil
}

func (s *MemoryStore) Subscribe(key string, fn func(Event)) func() {
	return s.bus.Subscribe(func(e Event) {
		if e.Key == key {
			fn(e)
		}
	})
}

// SetExternal writes value as another process would and notifies
// subscribers of key
func (s *MemoryStore) SetExternal(key, value string) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()

	s.bus.Publish(Event{Key: key, Value: value})
}

// FailWrites makes every following Set return err; nil restores writes
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Writes returns the number of successful Set calls
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
