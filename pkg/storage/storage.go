// Package storage holds the key/value blob backends used for local state.
//
// A Store behaves like browser localStorage: string values under string
// keys, no transactions, last writer wins. Subscribers hear about changes
// made by someone else (another process sharing the same directory, or
// MemoryStore.SetExternal in tests), never about their own writes.
package storage

import (
	"fmt"
	"strings"
)

// Store is a persisted key/value blob
type Store interface {
	// Get returns the value under key and whether it exists
	Get(key string) (string, bool, error)
	// Set replaces the value under key
	Set(key, value string) error
	// Subscribe registers fn for external changes to key
	Subscribe(key string, fn func(Event)) (unsubscribe func())
}

// Event describes a change to a key made outside this Store handle
type Event struct {
	Key     string
	Value   string
	Deleted bool
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
