// Package keyvalue provides the secure key-value storage used for wallet and
// authorization tokens. Stores are explicit instances injected into the
// components that need them; there is no process-wide singleton. Reads and
// writes are not transactional across calls, so callers read before use
// instead of caching values.
package keyvalue

import (
	"strconv"
	"sync"
)

// Store is a string-keyed secure store for strings and booleans.
type Store interface {
	// GetString returns the stored string and whether the key was present.
	GetString(key string) (string, bool)
	// SetString stores a string value.
	SetString(key, value string) error
	// GetBool returns the stored boolean and whether the key was present.
	GetBool(key string) (bool, bool)
	// SetBool stores a boolean value.
	SetBool(key string, value bool) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error
}

// MemoryStore is an in-process Store. Safe for concurrent use. Used in tests
// and when the host application opts out of persistence.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// GetString returns the stored string and whether the key was present.
func (m *MemoryStore) GetString(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

// SetString stores a string value.
func (m *MemoryStore) SetString(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// GetBool returns the stored boolean and whether the key was present.
func (m *MemoryStore) GetBool(key string) (bool, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return false, false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return parsed, true
}

// SetBool stores a boolean value.
func (m *MemoryStore) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = strconv.FormatBool(value)
	return nil
}

// Delete removes a key.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
