// Package prefs holds the per-client key-value store that backs the
// authentication token and the theme preference.
package prefs

import (
	"context"
	"sync"

	"github.com/jon4hz/admindash/internal/database"
)

// Keys written by the application.
const (
	KeyAuthToken = database.PreferenceAuthToken
	KeyTheme     = database.PreferenceTheme
)

// Store is a string key-value store scoped to a single client.
// A key holds at most one value; the last write wins.
type Store interface {
	// Get returns the stored value. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}

// Memory is a Store kept in process memory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
