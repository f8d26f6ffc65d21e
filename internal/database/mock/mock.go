package mock

import (
	"context"
	"sync"
	"time"

	"github.com/jon4hz/admindash/internal/database"
)

var _ database.DB = (*MockDB)(nil)

// MockDB is an in-memory implementation of database.DB for testing.
type MockDB struct {
	mu sync.RWMutex

	prefs     map[string]map[string]string
	lastWrite *time.Time

	// Call counters
	GetPreferenceCalls int
	SetPreferenceCalls int
	OptimizeCalls      int

	// Error simulation
	GetPreferenceError      error
	SetPreferenceError      error
	GetPreferenceStatsError error
	OptimizeError           error
}

// NewMockDB creates an empty mock database.
func NewMockDB() *MockDB {
	return &MockDB{
		prefs: make(map[string]map[string]string),
	}
}

func (m *MockDB) GetPreference(_ context.Context, deviceID, name string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetPreferenceCalls++
	if m.GetPreferenceError != nil {
		return "", false, m.GetPreferenceError
	}
	value, ok := m.prefs[deviceID][name]
	return value, ok, nil
}

func (m *MockDB) SetPreference(_ context.Context, deviceID, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SetPreferenceCalls++
	if m.SetPreferenceError != nil {
		return m.SetPreferenceError
	}
	if m.prefs[deviceID] == nil {
		m.prefs[deviceID] = make(map[string]string)
	}
	m.prefs[deviceID][name] = value
	now := time.Now()
	m.lastWrite = &now
	return nil
}

func (m *MockDB) GetPreferenceStats(_ context.Context) (*database.PreferenceStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.GetPreferenceStatsError != nil {
		return nil, m.GetPreferenceStatsError
	}

	stats := &database.PreferenceStats{
		Devices:   int64(len(m.prefs)),
		LastWrite: m.lastWrite,
	}
	for _, prefs := range m.prefs {
		if prefs[database.PreferenceAuthToken] != "" {
			stats.AuthenticatedDevices++
		}
		switch prefs[database.PreferenceTheme] {
		case "dark":
			stats.DarkDevices++
		case "light":
			stats.LightDevices++
		}
	}
	return stats, nil
}

func (m *MockDB) Optimize(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.OptimizeCalls++
	return m.OptimizeError
}

func (m *MockDB) Close() error {
	return nil
}

// Value returns what is stored for a device without touching the call counters.
func (m *MockDB) Value(deviceID, name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.prefs[deviceID][name]
	return value, ok
}
