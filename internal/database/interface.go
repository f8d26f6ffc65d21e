package database

import (
	"context"
	"time"
)

// DB is the persistence boundary used by the database preference store.
type DB interface {
	// GetPreference returns the value stored under name for a device.
	// The boolean is false when nothing was stored.
	GetPreference(ctx context.Context, deviceID, name string) (string, bool, error)
	// SetPreference stores value under name for a device, replacing any previous value.
	SetPreference(ctx context.Context, deviceID, name, value string) error
	// GetPreferenceStats summarizes what is stored across all devices.
	GetPreferenceStats(ctx context.Context) (*PreferenceStats, error)
	Optimize(ctx context.Context) error
	Close() error
}

// PreferenceStats provides overall statistics about stored preferences.
type PreferenceStats struct {
	Devices              int64
	AuthenticatedDevices int64
	DarkDevices          int64
	LightDevices         int64
	LastWrite            *time.Time
}
