package database

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Preference names shared with the preference store.
const (
	PreferenceAuthToken = "auth_token"
	PreferenceTheme     = "theme"
)

// Preference is a single value stored for one device.
// There is at most one row per device and name.
type Preference struct {
	gorm.Model
	DeviceID string `gorm:"uniqueIndex:idx_device_name;not null"`
	Name     string `gorm:"uniqueIndex:idx_device_name;not null"`
	Value    string `gorm:"not null"`
}

func (c *Client) GetPreference(ctx context.Context, deviceID, name string) (string, bool, error) {
	var pref Preference
	err := c.db.WithContext(ctx).
		Where("device_id = ? AND name = ?", deviceID, name).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		log.Error("failed to get preference", "device", deviceID, "name", name, "error", err)
		return "", false, err
	}
	return pref.Value, true, nil
}

func (c *Client) SetPreference(ctx context.Context, deviceID, name, value string) error {
	pref := Preference{
		DeviceID: deviceID,
		Name:     name,
		Value:    value,
	}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
	if err != nil {
		log.Error("failed to set preference", "device", deviceID, "name", name, "error", err)
		return err
	}
	return nil
}

func (c *Client) GetPreferenceStats(ctx context.Context) (*PreferenceStats, error) {
	var stats PreferenceStats
	db := c.db.WithContext(ctx).Model(&Preference{})

	if err := db.Distinct("device_id").Count(&stats.Devices).Error; err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(&Preference{}).
		Where("name = ? AND value <> ''", PreferenceAuthToken).
		Count(&stats.AuthenticatedDevices).Error; err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(&Preference{}).
		Where("name = ? AND value = ?", PreferenceTheme, "dark").
		Count(&stats.DarkDevices).Error; err != nil {
		return nil, err
	}

	if err := c.db.WithContext(ctx).Model(&Preference{}).
		Where("name = ? AND value = ?", PreferenceTheme, "light").
		Count(&stats.LightDevices).Error; err != nil {
		return nil, err
	}

	var latest Preference
	err := c.db.WithContext(ctx).Order("updated_at DESC").First(&latest).Error
	switch {
	case err == nil:
		lastWrite := latest.UpdatedAt
		stats.LastWrite = &lastWrite
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, err
	}

	return &stats, nil
}
