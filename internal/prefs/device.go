package prefs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jon4hz/admindash/internal/cache"
	"github.com/jon4hz/admindash/internal/config"
	"github.com/jon4hz/admindash/internal/database"
)

const deviceCachePrefix = "prefs-"

type cachedValue struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// DeviceStore keeps the values of one device in the database, with a
// write-through cache in front of it.
type DeviceStore struct {
	deviceID string
	db       database.DB
	cache    *cache.PrefixedCache[cachedValue]
}

var _ Store = (*DeviceStore)(nil)

func cacheKey(deviceID, key string) string {
	return deviceID + "/" + key
}

// DeviceID returns the id of the device the store belongs to.
func (s *DeviceStore) DeviceID() string {
	return s.deviceID
}

func (s *DeviceStore) Get(ctx context.Context, key string) (string, bool, error) {
	if cached, err := s.cache.Get(ctx, cacheKey(s.deviceID, key)); err == nil {
		return cached.Value, cached.Found, nil
	}

	value, ok, err := s.db.GetPreference(ctx, s.deviceID, key)
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	if err := s.cache.Set(ctx, cacheKey(s.deviceID, key), cachedValue{Value: value, Found: ok}); err != nil {
		log.Warn("Failed to cache preference", "device", s.deviceID, "key", key, "error", err)
	}
	return value, ok, nil
}

func (s *DeviceStore) Set(ctx context.Context, key, value string) error {
	if err := s.db.SetPreference(ctx, s.deviceID, key, value); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}

	if err := s.cache.Set(ctx, cacheKey(s.deviceID, key), cachedValue{Value: value, Found: true}); err != nil {
		log.Warn("Failed to cache preference, dropping cached value", "device", s.deviceID, "key", key, "error", err)
		if err := s.cache.Delete(ctx, cacheKey(s.deviceID, key)); err != nil {
			log.Error("Failed to drop cached preference", "device", s.deviceID, "key", key, "error", err)
		}
	}
	return nil
}

// DeviceBackend identifies clients by a random device id cookie and serves a
// DeviceStore for that id.
type DeviceBackend struct {
	db         database.DB
	cache      *cache.PrefixedCache[cachedValue]
	cookieName string
	maxAge     int
	secure     bool
}

// NewDeviceBackend creates a backend storing preferences in db.
func NewDeviceBackend(db database.DB, cfg *config.Config) *DeviceBackend {
	return &DeviceBackend{
		db:         db,
		cache:      cache.New[cachedValue](cfg.Cache, deviceCachePrefix),
		cookieName: cfg.Store.DeviceCookie,
		maxAge:     cfg.SessionMaxAge,
		secure:     cfg.SecureCookies,
	}
}

func (b *DeviceBackend) StoreFor(c *gin.Context) (Store, error) {
	deviceID, err := c.Cookie(b.cookieName)
	if err != nil || !validDeviceID(deviceID) {
		deviceID = uuid.NewString()
		log.Debug("Assigned new device id", "device", deviceID)
	}

	// refresh the cookie so active devices keep their id
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(b.cookieName, deviceID, b.maxAge, "/", "", b.secure, true)

	return &DeviceStore{
		deviceID: deviceID,
		db:       b.db,
		cache:    b.cache,
	}, nil
}

// CacheStats returns the hit/miss statistics of the preference cache.
func (b *DeviceBackend) CacheStats() *cache.Stats {
	return &cache.Stats{
		Stats:     b.cache.GetStats(),
		CacheName: "preferences",
	}
}

func validDeviceID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
