package prefs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jon4hz/admindash/internal/config"
	"github.com/jon4hz/admindash/internal/database/mock"
	"github.com/stretchr/testify/suite"
)

type DeviceStoreTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *mock.MockDB
	backend *DeviceBackend
}

func (s *DeviceStoreTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.ctx = context.Background()
	s.db = mock.NewMockDB()
	s.backend = NewDeviceBackend(s.db, &config.Config{
		SessionMaxAge: 3600,
		Store:         &config.StoreConfig{Type: config.StoreTypeDatabase, DeviceCookie: "device"},
		Cache:         &config.CacheConfig{Type: config.CacheTypeMemory},
	})
}

func (s *DeviceStoreTestSuite) resolve(cookie *http.Cookie) (*DeviceStore, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	store, err := s.backend.StoreFor(c)
	s.Require().NoError(err)
	return store.(*DeviceStore), w
}

func (s *DeviceStoreTestSuite) deviceCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "device" {
			return c
		}
	}
	s.FailNow("device cookie not set")
	return nil
}

func (s *DeviceStoreTestSuite) TestStoreFor_AssignsDeviceID() {
	store, w := s.resolve(nil)
	_, err := uuid.Parse(store.DeviceID())
	s.NoError(err)

	cookie := s.deviceCookie(w)
	s.Equal(store.DeviceID(), cookie.Value)
	s.True(cookie.HttpOnly)
	s.Equal(3600, cookie.MaxAge)
}

func (s *DeviceStoreTestSuite) TestStoreFor_ReusesDeviceID() {
	first, w := s.resolve(nil)
	second, _ := s.resolve(s.deviceCookie(w))
	s.Equal(first.DeviceID(), second.DeviceID())
}

func (s *DeviceStoreTestSuite) TestStoreFor_ReplacesInvalidDeviceID() {
	store, _ := s.resolve(&http.Cookie{Name: "device", Value: "not-a-uuid"})
	s.NotEqual("not-a-uuid", store.DeviceID())
}

func (s *DeviceStoreTestSuite) TestSetGet_WriteThrough() {
	store, _ := s.resolve(nil)

	_, ok, err := store.Get(s.ctx, KeyAuthToken)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(store.Set(s.ctx, KeyAuthToken, "t1"))
	value, stored := s.db.Value(store.DeviceID(), KeyAuthToken)
	s.True(stored)
	s.Equal("t1", value)

	calls := s.db.GetPreferenceCalls
	value, ok, err = store.Get(s.ctx, KeyAuthToken)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("t1", value)
	s.Equal(calls, s.db.GetPreferenceCalls, "cached values do not hit the database")
}

func (s *DeviceStoreTestSuite) TestGet_CachesMisses() {
	store, _ := s.resolve(nil)

	_, _, err := store.Get(s.ctx, KeyTheme)
	s.Require().NoError(err)
	_, _, err = store.Get(s.ctx, KeyTheme)
	s.Require().NoError(err)
	s.Equal(1, s.db.GetPreferenceCalls)
}

func (s *DeviceStoreTestSuite) TestGet_DatabaseError() {
	store, _ := s.resolve(nil)
	s.db.GetPreferenceError = context.DeadlineExceeded

	_, ok, err := store.Get(s.ctx, KeyTheme)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.False(ok)
}

func (s *DeviceStoreTestSuite) TestSet_DatabaseErrorLeavesCacheUntouched() {
	store, _ := s.resolve(nil)
	s.Require().NoError(store.Set(s.ctx, KeyTheme, "dark"))

	s.db.SetPreferenceError = context.DeadlineExceeded
	s.ErrorIs(store.Set(s.ctx, KeyTheme, "light"), context.DeadlineExceeded)

	value, ok, err := store.Get(s.ctx, KeyTheme)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("dark", value)
}

func (s *DeviceStoreTestSuite) TestCacheStats() {
	store, _ := s.resolve(nil)
	s.Require().NoError(store.Set(s.ctx, KeyTheme, "dark"))
	_, _, err := store.Get(s.ctx, KeyTheme)
	s.Require().NoError(err)

	stats := s.backend.CacheStats()
	s.Equal("preferences", stats.CacheName)
	s.Equal(1, stats.Hits)
}

func TestDeviceStoreTestSuite(t *testing.T) {
	suite.Run(t, new(DeviceStoreTestSuite))
}
