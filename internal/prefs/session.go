package prefs

import (
	"context"
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionStore keeps values in the signed session cookie, so the data lives
// with the browser like local storage does.
type SessionStore struct {
	session sessions.Session
}

var _ Store = (*SessionStore)(nil)

// NewSessionStore wraps a gin-contrib session.
func NewSessionStore(session sessions.Session) *SessionStore {
	return &SessionStore{session: session}
}

func (s *SessionStore) Get(_ context.Context, key string) (string, bool, error) {
	val := s.session.Get(key)
	if val == nil {
		return "", false, nil
	}
	str, ok := val.(string)
	if !ok {
		return "", false, nil
	}
	return str, true, nil
}

// Set writes the value and saves the session. It must be called before the
// response body is written.
func (s *SessionStore) Set(_ context.Context, key, value string) error {
	s.session.Set(key, value)
	return s.session.Save()
}

// SessionBackend serves a SessionStore for every request. It needs the
// sessions middleware to be installed first.
//
// Sessions holding a value are saved again on every request so the cookie
// expiry slides with activity.
type SessionBackend struct{}

func (SessionBackend) StoreFor(c *gin.Context) (Store, error) {
	session := sessions.Default(c)
	if err := touch(session); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	return NewSessionStore(session), nil
}

func touch(session sessions.Session) error {
	var dirty bool
	for _, key := range []string{KeyAuthToken, KeyTheme} {
		if val := session.Get(key); val != nil {
			session.Set(key, val)
			dirty = true
		}
	}
	if !dirty {
		return nil
	}
	return session.Save()
}
