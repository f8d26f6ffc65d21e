// Package session gates the dashboard behind a locally stored auth token.
//
// There is no credential check, expiry or logout: any non-empty token in the
// client's store counts as authenticated.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/admindash/internal/prefs"
)

// ErrEmptyToken is returned when logging in with an empty token.
var ErrEmptyToken = errors.New("auth token must not be empty")

// State is the authentication state of a client.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Event is something that moves a client between states.
type Event int

const (
	// EventLogin is a successful login.
	EventLogin Event = iota
)

// Transition returns the state reached from s when e happens.
// Nothing leads back to Unauthenticated.
func Transition(s State, e Event) State {
	switch e {
	case EventLogin:
		return Authenticated
	default:
		return s
	}
}

// Gate tracks the authentication state of one client.
type Gate struct {
	store prefs.Store
	state State
}

// NewGate derives the state from the presence of a token in the store.
func NewGate(ctx context.Context, store prefs.Store) *Gate {
	g := &Gate{store: store, state: Unauthenticated}

	token, ok, err := store.Get(ctx, prefs.KeyAuthToken)
	if err != nil {
		log.Warn("Failed to read auth token, treating client as unauthenticated", "error", err)
		return g
	}
	if ok && token != "" {
		g.state = Authenticated
	}
	return g
}

// State returns the current state.
func (g *Gate) State() State {
	return g.state
}

// IsAuthenticated reports whether a token is present.
func (g *Gate) IsAuthenticated() bool {
	return g.state == Authenticated
}

// Login stores token and marks the client as authenticated.
func (g *Gate) Login(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := g.store.Set(ctx, prefs.KeyAuthToken, token); err != nil {
		return fmt.Errorf("failed to store auth token: %w", err)
	}
	g.state = Transition(g.state, EventLogin)
	return nil
}
