// Package token issues the tokens handed to the session gate on login.
package token

import (
	"context"
	"strconv"

	"github.com/jonboulle/clockwork"
)

// Issuer creates a token for a login that passed the form checks.
type Issuer interface {
	Issue(ctx context.Context) (string, error)
}

// Placeholder issues unsigned tokens made of a prefix and the current Unix
// time in milliseconds. The tokens carry no credential; a real deployment
// has to swap this for an identity provider.
type Placeholder struct {
	prefix string
	clock  clockwork.Clock
}

var _ Issuer = (*Placeholder)(nil)

// NewPlaceholder creates a placeholder issuer. A nil clock uses the real clock.
func NewPlaceholder(prefix string, clock clockwork.Clock) *Placeholder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Placeholder{prefix: prefix, clock: clock}
}

func (p *Placeholder) Issue(_ context.Context) (string, error) {
	return p.prefix + strconv.FormatInt(p.clock.Now().UnixMilli(), 10), nil
}
