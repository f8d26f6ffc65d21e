package login

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jon4hz/admindash/internal/token"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuth struct {
	tokens []string
	err    error
}

func (r *recordingAuth) Login(_ context.Context, tok string) error {
	r.tokens = append(r.tokens, tok)
	return r.err
}

type failingIssuer struct{}

func (failingIssuer) Issue(context.Context) (string, error) {
	return "", assert.AnError
}

func newSubmitter() *Submitter {
	clock := clockwork.NewFakeClockAt(time.UnixMilli(1700000000000))
	return NewSubmitter(token.NewPlaceholder("example_token_", clock))
}

func TestSubmit_IncompleteFormIsNoOp(t *testing.T) {
	tests := []Form{
		{Email: "", Password: "x"},
		{Email: "admin@example.com", Password: ""},
		{},
		{RememberMe: true},
	}
	for _, f := range tests {
		auth := &recordingAuth{}
		ok, err := newSubmitter().Submit(context.Background(), f, auth)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, auth.tokens, "login must not be called for %+v", f)
	}
}

func TestSubmit_CompleteFormLogsInOnce(t *testing.T) {
	auth := &recordingAuth{}
	ok, err := newSubmitter().Submit(context.Background(), Form{
		Email:      "admin@example.com",
		Password:   "hunter2",
		RememberMe: true,
	}, auth)
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, auth.tokens, 1)
	assert.NotEmpty(t, auth.tokens[0])
	assert.True(t, strings.HasPrefix(auth.tokens[0], "example_token_"))
	assert.Equal(t, "example_token_1700000000000", auth.tokens[0])
}

func TestSubmit_Errors(t *testing.T) {
	f := Form{Email: "admin@example.com", Password: "x"}

	t.Run("issuer", func(t *testing.T) {
		auth := &recordingAuth{}
		ok, err := NewSubmitter(failingIssuer{}).Submit(context.Background(), f, auth)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, ok)
		assert.Empty(t, auth.tokens)
	})

	t.Run("authenticator", func(t *testing.T) {
		auth := &recordingAuth{err: assert.AnError}
		ok, err := newSubmitter().Submit(context.Background(), f, auth)
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, ok)
	})
}

func TestForm_Complete(t *testing.T) {
	assert.True(t, Form{Email: "a", Password: "b"}.Complete())
	assert.False(t, Form{Email: "a"}.Complete())
	assert.False(t, Form{Password: "b"}.Complete())
}
