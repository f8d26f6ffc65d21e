// Package login handles submissions of the login form.
package login

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/admindash/internal/token"
)

// ForgotPasswordNotice is shown instead of a password reset flow.
const ForgotPasswordNotice = "Password reset is not available yet."

// Form is the data posted by the login page.
type Form struct {
	Email      string `form:"email"`
	Password   string `form:"password"`
	RememberMe bool   `form:"remember-me"`
}

// Complete reports whether both credentials were filled in.
func (f Form) Complete() bool {
	return f.Email != "" && f.Password != ""
}

// Authenticator receives the token of a successful login.
type Authenticator interface {
	Login(ctx context.Context, token string) error
}

// Submitter turns complete forms into a login.
type Submitter struct {
	tokens token.Issuer
	log    *log.Logger
}

// NewSubmitter creates a submitter issuing tokens from tokens.
func NewSubmitter(tokens token.Issuer) *Submitter {
	return &Submitter{
		tokens: tokens,
		log:    log.Default().WithPrefix("login"),
	}
}

// Submit logs the attempt and, when both fields are filled in, issues a token
// and hands it to auth. Incomplete forms are ignored and report false.
func (s *Submitter) Submit(ctx context.Context, f Form, auth Authenticator) (bool, error) {
	// remember-me is collected but has no effect beyond this line
	s.log.Info("Login attempt", "email", f.Email, "remember_me", f.RememberMe)

	if !f.Complete() {
		return false, nil
	}

	tok, err := s.tokens.Issue(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := auth.Login(ctx, tok); err != nil {
		return false, err
	}
	return true, nil
}
