// Package auth handles user accounts: credential checks and session tokens.
package auth

import (
	"context"
	"errors"

	"github.com/mmynk/tallyup/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingToken       = errors.New("authorization token required")
)

// Authenticator registers and verifies users. Implementations decide what a
// credential is; PasswordAuthenticator uses passwords.
type Authenticator interface {
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)
}
