// Package service implements the application's domain logic on top of the
// repositories: credential handling, the dual-store import reconciler and
// the movie↔actor relationship manager. Services depend on small store
// interfaces so they can be exercised against fakes.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/movie-catalog/internal/repository"
	"github.com/iliyamo/movie-catalog/internal/utils"
)

// tokenTTL is the fixed lifetime of issued access tokens.
const tokenTTL = 2 * time.Hour

// ErrBadPassword is returned by Login when the password digest does not
// match the stored one.
var ErrBadPassword = errors.New("password mismatch")

// ErrUnknownRole is returned by Register for roles outside the hierarchy.
var ErrUnknownRole = errors.New("unknown role")

var validRoles = map[string]bool{"view": true, "edit": true, "admin": true}

// CredentialStore is the slice of the user repository the authenticator
// needs.
type CredentialStore interface {
	InsertIdempotent(ctx context.Context, u repository.User) (*repository.User, error)
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
}

// Auth owns credential registration and login.
type Auth struct {
	creds  CredentialStore
	secret string
}

func NewAuth(creds CredentialStore, secret string) *Auth {
	return &Auth{creds: creds, secret: secret}
}

// Register stores a credential entry. The email is normalized to lowercase
// before storage; the password is digested; the role defaults to "view".
// Registration is an idempotent insert: when the email already exists the
// existing entry is returned unchanged, with whatever role and digest it
// already had.
func (s *Auth) Register(ctx context.Context, email, password, role string) (*repository.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = "view"
	}
	if !validRoles[role] {
		return nil, ErrUnknownRole
	}
	return s.creds.InsertIdempotent(ctx, repository.User{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: utils.HashPassword(password),
		Role:     role,
	})
}

// Login verifies a credential pair and issues a signed access token
// carrying the principal's email and role. The lookup email is lowercased,
// so login is effectively case-insensitive against the lowercase storage
// key. A missing account surfaces as repository.ErrUserNotFound, a digest
// mismatch as ErrBadPassword.
func (s *Auth) Login(ctx context.Context, email, password string) (*repository.User, utils.AccessToken, error) {
	u, err := s.creds.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(u.Password, password) {
		return nil, utils.AccessToken{}, ErrBadPassword
	}
	tok, err := utils.NewAccessToken(s.secret, u.Email, u.Role, tokenTTL)
	if err != nil {
		return nil, utils.AccessToken{}, err
	}
	return u, tok, nil
}
