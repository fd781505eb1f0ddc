package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/nexora/backend/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for any username/password mismatch.
	// Unknown usernames and wrong passwords are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAdminNotConfigured is returned when the admin username or password
	// is missing from the server configuration.
	ErrAdminNotConfigured = errors.New("admin credentials not configured")
)

// AdminCredentials is the single shared admin account. Password is either
// the plain password or a bcrypt hash of it.
type AdminCredentials struct {
	Username string
	Password string
}

func (c AdminCredentials) passwordMatches(password string) bool {
	if _, err := bcrypt.Cost([]byte(c.Password)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
}

// AdminAuthService authenticates the admin and issues session tokens.
type AdminAuthService interface {
	// Login checks username/password and returns a new session token.
	Login(ctx context.Context, username, password string) (string, error)
}

type adminAuthServiceImpl struct {
	creds    AdminCredentials
	sessions auth.SessionIssuer
}

// NewAdminAuthService creates an AdminAuthService for the given credentials.
func NewAdminAuthService(creds AdminCredentials, sessions auth.SessionIssuer) AdminAuthService {
	return &adminAuthServiceImpl{creds: creds, sessions: sessions}
}

func (s *adminAuthServiceImpl) Login(_ context.Context, username, password string) (string, error) {
	if s.creds.Username == "" || s.creds.Password == "" {
		return "", ErrAdminNotConfigured
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passOK := s.creds.passwordMatches(password)
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(auth.AdminSubject)
	if err != nil {
		return "", fmt.Errorf("issue admin session: %w", err)
	}
	return token, nil
}
