package auth

import (
	"context"
	"fmt"
	"time"

	"billing_system/internal/domain"
	"billing_system/internal/utils"

	"github.com/sirupsen/logrus"
)

// Session is an issued, signed session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Sessions issues and validates stateless session tokens.
type Sessions struct {
	creds      *Credentials
	secret     string
	ttl        time.Duration
	signInPath string
}

// NewSessions builds a session service. An empty signInPath selects "/signin".
func NewSessions(creds *Credentials, secret string, ttl time.Duration, signInPath string) *Sessions {
	if signInPath == "" {
		signInPath = "/signin"
	}
	return &Sessions{creds: creds, secret: secret, ttl: ttl, signInPath: signInPath}
}

// Authenticate verifies the credentials and issues a token. Any mismatch,
// including blank input, yields domain.ErrInvalidCredentials.
func (s *Sessions) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	user, err := s.creds.Verify(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate: %w", err)
	}
	if user == nil {
		logrus.Warn("sign-in rejected")
		return nil, domain.ErrInvalidCredentials
	}

	token, expires, err := utils.GenerateJWT(*user, s.secret, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate: sign token: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("session issued")
	return &Session{Token: token, ExpiresAt: expires, User: *user}, nil
}

// Validate checks the token signature and expiry.
func (s *Sessions) Validate(token string) (*utils.Claims, error) {
	return utils.ParseJWT(token, s.secret)
}

// RedirectTarget applies the package RedirectTarget with the configured sign-in path.
func (s *Sessions) RedirectTarget(requested, baseURL string) string {
	return RedirectTarget(requested, baseURL, s.signInPath)
}

// TTL is the lifetime of issued tokens.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// RedirectTarget returns baseURL when requested is the sign-in page itself,
// otherwise requested unchanged.
func RedirectTarget(requested, baseURL, signInPath string) string {
	if requested == signInPath {
		return baseURL
	}
	return requested
}
