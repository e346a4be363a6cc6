// Package auth owns password credentials and session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"billing_system/internal/domain"
	"billing_system/internal/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Credentials registers users and verifies their passwords.
type Credentials struct {
	users store.UserStore
	cost  int
	dummy []byte
}

// NewCredentials builds a credential service hashing at the given bcrypt cost.
// A cost of zero selects bcrypt.DefaultCost.
func NewCredentials(users store.UserStore, cost int) *Credentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	// compared against when the email is unknown so both paths pay for one bcrypt run
	dummy, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	return &Credentials{users: users, cost: cost, dummy: dummy}
}

// Register creates a user with a bcrypt-hashed password. The returned user
// never carries the hash.
func (s *Credentials) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("auth.Register: %w", domain.NewValidationError("Email and password required"))
	}

	_, err := s.users.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("auth.Register: %w", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: hash password: %w", err)
	}

	user := &domain.User{Email: email, Password: string(hash), Name: name}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("user registered")

	user.Password = ""
	return user, nil
}

// Verify returns the user whose stored hash matches password. A nil user
// with a nil error means the email is unknown or the password is wrong.
func (s *Credentials) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth.Verify: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}
	user.Password = ""
	return user, nil
}
