// Package store is the persistence layer for users and customers.
package store

import (
	"context"

	"billing_system/internal/domain"
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// CustomerStore persists billing records. Update and Delete report
// domain.ErrNotFound when no row matched the id.
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, c *domain.Customer) error
	UpdateCustomer(ctx context.Context, c *domain.Customer) error
	DeleteCustomer(ctx context.Context, id uint) error
}

// Store is the full handle injected into services and handlers.
type Store interface {
	UserStore
	CustomerStore
	Ping(ctx context.Context) error
}
