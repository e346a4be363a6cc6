package store

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"billing_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormStore implements Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB // Shared connection pool
}

// NewGormStore wraps db. The connection must be opened with TranslateError
// so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// Ping checks that the database answers
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB() // Underlying database/sql pool
	if err != nil {
		return fmt.Errorf("store.Ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// CreateUser inserts a user, reporting domain.ErrConflict for a taken email
func (s *GormStore) CreateUser(ctx context.Context, u *domain.User) error {
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		// Unique index on email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("store.CreateUser: %w", domain.ErrConflict)
		}
		return fmt.Errorf("store.CreateUser: %w", err)
	}
	return nil
}

// FindUserByEmail looks a user up by exact email, reporting domain.ErrNotFound when absent
func (s *GormStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User // Fetch user from database
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store.FindUserByEmail: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("store.FindUserByEmail: %w", err)
	}
	// emails are case-sensitive as stored even when the column collation is not
	if u.Email != email {
		return nil, fmt.Errorf("store.FindUserByEmail: %w", domain.ErrNotFound)
	}
	return &u, nil
}

// ListCustomers returns all customers ordered by id, never nil
func (s *GormStore) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{} // Encodes as [] when empty
	if err := s.db.WithContext(ctx).Order("id asc").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("store.ListCustomers: %w", err)
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

// CreateCustomer inserts c and fills in its generated id
func (s *GormStore) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("store.CreateCustomer: %w", err)
	}
	return nil
}

// UpdateCustomer replaces name, status and price in a single statement
func (s *GormStore) UpdateCustomer(ctx context.Context, c *domain.Customer) error {
	// Map keeps zero values such as status=false in the SET clause
	res := s.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", c.ID).Updates(map[string]any{
		"name":   c.Name,
		"status": c.Status,
		"price":  c.Price,
	})
	if res.Error != nil {
		return fmt.Errorf("store.UpdateCustomer: %w", res.Error)
	}
	// No matched row means the id does not exist
	if res.RowsAffected == 0 {
		return fmt.Errorf("store.UpdateCustomer: %w", domain.ErrNotFound)
	}
	return nil
}

// DeleteCustomer removes the customer with the given id
func (s *GormStore) DeleteCustomer(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Customer{}, id) // Hard delete
	if res.Error != nil {
		return fmt.Errorf("store.DeleteCustomer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store.DeleteCustomer: %w", domain.ErrNotFound)
	}
	return nil
}
