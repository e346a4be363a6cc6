package store

import (
	"context" // Interface conformance
	"fmt"     // Error wrapping
	"sync"    // Mutex
	"time"    // Timestamps

	"billing_system/internal/domain" // Importing domain models
)

// MemoryStore is a goroutine-safe Store kept in process memory. It backs
// DB_DRIVER=memory and the handler tests.
type MemoryStore struct {
	mu        sync.Mutex               // Guards every field below
	users     map[string]domain.User   // Keyed by exact email
	customers map[uint]domain.Customer // Keyed by id
	nextUser  uint                     // Last issued user id
	nextCust  uint                     // Last issued customer id
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]domain.User),
		customers: make(map[uint]domain.Customer),
	}
}

var _ Store = (*MemoryStore)(nil)

// Ping always succeeds
func (m *MemoryStore) Ping(context.Context) error { return nil }

// CreateUser stores u, reporting domain.ErrConflict for a taken email
func (m *MemoryStore) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return fmt.Errorf("store.CreateUser: %w", domain.ErrConflict)
	}
	m.nextUser++
	u.ID = m.nextUser // Generated id
	m.users[u.Email] = *u
	return nil
}

// FindUserByEmail looks a user up by exact email, reporting domain.ErrNotFound when absent
func (m *MemoryStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, fmt.Errorf("store.FindUserByEmail: %w", domain.ErrNotFound)
	}
	return &u, nil // Copy, callers may mutate it
}

// ListCustomers returns all customers ordered by id, never nil
func (m *MemoryStore) ListCustomers(context.Context) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Customer, 0, len(m.customers))
	// Ids are issued in order, so walking them yields id order
	for id := uint(1); id <= m.nextCust; id++ {
		if c, ok := m.customers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateCustomer stores c and fills in its generated id and timestamps
func (m *MemoryStore) CreateCustomer(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextCust++
	now := time.Now()
	c.ID = m.nextCust // Generated id
	c.CreatedAt, c.UpdatedAt = now, now
	m.customers[c.ID] = *c
	return nil
}

// UpdateCustomer replaces name, status and price and copies the stored record back into c
func (m *MemoryStore) UpdateCustomer(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.customers[c.ID]
	if !ok {
		return fmt.Errorf("store.UpdateCustomer: %w", domain.ErrNotFound)
	}
	cur.Name, cur.Status, cur.Price = c.Name, c.Status, c.Price
	cur.UpdatedAt = time.Now()
	m.customers[c.ID] = cur
	*c = cur
	return nil
}

// DeleteCustomer removes the customer with the given id
func (m *MemoryStore) DeleteCustomer(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.customers[id]; !ok {
		return fmt.Errorf("store.DeleteCustomer: %w", domain.ErrNotFound)
	}
	delete(m.customers, id)
	return nil
}
