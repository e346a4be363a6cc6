// Package billing implements the customer record operations behind the
// customer API.
package billing

import (
	"context" // Request-scoped cancellation
	"fmt"     // Error wrapping
	"math"    // NaN and infinity checks
	"strconv" // Cache key formatting
	"strings" // Name trimming

	"billing_system/internal/domain" // Importing domain models
	"billing_system/internal/store"  // Persistence
	"billing_system/internal/utils"  // Redis cache

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const (
	// ListCacheKey prefixes the cached customer list; the generation is appended.
	ListCacheKey = "customers:all"
	// GenerationKey counts list-changing writes.
	GenerationKey = "customers:gen"
)

// listKey names the list entry for generation gen.
func listKey(gen int64) string {
	return ListCacheKey + ":" + strconv.FormatInt(gen, 10)
}

// Service validates customer input and keeps the list cache coherent with
// the store.
type Service struct {
	customers store.CustomerStore // Customer persistence
	cache     *utils.Cache        // Optional list cache, nil disables it
}

// NewService wires a customer store and an optional list cache.
func NewService(customers store.CustomerStore, cache *utils.Cache) *Service {
	return &Service{customers: customers, cache: cache}
}

// List returns every customer ordered by id. The generation is read before
// the store so a snapshot taken across a concurrent write is filed under the
// retired generation and never served afterwards.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	gen, err := s.cache.Generation(ctx, GenerationKey) // Read before the store
	if err != nil {
		// Without a generation nothing may be cached
		logrus.WithError(err).Warn("customer cache generation read failed")
		return s.load(ctx)
	}

	key := listKey(gen)          // Entry for the current generation
	var cached []domain.Customer // Cached list, if any
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logrus.WithError(err).Warn("customer cache read failed")
	}
	if hit && cached != nil {
		return cached, nil
	}

	customers, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, customers); err != nil {
		logrus.WithError(err).Warn("customer cache write failed")
	}
	return customers, nil
}

// load reads the list straight from the store
func (s *Service) load(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("billing.List: %w", err)
	}
	return customers, nil
}

// Create stores a new customer and returns it with its generated id.
func (s *Service) Create(ctx context.Context, name string, status bool, price *float64) (*domain.Customer, error) {
	if err := validate(name, price); err != nil {
		return nil, fmt.Errorf("billing.Create: %w", err)
	}
	c := &domain.Customer{Name: name, Status: status, Price: *price} // Id assigned by the store
	if err := s.customers.CreateCustomer(ctx, c); err != nil {
		return nil, fmt.Errorf("billing.Create: %w", err)
	}
	s.invalidate(ctx) // Retire cached lists
	logrus.WithFields(logrus.Fields{"customer_id": c.ID}).Info("customer created")
	return c, nil
}

// Update replaces name, status and price of customer id.
func (s *Service) Update(ctx context.Context, id uint, name string, status bool, price *float64) (*domain.Customer, error) {
	if id == 0 {
		return nil, fmt.Errorf("billing.Update: %w", domain.NewValidationError("id is required"))
	}
	if err := validate(name, price); err != nil {
		return nil, fmt.Errorf("billing.Update: %w", err)
	}
	c := &domain.Customer{ID: id, Name: name, Status: status, Price: *price}
	if err := s.customers.UpdateCustomer(ctx, c); err != nil {
		return nil, fmt.Errorf("billing.Update: %w", err)
	}
	s.invalidate(ctx)
	logrus.WithFields(logrus.Fields{"customer_id": id}).Info("customer updated")
	return c, nil
}

// Delete removes customer id.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("billing.Delete: %w", domain.NewValidationError("id is required"))
	}
	if err := s.customers.DeleteCustomer(ctx, id); err != nil {
		return fmt.Errorf("billing.Delete: %w", err)
	}
	s.invalidate(ctx)
	logrus.WithFields(logrus.Fields{"customer_id": id}).Info("customer deleted")
	return nil
}

// invalidate bumps the list generation
func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx, GenerationKey); err != nil {
		logrus.WithError(err).Warn("customer cache invalidation failed")
	}
}

// validate checks the fields shared by create and update
func validate(name string, price *float64) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name is required")
	}
	if price == nil || math.IsNaN(*price) || math.IsInf(*price, 0) {
		return domain.NewValidationError("billPrice must be a valid number")
	}
	return nil
}
