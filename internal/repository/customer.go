package repository

import (
	"context"

	"veeloway/internal/domain"
)

// CustomerRepository defines the persistence operations for customers.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by ID.
	GetByID(ctx context.Context, id string) (*domain.Customer, error)

	// GetAll retrieves all customers.
	GetAll(ctx context.Context) ([]*domain.Customer, error)

	// Update updates an existing customer.
	Update(ctx context.Context, customer *domain.Customer) error

	// Delete removes a customer. Contracts referencing the customer are
	// left untouched; lookups on them fall back to "not found" display.
	Delete(ctx context.Context, id string) error
}
