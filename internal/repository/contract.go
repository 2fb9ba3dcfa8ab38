package repository

import (
	"context"

	"veeloway/internal/domain"
)

// ContractRepository defines the persistence operations for contracts.
type ContractRepository interface {
	// Create persists a new contract and assigns its creation sequence
	// number (Seq is filled in on the passed contract).
	Create(ctx context.Context, contract *domain.Contract) error

	// GetByID retrieves a contract by ID.
	GetByID(ctx context.Context, id string) (*domain.Contract, error)

	// GetAll retrieves all contracts ordered by StartedAt descending,
	// ties broken by creation sequence.
	GetAll(ctx context.Context) ([]*domain.Contract, error)

	// GetActiveByScooterID retrieves the active contract bound to a
	// scooter, or nil when the scooter has none.
	GetActiveByScooterID(ctx context.Context, scooterID string) (*domain.Contract, error)

	// Update updates an existing contract.
	Update(ctx context.Context, contract *domain.Contract) error

	// Delete removes a contract unconditionally. It bypasses the state
	// machine and performs no referential cleanup.
	Delete(ctx context.Context, id string) error
}
