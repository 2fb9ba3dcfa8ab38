package repository

import (
	"context"

	"veeloway/internal/domain"
)

// CashFlowRepository defines the persistence operations for ledger entries.
type CashFlowRepository interface {
	// Create persists a new ledger entry.
	Create(ctx context.Context, entry *domain.CashFlowEntry) error

	// GetByID retrieves an entry by ID.
	GetByID(ctx context.Context, id string) (*domain.CashFlowEntry, error)

	// GetAll retrieves all entries ordered by date descending.
	GetAll(ctx context.Context) ([]*domain.CashFlowEntry, error)

	// GetByContractID retrieves the entries posted for a contract.
	GetByContractID(ctx context.Context, contractID string) ([]*domain.CashFlowEntry, error)

	// Update updates an existing entry. Engine-posted entries are never
	// touched by the engine after creation; edits are manual ledger
	// operations.
	Update(ctx context.Context, entry *domain.CashFlowEntry) error

	// Delete removes an entry.
	Delete(ctx context.Context, id string) error
}
