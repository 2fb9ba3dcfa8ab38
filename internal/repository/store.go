package repository

import "context"

// Store groups the four collection repositories behind one handle and
// provides atomic multi-collection updates.
type Store interface {
	Customers() CustomerRepository
	Scooters() ScooterRepository
	Contracts() ContractRepository
	CashFlow() CashFlowRepository

	// Atomic runs fn against a transactional view of the store. All
	// writes made through the view are applied together when fn returns
	// nil and discarded when it returns an error. Contract lifecycle
	// transitions run inside Atomic so a contract, its scooter, and its
	// ledger posting are never observably inconsistent.
	Atomic(ctx context.Context, fn func(Store) error) error
}
