package postgres

import (
	"context"
	"database/sql"
	"time"

	"veeloway/internal/repository"
)

// Store is the PostgreSQL implementation of repository.Store. Atomic maps
// directly onto a database transaction with transaction-scoped repositories.
type Store struct {
	db *sql.DB
}

var _ repository.Store = (*Store)(nil)

// NewStore creates a PostgreSQL-backed store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Customers() repository.CustomerRepository { return NewCustomerRepository(s.db) }
func (s *Store) Scooters() repository.ScooterRepository   { return NewScooterRepository(s.db) }
func (s *Store) Contracts() repository.ContractRepository { return NewContractRepository(s.db) }
func (s *Store) CashFlow() repository.CashFlowRepository  { return NewCashFlowRepository(s.db) }

// Atomic runs fn inside a database transaction. Any error rolls everything
// back so a failed transition applies no partial effects.
func (s *Store) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&txStore{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// txStore is a transaction-scoped view of the store.
type txStore struct {
	tx *sql.Tx
}

var _ repository.Store = (*txStore)(nil)

func (t *txStore) Customers() repository.CustomerRepository { return NewCustomerRepositoryWithTx(t.tx) }
func (t *txStore) Scooters() repository.ScooterRepository   { return NewScooterRepositoryWithTx(t.tx) }
func (t *txStore) Contracts() repository.ContractRepository { return NewContractRepositoryWithTx(t.tx) }
func (t *txStore) CashFlow() repository.CashFlowRepository  { return NewCashFlowRepositoryWithTx(t.tx) }

// Atomic inside an open transaction joins it.
func (t *txStore) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

// nullString maps the empty string to SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
