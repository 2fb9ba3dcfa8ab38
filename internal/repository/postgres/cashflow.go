package postgres

import (
	"context"
	"database/sql"
	"errors"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// CashFlowRepository is a PostgreSQL implementation of repository.CashFlowRepository.
type CashFlowRepository struct {
	q Querier
}

// NewCashFlowRepository creates a new PostgreSQL cash-flow repository.
func NewCashFlowRepository(db *sql.DB) *CashFlowRepository {
	return &CashFlowRepository{q: db}
}

// NewCashFlowRepositoryWithTx creates a cash-flow repository using a transaction.
func NewCashFlowRepositoryWithTx(tx *sql.Tx) *CashFlowRepository {
	return &CashFlowRepository{q: tx}
}

// Create persists a new ledger entry.
func (r *CashFlowRepository) Create(ctx context.Context, entry *domain.CashFlowEntry) error {
	query := `
		INSERT INTO cashflow_entries (id, type, amount, description, category, date, contract_id, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.q.ExecContext(ctx, query,
		entry.ID,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.Category,
		entry.Date,
		nullString(entry.ContractID),
		nullString(string(entry.PaymentMethod)),
	)

	return err
}

// GetByID retrieves an entry by ID.
func (r *CashFlowRepository) GetByID(ctx context.Context, id string) (*domain.CashFlowEntry, error) {
	query := `
		SELECT id, type, amount, description, category, date, contract_id, payment_method
		FROM cashflow_entries WHERE id = $1
	`

	entry, err := scanEntry(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// GetAll retrieves all entries, most recent date first.
func (r *CashFlowRepository) GetAll(ctx context.Context) ([]*domain.CashFlowEntry, error) {
	query := `
		SELECT id, type, amount, description, category, date, contract_id, payment_method
		FROM cashflow_entries ORDER BY date DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// GetByContractID retrieves the entries posted for a contract.
func (r *CashFlowRepository) GetByContractID(ctx context.Context, contractID string) ([]*domain.CashFlowEntry, error) {
	query := `
		SELECT id, type, amount, description, category, date, contract_id, payment_method
		FROM cashflow_entries WHERE contract_id = $1
	`

	rows, err := r.q.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEntries(rows)
}

// Update updates an existing entry.
func (r *CashFlowRepository) Update(ctx context.Context, entry *domain.CashFlowEntry) error {
	query := `
		UPDATE cashflow_entries
		SET type = $1, amount = $2, description = $3, category = $4, date = $5, payment_method = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		entry.Type,
		entry.Amount,
		entry.Description,
		entry.Category,
		entry.Date,
		nullString(string(entry.PaymentMethod)),
		entry.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// Delete removes an entry.
func (r *CashFlowRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM cashflow_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func scanEntry(row rowScanner) (*domain.CashFlowEntry, error) {
	var entry domain.CashFlowEntry
	var contractID sql.NullString
	var paymentMethod sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.Type,
		&entry.Amount,
		&entry.Description,
		&entry.Category,
		&entry.Date,
		&contractID,
		&paymentMethod,
	)
	if err != nil {
		return nil, err
	}

	if contractID.Valid {
		entry.ContractID = contractID.String
	}
	if paymentMethod.Valid {
		entry.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	}

	return &entry, nil
}

func collectEntries(rows *sql.Rows) ([]*domain.CashFlowEntry, error) {
	var entries []*domain.CashFlowEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
