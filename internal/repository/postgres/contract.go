package postgres

import (
	"context"
	"database/sql"
	"errors"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// ContractRepository is a PostgreSQL implementation of repository.ContractRepository.
type ContractRepository struct {
	q Querier
}

// NewContractRepository creates a new PostgreSQL contract repository.
func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{q: db}
}

// NewContractRepositoryWithTx creates a contract repository using a transaction.
func NewContractRepositoryWithTx(tx *sql.Tx) *ContractRepository {
	return &ContractRepository{q: tx}
}

const contractColumns = `id, seq, customer_id, scooter_id, status, payment_method, started_at, ended_at, accepted_at, minutes_used, total_amount, estimated_minutes, estimated_amount, notes`

// Create persists a new contract. The creation sequence is assigned by the
// database and written back into the passed contract.
func (r *ContractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	query := `
		INSERT INTO contracts (id, customer_id, scooter_id, status, payment_method, started_at, ended_at, accepted_at, minutes_used, total_amount, estimated_minutes, estimated_amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq
	`

	return r.q.QueryRowContext(ctx, query,
		contract.ID,
		contract.CustomerID,
		nullString(contract.ScooterID),
		contract.Status,
		nullString(string(contract.PaymentMethod)),
		contract.StartedAt,
		nullTime(contract.EndedAt),
		nullTime(contract.AcceptedAt),
		contract.MinutesUsed,
		contract.TotalAmount,
		contract.EstimatedMinutes,
		contract.EstimatedAmount,
		nullString(contract.Notes),
	).Scan(&contract.Seq)
}

// GetByID retrieves a contract by ID.
func (r *ContractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE id = $1`

	contract, err := scanContract(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

// GetAll retrieves all contracts, most recently started first. Seq keeps
// contracts started in the same instant in creation order.
func (r *ContractRepository) GetAll(ctx context.Context) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts ORDER BY started_at DESC, seq ASC`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, contract)
	}
	return contracts, rows.Err()
}

// GetActiveByScooterID retrieves the active contract bound to a scooter.
// Returns nil, nil when the scooter has no active contract.
func (r *ContractRepository) GetActiveByScooterID(ctx context.Context, scooterID string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE scooter_id = $1 AND status = $2`

	contract, err := scanContract(r.q.QueryRowContext(ctx, query, scooterID, domain.ContractStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return contract, nil
}

// Update updates an existing contract.
func (r *ContractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	query := `
		UPDATE contracts
		SET customer_id = $1, scooter_id = $2, status = $3, payment_method = $4, started_at = $5, ended_at = $6, accepted_at = $7, minutes_used = $8, total_amount = $9, estimated_minutes = $10, estimated_amount = $11, notes = $12
		WHERE id = $13
	`

	result, err := r.q.ExecContext(ctx, query,
		contract.CustomerID,
		nullString(contract.ScooterID),
		contract.Status,
		nullString(string(contract.PaymentMethod)),
		contract.StartedAt,
		nullTime(contract.EndedAt),
		nullTime(contract.AcceptedAt),
		contract.MinutesUsed,
		contract.TotalAmount,
		contract.EstimatedMinutes,
		contract.EstimatedAmount,
		nullString(contract.Notes),
		contract.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// Delete removes a contract unconditionally.
func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (*domain.Contract, error) {
	var contract domain.Contract
	var scooterID sql.NullString
	var paymentMethod sql.NullString
	var endedAt sql.NullTime
	var acceptedAt sql.NullTime
	var notes sql.NullString

	err := row.Scan(
		&contract.ID,
		&contract.Seq,
		&contract.CustomerID,
		&scooterID,
		&contract.Status,
		&paymentMethod,
		&contract.StartedAt,
		&endedAt,
		&acceptedAt,
		&contract.MinutesUsed,
		&contract.TotalAmount,
		&contract.EstimatedMinutes,
		&contract.EstimatedAmount,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	if scooterID.Valid {
		contract.ScooterID = scooterID.String
	}
	if paymentMethod.Valid {
		contract.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	}
	if endedAt.Valid {
		contract.EndedAt = endedAt.Time
	}
	if acceptedAt.Valid {
		contract.AcceptedAt = acceptedAt.Time
	}
	if notes.Valid {
		contract.Notes = notes.String
	}

	return &contract, nil
}
