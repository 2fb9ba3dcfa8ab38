package postgres

import (
	"context"
	"database/sql"
	"errors"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// ScooterRepository is a PostgreSQL implementation of repository.ScooterRepository.
type ScooterRepository struct {
	q Querier
}

// NewScooterRepository creates a new PostgreSQL scooter repository.
func NewScooterRepository(db *sql.DB) *ScooterRepository {
	return &ScooterRepository{q: db}
}

// NewScooterRepositoryWithTx creates a scooter repository using a transaction.
func NewScooterRepositoryWithTx(tx *sql.Tx) *ScooterRepository {
	return &ScooterRepository{q: tx}
}

// Create persists a new scooter.
func (r *ScooterRepository) Create(ctx context.Context, scooter *domain.Scooter) error {
	query := `
		INSERT INTO scooters (id, brand, model, serial_number, status, battery, location, rate_per_minute, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		scooter.ID,
		scooter.Brand,
		scooter.Model,
		scooter.SerialNumber,
		scooter.Status,
		scooter.Battery,
		scooter.Location,
		scooter.RatePerMinute,
		scooter.RegisteredAt,
	)

	return err
}

// GetByID retrieves a scooter by ID.
func (r *ScooterRepository) GetByID(ctx context.Context, id string) (*domain.Scooter, error) {
	query := `
		SELECT id, brand, model, serial_number, status, battery, location, rate_per_minute, registered_at
		FROM scooters WHERE id = $1
	`

	var scooter domain.Scooter
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&scooter.ID,
		&scooter.Brand,
		&scooter.Model,
		&scooter.SerialNumber,
		&scooter.Status,
		&scooter.Battery,
		&scooter.Location,
		&scooter.RatePerMinute,
		&scooter.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &scooter, nil
}

// GetAll retrieves all scooters.
func (r *ScooterRepository) GetAll(ctx context.Context) ([]*domain.Scooter, error) {
	query := `
		SELECT id, brand, model, serial_number, status, battery, location, rate_per_minute, registered_at
		FROM scooters ORDER BY registered_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scooters []*domain.Scooter
	for rows.Next() {
		var scooter domain.Scooter
		if err := rows.Scan(
			&scooter.ID,
			&scooter.Brand,
			&scooter.Model,
			&scooter.SerialNumber,
			&scooter.Status,
			&scooter.Battery,
			&scooter.Location,
			&scooter.RatePerMinute,
			&scooter.RegisteredAt,
		); err != nil {
			return nil, err
		}
		scooters = append(scooters, &scooter)
	}
	return scooters, rows.Err()
}

// Update updates an existing scooter.
func (r *ScooterRepository) Update(ctx context.Context, scooter *domain.Scooter) error {
	query := `
		UPDATE scooters
		SET brand = $1, model = $2, serial_number = $3, status = $4, battery = $5, location = $6, rate_per_minute = $7
		WHERE id = $8
	`

	result, err := r.q.ExecContext(ctx, query,
		scooter.Brand,
		scooter.Model,
		scooter.SerialNumber,
		scooter.Status,
		scooter.Battery,
		scooter.Location,
		scooter.RatePerMinute,
		scooter.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// UpdateStatus updates only the status of a scooter.
func (r *ScooterRepository) UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE scooters SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// Delete removes a scooter.
func (r *ScooterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM scooters WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}
