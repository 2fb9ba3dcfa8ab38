package repository

import (
	"context"

	"veeloway/internal/domain"
)

// ScooterRepository defines the persistence operations for scooters.
type ScooterRepository interface {
	// Create persists a new scooter.
	Create(ctx context.Context, scooter *domain.Scooter) error

	// GetByID retrieves a scooter by ID.
	GetByID(ctx context.Context, id string) (*domain.Scooter, error)

	// GetAll retrieves all scooters.
	GetAll(ctx context.Context) ([]*domain.Scooter, error)

	// Update updates an existing scooter.
	Update(ctx context.Context, scooter *domain.Scooter) error

	// UpdateStatus updates only the status of a scooter.
	UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error

	// Delete removes a scooter.
	Delete(ctx context.Context, id string) error
}
