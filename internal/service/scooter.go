package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"veeloway/internal/domain"
	internalRedis "veeloway/internal/redis"
	"veeloway/internal/repository"
)

// ScooterService handles fleet registration and maintenance edits. Rental
// status changes (in_progress, back to available) belong to the contract
// engine, not here; this service covers the fleet-management screen's
// direct edits such as flagging a unit for maintenance.
type ScooterService struct {
	store     repository.Store
	locations internalRedis.LocationStoreInterface
}

// NewScooterService creates a new ScooterService. locations may be nil
// when position tracking is not configured.
func NewScooterService(store repository.Store, locations internalRedis.LocationStoreInterface) *ScooterService {
	return &ScooterService{store: store, locations: locations}
}

// ScooterInput contains the editable fields of a scooter.
type ScooterInput struct {
	Brand         string
	Model         string
	SerialNumber  string
	Status        string
	Battery       int
	Location      string
	RatePerMinute float64
}

// Register creates a new scooter. An empty status defaults to available.
func (s *ScooterService) Register(ctx context.Context, input ScooterInput) (*domain.Scooter, error) {
	status, err := validateScooterInput(input)
	if err != nil {
		return nil, err
	}

	scooter := &domain.Scooter{
		ID:            uuid.New().String(),
		Brand:         input.Brand,
		Model:         input.Model,
		SerialNumber:  input.SerialNumber,
		Status:        status,
		Battery:       input.Battery,
		Location:      input.Location,
		RatePerMinute: input.RatePerMinute,
		RegisteredAt:  time.Now(),
	}

	if err := s.store.Scooters().Create(ctx, scooter); err != nil {
		return nil, err
	}

	return scooter, nil
}

// Update edits an existing scooter.
func (s *ScooterService) Update(ctx context.Context, id string, input ScooterInput) (*domain.Scooter, error) {
	if id == "" {
		return nil, ErrInvalidScooterID
	}
	status, err := validateScooterInput(input)
	if err != nil {
		return nil, err
	}

	scooter, err := s.store.Scooters().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	scooter.Brand = input.Brand
	scooter.Model = input.Model
	scooter.SerialNumber = input.SerialNumber
	scooter.Status = status
	scooter.Battery = input.Battery
	scooter.Location = input.Location
	scooter.RatePerMinute = input.RatePerMinute

	if err := s.store.Scooters().Update(ctx, scooter); err != nil {
		return nil, err
	}

	return scooter, nil
}

// Delete removes a scooter and drops it from the position index. The
// index removal is best effort; a stale position for a deleted scooter is
// skipped by nearby queries anyway.
func (s *ScooterService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidScooterID
	}
	if err := s.store.Scooters().Delete(ctx, id); err != nil {
		return err
	}
	if s.locations != nil {
		_ = s.locations.RemoveLocation(ctx, id)
	}
	return nil
}

// Get retrieves a scooter by ID.
func (s *ScooterService) Get(ctx context.Context, id string) (*domain.Scooter, error) {
	if id == "" {
		return nil, ErrInvalidScooterID
	}
	return s.store.Scooters().GetByID(ctx, id)
}

// GetAll retrieves all scooters.
func (s *ScooterService) GetAll(ctx context.Context) ([]*domain.Scooter, error) {
	return s.store.Scooters().GetAll(ctx)
}

// GetAssignable retrieves the scooters a new rental may start on.
func (s *ScooterService) GetAssignable(ctx context.Context) ([]*domain.Scooter, error) {
	scooters, err := s.store.Scooters().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var out []*domain.Scooter
	for _, sc := range scooters {
		if sc.Status.Assignable() {
			out = append(out, sc)
		}
	}
	return out, nil
}

func validateScooterInput(input ScooterInput) (domain.ScooterStatus, error) {
	if input.Model == "" {
		return "", ErrInvalidName
	}
	if input.Battery < 0 || input.Battery > 100 {
		return "", ErrInvalidBattery
	}
	if input.RatePerMinute <= 0 {
		return "", ErrInvalidRate
	}
	switch domain.ScooterStatus(input.Status) {
	case domain.ScooterStatusAvailable, domain.ScooterStatusRented,
		domain.ScooterStatusMaintenance, domain.ScooterStatusInProgress,
		domain.ScooterStatusReturned:
		return domain.ScooterStatus(input.Status), nil
	case "":
		return domain.ScooterStatusAvailable, nil
	default:
		return "", ErrInvalidScooterStatus
	}
}
