package service

import (
	"context"
	"errors"

	"veeloway/internal/domain"
	internalRedis "veeloway/internal/redis"
	"veeloway/internal/repository"
)

// FleetService tracks scooter positions and answers proximity queries.
type FleetService struct {
	store     repository.Store
	locations internalRedis.LocationStoreInterface
}

// NewFleetService creates a new FleetService.
func NewFleetService(store repository.Store, locations internalRedis.LocationStoreInterface) *FleetService {
	return &FleetService{store: store, locations: locations}
}

// NearbyScooter is a scooter together with its last reported position.
type NearbyScooter struct {
	Scooter    *domain.Scooter
	Lat        float64
	Lng        float64
	DistanceKm float64
}

// UpdateLocation records a scooter's reported position.
func (s *FleetService) UpdateLocation(ctx context.Context, scooterID string, lat, lng float64) error {
	if _, err := s.store.Scooters().GetByID(ctx, scooterID); err != nil {
		return err
	}
	return s.locations.UpdateLocation(ctx, scooterID, lat, lng)
}

// Nearby finds assignable scooters within radiusKm of the given point,
// closest first. Positions whose scooter has since been removed are
// skipped; they age out of the index on the next report.
func (s *FleetService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyScooter, error) {
	positions, err := s.locations.FindNearbyScooters(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyScooter, 0, len(positions))
	for _, pos := range positions {
		scooter, err := s.store.Scooters().GetByID(ctx, pos.ScooterID)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !scooter.Status.Assignable() {
			continue
		}
		nearby = append(nearby, NearbyScooter{
			Scooter:    scooter,
			Lat:        pos.Lat,
			Lng:        pos.Lng,
			DistanceKm: pos.DistanceKm,
		})
	}

	return nearby, nil
}
