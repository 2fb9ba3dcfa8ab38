package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const scooterLocationKey = "scooters:locations"

// ScooterLocation represents a scooter's position.
type ScooterLocation struct {
	ScooterID  string
	Lat        float64
	Lng        float64
	DistanceKm float64
}

// LocationStore handles scooter position tracking in Redis.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// UpdateLocation stores a scooter's position using GEOADD.
func (s *LocationStore) UpdateLocation(ctx context.Context, scooterID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, scooterLocationKey, &redis.GeoLocation{
		Name:      scooterID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// FindNearbyScooters returns scooter positions within the given radius
// (in kilometers), closest first.
func (s *LocationStore) FindNearbyScooters(ctx context.Context, lat, lng, radiusKm float64) ([]ScooterLocation, error) {
	results, err := s.client.GeoRadius(ctx, scooterLocationKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	locations := make([]ScooterLocation, 0, len(results))
	for _, r := range results {
		locations = append(locations, ScooterLocation{
			ScooterID:  r.Name,
			Lat:        r.Latitude,
			Lng:        r.Longitude,
			DistanceKm: r.Dist,
		})
	}

	return locations, nil
}

// RemoveLocation drops a scooter from the position index.
func (s *LocationStore) RemoveLocation(ctx context.Context, scooterID string) error {
	return s.client.ZRem(ctx, scooterLocationKey, scooterID).Err()
}
