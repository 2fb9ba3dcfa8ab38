package domain

import "time"

// ScooterStatus represents the current status of a scooter.
type ScooterStatus string

const (
	ScooterStatusAvailable   ScooterStatus = "available"
	ScooterStatusRented      ScooterStatus = "rented"
	ScooterStatusMaintenance ScooterStatus = "maintenance"
	ScooterStatusInProgress  ScooterStatus = "in_progress"
	ScooterStatusReturned    ScooterStatus = "returned"
)

// Assignable reports whether a new rental may start on a scooter in this
// status. Both available and returned scooters can be handed out.
func (s ScooterStatus) Assignable() bool {
	return s == ScooterStatusAvailable || s == ScooterStatusReturned
}

// Scooter represents a physical unit in the fleet.
type Scooter struct {
	ID            string        `json:"id"`
	Brand         string        `json:"brand"`
	Model         string        `json:"model"`
	SerialNumber  string        `json:"serial_number"`
	Status        ScooterStatus `json:"status"`
	Battery       int           `json:"battery"` // percentage, 0-100
	Location      string        `json:"location"`
	RatePerMinute float64       `json:"rate_per_minute"`
	RegisteredAt  time.Time     `json:"registered_at"`
}
