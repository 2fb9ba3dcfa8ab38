package domain

import "time"

// CustomerStatus represents the lifecycle status of a customer.
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a registered customer.
type Customer struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Document     string         `json:"document"`
	Address      string         `json:"address"`
	Status       CustomerStatus `json:"status"`
	RegisteredAt time.Time      `json:"registered_at"`
}
