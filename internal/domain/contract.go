package domain

import "time"

// ContractStatus represents the current status of a rental contract.
type ContractStatus string

const (
	ContractStatusPending   ContractStatus = "pending"
	ContractStatusAccepted  ContractStatus = "accepted"
	ContractStatusActive    ContractStatus = "active"
	ContractStatusFinalized ContractStatus = "finalized"
	ContractStatusCancelled ContractStatus = "cancelled"
	ContractStatusRejected  ContractStatus = "rejected"
)

// Terminal reports whether no further transitions are possible.
func (s ContractStatus) Terminal() bool {
	return s == ContractStatusFinalized || s == ContractStatusCancelled || s == ContractStatusRejected
}

// PaymentMethod represents how a finalized rental was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodDebitCard    PaymentMethod = "debit_card"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodPix          PaymentMethod = "pix"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// Contract represents a rental agreement between a customer and a scooter.
//
// ScooterID may be empty for a contract created in the template workflow
// (terms awaiting signature); it must be bound before the contract can go
// active. TotalAmount is computed once, at finalization, from the scooter's
// rate at that instant.
type Contract struct {
	ID         string `json:"id"`
	Seq        int64  `json:"seq"` // creation order, stable tie-break for listings
	CustomerID string `json:"customer_id"`
	ScooterID  string `json:"scooter_id,omitempty"`

	Status        ContractStatus `json:"status"`
	PaymentMethod PaymentMethod  `json:"payment_method,omitempty"`

	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at,omitempty"`
	AcceptedAt time.Time `json:"accepted_at,omitempty"`

	MinutesUsed int     `json:"minutes_used"`
	TotalAmount float64 `json:"total_amount"`

	// Advisory planning figures, never authoritative for billing.
	EstimatedMinutes int     `json:"estimated_minutes,omitempty"`
	EstimatedAmount  float64 `json:"estimated_amount,omitempty"`

	Notes string `json:"notes,omitempty"`
}
