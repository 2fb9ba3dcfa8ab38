package service

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is requested
	// against a contract not in the required source state.
	ErrInvalidTransition = errors.New("invalid contract transition")

	// ErrInvalidContractID is returned when contract ID is empty.
	ErrInvalidContractID = errors.New("invalid contract id")

	// ErrInvalidCustomerID is returned when customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrCustomerInactive is returned when creating a contract for a
	// customer whose status is not active.
	ErrCustomerInactive = errors.New("customer is not active")

	// ErrInvalidScooterID is returned when scooter ID is empty.
	ErrInvalidScooterID = errors.New("invalid scooter id")

	// ErrScooterNotBound is returned when starting or finalizing a
	// contract that has no scooter bound.
	ErrScooterNotBound = errors.New("contract has no scooter bound")

	// ErrScooterNotAssignable is returned when the scooter is not in an
	// assignable status (available or returned).
	ErrScooterNotAssignable = errors.New("scooter is not available for rental")

	// ErrScooterInUse is returned when the scooter already has an active
	// contract.
	ErrScooterInUse = errors.New("scooter already has an active rental")

	// ErrInvalidMinutes is returned when minutes used is negative.
	ErrInvalidMinutes = errors.New("minutes used must be a non-negative integer")

	// ErrPaymentMethodRequired is returned when finalization is missing a
	// payment method.
	ErrPaymentMethodRequired = errors.New("payment method is required")

	// ErrInvalidPaymentMethod is returned when payment method is not one
	// of the supported values.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidName is returned when a required name field is empty.
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidCustomerStatus is returned when customer status is not a
	// known value.
	ErrInvalidCustomerStatus = errors.New("invalid customer status")

	// ErrInvalidScooterStatus is returned when scooter status is not a
	// known value.
	ErrInvalidScooterStatus = errors.New("invalid scooter status")

	// ErrInvalidBattery is returned when battery is outside 0-100.
	ErrInvalidBattery = errors.New("battery must be between 0 and 100")

	// ErrInvalidRate is returned when the per-minute rate is not positive.
	ErrInvalidRate = errors.New("rate per minute must be positive")

	// ErrInvalidEntryType is returned when a ledger entry type is not
	// inflow or outflow.
	ErrInvalidEntryType = errors.New("invalid cash flow entry type")

	// ErrInvalidEntryAmount is returned when a ledger entry amount is not
	// positive.
	ErrInvalidEntryAmount = errors.New("cash flow amount must be positive")

	// ErrInvalidEntryDate is returned when a ledger entry date is not a
	// valid calendar day.
	ErrInvalidEntryDate = errors.New("invalid cash flow date")
)
