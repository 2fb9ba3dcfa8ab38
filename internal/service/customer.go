package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// CustomerService handles customer registration and maintenance.
type CustomerService struct {
	store repository.Store
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(store repository.Store) *CustomerService {
	return &CustomerService{store: store}
}

// CustomerInput contains the editable fields of a customer.
type CustomerInput struct {
	Name     string
	Email    string
	Phone    string
	Document string
	Address  string
	Status   string
}

// Register creates a new customer. An empty status defaults to active.
func (s *CustomerService) Register(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	status, err := validateCustomerInput(input)
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Document:     input.Document,
		Address:      input.Address,
		Status:       status,
		RegisteredAt: time.Now(),
	}

	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// Update edits an existing customer.
func (s *CustomerService) Update(ctx context.Context, id string, input CustomerInput) (*domain.Customer, error) {
	if id == "" {
		return nil, ErrInvalidCustomerID
	}
	status, err := validateCustomerInput(input)
	if err != nil {
		return nil, err
	}

	customer, err := s.store.Customers().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = input.Name
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Document = input.Document
	customer.Address = input.Address
	customer.Status = status

	if err := s.store.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// Delete removes a customer. Contracts referencing the customer keep their
// reference; readers fall back to "not found" display.
func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidCustomerID
	}
	return s.store.Customers().Delete(ctx, id)
}

// Get retrieves a customer by ID.
func (s *CustomerService) Get(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, ErrInvalidCustomerID
	}
	return s.store.Customers().GetByID(ctx, id)
}

// GetAll retrieves all customers.
func (s *CustomerService) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	return s.store.Customers().GetAll(ctx)
}

func validateCustomerInput(input CustomerInput) (domain.CustomerStatus, error) {
	if input.Name == "" {
		return "", ErrInvalidName
	}
	switch domain.CustomerStatus(input.Status) {
	case domain.CustomerStatusActive, domain.CustomerStatusInactive:
		return domain.CustomerStatus(input.Status), nil
	case "":
		return domain.CustomerStatusActive, nil
	default:
		return "", ErrInvalidCustomerStatus
	}
}
