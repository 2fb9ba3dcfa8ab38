package memory

import (
	"context"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

type customerRepo struct{ ex executor }

var _ repository.CustomerRepository = customerRepo{}

func (r customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		c.createCustomer(customer)
		return dirtyCustomers, nil
	})
}

func (r customerRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var out *domain.Customer
	err := r.ex.view(func(c *collections) error {
		var err error
		out, err = c.getCustomer(id)
		return err
	})
	return out, err
}

func (r customerRepo) GetAll(ctx context.Context) ([]*domain.Customer, error) {
	var out []*domain.Customer
	err := r.ex.view(func(c *collections) error {
		for _, cu := range c.customers {
			cp := *cu
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyCustomers, c.updateCustomer(customer)
	})
}

func (r customerRepo) Delete(ctx context.Context, id string) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyCustomers, c.deleteCustomer(id)
	})
}

type scooterRepo struct{ ex executor }

var _ repository.ScooterRepository = scooterRepo{}

func (r scooterRepo) Create(ctx context.Context, scooter *domain.Scooter) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		c.createScooter(scooter)
		return dirtyScooters, nil
	})
}

func (r scooterRepo) GetByID(ctx context.Context, id string) (*domain.Scooter, error) {
	var out *domain.Scooter
	err := r.ex.view(func(c *collections) error {
		var err error
		out, err = c.getScooter(id)
		return err
	})
	return out, err
}

func (r scooterRepo) GetAll(ctx context.Context) ([]*domain.Scooter, error) {
	var out []*domain.Scooter
	err := r.ex.view(func(c *collections) error {
		for _, s := range c.scooters {
			cp := *s
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}

func (r scooterRepo) Update(ctx context.Context, scooter *domain.Scooter) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyScooters, c.updateScooter(scooter)
	})
}

func (r scooterRepo) UpdateStatus(ctx context.Context, id string, status domain.ScooterStatus) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyScooters, c.updateScooterStatus(id, status)
	})
}

func (r scooterRepo) Delete(ctx context.Context, id string) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyScooters, c.deleteScooter(id)
	})
}

type contractRepo struct{ ex executor }

var _ repository.ContractRepository = contractRepo{}

func (r contractRepo) Create(ctx context.Context, contract *domain.Contract) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		c.createContract(contract)
		return dirtyContracts, nil
	})
}

func (r contractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	var out *domain.Contract
	err := r.ex.view(func(c *collections) error {
		var err error
		out, err = c.getContract(id)
		return err
	})
	return out, err
}

func (r contractRepo) GetAll(ctx context.Context) ([]*domain.Contract, error) {
	var out []*domain.Contract
	err := r.ex.view(func(c *collections) error {
		out = c.sortedContracts()
		return nil
	})
	return out, err
}

func (r contractRepo) GetActiveByScooterID(ctx context.Context, scooterID string) (*domain.Contract, error) {
	var out *domain.Contract
	err := r.ex.view(func(c *collections) error {
		out = c.activeContractForScooter(scooterID)
		return nil
	})
	return out, err
}

func (r contractRepo) Update(ctx context.Context, contract *domain.Contract) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyContracts, c.updateContract(contract)
	})
}

func (r contractRepo) Delete(ctx context.Context, id string) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyContracts, c.deleteContract(id)
	})
}

type cashflowRepo struct{ ex executor }

var _ repository.CashFlowRepository = cashflowRepo{}

func (r cashflowRepo) Create(ctx context.Context, entry *domain.CashFlowEntry) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		c.createEntry(entry)
		return dirtyCashFlow, nil
	})
}

func (r cashflowRepo) GetByID(ctx context.Context, id string) (*domain.CashFlowEntry, error) {
	var out *domain.CashFlowEntry
	err := r.ex.view(func(c *collections) error {
		var err error
		out, err = c.getEntry(id)
		return err
	})
	return out, err
}

func (r cashflowRepo) GetAll(ctx context.Context) ([]*domain.CashFlowEntry, error) {
	var out []*domain.CashFlowEntry
	err := r.ex.view(func(c *collections) error {
		out = c.sortedEntries()
		return nil
	})
	return out, err
}

func (r cashflowRepo) GetByContractID(ctx context.Context, contractID string) ([]*domain.CashFlowEntry, error) {
	var out []*domain.CashFlowEntry
	err := r.ex.view(func(c *collections) error {
		out = c.entriesForContract(contractID)
		return nil
	})
	return out, err
}

func (r cashflowRepo) Update(ctx context.Context, entry *domain.CashFlowEntry) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyCashFlow, c.updateEntry(entry)
	})
}

func (r cashflowRepo) Delete(ctx context.Context, id string) error {
	return r.ex.mutate(func(c *collections) (dirty, error) {
		return dirtyCashFlow, c.deleteEntry(id)
	})
}
