package memory

import (
	"sort"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// dirty marks which collections a mutation touched, so only those are
// mirrored to the snapshot store.
type dirty uint8

const (
	dirtyCustomers dirty = 1 << iota
	dirtyScooters
	dirtyContracts
	dirtyCashFlow
)

// collections is one immutable snapshot of application state. Mutation
// helpers never modify an entity or slice in place: each write computes a
// replacement slice from the previous one, so an aborted transaction can
// simply discard its working copy.
type collections struct {
	customers []*domain.Customer
	scooters  []*domain.Scooter
	contracts []*domain.Contract
	cashflow  []*domain.CashFlowEntry
	nextSeq   int64
}

func (c *collections) clone() collections {
	out := collections{nextSeq: c.nextSeq}
	out.customers = append([]*domain.Customer(nil), c.customers...)
	out.scooters = append([]*domain.Scooter(nil), c.scooters...)
	out.contracts = append([]*domain.Contract(nil), c.contracts...)
	out.cashflow = append([]*domain.CashFlowEntry(nil), c.cashflow...)
	return out
}

// ── customers ──

func (c *collections) createCustomer(customer *domain.Customer) {
	cp := *customer
	c.customers = append(c.customers, &cp)
}

func (c *collections) getCustomer(id string) (*domain.Customer, error) {
	for _, cu := range c.customers {
		if cu.ID == id {
			cp := *cu
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *collections) updateCustomer(customer *domain.Customer) error {
	return replaceByID(&c.customers, customer.ID, customer, func(cu *domain.Customer) string { return cu.ID })
}

func (c *collections) deleteCustomer(id string) error {
	return removeByID(&c.customers, id, func(cu *domain.Customer) string { return cu.ID })
}

// ── scooters ──

func (c *collections) createScooter(scooter *domain.Scooter) {
	cp := *scooter
	c.scooters = append(c.scooters, &cp)
}

func (c *collections) getScooter(id string) (*domain.Scooter, error) {
	for _, s := range c.scooters {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *collections) updateScooter(scooter *domain.Scooter) error {
	return replaceByID(&c.scooters, scooter.ID, scooter, func(s *domain.Scooter) string { return s.ID })
}

func (c *collections) updateScooterStatus(id string, status domain.ScooterStatus) error {
	s, err := c.getScooter(id)
	if err != nil {
		return err
	}
	s.Status = status
	return c.updateScooter(s)
}

func (c *collections) deleteScooter(id string) error {
	return removeByID(&c.scooters, id, func(s *domain.Scooter) string { return s.ID })
}

// ── contracts ──

func (c *collections) createContract(contract *domain.Contract) {
	contract.Seq = c.nextSeq
	c.nextSeq++
	cp := *contract
	c.contracts = append(c.contracts, &cp)
}

func (c *collections) getContract(id string) (*domain.Contract, error) {
	for _, ct := range c.contracts {
		if ct.ID == id {
			cp := *ct
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *collections) activeContractForScooter(scooterID string) *domain.Contract {
	for _, ct := range c.contracts {
		if ct.ScooterID == scooterID && ct.Status == domain.ContractStatusActive {
			cp := *ct
			return &cp
		}
	}
	return nil
}

// sortedContracts returns contracts ordered by StartedAt descending. The
// stable sort over insertion order keeps ties in creation order.
func (c *collections) sortedContracts() []*domain.Contract {
	out := make([]*domain.Contract, 0, len(c.contracts))
	for _, ct := range c.contracts {
		cp := *ct
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}

func (c *collections) updateContract(contract *domain.Contract) error {
	return replaceByID(&c.contracts, contract.ID, contract, func(ct *domain.Contract) string { return ct.ID })
}

func (c *collections) deleteContract(id string) error {
	return removeByID(&c.contracts, id, func(ct *domain.Contract) string { return ct.ID })
}

// ── cash flow ──

func (c *collections) createEntry(entry *domain.CashFlowEntry) {
	cp := *entry
	c.cashflow = append(c.cashflow, &cp)
}

func (c *collections) getEntry(id string) (*domain.CashFlowEntry, error) {
	for _, e := range c.cashflow {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *collections) sortedEntries() []*domain.CashFlowEntry {
	out := make([]*domain.CashFlowEntry, 0, len(c.cashflow))
	for _, e := range c.cashflow {
		cp := *e
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

func (c *collections) entriesForContract(contractID string) []*domain.CashFlowEntry {
	var out []*domain.CashFlowEntry
	for _, e := range c.cashflow {
		if e.ContractID == contractID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out
}

func (c *collections) updateEntry(entry *domain.CashFlowEntry) error {
	return replaceByID(&c.cashflow, entry.ID, entry, func(e *domain.CashFlowEntry) string { return e.ID })
}

func (c *collections) deleteEntry(id string) error {
	return removeByID(&c.cashflow, id, func(e *domain.CashFlowEntry) string { return e.ID })
}

// replaceByID computes a replacement slice with the entity of the given id
// swapped for a copy of val.
func replaceByID[T any](slice *[]*T, id string, val *T, idOf func(*T) string) error {
	found := false
	out := make([]*T, 0, len(*slice))
	for _, item := range *slice {
		if idOf(item) == id {
			cp := *val
			out = append(out, &cp)
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		return repository.ErrNotFound
	}
	*slice = out
	return nil
}

// removeByID computes a replacement slice without the entity of the given id.
func removeByID[T any](slice *[]*T, id string, idOf func(*T) string) error {
	found := false
	out := make([]*T, 0, len(*slice))
	for _, item := range *slice {
		if idOf(item) == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		return repository.ErrNotFound
	}
	*slice = out
	return nil
}
