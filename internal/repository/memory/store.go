package memory

import (
	"context"
	"sync"
	"time"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
	"veeloway/internal/snapshot"
)

const mirrorTimeout = 5 * time.Second

// Mirror is the durable key-value backend the store snapshots itself into.
// Satisfied by snapshot.Store.
type Mirror interface {
	Load(ctx context.Context, key string, out any) error
	Save(ctx context.Context, key string, value any)
}

var _ Mirror = (*snapshot.Store)(nil)

// Store is an in-memory implementation of repository.Store holding the four
// collections as copy-on-write snapshots. Every committed mutation replaces
// the affected collection wholesale and mirrors it asynchronously to the
// snapshot store; callers never wait on, or hear about, mirror failures.
//
// All mutations run under one lock, matching the single-writer model of the
// console this replaces: a transition is applied as one atomic swap, so no
// reader ever observes a contract without its scooter and ledger effects.
type Store struct {
	mu   sync.Mutex
	cur  collections
	snap Mirror // nil disables mirroring

	// Mirror writes are serialized through one worker so an older payload
	// can never land after a newer one. Commits merge into pending under
	// mirrorMu; the worker drains the latest value per key.
	mirrorMu sync.Mutex
	pending  map[string]any
	kick     chan struct{}
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty in-memory store mirroring to snap.
func NewStore(snap Mirror) *Store {
	s := &Store{snap: snap}
	if snap != nil {
		s.pending = make(map[string]any)
		s.kick = make(chan struct{}, 1)
		go s.mirrorLoop()
	}
	return s
}

// Load populates the store from the snapshot mirror. Missing keys leave the
// corresponding collection empty. Called once at startup.
func (s *Store) Load(ctx context.Context) error {
	if s.snap == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.snap.Load(ctx, snapshot.KeyCustomers, &s.cur.customers); err != nil {
		return err
	}
	if err := s.snap.Load(ctx, snapshot.KeyScooters, &s.cur.scooters); err != nil {
		return err
	}
	if err := s.snap.Load(ctx, snapshot.KeyContracts, &s.cur.contracts); err != nil {
		return err
	}
	if err := s.snap.Load(ctx, snapshot.KeyCashFlow, &s.cur.cashflow); err != nil {
		return err
	}

	// Resume the creation sequence after the highest persisted value.
	for _, ct := range s.cur.contracts {
		if ct.Seq >= s.cur.nextSeq {
			s.cur.nextSeq = ct.Seq + 1
		}
	}
	return nil
}

// executor abstracts where a repository applies its reads and writes: the
// live store (commit per call) or an open transaction's working copy.
type executor interface {
	mutate(fn func(*collections) (dirty, error)) error
	view(fn func(*collections) error) error
}

func (s *Store) mutate(fn func(*collections) (dirty, error)) error {
	s.mu.Lock()
	work := s.cur.clone()
	d, err := fn(&work)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.cur = work
	payload := s.mirrorPayload(d)
	s.mu.Unlock()

	s.mirrorAsync(payload)
	return nil
}

func (s *Store) view(fn func(*collections) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.cur)
}

// Atomic runs fn against a working copy of all four collections. The copy
// is swapped in only when fn succeeds; a failing transition leaves the
// store byte-for-byte unchanged.
func (s *Store) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	work := s.cur.clone()
	tx := &txStore{c: &work}
	if err := fn(tx); err != nil {
		s.mu.Unlock()
		return err
	}
	s.cur = work
	payload := s.mirrorPayload(tx.d)
	s.mu.Unlock()

	s.mirrorAsync(payload)
	return nil
}

func (s *Store) Customers() repository.CustomerRepository { return customerRepo{ex: s} }
func (s *Store) Scooters() repository.ScooterRepository   { return scooterRepo{ex: s} }
func (s *Store) Contracts() repository.ContractRepository { return contractRepo{ex: s} }
func (s *Store) CashFlow() repository.CashFlowRepository  { return cashflowRepo{ex: s} }

// mirrorPayload captures, under the store lock, the JSON-ready slices for
// the collections a mutation touched.
func (s *Store) mirrorPayload(d dirty) map[string]any {
	if s.snap == nil || d == 0 {
		return nil
	}
	payload := make(map[string]any)
	if d&dirtyCustomers != 0 {
		payload[snapshot.KeyCustomers] = s.cur.customers
	}
	if d&dirtyScooters != 0 {
		payload[snapshot.KeyScooters] = s.cur.scooters
	}
	if d&dirtyContracts != 0 {
		payload[snapshot.KeyContracts] = s.cur.contracts
	}
	if d&dirtyCashFlow != 0 {
		payload[snapshot.KeyCashFlow] = s.cur.cashflow
	}
	return payload
}

// mirrorAsync hands a commit's payload to the mirror worker. Payloads merge
// by key, newest wins, so a slow mirror coalesces bursts instead of queuing
// them; a crash loses at most the latest unwritten batch.
func (s *Store) mirrorAsync(payload map[string]any) {
	if len(payload) == 0 {
		return
	}
	s.mirrorMu.Lock()
	for key, value := range payload {
		s.pending[key] = value
	}
	s.mirrorMu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Store) mirrorLoop() {
	for range s.kick {
		s.mirrorMu.Lock()
		batch := s.pending
		s.pending = make(map[string]any)
		s.mirrorMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		for key, value := range batch {
			s.snap.Save(ctx, key, value)
		}
		cancel()
	}
}

// txStore is the transactional view handed to Atomic callbacks. It operates
// on the working copy directly; the store lock is already held.
type txStore struct {
	c *collections
	d dirty
}

var _ repository.Store = (*txStore)(nil)

func (t *txStore) mutate(fn func(*collections) (dirty, error)) error {
	d, err := fn(t.c)
	if err != nil {
		return err
	}
	t.d |= d
	return nil
}

func (t *txStore) view(fn func(*collections) error) error {
	return fn(t.c)
}

// Atomic on an open transaction joins it, like a nested sql savepoint-less
// transaction would.
func (t *txStore) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

func (t *txStore) Customers() repository.CustomerRepository { return customerRepo{ex: t} }
func (t *txStore) Scooters() repository.ScooterRepository   { return scooterRepo{ex: t} }
func (t *txStore) Contracts() repository.ContractRepository { return contractRepo{ex: t} }
func (t *txStore) CashFlow() repository.CashFlowRepository  { return cashflowRepo{ex: t} }

// Seed inserts entities directly, bypassing mirroring. Test helper.
func (s *Store) Seed(customers []*domain.Customer, scooters []*domain.Scooter, contracts []*domain.Contract, entries []*domain.CashFlowEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range customers {
		s.cur.createCustomer(c)
	}
	for _, sc := range scooters {
		s.cur.createScooter(sc)
	}
	for _, ct := range contracts {
		s.cur.createContract(ct)
	}
	for _, e := range entries {
		s.cur.createEntry(e)
	}
}
