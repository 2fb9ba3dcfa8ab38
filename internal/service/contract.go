package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"veeloway/internal/domain"
	internalRedis "veeloway/internal/redis"
	"veeloway/internal/repository"
)

// contractOp names a lifecycle operation on a contract.
type contractOp string

const (
	opAccept   contractOp = "accept"
	opReject   contractOp = "reject"
	opStart    contractOp = "start"
	opFinalize contractOp = "finalize"
	opCancel   contractOp = "cancel"
)

// transitions is the contract state machine: for each source status, the
// operations allowed from it and the status they lead to. Anything not in
// the table is an invalid transition.
var transitions = map[domain.ContractStatus]map[contractOp]domain.ContractStatus{
	domain.ContractStatusPending: {
		opAccept: domain.ContractStatusAccepted,
		opReject: domain.ContractStatusRejected,
		opCancel: domain.ContractStatusCancelled,
	},
	domain.ContractStatusAccepted: {
		opStart:  domain.ContractStatusActive,
		opCancel: domain.ContractStatusCancelled,
	},
	domain.ContractStatusActive: {
		opFinalize: domain.ContractStatusFinalized,
		opCancel:   domain.ContractStatusCancelled,
	},
}

// nextStatus resolves the target status for an operation, or
// ErrInvalidTransition when the table has no entry.
func nextStatus(current domain.ContractStatus, op contractOp) (domain.ContractStatus, error) {
	if ops, ok := transitions[current]; ok {
		if next, ok := ops[op]; ok {
			return next, nil
		}
	}
	return "", ErrInvalidTransition
}

// ContractService is the contract lifecycle engine. Every transition is
// precondition-checked against the transition table and applied atomically
// together with its side effects on the scooter and the cash-flow ledger:
// a rejected operation leaves all three collections untouched.
type ContractService struct {
	store repository.Store
	locks internalRedis.LockStoreInterface
	cache internalRedis.CacheStoreInterface
}

// scooterLockTTL bounds how long a crashed instance can hold a scooter
// claim.
const scooterLockTTL = 10 * time.Second

// NewContractService creates a new ContractService. locks may be nil for
// single-instance deployments; the claim then relies on the store's own
// atomicity alone. cache may be nil; the dashboard then rides out its TTL
// after a transition moves the figures.
func NewContractService(store repository.Store, locks internalRedis.LockStoreInterface, cache internalRedis.CacheStoreInterface) *ContractService {
	return &ContractService{store: store, locks: locks, cache: cache}
}

// CreateContractRequest contains the parameters for creating a contract in
// the template workflow: terms drawn up for a customer, awaiting signature,
// with no scooter bound yet.
type CreateContractRequest struct {
	CustomerID       string
	Notes            string
	EstimatedMinutes int
	EstimatedAmount  float64
}

// CreateContract creates a contract in pending state.
func (s *ContractService) CreateContract(ctx context.Context, req CreateContractRequest) (*domain.Contract, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}

	var contract *domain.Contract
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer.Status != domain.CustomerStatusActive {
			return ErrCustomerInactive
		}

		contract = &domain.Contract{
			ID:               uuid.New().String(),
			CustomerID:       req.CustomerID,
			Status:           domain.ContractStatusPending,
			StartedAt:        time.Now(),
			Notes:            req.Notes,
			EstimatedMinutes: req.EstimatedMinutes,
			EstimatedAmount:  req.EstimatedAmount,
		}
		return tx.Contracts().Create(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	return contract, nil
}

// StartRentalRequest contains the parameters for the direct rental
// workflow: contract and usage begin in the same action.
type StartRentalRequest struct {
	CustomerID string
	ScooterID  string
	Notes      string
}

// StartRental creates a contract directly in active state and marks the
// scooter in progress.
func (s *ContractService) StartRental(ctx context.Context, req StartRentalRequest) (*domain.Contract, error) {
	if req.CustomerID == "" {
		return nil, ErrInvalidCustomerID
	}
	if req.ScooterID == "" {
		return nil, ErrInvalidScooterID
	}

	release, err := s.lockScooter(ctx, req.ScooterID)
	if err != nil {
		return nil, err
	}
	defer release()

	var contract *domain.Contract
	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		customer, err := tx.Customers().GetByID(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		if customer.Status != domain.CustomerStatusActive {
			return ErrCustomerInactive
		}

		if err := s.claimScooter(ctx, tx, req.ScooterID); err != nil {
			return err
		}

		contract = &domain.Contract{
			ID:         uuid.New().String(),
			CustomerID: req.CustomerID,
			ScooterID:  req.ScooterID,
			Status:     domain.ContractStatusActive,
			StartedAt:  time.Now(),
			Notes:      req.Notes,
		}
		return tx.Contracts().Create(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFigures(ctx)
	return contract, nil
}

// Accept marks a pending contract as signed by the customer.
func (s *ContractService) Accept(ctx context.Context, contractID string) (*domain.Contract, error) {
	return s.transitionContractOnly(ctx, contractID, opAccept, func(c *domain.Contract) {
		c.AcceptedAt = time.Now()
	})
}

// Reject marks a pending contract as declined by the customer.
func (s *ContractService) Reject(ctx context.Context, contractID string) (*domain.Contract, error) {
	return s.transitionContractOnly(ctx, contractID, opReject, nil)
}

// StartRequest contains the parameters for starting an accepted contract.
// ScooterID binds a scooter to a template contract created without one; it
// may be empty when the contract already has a scooter bound.
type StartRequest struct {
	ContractID string
	ScooterID  string
}

// Start moves an accepted contract to active, binding and claiming the
// scooter.
func (s *ContractService) Start(ctx context.Context, req StartRequest) (*domain.Contract, error) {
	if req.ContractID == "" {
		return nil, ErrInvalidContractID
	}

	// Resolve the scooter up front so the claim lock is held before the
	// transaction opens; everything is re-checked inside it.
	lockID := req.ScooterID
	if lockID == "" {
		existing, err := s.store.Contracts().GetByID(ctx, req.ContractID)
		if err != nil {
			return nil, err
		}
		lockID = existing.ScooterID
	}
	if lockID == "" {
		return nil, ErrScooterNotBound
	}
	release, err := s.lockScooter(ctx, lockID)
	if err != nil {
		return nil, err
	}
	defer release()

	var contract *domain.Contract
	err = s.store.Atomic(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Contracts().GetByID(ctx, req.ContractID)
		if err != nil {
			return err
		}

		next, err := nextStatus(contract.Status, opStart)
		if err != nil {
			return err
		}

		scooterID := contract.ScooterID
		if req.ScooterID != "" {
			scooterID = req.ScooterID
		}
		if scooterID == "" {
			return ErrScooterNotBound
		}

		if err := s.claimScooter(ctx, tx, scooterID); err != nil {
			return err
		}

		contract.ScooterID = scooterID
		contract.Status = next
		contract.StartedAt = time.Now()
		return tx.Contracts().Update(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFigures(ctx)
	return contract, nil
}

// FinalizeRequest contains the already-validated parameters for ending an
// active rental. Input collection (the minutes dialog, the payment-method
// picker) lives entirely in the caller.
type FinalizeRequest struct {
	ContractID    string
	MinutesUsed   int
	PaymentMethod domain.PaymentMethod
}

// Finalize ends an active rental: it freezes the billed amount from the
// scooter's rate at this instant, releases the scooter, and posts one
// inflow ledger entry for the contract.
func (s *ContractService) Finalize(ctx context.Context, req FinalizeRequest) (*domain.Contract, error) {
	if req.ContractID == "" {
		return nil, ErrInvalidContractID
	}
	if req.MinutesUsed < 0 {
		return nil, ErrInvalidMinutes
	}
	if req.PaymentMethod == "" {
		return nil, ErrPaymentMethodRequired
	}
	if _, err := ValidatePaymentMethod(string(req.PaymentMethod)); err != nil {
		return nil, err
	}

	var contract *domain.Contract
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Contracts().GetByID(ctx, req.ContractID)
		if err != nil {
			return err
		}

		next, err := nextStatus(contract.Status, opFinalize)
		if err != nil {
			return err
		}

		if contract.ScooterID == "" {
			return ErrScooterNotBound
		}
		scooter, err := tx.Scooters().GetByID(ctx, contract.ScooterID)
		if err != nil {
			return err
		}

		now := time.Now()
		contract.Status = next
		contract.EndedAt = now
		contract.MinutesUsed = req.MinutesUsed
		// Rate is read live at finalization, not frozen at start.
		contract.TotalAmount = float64(req.MinutesUsed) * scooter.RatePerMinute
		contract.PaymentMethod = req.PaymentMethod

		if err := tx.Contracts().Update(ctx, contract); err != nil {
			return err
		}

		if err := tx.Scooters().UpdateStatus(ctx, scooter.ID, domain.ScooterStatusAvailable); err != nil {
			return err
		}

		entry := &domain.CashFlowEntry{
			ID:            uuid.New().String(),
			Type:          domain.EntryTypeInflow,
			Amount:        contract.TotalAmount,
			Description:   rentalDescription(req.MinutesUsed),
			Category:      domain.RentalCategory,
			Date:          now.Format(domain.DateLayout),
			ContractID:    contract.ID,
			PaymentMethod: req.PaymentMethod,
		}
		return tx.CashFlow().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFigures(ctx)
	return contract, nil
}

// Cancel abandons a contract from any non-terminal state. A scooter held
// in progress by this contract goes back to available; no ledger entry is
// posted.
func (s *ContractService) Cancel(ctx context.Context, contractID string) (*domain.Contract, error) {
	if contractID == "" {
		return nil, ErrInvalidContractID
	}

	var contract *domain.Contract
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Contracts().GetByID(ctx, contractID)
		if err != nil {
			return err
		}

		next, err := nextStatus(contract.Status, opCancel)
		if err != nil {
			return err
		}

		wasActive := contract.Status == domain.ContractStatusActive
		contract.Status = next
		if err := tx.Contracts().Update(ctx, contract); err != nil {
			return err
		}

		if wasActive && contract.ScooterID != "" {
			scooter, err := tx.Scooters().GetByID(ctx, contract.ScooterID)
			if err != nil {
				// Scooter deleted elsewhere: the cancelled contract stands.
				if errors.Is(err, repository.ErrNotFound) {
					return nil
				}
				return err
			}
			if scooter.Status == domain.ScooterStatusInProgress {
				return tx.Scooters().UpdateStatus(ctx, scooter.ID, domain.ScooterStatusAvailable)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateFigures(ctx)
	return contract, nil
}

// Delete removes a contract at any status. Administrative operation: it
// bypasses the state machine and reverses neither scooter status nor
// already-posted ledger entries.
func (s *ContractService) Delete(ctx context.Context, contractID string) error {
	if contractID == "" {
		return ErrInvalidContractID
	}
	return s.store.Contracts().Delete(ctx, contractID)
}

// GetContract retrieves a contract by ID.
func (s *ContractService) GetContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	if contractID == "" {
		return nil, ErrInvalidContractID
	}
	return s.store.Contracts().GetByID(ctx, contractID)
}

// GetAllContracts retrieves all contracts, most recently started first.
func (s *ContractService) GetAllContracts(ctx context.Context) ([]*domain.Contract, error) {
	return s.store.Contracts().GetAll(ctx)
}

// lockScooter takes the distributed claim lock for a scooter, returning a
// release func. A held lock means another instance is mid-claim, which
// surfaces as the scooter being in use. No-op when locking is not
// configured.
func (s *ContractService) lockScooter(ctx context.Context, scooterID string) (func(), error) {
	if s.locks == nil {
		return func() {}, nil
	}

	ok, err := s.locks.AcquireScooterLock(ctx, scooterID, scooterLockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrScooterInUse
	}

	return func() {
		_ = s.locks.ReleaseScooterLock(context.Background(), scooterID)
	}, nil
}

// invalidateFigures drops the cached dashboard figures after a transition
// that moves them. Best effort: a failed delete only leaves the cache to
// its TTL.
func (s *ContractService) invalidateFigures(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateDashboard(ctx)
	}
}

// claimScooter verifies a scooter can begin a rental and marks it in
// progress. The assignable-status gate is the primary guard; the active-
// contract lookup backstops it.
func (s *ContractService) claimScooter(ctx context.Context, tx repository.Store, scooterID string) error {
	scooter, err := tx.Scooters().GetByID(ctx, scooterID)
	if err != nil {
		return err
	}
	if !scooter.Status.Assignable() {
		return ErrScooterNotAssignable
	}

	existing, err := tx.Contracts().GetActiveByScooterID(ctx, scooterID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrScooterInUse
	}

	return tx.Scooters().UpdateStatus(ctx, scooterID, domain.ScooterStatusInProgress)
}

// transitionContractOnly applies an operation whose side effects touch only
// the contract itself. The read, the transition check, and the write share
// one atomic section so a concurrent transition cannot slip between them
// and be overwritten.
func (s *ContractService) transitionContractOnly(ctx context.Context, contractID string, op contractOp, mutate func(*domain.Contract)) (*domain.Contract, error) {
	if contractID == "" {
		return nil, ErrInvalidContractID
	}

	var contract *domain.Contract
	err := s.store.Atomic(ctx, func(tx repository.Store) error {
		var err error
		contract, err = tx.Contracts().GetByID(ctx, contractID)
		if err != nil {
			return err
		}

		next, err := nextStatus(contract.Status, op)
		if err != nil {
			return err
		}

		contract.Status = next
		if mutate != nil {
			mutate(contract)
		}
		return tx.Contracts().Update(ctx, contract)
	})
	if err != nil {
		return nil, err
	}

	return contract, nil
}

func rentalDescription(minutes int) string {
	return fmt.Sprintf("Rental finalized - %d minutes", minutes)
}

// ValidatePaymentMethod validates a payment method string.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodCash, domain.PaymentMethodDebitCard,
		domain.PaymentMethodCreditCard, domain.PaymentMethodPix,
		domain.PaymentMethodBankTransfer:
		return domain.PaymentMethod(method), nil
	case "":
		return "", ErrPaymentMethodRequired
	default:
		return "", ErrInvalidPaymentMethod
	}
}
