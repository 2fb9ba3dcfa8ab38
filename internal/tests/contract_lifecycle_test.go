package tests

import (
	"context"
	"errors"
	"math"
	"testing"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
	"veeloway/internal/service"
)

// ──────────────────────────────────────────────
// 1. CONTRACT LIFECYCLE
// ──────────────────────────────────────────────

func TestContract_TemplateWorkflowFullLifecycle(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)

	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	// Draw up the contract: no scooter bound yet.
	contract, err := contracts.CreateContract(ctx, service.CreateContractRequest{
		CustomerID:       customer.ID,
		EstimatedMinutes: 30,
		EstimatedAmount:  15.00,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusPending {
		t.Fatalf("expected pending, got %s", contract.Status)
	}
	if contract.ScooterID != "" {
		t.Errorf("expected no scooter bound, got %s", contract.ScooterID)
	}

	// Customer signs.
	contract, err = contracts.Accept(ctx, contract.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusAccepted {
		t.Fatalf("expected accepted, got %s", contract.Status)
	}
	if contract.AcceptedAt.IsZero() {
		t.Error("expected AcceptedAt to be stamped")
	}

	// Usage begins: scooter bound and claimed.
	contract, err = contracts.Start(ctx, service.StartRequest{ContractID: contract.ID, ScooterID: scooter.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusActive {
		t.Fatalf("expected active, got %s", contract.Status)
	}

	claimed, err := store.Scooters().GetByID(ctx, scooter.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claimed.Status != domain.ScooterStatusInProgress {
		t.Errorf("expected scooter in_progress, got %s", claimed.Status)
	}

	// Rental ends: 45 minutes at 0.50/min.
	contract, err = contracts.Finalize(ctx, service.FinalizeRequest{
		ContractID:    contract.ID,
		MinutesUsed:   45,
		PaymentMethod: domain.PaymentMethodPix,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusFinalized {
		t.Fatalf("expected finalized, got %s", contract.Status)
	}
	if math.Abs(contract.TotalAmount-22.50) > 1e-9 {
		t.Errorf("expected total 22.50, got %.2f", contract.TotalAmount)
	}
	if contract.EndedAt.IsZero() {
		t.Error("expected EndedAt to be stamped")
	}

	released, err := store.Scooters().GetByID(ctx, scooter.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if released.Status != domain.ScooterStatusAvailable {
		t.Errorf("expected scooter available after finalize, got %s", released.Status)
	}

	// Exactly one ledger entry, linked back to the contract.
	entries, err := store.CashFlow().GetByContractID(ctx, contract.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 ledger entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Type != domain.EntryTypeInflow {
		t.Errorf("expected inflow entry, got %s", entry.Type)
	}
	if math.Abs(entry.Amount-22.50) > 1e-9 {
		t.Errorf("expected entry amount 22.50, got %.2f", entry.Amount)
	}
	if entry.Category != domain.RentalCategory {
		t.Errorf("expected category %s, got %s", domain.RentalCategory, entry.Category)
	}
	if entry.PaymentMethod != domain.PaymentMethodPix {
		t.Errorf("expected payment method pix, got %s", entry.PaymentMethod)
	}
}

func TestContract_DirectRentalWorkflow(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.80)

	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.StartRental(ctx, service.StartRentalRequest{
		CustomerID: customer.ID,
		ScooterID:  scooter.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusActive {
		t.Fatalf("expected active, got %s", contract.Status)
	}

	claimed, _ := store.Scooters().GetByID(ctx, scooter.ID)
	if claimed.Status != domain.ScooterStatusInProgress {
		t.Errorf("expected scooter in_progress, got %s", claimed.Status)
	}

	// 20 minutes at 0.80/min.
	contract, err = contracts.Finalize(ctx, service.FinalizeRequest{
		ContractID:    contract.ID,
		MinutesUsed:   20,
		PaymentMethod: domain.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(contract.TotalAmount-16.00) > 1e-9 {
		t.Errorf("expected total 16.00, got %.2f", contract.TotalAmount)
	}
}

func TestContract_RejectFromPending(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.CreateContract(ctx, service.CreateContractRequest{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contract, err = contracts.Reject(ctx, contract.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusRejected {
		t.Fatalf("expected rejected, got %s", contract.Status)
	}

	// Terminal: nothing moves a rejected contract.
	if _, err := contracts.Accept(ctx, contract.ID); !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 2. CANCELLATION
// ──────────────────────────────────────────────

func TestContract_CancelActiveReleasesScooterWithoutPosting(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.StartRental(ctx, service.StartRentalRequest{
		CustomerID: customer.ID,
		ScooterID:  scooter.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contract, err = contracts.Cancel(ctx, contract.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.Status != domain.ContractStatusCancelled {
		t.Fatalf("expected cancelled, got %s", contract.Status)
	}

	released, _ := store.Scooters().GetByID(ctx, scooter.ID)
	if released.Status != domain.ScooterStatusAvailable {
		t.Errorf("expected scooter available after cancel, got %s", released.Status)
	}

	entries, err := store.CashFlow().GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no ledger entries after cancel, got %d", len(entries))
	}
}

func TestContract_CancelPendingLeavesScooterAlone(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.CreateContract(ctx, service.CreateContractRequest{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := contracts.Cancel(ctx, contract.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	untouched, _ := store.Scooters().GetByID(ctx, scooter.ID)
	if untouched.Status != domain.ScooterStatusAvailable {
		t.Errorf("expected scooter untouched, got %s", untouched.Status)
	}
}

// ──────────────────────────────────────────────
// 3. INVALID TRANSITIONS LEAVE STATE UNTOUCHED
// ──────────────────────────────────────────────

func TestContract_FinalizePendingRejectedAndNothingChanges(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.CreateContract(ctx, service.CreateContractRequest{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = contracts.Finalize(ctx, service.FinalizeRequest{
		ContractID:    contract.ID,
		MinutesUsed:   10,
		PaymentMethod: domain.PaymentMethodCash,
	})
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Contract still pending, scooter still available, ledger empty.
	unchanged, _ := store.Contracts().GetByID(ctx, contract.ID)
	if unchanged.Status != domain.ContractStatusPending {
		t.Errorf("expected contract still pending, got %s", unchanged.Status)
	}
	sc, _ := store.Scooters().GetByID(ctx, scooter.ID)
	if sc.Status != domain.ScooterStatusAvailable {
		t.Errorf("expected scooter still available, got %s", sc.Status)
	}
	entries, _ := store.CashFlow().GetAll(ctx)
	if len(entries) != 0 {
		t.Errorf("expected empty ledger, got %d entries", len(entries))
	}
}

func TestContract_DoubleFinalizeRejected(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 1.00)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.StartRental(ctx, service.StartRentalRequest{
		CustomerID: customer.ID,
		ScooterID:  scooter.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	finalize := service.FinalizeRequest{
		ContractID:    contract.ID,
		MinutesUsed:   10,
		PaymentMethod: domain.PaymentMethodCash,
	}
	if _, err := contracts.Finalize(ctx, finalize); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := contracts.Finalize(ctx, finalize); !errors.Is(err, service.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Only the first finalize posted.
	entries, _ := store.CashFlow().GetByContractID(ctx, contract.ID)
	if len(entries) != 1 {
		t.Errorf("expected 1 ledger entry, got %d", len(entries))
	}
}

// ──────────────────────────────────────────────
// 4. GUARDS
// ──────────────────────────────────────────────

func TestContract_InactiveCustomerCannotRent(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	customer.Status = domain.CustomerStatusInactive
	if err := store.Customers().Update(ctx, customer); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := contracts.CreateContract(ctx, service.CreateContractRequest{CustomerID: customer.ID}); !errors.Is(err, service.ErrCustomerInactive) {
		t.Errorf("expected ErrCustomerInactive on create, got %v", err)
	}
	_, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if !errors.Is(err, service.ErrCustomerInactive) {
		t.Errorf("expected ErrCustomerInactive on direct rental, got %v", err)
	}
}

func TestContract_ScooterCanServeOneActiveContract(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	if _, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if !errors.Is(err, service.ErrScooterNotAssignable) {
		t.Fatalf("expected ErrScooterNotAssignable, got %v", err)
	}
}

func TestContract_MaintenanceScooterNotAssignable(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	if err := store.Scooters().UpdateStatus(ctx, scooter.ID, domain.ScooterStatusMaintenance); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if !errors.Is(err, service.ErrScooterNotAssignable) {
		t.Errorf("expected ErrScooterNotAssignable, got %v", err)
	}
}

func TestContract_ReturnedScooterIsAssignable(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	if err := store.Scooters().UpdateStatus(ctx, scooter.ID, domain.ScooterStatusReturned); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID}); err != nil {
		t.Errorf("expected returned scooter to be assignable, got %v", err)
	}
}

func TestContract_StartWithoutScooterBoundRejected(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.CreateContract(ctx, service.CreateContractRequest{CustomerID: customer.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := contracts.Accept(ctx, contract.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = contracts.Start(ctx, service.StartRequest{ContractID: contract.ID})
	if !errors.Is(err, service.ErrScooterNotBound) {
		t.Errorf("expected ErrScooterNotBound, got %v", err)
	}
}

func TestContract_FinalizeValidatesInput(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = contracts.Finalize(ctx, service.FinalizeRequest{ContractID: contract.ID, MinutesUsed: -1, PaymentMethod: domain.PaymentMethodCash})
	if !errors.Is(err, service.ErrInvalidMinutes) {
		t.Errorf("expected ErrInvalidMinutes, got %v", err)
	}

	_, err = contracts.Finalize(ctx, service.FinalizeRequest{ContractID: contract.ID, MinutesUsed: 10})
	if !errors.Is(err, service.ErrPaymentMethodRequired) {
		t.Errorf("expected ErrPaymentMethodRequired, got %v", err)
	}

	_, err = contracts.Finalize(ctx, service.FinalizeRequest{ContractID: contract.ID, MinutesUsed: 10, PaymentMethod: "check"})
	if !errors.Is(err, service.ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestContract_FinalizeZeroMinutesPostsZeroEntry(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contract, err = contracts.Finalize(ctx, service.FinalizeRequest{ContractID: contract.ID, MinutesUsed: 0, PaymentMethod: domain.PaymentMethodCash})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contract.TotalAmount != 0 {
		t.Errorf("expected zero total, got %.2f", contract.TotalAmount)
	}

	// A zero-amount rental still leaves its trace in the ledger.
	entries, _ := store.CashFlow().GetByContractID(ctx, contract.ID)
	if len(entries) != 1 {
		t.Errorf("expected 1 ledger entry, got %d", len(entries))
	}
}

// ──────────────────────────────────────────────
// 5. DISTRIBUTED CLAIM LOCK
// ──────────────────────────────────────────────

func TestContract_HeldClaimLockSurfacesAsScooterInUse(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	locks := NewMockLockStore()
	locks.Denied = true

	contracts := service.NewContractService(store, locks, nil)
	ctx := context.Background()

	_, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if !errors.Is(err, service.ErrScooterInUse) {
		t.Fatalf("expected ErrScooterInUse, got %v", err)
	}

	// Nothing was claimed.
	sc, _ := store.Scooters().GetByID(ctx, scooter.ID)
	if sc.Status != domain.ScooterStatusAvailable {
		t.Errorf("expected scooter still available, got %s", sc.Status)
	}
}

func TestContract_ClaimLockReleasedAfterRental(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	locks := NewMockLockStore()

	contracts := service.NewContractService(store, locks, nil)
	ctx := context.Background()

	if _, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if locks.AcquireCallCount != 1 {
		t.Errorf("expected 1 acquire, got %d", locks.AcquireCallCount)
	}
	if locks.ReleaseCallCount != 1 {
		t.Errorf("expected 1 release, got %d", locks.ReleaseCallCount)
	}
}

// ──────────────────────────────────────────────
// 6. DELETION
// ──────────────────────────────────────────────

func TestContract_DeleteIsUnconditional(t *testing.T) {
	t.Parallel()

	store := newTestStore()
	customer := seedCustomer(store)
	scooter := seedScooter(store, 0.50)
	contracts := service.NewContractService(store, nil, nil)
	ctx := context.Background()

	contract, err := contracts.StartRental(ctx, service.StartRentalRequest{CustomerID: customer.ID, ScooterID: scooter.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Deleting an active contract does not release the scooter.
	if err := contracts.Delete(ctx, contract.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Contracts().GetByID(ctx, contract.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	sc, _ := store.Scooters().GetByID(ctx, scooter.ID)
	if sc.Status != domain.ScooterStatusInProgress {
		t.Errorf("expected scooter left in_progress, got %s", sc.Status)
	}
}
