package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

func TestStore_AtomicRollbackLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	scooter := &domain.Scooter{ID: "s1", Model: "VX-2", Status: domain.ScooterStatusAvailable}
	require.NoError(t, store.Scooters().Create(ctx, scooter))

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Scooters().UpdateStatus(ctx, "s1", domain.ScooterStatusInProgress))
		require.NoError(t, tx.Contracts().Create(ctx, &domain.Contract{ID: "c1", ScooterID: "s1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Scooters().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ScooterStatusAvailable, got.Status)

	_, err = store.Contracts().GetByID(ctx, "c1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_AtomicCommitAppliesAllWrites(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Scooters().Create(ctx, &domain.Scooter{ID: "s1", Status: domain.ScooterStatusAvailable}))

	err := store.Atomic(ctx, func(tx repository.Store) error {
		if err := tx.Scooters().UpdateStatus(ctx, "s1", domain.ScooterStatusInProgress); err != nil {
			return err
		}
		return tx.Contracts().Create(ctx, &domain.Contract{ID: "c1", ScooterID: "s1", Status: domain.ContractStatusActive})
	})
	require.NoError(t, err)

	got, err := store.Scooters().GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ScooterStatusInProgress, got.Status)

	contract, err := store.Contracts().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, contract.Status)
}

func TestStore_ContractsOrderedMostRecentFirst(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	older := &domain.Contract{ID: "older", StartedAt: base}
	newer := &domain.Contract{ID: "newer", StartedAt: base.Add(time.Hour)}
	// Same instant as older: creation order breaks the tie.
	tied := &domain.Contract{ID: "tied", StartedAt: base}

	require.NoError(t, store.Contracts().Create(ctx, older))
	require.NoError(t, store.Contracts().Create(ctx, newer))
	require.NoError(t, store.Contracts().Create(ctx, tied))

	all, err := store.Contracts().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "newer", all[0].ID)
	assert.Equal(t, "older", all[1].ID)
	assert.Equal(t, "tied", all[2].ID)
}

func TestStore_CreateAssignsMonotonicSeq(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	first := &domain.Contract{ID: "c1"}
	second := &domain.Contract{ID: "c2"}
	require.NoError(t, store.Contracts().Create(ctx, first))
	require.NoError(t, store.Contracts().Create(ctx, second))

	assert.Greater(t, second.Seq, first.Seq)
}

func TestStore_ReadsReturnCopies(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Customers().Create(ctx, &domain.Customer{ID: "u1", Name: "Ana"}))

	got, err := store.Customers().GetByID(ctx, "u1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := store.Customers().GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Name)
}

func TestStore_GetActiveByScooterID(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Contracts().Create(ctx, &domain.Contract{ID: "done", ScooterID: "s1", Status: domain.ContractStatusFinalized}))

	active, err := store.Contracts().GetActiveByScooterID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, active)

	require.NoError(t, store.Contracts().Create(ctx, &domain.Contract{ID: "live", ScooterID: "s1", Status: domain.ContractStatusActive}))

	active, err = store.Contracts().GetActiveByScooterID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "live", active.ID)
}

func TestStore_NestedAtomicJoinsOuterTransaction(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	boom := errors.New("boom")
	err := store.Atomic(ctx, func(tx repository.Store) error {
		if err := tx.Customers().Create(ctx, &domain.Customer{ID: "u1"}); err != nil {
			return err
		}
		return tx.Atomic(ctx, func(inner repository.Store) error {
			if err := inner.Customers().Create(ctx, &domain.Customer{ID: "u2"}); err != nil {
				return err
			}
			return boom
		})
	})
	require.ErrorIs(t, err, boom)

	// The inner failure aborts the whole unit.
	_, err = store.Customers().GetByID(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = store.Customers().GetByID(ctx, "u2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_EntriesOrderedByDateDescending(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.CashFlow().Create(ctx, &domain.CashFlowEntry{ID: "e1", Date: "2026-08-01"}))
	require.NoError(t, store.CashFlow().Create(ctx, &domain.CashFlowEntry{ID: "e2", Date: "2026-08-15"}))
	require.NoError(t, store.CashFlow().Create(ctx, &domain.CashFlowEntry{ID: "e3", Date: "2026-08-15"}))

	all, err := store.CashFlow().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "e2", all[0].ID)
	assert.Equal(t, "e3", all[1].ID)
	assert.Equal(t, "e1", all[2].ID)
}
