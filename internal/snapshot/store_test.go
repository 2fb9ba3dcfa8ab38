package snapshot

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veeloway/internal/domain"
)

func TestCollectionsSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	registered := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)

	customers := []*domain.Customer{
		{
			ID:           "cust-1",
			Name:         "Ana Souza",
			Email:        "ana@example.com",
			Phone:        "+55 11 99999-0001",
			Document:     "123.456.789-00",
			Address:      "Rua A, 100",
			Status:       domain.CustomerStatusActive,
			RegisteredAt: registered,
		},
		{ID: "cust-2", Name: "Bruno Lima", Status: domain.CustomerStatusInactive, RegisteredAt: registered},
	}

	scooters := []*domain.Scooter{
		{
			ID:            "scoot-1",
			Brand:         "Volt",
			Model:         "VX-2",
			SerialNumber:  "SN-0001",
			Status:        domain.ScooterStatusAvailable,
			Battery:       90,
			Location:      "Depot North",
			RatePerMinute: 0.5,
			RegisteredAt:  registered,
		},
		{ID: "scoot-2", Model: "VX-3", Status: domain.ScooterStatusMaintenance, RatePerMinute: 0.8, RegisteredAt: registered},
	}

	contracts := []*domain.Contract{
		{
			ID:            "ct-1",
			Seq:           1,
			CustomerID:    "cust-1",
			ScooterID:     "scoot-1",
			Status:        domain.ContractStatusFinalized,
			PaymentMethod: domain.PaymentMethodPix,
			StartedAt:     registered,
			EndedAt:       registered.Add(45 * time.Minute),
			AcceptedAt:    registered.Add(-time.Hour),
			MinutesUsed:   45,
			TotalAmount:   22.5,
			Notes:         "weekend trip",
		},
		// Template contract: no scooter bound yet, all optional fields at
		// their zero values.
		{
			ID:         "ct-2",
			Seq:        2,
			CustomerID: "cust-1",
			Status:     domain.ContractStatusPending,
			StartedAt:  registered,
		},
	}

	entries := []*domain.CashFlowEntry{
		{
			ID:            "cf-1",
			Type:          domain.EntryTypeInflow,
			Amount:        22.5,
			Description:   "Rental finalized - 45 minutes",
			Category:      domain.RentalCategory,
			Date:          "2026-08-20",
			ContractID:    "ct-1",
			PaymentMethod: domain.PaymentMethodPix,
		},
		// Manual entry: no contract, no payment method.
		{ID: "cf-2", Type: domain.EntryTypeOutflow, Amount: 31.5, Description: "Battery swap", Category: "Maintenance", Date: "2026-08-19"},
	}

	roundTrip := func(in, out any) {
		data, err := json.Marshal(in)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(data, out))
	}

	var gotCustomers []*domain.Customer
	roundTrip(customers, &gotCustomers)
	assert.Equal(t, customers, gotCustomers)

	var gotScooters []*domain.Scooter
	roundTrip(scooters, &gotScooters)
	assert.Equal(t, scooters, gotScooters)

	var gotContracts []*domain.Contract
	roundTrip(contracts, &gotContracts)
	assert.Equal(t, contracts, gotContracts)

	var gotEntries []*domain.CashFlowEntry
	roundTrip(entries, &gotEntries)
	assert.Equal(t, entries, gotEntries)
}

func TestDecodeToleratesMissingOptionalFields(t *testing.T) {
	t.Parallel()

	// A record written before the optional fields existed still decodes;
	// the missing fields stay zero.
	raw := `[{
		"id": "ct-old",
		"customer_id": "cust-1",
		"status": "pending",
		"started_at": "2026-08-20T10:30:00Z"
	}]`

	var contracts []*domain.Contract
	require.NoError(t, json.Unmarshal([]byte(raw), &contracts))
	require.Len(t, contracts, 1)

	got := contracts[0]
	assert.Equal(t, "ct-old", got.ID)
	assert.Equal(t, domain.ContractStatusPending, got.Status)
	assert.Zero(t, got.Seq)
	assert.Empty(t, got.ScooterID)
	assert.Empty(t, got.PaymentMethod)
	assert.True(t, got.EndedAt.IsZero())
	assert.True(t, got.AcceptedAt.IsZero())
	assert.Zero(t, got.MinutesUsed)
	assert.Zero(t, got.TotalAmount)

	rawEntry := `[{"id": "cf-old", "type": "inflow", "amount": 10, "date": "2026-08-19"}]`

	var entries []*domain.CashFlowEntry
	require.NoError(t, json.Unmarshal([]byte(rawEntry), &entries))
	require.Len(t, entries, 1)
	assert.Empty(t, entries[0].ContractID)
	assert.Empty(t, entries[0].PaymentMethod)
}
