package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veeloway/internal/domain"
	"veeloway/internal/repository/memory"
	"veeloway/internal/service"
)

func newContractRouter(store *memory.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewContractHandler(service.NewContractService(store, nil, nil))
	router := gin.New()
	router.POST("/v1/contracts", h.Create)
	router.POST("/v1/rentals", h.StartRental)
	router.GET("/v1/contracts/:id", h.Get)
	router.POST("/v1/contracts/:id/finalize", h.Finalize)
	router.POST("/v1/contracts/:id/cancel", h.Cancel)
	return router
}

func seedRental(t *testing.T, store *memory.Store, rate float64) *domain.Contract {
	t.Helper()

	customer := &domain.Customer{ID: "u1", Name: "Ana", Status: domain.CustomerStatusActive}
	scooter := &domain.Scooter{ID: "s1", Model: "VX-2", Status: domain.ScooterStatusAvailable, RatePerMinute: rate, RegisteredAt: time.Now()}
	store.Seed([]*domain.Customer{customer}, []*domain.Scooter{scooter}, nil, nil)

	contract, err := service.NewContractService(store, nil, nil).StartRental(context.Background(), service.StartRentalRequest{
		CustomerID: customer.ID,
		ScooterID:  scooter.ID,
	})
	require.NoError(t, err)
	return contract
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestContractHandler_FinalizeHappyPath(t *testing.T) {
	store := memory.NewStore(nil)
	router := newContractRouter(store)
	contract := seedRental(t, store, 0.50)

	minutes := 45
	rec := doJSON(router, http.MethodPost, fmt.Sprintf("/v1/contracts/%s/finalize", contract.ID), FinalizeContractRequest{
		MinutesUsed:   &minutes,
		PaymentMethod: "pix",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ContractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "finalized", resp.Status)
	assert.Equal(t, 45, resp.MinutesUsed)
	assert.InDelta(t, 22.50, resp.TotalAmount, 1e-9)
	assert.Equal(t, "pix", resp.PaymentMethod)
	assert.NotEmpty(t, resp.EndedAt)
}

func TestContractHandler_FinalizeRequiresMinutes(t *testing.T) {
	store := memory.NewStore(nil)
	router := newContractRouter(store)
	contract := seedRental(t, store, 0.50)

	// minutes_used absent entirely.
	rec := doJSON(router, http.MethodPost, fmt.Sprintf("/v1/contracts/%s/finalize", contract.ID), map[string]any{
		"payment_method": "cash",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContractHandler_FinalizeUnknownMethodRejected(t *testing.T) {
	store := memory.NewStore(nil)
	router := newContractRouter(store)
	contract := seedRental(t, store, 0.50)

	minutes := 10
	rec := doJSON(router, http.MethodPost, fmt.Sprintf("/v1/contracts/%s/finalize", contract.ID), FinalizeContractRequest{
		MinutesUsed:   &minutes,
		PaymentMethod: "check",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContractHandler_InvalidTransitionMapsToConflict(t *testing.T) {
	store := memory.NewStore(nil)
	router := newContractRouter(store)
	contract := seedRental(t, store, 0.50)

	rec := doJSON(router, http.MethodPost, fmt.Sprintf("/v1/contracts/%s/cancel", contract.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Cancelled is terminal; cancelling again conflicts.
	rec = doJSON(router, http.MethodPost, fmt.Sprintf("/v1/contracts/%s/cancel", contract.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestContractHandler_UnknownContractMapsToNotFound(t *testing.T) {
	store := memory.NewStore(nil)
	router := newContractRouter(store)

	rec := doJSON(router, http.MethodGet, "/v1/contracts/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContractHandler_StartRentalValidatesBody(t *testing.T) {
	store := memory.NewStore(nil)
	router := newContractRouter(store)

	rec := doJSON(router, http.MethodPost, "/v1/rentals", StartRentalRequest{CustomerID: "", ScooterID: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
