package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"veeloway/internal/domain"
	"veeloway/internal/service"
)

// ContractHandler handles HTTP requests for contracts and rentals.
type ContractHandler struct {
	contractService *service.ContractService
}

// NewContractHandler creates a new ContractHandler.
func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// CreateContractRequest is the HTTP request body for creating a contract in
// the template workflow.
type CreateContractRequest struct {
	CustomerID       string  `json:"customer_id"`
	Notes            string  `json:"notes,omitempty"`
	EstimatedMinutes int     `json:"estimated_minutes,omitempty"`
	EstimatedAmount  float64 `json:"estimated_amount,omitempty"`
}

// StartRentalRequest is the HTTP request body for starting a rental directly.
type StartRentalRequest struct {
	CustomerID string `json:"customer_id"`
	ScooterID  string `json:"scooter_id"`
	Notes      string `json:"notes,omitempty"`
}

// StartContractRequest is the HTTP request body for starting an accepted contract.
type StartContractRequest struct {
	ScooterID string `json:"scooter_id,omitempty"`
}

// FinalizeContractRequest is the HTTP request body for finalizing a rental.
type FinalizeContractRequest struct {
	MinutesUsed   *int   `json:"minutes_used"`
	PaymentMethod string `json:"payment_method"`
}

// ContractResponse is the HTTP representation of a contract.
type ContractResponse struct {
	ID               string  `json:"id"`
	CustomerID       string  `json:"customer_id"`
	ScooterID        string  `json:"scooter_id,omitempty"`
	Status           string  `json:"status"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
	StartedAt        string  `json:"started_at"`
	EndedAt          string  `json:"ended_at,omitempty"`
	AcceptedAt       string  `json:"accepted_at,omitempty"`
	MinutesUsed      int     `json:"minutes_used"`
	TotalAmount      float64 `json:"total_amount"`
	EstimatedMinutes int     `json:"estimated_minutes,omitempty"`
	EstimatedAmount  float64 `json:"estimated_amount,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

func toContractResponse(contract *domain.Contract) ContractResponse {
	resp := ContractResponse{
		ID:               contract.ID,
		CustomerID:       contract.CustomerID,
		ScooterID:        contract.ScooterID,
		Status:           string(contract.Status),
		PaymentMethod:    string(contract.PaymentMethod),
		StartedAt:        contract.StartedAt.Format(time.RFC3339),
		MinutesUsed:      contract.MinutesUsed,
		TotalAmount:      contract.TotalAmount,
		EstimatedMinutes: contract.EstimatedMinutes,
		EstimatedAmount:  contract.EstimatedAmount,
		Notes:            contract.Notes,
	}
	if !contract.EndedAt.IsZero() {
		resp.EndedAt = contract.EndedAt.Format(time.RFC3339)
	}
	if !contract.AcceptedAt.IsZero() {
		resp.AcceptedAt = contract.AcceptedAt.Format(time.RFC3339)
	}
	return resp
}

// Create handles POST /v1/contracts
func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), service.CreateContractRequest{
		CustomerID:       req.CustomerID,
		Notes:            req.Notes,
		EstimatedMinutes: req.EstimatedMinutes,
		EstimatedAmount:  req.EstimatedAmount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toContractResponse(contract))
}

// StartRental handles POST /v1/rentals
func (h *ContractHandler) StartRental(c *gin.Context) {
	var req StartRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	contract, err := h.contractService.StartRental(c.Request.Context(), service.StartRentalRequest{
		CustomerID: req.CustomerID,
		ScooterID:  req.ScooterID,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toContractResponse(contract))
}

// Get handles GET /v1/contracts/:id
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contractService.GetContract(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toContractResponse(contract))
}

// GetAll handles GET /v1/contracts
func (h *ContractHandler) GetAll(c *gin.Context) {
	contracts, err := h.contractService.GetAllContracts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	status := c.Query("status")
	response := make([]ContractResponse, 0, len(contracts))
	for _, contract := range contracts {
		if status != "" && string(contract.Status) != status {
			continue
		}
		response = append(response, toContractResponse(contract))
	}

	c.JSON(http.StatusOK, response)
}

// Accept handles POST /v1/contracts/:id/accept
func (h *ContractHandler) Accept(c *gin.Context) {
	contract, err := h.contractService.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toContractResponse(contract))
}

// Reject handles POST /v1/contracts/:id/reject
func (h *ContractHandler) Reject(c *gin.Context) {
	contract, err := h.contractService.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toContractResponse(contract))
}

// Start handles POST /v1/contracts/:id/start. The body is optional: a
// contract that already has its scooter bound starts without one.
func (h *ContractHandler) Start(c *gin.Context) {
	var req StartContractRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	contract, err := h.contractService.Start(c.Request.Context(), service.StartRequest{
		ContractID: c.Param("id"),
		ScooterID:  req.ScooterID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toContractResponse(contract))
}

// Finalize handles POST /v1/contracts/:id/finalize
func (h *ContractHandler) Finalize(c *gin.Context) {
	var req FinalizeContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.MinutesUsed == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: service.ErrInvalidMinutes.Error()})
		return
	}

	contract, err := h.contractService.Finalize(c.Request.Context(), service.FinalizeRequest{
		ContractID:    c.Param("id"),
		MinutesUsed:   *req.MinutesUsed,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toContractResponse(contract))
}

// Cancel handles POST /v1/contracts/:id/cancel
func (h *ContractHandler) Cancel(c *gin.Context) {
	contract, err := h.contractService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toContractResponse(contract))
}

// Delete handles DELETE /v1/contracts/:id
func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.contractService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
