package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"veeloway/internal/service"
)

// CashFlowHandler handles HTTP requests for the ledger.
type CashFlowHandler struct {
	cashFlowService *service.CashFlowService
}

// NewCashFlowHandler creates a new CashFlowHandler.
func NewCashFlowHandler(cashFlowService *service.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{cashFlowService: cashFlowService}
}

// EntryRequest is the HTTP request body for a manual ledger entry.
type EntryRequest struct {
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Date          string  `json:"date,omitempty"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// SummaryResponse is the HTTP representation of the ledger summary.
type SummaryResponse struct {
	TotalInflow    float64            `json:"total_inflow"`
	TotalOutflow   float64            `json:"total_outflow"`
	Balance        float64            `json:"balance"`
	TodayInflow    float64            `json:"today_inflow"`
	TodayOutflow   float64            `json:"today_outflow"`
	MonthInflow    float64            `json:"month_inflow"`
	MonthOutflow   float64            `json:"month_outflow"`
	InflowByMethod map[string]float64 `json:"inflow_by_method"`
}

// Create handles POST /v1/cashflow
func (h *CashFlowHandler) Create(c *gin.Context) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	entry, err := h.cashFlowService.CreateEntry(c.Request.Context(), service.EntryInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, entry)
}

// GetAll handles GET /v1/cashflow. Supports ?q= description/category search
// and ?type= filtering.
func (h *CashFlowHandler) GetAll(c *gin.Context) {
	entries, err := h.cashFlowService.GetAllEntries(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	q := strings.ToLower(c.Query("q"))
	entryType := c.Query("type")

	filtered := entries[:0]
	for _, entry := range entries {
		if entryType != "" && string(entry.Type) != entryType {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(entry.Description), q) &&
			!strings.Contains(strings.ToLower(entry.Category), q) {
			continue
		}
		filtered = append(filtered, entry)
	}

	c.JSON(http.StatusOK, filtered)
}

// Summary handles GET /v1/cashflow/summary
func (h *CashFlowHandler) Summary(c *gin.Context) {
	summary, err := h.cashFlowService.Summarize(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSummaryResponse(summary))
}

// Update handles PUT /v1/cashflow/:id
func (h *CashFlowHandler) Update(c *gin.Context) {
	var req EntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	entry, err := h.cashFlowService.UpdateEntry(c.Request.Context(), c.Param("id"), service.EntryInput{
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, entry)
}

// Delete handles DELETE /v1/cashflow/:id
func (h *CashFlowHandler) Delete(c *gin.Context) {
	if err := h.cashFlowService.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toSummaryResponse(summary *service.Summary) SummaryResponse {
	byMethod := make(map[string]float64, len(summary.InflowByMethod))
	for method, amount := range summary.InflowByMethod {
		byMethod[string(method)] = amount
	}
	return SummaryResponse{
		TotalInflow:    summary.TotalInflow,
		TotalOutflow:   summary.TotalOutflow,
		Balance:        summary.Balance,
		TodayInflow:    summary.TodayInflow,
		TodayOutflow:   summary.TodayOutflow,
		MonthInflow:    summary.MonthInflow,
		MonthOutflow:   summary.MonthOutflow,
		InflowByMethod: byMethod,
	}
}
