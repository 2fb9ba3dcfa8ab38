package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"veeloway/internal/service"
)

// DashboardHandler serves the landing-screen figures.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// StatsResponse is the HTTP representation of the dashboard figures.
type StatsResponse struct {
	TotalCustomers    int     `json:"total_customers"`
	AvailableScooters int     `json:"available_scooters"`
	ActiveContracts   int     `json:"active_contracts"`
	RevenueToday      float64 `json:"revenue_today"`
	RevenueMonth      float64 `json:"revenue_month"`
}

// Stats handles GET /v1/dashboard
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, StatsResponse{
		TotalCustomers:    stats.TotalCustomers,
		AvailableScooters: stats.AvailableScooters,
		ActiveContracts:   stats.ActiveContracts,
		RevenueToday:      stats.RevenueToday,
		RevenueMonth:      stats.RevenueMonth,
	})
}
