package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"veeloway/internal/domain"
	"veeloway/internal/service"
)

// ReportHandler serves the reporting screens.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ScooterUsageResponse is the per-scooter slice of a daily report.
type ScooterUsageResponse struct {
	ScooterID    string  `json:"scooter_id"`
	Trips        int     `json:"trips"`
	TotalMinutes int     `json:"total_minutes"`
	TotalBilled  float64 `json:"total_billed"`
}

// DailyReportResponse is the HTTP representation of a daily report.
type DailyReportResponse struct {
	Date           string                 `json:"date"`
	Trips          int                    `json:"trips"`
	TotalMinutes   int                    `json:"total_minutes"`
	TotalBilled    float64                `json:"total_billed"`
	AverageMinutes int                    `json:"average_minutes"`
	AverageBilled  float64                `json:"average_billed"`
	ByScooter      []ScooterUsageResponse `json:"by_scooter"`
}

// FinalizedSummaryResponse is the HTTP representation of the all-time
// finalized-rental summary.
type FinalizedSummaryResponse struct {
	Rentals         int                `json:"rentals"`
	TotalMinutes    int                `json:"total_minutes"`
	TotalRevenue    float64            `json:"total_revenue"`
	RevenueByMethod map[string]float64 `json:"revenue_by_method"`
}

// Daily handles GET /v1/reports/daily. The ?date= parameter defaults to
// today.
func (h *ReportHandler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}

	report, err := h.reportService.Daily(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := DailyReportResponse{
		Date:           report.Date,
		Trips:          report.Trips,
		TotalMinutes:   report.TotalMinutes,
		TotalBilled:    report.TotalBilled,
		AverageMinutes: report.AverageMinutes,
		AverageBilled:  report.AverageBilled,
		ByScooter:      make([]ScooterUsageResponse, 0, len(report.ByScooter)),
	}
	for _, u := range report.ByScooter {
		resp.ByScooter = append(resp.ByScooter, ScooterUsageResponse{
			ScooterID:    u.ScooterID,
			Trips:        u.Trips,
			TotalMinutes: u.TotalMinutes,
			TotalBilled:  u.TotalBilled,
		})
	}

	respondJSON(c, http.StatusOK, resp)
}

// Finalized handles GET /v1/reports/finalized
func (h *ReportHandler) Finalized(c *gin.Context) {
	summary, err := h.reportService.Finalized(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	byMethod := make(map[string]float64, len(summary.RevenueByMethod))
	for method, amount := range summary.RevenueByMethod {
		byMethod[string(method)] = amount
	}

	respondJSON(c, http.StatusOK, FinalizedSummaryResponse{
		Rentals:         summary.Rentals,
		TotalMinutes:    summary.TotalMinutes,
		TotalRevenue:    summary.TotalRevenue,
		RevenueByMethod: byMethod,
	})
}
