package service

import (
	"context"
	"time"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// ReportService aggregates finalized rentals for the reporting screens.
type ReportService struct {
	store repository.Store
}

// NewReportService creates a new ReportService.
func NewReportService(store repository.Store) *ReportService {
	return &ReportService{store: store}
}

// ScooterUsage is the per-scooter slice of a daily report.
type ScooterUsage struct {
	ScooterID    string
	Trips        int
	TotalMinutes int
	TotalBilled  float64
}

// DailyReport summarizes the rentals finalized on one calendar day.
type DailyReport struct {
	Date           string
	Trips          int
	TotalMinutes   int
	TotalBilled    float64
	AverageMinutes int
	AverageBilled  float64
	ByScooter      []ScooterUsage
}

// Daily builds the report for one date (2006-01-02).
func (s *ReportService) Daily(ctx context.Context, date string) (*DailyReport, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, ErrInvalidEntryDate
	}

	contracts, err := s.store.Contracts().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{Date: date}
	usage := make(map[string]*ScooterUsage)
	var order []string

	for _, ct := range contracts {
		if ct.Status != domain.ContractStatusFinalized || ct.EndedAt.IsZero() {
			continue
		}
		if ct.EndedAt.Format(domain.DateLayout) != date {
			continue
		}

		report.Trips++
		report.TotalMinutes += ct.MinutesUsed
		report.TotalBilled += ct.TotalAmount

		if ct.ScooterID == "" {
			continue
		}
		u, ok := usage[ct.ScooterID]
		if !ok {
			u = &ScooterUsage{ScooterID: ct.ScooterID}
			usage[ct.ScooterID] = u
			order = append(order, ct.ScooterID)
		}
		u.Trips++
		u.TotalMinutes += ct.MinutesUsed
		u.TotalBilled += ct.TotalAmount
	}

	if report.Trips > 0 {
		report.AverageMinutes = report.TotalMinutes / report.Trips
		report.AverageBilled = report.TotalBilled / float64(report.Trips)
	}
	for _, id := range order {
		report.ByScooter = append(report.ByScooter, *usage[id])
	}

	return report, nil
}

// FinalizedSummary aggregates every finalized rental ever: count, totals,
// and revenue split by payment method.
type FinalizedSummary struct {
	Rentals         int
	TotalMinutes    int
	TotalRevenue    float64
	RevenueByMethod map[domain.PaymentMethod]float64
}

// Finalized builds the all-time finalized-rental summary.
func (s *ReportService) Finalized(ctx context.Context) (*FinalizedSummary, error) {
	contracts, err := s.store.Contracts().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &FinalizedSummary{RevenueByMethod: make(map[domain.PaymentMethod]float64)}
	for _, ct := range contracts {
		if ct.Status != domain.ContractStatusFinalized {
			continue
		}
		summary.Rentals++
		summary.TotalMinutes += ct.MinutesUsed
		summary.TotalRevenue += ct.TotalAmount
		if ct.PaymentMethod != "" {
			summary.RevenueByMethod[ct.PaymentMethod] += ct.TotalAmount
		}
	}

	return summary, nil
}
