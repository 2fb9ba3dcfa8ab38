package service

import (
	"context"
	"time"

	"veeloway/internal/domain"
	internalRedis "veeloway/internal/redis"
	"veeloway/internal/repository"
)

// DashboardService computes the landing-screen figures.
type DashboardService struct {
	store repository.Store
	cache internalRedis.CacheStoreInterface
}

// NewDashboardService creates a new DashboardService. cache may be nil;
// the figures are then recomputed on every call.
func NewDashboardService(store repository.Store, cache internalRedis.CacheStoreInterface) *DashboardService {
	return &DashboardService{store: store, cache: cache}
}

// Stats are the headline figures shown on the dashboard.
type Stats struct {
	TotalCustomers    int     `json:"total_customers"`
	AvailableScooters int     `json:"available_scooters"`
	ActiveContracts   int     `json:"active_contracts"`
	RevenueToday      float64 `json:"revenue_today"`
	RevenueMonth      float64 `json:"revenue_month"`
}

// Stats computes the dashboard figures relative to now, serving from the
// short-lived cache when one is configured. Revenue counts ledger inflow
// only.
func (s *DashboardService) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	if s.cache != nil {
		var cached Stats
		if hit, err := s.cache.GetDashboard(ctx, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	stats, err := s.compute(ctx, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Best effort; a failed cache write only costs the next caller a
		// recompute.
		_ = s.cache.SetDashboard(ctx, stats)
	}

	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context, now time.Time) (*Stats, error) {
	customers, err := s.store.Customers().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	scooters, err := s.store.Scooters().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	contracts, err := s.store.Contracts().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.CashFlow().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalCustomers: len(customers)}

	for _, sc := range scooters {
		if sc.Status == domain.ScooterStatusAvailable {
			stats.AvailableScooters++
		}
	}
	for _, ct := range contracts {
		if ct.Status == domain.ContractStatusActive {
			stats.ActiveContracts++
		}
	}

	today := now.Format(domain.DateLayout)
	month := now.Format("2006-01")
	for _, e := range entries {
		if e.Type != domain.EntryTypeInflow {
			continue
		}
		if e.Date == today {
			stats.RevenueToday += e.Amount
		}
		if len(e.Date) >= len(month) && e.Date[:len(month)] == month {
			stats.RevenueMonth += e.Amount
		}
	}

	return stats, nil
}
