package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"veeloway/internal/domain"
	"veeloway/internal/repository"
)

// CashFlowService handles the manual side of the ledger. Rental income is
// posted by the contract engine; everything here is operator-entered.
type CashFlowService struct {
	store repository.Store
}

// NewCashFlowService creates a new CashFlowService.
func NewCashFlowService(store repository.Store) *CashFlowService {
	return &CashFlowService{store: store}
}

// EntryInput contains the editable fields of a manual ledger entry.
type EntryInput struct {
	Type          string
	Amount        float64
	Description   string
	Category      string
	Date          string
	PaymentMethod string
}

// CreateEntry records a manual ledger entry. An empty date defaults to
// today.
func (s *CashFlowService) CreateEntry(ctx context.Context, input EntryInput) (*domain.CashFlowEntry, error) {
	entryType, method, date, err := validateEntryInput(input)
	if err != nil {
		return nil, err
	}

	entry := &domain.CashFlowEntry{
		ID:            uuid.New().String(),
		Type:          entryType,
		Amount:        input.Amount,
		Description:   input.Description,
		Category:      input.Category,
		Date:          date,
		PaymentMethod: method,
	}

	if err := s.store.CashFlow().Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// UpdateEntry edits an existing ledger entry. The contract back-reference
// of engine-posted entries is preserved.
func (s *CashFlowService) UpdateEntry(ctx context.Context, id string, input EntryInput) (*domain.CashFlowEntry, error) {
	entryType, method, date, err := validateEntryInput(input)
	if err != nil {
		return nil, err
	}

	entry, err := s.store.CashFlow().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	entry.Type = entryType
	entry.Amount = input.Amount
	entry.Description = input.Description
	entry.Category = input.Category
	entry.Date = date
	entry.PaymentMethod = method

	if err := s.store.CashFlow().Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes a ledger entry.
func (s *CashFlowService) DeleteEntry(ctx context.Context, id string) error {
	return s.store.CashFlow().Delete(ctx, id)
}

// GetAllEntries retrieves all ledger entries, most recent date first.
func (s *CashFlowService) GetAllEntries(ctx context.Context) ([]*domain.CashFlowEntry, error) {
	return s.store.CashFlow().GetAll(ctx)
}

// Summary aggregates the ledger as of now: lifetime totals and balance,
// today's and the current month's movement, and inflow totals per payment
// method.
type Summary struct {
	TotalInflow    float64
	TotalOutflow   float64
	Balance        float64
	TodayInflow    float64
	TodayOutflow   float64
	MonthInflow    float64
	MonthOutflow   float64
	InflowByMethod map[domain.PaymentMethod]float64
}

// Summarize computes the ledger summary relative to now.
func (s *CashFlowService) Summarize(ctx context.Context, now time.Time) (*Summary, error) {
	entries, err := s.store.CashFlow().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	today := now.Format(domain.DateLayout)
	month := now.Format("2006-01")

	summary := &Summary{InflowByMethod: make(map[domain.PaymentMethod]float64)}
	for _, e := range entries {
		switch e.Type {
		case domain.EntryTypeInflow:
			summary.TotalInflow += e.Amount
			if e.Date == today {
				summary.TodayInflow += e.Amount
			}
			if len(e.Date) >= len(month) && e.Date[:len(month)] == month {
				summary.MonthInflow += e.Amount
			}
			if e.PaymentMethod != "" {
				summary.InflowByMethod[e.PaymentMethod] += e.Amount
			}
		case domain.EntryTypeOutflow:
			summary.TotalOutflow += e.Amount
			if e.Date == today {
				summary.TodayOutflow += e.Amount
			}
			if len(e.Date) >= len(month) && e.Date[:len(month)] == month {
				summary.MonthOutflow += e.Amount
			}
		}
	}
	summary.Balance = summary.TotalInflow - summary.TotalOutflow

	return summary, nil
}

func validateEntryInput(input EntryInput) (domain.EntryType, domain.PaymentMethod, string, error) {
	entryType := domain.EntryType(input.Type)
	if entryType != domain.EntryTypeInflow && entryType != domain.EntryTypeOutflow {
		return "", "", "", ErrInvalidEntryType
	}
	if input.Amount <= 0 {
		return "", "", "", ErrInvalidEntryAmount
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return "", "", "", ErrInvalidEntryDate
	}

	var method domain.PaymentMethod
	if input.PaymentMethod != "" {
		var err error
		method, err = ValidatePaymentMethod(input.PaymentMethod)
		if err != nil {
			return "", "", "", err
		}
	}

	return entryType, method, date, nil
}
