package domain

// EntryType classifies a ledger movement.
type EntryType string

const (
	EntryTypeInflow  EntryType = "inflow"
	EntryTypeOutflow EntryType = "outflow"
)

// CashFlowEntry is a single ledger row. Entries posted by the contract
// engine at finalization carry the contract id and payment method; manual
// entries created through the ledger may leave both empty.
type CashFlowEntry struct {
	ID            string        `json:"id"`
	Type          EntryType     `json:"type"`
	Amount        float64       `json:"amount"` // always > 0; Type carries the sign
	Description   string        `json:"description"`
	Category      string        `json:"category"`
	Date          string        `json:"date"` // calendar day, 2006-01-02
	ContractID    string        `json:"contract_id,omitempty"`
	PaymentMethod PaymentMethod `json:"payment_method,omitempty"`
}

// RentalCategory is the ledger category used for engine-posted rental income.
const RentalCategory = "Rental"

// DateLayout is the calendar-day format used by ledger entries.
const DateLayout = "2006-01-02"
