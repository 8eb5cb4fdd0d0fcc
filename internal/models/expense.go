package models

// Expense is a single payment recorded against a group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is what the money was spent on (e.g., "Groceries").
	Description string `json:"description"`

	// Amount is the total paid. Always positive; no currency is attached.
	Amount float64 `json:"amount"`

	// PaidBy is the name of the member who paid.
	PaidBy string `json:"paidBy"`

	// Date is the calendar date of the expense in YYYY-MM-DD form.
	Date string `json:"date"`

	// Splits maps member name to that member's share of Amount.
	// The payer's own share, if any, is included.
	Splits map[string]float64 `json:"splits"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`
}

// Clone returns a copy of the expense that shares no maps with e.
func (e Expense) Clone() Expense {
	if e.Splits != nil {
		splits := make(map[string]float64, len(e.Splits))
		for k, v := range e.Splits {
			splits[k] = v
		}
		e.Splits = splits
	}
	return e
}

// ExpenseDraft is the caller-supplied part of an Expense.
// The ledger assigns ID and CreatedAt when the draft is accepted.
type ExpenseDraft struct {
	Description string
	Amount      float64
	PaidBy      string
	Date        string
	Splits      map[string]float64
}
