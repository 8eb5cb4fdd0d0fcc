package models

// Balance is one member's net position across all of a group's expenses.
type Balance struct {
	// Member is the member name.
	Member string `json:"member"`

	// Amount is total paid minus total owed, rounded to cents.
	// Positive = is owed money, Negative = owes money, zero = settled.
	Amount float64 `json:"balance"`
}

// Settlement is a proposed transfer that moves balances toward zero.
type Settlement struct {
	// From is the member who owes and pays.
	From string `json:"from"`

	// To is the member who is owed and receives.
	To string `json:"to"`

	// Amount is the transfer amount, rounded to cents. Always above the
	// significance threshold.
	Amount float64 `json:"amount"`
}
