package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/groupsplit/internal/models"
)

// CalculateBalances computes every member's net balance for a group.
//
// Algorithm:
// - Start each member at zero, in member-list order
// - For each expense: payer gets +amount, each split member gets -share
//   (the payer's own share is subtracted like anyone else's)
// - Round each total to cents, half away from zero
//
// Payers and split keys that are not members are ignored. Accumulation uses
// decimal arithmetic, so the result does not depend on expense order.
func CalculateBalances(group *models.Group) []models.Balance {
	totals := make(map[string]decimal.Decimal, len(group.Members))
	for _, m := range group.Members {
		totals[m] = decimal.Zero
	}

	for _, expense := range group.Expenses {
		if paid, ok := totals[expense.PaidBy]; ok {
			totals[expense.PaidBy] = paid.Add(toDecimal(expense.Amount))
		}
		for member, share := range expense.Splits {
			if owed, ok := totals[member]; ok {
				totals[member] = owed.Sub(toDecimal(share))
			}
		}
	}

	balances := make([]models.Balance, len(group.Members))
	for i, m := range group.Members {
		balances[i] = models.Balance{Member: m, Amount: roundCents(totals[m])}
	}
	return balances
}

// TotalAmount sums the amounts of all of a group's expenses.
func TotalAmount(group *models.Group) float64 {
	total := decimal.Zero
	for _, e := range group.Expenses {
		total = total.Add(toDecimal(e.Amount))
	}
	return total.InexactFloat64()
}
