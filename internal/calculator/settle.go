package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupsplit/internal/models"
)

// party is a creditor or debtor waiting to be matched. remaining is always
// a magnitude (non-negative).
type party struct {
	member    string
	remaining decimal.Decimal
}

// GenerateSettlements computes the transfers that settle a group.
// It is SettleBalances applied to CalculateBalances(group).
func GenerateSettlements(group *models.Group) []models.Settlement {
	return SettleBalances(CalculateBalances(group))
}

// SettleBalances turns net balances into a list of transfers using greedy
// matching of the largest debt against the largest credit.
//
// Creditors are ordered by balance descending and debtors by balance
// ascending. Both sorts are stable: members with equal balances keep their
// input order, so output is reproducible.
//
// Each step transfers min(debt, credit) from the front debtor to the front
// creditor. Transfers of SignificanceThreshold or less are not emitted, and
// a party leaves its queue once its remainder drops below the threshold.
// Matching stops when either queue is empty.
//
// The result is not guaranteed to use the fewest possible transfers; that
// problem is NP-hard in general.
func SettleBalances(balances []models.Balance) []models.Settlement {
	var creditors, debtors []party
	for _, b := range balances {
		amount := toDecimal(b.Amount)
		switch {
		case amount.IsPositive():
			creditors = append(creditors, party{member: b.Member, remaining: amount})
		case amount.IsNegative():
			debtors = append(debtors, party{member: b.Member, remaining: amount.Neg()})
		}
	}

	// Largest magnitude first on both sides.
	byRemainingDesc := func(a, b party) int { return b.remaining.Cmp(a.remaining) }
	slices.SortStableFunc(creditors, byRemainingDesc)
	slices.SortStableFunc(debtors, byRemainingDesc)

	var settlements []models.Settlement
	for len(debtors) > 0 && len(creditors) > 0 {
		debtor, creditor := &debtors[0], &creditors[0]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		if amount.GreaterThan(threshold) {
			settlements = append(settlements, models.Settlement{
				From:   debtor.member,
				To:     creditor.member,
				Amount: roundCents(amount),
			})
		}

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThan(threshold) {
			debtors = debtors[1:]
		}
		if creditor.remaining.LessThan(threshold) {
			creditors = creditors[1:]
		}
	}

	return settlements
}
