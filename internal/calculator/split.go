package calculator

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/groupsplit/internal/models"
)

// DateLayout is the layout of Expense.Date.
const DateLayout = "2006-01-02"

// SplitMethod selects how an expense amount is divided among members.
type SplitMethod string

const (
	// SplitEqual divides the amount equally among all group members.
	SplitEqual SplitMethod = "equal"
	// SplitCustom uses caller-provided shares.
	SplitCustom SplitMethod = "custom"
)

// ParseSplitMethod parses a split method name. Empty means SplitEqual.
func ParseSplitMethod(s string) (SplitMethod, error) {
	switch SplitMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitEqual:
		return SplitEqual, nil
	case SplitCustom:
		return SplitCustom, nil
	default:
		return "", models.NewValidationError("split_method", "unknown split method %q", s)
	}
}

// EqualSplit divides amount equally among members, to the cent.
// Cents that don't divide evenly go one each to the first members in order,
// so the shares always sum to the amount rounded to cents.
//
// Example: 100 among 3 members = 33.34, 33.33, 33.33
func EqualSplit(amount float64, members []string) (map[string]float64, error) {
	if len(members) == 0 {
		return nil, models.NewValidationError("members", "must have at least one member")
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	cents := toDecimal(amount).Shift(2).Round(0)
	base, rem := cents.QuoRem(decimal.NewFromInt(int64(len(members))), 0)
	remainder := rem.IntPart() // always below len(members)

	splits := make(map[string]float64, len(members))
	for i, member := range members {
		share := base
		if int64(i) < remainder {
			share = share.Add(decimal.NewFromInt(1))
		}
		splits[member] = share.Shift(-2).InexactFloat64()
	}
	return splits, nil
}

// CustomSplit fills in zero shares for members missing from shares and
// returns a new map. Shares for non-members are kept so validation can
// reject them.
func CustomSplit(shares map[string]float64, members []string) map[string]float64 {
	splits := make(map[string]float64, len(members))
	for _, member := range members {
		splits[member] = 0
	}
	for member, share := range shares {
		splits[member] = share
	}
	return splits
}

// ValidateSplits checks that every share is non-negative and that the shares
// sum to amount within SignificanceThreshold.
func ValidateSplits(amount float64, splits map[string]float64) error {
	sum := decimal.Zero
	for _, member := range slices.Sorted(maps.Keys(splits)) {
		share := splits[member]
		if math.IsNaN(share) || math.IsInf(share, 0) || share < 0 {
			return models.NewValidationError("splits", "share for %s must be a non-negative number", member)
		}
		sum = sum.Add(decimal.NewFromFloat(share))
	}

	total := toDecimal(amount)
	if sum.Sub(total).Abs().GreaterThan(threshold) {
		return models.NewValidationError("splits",
			"split amount (%s) doesn't match expense amount (%s)",
			sum.StringFixed(2), total.StringFixed(2))
	}
	return nil
}

// ValidateDraft checks an expense draft against its group before it is
// handed to the ledger. Unknown members yield models.ErrNotFound; every
// other problem is a *models.ValidationError.
func ValidateDraft(group *models.Group, draft models.ExpenseDraft) error {
	if strings.TrimSpace(draft.Description) == "" {
		return models.NewValidationError("description", "please enter an expense description")
	}
	if err := validateAmount(draft.Amount); err != nil {
		return err
	}
	if draft.Date == "" {
		return models.NewValidationError("date", "please select a date")
	}
	if _, err := time.Parse(DateLayout, draft.Date); err != nil {
		return models.NewValidationError("date", "must be a date in YYYY-MM-DD form, got %q", draft.Date)
	}
	if !group.HasMember(draft.PaidBy) {
		return fmt.Errorf("payer %q: member %w", draft.PaidBy, models.ErrNotFound)
	}
	if len(draft.Splits) == 0 {
		return models.NewValidationError("splits", "at least one share is required")
	}
	for _, member := range slices.Sorted(maps.Keys(draft.Splits)) {
		if !group.HasMember(member) {
			return fmt.Errorf("split %q: member %w", member, models.ErrNotFound)
		}
	}
	return ValidateSplits(draft.Amount, draft.Splits)
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return models.NewValidationError("amount", "please enter a valid amount")
	}
	if amount > MaxAmount {
		return models.NewValidationError("amount", "must not exceed %s", decimal.NewFromFloat(MaxAmount).String())
	}
	return nil
}
