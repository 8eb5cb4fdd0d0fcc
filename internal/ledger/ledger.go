// Package ledger is the system of record for groups and their expenses.
//
// A Ledger holds the full group collection in memory and writes the whole
// collection to its storage.Store after every mutation. All methods are safe
// for concurrent use; a single mutex serializes reads, mutations and saves.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// MinGroupMembers is the smallest group CreateGroup accepts.
const MinGroupMembers = 2

// Ledger owns groups and expenses.
type Ledger struct {
	mu     sync.Mutex
	store  storage.Store
	clock  Clock
	ids    IDGenerator
	groups []models.Group
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(l *Ledger) { l.clock = c }
}

// WithIDGenerator overrides UUID generation.
func WithIDGenerator(g IDGenerator) Option {
	return func(l *Ledger) { l.ids = g }
}

// New creates a Ledger and loads the stored snapshot.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store: store,
		clock: SystemClock{},
		ids:   UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(l)
	}

	groups, err := store.LoadGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	l.groups = groups

	slog.Debug("Ledger loaded", "groups_count", len(groups))
	return l, nil
}

// CreateGroup validates and stores a new group.
// Names and members are trimmed of surrounding whitespace. The group starts
// with no expenses and both timestamps set to now.
func (l *Ledger) CreateGroup(ctx context.Context, name string, members []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("name", "please enter a group name")
	}

	cleaned, err := cleanMembers(members)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now().Unix()
	group := models.Group{
		ID:        l.ids.NewID(),
		Name:      name,
		Members:   cleaned,
		Expenses:  []models.Expense{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	l.groups = append(l.groups, group)
	if err := l.save(ctx); err != nil {
		l.groups = l.groups[:len(l.groups)-1]
		return nil, err
	}

	return group.Clone(), nil
}

// GetGroup returns a copy of the group with the given ID.
// The boolean is false when no such group exists.
func (l *Ledger) GetGroup(id string) (*models.Group, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	g := l.find(id)
	if g == nil {
		return nil, false
	}
	return g.Clone(), true
}

// ListGroups returns copies of all groups in creation order.
func (l *Ledger) ListGroups() []models.Group {
	l.mu.Lock()
	defer l.mu.Unlock()
	return storage.CloneGroups(l.groups)
}

// GroupCount returns the number of groups.
func (l *Ledger) GroupCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.groups)
}

// AddExpense appends an expense built from draft to a group and refreshes
// the group's UpdatedAt. It returns models.ErrNotFound for an unknown group.
//
// The draft is stored as given: amount and split validation belong to the
// caller (see calculator.ValidateDraft).
func (l *Ledger) AddExpense(ctx context.Context, groupID string, draft models.ExpenseDraft) (*models.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	group := l.find(groupID)
	if group == nil {
		return nil, fmt.Errorf("group %s: %w", groupID, models.ErrNotFound)
	}

	now := l.clock.Now().Unix()
	expense := models.Expense{
		ID:          l.ids.NewID(),
		Description: draft.Description,
		Amount:      draft.Amount,
		PaidBy:      draft.PaidBy,
		Date:        draft.Date,
		Splits:      draft.Splits,
		CreatedAt:   now,
	}.Clone()

	previousUpdatedAt := group.UpdatedAt
	group.Expenses = append(group.Expenses, expense)
	group.UpdatedAt = now

	if err := l.save(ctx); err != nil {
		group.Expenses = group.Expenses[:len(group.Expenses)-1]
		group.UpdatedAt = previousUpdatedAt
		return nil, err
	}

	out := expense.Clone()
	return &out, nil
}

// TotalExpenses returns the sum of all expense amounts in a group.
// Unknown groups and groups without expenses total 0.
func (l *Ledger) TotalExpenses(groupID string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	group := l.find(groupID)
	if group == nil {
		return 0
	}

	return calculator.TotalAmount(group)
}

// find returns a pointer into l.groups. Callers must hold l.mu.
func (l *Ledger) find(id string) *models.Group {
	for i := range l.groups {
		if l.groups[i].ID == id {
			return &l.groups[i]
		}
	}
	return nil
}

// save persists the collection. Callers must hold l.mu.
func (l *Ledger) save(ctx context.Context) error {
	if err := l.store.SaveGroups(ctx, l.groups); err != nil {
		slog.Error("Failed to persist ledger", "groups_count", len(l.groups), "error", err)
		return fmt.Errorf("failed to save groups: %w", err)
	}
	return nil
}

func cleanMembers(members []string) ([]string, error) {
	seen := make(map[string]bool, len(members))
	cleaned := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" {
			return nil, models.NewValidationError("members", "member names cannot be empty")
		}
		if seen[m] {
			return nil, models.NewValidationError("members", "member %q already added", m)
		}
		seen[m] = true
		cleaned = append(cleaned, m)
	}
	if len(cleaned) < MinGroupMembers {
		return nil, models.NewValidationError("members", "please add at least %d members", MinGroupMembers)
	}
	return cleaned, nil
}
