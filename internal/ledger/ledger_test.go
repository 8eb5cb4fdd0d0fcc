package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/groupsplit/internal/calculator"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage/memory"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type sequentialIDs struct{ n int }

func (g *sequentialIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// failingStore wraps a memory store and fails saves on demand.
type failingStore struct {
	*memory.Store
	fail bool
}

func (s *failingStore) SaveGroups(ctx context.Context, groups []models.Group) error {
	if s.fail {
		return errors.New("disk full")
	}
	return s.Store.SaveGroups(ctx, groups)
}

func newTestLedger(t *testing.T) (*Ledger, *memory.Store, *fixedClock) {
	t.Helper()

	store := memory.New()
	clock := &fixedClock{now: time.Unix(1700000000, 0)}
	l, err := New(context.Background(), store, WithClock(clock), WithIDGenerator(&sequentialIDs{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l, store, clock
}

func TestCreateGroup(t *testing.T) {
	l, store, _ := newTestLedger(t)

	group, err := l.CreateGroup(context.Background(), " Roommates ", []string{"Alice", " Bob", "Carol"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	if group.ID != "id-1" {
		t.Errorf("ID = %s, want id-1", group.ID)
	}
	if group.Name != "Roommates" {
		t.Errorf("Name = %q, want trimmed 'Roommates'", group.Name)
	}
	if len(group.Members) != 3 || group.Members[1] != "Bob" {
		t.Errorf("Members = %v", group.Members)
	}
	if len(group.Expenses) != 0 {
		t.Errorf("expected no expenses, got %d", len(group.Expenses))
	}
	if group.CreatedAt != 1700000000 || group.UpdatedAt != 1700000000 {
		t.Errorf("timestamps = %d/%d, want 1700000000", group.CreatedAt, group.UpdatedAt)
	}
	if store.Saves() != 1 {
		t.Errorf("saves = %d, want 1", store.Saves())
	}
	if l.GroupCount() != 1 {
		t.Errorf("GroupCount = %d, want 1", l.GroupCount())
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		members []string
	}{
		{name: "empty name", group: "  ", members: []string{"A", "B"}},
		{name: "no members", group: "G", members: nil},
		{name: "one member", group: "G", members: []string{"A"}},
		{name: "duplicate member", group: "G", members: []string{"A", "B", "A"}},
		{name: "blank member", group: "G", members: []string{"A", " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, store, _ := newTestLedger(t)

			_, err := l.CreateGroup(context.Background(), tt.group, tt.members)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var verr *models.ValidationError
			if !errors.As(err, &verr) || verr.Reason == "" {
				t.Errorf("expected ValidationError with a reason, got %v", err)
			}
			if l.GroupCount() != 0 || store.Saves() != 0 {
				t.Errorf("state changed on invalid input: groups=%d saves=%d", l.GroupCount(), store.Saves())
			}
		})
	}
}

func TestGetGroup(t *testing.T) {
	l, _, _ := newTestLedger(t)
	created, _ := l.CreateGroup(context.Background(), "Trip", []string{"A", "B"})

	got, ok := l.GetGroup(created.ID)
	if !ok {
		t.Fatal("expected group to be found")
	}
	if got.Name != "Trip" {
		t.Errorf("Name = %s, want Trip", got.Name)
	}

	// Returned groups are copies
	got.Members[0] = "Mallory"
	again, _ := l.GetGroup(created.ID)
	if again.Members[0] != "A" {
		t.Errorf("ledger state mutated through GetGroup result: %v", again.Members)
	}

	if _, ok := l.GetGroup("nonexistent-id"); ok {
		t.Error("expected not found for unknown ID")
	}
}

func TestAddExpense(t *testing.T) {
	l, store, clock := newTestLedger(t)
	ctx := context.Background()
	group, _ := l.CreateGroup(ctx, "Trip", []string{"Alice", "Bob", "Carol"})

	clock.now = clock.now.Add(time.Hour)
	splits := map[string]float64{"Alice": 30, "Bob": 30, "Carol": 30}
	expense, err := l.AddExpense(ctx, group.ID, models.ExpenseDraft{
		Description: "Dinner",
		Amount:      90,
		PaidBy:      "Alice",
		Date:        "2025-06-01",
		Splits:      splits,
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	if expense.ID != "id-2" {
		t.Errorf("expense ID = %s, want id-2", expense.ID)
	}
	if expense.CreatedAt != 1700003600 {
		t.Errorf("CreatedAt = %d, want 1700003600", expense.CreatedAt)
	}

	// Caller's map must not alias stored state
	splits["Alice"] = 0

	stored, _ := l.GetGroup(group.ID)
	if len(stored.Expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(stored.Expenses))
	}
	if stored.Expenses[0].Splits["Alice"] != 30 {
		t.Errorf("stored split changed through caller's map: %v", stored.Expenses[0].Splits)
	}
	if stored.UpdatedAt != 1700003600 {
		t.Errorf("UpdatedAt = %d, want 1700003600", stored.UpdatedAt)
	}
	if stored.CreatedAt != 1700000000 {
		t.Errorf("CreatedAt changed: %d", stored.CreatedAt)
	}
	if store.Saves() != 2 {
		t.Errorf("saves = %d, want 2", store.Saves())
	}

	balances := calculator.CalculateBalances(stored)
	want := []float64{60, -30, -30}
	for i, b := range balances {
		if math.Abs(b.Amount-want[i]) > 0.001 {
			t.Errorf("%s balance = %v, want %v", b.Member, b.Amount, want[i])
		}
	}
}

func TestAddExpense_GroupNotFound(t *testing.T) {
	l, store, _ := newTestLedger(t)

	_, err := l.AddExpense(context.Background(), "nonexistent-id", models.ExpenseDraft{Amount: 10})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if store.Saves() != 0 {
		t.Errorf("saves = %d, want 0", store.Saves())
	}
}

func TestTotalExpenses(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	group, _ := l.CreateGroup(ctx, "Trip", []string{"A", "B"})

	if total := l.TotalExpenses(group.ID); total != 0 {
		t.Errorf("empty group total = %v, want 0", total)
	}
	if total := l.TotalExpenses("nonexistent-id"); total != 0 {
		t.Errorf("unknown group total = %v, want 0", total)
	}

	for _, amount := range []float64{0.1, 0.2, 19.99} {
		if _, err := l.AddExpense(ctx, group.ID, models.ExpenseDraft{
			Description: "x", Amount: amount, PaidBy: "A", Date: "2025-01-01",
			Splits: map[string]float64{"B": amount},
		}); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	if total := l.TotalExpenses(group.ID); total != 20.29 {
		t.Errorf("total = %v, want 20.29", total)
	}
}

func TestListGroups(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()

	if groups := l.ListGroups(); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}

	l.CreateGroup(ctx, "First", []string{"A", "B"})
	l.CreateGroup(ctx, "Second", []string{"C", "D"})

	groups := l.ListGroups()
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "First" || groups[1].Name != "Second" {
		t.Errorf("groups out of creation order: %s, %s", groups[0].Name, groups[1].Name)
	}
}

func TestSaveFailureLeavesStateUnchanged(t *testing.T) {
	store := &failingStore{Store: memory.New()}
	l, err := New(context.Background(), store, WithIDGenerator(&sequentialIDs{}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	group, err := l.CreateGroup(ctx, "Trip", []string{"A", "B"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	store.fail = true

	if _, err := l.CreateGroup(ctx, "Other", []string{"C", "D"}); err == nil {
		t.Error("expected CreateGroup to fail")
	}
	if l.GroupCount() != 1 {
		t.Errorf("GroupCount = %d after failed save, want 1", l.GroupCount())
	}

	_, err = l.AddExpense(ctx, group.ID, models.ExpenseDraft{
		Description: "x", Amount: 10, PaidBy: "A", Date: "2025-01-01",
		Splits: map[string]float64{"A": 5, "B": 5},
	})
	if err == nil {
		t.Error("expected AddExpense to fail")
	}
	stored, _ := l.GetGroup(group.ID)
	if len(stored.Expenses) != 0 || stored.UpdatedAt != group.UpdatedAt {
		t.Errorf("group changed after failed save: %+v", stored)
	}
}

func TestNew_LoadsSnapshot(t *testing.T) {
	store := memory.New(models.Group{
		ID:      "existing",
		Name:    "Loaded",
		Members: []string{"A", "B"},
		Expenses: []models.Expense{
			{ID: "e1", Amount: 12, PaidBy: "A", Splits: map[string]float64{"A": 6, "B": 6}},
		},
	})

	l, err := New(context.Background(), store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	group, ok := l.GetGroup("existing")
	if !ok {
		t.Fatal("expected loaded group")
	}
	if group.Name != "Loaded" {
		t.Errorf("Name = %s, want Loaded", group.Name)
	}
	if l.TotalExpenses("existing") != 12 {
		t.Errorf("total = %v, want 12", l.TotalExpenses("existing"))
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := memory.New()
	l, err := New(context.Background(), store)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	shared, err := l.CreateGroup(ctx, "Shared", []string{"A", "B"})
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, 2*workers)

	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := l.AddExpense(ctx, shared.ID, models.ExpenseDraft{
				Description: "coffee", Amount: 1, PaidBy: "A", Date: "2025-01-01",
				Splits: map[string]float64{"A": 0.5, "B": 0.5},
			})
			if err != nil {
				errs <- err
			}
		}()
		go func(i int) {
			defer wg.Done()
			g, err := l.CreateGroup(ctx, fmt.Sprintf("Group %d", i), []string{"X", "Y"})
			if err != nil {
				errs <- err
				return
			}
			if _, ok := l.GetGroup(g.ID); !ok {
				errs <- fmt.Errorf("group %s not found after create", g.ID)
			}
			l.TotalExpenses(shared.ID)
			l.ListGroups()
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent call failed: %v", err)
	}

	group, ok := l.GetGroup(shared.ID)
	if !ok {
		t.Fatal("shared group missing")
	}
	if len(group.Expenses) != workers {
		t.Errorf("expenses = %d, want %d", len(group.Expenses), workers)
	}
	if total := l.TotalExpenses(shared.ID); total != workers {
		t.Errorf("total = %v, want %d", total, workers)
	}
	if got := l.GroupCount(); got != workers+1 {
		t.Errorf("group count = %d, want %d", got, workers+1)
	}

	// The last save must hold every mutation
	saved, err := store.LoadGroups(ctx)
	if err != nil {
		t.Fatalf("LoadGroups failed: %v", err)
	}
	if len(saved) != workers+1 || len(saved[0].Expenses) != workers {
		t.Errorf("stored %d groups, %d shared expenses", len(saved), len(saved[0].Expenses))
	}
}
