package memory

import (
	"context"
	"testing"

	"github.com/mmynk/groupsplit/internal/models"
)

func TestStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	store := New()

	groups := []models.Group{{
		ID:      "g1",
		Name:    "Trip",
		Members: []string{"A", "B"},
		Expenses: []models.Expense{
			{ID: "e1", Amount: 10, PaidBy: "A", Splits: map[string]float64{"A": 5, "B": 5}},
		},
	}}
	if err := store.SaveGroups(ctx, groups); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}

	// Mutating the caller's slice must not reach the store
	groups[0].Members[0] = "Changed"
	groups[0].Expenses[0].Splits["A"] = 100

	loaded, err := store.LoadGroups(ctx)
	if err != nil {
		t.Fatalf("LoadGroups failed: %v", err)
	}
	if loaded[0].Members[0] != "A" {
		t.Errorf("member leaked through: got %s", loaded[0].Members[0])
	}
	if loaded[0].Expenses[0].Splits["A"] != 5 {
		t.Errorf("split leaked through: got %v", loaded[0].Expenses[0].Splits["A"])
	}
	if store.Saves() != 1 {
		t.Errorf("saves = %d, want 1", store.Saves())
	}
}

func TestStore_EmptyLoad(t *testing.T) {
	groups, err := New().LoadGroups(context.Background())
	if err != nil {
		t.Fatalf("LoadGroups failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
