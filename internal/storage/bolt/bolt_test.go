package bolt

import (
	"context"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/mmynk/groupsplit/internal/models"
)

func TestStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()

	groups, err := store.LoadGroups(ctx)
	if err != nil {
		t.Fatalf("LoadGroups on empty store failed: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}

	saved := []models.Group{{
		ID:        "g1",
		Name:      "Ski Trip",
		Members:   []string{"Carol", "Bob", "Alice"},
		CreatedAt: 1700000000,
		UpdatedAt: 1700000100,
		Expenses: []models.Expense{{
			ID:          "e1",
			Description: "Cabin",
			Amount:      300,
			PaidBy:      "Bob",
			Date:        "2025-02-10",
			Splits:      map[string]float64{"Carol": 100, "Bob": 100, "Alice": 100},
			CreatedAt:   1700000100,
		}},
	}}
	if err := store.SaveGroups(ctx, saved); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	loaded, err := reopened.LoadGroups(ctx)
	if err != nil {
		t.Fatalf("LoadGroups failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 group, got %d", len(loaded))
	}
	got := loaded[0]
	if got.Name != "Ski Trip" || got.UpdatedAt != 1700000100 {
		t.Errorf("group mismatch: %+v", got)
	}
	if len(got.Members) != 3 || got.Members[0] != "Carol" || got.Members[2] != "Alice" {
		t.Errorf("member order not preserved: %v", got.Members)
	}
	if len(got.Expenses) != 1 || got.Expenses[0].Splits["Bob"] != 100 {
		t.Errorf("expense mismatch: %+v", got.Expenses)
	}
}

func TestStore_SnapshotFormat(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	group := models.Group{ID: "g1", Name: "Pair", Members: []string{"A", "B"}}
	if err := store.SaveGroups(context.Background(), []models.Group{group}); err != nil {
		t.Fatalf("SaveGroups failed: %v", err)
	}

	var raw string
	store.db.View(func(tx *bolt.Tx) error {
		raw = string(tx.Bucket([]byte(BucketLedger)).Get([]byte(KeyGroups)))
		return nil
	})

	want := `[{"id":"g1","name":"Pair","members":["A","B"],"expenses":null,"createdAt":0,"updatedAt":0}]`
	if raw != want {
		t.Errorf("snapshot = %s, want %s", raw, want)
	}
}
