// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
// The snapshot is normalized into groups, group_members, expenses and
// expense_splits; position columns keep collection order.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Open database with pure Go driver
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps the PRAGMA below in effect for every statement.
	db.SetMaxOpenConns(1)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveGroups replaces every stored group in a single transaction.
func (s *SQLiteStore) SaveGroups(ctx context.Context, groups []models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Children first so the cascade has nothing left to do
	for _, table := range []string{"expense_splits", "expenses", "group_members", "groups"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for gi := range groups {
		group := &groups[gi]

		_, err = tx.ExecContext(ctx,
			"INSERT INTO groups (id, position, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, gi, group.Name, group.CreatedAt, group.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group %s: %w", group.ID, err)
		}

		for mi, name := range group.Members {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO group_members (group_id, position, name) VALUES (?, ?, ?)",
				group.ID, mi, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert member: %w", err)
			}
		}

		for ei := range group.Expenses {
			expense := &group.Expenses[ei]

			_, err = tx.ExecContext(ctx,
				`INSERT INTO expenses (id, group_id, position, description, amount, paid_by, date, created_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				expense.ID, group.ID, ei, expense.Description, expense.Amount,
				expense.PaidBy, expense.Date, expense.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense %s: %w", expense.ID, err)
			}

			for _, member := range slices.Sorted(maps.Keys(expense.Splits)) {
				_, err = tx.ExecContext(ctx,
					"INSERT INTO expense_splits (expense_id, member, share) VALUES (?, ?, ?)",
					expense.ID, member, expense.Splits[member],
				)
				if err != nil {
					return fmt.Errorf("failed to insert split: %w", err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LoadGroups reads the full snapshot with four queries, one per table.
func (s *SQLiteStore) LoadGroups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	groupIndex := make(map[string]int)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM groups ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groupIndex[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	// Release the only connection before the next query
	rows.Close()

	if err := s.loadMembers(ctx, groups, groupIndex); err != nil {
		return nil, err
	}
	if err := s.loadExpenses(ctx, groups, groupIndex); err != nil {
		return nil, err
	}

	return groups, nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, groups []models.Group, groupIndex map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, name FROM group_members ORDER BY group_id, position",
	)
	if err != nil {
		return fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var groupID, name string
		if err := rows.Scan(&groupID, &name); err != nil {
			return fmt.Errorf("failed to scan member: %w", err)
		}
		if gi, ok := groupIndex[groupID]; ok {
			groups[gi].Members = append(groups[gi].Members, name)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate members: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadExpenses(ctx context.Context, groups []models.Group, groupIndex map[string]int) error {
	type location struct{ group, expense int }
	expenseIndex := make(map[string]location)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, date, created_at
		 FROM expenses ORDER BY group_id, position`,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		var groupID string
		if err := rows.Scan(&e.ID, &groupID, &e.Description, &e.Amount, &e.PaidBy, &e.Date, &e.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		gi, ok := groupIndex[groupID]
		if !ok {
			continue
		}
		e.Splits = make(map[string]float64)
		expenseIndex[e.ID] = location{group: gi, expense: len(groups[gi].Expenses)}
		groups[gi].Expenses = append(groups[gi].Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splitRows, err := s.db.QueryContext(ctx, "SELECT expense_id, member, share FROM expense_splits")
	if err != nil {
		return fmt.Errorf("failed to get splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var expenseID, member string
		var share float64
		if err := splitRows.Scan(&expenseID, &member, &share); err != nil {
			return fmt.Errorf("failed to scan split: %w", err)
		}
		if loc, ok := expenseIndex[expenseID]; ok {
			groups[loc.group].Expenses[loc.expense].Splits[member] = share
		}
	}
	if err := splitRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate splits: %w", err)
	}
	return nil
}
