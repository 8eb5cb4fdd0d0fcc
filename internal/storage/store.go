// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/groupsplit/internal/models"
)

// Store persists the ledger's full group collection as a snapshot.
// The ledger loads everything once at startup and saves everything after
// each mutation; backends never see partial updates.
//
// This abstraction allows swapping storage backends (memory, SQLite, bbolt)
// without changing the ledger.
type Store interface {
	// LoadGroups returns every stored group in collection order, with
	// members and expenses in their original order. An empty store returns
	// no groups and no error.
	LoadGroups(ctx context.Context) ([]models.Group, error)

	// SaveGroups replaces the stored collection with groups.
	SaveGroups(ctx context.Context, groups []models.Group) error

	// Close releases any resources held by the store.
	Close() error
}

// CloneGroups deep-copies a group collection.
func CloneGroups(groups []models.Group) []models.Group {
	if groups == nil {
		return nil
	}
	out := make([]models.Group, len(groups))
	for i := range groups {
		out[i] = *groups[i].Clone()
	}
	return out
}
