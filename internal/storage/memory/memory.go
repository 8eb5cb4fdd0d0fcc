// Package memory provides an in-process implementation of storage.Store.
// Nothing survives a restart; it backs tests and the "memory" data backend.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps a private copy of the last saved snapshot.
type Store struct {
	mu     sync.Mutex
	groups []models.Group
	saves  int
}

// New creates an empty Store. Seed groups, if given, become the initial snapshot.
func New(seed ...models.Group) *Store {
	return &Store{groups: storage.CloneGroups(seed)}
}

// LoadGroups returns a copy of the stored snapshot.
func (s *Store) LoadGroups(_ context.Context) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.CloneGroups(s.groups), nil
}

// SaveGroups replaces the stored snapshot with a copy of groups.
func (s *Store) SaveGroups(_ context.Context, groups []models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = storage.CloneGroups(groups)
	s.saves++
	return nil
}

// Saves reports how many times SaveGroups has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
