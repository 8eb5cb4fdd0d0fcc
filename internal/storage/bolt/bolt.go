// Package bolt provides a bbolt-backed implementation of storage.Store.
//
// The whole group collection is stored as one JSON document under a single
// key, the same shape a browser key-value store would hold.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// Bucket and key names.
const (
	BucketLedger = "ledger"
	KeyGroups    = "groups"
)

var _ storage.Store = (*Store)(nil)

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// New opens (or creates) the database at dbPath and initializes the bucket.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(BucketLedger)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", BucketLedger, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadGroups decodes the stored snapshot. A missing key means no groups.
func (s *Store) LoadGroups(_ context.Context) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(BucketLedger)).Get([]byte(KeyGroups))
		if data == nil {
			return nil
		}
		// data is only valid inside the transaction; Unmarshal copies it
		return json.Unmarshal(data, &groups)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load groups: %w", err)
	}
	return groups, nil
}

// SaveGroups encodes groups and overwrites the stored snapshot.
func (s *Store) SaveGroups(_ context.Context, groups []models.Group) error {
	data, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketLedger)).Put([]byte(KeyGroups), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save groups: %w", err)
	}
	return nil
}
