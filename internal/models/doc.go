// Package models defines the core domain models for groupsplit.
//
// # Stored Models
//
// The ledger persists only two kinds of record:
//   - Group: a named set of members plus its expense history
//   - Expense: one payment made by a member, with each member's share
//
// Members are identified by name strings; there are no user accounts.
//
// # Derived Models
//
// Balance and Settlement are projections computed on demand from a Group's
// expenses. They are never stored.
//
// # Design Principles
//
// 1. **Append-only**: groups and expenses are created, never edited or deleted
// 2. **Plain data**: models carry no behavior beyond copying and validation errors
// 3. **Snapshot friendly**: JSON tags match the snapshot format used by the key-value store
package models
