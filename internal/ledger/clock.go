package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time for timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies identifiers for new groups and expenses.
type IDGenerator interface {
	NewID() string
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// UUIDGenerator returns random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
