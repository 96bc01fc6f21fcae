package store

import (
	"context"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// Slot is the object representing a stored availability range: the half-open
// interval [Start, End) during which a person is free. Multiple ranges per
// person are allowed and may overlap; no merging is performed at write time.
type Slot struct {
	ID        int32
	UID       string
	Username  string
	Start     time.Time
	End       time.Time
	CreatedTs int64
}

// FindSlot is the find condition for slot.
type FindSlot struct {
	Username *string
}

// CreateSlot stores a new availability range. The insert and the referenced-
// person check execute as one transaction, so a partial write is never
// observable. Drivers return ErrPersonNotFound when the username is not
// registered.
func (s *Store) CreateSlot(ctx context.Context, create *Slot) (*Slot, error) {
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	return s.driver.CreateSlot(ctx, create)
}

// ListSlots lists stored ranges for a person. An unknown person yields an
// empty list, not an error: this is a read, not a constraint check.
func (s *Store) ListSlots(ctx context.Context, find *FindSlot) ([]*Slot, error) {
	return s.driver.ListSlots(ctx, find)
}
