package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// Sentinel errors surfaced by drivers so the service layer can map constraint
// violations onto envelope codes without knowing driver-specific error text.
var (
	// ErrAlreadyExists is returned when an insert hits a uniqueness constraint.
	ErrAlreadyExists = errors.New("already exists")
	// ErrPersonNotFound is returned when a write references an unregistered person.
	ErrPersonNotFound = errors.New("person not found")
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// Person model related methods.
	CreatePerson(ctx context.Context, create *Person) (*Person, error)
	GetPerson(ctx context.Context, find *FindPerson) (*Person, error)

	// Slot model related methods.
	CreateSlot(ctx context.Context, create *Slot) (*Slot, error)
	ListSlots(ctx context.Context, find *FindSlot) ([]*Slot, error)
}
