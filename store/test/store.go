package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/meetcal/internal/profile"
	"github.com/hrygo/meetcal/store"
	"github.com/hrygo/meetcal/store/db"
)

// NewTestingStore creates a migrated sqlite-backed store in a per-test
// temporary directory.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   t.TempDir(),
	}
	require.NoError(t, p.Validate())

	driver, err := db.NewDBDriver(p)
	require.NoError(t, err)

	ts := store.New(driver, p)
	require.NoError(t, ts.Migrate(ctx))

	t.Cleanup(func() {
		_ = ts.Close()
	})
	return ts
}
