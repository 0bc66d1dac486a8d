package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"worktime/internal/errors"
	"worktime/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

// fixedClock returns a clock pinned to *now so tests can advance it
func fixedClock(now *time.Time) Clock {
	return func() time.Time { return *now }
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local)
	require.NoError(t, err)
	return ts
}

// failingRepository wraps a repository and fails Put for the listed keys
type failingRepository struct {
	sqlite.Repository
	failKeys map[string]bool
}

func (f *failingRepository) Put(ctx context.Context, key, value string) error {
	if f.failKeys[key] {
		return errors.NewStorageError("put "+key, stderrors.New("disk full"))
	}
	return f.Repository.Put(ctx, key, value)
}
