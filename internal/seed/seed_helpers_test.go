package seed

import (
	"context"
	"testing"

	"cinedex/internal/repository"
	"cinedex/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestSeeder(t *testing.T, mutate func(*Options), options ...Option) (*Seeder, *gorm.DB) {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	opts := DefaultOptions()
	opts.RandSeed = 42
	opts.SkipBcrypt = true
	opts.MinUsers = 8
	if mutate != nil {
		mutate(&opts)
	}

	s, err := New(repository.NewStore(db), opts, options...)
	require.NoError(t, err)
	return s, db
}

// seedCatalog fills every content table so ids run 1..n per kind.
func seedCatalog(t *testing.T, s *Seeder, movies, series, actors, crew int) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.GenerateMovies(ctx, movies, 0))
	require.NoError(t, s.GenerateSeries(ctx, series, 0))
	require.NoError(t, s.GenerateActors(ctx, actors, 0))
	require.NoError(t, s.GenerateCrew(ctx, crew, 0))
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, where ...interface{}) int64 {
	t.Helper()
	var n int64
	tx := db.Model(model)
	if len(where) > 0 {
		tx = tx.Where(where[0], where[1:]...)
	}
	require.NoError(t, tx.Count(&n).Error)
	return n
}
