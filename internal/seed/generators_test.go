package seed

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"cinedex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertOneDecimal(t *testing.T, r float64) {
	t.Helper()
	assert.GreaterOrEqual(t, r, MinRating)
	assert.LessOrEqual(t, r, MaxRating)
	assert.InDelta(t, math.Round(r*10), r*10, 1e-9, "rating %v has more than one decimal", r)
}

func TestGenerateMovies_FromEmptyTable(t *testing.T) {
	s, db := newTestSeeder(t, nil)

	require.NoError(t, s.GenerateMovies(context.Background(), 5, 0))

	var movies []models.Movie
	require.NoError(t, db.Order("id ASC").Find(&movies).Error)
	require.Len(t, movies, 5)

	pool := s.fixtures.TrailerURLs()
	for i, m := range movies {
		assert.EqualValues(t, i+1, m.ID)
		assert.GreaterOrEqual(t, m.Duration, MinMovieDuration)
		assert.LessOrEqual(t, m.Duration, MaxMovieDuration)
		assertOneDecimal(t, m.RatingImdb)
		assert.True(t, strings.HasPrefix(m.TrailerSrc, TrailerBaseURL))
		assert.Contains(t, pool, m.TrailerSrc)
		assert.False(t, m.DateAired.Before(EarliestDate))
		assert.NotEmpty(t, m.Title)
	}
}

func TestGenerateMovies_ContinuesAfterStartID(t *testing.T) {
	s, db := newTestSeeder(t, func(o *Options) { o.BatchSize = 2 })
	ctx := context.Background()

	require.NoError(t, s.GenerateMovies(ctx, 2, 0))
	require.NoError(t, s.GenerateMovies(ctx, 3, 7))

	var ids []uint
	require.NoError(t, db.Model(&models.Movie{}).Order("id ASC").Pluck("id", &ids).Error)
	assert.Equal(t, []uint{1, 2, 8, 9, 10}, ids)
}

func TestGenerateSeries_SeasonsAndEpisodes(t *testing.T) {
	s, db := newTestSeeder(t, nil)

	require.NoError(t, s.GenerateSeries(context.Background(), 4, 0))
	assert.EqualValues(t, 4, countRows(t, db, &models.Serie{}))

	var series []models.Serie
	require.NoError(t, db.Preload("Seasons.Episodes").Order("id ASC").Find(&series).Error)
	for i, serie := range series {
		assert.EqualValues(t, i+1, serie.ID)
		require.GreaterOrEqual(t, len(serie.Seasons), 1)
		require.LessOrEqual(t, len(serie.Seasons), 3)
		for _, season := range serie.Seasons {
			assert.Equal(t, serie.ID, season.SerieID)
			assert.GreaterOrEqual(t, len(season.Episodes), 3)
			assert.LessOrEqual(t, len(season.Episodes), 10)
			for _, ep := range season.Episodes {
				assert.GreaterOrEqual(t, ep.Duration, MinEpisodeDuration)
				assert.LessOrEqual(t, ep.Duration, MaxEpisodeDuration)
				assertOneDecimal(t, ep.RatingImdb)
			}
		}
	}
}

func TestGenerateActorsAndCrew(t *testing.T) {
	s, db := newTestSeeder(t, nil)
	ctx := context.Background()

	require.NoError(t, s.GenerateActors(ctx, 12, 0))
	require.NoError(t, s.GenerateCrew(ctx, 3, 0))

	assert.EqualValues(t, 12, countRows(t, db, &models.Actor{}))

	var crew []models.Crew
	require.NoError(t, db.Find(&crew).Error)
	require.Len(t, crew, 3)
	for _, c := range crew {
		assert.Contains(t, s.fixtures.CrewRoles, c.Role)
		assertOneDecimal(t, c.RatingImdb)
	}
}

func TestGenerateMovies_DuplicateIDFails(t *testing.T) {
	s, _ := newTestSeeder(t, nil)
	ctx := context.Background()

	require.NoError(t, s.GenerateMovies(ctx, 3, 0))
	assert.Error(t, s.GenerateMovies(ctx, 3, 1))
}

func TestInsertBatches_BoundsConcurrencyAndOrder(t *testing.T) {
	rows := make([]int, 23)
	for i := range rows {
		rows[i] = i
	}

	var inFlight, peak, completed atomic.Int32
	err := insertBatches(context.Background(), "numbers", 5, rows, func(_ context.Context, n int) error {
		defer completed.Add(1)

		// Every row of the previous batches must be done before this batch starts.
		assert.GreaterOrEqual(t, completed.Load(), int32(n/5*5))

		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(5))
	assert.EqualValues(t, 23, completed.Load())
}

func TestInsertBatches_StopsOnError(t *testing.T) {
	rows := []int{0, 1, 2, 3, 4, 5}
	var calls atomic.Int32
	boom := errors.New("boom")

	err := insertBatches(context.Background(), "numbers", 2, rows, func(_ context.Context, n int) error {
		calls.Add(1)
		if n == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "batch 1-2")
	assert.EqualValues(t, 2, calls.Load())
}
