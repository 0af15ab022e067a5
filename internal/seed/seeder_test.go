package seed

import (
	"context"
	"testing"
	"time"

	"cinedex/internal/cache"
	"cinedex/internal/models"
	"cinedex/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func smallCounts(o *Options) {
	o.Counts = Counts{Movies: 12, Series: 11, Actors: 14, Crew: 12}
}

func TestRun_AllSteps(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	lockKey, cpKey := cache.LockKey("test"), cache.CheckpointKey("test")

	s, db := newTestSeeder(t, smallCounts,
		WithRunLock(cache.NewRunLock(client, lockKey, time.Minute)),
		WithCheckpoint(cache.NewCheckpoint(client, cpKey)),
	)

	require.NoError(t, s.Run(context.Background(), StepMovies))

	assert.EqualValues(t, 12, countRows(t, db, &models.Movie{}))
	assert.EqualValues(t, 11, countRows(t, db, &models.Serie{}))
	assert.EqualValues(t, 14, countRows(t, db, &models.Actor{}))
	assert.EqualValues(t, 12, countRows(t, db, &models.Crew{}))
	assert.Positive(t, countRows(t, db, &models.CastMovie{}))
	assert.Positive(t, countRows(t, db, &models.MovieReview{}))
	assert.Positive(t, countRows(t, db, &models.ForumTopic{}))
	assert.EqualValues(t, 8, countRows(t, db, &models.User{}))

	assert.False(t, mr.Exists(lockKey))
	assert.False(t, mr.Exists(cpKey))
}

func TestRun_SecondRunAppends(t *testing.T) {
	s, db := newTestSeeder(t, smallCounts)
	ctx := context.Background()

	require.NoError(t, s.Run(ctx, StepMovies))
	require.NoError(t, s.Run(ctx, StepMovies))

	assert.EqualValues(t, 24, countRows(t, db, &models.Movie{}))
	var maxID uint
	require.NoError(t, db.Model(&models.Movie{}).Select("MAX(id)").Row().Scan(&maxID))
	assert.EqualValues(t, 24, maxID)
}

func TestRun_LockHeld(t *testing.T) {
	client, _ := testutil.NewRedis(t)
	key := cache.LockKey("test")
	holder := cache.NewRunLock(client, key, time.Minute)
	require.NoError(t, holder.Acquire(context.Background()))

	s, db := newTestSeeder(t, smallCounts, WithRunLock(cache.NewRunLock(client, key, time.Minute)))

	err := s.Run(context.Background(), StepMovies)
	assert.ErrorIs(t, err, cache.ErrLockHeld)
	assert.Zero(t, countRows(t, db, &models.Movie{}))
}

func TestRun_FailingStepStopsLaterSteps(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	cpKey := cache.CheckpointKey("test")
	s, db := newTestSeeder(t, smallCounts, WithCheckpoint(cache.NewCheckpoint(client, cpKey)))
	ctx := context.Background()

	seedCatalog(t, s, 12, 11, 11, 11)
	require.NoError(t, db.Migrator().DropTable(&models.MovieReviewVote{}))

	err := s.Run(ctx, StepReviews)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reviews")

	assert.Zero(t, countRows(t, db, &models.ForumTopic{}))
	assert.Zero(t, countRows(t, db, &models.ForumCategory{}))
	assert.False(t, mr.Exists(cpKey))
}

func TestRun_InvalidStep(t *testing.T) {
	s, _ := newTestSeeder(t, nil)
	err := s.Run(context.Background(), Step(9))

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestResumeStep(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	key := cache.CheckpointKey("test")
	s, _ := newTestSeeder(t, nil, WithCheckpoint(cache.NewCheckpoint(client, key)))
	ctx := context.Background()

	step, err := s.ResumeStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepMovies, step)

	require.NoError(t, mr.Set(key, "4"))
	step, err = s.ResumeStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepRelationships, step)

	require.NoError(t, mr.Set(key, "7"))
	step, err = s.ResumeStep(ctx)
	require.NoError(t, err)
	assert.Equal(t, StepMovies, step)
}

func TestRun_ResumeSkipsFinishedSteps(t *testing.T) {
	s, db := newTestSeeder(t, smallCounts)
	require.NoError(t, s.Run(context.Background(), StepActors))

	assert.Zero(t, countRows(t, db, &models.Movie{}))
	assert.Zero(t, countRows(t, db, &models.Serie{}))
	assert.EqualValues(t, 14, countRows(t, db, &models.Actor{}))
	assert.Zero(t, countRows(t, db, &models.CastMovie{}))
}

func TestCounts(t *testing.T) {
	s, _ := newTestSeeder(t, nil)
	seedCatalog(t, s, 3, 0, 2, 0)

	counts, err := s.Counts(context.Background())
	require.NoError(t, err)

	byTable := make(map[string]int64, len(counts))
	for _, c := range counts {
		byTable[c.Table] = c.Rows
	}
	assert.EqualValues(t, 3, byTable["movies"])
	assert.EqualValues(t, 2, byTable["actors"])
	assert.EqualValues(t, 0, byTable["series"])
}

func TestRun_DatesFollowClock(t *testing.T) {
	cutoff := time.Date(1960, time.June, 1, 0, 0, 0, 0, time.UTC)
	s, db := newTestSeeder(t, smallCounts, WithClock(func() time.Time { return cutoff }))

	require.NoError(t, s.Run(context.Background(), StepMovies))

	var movies []models.Movie
	require.NoError(t, db.Find(&movies).Error)
	require.NotEmpty(t, movies)
	for _, m := range movies {
		assert.False(t, m.DateAired.Before(EarliestDate), "movie %d aired %s", m.ID, m.DateAired)
		assert.False(t, m.DateAired.After(cutoff), "movie %d aired %s", m.ID, m.DateAired)
	}
}

func TestRun_LostLockStopsRun(t *testing.T) {
	client, mr := testutil.NewRedis(t)
	lockKey := cache.LockKey("test")
	s, db := newTestSeeder(t, smallCounts, WithRunLock(cache.NewRunLock(client, lockKey, time.Minute)))

	// Another run takes the lock while movies are being written.
	err := db.Callback().Create().After("gorm:create").Register("take_over_lock", func(tx *gorm.DB) {
		if tx.Statement.Schema != nil && tx.Statement.Schema.Table == "movies" {
			_ = mr.Set(lockKey, "another-run")
		}
	})
	require.NoError(t, err)

	err = s.Run(context.Background(), StepMovies)
	require.ErrorIs(t, err, cache.ErrLockLost)

	assert.EqualValues(t, 12, countRows(t, db, &models.Movie{}))
	assert.Zero(t, countRows(t, db, &models.Serie{}))
	got, getErr := mr.Get(lockKey)
	require.NoError(t, getErr)
	assert.Equal(t, "another-run", got)
}
