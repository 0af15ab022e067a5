package seed

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValues(t *testing.T) *values {
	t.Helper()
	fx, err := LoadFixtures()
	require.NoError(t, err)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	return newValues(gofakeit.New(7), fx, func() time.Time { return now })
}

func TestValues_Bounds(t *testing.T) {
	v := newTestValues(t)
	for i := 0; i < 500; i++ {
		r := v.Rating()
		assert.GreaterOrEqual(t, r, MinRating)
		assert.LessOrEqual(t, r, MaxRating)
		assertOneDecimal(t, r)

		d := v.Date()
		assert.False(t, d.Before(EarliestDate))
		assert.False(t, d.After(v.now()))

		n := v.Between(3, 6)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 6)
	}
	assert.Equal(t, 4, v.Between(4, 4))
}

func TestValues_Pick(t *testing.T) {
	v := newTestValues(t)
	pool := []uint{1, 2, 3, 4, 5, 6}

	for i := 0; i < 100; i++ {
		got := v.Pick(pool, 4)
		require.Len(t, got, 4)
		seen := make(map[uint]bool)
		for _, id := range got {
			assert.Contains(t, pool, id)
			assert.False(t, seen[id])
			seen[id] = true
		}
	}
	assert.ElementsMatch(t, pool, v.Pick(pool, 10))
	assert.Nil(t, v.Pick(pool, 0))
	assert.Nil(t, v.Pick(nil, 3))
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6}, pool)
}

func TestWithout(t *testing.T) {
	assert.Equal(t, []uint{1, 3}, without([]uint{1, 2, 3, 4}, 2, 4))
	assert.Equal(t, []uint{1, 2}, without([]uint{1, 2}))
	assert.Empty(t, without([]uint{5}, 5))
}

func TestValues_Reproducible(t *testing.T) {
	a, b := newTestValues(t), newTestValues(t)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Rating(), b.Rating())
		assert.Equal(t, a.Trailer(), b.Trailer())
	}
}
