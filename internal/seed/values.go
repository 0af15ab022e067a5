package seed

import (
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Field policy bounds.
const (
	MinRating          = 1.0
	MaxRating          = 9.9
	MinMovieDuration   = 90
	MaxMovieDuration   = 180
	MinEpisodeDuration = 20
	MaxEpisodeDuration = 60

	reviewBodyWords = 30
)

// EarliestDate is the lower bound of every generated air or birth date.
var EarliestDate = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)

// values draws every random field. It is used from the orchestrating goroutine only.
type values struct {
	f        *gofakeit.Faker
	trailers []string
	now      func() time.Time
}

func newValues(f *gofakeit.Faker, fx *Fixtures, now func() time.Time) *values {
	return &values{f: f, trailers: fx.Trailers, now: now}
}

// Rating is uniform in [1.0, 9.9], rounded to one decimal.
func (v *values) Rating() float64 {
	return math.Round(v.f.Float64Range(MinRating, MaxRating)*10) / 10
}

// Date is uniform between EarliestDate and now.
func (v *values) Date() time.Time {
	return v.f.DateRange(EarliestDate, v.now()).UTC()
}

// Between is a uniform integer in [min, max].
func (v *values) Between(min, max int) int {
	if max <= min {
		return min
	}
	return v.f.Number(min, max)
}

// Trailer picks one embed URL from the fixed pool.
func (v *values) Trailer() string {
	return TrailerBaseURL + v.trailers[v.f.Number(0, len(v.trailers)-1)]
}

// Photo returns a stable placeholder image URL.
func (v *values) Photo(w, h int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", v.f.UUID(), w, h)
}

// Chance reports true with probability p.
func (v *values) Chance(p float64) bool {
	return v.f.Float64Range(0, 1) < p
}

// Coin is a fair coin flip.
func (v *values) Coin() bool {
	return v.f.Bool()
}

// ReviewBody is fixed-length lorem text.
func (v *values) ReviewBody() string {
	return v.f.LoremIpsumSentence(reviewBodyWords)
}

// Paragraph is a short block of prose for descriptions and forum content.
func (v *values) Paragraph() string {
	return v.f.Paragraph(1, v.Between(2, 4), v.Between(8, 14), " ")
}

// Pick returns up to n distinct members of pool in random order. pool is not modified.
func (v *values) Pick(pool []uint, n int) []uint {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	cp := make([]uint, len(pool))
	copy(cp, pool)
	for i := 0; i < n; i++ {
		j := v.f.Number(i, len(cp)-1)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}

// PickOne returns one member of pool. pool must not be empty.
func (v *values) PickOne(pool []uint) uint {
	return pool[v.f.Number(0, len(pool)-1)]
}

// PickString returns one member of pool. pool must not be empty.
func (v *values) PickString(pool []string) string {
	return pool[v.f.Number(0, len(pool)-1)]
}

// without returns pool minus every id in exclude.
func without(pool []uint, exclude ...uint) []uint {
	skip := make(map[uint]struct{}, len(exclude))
	for _, id := range exclude {
		skip[id] = struct{}{}
	}
	out := make([]uint, 0, len(pool))
	for _, id := range pool {
		if _, ok := skip[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
