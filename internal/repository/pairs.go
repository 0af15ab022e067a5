package repository

import (
	"context"

	"cinedex/internal/models"
)

// Pair is a (parent id, linked id) key of a link table.
type Pair struct {
	Left  uint
	Right uint
}

// PairSet is an in-memory set of link pairs. It is a pre-filter only; the unique index stays authoritative.
type PairSet map[Pair]struct{}

// Has reports whether the pair is in the set.
func (s PairSet) Has(left, right uint) bool {
	_, ok := s[Pair{Left: left, Right: right}]
	return ok
}

// Add records the pair.
func (s PairSet) Add(left, right uint) {
	s[Pair{Left: left, Right: right}] = struct{}{}
}

// Pairs loads every (leftColumn, rightColumn) pair of a link table.
func (s *Store) Pairs(ctx context.Context, model interface{}, leftColumn, rightColumn string) (set PairSet, err error) {
	ctx, _, end := s.begin(ctx, "pairs", model)
	defer func() { end(err) }()

	rows, err := s.db.WithContext(ctx).Model(model).Select(leftColumn, rightColumn).Rows()
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer rows.Close()

	set = make(PairSet)
	for rows.Next() {
		var p Pair
		if err = rows.Scan(&p.Left, &p.Right); err != nil {
			return nil, models.NewInternalError(err)
		}
		set[p] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, models.NewInternalError(err)
	}
	return set, nil
}
