// Package repository provides the data-access layer used by the seeder.
package repository

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"cinedex/internal/models"
	"cinedex/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query narrows Find, First, IDs and Update. Zero values mean "no clause".
type Query struct {
	Where  string
	Args   []interface{}
	Order  string
	Select []string
	Limit  int
}

// Store is a thin, model-agnostic wrapper around gorm with tracing, metrics and typed insert outcomes.
type Store struct {
	db     *gorm.DB
	tables sync.Map // reflect.Type -> table name
}

// NewStore creates a new store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for callers that need raw access (migrations, tests).
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Dialect returns the gorm dialector name, e.g. "postgres" or "sqlite".
func (s *Store) Dialect() string {
	return s.db.Dialector.Name()
}

// Table resolves the table name of a model, a pointer to one, or a slice of either.
func (s *Store) Table(model interface{}) string {
	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Ptr || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if name, ok := s.tables.Load(t); ok {
		return name.(string)
	}

	stmt := &gorm.Statement{DB: s.db}
	if err := stmt.Parse(model); err != nil {
		return t.Name()
	}
	s.tables.Store(t, stmt.Schema.Table)
	return stmt.Schema.Table
}

func (s *Store) begin(ctx context.Context, op string, model interface{}) (context.Context, string, func(error)) {
	table := s.Table(model)
	ctx, span := observability.TraceRepositoryMethod(ctx, op, table, s.Dialect())
	done := observability.TrackQuery(op, table)
	return ctx, table, func(err error) {
		done()
		observability.RecordError(span, err)
		span.End()
	}
}

func apply(tx *gorm.DB, q Query) *gorm.DB {
	if q.Where != "" {
		tx = tx.Where(q.Where, q.Args...)
	}
	if len(q.Select) > 0 {
		tx = tx.Select(q.Select)
	}
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}

// Count returns the number of rows in the model's table.
func (s *Store) Count(ctx context.Context, model interface{}) (n int64, err error) {
	ctx, _, end := s.begin(ctx, "count", model)
	defer func() { end(err) }()

	if err = s.db.WithContext(ctx).Model(model).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// CountWhere returns the number of rows of model matching q.
func (s *Store) CountWhere(ctx context.Context, model interface{}, q Query) (n int64, err error) {
	ctx, _, end := s.begin(ctx, "count", model)
	defer func() { end(err) }()

	tx := s.db.WithContext(ctx).Model(model)
	if q.Where != "" {
		tx = tx.Where(q.Where, q.Args...)
	}
	if err = tx.Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// MaxID returns the highest id in the model's table, or 0 when empty.
func (s *Store) MaxID(ctx context.Context, model interface{}) (id uint, err error) {
	ctx, _, end := s.begin(ctx, "max_id", model)
	defer func() { end(err) }()

	row := s.db.WithContext(ctx).Model(model).Select("COALESCE(MAX(id), 0)").Row()
	if err = row.Scan(&id); err != nil {
		return 0, models.NewInternalError(err)
	}
	return id, nil
}

// Find loads every row matching q into dest, which must be a pointer to a slice.
func (s *Store) Find(ctx context.Context, dest interface{}, q Query) (err error) {
	ctx, _, end := s.begin(ctx, "find", dest)
	defer func() { end(err) }()

	if err = apply(s.db.WithContext(ctx).Model(dest), q).Find(dest).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// First loads the first row matching q into dest. found is false when no row matches.
func (s *Store) First(ctx context.Context, dest interface{}, q Query) (found bool, err error) {
	ctx, _, end := s.begin(ctx, "first", dest)
	defer func() { end(err) }()

	tx := apply(s.db.WithContext(ctx).Model(dest), q)
	if q.Order == "" {
		err = tx.First(dest).Error
	} else {
		err = tx.Take(dest).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return true, nil
}

// IDs returns the id column of every row matching q.
func (s *Store) IDs(ctx context.Context, model interface{}, q Query) (ids []uint, err error) {
	ctx, _, end := s.begin(ctx, "ids", model)
	defer func() { end(err) }()

	if q.Order == "" {
		q.Order = "id ASC"
	}
	if err = apply(s.db.WithContext(ctx).Model(model), q).Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// Distinct returns the distinct values of an id-valued column.
func (s *Store) Distinct(ctx context.Context, model interface{}, column string) (ids []uint, err error) {
	ctx, _, end := s.begin(ctx, "distinct", model)
	defer func() { end(err) }()

	if err = s.db.WithContext(ctx).Model(model).Distinct(column).Pluck(column, &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// Create inserts value and treats every failure, duplicates included, as an error.
func (s *Store) Create(ctx context.Context, value interface{}) (err error) {
	ctx, table, end := s.begin(ctx, "create", value)
	defer func() { end(err) }()

	if err = s.db.WithContext(ctx).Create(value).Error; err != nil {
		observability.NewRepoLogger(table).LogError(ctx, err, "create")
		observability.RecordOutcome(table, observability.OutcomeFailed)
		return models.NewInternalError(err)
	}
	observability.NewRepoLogger(table).LogCreate(ctx, nil)
	observability.RecordOutcome(table, observability.OutcomeCreated)
	return nil
}

// Insert attempts to create value and reports the result as an Outcome.
// Unique-constraint violations come back as Skipped rather than an error.
func (s *Store) Insert(ctx context.Context, value interface{}) Outcome {
	ctx, table, end := s.begin(ctx, "insert", value)

	out := classifyInsertError(s.db.WithContext(ctx).Create(value).Error)
	logger := observability.NewRepoLogger(table)
	switch out.Kind {
	case Created:
		observability.RecordOutcome(table, observability.OutcomeCreated)
		end(nil)
	case Skipped:
		observability.RecordOutcome(table, observability.OutcomeSkipped)
		logger.LogSkip(ctx, out.Reason, nil)
		end(nil)
	default:
		observability.RecordOutcome(table, observability.OutcomeFailed)
		logger.LogError(ctx, out.Err, "insert")
		out.Err = models.NewInternalError(out.Err)
		end(out.Err)
	}
	return out
}

// Update applies updates to every row of model matching q and returns the affected row count.
// Values may be gorm.Expr for in-place arithmetic.
func (s *Store) Update(ctx context.Context, model interface{}, q Query, updates map[string]interface{}) (n int64, err error) {
	ctx, table, end := s.begin(ctx, "update", model)
	defer func() { end(err) }()

	if q.Where == "" {
		return 0, models.NewValidationError("update without a where clause")
	}
	res := s.db.WithContext(ctx).Model(model).Where(q.Where, q.Args...).Updates(updates)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	observability.NewRepoLogger(table).LogUpdate(ctx, map[string]interface{}{"rows": res.RowsAffected})
	return res.RowsAffected, nil
}

// Upsert inserts value or, when conflictColumns collide, overwrites updateColumns.
func (s *Store) Upsert(ctx context.Context, value interface{}, conflictColumns, updateColumns []string) (err error) {
	ctx, table, end := s.begin(ctx, "upsert", value)
	defer func() { end(err) }()

	cols := make([]clause.Column, 0, len(conflictColumns))
	for _, c := range conflictColumns {
		cols = append(cols, clause.Column{Name: c})
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   cols,
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(value).Error
	if err != nil {
		observability.NewRepoLogger(table).LogError(ctx, err, "upsert")
		return models.NewInternalError(err)
	}
	return nil
}

// Transaction runs fn against a Store bound to a single database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// SyncSequence moves a Postgres id sequence past the table's current maximum id.
// Needed after inserts with explicit ids; a no-op on other dialects.
func (s *Store) SyncSequence(ctx context.Context, model interface{}) (err error) {
	if s.Dialect() != "postgres" {
		return nil
	}
	ctx, table, end := s.begin(ctx, "sync_sequence", model)
	defer func() { end(err) }()

	sql := fmt.Sprintf(`SELECT setval(
		pg_get_serial_sequence('%[1]s', 'id'),
		GREATEST((SELECT COALESCE(MAX(id), 1) FROM %[1]s), 1),
		true
	)`, table)
	if err = s.db.WithContext(ctx).Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to reset %s sequence: %w", table, err)
	}
	return nil
}
