package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"cinedex/internal/models"
	"cinedex/internal/observability"

	"gorm.io/gorm"
)

// SchemaMigration is one applied migration. Checksum is the sha256 of the up script as applied.
type SchemaMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	Checksum  string    `gorm:"size:64;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Checksum fingerprints the up script.
func (m *Migration) Checksum() string {
	sum := sha256.Sum256([]byte(m.UpScript))
	return hex.EncodeToString(sum[:])
}

// Migrator applies and rolls back a fixed, version-ordered set of migrations.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// NewMigrator returns a Migrator over migrations, which must be sorted by version.
func NewMigrator(db *gorm.DB, migrations []Migration) *Migrator {
	return &Migrator{db: db, migrations: migrations}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	return nil
}

// Applied lists the recorded migrations in version order. A missing table means none.
func (m *Migrator) Applied(ctx context.Context) ([]SchemaMigration, error) {
	if !m.db.WithContext(ctx).Migrator().HasTable(&SchemaMigration{}) {
		return nil, nil
	}
	var rows []SchemaMigration
	if err := m.db.WithContext(ctx).Order("version ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	return rows, nil
}

// Pending returns the migrations not yet applied. It fails when the database records a
// version this build does not know, or when an applied script has since been edited.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}
	if err := m.verify(applied); err != nil {
		return nil, err
	}

	done := make(map[int]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}
	var pending []Migration
	for _, mig := range m.migrations {
		if !done[mig.Version] {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

func (m *Migrator) verify(applied []SchemaMigration) error {
	known := make(map[int]*Migration, len(m.migrations))
	for i := range m.migrations {
		known[m.migrations[i].Version] = &m.migrations[i]
	}

	var unknown []int
	for _, a := range applied {
		mig, ok := known[a.Version]
		if !ok {
			unknown = append(unknown, a.Version)
			continue
		}
		if a.Checksum != "" && a.Checksum != mig.Checksum() {
			return fmt.Errorf("migration %s was edited after it was applied (checksum %s, now %s)",
				mig.String(), short(a.Checksum), short(mig.Checksum()))
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Ints(unknown)
	parts := make([]string, len(unknown))
	for i, v := range unknown {
		parts[i] = fmt.Sprintf("%06d", v)
	}
	return fmt.Errorf("schema_migrations records versions this build does not know: %s (run `cinedex migrate down` with the newer build or reset the database)",
		strings.Join(parts, ", "))
}

func short(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

// Up applies every pending migration, each in its own transaction, and returns how many ran.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return 0, err
	}

	for _, mig := range pending {
		observability.Logger.InfoContext(ctx, "Applying migration", slog.String("migration", mig.String()))
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(mig.UpScript).Error; err != nil {
				return fmt.Errorf("apply %s: %w", mig.String(), err)
			}
			return tx.Create(&SchemaMigration{
				Version:  mig.Version,
				Name:     mig.Name,
				Checksum: mig.Checksum(),
			}).Error
		})
		if err != nil {
			return 0, err
		}
	}
	if len(pending) == 0 {
		observability.Logger.InfoContext(ctx, "Schema is up to date")
	}
	return len(pending), nil
}

// Down runs the down script of an applied migration and forgets it.
func (m *Migrator) Down(ctx context.Context, version int) error {
	var mig *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == version {
			mig = &m.migrations[i]
		}
	}
	if mig == nil {
		return models.NewNotFoundError("migration", version)
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, a := range applied {
		found = found || a.Version == version
	}
	if !found {
		return fmt.Errorf("migration %s has not been applied", mig.String())
	}

	observability.Logger.InfoContext(ctx, "Rolling back migration", slog.String("migration", mig.String()))
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(mig.DownScript).Error; err != nil {
			return fmt.Errorf("roll back %s: %w", mig.String(), err)
		}
		return tx.Where("version = ?", version).Delete(&SchemaMigration{}).Error
	})
}

// RunMigrations applies the embedded migrations. They are PostgreSQL dialect.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if !IsPostgres(db) {
		return fmt.Errorf("sql migrations require postgres, got %s", db.Dialector.Name())
	}
	n, err := NewMigrator(db, migrations).Up(ctx)
	if err != nil {
		return err
	}
	observability.Logger.InfoContext(ctx, "SQL migrations applied", slog.Int("count", n))
	return nil
}

// RollbackMigration reverts one embedded migration by version number.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	return NewMigrator(db, migrations).Down(ctx, version)
}
