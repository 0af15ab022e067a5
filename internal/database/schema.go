package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cinedex/internal/config"
	"cinedex/internal/observability"

	"gorm.io/gorm"
)

// Schema modes accepted by DB_SCHEMA_MODE.
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

// SchemaPlan is what ApplySchema will do for a configuration.
type SchemaPlan struct {
	Mode string
	// SQL runs the embedded postgres migrations.
	SQL bool
	// Auto runs GORM AutoMigrate over PersistentModels.
	Auto bool
}

// SchemaStatus is a SchemaPlan plus the migration state of the connected database.
type SchemaStatus struct {
	SchemaPlan
	Environment       string
	Driver            string
	AppliedVersions   []int
	PendingMigrations []Migration
}

// PlanSchema resolves DB_SCHEMA_MODE against the driver and environment.
//
//	hybrid: SQL migrations, plus AutoMigrate outside production-like environments
//	sql:    SQL migrations only
//	auto:   AutoMigrate only; production-like environments need DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE
//
// SQLite has no SQL migrations and is always built by AutoMigrate.
func PlanSchema(cfg *config.Config) (SchemaPlan, error) {
	plan := SchemaPlan{Mode: strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode))}
	if plan.Mode == "" {
		plan.Mode = SchemaModeHybrid
	}
	switch plan.Mode {
	case SchemaModeHybrid, SchemaModeSQL, SchemaModeAuto:
	default:
		return plan, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", plan.Mode)
	}

	if cfg.DBDriver == "sqlite" {
		if plan.Mode == SchemaModeSQL {
			return plan, fmt.Errorf("DB_SCHEMA_MODE=sql is not supported with DB_DRIVER=sqlite")
		}
		plan.Auto = true
		return plan, nil
	}

	prodLike := isProdLike(cfg.Env)
	switch plan.Mode {
	case SchemaModeSQL:
		plan.SQL = true
	case SchemaModeAuto:
		if prodLike && !cfg.DBAutoMigrateAllowDestructive {
			return plan, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q without DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		plan.Auto = true
	case SchemaModeHybrid:
		plan.SQL = true
		plan.Auto = !prodLike
	}
	return plan, nil
}

func isProdLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod", "staging", "stage":
		return true
	}
	return false
}

// AutoMigrate creates or updates every schema-managed table from the GORM models.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(PersistentModels()...)
}

// ApplySchema brings the database schema up to date according to PlanSchema.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return err
	}

	if plan.SQL {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if !plan.Auto {
		return nil
	}

	if plan.Mode == SchemaModeAuto && cfg.DBAutoMigrateAllowDestructive {
		observability.Logger.WarnContext(ctx, "AutoMigrate allowed in a production-like environment; review schema diffs first")
	}
	observability.Logger.InfoContext(ctx, "Running GORM AutoMigrate",
		slog.String("mode", plan.Mode),
		slog.String("env", cfg.Env),
		slog.String("driver", cfg.DBDriver),
	)
	if err := AutoMigrate(ctx, db); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// GetSchemaStatus reports the plan and, when SQL migrations apply, which are applied and pending.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := PlanSchema(cfg)
	if err != nil {
		return nil, err
	}
	status := &SchemaStatus{SchemaPlan: plan, Environment: cfg.Env, Driver: cfg.DBDriver}
	if !plan.SQL {
		return status, nil
	}

	mig := NewMigrator(db, GetMigrations())
	applied, err := mig.Applied(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range applied {
		status.AppliedVersions = append(status.AppliedVersions, a.Version)
	}
	if status.PendingMigrations, err = mig.Pending(ctx); err != nil {
		return nil, err
	}
	return status, nil
}
