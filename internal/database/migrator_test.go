package database

import (
	"context"
	"testing"

	"cinedex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteMigrations() []Migration {
	return []Migration{
		{
			Version:    1,
			Name:       "widgets",
			UpScript:   "CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL)",
			DownScript: "DROP TABLE widgets",
		},
		{
			Version:    2,
			Name:       "widget_tags",
			UpScript:   "CREATE TABLE widget_tags (widget_id INTEGER NOT NULL, tag TEXT NOT NULL)",
			DownScript: "DROP TABLE widget_tags",
		},
	}
}

func TestMigrator_UpIsIdempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	m := NewMigrator(db, sqliteMigrations())

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	n, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasTable("widget_tags"))

	n, err = m.Up(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	applied, err := m.Applied(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, sqliteMigrations()[0].Checksum(), applied[0].Checksum)
}

func TestMigrator_Down(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	m := NewMigrator(db, sqliteMigrations())
	_, err := m.Up(ctx)
	require.NoError(t, err)

	require.NoError(t, m.Down(ctx, 2))
	assert.False(t, db.Migrator().HasTable("widget_tags"))

	pending, err := m.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 2, pending[0].Version)

	assert.ErrorContains(t, m.Down(ctx, 2), "has not been applied")

	var appErr *models.AppError
	require.ErrorAs(t, m.Down(ctx, 42), &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestMigrator_DetectsEditedScript(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	_, err := NewMigrator(db, sqliteMigrations()).Up(ctx)
	require.NoError(t, err)

	edited := sqliteMigrations()
	edited[0].UpScript += " -- tweaked"
	_, err = NewMigrator(db, edited).Pending(ctx)
	assert.ErrorContains(t, err, "000001_widgets was edited")
}

func TestMigrator_RejectsUnknownVersions(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	m := NewMigrator(db, sqliteMigrations())
	_, err := m.Up(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Create(&SchemaMigration{Version: 9, Name: "future"}).Error)
	require.NoError(t, db.Create(&SchemaMigration{Version: 7, Name: "future"}).Error)

	_, err = m.Pending(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000007, 000009")
}

func TestMigrator_FailedScriptIsNotRecorded(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	broken := sqliteMigrations()
	broken[1].UpScript = "CREATE TABLE widget_tags ("

	_, err := NewMigrator(db, broken).Up(ctx)
	require.Error(t, err)

	applied, err := NewMigrator(db, broken).Applied(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, 1, applied[0].Version)
}

func TestEmbeddedMigrations_Checksums(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range GetMigrations() {
		sum := m.Checksum()
		assert.Len(t, sum, 64)
		assert.False(t, seen[sum], m.String())
		seen[sum] = true
	}
}
