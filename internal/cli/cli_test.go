package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSQLiteEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cinedex.db")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SEED_SKIP_BCRYPT", "true")
	t.Setenv("SEED_MIN_USERS", "6")
	t.Setenv("SEED_RAND_SEED", "3")
	t.Setenv("REDIS_URL", "")
	t.Setenv("METRICS_PUSHGATEWAY_URL", "")
	t.Setenv("TRACING_ENABLED", "false")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	root := newRootCommand(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	a.close()
	return out.String(), err
}

func countLine(t *testing.T, out, table string) string {
	t.Helper()
	m := regexp.MustCompile(`(?m)^` + table + `\s+(\d+)$`).FindStringSubmatch(out)
	require.Len(t, m, 2, "no count line for %s in:\n%s", table, out)
	return m[1]
}

func TestSeedThenCounts(t *testing.T) {
	setSQLiteEnv(t)

	_, err := execute(t, "seed", "--movies", "12", "--series", "11", "--actors", "12", "--crew", "11")
	require.NoError(t, err)

	out, err := execute(t, "counts")
	require.NoError(t, err)
	assert.Equal(t, "12", countLine(t, out, "movies"))
	assert.Equal(t, "11", countLine(t, out, "series"))
	assert.Equal(t, "12", countLine(t, out, "actors"))
	assert.Equal(t, "11", countLine(t, out, "crew"))
	assert.Equal(t, "6", countLine(t, out, "users"))
	assert.NotEqual(t, "0", countLine(t, out, "forum_topics"))

	_, err = execute(t, "nuke", "--yes")
	require.NoError(t, err)
	out, err = execute(t, "counts")
	require.NoError(t, err)
	assert.Equal(t, "0", countLine(t, out, "movies"))
}

func TestSeed_FromStep(t *testing.T) {
	setSQLiteEnv(t)

	_, err := execute(t, "seed", "--from", "crew", "--crew", "4")
	require.NoError(t, err)

	out, err := execute(t, "counts")
	require.NoError(t, err)
	assert.Equal(t, "0", countLine(t, out, "movies"))
	assert.Equal(t, "4", countLine(t, out, "crew"))
}

func TestSeed_RejectsBadFlags(t *testing.T) {
	setSQLiteEnv(t)

	_, err := execute(t, "seed", "--from", "9")
	assert.ErrorContains(t, err, "unknown step")

	_, err = execute(t, "seed", "--from", "2", "--resume")
	assert.Error(t, err)
}

func TestNuke_RequiresConfirmation(t *testing.T) {
	setSQLiteEnv(t)

	_, err := execute(t, "nuke")
	assert.ErrorContains(t, err, "--yes")
}

func TestMigrate_SQLite(t *testing.T) {
	setSQLiteEnv(t)

	out, err := execute(t, "migrate", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "driver=sqlite")
	assert.Contains(t, out, "run_sql=false")

	out, err = execute(t, "migrate", "auto")
	require.NoError(t, err)
	assert.Contains(t, out, "automigrations applied")

	_, err = execute(t, "migrate", "up")
	assert.Error(t, err)

	_, err = execute(t, "migrate", "down", "abc")
	assert.ErrorContains(t, err, "invalid version")
}
