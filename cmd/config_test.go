package cmd_test

import (
	"log/slog"
	"testing"
	"time"

	"washroute/cmd"
	"washroute/internal/core/application/engine"
	"washroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_WithDefaults(t *testing.T) {
	t.Run("should select the device-local backends", func(t *testing.T) {
		c := cmd.Config{}.WithDefaults()

		assert.Equal(t, "8080", c.HTTPPort)
		assert.Equal(t, cmd.StateBackendSQLite, c.StateBackend)
		assert.Equal(t, cmd.AssignmentFromFile, c.AssignmentSource)
		assert.False(t, c.UsesPostgres())
		require.NoError(t, c.Validate())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("should reject unknown backends", func(t *testing.T) {
		c := cmd.Config{StateBackend: "redis", AssignmentSource: "ftp"}.WithDefaults()

		err := c.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "STATE_BACKEND")
		assert.Contains(t, err.Error(), "ASSIGNMENT_SOURCE")
	})

	t.Run("should require the worker when orders come from postgres", func(t *testing.T) {
		c := cmd.Config{AssignmentSource: cmd.AssignmentFromPostgres}.WithDefaults()

		err := c.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, c.UsesPostgres())
	})

	t.Run("should accept a configured postgres worker", func(t *testing.T) {
		c := cmd.Config{
			AssignmentSource: cmd.AssignmentFromPostgres,
			WorkerName:       "Sam",
			WorkerStartLat:   "52.37",
			WorkerStartLon:   "4.89",
			WorkerStartLabel: "Depot",
		}.WithDefaults()

		require.NoError(t, c.Validate())
		start, err := c.WorkerStart()
		require.NoError(t, err)
		assert.Equal(t, "Depot", start.Label())
	})
}

func TestConfig_Snooze(t *testing.T) {
	t.Run("should default to the engine duration", func(t *testing.T) {
		d, err := cmd.Config{}.Snooze()
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultSnoozeDuration, d)
	})

	t.Run("should parse go durations", func(t *testing.T) {
		d, err := cmd.Config{SnoozeDuration: "45m"}.Snooze()
		require.NoError(t, err)
		assert.Equal(t, 45*time.Minute, d)
	})

	t.Run("should reject non-positive durations", func(t *testing.T) {
		_, err := cmd.Config{SnoozeDuration: "-1m"}.Snooze()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = cmd.Config{SnoozeDuration: "soon"}.Snooze()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestConfig_Misc(t *testing.T) {
	t.Run("should build the postgres dsn with sslmode disabled by default", func(t *testing.T) {
		c := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "wash"}
		assert.Equal(t, "host=db port=5432 user=u password=p dbname=wash sslmode=disable", c.PostgresDSN())
	})

	t.Run("should map log levels", func(t *testing.T) {
		assert.Equal(t, slog.LevelDebug, cmd.Config{LogLevel: "DEBUG"}.SlogLevel())
		assert.Equal(t, slog.LevelWarn, cmd.Config{LogLevel: "warn"}.SlogLevel())
		assert.Equal(t, slog.LevelInfo, cmd.Config{}.SlogLevel())
	})
}
