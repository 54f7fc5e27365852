package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"washroute/internal/core/application/engine"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"
)

const (
	StateBackendSQLite   = "sqlite"
	StateBackendPostgres = "postgres"

	AssignmentFromFile     = "file"
	AssignmentFromPostgres = "postgres"

	defaultHTTPPort       = "8080"
	defaultSQLitePath     = "data/washroute.db"
	defaultAssignmentFile = "assignment.yaml"
	defaultMQTTClientID   = "washroute"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StateBackend string
	SQLitePath   string

	AssignmentSource string
	AssignmentFile   string

	SnoozeDuration        string
	DeferralSweepSchedule string

	WorkerName       string
	WorkerStartLat   string
	WorkerStartLon   string
	WorkerStartLabel string

	MQTTURL      string
	MQTTTopic    string
	MQTTClientID string

	LogLevel string
}

// WithDefaults fills every optional key left empty.
func (c Config) WithDefaults() Config {
	if c.HTTPPort == "" {
		c.HTTPPort = defaultHTTPPort
	}
	if c.StateBackend == "" {
		c.StateBackend = StateBackendSQLite
	}
	if c.SQLitePath == "" {
		c.SQLitePath = defaultSQLitePath
	}
	if c.AssignmentSource == "" {
		c.AssignmentSource = AssignmentFromFile
	}
	if c.AssignmentFile == "" {
		c.AssignmentFile = defaultAssignmentFile
	}
	if c.MQTTClientID == "" {
		c.MQTTClientID = defaultMQTTClientID
	}
	return c
}

// Validate checks the keys that select adapters and the values parsed at startup.
func (c Config) Validate() error {
	var errList []error

	switch c.StateBackend {
	case StateBackendSQLite, StateBackendPostgres:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"STATE_BACKEND", fmt.Errorf("%q is not sqlite or postgres", c.StateBackend)))
	}

	switch c.AssignmentSource {
	case AssignmentFromFile, AssignmentFromPostgres:
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"ASSIGNMENT_SOURCE", fmt.Errorf("%q is not file or postgres", c.AssignmentSource)))
	}

	if _, err := c.Snooze(); err != nil {
		errList = append(errList, err)
	}

	if c.AssignmentSource == AssignmentFromPostgres {
		if c.WorkerName == "" {
			errList = append(errList, errs.NewValueIsRequiredError("WORKER_NAME"))
		}
		if _, err := c.WorkerStart(); err != nil {
			errList = append(errList, err)
		}
	}

	return errors.Join(errList...)
}

// UsesPostgres reports whether any adapter needs the database.
func (c Config) UsesPostgres() bool {
	return c.StateBackend == StateBackendPostgres || c.AssignmentSource == AssignmentFromPostgres
}

// PostgresDSN builds the connection string for the gorm postgres driver.
func (c Config) PostgresDSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// Snooze parses SNOOZE_DURATION. Empty means the engine default.
func (c Config) Snooze() (time.Duration, error) {
	if c.SnoozeDuration == "" {
		return engine.DefaultSnoozeDuration, nil
	}

	d, err := time.ParseDuration(c.SnoozeDuration)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("SNOOZE_DURATION", err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("SNOOZE_DURATION", fmt.Errorf("%s is not positive", d))
	}
	return d, nil
}

// WorkerStart parses the configured start location of the worker.
func (c Config) WorkerStart() (kernel.Location, error) {
	lat, err := strconv.ParseFloat(c.WorkerStartLat, 64)
	if err != nil {
		return kernel.Location{}, errs.NewValueIsInvalidErrorWithCause("WORKER_START_LAT", err)
	}
	lon, err := strconv.ParseFloat(c.WorkerStartLon, 64)
	if err != nil {
		return kernel.Location{}, errs.NewValueIsInvalidErrorWithCause("WORKER_START_LON", err)
	}
	return kernel.NewLocation(lat, lon, c.WorkerStartLabel)
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
