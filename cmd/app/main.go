package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"washroute/cmd"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer app.Close()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	if err = startWebServer(ctx, app, configs.HTTPPort); err != nil {
		logger.Error("web server stopped", "error", err)
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	config := cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		StateBackend:          os.Getenv("STATE_BACKEND"),
		SQLitePath:            os.Getenv("SQLITE_PATH"),
		AssignmentSource:      os.Getenv("ASSIGNMENT_SOURCE"),
		AssignmentFile:        os.Getenv("ASSIGNMENT_FILE"),
		SnoozeDuration:        os.Getenv("SNOOZE_DURATION"),
		DeferralSweepSchedule: os.Getenv("DEFERRAL_SWEEP_SCHEDULE"),
		WorkerName:            os.Getenv("WORKER_NAME"),
		WorkerStartLat:        os.Getenv("WORKER_START_LAT"),
		WorkerStartLon:        os.Getenv("WORKER_START_LON"),
		WorkerStartLabel:      os.Getenv("WORKER_START_LABEL"),
		MQTTURL:               os.Getenv("MQTT_URL"),
		MQTTTopic:             os.Getenv("MQTT_TOPIC"),
		MQTTClientID:          os.Getenv("MQTT_CLIENT_ID"),
		LogLevel:              os.Getenv("LOG_LEVEL"),
	}
	return config.WithDefaults()
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	e := echo.New()
	e.HideBanner = true

	if err := app.CreateHTTPServer().Register(ctx, e); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
