package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "washroute/internal/adapters/in/http"
	"washroute/internal/adapters/out/batchfile"
	"washroute/internal/adapters/out/deferralstore"
	"washroute/internal/adapters/out/mqtt"
	"washroute/internal/adapters/out/postgres"
	"washroute/internal/adapters/out/postgres/staterepo"
	"washroute/internal/adapters/out/reporting"
	"washroute/internal/adapters/out/sqlite"
	"washroute/internal/core/application/engine"
	"washroute/internal/core/application/usecases/commands"
	"washroute/internal/core/application/usecases/queries"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/ports"
	"washroute/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	sqliteStore *sqlite.StateStore
	mqttClient  *mqtt.Client

	hub      *httpadapter.BoardHub
	engine   *engine.Engine
	reporter ports.CompletionReporter
}

// NewCompositionRoot opens the configured adapters, loads the assignment and builds the engine.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &CompositionRoot{
		config: config,
		logger: logger,
		hub:    httpadapter.NewBoardHub(logger),
	}

	if err := c.build(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) build(ctx context.Context) error {
	if c.config.UsesPostgres() {
		db, err := postgres.Open(c.config.PostgresDSN())
		if err != nil {
			return err
		}
		c.gormDB = db
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	}

	state, err := c.stateStore(ctx)
	if err != nil {
		return err
	}

	source, err := c.assignmentSource()
	if err != nil {
		return err
	}

	assignment, err := source.LoadAssignment(ctx)
	if err != nil {
		return fmt.Errorf("load assignment: %w", err)
	}

	snooze, err := c.config.Snooze()
	if err != nil {
		return err
	}

	c.engine, err = engine.New(ctx, assignment, deferralstore.New(state, c.logger),
		engine.WithSnoozeDuration(snooze),
		engine.WithLogger(c.logger),
		engine.WithObserver(c.hub),
	)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	c.reporter = c.completionReporter()
	c.logger.InfoContext(ctx, "engine ready",
		"active_orders", len(c.engine.ActiveOrders()),
		"completed_orders", len(c.engine.CompletedOrders()),
		"state_backend", c.config.StateBackend,
		"assignment_source", c.config.AssignmentSource,
	)
	return nil
}

func (c *CompositionRoot) stateStore(ctx context.Context) (ports.StateStore, error) {
	if c.config.StateBackend == StateBackendPostgres {
		return staterepo.NewGormStateRepository(c.gormDB), nil
	}

	store, err := sqlite.Open(ctx, c.config.SQLitePath)
	if err != nil {
		return nil, err
	}
	c.sqliteStore = store
	return store, nil
}

func (c *CompositionRoot) assignmentSource() (ports.AssignmentSource, error) {
	if c.config.AssignmentSource == AssignmentFromFile {
		return batchfile.NewSource(c.config.AssignmentFile), nil
	}

	start, err := c.config.WorkerStart()
	if err != nil {
		return nil, err
	}
	w, err := worker.NewWorker(kernel.NewUUID(), c.config.WorkerName, start)
	if err != nil {
		return nil, err
	}
	return postgres.NewAssignmentSource(c.uowFactory, w)
}

// completionReporter publishes to MQTT when a broker is configured and records progress
// when orders come from Postgres.
func (c *CompositionRoot) completionReporter() ports.CompletionReporter {
	var reporters []ports.CompletionReporter

	if c.config.MQTTURL != "" {
		c.mqttClient = mqtt.NewClient(c.config.MQTTURL, c.config.MQTTClientID)
		if err := c.mqttClient.Connect(); err != nil {
			c.logger.Warn("mqtt broker unreachable, completions are not published until the client reconnects",
				"url", c.config.MQTTURL, "error", err)
		}
		reporters = append(reporters, mqtt.NewCompletionPublisher(c.mqttClient, c.config.MQTTTopic, c.logger))
	}

	if c.config.AssignmentSource == AssignmentFromPostgres {
		reporters = append(reporters, reporting.NewProgressRecorder(c.CreateRecordProgressCommandHandler()))
	}

	fan := reporting.NewFanOut(reporters...)
	if fan.Len() == 0 {
		return nil
	}
	return fan
}

// Close releases the adapters opened by the composition root.
func (c *CompositionRoot) Close() {
	if c.mqttClient != nil {
		c.mqttClient.Disconnect()
	}

	var errList []error
	if c.sqliteStore != nil {
		errList = append(errList, c.sqliteStore.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errList = append(errList, sqlDB.Close())
		}
	}
	if err := errors.Join(errList...); err != nil {
		c.logger.Error("failed to close adapters", "error", err)
	}
}

func (c *CompositionRoot) CreateCompleteSubtaskCommandHandler() commands.CompleteSubtaskCommandHandler {
	return commands.NewCompleteSubtaskCommandHandler(c.engine, c.reporter, c.logger)
}

func (c *CompositionRoot) CreateSnoozeSubtaskCommandHandler() commands.SnoozeSubtaskCommandHandler {
	return commands.NewSnoozeSubtaskCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateSnoozeUntilLastCommandHandler() commands.SnoozeUntilLastCommandHandler {
	return commands.NewSnoozeUntilLastCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateClearDeferralCommandHandler() commands.ClearDeferralCommandHandler {
	return commands.NewClearDeferralCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateExpireDeferralCommandHandler() commands.ExpireDeferralCommandHandler {
	return commands.NewExpireDeferralCommandHandler(c.engine)
}

func (c *CompositionRoot) CreateRecordProgressCommandHandler() commands.RecordProgressCommandHandler {
	return commands.NewRecordProgressCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CompleteSubtask:    c.CreateCompleteSubtaskCommandHandler(),
		SnoozeSubtask:      c.CreateSnoozeSubtaskCommandHandler(),
		SnoozeUntilLast:    c.CreateSnoozeUntilLastCommandHandler(),
		ClearDeferral:      c.CreateClearDeferralCommandHandler(),
		ActionableSubtasks: queries.NewGetActionableSubtasksQueryHandler(c.engine),
		DispatchBoard:      queries.NewGetDispatchBoardQueryHandler(c.engine),
		CategoryPartition:  queries.NewGetCategoryPartitionQueryHandler(c.engine),
		Partitions:         queries.NewGetPartitionsQueryHandler(c.engine),
		WorkerPosition:     queries.NewGetWorkerPositionQueryHandler(c.engine),
		CompletedOrders:    queries.NewGetCompletedOrdersQueryHandler(c.engine),
		Deferral:           queries.NewGetDeferralQueryHandler(c.engine),
	}, c.hub, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	sweep := jobs.NewDeferralExpiryJob(c.CreateExpireDeferralCommandHandler(), c.config.DeferralSweepSchedule, c.logger)
	return jobs.NewJobManager(sweep)
}
