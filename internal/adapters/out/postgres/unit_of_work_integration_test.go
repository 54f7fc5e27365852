package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "washroute/internal/adapters/out/postgres"
	"washroute/internal/adapters/out/postgres/orderrepo"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/ports"
	"washroute/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite tests the GORM unit of work and the assignment source
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.SubtaskDTO{}))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, subtasks").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersists() {
	ctx := context.Background()
	o := createTestOrder("C-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	got, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("C-1", got.Number())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscards() {
	ctx := context.Background()
	o := createTestOrder("R-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UncommittedIsIsolated() {
	ctx := context.Background()
	o := createTestOrder("I-1")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentSource_LoadsActiveOrdersAndWorker() {
	ctx := context.Background()
	a := createTestOrder("A")
	b := createTestOrder("B")
	repo := suite.factory.Create().OrderRepository()
	suite.Require().NoError(repo.Add(ctx, a))
	suite.Require().NoError(repo.Add(ctx, b))

	start, _ := kernel.NewLocation(52.5, 13.4, "Depot")
	w, err := worker.NewWorker(kernel.NewUUID(), "Sam", start)
	suite.Require().NoError(err)

	source, err := postgres_adapter.NewAssignmentSource(suite.factory, w)
	suite.Require().NoError(err)

	assignment, err := source.LoadAssignment(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(assignment.Orders, 2)
	suite.Equal("A", assignment.Orders[0].Number())
	suite.Equal("B", assignment.Orders[1].Number())
	suite.True(assignment.Worker.IsEqual(w))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentSource_RequiresDependencies() {
	_, err := postgres_adapter.NewAssignmentSource(nil, nil)

	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}

func createTestOrder(number string) *order.Order {
	loc, _ := kernel.NewLocation(52.52, 13.40, "")
	st, _ := order.NewSubtask(kernel.NewUUID(), order.Pickup, loc, "Customer", "")
	o, _ := order.NewOrder(kernel.NewUUID(), number, 1, order.Standard, []*order.Subtask{st})
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
