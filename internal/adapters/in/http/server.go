// Package http exposes the sequencing engine to the driver app over HTTP and websocket.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"washroute/internal/core/application/usecases/commands"
	"washroute/internal/core/application/usecases/queries"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases served by the API.
type Handlers struct {
	CompleteSubtask commands.CompleteSubtaskCommandHandler
	SnoozeSubtask   commands.SnoozeSubtaskCommandHandler
	SnoozeUntilLast commands.SnoozeUntilLastCommandHandler
	ClearDeferral   commands.ClearDeferralCommandHandler

	ActionableSubtasks queries.GetActionableSubtasksQueryHandler
	DispatchBoard      queries.GetDispatchBoardQueryHandler
	CategoryPartition  queries.GetCategoryPartitionQueryHandler
	Partitions         queries.GetPartitionsQueryHandler
	WorkerPosition     queries.GetWorkerPositionQueryHandler
	CompletedOrders    queries.GetCompletedOrdersQueryHandler
	Deferral           queries.GetDeferralQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	hub      *BoardHub
	logger   *slog.Logger
}

// NewServer creates the API server. When hub is not nil it is fed from the dispatch board query.
func NewServer(handlers Handlers, hub *BoardHub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		handlers: handlers,
		hub:      hub,
		logger:   logger.With("component", "http_server"),
	}
	if hub != nil {
		hub.SetSource(s.boardMessage)
	}
	return s
}

// Register mounts every route on e. Requests under /api/v1 are validated against the API document.
func (s *Server) Register(ctx context.Context, e *echo.Echo) error {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return err
	}

	validate, err := requestValidator(doc)
	if err != nil {
		return err
	}

	if err = registerSwaggerDoc(doc); err != nil {
		return err
	}

	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")
	if s.hub != nil {
		api.GET("/board/ws", s.hub.ServeWS)
	}

	api.GET("/subtasks/actionable", s.GetActionableSubtasks, validate)
	api.GET("/subtasks/board", s.GetDispatchBoard, validate)
	api.GET("/subtasks/partition", s.GetPartitions, validate)
	api.GET("/subtasks/partition/:class", s.GetCategoryPartition, validate)
	api.POST("/subtasks/:id/complete", s.CompleteSubtask, validate)
	api.POST("/subtasks/:id/snooze", s.SnoozeSubtask, validate)
	api.POST("/orders/snooze-until-last", s.SnoozeUntilLast, validate)
	api.GET("/orders/completed", s.GetCompletedOrders, validate)
	api.GET("/worker/position", s.GetWorkerPosition, validate)
	api.GET("/deferral", s.GetDeferral, validate)
	api.DELETE("/deferral", s.ClearDeferral, validate)

	return nil
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetActionableSubtasks handles GET /api/v1/subtasks/actionable.
func (s *Server) GetActionableSubtasks(c echo.Context) error {
	rows, err := s.handlers.ActionableSubtasks.Handle(c.Request().Context(), queries.NewGetActionableSubtasksQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSubtaskDTOs(rows))
}

// GetDispatchBoard handles GET /api/v1/subtasks/board.
func (s *Server) GetDispatchBoard(c echo.Context) error {
	rows, err := s.handlers.DispatchBoard.Handle(c.Request().Context(), queries.NewGetDispatchBoardQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSubtaskDTOs(rows))
}

// GetCategoryPartition handles GET /api/v1/subtasks/partition/:class.
func (s *Server) GetCategoryPartition(c echo.Context) error {
	class, err := order.ParsePriorityClass(c.Param("class"))
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetCategoryPartitionQuery(class)
	if err != nil {
		return s.fail(c, err)
	}

	rows, err := s.handlers.CategoryPartition.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toSubtaskDTOs(rows))
}

// GetPartitions handles GET /api/v1/subtasks/partition.
func (s *Server) GetPartitions(c echo.Context) error {
	p, err := s.handlers.Partitions.Handle(c.Request().Context(), queries.NewGetPartitionsQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, PartitionsDTO{
		Express:  toSubtaskDTOs(p.Express),
		Standard: toSubtaskDTOs(p.Standard),
	})
}

// CompleteSubtask handles POST /api/v1/subtasks/:id/complete.
func (s *Server) CompleteSubtask(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewCompleteSubtaskCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.CompleteSubtask.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCompletionDTO(result))
}

// SnoozeSubtask handles POST /api/v1/subtasks/:id/snooze. Without minutes the default duration applies.
func (s *Server) SnoozeSubtask(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	var body SnoozeRequest
	if err = (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewSnoozeSubtaskCommand(id, time.Duration(body.Minutes)*time.Minute)
	if err != nil {
		return s.fail(c, err)
	}

	record, err := s.handlers.SnoozeSubtask.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toDeferralDTO(record))
}

// SnoozeUntilLast handles POST /api/v1/orders/snooze-until-last.
func (s *Server) SnoozeUntilLast(c echo.Context) error {
	var body SnoozeUntilLastRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	var orderID *kernel.UUID
	if body.OrderID != "" {
		id, err := kernel.UUIDFromString(body.OrderID)
		if err != nil {
			return s.fail(c, err)
		}
		orderID = &id
	}

	cmd, err := commands.NewSnoozeUntilLastCommand(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	record, err := s.handlers.SnoozeUntilLast.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toDeferralDTO(record))
}

// GetCompletedOrders handles GET /api/v1/orders/completed.
func (s *Server) GetCompletedOrders(c echo.Context) error {
	rows, err := s.handlers.CompletedOrders.Handle(c.Request().Context(), queries.NewGetCompletedOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toCompletedOrderDTOs(rows))
}

// GetWorkerPosition handles GET /api/v1/worker/position.
func (s *Server) GetWorkerPosition(c echo.Context) error {
	resp, err := s.handlers.WorkerPosition.Handle(c.Request().Context(), queries.NewGetWorkerPositionQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toWorkerDTO(resp))
}

// GetDeferral handles GET /api/v1/deferral.
func (s *Server) GetDeferral(c echo.Context) error {
	resp, err := s.handlers.Deferral.Handle(c.Request().Context(), queries.NewGetDeferralQuery())
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, fromDeferralResponse(resp))
}

// ClearDeferral handles DELETE /api/v1/deferral.
func (s *Server) ClearDeferral(c echo.Context) error {
	if err := s.handlers.ClearDeferral.Handle(c.Request().Context(), commands.NewClearDeferralCommand()); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) boardMessage(ctx context.Context) (BoardMessage, error) {
	rows, err := s.handlers.DispatchBoard.Handle(ctx, queries.NewGetDispatchBoardQuery())
	if err != nil {
		return BoardMessage{}, err
	}

	w, err := s.handlers.WorkerPosition.Handle(ctx, queries.NewGetWorkerPositionQuery())
	if err != nil {
		return BoardMessage{}, err
	}

	return BoardMessage{
		Type:     "board",
		Subtasks: toSubtaskDTOs(rows),
		Worker:   toWorkerDTO(w),
	}, nil
}
