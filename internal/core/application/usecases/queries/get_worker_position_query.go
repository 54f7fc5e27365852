package queries

import (
	"context"
	"errors"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/guard"
)

var ErrGetWorkerPositionQueryIsNotConstructed = errors.New(
	"GetWorkerPositionQuery must be created via NewGetWorkerPositionQuery constructor",
)

// GetWorkerPositionQuery retrieves where the worker currently is.
type GetWorkerPositionQuery struct {
	guard guard.ConstructorGuard
}

// NewGetWorkerPositionQuery creates the query.
func NewGetWorkerPositionQuery() GetWorkerPositionQuery {
	return GetWorkerPositionQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetWorkerPositionQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkerPositionQueryIsNotConstructed)
}

// GetWorkerPositionQueryResponse is the worker read model.
type GetWorkerPositionQueryResponse struct {
	WorkerID kernel.UUID
	Name     string
	Location kernel.Location
}

// GetWorkerPositionQueryHandler reads the worker from the engine.
type GetWorkerPositionQueryHandler struct {
	workers WorkerReader
}

// NewGetWorkerPositionQueryHandler creates the handler.
func NewGetWorkerPositionQueryHandler(workers WorkerReader) GetWorkerPositionQueryHandler {
	return GetWorkerPositionQueryHandler{workers: workers}
}

// Handle executes the query.
func (h GetWorkerPositionQueryHandler) Handle(
	_ context.Context,
	query GetWorkerPositionQuery,
) (GetWorkerPositionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetWorkerPositionQueryResponse{}, err
	}

	w := h.workers.Worker()
	return GetWorkerPositionQueryResponse{
		WorkerID: w.ID(),
		Name:     w.Name(),
		Location: w.Location(),
	}, nil
}
