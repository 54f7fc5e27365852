package queries

import (
	"context"
	"errors"

	"washroute/internal/pkg/guard"
)

var ErrGetPartitionsQueryIsNotConstructed = errors.New(
	"GetPartitionsQuery must be created via NewGetPartitionsQuery constructor",
)

// GetPartitionsQuery retrieves the express and standard board lists in one read,
// so both views of the driver app come from the same engine state.
type GetPartitionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPartitionsQuery creates the query.
func NewGetPartitionsQuery() GetPartitionsQuery {
	return GetPartitionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPartitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetPartitionsQueryIsNotConstructed)
}

// PartitionsResponse holds both priority partitions of the board.
type PartitionsResponse struct {
	Express  []SubtaskResponse
	Standard []SubtaskResponse
}

// GetPartitionsQueryHandler reads both partitions from the engine.
type GetPartitionsQueryHandler struct {
	partitions PartitionReader
}

// NewGetPartitionsQueryHandler creates the handler.
func NewGetPartitionsQueryHandler(partitions PartitionReader) GetPartitionsQueryHandler {
	return GetPartitionsQueryHandler{partitions: partitions}
}

// Handle executes the query. Orders tagged both appear in the express list.
func (h GetPartitionsQueryHandler) Handle(_ context.Context, query GetPartitionsQuery) (PartitionsResponse, error) {
	if err := query.Validate(); err != nil {
		return PartitionsResponse{}, err
	}

	p := h.partitions.Partition()
	return PartitionsResponse{
		Express:  toSubtaskResponses(p.Express),
		Standard: toSubtaskResponses(p.Standard),
	}, nil
}
