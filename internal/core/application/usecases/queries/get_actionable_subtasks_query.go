package queries

import (
	"context"
	"errors"

	"washroute/internal/pkg/guard"
)

var ErrGetActionableSubtasksQueryIsNotConstructed = errors.New(
	"GetActionableSubtasksQuery must be created via NewGetActionableSubtasksQuery constructor",
)

// GetActionableSubtasksQuery retrieves every subtask the worker may complete now, nearest first.
// Closest and deferred flags are not evaluated.
type GetActionableSubtasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActionableSubtasksQuery creates the query.
func NewGetActionableSubtasksQuery() GetActionableSubtasksQuery {
	return GetActionableSubtasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActionableSubtasksQuery) Validate() error {
	return q.guard.Validate(ErrGetActionableSubtasksQueryIsNotConstructed)
}

// GetActionableSubtasksQueryHandler reads the actionable subtasks from the engine.
type GetActionableSubtasksQueryHandler struct {
	board BoardReader
}

// NewGetActionableSubtasksQueryHandler creates the handler.
func NewGetActionableSubtasksQueryHandler(board BoardReader) GetActionableSubtasksQueryHandler {
	return GetActionableSubtasksQueryHandler{board: board}
}

// Handle executes the query. The result is never nil.
func (h GetActionableSubtasksQueryHandler) Handle(
	_ context.Context,
	query GetActionableSubtasksQuery,
) ([]SubtaskResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return toSubtaskResponses(h.board.ActionableSubtasks()), nil
}
