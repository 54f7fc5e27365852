package queries

import (
	"context"
	"errors"

	"washroute/internal/pkg/guard"
)

var ErrGetDispatchBoardQueryIsNotConstructed = errors.New(
	"GetDispatchBoardQuery must be created via NewGetDispatchBoardQuery constructor",
)

// GetDispatchBoardQuery retrieves the actionable subtasks with the closest and deferred flags.
//
// Example:
//
//	board, err := handler.Handle(ctx, NewGetDispatchBoardQuery())
//	if err != nil {
//	    return err
//	}
//	for _, row := range board {
//	    if row.IsClosest {
//	        fmt.Printf("next stop: %s for order %s\n", row.CustomerName, row.OrderNumber)
//	    }
//	}
type GetDispatchBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchBoardQuery creates the query.
func NewGetDispatchBoardQuery() GetDispatchBoardQuery {
	return GetDispatchBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchBoardQueryIsNotConstructed)
}

// GetDispatchBoardQueryHandler reads the annotated board from the engine.
type GetDispatchBoardQueryHandler struct {
	board BoardReader
}

// NewGetDispatchBoardQueryHandler creates the handler.
func NewGetDispatchBoardQueryHandler(board BoardReader) GetDispatchBoardQueryHandler {
	return GetDispatchBoardQueryHandler{board: board}
}

// Handle executes the query. The result is never nil.
func (h GetDispatchBoardQueryHandler) Handle(_ context.Context, query GetDispatchBoardQuery) ([]SubtaskResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return toSubtaskResponses(h.board.DispatchBoard()), nil
}
