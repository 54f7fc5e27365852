package queries

import (
	"context"
	"errors"
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/guard"
)

var ErrGetCompletedOrdersQueryIsNotConstructed = errors.New(
	"GetCompletedOrdersQuery must be created via NewGetCompletedOrdersQuery constructor",
)

// GetCompletedOrdersQuery retrieves the completed history in completion order.
type GetCompletedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCompletedOrdersQuery creates the query.
func NewGetCompletedOrdersQuery() GetCompletedOrdersQuery {
	return GetCompletedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCompletedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCompletedOrdersQueryIsNotConstructed)
}

// GetCompletedOrdersQueryResponse is one history row.
type GetCompletedOrdersQueryResponse struct {
	ID       kernel.UUID
	Number   string
	Items    int
	Priority string
	// CompletedAt is nil for orders that arrived already completed without a timestamp.
	CompletedAt *time.Time
}

// GetCompletedOrdersQueryHandler reads the history from the engine.
type GetCompletedOrdersQueryHandler struct {
	history HistoryReader
}

// NewGetCompletedOrdersQueryHandler creates the handler.
func NewGetCompletedOrdersQueryHandler(history HistoryReader) GetCompletedOrdersQueryHandler {
	return GetCompletedOrdersQueryHandler{history: history}
}

// Handle executes the query. The result is never nil.
func (h GetCompletedOrdersQueryHandler) Handle(
	_ context.Context,
	query GetCompletedOrdersQuery,
) ([]GetCompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := h.history.CompletedOrders()
	out := make([]GetCompletedOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, GetCompletedOrdersQueryResponse{
			ID:          o.ID(),
			Number:      o.Number(),
			Items:       o.Items(),
			Priority:    o.Priority().String(),
			CompletedAt: o.CompletedAt(),
		})
	}
	return out, nil
}
