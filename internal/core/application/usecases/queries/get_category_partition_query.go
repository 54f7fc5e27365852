package queries

import (
	"context"
	"errors"

	"washroute/internal/core/domain/model/order"
	"washroute/internal/pkg/guard"
)

var ErrGetCategoryPartitionQueryIsNotConstructed = errors.New(
	"GetCategoryPartitionQuery must be created via NewGetCategoryPartitionQuery constructor",
)

// GetCategoryPartitionQuery retrieves the board list of one priority partition.
type GetCategoryPartitionQuery struct { //nolint:recvcheck //using for validation
	class order.PriorityClass

	guard guard.ConstructorGuard
}

// NewGetCategoryPartitionQuery creates the query. class must be order.Express or order.Standard.
func NewGetCategoryPartitionQuery(class order.PriorityClass) (GetCategoryPartitionQuery, error) {
	query := GetCategoryPartitionQuery{guard: guard.NewConstructorGuard()}

	if err := query.setClass(class); err != nil {
		return GetCategoryPartitionQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCategoryPartitionQuery) Validate() error {
	return q.guard.Validate(ErrGetCategoryPartitionQueryIsNotConstructed)
}

// Class returns the requested partition.
func (q GetCategoryPartitionQuery) Class() order.PriorityClass {
	return q.class
}

func (q *GetCategoryPartitionQuery) setClass(class order.PriorityClass) error {
	if err := class.ValidateFilter(); err != nil {
		return err
	}

	q.class = class
	return nil
}

// GetCategoryPartitionQueryHandler reads one partition from the engine.
type GetCategoryPartitionQueryHandler struct {
	partitions PartitionReader
}

// NewGetCategoryPartitionQueryHandler creates the handler.
func NewGetCategoryPartitionQueryHandler(partitions PartitionReader) GetCategoryPartitionQueryHandler {
	return GetCategoryPartitionQueryHandler{partitions: partitions}
}

// Handle executes the query. Deferred entries come after the available ones.
func (h GetCategoryPartitionQueryHandler) Handle(
	_ context.Context,
	query GetCategoryPartitionQuery,
) ([]SubtaskResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries, err := h.partitions.CategoryPartition(query.Class())
	if err != nil {
		return nil, err
	}

	return toSubtaskResponses(entries), nil
}
