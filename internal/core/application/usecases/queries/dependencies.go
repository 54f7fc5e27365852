// Package queries contains read operations for retrieving the sequencing state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models derived from the engine on every call; nothing is cached.
package queries

import (
	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/domain/services"
)

// Engine reads the query handlers depend on. *engine.Engine implements all of them.
type (
	// BoardReader exposes the ranked and annotated subtask lists.
	BoardReader interface {
		ActionableSubtasks() []services.DispatchEntry
		DispatchBoard() []services.DispatchEntry
	}

	// PartitionReader exposes the priority partitions of the board.
	PartitionReader interface {
		CategoryPartition(class order.PriorityClass) ([]services.DispatchEntry, error)
		Partition() services.Partition
	}

	// WorkerReader exposes the worker snapshot.
	WorkerReader interface {
		Worker() *worker.Worker
	}

	// HistoryReader exposes completed orders.
	HistoryReader interface {
		CompletedOrders() []*order.Order
	}

	// DeferralReader exposes the active deferral record.
	DeferralReader interface {
		Deferral() (deferral.Record, bool)
	}
)

// SubtaskResponse is one row of a subtask list.
type SubtaskResponse struct {
	SubtaskID    kernel.UUID
	OrderID      kernel.UUID
	OrderNumber  string
	Kind         string
	Priority     string
	Location     kernel.Location
	CustomerName string
	Contact      string
	// Distance is nil when it could not be measured.
	Distance   *float64
	IsClosest  bool
	IsDeferred bool
}

func toSubtaskResponses(entries []services.DispatchEntry) []SubtaskResponse {
	out := make([]SubtaskResponse, 0, len(entries))
	for _, e := range entries {
		r := SubtaskResponse{
			SubtaskID:    e.SubtaskID,
			OrderID:      e.OrderID,
			OrderNumber:  e.OrderNumber,
			Kind:         e.Kind.String(),
			Priority:     e.Priority.String(),
			Location:     e.Location,
			CustomerName: e.CustomerName,
			Contact:      e.Contact,
			IsClosest:    e.IsClosest,
			IsDeferred:   e.IsDeferred,
		}
		if e.Measured {
			d := e.Distance
			r.Distance = &d
		}
		out = append(out, r)
	}
	return out
}
