package services

import (
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
)

// DispatchEntry is one actionable subtask as presented on the dispatch board.
// It is a value snapshot: changing it never affects the order it was taken from.
type DispatchEntry struct {
	SubtaskID    kernel.UUID
	OrderID      kernel.UUID
	OrderNumber  string
	Kind         order.Kind
	Location     kernel.Location
	CustomerName string
	Contact      string
	Priority     order.PriorityClass

	// Distance from the worker, rounded to one decimal. Only meaningful when Measured is true.
	Distance float64
	// Measured is false when the distance could not be computed; such entries sort last.
	Measured bool

	// IsClosest marks the single nearest entry that is not deferred.
	IsClosest bool
	// IsDeferred marks entries kept out of closest selection by the active deferral record.
	IsDeferred bool
}

func newDispatchEntry(o *order.Order, st *order.Subtask) DispatchEntry {
	return DispatchEntry{
		SubtaskID:    st.ID(),
		OrderID:      o.ID(),
		OrderNumber:  o.Number(),
		Kind:         st.Kind(),
		Location:     st.Location(),
		CustomerName: st.CustomerName(),
		Contact:      st.Contact(),
		Priority:     o.Priority(),
	}
}
