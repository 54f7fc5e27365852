package services

import (
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
)

// Partition is the dispatch board split by priority class.
type Partition struct {
	Express  []DispatchEntry
	Standard []DispatchEntry
}

// CategoryPartitioner splits an annotated board into the express and standard lists
// shown side by side to the worker. It never changes ranking or closest selection.
//
// Rules:
//   - Express lists entries whose order is tagged Express or Both
//   - Standard lists entries whose order is tagged exactly Standard
//   - Entries whose order is unknown are left out of both lists
//   - Within a list, non-deferred entries come first; both groups keep their input order
type CategoryPartitioner struct{}

// NewCategoryPartitioner creates a new CategoryPartitioner instance.
func NewCategoryPartitioner() CategoryPartitioner {
	return CategoryPartitioner{}
}

// Partition splits entries into both lists at once.
func (p CategoryPartitioner) Partition(entries []DispatchEntry, orders []*order.Order) Partition {
	return Partition{
		Express:  p.Select(entries, orders, order.Express),
		Standard: p.Select(entries, orders, order.Standard),
	}
}

// Select returns the list for one partition. The priority tag is read from the parent order
// in orders, not from the entry, so the orders collection stays the source of truth.
//
// Parameters:
//   - entries: annotated board entries in distance order
//   - orders: active orders
//   - filter: order.Express or order.Standard; any other value selects nothing
func (CategoryPartitioner) Select(entries []DispatchEntry, orders []*order.Order, filter order.PriorityClass) []DispatchEntry {
	tags := make(map[kernel.UUID]order.PriorityClass, len(orders))
	for _, o := range orders {
		tags[o.ID()] = o.Priority()
	}

	available := make([]DispatchEntry, 0, len(entries))
	var deferred []DispatchEntry

	for _, e := range entries {
		tag, ok := tags[e.OrderID]
		if !ok || !tag.BelongsTo(filter) {
			continue
		}

		if e.IsDeferred {
			deferred = append(deferred, e)
			continue
		}
		available = append(available, e)
	}

	return append(available, deferred...)
}
