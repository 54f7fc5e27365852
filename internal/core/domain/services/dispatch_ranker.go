package services

import (
	"slices"

	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
)

// DispatchRanker is a domain service that orders actionable subtasks by proximity to the worker
// and picks the single closest one the worker should do next.
//
// Key responsibilities:
//   - Collecting enabled pending subtasks across active orders
//   - Sorting them by planar distance from the worker
//   - Classifying them as deferred against the active deferral record
//   - Marking the nearest non-deferred subtask as closest
//
// Business rules:
//   - Sorting is stable: equal distances keep the encounter order (order by order, chain by chain)
//   - Entries whose distance could not be measured sort last
//   - Deferred entries are never closest; if every entry is deferred, nothing is closest
//
// Example usage:
//
//	ranker := services.NewDispatchRanker()
//	entries := ranker.Rank(w.Location(), activeOrders)
//	board := ranker.Annotate(entries, activeOrders, record)
type DispatchRanker struct{}

// NewDispatchRanker creates a new DispatchRanker instance.
func NewDispatchRanker() DispatchRanker {
	return DispatchRanker{}
}

// Rank returns the actionable subtasks of the given orders sorted by distance from origin.
//
// Parameters:
//   - origin: the worker's current location
//   - orders: the active orders in collection order
//
// Returns:
//   - []DispatchEntry: entries with Distance and Measured set; IsClosest and IsDeferred are false
func (DispatchRanker) Rank(origin kernel.Location, orders []*order.Order) []DispatchEntry {
	entries := make([]DispatchEntry, 0)

	for _, o := range orders {
		st, ok := o.Head()
		if !ok {
			continue
		}

		entry := newDispatchEntry(o, st)
		if d, err := origin.Distance(st.Location()); err == nil {
			entry.Distance = d
			entry.Measured = true
		}
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, compareDistance)
	return entries
}

// Annotate classifies ranked entries against the deferral record and marks the closest one.
//
// Parameters:
//   - entries: output of Rank (sorted by distance)
//   - orders: the active orders in collection order, used to find the last order
//   - record: the active deferral record, or nil when nothing is deferred
//
// Returns:
//   - []DispatchEntry: a copy of entries with IsDeferred and IsClosest set
//
// Selection criteria:
//   - An entry is deferred if record.Defers it, given whether its order is the last active one
//   - The first non-deferred entry is closest; the input order already encodes distance ranking
func (DispatchRanker) Annotate(entries []DispatchEntry, orders []*order.Order, record *deferral.Record) []DispatchEntry {
	out := make([]DispatchEntry, len(entries))
	copy(out, entries)

	var lastOrderID kernel.UUID
	if len(orders) > 0 {
		lastOrderID = orders[len(orders)-1].ID()
	}
	single := len(orders) <= 1

	closestFound := false
	for i := range out {
		out[i].IsClosest = false
		out[i].IsDeferred = false

		if record != nil {
			parentIsLast := single || out[i].OrderID.IsEqual(lastOrderID)
			out[i].IsDeferred = record.Defers(out[i].SubtaskID, parentIsLast)
		}

		if !out[i].IsDeferred && !closestFound {
			out[i].IsClosest = true
			closestFound = true
		}
	}

	return out
}

// Closest returns the entry marked closest, if any.
func Closest(entries []DispatchEntry) (DispatchEntry, bool) {
	for _, e := range entries {
		if e.IsClosest {
			return e, true
		}
	}
	return DispatchEntry{}, false
}

func compareDistance(a, b DispatchEntry) int {
	switch {
	case !a.Measured && !b.Measured:
		return 0
	case !a.Measured:
		return 1
	case !b.Measured:
		return -1
	case a.Distance < b.Distance:
		return -1
	case a.Distance > b.Distance:
		return 1
	default:
		return 0
	}
}
