package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/domain/model/worker"
	"washroute/internal/core/domain/services"
	"washroute/internal/core/ports"
	"washroute/internal/pkg/errs"
)

var (
	// ErrWorkerIsRequired is returned when the assignment has no worker.
	ErrWorkerIsRequired = errs.NewValueIsRequiredError("worker")
	// ErrDeferralStoreIsRequired is returned when no deferral store is given.
	ErrDeferralStoreIsRequired = errs.NewValueIsRequiredError("deferralStore")
)

// CompletionResult describes a committed subtask completion.
type CompletionResult struct {
	// SubtaskID is the completed subtask.
	SubtaskID kernel.UUID
	// Order is a snapshot of the parent order after the completion.
	Order *order.Order
	// OrderCompleted is true when this completion finished the order.
	OrderCompleted bool
	// WorkerID identifies the worker who completed the subtask.
	WorkerID kernel.UUID
	// WorkerPosition is the new worker location, equal to the subtask location.
	WorkerPosition kernel.Location
	// DeferralCleared is true when the completion consumed the active deferral record.
	DeferralCleared bool
	// EnabledOrder is a snapshot of another order whose head subtask was enabled because
	// a defer-until-last record was consumed, or nil.
	EnabledOrder *order.Order
	// CompletedAt is the engine clock at completion time.
	CompletedAt time.Time
}

// Engine owns the task-sequencing state.
//
// Key responsibilities:
//   - Deriving the actionable and annotated dispatch board on every query
//   - Completing subtasks and advancing order chains
//   - Keeping the single deferral record in memory, in the store and on its timer
//
// Engine is safe for concurrent use.
type Engine struct {
	mu sync.Mutex

	orders    []*order.Order
	completed []*order.Order
	worker    *worker.Worker

	record  *deferral.Record
	timer   Timer
	version uint64

	store       ports.DeferralStore
	ranker      services.DispatchRanker
	partitioner services.CategoryPartitioner

	now            func() time.Time
	afterFunc      AfterFunc
	snoozeDuration time.Duration
	logger         *slog.Logger
	observers      []ports.BoardObserver
}

// New builds an engine from the initial assignment and restores the persisted deferral record.
//
// Orders of the assignment that are already completed go straight to the completed history.
// Order ids and subtask ids must be unique across the whole batch.
//
// Parameters:
//   - ctx: used for the deferral store calls made during restore
//   - assignment: the initial batch (orders in batch order, worker with start location)
//   - store: persisted deferral state
//   - opts: clock, timer, logger, observers, default snooze duration
//
// Returns:
//   - *Engine: ready engine
//   - error: validation error for the batch or a store read error
func New(ctx context.Context, assignment ports.Assignment, store ports.DeferralStore, opts ...Option) (*Engine, error) {
	e := &Engine{
		store:          store,
		ranker:         services.NewDispatchRanker(),
		partitioner:    services.NewCategoryPartitioner(),
		now:            time.Now,
		afterFunc:      realAfterFunc,
		snoozeDuration: DefaultSnoozeDuration,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("component", "engine")

	if store == nil {
		return nil, ErrDeferralStoreIsRequired
	}

	if err := e.setWorker(assignment.Worker); err != nil {
		return nil, err
	}

	if err := e.setOrders(assignment.Orders); err != nil {
		return nil, err
	}

	if err := e.restoreDeferral(ctx); err != nil {
		return nil, err
	}

	return e, nil
}

// ActionableSubtasks returns every enabled pending subtask of the active orders,
// sorted by distance from the worker. IsClosest and IsDeferred are not set.
func (e *Engine) ActionableSubtasks() []services.DispatchEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ranker.Rank(e.worker.Location(), e.orders)
}

// DispatchBoard returns the actionable subtasks annotated with IsDeferred and IsClosest.
func (e *Engine) DispatchBoard() []services.DispatchEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board()
}

// CategoryPartition returns the board list for one priority partition.
//
// Returns:
//   - []services.DispatchEntry: entries of orders in the partition, deferred ones last
//   - error: ValueIsInvalidError when class is not order.Express or order.Standard
func (e *Engine) CategoryPartition(class order.PriorityClass) ([]services.DispatchEntry, error) {
	if err := class.ValidateFilter(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.partitioner.Select(e.board(), e.orders, class), nil
}

// Partition returns both partitions of the board.
func (e *Engine) Partition() services.Partition {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.partitioner.Partition(e.board(), e.orders)
}

// WorkerPosition returns the worker's current location.
func (e *Engine) WorkerPosition() kernel.Location {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.worker.Location()
}

// Worker returns a snapshot of the worker.
func (e *Engine) Worker() *worker.Worker {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.worker.Clone()
}

// ActiveOrders returns snapshots of the active orders in collection order.
func (e *Engine) ActiveOrders() []*order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	return cloneOrders(e.orders)
}

// CompletedOrders returns snapshots of the completed orders in completion order.
func (e *Engine) CompletedOrders() []*order.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	return cloneOrders(e.completed)
}

// Deferral returns the active deferral record, if any.
func (e *Engine) Deferral() (deferral.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.record == nil {
		return deferral.Record{}, false
	}
	return *e.record, true
}

// CompleteSubtask completes an actionable subtask.
//
// Effects, in one turn:
//  1. the subtask is marked completed
//  2. the worker moves to the subtask location
//  3. the next subtask of the chain is enabled, or the order completes and moves to history
//  4. the deferral record is reconciled: an until-next record is consumed, an until-last
//     record enables its order and clears once that order is the only active one
//
// Failing to clear the persisted record is logged; the completion stays committed.
//
// Returns:
//   - CompletionResult: what happened
//   - error: ObjectNotFoundError for an unknown subtask, StateIsInvalidError for a disabled
//     or already completed one; the state is unchanged on error
func (e *Engine) CompleteSubtask(ctx context.Context, subtaskID kernel.UUID) (CompletionResult, error) {
	result, err := e.completeSubtask(ctx, subtaskID)
	if err != nil {
		return CompletionResult{}, err
	}

	e.notify(ctx)
	return result, nil
}

func (e *Engine) completeSubtask(ctx context.Context, subtaskID kernel.UUID) (CompletionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, st := e.findSubtask(subtaskID)
	if idx < 0 {
		return CompletionResult{}, errs.NewObjectNotFoundError("subtask", subtaskID.String())
	}
	if err := st.Location().Validate(); err != nil {
		return CompletionResult{}, err
	}

	o := e.orders[idx]
	at := e.now()

	orderCompleted, err := o.CompleteSubtask(subtaskID, at)
	if err != nil {
		return CompletionResult{}, err
	}

	if err = e.worker.ArriveAt(st.Location()); err != nil {
		return CompletionResult{}, fmt.Errorf("move worker: %w", err)
	}

	if orderCompleted {
		e.orders = slices.Delete(e.orders, idx, idx+1)
		e.completed = append(e.completed, o)
	}

	cleared, enabled := e.reconcileDeferral(ctx)

	e.logger.InfoContext(ctx, "subtask completed",
		"subtask_id", subtaskID.String(),
		"order_id", o.ID().String(),
		"order_completed", orderCompleted,
		"deferral_cleared", cleared,
	)

	return CompletionResult{
		SubtaskID:       subtaskID,
		Order:           o.Clone(),
		OrderCompleted:  orderCompleted,
		WorkerID:        e.worker.ID(),
		WorkerPosition:  e.worker.Location(),
		DeferralCleared: cleared,
		EnabledOrder:    enabled,
		CompletedAt:     at,
	}, nil
}

// reconcileDeferral applies the record's reaction to a completion. Caller holds the lock.
// It reports whether the record was cleared and returns a snapshot of the order whose head
// it enabled, if any.
func (e *Engine) reconcileDeferral(ctx context.Context) (bool, *order.Order) {
	if e.record == nil {
		return false, nil
	}

	ids := make([]kernel.UUID, 0, len(e.orders))
	for _, o := range e.orders {
		ids = append(ids, o.ID())
	}

	var enabled *order.Order
	outcome := e.record.Reconcile(ids)
	if outcome.EnableTarget {
		if o := e.findOrder(e.record.TargetID()); o != nil && o.EnableHead() {
			enabled = o.Clone()
		}
	}

	if !outcome.Clear {
		return false, enabled
	}

	e.dropRecord()
	if err := e.store.Clear(ctx); err != nil {
		e.logger.ErrorContext(ctx, "failed to clear persisted deferral", "error", err)
	}
	return true, enabled
}

// board derives the annotated board. Caller holds the lock.
func (e *Engine) board() []services.DispatchEntry {
	return e.ranker.Annotate(e.ranker.Rank(e.worker.Location(), e.orders), e.orders, e.record)
}

// findSubtask locates a subtask in the active orders.
// It returns the index of the parent order and a copy of the subtask, or -1.
func (e *Engine) findSubtask(id kernel.UUID) (int, *order.Subtask) {
	for i, o := range e.orders {
		if !o.HasSubtask(id) {
			continue
		}
		for _, st := range o.Subtasks() {
			if st.ID().IsEqual(id) {
				return i, st
			}
		}
	}
	return -1, nil
}

func (e *Engine) findOrder(id kernel.UUID) *order.Order {
	for _, o := range e.orders {
		if o.ID().IsEqual(id) {
			return o
		}
	}
	return nil
}

func (e *Engine) notify(ctx context.Context) {
	for _, obs := range e.observers {
		obs.BoardChanged(ctx)
	}
}

func (e *Engine) setWorker(w *worker.Worker) error {
	if w == nil {
		return ErrWorkerIsRequired
	}
	if err := w.Validate(); err != nil {
		return err
	}
	e.worker = w.Clone()
	return nil
}

// setOrders takes private copies of the batch, moving completed orders to history.
func (e *Engine) setOrders(orders []*order.Order) error {
	seenOrders := make(map[kernel.UUID]struct{}, len(orders))
	seenSubtasks := make(map[kernel.UUID]struct{})

	var errList []error
	for i, o := range orders {
		if err := o.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("order %d: %w", i, err))
			continue
		}

		if _, dup := seenOrders[o.ID()]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"orders", fmt.Errorf("order %s is listed twice", o.ID())))
			continue
		}
		seenOrders[o.ID()] = struct{}{}

		for _, st := range o.Subtasks() {
			if _, dup := seenSubtasks[st.ID()]; dup {
				errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
					"orders", fmt.Errorf("subtask %s belongs to more than one order", st.ID())))
			}
			seenSubtasks[st.ID()] = struct{}{}
		}

		if o.Status() == order.Completed {
			e.completed = append(e.completed, o.Clone())
			continue
		}
		e.orders = append(e.orders, o.Clone())
	}

	return errors.Join(errList...)
}

func cloneOrders(orders []*order.Order) []*order.Order {
	out := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}
