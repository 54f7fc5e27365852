package engine

import (
	"context"
	"fmt"
	"time"

	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/services"
	"washroute/internal/pkg/errs"
)

// Snooze defers an actionable subtask until the next completion of any subtask,
// or until d has passed. A non-positive d means the configured snooze duration.
// The new record replaces any active one.
//
// The snapshot is persisted before the record takes effect; a store error rejects the snooze
// and leaves the previous record in place.
//
// Returns:
//   - deferral.Record: the new record
//   - error: ObjectNotFoundError for an unknown subtask, StateIsInvalidError for a subtask
//     that is not actionable, or the store error
func (e *Engine) Snooze(ctx context.Context, subtaskID kernel.UUID, d time.Duration) (deferral.Record, error) {
	record, err := e.snooze(ctx, subtaskID, d)
	if err != nil {
		return deferral.Record{}, err
	}

	e.notify(ctx)
	return record, nil
}

func (e *Engine) snooze(ctx context.Context, subtaskID kernel.UUID, d time.Duration) (deferral.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, st := e.findSubtask(subtaskID)
	if idx < 0 {
		return deferral.Record{}, errs.NewObjectNotFoundError("subtask", subtaskID.String())
	}
	if !st.IsActionable() {
		return deferral.Record{}, errs.NewStateIsInvalidError("subtask " + subtaskID.String() + " is not actionable")
	}

	if d <= 0 {
		d = e.snoozeDuration
	}

	record, err := deferral.NewNextRecord(subtaskID, e.version+1, e.now().Add(d))
	if err != nil {
		return deferral.Record{}, err
	}

	if err = e.store.Save(ctx, record.Snapshot()); err != nil {
		return deferral.Record{}, fmt.Errorf("persist deferral: %w", err)
	}

	e.install(record, d)

	e.logger.InfoContext(ctx, "subtask snoozed", "subtask_id", subtaskID.String(), "duration", d.String())
	return record, nil
}

// SnoozeUntilLast defers every order except the last active one until the given order is
// the only active order left. A nil orderID means the parent order of the current closest subtask.
// The new record replaces any active one and has no timer.
//
// Returns:
//   - deferral.Record: the new record
//   - error: ObjectNotFoundError when the order is not active or nothing is closest,
//     or the store error
func (e *Engine) SnoozeUntilLast(ctx context.Context, orderID *kernel.UUID) (deferral.Record, error) {
	record, err := e.snoozeUntilLast(ctx, orderID)
	if err != nil {
		return deferral.Record{}, err
	}

	e.notify(ctx)
	return record, nil
}

func (e *Engine) snoozeUntilLast(ctx context.Context, orderID *kernel.UUID) (deferral.Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var target kernel.UUID
	if orderID == nil {
		closest, ok := services.Closest(e.board())
		if !ok {
			return deferral.Record{}, errs.NewObjectNotFoundError("closest subtask", "current")
		}
		target = closest.OrderID
	} else {
		target = *orderID
	}

	if e.findOrder(target) == nil {
		return deferral.Record{}, errs.NewObjectNotFoundError("order", target.String())
	}

	record, err := deferral.NewLastRecord(target, e.version+1)
	if err != nil {
		return deferral.Record{}, err
	}

	if err = e.store.Save(ctx, record.Snapshot()); err != nil {
		return deferral.Record{}, fmt.Errorf("persist deferral: %w", err)
	}

	e.install(record, 0)

	e.logger.InfoContext(ctx, "order snoozed until last", "order_id", target.String())
	return record, nil
}

// ClearDeferral removes the active record, cancels its timer and deletes the persisted snapshot.
// Clearing when nothing is deferred succeeds; a store error is then only logged.
// With an active record a store error is returned and the record stays.
func (e *Engine) ClearDeferral(ctx context.Context) error {
	changed, err := e.clearDeferral(ctx)
	if err != nil {
		return err
	}

	if changed {
		e.notify(ctx)
	}
	return nil
}

func (e *Engine) clearDeferral(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.record == nil {
		if err := e.store.Clear(ctx); err != nil {
			e.logger.WarnContext(ctx, "failed to delete persisted deferral", "error", err)
		}
		return false, nil
	}

	if err := e.store.Clear(ctx); err != nil {
		return false, fmt.Errorf("clear persisted deferral: %w", err)
	}

	e.dropRecord()
	e.logger.InfoContext(ctx, "deferral cleared")
	return true, nil
}

// ExpireDeferral clears an until-next record whose expiry is at or before now.
// It is the sweep counterpart of the expiry timer.
//
// Returns:
//   - bool: true when a record expired
//   - error: the store error; the in-memory record is cleared regardless
func (e *Engine) ExpireDeferral(ctx context.Context, now time.Time) (bool, error) {
	expired, err := e.expireIf(ctx, func(r deferral.Record) bool {
		return r.IsExpired(now)
	})

	if expired {
		e.notify(ctx)
	}
	return expired, err
}

// expire is the timer callback of the record with the given version.
func (e *Engine) expire(version uint64) {
	ctx := context.Background()

	expired, err := e.expireIf(ctx, func(r deferral.Record) bool {
		return r.Version() == version
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "failed to clear expired deferral", "error", err)
	}

	if expired {
		e.notify(ctx)
	}
}

func (e *Engine) expireIf(ctx context.Context, match func(deferral.Record) bool) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.record == nil || !match(*e.record) {
		return false, nil
	}

	e.logger.InfoContext(ctx, "deferral expired", "record", e.record.String())
	e.dropRecord()

	if err := e.store.Clear(ctx); err != nil {
		return true, fmt.Errorf("clear persisted deferral: %w", err)
	}
	return true, nil
}

// install makes record the active one, arming its timer when d is positive. Caller holds the lock.
func (e *Engine) install(record deferral.Record, d time.Duration) {
	e.dropRecord()

	e.version = record.Version()
	e.record = &record

	if record.Policy() == deferral.UntilNextCompletion && d > 0 {
		version := record.Version()
		e.timer = e.afterFunc(d, func() { e.expire(version) })
	}
}

// dropRecord forgets the active record and stops its timer. Caller holds the lock.
func (e *Engine) dropRecord() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.record = nil
}

// restoreDeferral loads the persisted snapshot at construction.
//
// Rules:
//   - unparsable snapshot or target not found in the active orders: deleted
//   - until-next record whose expiry has passed: deleted
//   - until-next record without expiry: re-armed with the full snooze duration
//   - otherwise restored with a fresh version and the remaining time
func (e *Engine) restoreDeferral(ctx context.Context) error {
	snap, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load persisted deferral: %w", err)
	}
	if snap == nil {
		return nil
	}

	policy, target, err := snap.Parse()
	if err != nil {
		e.discardSnapshot(ctx, "invalid snapshot", err)
		return nil
	}

	switch policy {
	case deferral.UntilLast:
		if e.findOrder(target) == nil {
			e.discardSnapshot(ctx, "order is no longer active", nil)
			return nil
		}

		record, err := deferral.NewLastRecord(target, e.version+1)
		if err != nil {
			return err
		}
		e.install(record, 0)

	default:
		idx, st := e.findSubtask(target)
		if idx < 0 || !st.IsActionable() {
			e.discardSnapshot(ctx, "subtask is no longer actionable", nil)
			return nil
		}

		now := e.now()
		expiresAt := now.Add(e.snoozeDuration)
		if snap.ExpiresAt != nil {
			expiresAt = *snap.ExpiresAt
		}
		if !now.Before(expiresAt) {
			e.discardSnapshot(ctx, "snapshot expired", nil)
			return nil
		}

		record, err := deferral.NewNextRecord(target, e.version+1, expiresAt)
		if err != nil {
			return err
		}

		if snap.ExpiresAt == nil {
			if err = e.store.Save(ctx, record.Snapshot()); err != nil {
				e.logger.WarnContext(ctx, "failed to persist restored deferral expiry", "error", err)
			}
		}

		e.install(record, expiresAt.Sub(now))
	}

	e.logger.InfoContext(ctx, "deferral restored", "record", e.record.String())
	return nil
}

func (e *Engine) discardSnapshot(ctx context.Context, reason string, cause error) {
	e.logger.WarnContext(ctx, "discarding persisted deferral", "reason", reason, "error", cause)
	if err := e.store.Clear(ctx); err != nil {
		e.logger.WarnContext(ctx, "failed to delete persisted deferral", "error", err)
	}
}
