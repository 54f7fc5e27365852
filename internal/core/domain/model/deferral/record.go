package deferral

import (
	"errors"
	"fmt"
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

// ErrRecordIsNotConstructed is returned when a Record was not created through one of its constructors.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewNextRecord or NewLastRecord constructor")

// Record is the single active deferral of the engine.
//
// A record with policy UntilNextCompletion targets a subtask and carries an expiry instant.
// A record with policy UntilLast targets an order and has no expiry.
//
// Every record carries a version. The engine hands out strictly increasing versions,
// so a scheduled expiry can tell whether the record it was armed for is still the current one.
//
// Record is an immutable value object.
type Record struct {
	policy    Policy
	targetID  kernel.UUID
	version   uint64
	expiresAt time.Time
	guard     guard.ConstructorGuard
}

// NewNextRecord creates an UntilNextCompletion record for a subtask.
//
// Parameters:
//   - subtaskID: the deferred subtask (must be valid)
//   - version: the record version handed out by the engine (must be positive)
//   - expiresAt: when the record expires on its own (must be set)
//
// Returns:
//   - Record: the created record
//   - error: joined validation errors
func NewNextRecord(subtaskID kernel.UUID, version uint64, expiresAt time.Time) (Record, error) {
	if expiresAt.IsZero() {
		return Record{}, errs.NewValueIsRequiredError("expiresAt")
	}
	return newRecord(UntilNextCompletion, subtaskID, version, expiresAt)
}

// NewLastRecord creates an UntilLast record for an order.
func NewLastRecord(orderID kernel.UUID, version uint64) (Record, error) {
	return newRecord(UntilLast, orderID, version, time.Time{})
}

func newRecord(policy Policy, targetID kernel.UUID, version uint64, expiresAt time.Time) (Record, error) {
	r := Record{
		policy:    policy,
		targetID:  targetID,
		version:   version,
		expiresAt: expiresAt,
		guard:     guard.NewConstructorGuard(),
	}

	var versionErr error
	if version == 0 {
		versionErr = errs.NewVersionIsInvalidErrorWithCause("version")
	}

	if err := errors.Join(policy.Validate(), targetID.Validate(), versionErr); err != nil {
		return Record{}, err
	}

	return r, nil
}

// Validate checks that the record was built by a constructor.
func (r Record) Validate() error {
	return r.guard.Validate(ErrRecordIsNotConstructed)
}

// Policy returns the record policy.
func (r Record) Policy() Policy {
	return r.policy
}

// TargetID returns the deferred subtask id (UntilNextCompletion) or order id (UntilLast).
func (r Record) TargetID() kernel.UUID {
	return r.targetID
}

// Version returns the record version.
func (r Record) Version() uint64 {
	return r.version
}

// ExpiresAt returns the expiry instant. The second value is false for UntilLast records.
func (r Record) ExpiresAt() (time.Time, bool) {
	return r.expiresAt, r.policy == UntilNextCompletion
}

// IsExpired reports whether an UntilNextCompletion record has reached its expiry at now.
// UntilLast records never expire.
func (r Record) IsExpired(now time.Time) bool {
	return r.policy == UntilNextCompletion && !now.Before(r.expiresAt)
}

// Defers reports whether the record defers a subtask.
//
// Rules:
//   - UntilNextCompletion: the subtask is the record target
//   - UntilLast: the subtask's parent order is not the last order of the active collection
//
// Parameters:
//   - subtaskID: the subtask being classified
//   - parentIsLast: whether its parent order is the last active order (true when it is the only one)
func (r Record) Defers(subtaskID kernel.UUID, parentIsLast bool) bool {
	switch r.policy {
	case UntilNextCompletion:
		return r.targetID.IsEqual(subtaskID)
	case UntilLast:
		return !parentIsLast
	default:
		return false
	}
}

// Reconciliation is the effect a completed subtask has on the active record.
type Reconciliation struct {
	// Clear means the record is consumed and must be removed.
	Clear bool
	// EnableTarget means the target order's head must be force-enabled before clearing.
	EnableTarget bool
}

// Reconcile decides what happens to the record after a subtask was completed.
//
// Rules:
//   - UntilNextCompletion: always cleared, whichever subtask was completed
//   - UntilLast: cleared when the target order is no longer active; cleared with its head
//     force-enabled when the target is the only active order left; kept otherwise
//
// Parameters:
//   - activeOrderIDs: ids of the active orders after the completion was applied
func (r Record) Reconcile(activeOrderIDs []kernel.UUID) Reconciliation {
	if r.policy != UntilLast {
		return Reconciliation{Clear: true}
	}

	targetActive := false
	others := 0
	for _, id := range activeOrderIDs {
		if id.IsEqual(r.targetID) {
			targetActive = true
			continue
		}
		others++
	}

	switch {
	case !targetActive:
		return Reconciliation{Clear: true}
	case others == 0:
		return Reconciliation{Clear: true, EnableTarget: true}
	default:
		return Reconciliation{}
	}
}

// String renders the record for logs.
func (r Record) String() string {
	if r.policy == UntilNextCompletion {
		return fmt.Sprintf("Record(%s %s v%d until %s)", r.policy, r.targetID, r.version, r.expiresAt.Format(time.RFC3339))
	}
	return fmt.Sprintf("Record(%s %s v%d)", r.policy, r.targetID, r.version)
}
