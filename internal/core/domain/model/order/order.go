package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrNumberIsRequired is returned when an order has an empty order number.
	ErrNumberIsRequired = errs.NewValueIsRequiredError("number")
	// ErrSubtasksAreRequired is returned when an order has no subtasks.
	ErrSubtasksAreRequired = errs.NewValueIsRequiredError("subtasks")
)

// Order is a customer job: an ordered chain of subtasks that must be completed
// strictly in sequence. It is the aggregate root for its subtasks.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Must have at least one subtask, with unique subtask identifiers
//   - Completed subtasks form a prefix of the chain
//   - At most one subtask is enabled and pending at a time (the head of the chain)
//   - Status is derived from subtask statuses and never set directly
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// number is the human-facing order number printed on the bag tag
	number string

	// items is the number of laundry items in the order
	items int

	// priority decides the partition the order is listed in
	priority PriorityClass

	// subtasks is the chain, in visiting order
	subtasks []*Subtask

	// status is recomputed from subtasks after every mutation
	status Status

	// completedAt is set when the last subtask is completed
	completedAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order from pending subtasks and enables the head of the chain.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - number: Order number shown to the worker (must be non-empty)
//   - items: Number of laundry items (must not be negative)
//   - priority: Express, Standard or Both
//   - subtasks: The chain in visiting order (at least one, all pending)
//
// Returns:
//   - *Order: The created order with status Pending
//   - error: Joined validation errors if any parameter is invalid
//
// Example:
//
//	depot, _ := kernel.NewLocation(52.35, 4.91, "Depot")
//	home, _ := kernel.NewLocation(52.37, 4.89, "Damrak 1")
//	pickup, _ := order.NewSubtask(kernel.NewUUID(), order.Pickup, home, "Anna", "")
//	drop, _ := order.NewSubtask(kernel.NewUUID(), order.Drop, depot, "Depot", "")
//	o, err := order.NewOrder(kernel.NewUUID(), "WR-1042", 6, order.Express, []*order.Subtask{pickup, drop})
func NewOrder(
	id kernel.UUID,
	number string,
	items int,
	priority PriorityClass,
	subtasks []*Subtask,
) (*Order, error) {
	for i, st := range subtasks {
		if st != nil && st.status != SubtaskPending {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"subtasks", fmt.Errorf("subtask %d is %s, new orders take pending subtasks only", i, st.status))
		}
	}

	o, err := RestoreOrder(id, number, items, priority, subtasks, nil)
	if err != nil {
		return nil, err
	}

	o.EnableHead()
	return o, nil
}

// RestoreOrder reconstructs an Order from persistence or an assignment batch.
// Subtask statuses and enabled flags are taken as given and checked against the chain invariants.
// Unlike NewOrder it never enables a subtask on its own.
//
// Parameters:
//   - id, number, items, priority: as in NewOrder
//   - subtasks: the chain in visiting order, possibly partially completed
//   - completedAt: completion instant; ignored unless every subtask is completed
//
// Returns:
//   - *Order: Restored order aggregate with derived status
//   - error: Validation error if any parameter is invalid or the chain is inconsistent
func RestoreOrder(
	id kernel.UUID,
	number string,
	items int,
	priority PriorityClass,
	subtasks []*Subtask,
	completedAt *time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setItems(items),
		o.setPriority(priority),
		o.setSubtasks(subtasks),
	); err != nil {
		return nil, err
	}

	o.status = deriveStatus(o.subtasks)
	if o.status == Completed {
		at := time.Time{}
		if completedAt != nil {
			at = *completedAt
		}
		o.completedAt = &at
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder or RestoreOrder.
//
// Returns:
//   - nil if the order is valid
//   - ErrOrderIsNotConstructed if the order was not created via a constructor
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
//
// Returns:
//   - true if both orders have the same ID
//   - false if other is nil or IDs differ
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-facing order number.
func (o *Order) Number() string {
	return o.number
}

// Items returns the number of laundry items.
func (o *Order) Items() int {
	return o.items
}

// Priority returns the order's priority class.
func (o *Order) Priority() PriorityClass {
	return o.priority
}

// Status returns the status derived from the subtasks.
func (o *Order) Status() Status {
	return o.status
}

// CompletedAt returns when the order was completed, or nil while it is still active.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

// Subtasks returns copies of the chain in visiting order.
// Mutating the returned subtasks does not affect the order.
func (o *Order) Subtasks() []*Subtask {
	out := make([]*Subtask, 0, len(o.subtasks))
	for _, st := range o.subtasks {
		out = append(out, st.clone())
	}
	return out
}

// Head returns a copy of the enabled pending subtask, if any.
func (o *Order) Head() (*Subtask, bool) {
	for _, st := range o.subtasks {
		if st.IsActionable() {
			return st.clone(), true
		}
	}
	return nil, false
}

// HasSubtask reports whether the chain contains a subtask with the given id.
func (o *Order) HasSubtask(id kernel.UUID) bool {
	return o.indexOf(id) >= 0
}

// CompleteSubtask completes one subtask of the chain and advances the chain.
//
// Business rules:
//   - The subtask must belong to this order (ObjectNotFoundError otherwise)
//   - The subtask must be enabled and pending (StateIsInvalidError otherwise)
//   - If it is not the last subtask, the next one becomes enabled and the order InProgress
//   - If it is the last one, the order becomes Completed and records the completion instant
//
// Parameters:
//   - id: the subtask to complete
//   - at: completion instant recorded when the whole order completes
//
// Returns:
//   - bool: true when this completion finished the order
//   - error: not-found or invalid-state error; the order is unchanged on error
//
// Example:
//
//	done, err := o.CompleteSubtask(head.ID(), time.Now())
//	if err != nil {
//	    // caller contract violation
//	}
func (o *Order) CompleteSubtask(id kernel.UUID, at time.Time) (bool, error) {
	idx := o.indexOf(id)
	if idx < 0 {
		return false, errs.NewObjectNotFoundError("subtask", id.String())
	}

	if err := o.subtasks[idx].complete(); err != nil {
		return false, err
	}

	if idx+1 < len(o.subtasks) {
		o.subtasks[idx+1].enabled = true
	}

	o.status = deriveStatus(o.subtasks)
	if o.status != Completed {
		return false, nil
	}

	completedAt := at
	o.completedAt = &completedAt
	return true, nil
}

// EnableHead enables the first pending subtask of the chain.
// Subtasks behind it stay disabled, so the chain invariant holds.
//
// Returns:
//   - bool: true if a subtask was switched from disabled to enabled
func (o *Order) EnableHead() bool {
	for _, st := range o.subtasks {
		if st.status != SubtaskPending {
			continue
		}
		if st.enabled {
			return false
		}
		st.enabled = true
		return true
	}
	return false
}

// Clone returns a deep copy of the order.
// The engine hands clones to callers so that its own state cannot be mutated from outside.
func (o *Order) Clone() *Order {
	c := *o
	c.subtasks = o.Subtasks()
	c.completedAt = o.CompletedAt()
	return &c
}

func (o *Order) indexOf(id kernel.UUID) int {
	for i, st := range o.subtasks {
		if st.id.IsEqual(id) {
			return i
		}
	}
	return -1
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return ErrNumberIsRequired
	}
	o.number = number
	return nil
}

func (o *Order) setItems(items int) error {
	if items < 0 {
		return errs.NewValueIsInvalidErrorWithCause("items is invalid", fmt.Errorf("%d is negative", items))
	}
	o.items = items
	return nil
}

func (o *Order) setPriority(priority PriorityClass) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

// setSubtasks validates the chain and takes ownership of private copies of the subtasks.
//
// Chain rules:
//   - at least one subtask, none nil or unconstructed, no duplicate ids
//   - completed subtasks come before pending ones
//   - only the first pending subtask may be enabled
func (o *Order) setSubtasks(subtasks []*Subtask) error {
	if len(subtasks) == 0 {
		return ErrSubtasksAreRequired
	}

	chain := make([]*Subtask, 0, len(subtasks))
	seen := make(map[kernel.UUID]struct{}, len(subtasks))
	seenPending := false

	for i, st := range subtasks {
		if err := st.Validate(); err != nil {
			return err
		}

		if _, dup := seen[st.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause(
				"subtasks", fmt.Errorf("subtask %s is listed twice", st.id))
		}
		seen[st.id] = struct{}{}

		switch st.status {
		case SubtaskCompleted:
			if seenPending {
				return errs.NewStateIsInvalidErrorWithCause(
					"subtasks", fmt.Errorf("subtask %d is completed after a pending one", i))
			}
		case SubtaskPending:
			if st.enabled && seenPending {
				return errs.NewStateIsInvalidErrorWithCause(
					"subtasks", fmt.Errorf("subtask %d is enabled behind the head of the chain", i))
			}
			seenPending = true
		default:
			return st.status.Validate()
		}

		chain = append(chain, st.clone())
	}

	o.subtasks = chain
	return nil
}
