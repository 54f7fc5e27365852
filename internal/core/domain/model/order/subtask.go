package order

import (
	"errors"
	"strings"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

var (
	// ErrSubtaskIsNotConstructed is returned when a Subtask was not created through NewSubtask or RestoreSubtask.
	ErrSubtaskIsNotConstructed = errors.New("Subtask must be created via NewSubtask constructor")
	// ErrCustomerNameIsRequired is returned when a subtask has an empty customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customerName")
)

// Subtask is one visit-and-act step of an order: the worker travels to a location
// and performs an action described by its Kind.
//
// A subtask is owned by its Order and only changes through the order:
//   - status moves from SubtaskPending to SubtaskCompleted once
//   - enabled is switched on when the subtask becomes the head of its order's chain
//
// A subtask that is not enabled is never actionable, whatever its status.
type Subtask struct {
	id           kernel.UUID
	kind         Kind
	status       SubtaskStatus
	enabled      bool
	location     kernel.Location
	customerName string
	contact      string
	guard        guard.ConstructorGuard
}

// NewSubtask creates a pending, disabled subtask. NewOrder enables the head of the chain.
//
// Parameters:
//   - id: identifier of the step (must be valid UUID)
//   - kind: visit purpose (must belong to the closed set)
//   - location: where the worker has to go (must be valid)
//   - customerName: display name shown on the card (must be non-empty)
//   - contact: optional phone number or note
//
// Returns:
//   - *Subtask: the created subtask
//   - error: joined validation errors
//
// Example:
//
//	loc, _ := kernel.NewLocation(52.37, 4.89, "Damrak 1")
//	st, err := order.NewSubtask(kernel.NewUUID(), order.Pickup, loc, "Anna", "+31 6 1234 5678")
func NewSubtask(id kernel.UUID, kind Kind, location kernel.Location, customerName string, contact string) (*Subtask, error) {
	return RestoreSubtask(id, kind, SubtaskPending, false, location, customerName, contact)
}

// RestoreSubtask reconstructs a subtask from persistence or an assignment batch
// with an explicit status and enabled flag. Chain consistency across sibling
// subtasks is checked by RestoreOrder, not here.
func RestoreSubtask(
	id kernel.UUID,
	kind Kind,
	status SubtaskStatus,
	enabled bool,
	location kernel.Location,
	customerName string,
	contact string,
) (*Subtask, error) {
	st := &Subtask{
		enabled: enabled,
		contact: strings.TrimSpace(contact),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		st.setID(id),
		st.setKind(kind),
		st.setStatus(status),
		st.setLocation(location),
		st.setCustomerName(customerName),
	); err != nil {
		return nil, err
	}

	return st, nil
}

// Validate ensures the Subtask was built through one of its constructors.
func (s *Subtask) Validate() error {
	if s == nil {
		return ErrSubtaskIsNotConstructed
	}
	return s.guard.Validate(ErrSubtaskIsNotConstructed)
}

// ID returns the subtask identifier.
func (s *Subtask) ID() kernel.UUID {
	return s.id
}

// Kind returns the visit purpose.
func (s *Subtask) Kind() Kind {
	return s.kind
}

// Status returns the lifecycle status.
func (s *Subtask) Status() SubtaskStatus {
	return s.status
}

// IsEnabled reports whether the subtask is reachable in its order's chain.
func (s *Subtask) IsEnabled() bool {
	return s.enabled
}

// IsActionable reports whether the subtask is enabled and still pending.
func (s *Subtask) IsActionable() bool {
	return s.enabled && s.status == SubtaskPending
}

// Location returns the place the worker has to visit.
func (s *Subtask) Location() kernel.Location {
	return s.location
}

// CustomerName returns the display name of the customer or depot.
func (s *Subtask) CustomerName() string {
	return s.customerName
}

// Contact returns the optional contact string; empty when none was given.
func (s *Subtask) Contact() string {
	return s.contact
}

// complete marks the subtask completed. Only the owning order calls it.
func (s *Subtask) complete() error {
	if !s.enabled {
		return errs.NewStateIsInvalidError("subtask " + s.id.String() + " is not enabled")
	}

	newStatus, err := s.status.Complete()
	if err != nil {
		return err
	}

	s.status = newStatus
	return nil
}

func (s *Subtask) clone() *Subtask {
	c := *s
	return &c
}

func (s *Subtask) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Subtask) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	s.kind = kind
	return nil
}

func (s *Subtask) setStatus(status SubtaskStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}

func (s *Subtask) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

func (s *Subtask) setCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	s.customerName = name
	return nil
}
