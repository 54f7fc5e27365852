package worker

import (
	"errors"
	"strings"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/pkg/errs"
	"washroute/internal/pkg/guard"
)

// Domain errors for worker operations.
var (
	// ErrNameIsRequired is returned when attempting to create a worker without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrWorkerIsNotConstructed is returned when using an improperly initialized Worker.
	ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")
)

// Worker represents the driver executing the assignment batch.
//
// Key responsibilities:
//   - Managing worker identity (ID, name)
//   - Tracking the current location used for dispatch ranking
//
// Business rules:
//   - Worker must have a valid UUID, non-empty name and valid location
//   - Location changes only through ArriveAt, called when a subtask is completed
//
// Example usage:
//
//	start, _ := kernel.NewLocation(52.35, 4.91, "Depot")
//	w, err := worker.NewWorker(kernel.NewUUID(), "Sam", start)
//	if err != nil {
//	    // Handle construction error
//	}
type Worker struct {
	// id uniquely identifies the worker
	id kernel.UUID
	// name is the display name of the worker
	name string
	// location is where the worker currently is
	location kernel.Location
	// guard ensures the worker was properly constructed
	guard guard.ConstructorGuard
}

// NewWorker creates a new Worker at its starting location.
//
// Parameters:
//   - id: Unique identifier for the worker (must be valid UUID)
//   - name: Display name (must be non-empty)
//   - location: Starting position (must be valid location)
//
// Returns:
//   - *Worker: A fully initialized worker
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewWorker(id kernel.UUID, name string, location kernel.Location) (*Worker, error) {
	w := &Worker{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		w.setID(id),
		w.setName(name),
		w.setLocation(location),
	); err != nil {
		return nil, err
	}

	return w, nil
}

// IsEqual compares workers by identity.
func (w *Worker) IsEqual(other *Worker) bool {
	return other != nil && w.id.IsEqual(other.id)
}

// Validate ensures the Worker was properly constructed through NewWorker.
func (w *Worker) Validate() error {
	if w == nil {
		return ErrWorkerIsNotConstructed
	}
	return w.guard.Validate(ErrWorkerIsNotConstructed)
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name returns the worker's display name.
func (w *Worker) Name() string {
	return w.name
}

// Location returns the worker's current location.
func (w *Worker) Location() kernel.Location {
	return w.location
}

// ArriveAt moves the worker to the given location.
// It is called with the location of a subtask that has just been completed.
//
// Returns:
//   - error: validation error if the location is invalid; the worker does not move
func (w *Worker) ArriveAt(location kernel.Location) error {
	return w.setLocation(location)
}

// Clone returns a copy of the worker.
func (w *Worker) Clone() *Worker {
	c := *w
	return &c
}

func (w *Worker) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	w.id = id
	return nil
}

func (w *Worker) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	w.name = name
	return nil
}

func (w *Worker) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	w.location = location
	return nil
}
