package kernel

import (
	"fmt"

	"washroute/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
// This error is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, subtasks and workers.
// It wraps github.com/google/uuid so that the domain never handles the nil UUID by accident:
// the zero value is invalid and must be built with NewUUID, UUIDFromString or UUIDFromBytes.
//
// UUID is comparable and can be used as a map key. It implements encoding.TextMarshaler and
// encoding.TextUnmarshaler, so assignment batches and persisted deferral snapshots can carry it
// as plain text.
//
// Example usage:
//
//	subtaskID, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if err != nil {
//	    // reject the request
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// nameSpace scopes the name-based UUIDs of this module.
var nameSpace = uuid.MustParse("3f6c1a52-8d0e-4b7a-9c55-2e7d4f0b9a61")

// NewNameUUID derives a stable UUID (version 5) from name.
// The same name always yields the same UUID, so records loaded without explicit ids
// keep their identity across reloads.
func NewNameUUID(name string) UUID {
	return UUID{
		id: uuid.NewSHA1(nameSpace, []byte(name)),
	}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts the formats understood by uuid.Parse, including braces and the urn:uuid: prefix.
// The nil UUID is rejected with ErrUUIDIsNotConstructed.
//
// Example:
//
//	id, err := kernel.UUIDFromString(c.Param("id"))
//	if err != nil {
//	    return fmt.Errorf("invalid subtask ID: %w", err)
//	}
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}

	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}

	return parsed, nil
}

// UUIDFromBytes creates a UUID from a 16-byte slice, as stored by the postgres adapters.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", fmt.Errorf("invalid UUID format: %w", err))
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
// For a zero value UUID, this returns "00000000-0000-0000-0000-000000000000".
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for the persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual compares two UUIDs for equality.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// IsZero reports whether the UUID was never constructed.
func (u UUID) IsZero() bool {
	return u.id == uuid.Nil
}

// Validate checks if the UUID is properly constructed.
// Returns ErrUUIDIsNotConstructed if the UUID is a zero value (nil UUID).
func (u UUID) Validate() error {
	if u.IsZero() {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (u UUID) MarshalText() ([]byte, error) {
	return []byte(u.id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty input leaves the zero value in place so optional identifiers can be omitted.
func (u *UUID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = UUID{}
		return nil
	}

	parsed, err := UUIDFromString(string(text))
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}
