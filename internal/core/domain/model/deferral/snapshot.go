package deferral

import (
	"time"

	"washroute/internal/core/domain/model/kernel"
)

// Snapshot is the persisted form of a Record, stored under a single key of the device state store.
// Versions are not persisted: a restored record gets a fresh version from the engine.
type Snapshot struct {
	Policy           string     `json:"policy"`
	SubtaskOrOrderID string     `json:"subtaskOrOrderId"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
}

// Snapshot converts the record into its persisted form.
func (r Record) Snapshot() Snapshot {
	s := Snapshot{
		Policy:           r.policy.String(),
		SubtaskOrOrderID: r.targetID.String(),
	}
	if at, ok := r.ExpiresAt(); ok {
		at = at.UTC()
		s.ExpiresAt = &at
	}
	return s
}

// Parse validates the snapshot fields and returns the policy and target id.
// The expiry is left to the caller, which decides how to re-arm or discard it.
func (s Snapshot) Parse() (Policy, kernel.UUID, error) {
	policy, err := ParsePolicy(s.Policy)
	if err != nil {
		return UnknownPolicy, kernel.UUID{}, err
	}

	id, err := kernel.UUIDFromString(s.SubtaskOrOrderID)
	if err != nil {
		return UnknownPolicy, kernel.UUID{}, err
	}

	return policy, id, nil
}
