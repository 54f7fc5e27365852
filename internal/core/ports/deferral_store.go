package ports

import (
	"context"

	"washroute/internal/core/domain/model/deferral"
)

// DeferralStore persists the single active deferral record so it survives a restart.
type DeferralStore interface {
	// Load returns the stored snapshot, or nil when no deferral is stored.
	Load(ctx context.Context) (*deferral.Snapshot, error)

	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, snapshot deferral.Snapshot) error

	// Clear removes the stored snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// StateStore is a device-local key-value store of small string values.
type StateStore interface {
	// GetState returns the value under key. The bool is false when the key is absent.
	GetState(ctx context.Context, key string) (string, bool, error)

	// SetState stores val under key, replacing any previous value.
	SetState(ctx context.Context, key, val string) error

	// DeleteState removes key. Deleting an absent key is not an error.
	DeleteState(ctx context.Context, key string) error
}
