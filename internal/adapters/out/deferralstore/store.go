// Package deferralstore persists the deferral snapshot as JSON under one key of a key-value store.
package deferralstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/ports"
)

// DefaultKey is the state key the snapshot is stored under.
const DefaultKey = "washroute.deferral"

// KeyValueDeferralStore implements ports.DeferralStore over a ports.StateStore.
type KeyValueDeferralStore struct {
	state  ports.StateStore
	key    string
	logger *slog.Logger
}

// New creates a store writing under DefaultKey. A nil logger means slog.Default().
func New(state ports.StateStore, logger *slog.Logger) *KeyValueDeferralStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeyValueDeferralStore{
		state:  state,
		key:    DefaultKey,
		logger: logger.With("component", "deferral_store"),
	}
}

// Load returns the stored snapshot, or nil when none is stored.
// A value that is not valid JSON is deleted and reported as absent.
func (s *KeyValueDeferralStore) Load(ctx context.Context) (*deferral.Snapshot, error) {
	raw, ok, err := s.state.GetState(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok {
		return nil, nil
	}

	var snap deferral.Snapshot
	if err = json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.WarnContext(ctx, "dropping unreadable deferral snapshot", "error", err)
		if delErr := s.state.DeleteState(ctx, s.key); delErr != nil {
			return nil, fmt.Errorf("delete %s: %w", s.key, delErr)
		}
		return nil, nil
	}

	return &snap, nil
}

// Save replaces the stored snapshot.
func (s *KeyValueDeferralStore) Save(ctx context.Context, snapshot deferral.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if err = s.state.SetState(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Clear removes the stored snapshot.
func (s *KeyValueDeferralStore) Clear(ctx context.Context) error {
	if err := s.state.DeleteState(ctx, s.key); err != nil {
		return fmt.Errorf("delete %s: %w", s.key, err)
	}
	return nil
}
