package commands_test

import (
	"context"
	"time"

	"washroute/internal/core/application/engine"
	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockEngine struct{ mock.Mock }

func (m *MockEngine) CompleteSubtask(ctx context.Context, subtaskID kernel.UUID) (engine.CompletionResult, error) {
	args := m.Called(ctx, subtaskID)
	return args.Get(0).(engine.CompletionResult), args.Error(1)
}

func (m *MockEngine) Snooze(ctx context.Context, subtaskID kernel.UUID, d time.Duration) (deferral.Record, error) {
	args := m.Called(ctx, subtaskID, d)
	return args.Get(0).(deferral.Record), args.Error(1)
}

func (m *MockEngine) SnoozeUntilLast(ctx context.Context, orderID *kernel.UUID) (deferral.Record, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(deferral.Record), args.Error(1)
}

func (m *MockEngine) ClearDeferral(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEngine) ExpireDeferral(ctx context.Context, now time.Time) (bool, error) {
	args := m.Called(ctx, now)
	return args.Bool(0), args.Error(1)
}

type MockCompletionReporter struct{ mock.Mock }

func (m *MockCompletionReporter) ReportCompletion(ctx context.Context, event ports.CompletionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
