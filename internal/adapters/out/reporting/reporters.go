// Package reporting combines the completion reporters configured for a deployment.
package reporting

import (
	"context"
	"errors"
	"fmt"

	"washroute/internal/core/application/usecases/commands"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/core/ports"
)

// FanOut forwards every completion to all of its reporters.
// A failing reporter does not stop the others; their errors are joined.
type FanOut struct {
	reporters []ports.CompletionReporter
}

// NewFanOut creates a fan-out over the non-nil reporters.
func NewFanOut(reporters ...ports.CompletionReporter) *FanOut {
	kept := make([]ports.CompletionReporter, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return &FanOut{reporters: kept}
}

// Len returns the number of reporters.
func (f *FanOut) Len() int {
	return len(f.reporters)
}

// ReportCompletion implements ports.CompletionReporter.
func (f *FanOut) ReportCompletion(ctx context.Context, event ports.CompletionEvent) error {
	var errList []error
	for _, r := range f.reporters {
		if err := r.ReportCompletion(ctx, event); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

// ProgressHandler stores an order's progress.
type ProgressHandler interface {
	Handle(ctx context.Context, cmd commands.RecordProgressCommand) error
}

// ProgressRecorder reports completions by persisting the new subtask statuses of the completed
// order and of the order the completion enabled, if any.
type ProgressRecorder struct {
	handler ProgressHandler
}

// NewProgressRecorder creates a recorder backed by handler.
func NewProgressRecorder(handler ProgressHandler) *ProgressRecorder {
	return &ProgressRecorder{handler: handler}
}

// ReportCompletion implements ports.CompletionReporter.
func (r *ProgressRecorder) ReportCompletion(ctx context.Context, event ports.CompletionEvent) error {
	if err := r.record(ctx, event.Order); err != nil {
		return err
	}

	if event.EnabledOrder != nil {
		return r.record(ctx, event.EnabledOrder)
	}
	return nil
}

func (r *ProgressRecorder) record(ctx context.Context, o *order.Order) error {
	cmd, err := commands.NewRecordProgressCommand(o)
	if err != nil {
		return err
	}

	if err = r.handler.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("record progress of order %s: %w", cmd.Order().Number(), err)
	}
	return nil
}
