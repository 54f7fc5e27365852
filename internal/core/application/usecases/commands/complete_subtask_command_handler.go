package commands

import (
	"context"
	"log/slog"

	"washroute/internal/core/application/engine"
	"washroute/internal/core/ports"
)

// CompleteSubtaskCommandHandler commits a completion in the engine and reports it upstream.
// Reporting happens after the engine committed; a reporter failure is logged and never undoes the completion.
//
// Example:
//
//	handler := NewCompleteSubtaskCommandHandler(eng, reporter, logger)
//	cmd, _ := NewCompleteSubtaskCommand(subtaskID)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.OrderCompleted {
//	    fmt.Printf("order %s done\n", result.Order.Number())
//	}
type CompleteSubtaskCommandHandler struct {
	completer SubtaskCompleter
	reporter  ports.CompletionReporter
	logger    *slog.Logger
}

// NewCompleteSubtaskCommandHandler creates a handler for subtask completions.
// reporter may be nil when completions are not forwarded anywhere.
func NewCompleteSubtaskCommandHandler(
	completer SubtaskCompleter,
	reporter ports.CompletionReporter,
	logger *slog.Logger,
) CompleteSubtaskCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CompleteSubtaskCommandHandler{
		completer: completer,
		reporter:  reporter,
		logger:    logger.With("component", "complete_subtask_handler"),
	}
}

// Handle processes the completion command.
//
// Returns:
//   - engine.CompletionResult: the committed transition
//   - error: validation error, ObjectNotFoundError or StateIsInvalidError from the engine
func (h CompleteSubtaskCommandHandler) Handle(
	ctx context.Context,
	cmd CompleteSubtaskCommand,
) (engine.CompletionResult, error) {
	if err := cmd.Validate(); err != nil {
		return engine.CompletionResult{}, err
	}

	result, err := h.completer.CompleteSubtask(ctx, cmd.SubtaskID())
	if err != nil {
		return engine.CompletionResult{}, err
	}

	if h.reporter != nil {
		event := ports.CompletionEvent{
			SubtaskID:      result.SubtaskID,
			Order:          result.Order,
			OrderCompleted: result.OrderCompleted,
			WorkerID:       result.WorkerID,
			WorkerPosition: result.WorkerPosition,
			CompletedAt:    result.CompletedAt,
			EnabledOrder:   result.EnabledOrder,
		}
		if err = h.reporter.ReportCompletion(ctx, event); err != nil {
			h.logger.ErrorContext(ctx, "failed to report completion",
				"subtask_id", result.SubtaskID.String(),
				"error", err,
			)
		}
	}

	return result, nil
}
