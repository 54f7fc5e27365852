package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"washroute/internal/core/ports"
)

// DefaultTopic receives completion events when no topic is configured.
const DefaultTopic = "washroute/completions"

// Publisher sends a raw payload to a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// CompletionPublisher implements ports.CompletionReporter by publishing a JSON event per completion.
type CompletionPublisher struct {
	publisher Publisher
	topic     string
	logger    *slog.Logger
}

// NewCompletionPublisher creates a reporter publishing to topic.
func NewCompletionPublisher(publisher Publisher, topic string, logger *slog.Logger) *CompletionPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger.With("component", "completion_publisher"),
	}
}

// CompletionMessage is the JSON payload published for a completion.
type CompletionMessage struct {
	SubtaskID      string           `json:"subtaskId"`
	OrderID        string           `json:"orderId"`
	OrderNumber    string           `json:"orderNumber"`
	OrderCompleted bool             `json:"orderCompleted"`
	Subtasks       []SubtaskMessage `json:"subtasks"`
	WorkerID       string           `json:"workerId"`
	WorkerPosition PositionMessage  `json:"workerPosition"`
	CompletedAt    time.Time        `json:"completedAt"`
	EnabledOrderID string           `json:"enabledOrderId,omitempty"`
}

// SubtaskMessage carries the status of one subtask of the completed order.
type SubtaskMessage struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Enabled bool   `json:"enabled"`
}

// PositionMessage is the worker position after the completion.
type PositionMessage struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
}

// ReportCompletion publishes event. A nil order is rejected before anything is sent.
func (p *CompletionPublisher) ReportCompletion(ctx context.Context, event ports.CompletionEvent) error {
	msg, err := NewCompletionMessage(event)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode completion message: %w", err)
	}

	if err = p.publisher.Publish(ctx, p.topic, payload); err != nil {
		return fmt.Errorf("publish completion of subtask %s: %w", msg.SubtaskID, err)
	}

	p.logger.DebugContext(ctx, "completion published", "topic", p.topic, "subtask_id", msg.SubtaskID)
	return nil
}

// NewCompletionMessage converts a completion event into its wire form.
func NewCompletionMessage(event ports.CompletionEvent) (CompletionMessage, error) {
	if event.Order == nil {
		return CompletionMessage{}, fmt.Errorf("completion event for subtask %s has no order", event.SubtaskID)
	}

	subtasks := make([]SubtaskMessage, 0, len(event.Order.Subtasks()))
	for _, st := range event.Order.Subtasks() {
		subtasks = append(subtasks, SubtaskMessage{
			ID:      st.ID().String(),
			Kind:    st.Kind().String(),
			Status:  st.Status().String(),
			Enabled: st.IsEnabled(),
		})
	}

	var enabledOrderID string
	if event.EnabledOrder != nil {
		enabledOrderID = event.EnabledOrder.ID().String()
	}

	return CompletionMessage{
		SubtaskID:      event.SubtaskID.String(),
		OrderID:        event.Order.ID().String(),
		OrderNumber:    event.Order.Number(),
		OrderCompleted: event.OrderCompleted,
		Subtasks:       subtasks,
		WorkerID:       event.WorkerID.String(),
		WorkerPosition: PositionMessage{
			Latitude:  event.WorkerPosition.Latitude(),
			Longitude: event.WorkerPosition.Longitude(),
			Label:     event.WorkerPosition.Label(),
		},
		CompletedAt:    event.CompletedAt.UTC(),
		EnabledOrderID: enabledOrderID,
	}, nil
}
