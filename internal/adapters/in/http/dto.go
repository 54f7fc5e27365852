package http

import (
	"time"

	"washroute/internal/core/application/engine"
	"washroute/internal/core/application/usecases/queries"
	"washroute/internal/core/domain/model/deferral"
	"washroute/internal/core/domain/model/kernel"
)

// LocationDTO is a point on the driver's map.
type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label,omitempty"`
}

// SubtaskDTO is one row of a subtask list.
type SubtaskDTO struct {
	ID           string      `json:"id"`
	OrderID      string      `json:"orderId"`
	OrderNumber  string      `json:"orderNumber"`
	Kind         string      `json:"kind"`
	Priority     string      `json:"priority"`
	Location     LocationDTO `json:"location"`
	CustomerName string      `json:"customerName,omitempty"`
	Contact      string      `json:"contact,omitempty"`
	Distance     *float64    `json:"distance"`
	IsClosest    bool        `json:"isClosest"`
	IsDeferred   bool        `json:"isDeferred"`
}

// CompletionDTO describes a committed completion.
type CompletionDTO struct {
	SubtaskID      string      `json:"subtaskId"`
	OrderID        string      `json:"orderId"`
	OrderCompleted bool        `json:"orderCompleted"`
	CompletedAt    time.Time   `json:"completedAt"`
	WorkerPosition LocationDTO `json:"workerPosition"`
}

// DeferralDTO describes the active deferral; only Active is set when there is none.
type DeferralDTO struct {
	Active    bool       `json:"active"`
	Policy    string     `json:"policy,omitempty"`
	TargetID  string     `json:"targetId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// CompletedOrderDTO is one history row.
type CompletedOrderDTO struct {
	ID          string     `json:"id"`
	Number      string     `json:"number"`
	Items       int        `json:"items"`
	Priority    string     `json:"priority"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// WorkerDTO is the driver and their position.
type WorkerDTO struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Location LocationDTO `json:"location"`
}

// BoardMessage is pushed to websocket clients after every change.
type BoardMessage struct {
	Type     string       `json:"type"`
	Subtasks []SubtaskDTO `json:"subtasks"`
	Worker   WorkerDTO    `json:"worker"`
}

// PartitionsDTO holds both priority partitions of the board.
type PartitionsDTO struct {
	Express  []SubtaskDTO `json:"express"`
	Standard []SubtaskDTO `json:"standard"`
}

// SnoozeRequest is the optional body of POST /subtasks/{id}/snooze.
type SnoozeRequest struct {
	Minutes int `json:"minutes"`
}

// SnoozeUntilLastRequest is the optional body of POST /orders/snooze-until-last.
type SnoozeUntilLastRequest struct {
	OrderID string `json:"orderId"`
}

func toLocationDTO(l kernel.Location) LocationDTO {
	return LocationDTO{
		Latitude:  l.Latitude(),
		Longitude: l.Longitude(),
		Label:     l.Label(),
	}
}

func toSubtaskDTOs(rows []queries.SubtaskResponse) []SubtaskDTO {
	out := make([]SubtaskDTO, len(rows))
	for i, r := range rows {
		out[i] = SubtaskDTO{
			ID:           r.SubtaskID.String(),
			OrderID:      r.OrderID.String(),
			OrderNumber:  r.OrderNumber,
			Kind:         r.Kind,
			Priority:     r.Priority,
			Location:     toLocationDTO(r.Location),
			CustomerName: r.CustomerName,
			Contact:      r.Contact,
			Distance:     r.Distance,
			IsClosest:    r.IsClosest,
			IsDeferred:   r.IsDeferred,
		}
	}
	return out
}

func toCompletionDTO(r engine.CompletionResult) CompletionDTO {
	return CompletionDTO{
		SubtaskID:      r.SubtaskID.String(),
		OrderID:        r.Order.ID().String(),
		OrderCompleted: r.OrderCompleted,
		CompletedAt:    r.CompletedAt,
		WorkerPosition: toLocationDTO(r.WorkerPosition),
	}
}

func toDeferralDTO(r deferral.Record) DeferralDTO {
	dto := DeferralDTO{
		Active:   true,
		Policy:   r.Policy().String(),
		TargetID: r.TargetID().String(),
	}
	if at, ok := r.ExpiresAt(); ok {
		dto.ExpiresAt = &at
	}
	return dto
}

func fromDeferralResponse(r queries.GetDeferralQueryResponse) DeferralDTO {
	if !r.Active {
		return DeferralDTO{}
	}
	return DeferralDTO{
		Active:    true,
		Policy:    r.Policy,
		TargetID:  r.TargetID.String(),
		ExpiresAt: r.ExpiresAt,
	}
}

func toCompletedOrderDTOs(rows []queries.GetCompletedOrdersQueryResponse) []CompletedOrderDTO {
	out := make([]CompletedOrderDTO, len(rows))
	for i, r := range rows {
		out[i] = CompletedOrderDTO{
			ID:          r.ID.String(),
			Number:      r.Number,
			Items:       r.Items,
			Priority:    r.Priority,
			CompletedAt: r.CompletedAt,
		}
	}
	return out
}

func toWorkerDTO(r queries.GetWorkerPositionQueryResponse) WorkerDTO {
	return WorkerDTO{
		ID:       r.WorkerID.String(),
		Name:     r.Name,
		Location: toLocationDTO(r.Location),
	}
}
