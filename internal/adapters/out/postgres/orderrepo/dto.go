// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Seq keeps the batch order the orders were added in.
type OrderDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Seq         int64        `gorm:"autoIncrement;not null;uniqueIndex"`
	Number      string       `gorm:"type:varchar(64);not null"`
	Items       int          `gorm:"type:int;not null"`
	Priority    int          `gorm:"type:smallint;not null"`
	Status      int          `gorm:"type:smallint;not null;index"`
	CompletedAt *time.Time   `gorm:"type:timestamptz"`
	Subtasks    []SubtaskDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// SubtaskDTO represents one step of an order's chain. Position is its index in the chain.
type SubtaskDTO struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID   `gorm:"type:uuid;not null;index"`
	Position     int         `gorm:"type:int;not null"`
	Kind         int         `gorm:"type:smallint;not null"`
	Status       int         `gorm:"type:smallint;not null"`
	Enabled      bool        `gorm:"not null"`
	Location     LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	CustomerName string      `gorm:"type:varchar(255);not null"`
	Contact      string      `gorm:"type:varchar(255)"`
}

// TableName specifies the database table name for subtask entities.
func (SubtaskDTO) TableName() string {
	return "subtasks"
}

// LocationDTO represents the embedded subtask location.
type LocationDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
	Label     string  `gorm:"type:varchar(255)"`
}

// fromDomain converts an order domain aggregate to its database representation.
// Seq is left zero so the database assigns it.
func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	subtasks := make([]SubtaskDTO, 0, len(o.Subtasks()))

	for i, st := range o.Subtasks() {
		subtasks = append(subtasks, SubtaskDTO{
			ID:       st.ID().Bytes(),
			OrderID:  orderID,
			Position: i,
			Kind:     int(st.Kind()),
			Status:   int(st.Status()),
			Enabled:  st.IsEnabled(),
			Location: LocationDTO{
				Latitude:  st.Location().Latitude(),
				Longitude: st.Location().Longitude(),
				Label:     st.Location().Label(),
			},
			CustomerName: st.CustomerName(),
			Contact:      st.Contact(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		Number:      o.Number(),
		Items:       o.Items(),
		Priority:    int(o.Priority()),
		Status:      int(o.Status()),
		CompletedAt: o.CompletedAt(),
		Subtasks:    subtasks,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Subtasks must already be sorted by Position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subtasks := make([]*order.Subtask, 0, len(dto.Subtasks))
	for _, stDto := range dto.Subtasks {
		st, stErr := subtaskToDomain(stDto)
		if stErr != nil {
			return nil, stErr
		}
		subtasks = append(subtasks, st)
	}

	return order.RestoreOrder(id, dto.Number, dto.Items, order.PriorityClass(dto.Priority), subtasks, dto.CompletedAt)
}

func subtaskToDomain(dto SubtaskDTO) (*order.Subtask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.Latitude, dto.Location.Longitude, dto.Location.Label)
	if err != nil {
		return nil, err
	}

	return order.RestoreSubtask(
		id,
		order.Kind(dto.Kind),
		order.SubtaskStatus(dto.Status),
		dto.Enabled,
		loc,
		dto.CustomerName,
		dto.Contact,
	)
}
