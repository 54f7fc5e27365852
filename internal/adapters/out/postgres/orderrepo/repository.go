package orderrepo

import (
	"context"
	"errors"

	"washroute/internal/core/domain/model/kernel"
	"washroute/internal/core/domain/model/order"
	"washroute/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
// db is either a plain connection or the transaction of a unit of work.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its subtasks.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the progress of an existing order: its status, completion time,
// and the status and enabled flag of every subtask. The chain itself is immutable.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"status":       dto.Status,
		"completed_at": dto.CompletedAt,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	for _, st := range dto.Subtasks {
		err := db.Model(&SubtaskDTO{}).
			Where("id = ? AND order_id = ?", st.ID, dto.ID).
			Updates(map[string]any{
				"status":  st.Status,
				"enabled": st.Enabled,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withSubtasks(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every order that is not completed, in the order they were added.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withSubtasks(ctx).
		Where("status <> ?", int(order.Completed)).
		Order("seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withSubtasks(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
