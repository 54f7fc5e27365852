// Package staterepo stores small key-value state in Postgres.
// It backs the deferral store when the service runs against a shared database.
package staterepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateDTO is one key-value row.
type StateDTO struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for state rows.
func (StateDTO) TableName() string {
	return "persistent_state"
}

// GormStateRepository implements ports.StateStore using GORM.
type GormStateRepository struct {
	db *gorm.DB
}

// NewGormStateRepository creates a new state repository.
func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

// GetState returns the value under key, or false when the key is absent.
func (r *GormStateRepository) GetState(ctx context.Context, key string) (string, bool, error) {
	var dto StateDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	return dto.Value, true, nil
}

// SetState upserts val under key.
func (r *GormStateRepository) SetState(ctx context.Context, key, val string) error {
	dto := StateDTO{Key: key, Value: val, UpdatedAt: time.Now().UTC()}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&dto).Error
}

// DeleteState removes key. Deleting an absent key succeeds.
func (r *GormStateRepository) DeleteState(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&StateDTO{}, "key = ?", key).Error
}
