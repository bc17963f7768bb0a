package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a rating plus optional comment. The composite unique index
// enforces at most one review per (user, restaurant) pair.
type Review struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:reviews_user_id_idx;uniqueIndex:reviews_user_restaurant_key"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index:reviews_restaurant_id_idx;uniqueIndex:reviews_user_restaurant_key"`
	Rating       int       `gorm:"column:rating;not null"`
	Comment      *string   `gorm:"column:comment"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
