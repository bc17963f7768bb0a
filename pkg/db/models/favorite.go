package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a saved restaurant.
type Favorite struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:favorites_user_id_idx;uniqueIndex:favorites_user_restaurant_key"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;index:favorites_restaurant_id_idx;uniqueIndex:favorites_user_restaurant_key"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
