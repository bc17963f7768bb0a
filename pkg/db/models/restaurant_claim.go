package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// RestaurantClaim records an ownership claim and its workflow status.
type RestaurantClaim struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index:restaurant_claims_user_id_idx"`
	RestaurantID uuid.UUID         `gorm:"column:restaurant_id;type:uuid;not null;index:restaurant_claims_restaurant_id_idx"`
	Status       enums.ClaimStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
