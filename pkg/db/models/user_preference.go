package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// UserPreference holds a user's dining preferences, one row per user.
type UserPreference struct {
	ID                 uuid.UUID            `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID            `gorm:"column:user_id;type:uuid;not null;uniqueIndex:user_preferences_user_key"`
	CuisinePreferences *string              `gorm:"column:cuisine_preferences"`
	PriceRange         *enums.PriceTier     `gorm:"column:price_range;type:text"`
	PreferredLocation  *string              `gorm:"column:preferred_location"`
	SearchRadiusKm     int                  `gorm:"column:search_radius_km;not null;default:10"`
	DietaryNeeds       *string              `gorm:"column:dietary_needs"`
	Ambiance           *string              `gorm:"column:ambiance"`
	SortPreference     enums.SortPreference `gorm:"column:sort_preference;type:text;not null;default:'rating'"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
