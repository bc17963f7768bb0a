package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// Restaurant is a listing. AvgRating and ReviewCount are derived columns
// kept in lockstep with the reviews table by the rating aggregator.
type Restaurant struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Name        string           `gorm:"column:name;not null;index"`
	CuisineType *string          `gorm:"column:cuisine_type"`
	Description *string          `gorm:"column:description"`
	Address     *string          `gorm:"column:address"`
	City        *string          `gorm:"column:city;index"`
	State       *string          `gorm:"column:state"`
	ZipCode     *string          `gorm:"column:zip_code"`
	Phone       *string          `gorm:"column:phone"`
	Email       *string          `gorm:"column:email"`
	Website     *string          `gorm:"column:website"`
	Hours       *string          `gorm:"column:hours"`
	PriceTier   *enums.PriceTier `gorm:"column:price_tier;type:text"`
	Amenities   *string          `gorm:"column:amenities"`
	AvgRating   float64          `gorm:"column:avg_rating;not null;default:0"`
	ReviewCount int              `gorm:"column:review_count;not null;default:0"`
	IsClaimed   bool             `gorm:"column:is_claimed;not null;default:false"`
	OwnerID     *uuid.UUID       `gorm:"column:owner_id;type:uuid;index:restaurants_owner_id_idx"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
