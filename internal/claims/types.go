package claims

import (
	"time"

	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// ClaimDTO is the API shape of an ownership claim.
type ClaimDTO struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	RestaurantID   uuid.UUID         `json:"restaurant_id"`
	RestaurantName string            `json:"restaurant_name,omitempty"`
	Status         enums.ClaimStatus `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func toDTO(m models.RestaurantClaim, restaurantName string) ClaimDTO {
	return ClaimDTO{
		ID:             m.ID,
		UserID:         m.UserID,
		RestaurantID:   m.RestaurantID,
		RestaurantName: restaurantName,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
