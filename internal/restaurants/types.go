package restaurants

import (
	"time"

	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	"github.com/platefinder/platefinder-backend/pkg/pagination"
)

// CreateInput carries the fields accepted when adding a listing.
type CreateInput struct {
	Name        string
	CuisineType *string
	Description *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Phone       *string
	Email       *string
	Website     *string
	Hours       *string
	PriceTier   *enums.PriceTier
	Amenities   *string
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Name        *string
	CuisineType *string
	Description *string
	Address     *string
	City        *string
	State       *string
	ZipCode     *string
	Phone       *string
	Email       *string
	Website     *string
	Hours       *string
	PriceTier   *enums.PriceTier
	Amenities   *string
}

// SearchFilters are AND-combined predicates over the listings table.
// Keywords is a free-text OR across description, amenities, and cuisine.
type SearchFilters struct {
	Name      string
	Cuisine   string
	City      string
	ZipCode   string
	PriceTier string
	Keywords  string
}

// RestaurantDTO is the API shape of a listing.
type RestaurantDTO struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	CuisineType *string          `json:"cuisine_type,omitempty"`
	Description *string          `json:"description,omitempty"`
	Address     *string          `json:"address,omitempty"`
	City        *string          `json:"city,omitempty"`
	State       *string          `json:"state,omitempty"`
	ZipCode     *string          `json:"zip_code,omitempty"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Website     *string          `json:"website,omitempty"`
	Hours       *string          `json:"hours,omitempty"`
	PriceTier   *enums.PriceTier `json:"price_tier,omitempty"`
	Amenities   *string          `json:"amenities,omitempty"`
	AvgRating   float64          `json:"avg_rating"`
	ReviewCount int              `json:"review_count"`
	IsClaimed   bool             `json:"is_claimed"`
	OwnerID     *uuid.UUID       `json:"owner_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// SearchPageDTO is a filtered window plus the pre-pagination total.
type SearchPageDTO struct {
	Total       int64           `json:"total"`
	Skip        int             `json:"skip"`
	Limit       int             `json:"limit"`
	Restaurants []RestaurantDTO `json:"restaurants"`
}

func ToDTO(m models.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:          m.ID,
		Name:        m.Name,
		CuisineType: m.CuisineType,
		Description: m.Description,
		Address:     m.Address,
		City:        m.City,
		State:       m.State,
		ZipCode:     m.ZipCode,
		Phone:       m.Phone,
		Email:       m.Email,
		Website:     m.Website,
		Hours:       m.Hours,
		PriceTier:   m.PriceTier,
		Amenities:   m.Amenities,
		AvgRating:   m.AvgRating,
		ReviewCount: m.ReviewCount,
		IsClaimed:   m.IsClaimed,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPageDTO(page pagination.Page[models.Restaurant]) SearchPageDTO {
	items := make([]RestaurantDTO, 0, len(page.Items))
	for _, m := range page.Items {
		items = append(items, ToDTO(m))
	}
	return SearchPageDTO{
		Total:       page.Total,
		Skip:        page.Skip,
		Limit:       page.Limit,
		Restaurants: items,
	}
}
