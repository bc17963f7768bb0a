package favorites

import (
	"time"

	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/reviews"
)

// History item discriminants.
const (
	HistoryTypeReview       = "review"
	HistoryTypeListingAdded = "listing_added"
)

// FavoriteDTO is a saved listing annotated with when it was favorited.
type FavoriteDTO struct {
	ID          uuid.UUID                 `json:"id"`
	Restaurant  restaurants.RestaurantDTO `json:"restaurant"`
	FavoritedAt time.Time                 `json:"favorited_at"`
}

// HistoryReviewEntry is an authored review in the activity history.
type HistoryReviewEntry struct {
	Type   string                     `json:"type"`
	Review reviews.AuthoredReviewDTO  `json:"review"`
}

// HistoryListingEntry is a listing the user added, in the activity history.
type HistoryListingEntry struct {
	Type       string                    `json:"type"`
	Restaurant restaurants.RestaurantDTO `json:"restaurant"`
}

// HistoryDTO is the union view of a user's reviews and added listings,
// each ordered newest first, with per-kind counts.
type HistoryDTO struct {
	Reviews          []HistoryReviewEntry  `json:"reviews"`
	RestaurantsAdded []HistoryListingEntry `json:"restaurants_added"`
	ReviewCount      int                   `json:"review_count"`
	RestaurantCount  int                   `json:"restaurant_count"`
}
