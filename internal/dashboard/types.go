package dashboard

import (
	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/internal/reviews"
)

// Sentiment bands over integer ratings: positive >= 4, neutral = 3,
// negative <= 2.
type SentimentDTO struct {
	PositiveCount int     `json:"positive_count"`
	NeutralCount  int     `json:"neutral_count"`
	NegativeCount int     `json:"negative_count"`
	PositivePct   float64 `json:"positive_pct"`
	NeutralPct    float64 `json:"neutral_pct"`
	NegativePct   float64 `json:"negative_pct"`
}

// DashboardDTO summarizes a listing's review activity for its owner.
type DashboardDTO struct {
	RestaurantID   uuid.UUID           `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	AvgRating      float64             `json:"avg_rating"`
	ReviewCount    int                 `json:"review_count"`
	Distribution   map[int]int         `json:"rating_distribution"`
	Sentiment      SentimentDTO        `json:"sentiment"`
	RecentReviews  []reviews.ReviewDTO `json:"recent_reviews"`
}
