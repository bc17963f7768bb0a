package dashboard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/reviews"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
)

const recentReviewLimit = 5

// ServiceParams groups dependencies for the owner dashboard service.
type ServiceParams struct {
	RestaurantRepo *restaurants.Repository
	ReviewRepo     *reviews.Repository
}

// Service computes the owner-facing review summary for a listing.
type Service interface {
	ForRestaurant(ctx context.Context, callerID, restaurantID uuid.UUID) (DashboardDTO, error)
}

type service struct {
	restaurantRepo *restaurants.Repository
	reviewRepo     *reviews.Repository
}

// NewService builds a dashboard service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.RestaurantRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant repo is required")
	}
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	return &service{
		restaurantRepo: params.RestaurantRepo,
		reviewRepo:     params.ReviewRepo,
	}, nil
}

// ForRestaurant returns the rating histogram, sentiment split, and the five
// most recent reviews for a listing the caller owns.
func (s *service) ForRestaurant(ctx context.Context, callerID, restaurantID uuid.UUID) (DashboardDTO, error) {
	if callerID == uuid.Nil {
		return DashboardDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != callerID {
		return DashboardDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "caller does not own this restaurant")
	}

	all, err := s.reviewRepo.ListForRestaurant(ctx, restaurantID)
	if err != nil {
		return DashboardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	sentiment := SentimentDTO{}
	for _, review := range all {
		if review.Rating >= 1 && review.Rating <= 5 {
			distribution[review.Rating]++
		}
		switch {
		case review.Rating >= 4:
			sentiment.PositiveCount++
		case review.Rating == 3:
			sentiment.NeutralCount++
		default:
			sentiment.NegativeCount++
		}
	}

	total := len(all)
	sentiment.PositivePct = percentage(sentiment.PositiveCount, total)
	sentiment.NeutralPct = percentage(sentiment.NeutralCount, total)
	sentiment.NegativePct = percentage(sentiment.NegativeCount, total)

	recent := all
	if len(recent) > recentReviewLimit {
		recent = recent[:recentReviewLimit]
	}

	return DashboardDTO{
		RestaurantID:   restaurant.ID,
		RestaurantName: restaurant.Name,
		AvgRating:      restaurant.AvgRating,
		ReviewCount:    restaurant.ReviewCount,
		Distribution:   distribution,
		Sentiment:      sentiment,
		RecentReviews:  recent,
	}, nil
}

// percentage returns count/total as a percent rounded to 1 decimal place,
// and 0 when total is 0.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(count) * 100).
		Div(decimal.NewFromInt(int64(total))).
		RoundBank(1).
		InexactFloat64()
}
