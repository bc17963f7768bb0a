package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/reviews"
	"github.com/platefinder/platefinder-backend/pkg/db"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
)

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	FavoriteRepo   *Repository
	RestaurantRepo *restaurants.Repository
	ReviewRepo     *reviews.Repository
}

// Service exposes favorites management and the activity history view.
type Service interface {
	Add(ctx context.Context, userID, restaurantID uuid.UUID) (FavoriteDTO, error)
	Remove(ctx context.Context, userID, restaurantID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error)
	History(ctx context.Context, userID uuid.UUID) (HistoryDTO, error)
}

type service struct {
	favoriteRepo   *Repository
	restaurantRepo *restaurants.Repository
	reviewRepo     *reviews.Repository
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.FavoriteRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repo is required")
	}
	if params.RestaurantRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant repo is required")
	}
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	return &service{
		favoriteRepo:   params.FavoriteRepo,
		restaurantRepo: params.RestaurantRepo,
		reviewRepo:     params.ReviewRepo,
	}, nil
}

// Add saves a listing for the user.
func (s *service) Add(ctx context.Context, userID, restaurantID uuid.UUID) (FavoriteDTO, error) {
	if userID == uuid.Nil {
		return FavoriteDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, restaurantID)
	if err != nil {
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
	}
	if exists {
		return FavoriteDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "restaurant is already in favorites")
	}

	favorite, err := s.favoriteRepo.Add(ctx, userID, restaurantID)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "restaurant is already in favorites")
		}
		return FavoriteDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
	}

	return FavoriteDTO{
		ID:          favorite.ID,
		Restaurant:  restaurants.ToDTO(restaurant),
		FavoritedAt: favorite.CreatedAt,
	}, nil
}

// Remove deletes the saved pair, failing when it was never saved.
func (s *service) Remove(ctx context.Context, userID, restaurantID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	removed, err := s.favoriteRepo.Remove(ctx, userID, restaurantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "favorite not found")
	}
	return nil
}

// List returns the user's saved listings, most recently saved first.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]FavoriteDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	rows, listings, err := s.favoriteRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list favorites")
	}

	items := make([]FavoriteDTO, 0, len(rows))
	for _, row := range rows {
		listing, ok := listings[row.RestaurantID]
		if !ok {
			continue
		}
		items = append(items, FavoriteDTO{
			ID:          row.ID,
			Restaurant:  restaurants.ToDTO(listing),
			FavoritedAt: row.CreatedAt,
		})
	}
	return items, nil
}

// History returns the union of the user's authored reviews and the listings
// they added, each newest first, with per-kind counts.
func (s *service) History(ctx context.Context, userID uuid.UUID) (HistoryDTO, error) {
	if userID == uuid.Nil {
		return HistoryDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}

	authored, err := s.reviewRepo.ListForAuthor(ctx, userID)
	if err != nil {
		return HistoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list authored reviews")
	}
	added, err := s.restaurantRepo.ListByOwner(ctx, userID)
	if err != nil {
		return HistoryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list added restaurants")
	}

	reviewEntries := make([]HistoryReviewEntry, 0, len(authored))
	for _, review := range authored {
		reviewEntries = append(reviewEntries, HistoryReviewEntry{
			Type:   HistoryTypeReview,
			Review: review,
		})
	}
	listingEntries := make([]HistoryListingEntry, 0, len(added))
	for _, listing := range added {
		listingEntries = append(listingEntries, HistoryListingEntry{
			Type:       HistoryTypeListingAdded,
			Restaurant: restaurants.ToDTO(listing),
		})
	}

	return HistoryDTO{
		Reviews:          reviewEntries,
		RestaurantsAdded: listingEntries,
		ReviewCount:      len(reviewEntries),
		RestaurantCount:  len(listingEntries),
	}, nil
}
