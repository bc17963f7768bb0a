package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/internal/ratings"
	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/users"
	"github.com/platefinder/platefinder-backend/pkg/db"
	"github.com/platefinder/platefinder-backend/pkg/db/models"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
)

// ServiceParams groups dependencies for the review service.
type ServiceParams struct {
	ReviewRepo     *Repository
	RestaurantRepo *restaurants.Repository
	UserRepo       *users.Repository
	Aggregator     *ratings.Aggregator
	DB             *db.Client
}

// Service exposes business rules for review management. Every mutation runs
// the rating aggregator in the same transaction as the review write.
type Service interface {
	Create(ctx context.Context, authorID, restaurantID uuid.UUID, input CreateInput) (ReviewDTO, error)
	Update(ctx context.Context, callerID, restaurantID, reviewID uuid.UUID, patch Patch) (ReviewDTO, error)
	Delete(ctx context.Context, callerID, restaurantID, reviewID uuid.UUID) error
	ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewDTO, error)
	ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]AuthoredReviewDTO, error)
}

type service struct {
	reviewRepo     *Repository
	restaurantRepo *restaurants.Repository
	userRepo       *users.Repository
	aggregator     *ratings.Aggregator
	db             *db.Client
}

// NewService builds a review service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "review repo is required")
	}
	if params.RestaurantRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant repo is required")
	}
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.Aggregator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating aggregator is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		reviewRepo:     params.ReviewRepo,
		restaurantRepo: params.RestaurantRepo,
		userRepo:       params.UserRepo,
		aggregator:     params.Aggregator,
		db:             params.DB,
	}, nil
}

// Create posts a review and refreshes the listing aggregate atomically.
func (s *service) Create(ctx context.Context, authorID, restaurantID uuid.UUID, input CreateInput) (ReviewDTO, error) {
	if authorID == uuid.Nil {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	if err := validateRating(input.Rating); err != nil {
		return ReviewDTO{}, err
	}
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}

	exists, err := s.reviewRepo.ExistsForPair(ctx, authorID, restaurantID)
	if err != nil {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing review")
	}
	if exists {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "you have already reviewed this restaurant")
	}

	review := models.Review{
		UserID:       authorID,
		RestaurantID: restaurantID,
		Rating:       input.Rating,
		Comment:      input.Comment,
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(ctx, tx, &review); err != nil {
			return err
		}
		return s.aggregator.Recompute(ctx, tx, restaurantID)
	})
	if err != nil {
		// a concurrent insert can still trip the unique pair index
		if db.IsUniqueViolation(err) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "you have already reviewed this restaurant")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}

	return s.toDTOWithAuthor(ctx, review), nil
}

// Update patches the caller's own review and reruns the aggregator.
func (s *service) Update(ctx context.Context, callerID, restaurantID, reviewID uuid.UUID, patch Patch) (ReviewDTO, error) {
	review, err := s.loadOwnedReview(ctx, callerID, restaurantID, reviewID)
	if err != nil {
		return ReviewDTO{}, err
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return ReviewDTO{}, err
		}
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.reviewRepo.Update(ctx, tx, reviewID, patch); err != nil {
			return err
		}
		return s.aggregator.Recompute(ctx, tx, review.RestaurantID)
	})
	if err != nil {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update review")
	}

	updated, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload review")
	}
	return s.toDTOWithAuthor(ctx, updated), nil
}

// Delete removes the caller's own review and reruns the aggregator.
func (s *service) Delete(ctx context.Context, callerID, restaurantID, reviewID uuid.UUID) error {
	review, err := s.loadOwnedReview(ctx, callerID, restaurantID, reviewID)
	if err != nil {
		return err
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.reviewRepo.Delete(ctx, tx, reviewID); err != nil {
			return err
		}
		return s.aggregator.Recompute(ctx, tx, review.RestaurantID)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	return nil
}

// ListForRestaurant returns a listing's reviews. Public read.
func (s *service) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewDTO, error) {
	if _, err := s.restaurantRepo.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	items, err := s.reviewRepo.ListForRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}
	return items, nil
}

// ListForAuthor returns the caller's reviews annotated with listing names.
func (s *service) ListForAuthor(ctx context.Context, authorID uuid.UUID) ([]AuthoredReviewDTO, error) {
	if authorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	items, err := s.reviewRepo.ListForAuthor(ctx, authorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list authored reviews")
	}
	return items, nil
}

func (s *service) loadOwnedReview(ctx context.Context, callerID, restaurantID, reviewID uuid.UUID) (models.Review, error) {
	if callerID == uuid.Nil {
		return models.Review{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	if reviewID == uuid.Nil {
		return models.Review{}, pkgerrors.New(pkgerrors.CodeValidation, "review id is required")
	}
	review, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return models.Review{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load review")
	}
	if review.RestaurantID != restaurantID {
		return models.Review{}, pkgerrors.New(pkgerrors.CodeNotFound, "review not found for this restaurant")
	}
	if review.UserID != callerID {
		return models.Review{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the author can modify this review")
	}
	return review, nil
}

func (s *service) toDTOWithAuthor(ctx context.Context, review models.Review) ReviewDTO {
	authorName := "Anonymous"
	if author, err := s.userRepo.FindByID(ctx, review.UserID); err == nil {
		authorName = author.Name
	}
	return ReviewDTO{
		ID:           review.ID,
		UserID:       review.UserID,
		RestaurantID: review.RestaurantID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		AuthorName:   authorName,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	return nil
}
