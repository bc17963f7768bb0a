package restaurants

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db"
	"github.com/platefinder/platefinder-backend/pkg/db/models"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/pagination"
)

// ServiceParams groups dependencies for the listing service.
type ServiceParams struct {
	Repo *Repository
	DB   *db.Client
}

// Service exposes business rules for listing management.
type Service interface {
	Create(ctx context.Context, callerID uuid.UUID, input CreateInput) (RestaurantDTO, error)
	Get(ctx context.Context, id uuid.UUID) (RestaurantDTO, error)
	Search(ctx context.Context, filters SearchFilters, params pagination.Params) (SearchPageDTO, error)
	Update(ctx context.Context, callerID, id uuid.UUID, patch Patch) (RestaurantDTO, error)
	Delete(ctx context.Context, callerID, id uuid.UUID) error
	ListMine(ctx context.Context, callerID uuid.UUID) ([]RestaurantDTO, error)
}

type service struct {
	repo *Repository
	db   *db.Client
}

// NewService builds a listing service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{repo: params.Repo, db: params.DB}, nil
}

// Create inserts a listing with the caller recorded as its creator.
func (s *service) Create(ctx context.Context, callerID uuid.UUID, input CreateInput) (RestaurantDTO, error) {
	if callerID == uuid.Nil {
		return RestaurantDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return RestaurantDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant name is required")
	}

	restaurant := models.Restaurant{
		Name:        name,
		CuisineType: input.CuisineType,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		ZipCode:     input.ZipCode,
		Phone:       input.Phone,
		Email:       input.Email,
		Website:     input.Website,
		Hours:       input.Hours,
		PriceTier:   input.PriceTier,
		Amenities:   input.Amenities,
		OwnerID:     &callerID,
	}
	if err := s.repo.Create(ctx, &restaurant); err != nil {
		return RestaurantDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create restaurant")
	}
	return ToDTO(restaurant), nil
}

// Get returns a single listing.
func (s *service) Get(ctx context.Context, id uuid.UUID) (RestaurantDTO, error) {
	restaurant, err := s.loadRestaurant(ctx, id)
	if err != nil {
		return RestaurantDTO{}, err
	}
	return ToDTO(restaurant), nil
}

// Search returns the filtered, paginated listing page.
func (s *service) Search(ctx context.Context, filters SearchFilters, params pagination.Params) (SearchPageDTO, error) {
	page, err := s.repo.Search(ctx, filters, params)
	if err != nil {
		return SearchPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search restaurants")
	}
	return toPageDTO(page), nil
}

// Update applies a partial update after an ownership check.
func (s *service) Update(ctx context.Context, callerID, id uuid.UUID, patch Patch) (RestaurantDTO, error) {
	restaurant, err := s.loadRestaurant(ctx, id)
	if err != nil {
		return RestaurantDTO{}, err
	}
	if err := requireOwnership(callerID, restaurant); err != nil {
		return RestaurantDTO{}, err
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return RestaurantDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update restaurant")
	}
	updated, err := s.loadRestaurant(ctx, id)
	if err != nil {
		return RestaurantDTO{}, err
	}
	return ToDTO(updated), nil
}

// Delete removes the listing and its reviews, favorites, and claims in one
// transaction.
func (s *service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	restaurant, err := s.loadRestaurant(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnership(callerID, restaurant); err != nil {
		return err
	}
	if err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete restaurant")
	}
	return nil
}

// ListMine returns the caller's own listings.
func (s *service) ListMine(ctx context.Context, callerID uuid.UUID) ([]RestaurantDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	rows, err := s.repo.ListByOwner(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned restaurants")
	}
	items := make([]RestaurantDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, ToDTO(row))
	}
	return items, nil
}

func (s *service) loadRestaurant(ctx context.Context, id uuid.UUID) (models.Restaurant, error) {
	if id == uuid.Nil {
		return models.Restaurant{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	restaurant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Restaurant{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return models.Restaurant{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}

func requireOwnership(callerID uuid.UUID, restaurant models.Restaurant) error {
	if callerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	if restaurant.OwnerID == nil || *restaurant.OwnerID != callerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "caller does not own this restaurant")
	}
	return nil
}
