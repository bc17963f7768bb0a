package claims

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/pkg/db"
	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
)

// ServiceParams groups dependencies for the claim workflow service.
type ServiceParams struct {
	ClaimRepo      *Repository
	RestaurantRepo *restaurants.Repository
	DB             *db.Client

	// AutoApprove immediately transitions new claims to approved. When
	// false, claims stay pending until an explicit decision.
	AutoApprove bool
}

// Service drives the claim state machine: pending -> approved | rejected.
type Service interface {
	Submit(ctx context.Context, callerID, restaurantID uuid.UUID) (ClaimDTO, error)
	Decide(ctx context.Context, claimID uuid.UUID, approve bool) (ClaimDTO, error)
	ListMine(ctx context.Context, callerID uuid.UUID) ([]ClaimDTO, error)
}

type service struct {
	claimRepo      *Repository
	restaurantRepo *restaurants.Repository
	db             *db.Client
	autoApprove    bool
}

// NewService builds a claim workflow service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ClaimRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "claim repo is required")
	}
	if params.RestaurantRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant repo is required")
	}
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{
		claimRepo:      params.ClaimRepo,
		restaurantRepo: params.RestaurantRepo,
		db:             params.DB,
		autoApprove:    params.AutoApprove,
	}, nil
}

// Submit creates a claim on an unclaimed (or self-claimed) listing. With
// auto-approval enabled the claim is approved and the listing's owner and
// is_claimed flag are set in the same transaction.
func (s *service) Submit(ctx context.Context, callerID, restaurantID uuid.UUID) (ClaimDTO, error) {
	if callerID == uuid.Nil {
		return ClaimDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	restaurant, err := s.loadRestaurant(ctx, restaurantID)
	if err != nil {
		return ClaimDTO{}, err
	}
	if restaurant.IsClaimed && restaurant.OwnerID != nil && *restaurant.OwnerID != callerID {
		return ClaimDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "restaurant is already claimed by another owner")
	}
	pending, err := s.claimRepo.HasPendingForPair(ctx, callerID, restaurantID)
	if err != nil {
		return ClaimDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check pending claims")
	}
	if pending {
		return ClaimDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "a pending claim for this restaurant already exists")
	}

	claim := models.RestaurantClaim{
		UserID:       callerID,
		RestaurantID: restaurantID,
		Status:       enums.ClaimStatusPending,
	}
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.claimRepo.Create(ctx, tx, &claim); err != nil {
			return err
		}
		if !s.autoApprove {
			return nil
		}
		return s.approveInTx(ctx, tx, &claim)
	})
	if err != nil {
		return ClaimDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit claim")
	}

	return toDTO(claim, restaurant.Name), nil
}

// Decide transitions a pending claim to approved or rejected. Approval sets
// the listing's owner and is_claimed atomically with the status change.
func (s *service) Decide(ctx context.Context, claimID uuid.UUID, approve bool) (ClaimDTO, error) {
	if claimID == uuid.Nil {
		return ClaimDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "claim id is required")
	}
	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClaimDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "claim not found")
		}
		return ClaimDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load claim")
	}
	if claim.Status.IsTerminal() {
		return ClaimDTO{}, pkgerrors.New(pkgerrors.CodeStateConflict, "claim has already been decided")
	}

	restaurant, err := s.loadRestaurant(ctx, claim.RestaurantID)
	if err != nil {
		return ClaimDTO{}, err
	}
	if approve && restaurant.IsClaimed && restaurant.OwnerID != nil && *restaurant.OwnerID != claim.UserID {
		return ClaimDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "restaurant is already claimed by another owner")
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if approve {
			return s.approveInTx(ctx, tx, &claim)
		}
		claim.Status = enums.ClaimStatusRejected
		return s.claimRepo.UpdateStatus(ctx, tx, claim.ID, enums.ClaimStatusRejected)
	})
	if err != nil {
		return ClaimDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decide claim")
	}

	return toDTO(claim, restaurant.Name), nil
}

// ListMine returns the caller's claims, newest first.
func (s *service) ListMine(ctx context.Context, callerID uuid.UUID) ([]ClaimDTO, error) {
	if callerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	rows, err := s.claimRepo.ListForUser(ctx, callerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list claims")
	}

	items := make([]ClaimDTO, 0, len(rows))
	for _, row := range rows {
		name := ""
		if restaurant, err := s.restaurantRepo.FindByID(ctx, row.RestaurantID); err == nil {
			name = restaurant.Name
		}
		items = append(items, toDTO(row, name))
	}
	return items, nil
}

// approveInTx flips the claim to approved and hands the listing to the
// claimant in the same transaction.
func (s *service) approveInTx(ctx context.Context, tx *gorm.DB, claim *models.RestaurantClaim) error {
	if err := s.claimRepo.UpdateStatus(ctx, tx, claim.ID, enums.ClaimStatusApproved); err != nil {
		return err
	}
	if err := tx.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ?", claim.RestaurantID).
		Updates(map[string]any{
			"owner_id":   claim.UserID,
			"is_claimed": true,
		}).Error; err != nil {
		return err
	}
	claim.Status = enums.ClaimStatusApproved
	return nil
}

func (s *service) loadRestaurant(ctx context.Context, restaurantID uuid.UUID) (models.Restaurant, error) {
	if restaurantID == uuid.Nil {
		return models.Restaurant{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	restaurant, err := s.restaurantRepo.FindByID(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Restaurant{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return models.Restaurant{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load restaurant")
	}
	return restaurant, nil
}
