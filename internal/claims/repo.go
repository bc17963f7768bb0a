package claims

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// Repository encapsulates claim persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a claims repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a claim inside the caller's transaction.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, claim *models.RestaurantClaim) error {
	return tx.WithContext(ctx).Create(claim).Error
}

// FindByID loads a claim or returns gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.RestaurantClaim, error) {
	var claim models.RestaurantClaim
	err := r.db.WithContext(ctx).First(&claim, "id = ?", id).Error
	return claim, err
}

// HasPendingForPair reports whether the user already has a pending claim on
// the listing.
func (r *Repository) HasPendingForPair(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RestaurantClaim{}).
		Where("user_id = ? AND restaurant_id = ? AND status = ?", userID, restaurantID, enums.ClaimStatusPending).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus transitions the claim inside the caller's transaction.
func (r *Repository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status enums.ClaimStatus) error {
	return tx.WithContext(ctx).
		Model(&models.RestaurantClaim{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

// ListForUser returns the user's claims, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.RestaurantClaim, error) {
	var rows []models.RestaurantClaim
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
