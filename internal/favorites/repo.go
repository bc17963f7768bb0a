package favorites

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
)

// Repository encapsulates favorite persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add inserts the (user, restaurant) pair.
func (r *Repository) Add(ctx context.Context, userID, restaurantID uuid.UUID) (*models.Favorite, error) {
	favorite := models.Favorite{UserID: userID, RestaurantID: restaurantID}
	if err := r.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Remove deletes the pair and reports whether a row existed.
func (r *Repository) Remove(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the pair is already saved.
func (r *Repository) Exists(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&count).Error
	return count > 0, err
}

// ListForUser returns the user's favorite rows, most recently saved first,
// plus the referenced restaurants keyed by id.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, map[uuid.UUID]models.Restaurant, error) {
	var rows []models.Favorite
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return rows, map[uuid.UUID]models.Restaurant{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.RestaurantID)
	}

	var listings []models.Restaurant
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listings).Error; err != nil {
		return nil, nil, err
	}

	byID := make(map[uuid.UUID]models.Restaurant, len(listings))
	for _, listing := range listings {
		byID[listing.ID] = listing
	}
	return rows, byID, nil
}
