package restaurants

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/pagination"
)

// Repository encapsulates listing persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a listing repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new listing.
func (r *Repository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

// FindByID loads a listing or returns gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error
	return restaurant, err
}

// Search applies the AND-combined filters, counts the filtered set, then
// returns the skip/limit window ordered by newest first.
func (r *Repository) Search(ctx context.Context, filters SearchFilters, params pagination.Params) (pagination.Page[models.Restaurant], error) {
	params = pagination.Normalize(params)

	query := r.db.WithContext(ctx).Model(&models.Restaurant{})
	query = applyFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return pagination.Page[models.Restaurant]{}, err
	}

	var rows []models.Restaurant
	if err := query.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&rows).Error; err != nil {
		return pagination.Page[models.Restaurant]{}, err
	}

	return pagination.Page[models.Restaurant]{
		Items: rows,
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}, nil
}

// ListByOwner returns all listings owned by the given user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Restaurant, error) {
	var rows []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// Update applies the non-nil patch fields to the listing row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch Patch) error {
	updates := patchToUpdates(patch)
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes the listing and its dependent rows.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("restaurant_id = ?", id).Delete(&models.Review{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("restaurant_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("restaurant_id = ?", id).Delete(&models.RestaurantClaim{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Restaurant{}, "id = ?", id).Error
}

func applyFilters(query *gorm.DB, filters SearchFilters) *gorm.DB {
	// LOWER/LIKE keeps the match case-insensitive on both postgres and
	// the sqlite test dialect.
	if name := strings.TrimSpace(filters.Name); name != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", contains(name))
	}
	if cuisine := strings.TrimSpace(filters.Cuisine); cuisine != "" {
		query = query.Where("LOWER(cuisine_type) LIKE LOWER(?)", contains(cuisine))
	}
	if city := strings.TrimSpace(filters.City); city != "" {
		query = query.Where("LOWER(city) LIKE LOWER(?)", contains(city))
	}
	if zip := strings.TrimSpace(filters.ZipCode); zip != "" {
		query = query.Where("zip_code = ?", zip)
	}
	if tier := strings.TrimSpace(filters.PriceTier); tier != "" {
		query = query.Where("price_tier = ?", tier)
	}
	if keywords := strings.TrimSpace(filters.Keywords); keywords != "" {
		pattern := contains(keywords)
		query = query.Where(
			"LOWER(description) LIKE LOWER(?) OR LOWER(amenities) LIKE LOWER(?) OR LOWER(cuisine_type) LIKE LOWER(?)",
			pattern, pattern, pattern,
		)
	}
	return query
}

func contains(value string) string {
	return "%" + value + "%"
}

func patchToUpdates(patch Patch) map[string]any {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.CuisineType != nil {
		updates["cuisine_type"] = *patch.CuisineType
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Address != nil {
		updates["address"] = *patch.Address
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.State != nil {
		updates["state"] = *patch.State
	}
	if patch.ZipCode != nil {
		updates["zip_code"] = *patch.ZipCode
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Website != nil {
		updates["website"] = *patch.Website
	}
	if patch.Hours != nil {
		updates["hours"] = *patch.Hours
	}
	if patch.PriceTier != nil {
		updates["price_tier"] = *patch.PriceTier
	}
	if patch.Amenities != nil {
		updates["amenities"] = *patch.Amenities
	}
	return updates
}
