package reviews

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a review repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review inside the caller's transaction.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return tx.WithContext(ctx).Create(review).Error
}

// FindByID loads a review or returns gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error
	return review, err
}

// ExistsForPair reports whether the author already reviewed the listing.
func (r *Repository) ExistsForPair(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&count).Error
	return count > 0, err
}

// Update applies the non-nil patch fields inside the caller's transaction.
func (r *Repository) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, patch Patch) error {
	updates := map[string]any{}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.Comment != nil {
		updates["comment"] = *patch.Comment
	}
	if len(updates) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a review inside the caller's transaction.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}

type reviewWithAuthorRecord struct {
	ID           uuid.UUID      `gorm:"column:id"`
	UserID       uuid.UUID      `gorm:"column:user_id"`
	RestaurantID uuid.UUID      `gorm:"column:restaurant_id"`
	Rating       int            `gorm:"column:rating"`
	Comment      sql.NullString `gorm:"column:comment"`
	AuthorName   sql.NullString `gorm:"column:author_name"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

// ListForRestaurant returns a listing's reviews with author display names,
// newest first.
func (r *Repository) ListForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewDTO, error) {
	var records []reviewWithAuthorRecord
	err := r.db.WithContext(ctx).
		Table("reviews rv").
		Select("rv.id, rv.user_id, rv.restaurant_id, rv.rating, rv.comment, rv.created_at, rv.updated_at, u.name AS author_name").
		Joins("LEFT JOIN users u ON u.id = rv.user_id").
		Where("rv.restaurant_id = ?", restaurantID).
		Order("rv.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]ReviewDTO, 0, len(records))
	for _, record := range records {
		items = append(items, record.toDTO())
	}
	return items, nil
}

type authoredReviewRecord struct {
	ID             uuid.UUID      `gorm:"column:id"`
	RestaurantID   uuid.UUID      `gorm:"column:restaurant_id"`
	RestaurantName sql.NullString `gorm:"column:restaurant_name"`
	Rating         int            `gorm:"column:rating"`
	Comment        sql.NullString `gorm:"column:comment"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
}

// ListForAuthor returns the author's reviews annotated with listing names,
// newest first.
func (r *Repository) ListForAuthor(ctx context.Context, userID uuid.UUID) ([]AuthoredReviewDTO, error) {
	var records []authoredReviewRecord
	err := r.db.WithContext(ctx).
		Table("reviews rv").
		Select("rv.id, rv.restaurant_id, rv.rating, rv.comment, rv.created_at, rs.name AS restaurant_name").
		Joins("LEFT JOIN restaurants rs ON rs.id = rv.restaurant_id").
		Where("rv.user_id = ?", userID).
		Order("rv.created_at DESC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]AuthoredReviewDTO, 0, len(records))
	for _, record := range records {
		items = append(items, AuthoredReviewDTO{
			ID:             record.ID,
			RestaurantID:   record.RestaurantID,
			RestaurantName: record.RestaurantName.String,
			Rating:         record.Rating,
			Comment:        nullStringPtr(record.Comment),
			CreatedAt:      record.CreatedAt,
		})
	}
	return items, nil
}

func (r reviewWithAuthorRecord) toDTO() ReviewDTO {
	authorName := r.AuthorName.String
	if !r.AuthorName.Valid {
		authorName = "Anonymous"
	}
	return ReviewDTO{
		ID:           r.ID,
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
		Rating:       r.Rating,
		Comment:      nullStringPtr(r.Comment),
		AuthorName:   authorName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
