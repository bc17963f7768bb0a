package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the non-nil patch fields to the user row.
func (r *Repository) UpdateProfile(ctx context.Context, id uuid.UUID, patch ProfilePatch) error {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.AboutMe != nil {
		updates["about_me"] = *patch.AboutMe
	}
	if patch.City != nil {
		updates["city"] = *patch.City
	}
	if patch.State != nil {
		updates["state"] = *patch.State
	}
	if patch.Country != nil {
		updates["country"] = *patch.Country
	}
	if patch.Languages != nil {
		updates["languages"] = *patch.Languages
	}
	if patch.Gender != nil {
		updates["gender"] = *patch.Gender
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateProfilePic overwrites the stored picture URL.
func (r *Repository) UpdateProfilePic(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("profile_pic", url).Error
}

// FindPreferences loads the user's preferences row if one exists.
func (r *Repository) FindPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreference, error) {
	var prefs models.UserPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// UpsertPreferences creates the preferences row on first write and patches
// it afterwards.
func (r *Repository) UpsertPreferences(ctx context.Context, userID uuid.UUID, input PreferencesInput) (*models.UserPreference, error) {
	var prefs models.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		prefs = models.UserPreference{UserID: userID}
		applyPreferences(&prefs, input)
		if err := r.db.WithContext(ctx).Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}

	applyPreferences(&prefs, input)
	if err := r.db.WithContext(ctx).Save(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

func applyPreferences(prefs *models.UserPreference, input PreferencesInput) {
	if input.CuisinePreferences != nil {
		prefs.CuisinePreferences = input.CuisinePreferences
	}
	if input.PriceRange != nil {
		prefs.PriceRange = input.PriceRange
	}
	if input.PreferredLocation != nil {
		prefs.PreferredLocation = input.PreferredLocation
	}
	if input.SearchRadiusKm != nil {
		prefs.SearchRadiusKm = *input.SearchRadiusKm
	}
	if input.DietaryNeeds != nil {
		prefs.DietaryNeeds = input.DietaryNeeds
	}
	if input.Ambiance != nil {
		prefs.Ambiance = input.Ambiance
	}
	if input.SortPreference != nil {
		prefs.SortPreference = *input.SortPreference
	}
}
