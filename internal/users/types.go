package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

// CreateUserDTO carries everything needed to insert an identity row.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Role         enums.UserRole
}

// ToModel maps the DTO onto the persistence model.
func (d CreateUserDTO) ToModel() *models.User {
	role := d.Role
	if role == "" {
		role = enums.UserRoleUser
	}
	return &models.User{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         role,
		IsActive:     true,
	}
}

// ProfilePatch carries a partial profile update. Nil fields are untouched.
type ProfilePatch struct {
	Name      *string
	Phone     *string
	AboutMe   *string
	City      *string
	State     *string
	Country   *string
	Languages *string
	Gender    *enums.Gender
}

// PreferencesInput carries the upserted dining preferences.
type PreferencesInput struct {
	CuisinePreferences *string
	PriceRange         *enums.PriceTier
	PreferredLocation  *string
	SearchRadiusKm     *int
	DietaryNeeds       *string
	Ambiance           *string
	SortPreference     *enums.SortPreference
}

// UserDTO is the API shape of an identity.
type UserDTO struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Phone      *string        `json:"phone,omitempty"`
	AboutMe    *string        `json:"about_me,omitempty"`
	City       *string        `json:"city,omitempty"`
	State      *string        `json:"state,omitempty"`
	Country    *string        `json:"country,omitempty"`
	Languages  *string        `json:"languages,omitempty"`
	Gender     *enums.Gender  `json:"gender,omitempty"`
	ProfilePic *string        `json:"profile_pic,omitempty"`
	Role       enums.UserRole `json:"role"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PreferencesDTO is the API shape of a preferences row.
type PreferencesDTO struct {
	UserID             uuid.UUID            `json:"user_id"`
	CuisinePreferences *string              `json:"cuisine_preferences,omitempty"`
	PriceRange         *enums.PriceTier     `json:"price_range,omitempty"`
	PreferredLocation  *string              `json:"preferred_location,omitempty"`
	SearchRadiusKm     int                  `json:"search_radius_km"`
	DietaryNeeds       *string              `json:"dietary_needs,omitempty"`
	Ambiance           *string              `json:"ambiance,omitempty"`
	SortPreference     enums.SortPreference `json:"sort_preference"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// ToUserDTO maps the persistence model to the API shape.
func ToUserDTO(m *models.User) UserDTO {
	return UserDTO{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		AboutMe:    m.AboutMe,
		City:       m.City,
		State:      m.State,
		Country:    m.Country,
		Languages:  m.Languages,
		Gender:     m.Gender,
		ProfilePic: m.ProfilePic,
		Role:       m.Role,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

func toPreferencesDTO(m *models.UserPreference) PreferencesDTO {
	return PreferencesDTO{
		UserID:             m.UserID,
		CuisinePreferences: m.CuisinePreferences,
		PriceRange:         m.PriceRange,
		PreferredLocation:  m.PreferredLocation,
		SearchRadiusKm:     m.SearchRadiusKm,
		DietaryNeeds:       m.DietaryNeeds,
		Ambiance:           m.Ambiance,
		SortPreference:     m.SortPreference,
		UpdatedAt:          m.UpdatedAt,
	}
}
