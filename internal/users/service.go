package users

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/storage/local"
)

// FileStore is the upload surface the profile picture flow needs.
type FileStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Delete(publicURL string) error
}

// ServiceParams groups dependencies for the user profile service.
type ServiceParams struct {
	Repo  *Repository
	Files FileStore
}

// Service exposes profile and preference management.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (UserDTO, error)
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader, filename string) (UserDTO, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (PreferencesDTO, error)
	UpsertPreferences(ctx context.Context, userID uuid.UUID, input PreferencesInput) (PreferencesDTO, error)
}

type service struct {
	repo  *Repository
	files FileStore
}

// NewService builds a user profile service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.Files == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file store is required")
	}
	return &service{repo: params.Repo, files: params.Files}, nil
}

// GetProfile returns the caller's identity record.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return ToUserDTO(user), nil
}

// UpdateProfile applies only the provided fields.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (UserDTO, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return UserDTO{}, err
	}
	if patch.Gender != nil && !patch.Gender.IsValid() {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender value")
	}
	if err := s.repo.UpdateProfile(ctx, userID, patch); err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	updated, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return ToUserDTO(updated), nil
}

// UpdateProfilePicture stores the new image, swaps the stored URL, and
// removes the previous file. The file write happens outside the row update,
// so a crash in between can orphan a file on disk.
func (s *service) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader, filename string) (UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}

	url, err := s.files.Save(file, filename)
	if err != nil {
		if errors.Is(err, local.ErrUnsupportedType) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported image type")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store profile picture")
	}

	prior := user.ProfilePic
	if err := s.repo.UpdateProfilePic(ctx, userID, url); err != nil {
		_ = s.files.Delete(url)
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile picture url")
	}
	if prior != nil && *prior != "" {
		_ = s.files.Delete(*prior)
	}

	updated, err := s.loadUser(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return ToUserDTO(updated), nil
}

// GetPreferences returns the stored preferences, or defaults when the user
// has never saved any.
func (s *service) GetPreferences(ctx context.Context, userID uuid.UUID) (PreferencesDTO, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return PreferencesDTO{}, err
	}
	prefs, err := s.repo.FindPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PreferencesDTO{
				UserID:         userID,
				SearchRadiusKm: 10,
				SortPreference: enums.SortPreferenceRating,
			}, nil
		}
		return PreferencesDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load preferences")
	}
	return toPreferencesDTO(prefs), nil
}

// UpsertPreferences creates or patches the preferences row.
func (s *service) UpsertPreferences(ctx context.Context, userID uuid.UUID, input PreferencesInput) (PreferencesDTO, error) {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return PreferencesDTO{}, err
	}
	if input.PriceRange != nil && !input.PriceRange.IsValid() {
		return PreferencesDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid price range")
	}
	if input.SortPreference != nil && !input.SortPreference.IsValid() {
		return PreferencesDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort preference")
	}
	if input.SearchRadiusKm != nil && *input.SearchRadiusKm <= 0 {
		return PreferencesDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "search radius must be positive")
	}
	prefs, err := s.repo.UpsertPreferences(ctx, userID, input)
	if err != nil {
		return PreferencesDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save preferences")
	}
	return toPreferencesDTO(prefs), nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "caller is required")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
