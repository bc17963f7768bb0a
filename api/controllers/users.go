package controllers

import (
	"net/http"

	"github.com/platefinder/platefinder-backend/api/responses"
	"github.com/platefinder/platefinder-backend/api/validators"
	"github.com/platefinder/platefinder-backend/internal/users"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/logger"
)

const maxMultipartMemory = 8 << 20

var allowedPictureTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type updateProfilePayload struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=120"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	AboutMe   *string `json:"about_me" validate:"omitempty,max=2000"`
	City      *string `json:"city" validate:"omitempty,max=120"`
	State     *string `json:"state" validate:"omitempty,max=120"`
	Country   *string `json:"country" validate:"omitempty,max=120"`
	Languages *string `json:"languages" validate:"omitempty,max=255"`
	Gender    *string `json:"gender" validate:"omitempty"`
}

type preferencesPayload struct {
	CuisinePreferences *string `json:"cuisine_preferences" validate:"omitempty,max=500"`
	PriceRange         *string `json:"price_range" validate:"omitempty"`
	PreferredLocation  *string `json:"preferred_location" validate:"omitempty,max=255"`
	SearchRadiusKm     *int    `json:"search_radius_km" validate:"omitempty,min=1,max=500"`
	DietaryNeeds       *string `json:"dietary_needs" validate:"omitempty,max=500"`
	Ambiance           *string `json:"ambiance" validate:"omitempty,max=255"`
	SortPreference     *string `json:"sort_preference" validate:"omitempty"`
}

// UserProfile returns the caller's full profile.
func UserProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		profile, err := svc.GetProfile(ctx, callerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// UserProfileUpdate applies a partial profile update.
func UserProfileUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		patch := users.ProfilePatch{
			Name:      payload.Name,
			Phone:     payload.Phone,
			AboutMe:   payload.AboutMe,
			City:      payload.City,
			State:     payload.State,
			Country:   payload.Country,
			Languages: payload.Languages,
		}
		if payload.Gender != nil {
			gender, err := enums.ParseGender(*payload.Gender)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid gender"))
				return
			}
			patch.Gender = &gender
		}

		profile, err := svc.UpdateProfile(ctx, callerID, patch)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// UserProfilePicture accepts a multipart image upload and swaps the
// caller's stored picture.
func UserProfilePicture(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file field is required"))
			return
		}
		defer file.Close()

		if contentType := header.Header.Get("Content-Type"); !allowedPictureTypes[contentType] {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unsupported image type "+contentType))
			return
		}

		profile, err := svc.UpdateProfilePicture(ctx, callerID, file, header.Filename)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

// UserPreferences returns the caller's dining preferences, falling back to
// defaults when none were saved yet.
func UserPreferences(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		prefs, err := svc.GetPreferences(ctx, callerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}

// UserPreferencesUpdate upserts the caller's dining preferences.
func UserPreferencesUpdate(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload preferencesPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := users.PreferencesInput{
			CuisinePreferences: payload.CuisinePreferences,
			PreferredLocation:  payload.PreferredLocation,
			SearchRadiusKm:     payload.SearchRadiusKm,
			DietaryNeeds:       payload.DietaryNeeds,
			Ambiance:           payload.Ambiance,
		}
		if payload.PriceRange != nil {
			tier, err := enums.ParsePriceTier(*payload.PriceRange)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price range"))
				return
			}
			input.PriceRange = &tier
		}
		if payload.SortPreference != nil {
			sort, err := enums.ParseSortPreference(*payload.SortPreference)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort preference"))
				return
			}
			input.SortPreference = &sort
		}

		prefs, err := svc.UpsertPreferences(ctx, callerID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, prefs)
	}
}
