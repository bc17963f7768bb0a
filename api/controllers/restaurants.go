package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/api/responses"
	"github.com/platefinder/platefinder-backend/api/validators"
	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/logger"
)

type restaurantPayload struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	CuisineType *string `json:"cuisine_type" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Address     *string `json:"address" validate:"omitempty,max=255"`
	City        *string `json:"city" validate:"omitempty,max=120"`
	State       *string `json:"state" validate:"omitempty,max=120"`
	ZipCode     *string `json:"zip_code" validate:"omitempty,max=20"`
	Phone       *string `json:"phone" validate:"omitempty,max=32"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Website     *string `json:"website" validate:"omitempty,max=255"`
	Hours       *string `json:"hours" validate:"omitempty,max=500"`
	PriceTier   *string `json:"price_tier" validate:"omitempty"`
	Amenities   *string `json:"amenities" validate:"omitempty,max=1000"`
}

func (p restaurantPayload) priceTier() (*enums.PriceTier, error) {
	if p.PriceTier == nil {
		return nil, nil
	}
	tier, err := enums.ParsePriceTier(*p.PriceTier)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price tier")
	}
	return &tier, nil
}

// RestaurantCreate adds a listing with the caller as its creator.
func RestaurantCreate(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload restaurantPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "name is required"))
			return
		}

		tier, err := payload.priceTier()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := restaurants.CreateInput{
			Name:        *payload.Name,
			CuisineType: payload.CuisineType,
			Description: payload.Description,
			Address:     payload.Address,
			City:        payload.City,
			State:       payload.State,
			ZipCode:     payload.ZipCode,
			Phone:       payload.Phone,
			Email:       payload.Email,
			Website:     payload.Website,
			Hours:       payload.Hours,
			PriceTier:   tier,
			Amenities:   payload.Amenities,
		}

		listing, err := svc.Create(ctx, callerID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, listing)
	}
}

// RestaurantDetail returns one listing by id.
func RestaurantDetail(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		id, err := restaurantIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listing, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

// RestaurantSearch returns a filtered, paginated page of listings.
func RestaurantSearch(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := r.URL.Query()
		filters := restaurants.SearchFilters{
			Name:      strings.TrimSpace(query.Get("name")),
			Cuisine:   strings.TrimSpace(query.Get("cuisine")),
			City:      strings.TrimSpace(query.Get("city")),
			ZipCode:   strings.TrimSpace(query.Get("zip_code")),
			PriceTier: strings.TrimSpace(query.Get("price_tier")),
			Keywords:  strings.TrimSpace(query.Get("keywords")),
		}

		page, err := svc.Search(ctx, filters, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// RestaurantUpdate patches a listing the caller controls.
func RestaurantUpdate(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := restaurantIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload restaurantPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		tier, err := payload.priceTier()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		patch := restaurants.Patch{
			Name:        payload.Name,
			CuisineType: payload.CuisineType,
			Description: payload.Description,
			Address:     payload.Address,
			City:        payload.City,
			State:       payload.State,
			ZipCode:     payload.ZipCode,
			Phone:       payload.Phone,
			Email:       payload.Email,
			Website:     payload.Website,
			Hours:       payload.Hours,
			PriceTier:   tier,
			Amenities:   payload.Amenities,
		}

		listing, err := svc.Update(ctx, callerID, id, patch)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

// RestaurantDelete removes a listing the caller controls.
func RestaurantDelete(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := restaurantIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, callerID, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// RestaurantMyListings returns listings created by or assigned to the caller.
func RestaurantMyListings(svc restaurants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "restaurant service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listings, err := svc.ListMine(ctx, callerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, listings)
	}
}

func restaurantIDParam(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "restaurantId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id")
	}
	return id, nil
}
