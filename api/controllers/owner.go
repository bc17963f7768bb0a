package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/api/responses"
	"github.com/platefinder/platefinder-backend/api/validators"
	"github.com/platefinder/platefinder-backend/internal/claims"
	"github.com/platefinder/platefinder-backend/internal/dashboard"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/logger"
)

type submitClaimPayload struct {
	RestaurantID string `json:"restaurant_id" validate:"required"`
}

type claimDecisionPayload struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

// OwnerClaimSubmit files an ownership claim on a listing.
func OwnerClaimSubmit(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claim service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload submitClaimPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurantID, err := uuid.Parse(payload.RestaurantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid restaurant id"))
			return
		}

		claim, err := svc.Submit(ctx, callerID, restaurantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, claim)
	}
}

// OwnerClaimList returns the caller's claims, newest first.
func OwnerClaimList(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claim service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListMine(ctx, callerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OwnerClaimDecision approves or rejects a pending claim.
func OwnerClaimDecision(svc claims.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "claim service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "claimId"))
		claimID, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid claim id"))
			return
		}

		var payload claimDecisionPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		claim, err := svc.Decide(ctx, claimID, payload.Action == "approve")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, claim)
	}
}

// OwnerDashboard summarizes a listing's review sentiment for its owner.
func OwnerDashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		callerID, err := callerFromContext(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		restaurantID, err := restaurantIDParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		board, err := svc.ForRestaurant(ctx, callerID, restaurantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, board)
	}
}
