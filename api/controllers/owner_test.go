package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/api/middleware"
	"github.com/platefinder/platefinder-backend/internal/claims"
	"github.com/platefinder/platefinder-backend/pkg/enums"
)

type stubClaimService struct {
	claim claims.ClaimDTO
	err   error

	gotApprove bool
}

func (s *stubClaimService) Submit(ctx context.Context, callerID, restaurantID uuid.UUID) (claims.ClaimDTO, error) {
	return s.claim, s.err
}

func (s *stubClaimService) Decide(ctx context.Context, claimID uuid.UUID, approve bool) (claims.ClaimDTO, error) {
	s.gotApprove = approve
	return s.claim, s.err
}

func (s *stubClaimService) ListMine(ctx context.Context, callerID uuid.UUID) ([]claims.ClaimDTO, error) {
	return []claims.ClaimDTO{s.claim}, s.err
}

func TestOwnerClaimSubmitSuccess(t *testing.T) {
	claim := claims.ClaimDTO{ID: uuid.New(), Status: enums.ClaimStatusApproved}
	handler := OwnerClaimSubmit(&stubClaimService{claim: claim}, nil)

	body := fmt.Sprintf(`{"restaurant_id":%q}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/owner/claim", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data claims.ClaimDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != enums.ClaimStatusApproved {
		t.Fatalf("expected approved claim got %+v", envelope.Data)
	}
}

func TestOwnerClaimDecisionRejectsUnknownAction(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/owner/claims/{claimId}/decision", OwnerClaimDecision(&stubClaimService{}, nil))

	req := httptest.NewRequest(http.MethodPost, "/owner/claims/"+uuid.NewString()+"/decision", bytes.NewReader([]byte(`{"action":"maybe"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestOwnerClaimDecisionMapsAction(t *testing.T) {
	svc := &stubClaimService{claim: claims.ClaimDTO{ID: uuid.New(), Status: enums.ClaimStatusRejected}}

	r := chi.NewRouter()
	r.Post("/owner/claims/{claimId}/decision", OwnerClaimDecision(svc, nil))

	req := httptest.NewRequest(http.MethodPost, "/owner/claims/"+uuid.NewString()+"/decision", bytes.NewReader([]byte(`{"action":"reject"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotApprove {
		t.Fatal("expected reject to map to approve=false")
	}
}
