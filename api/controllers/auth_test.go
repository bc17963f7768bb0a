package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/internal/auth"
	"github.com/platefinder/platefinder-backend/internal/users"
)

type stubAuthService struct {
	token *auth.TokenResponse
	user  users.UserDTO
	err   error
}

func (s stubAuthService) Signup(ctx context.Context, req auth.SignupRequest) (*auth.TokenResponse, error) {
	return s.token, s.err
}

func (s stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.TokenResponse, error) {
	return s.token, s.err
}

func (s stubAuthService) Me(ctx context.Context, userID uuid.UUID) (users.UserDTO, error) {
	return s.user, s.err
}

func TestAuthSignupSuccess(t *testing.T) {
	userID := uuid.New()
	handler := AuthSignup(stubAuthService{token: &auth.TokenResponse{
		AccessToken: "access-token",
		TokenType:   "bearer",
		ExpiresIn:   3600,
		User:        users.UserDTO{ID: userID, Name: "Dana", Email: "dana@example.com"},
	}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader([]byte(`{"name":"Dana","email":"dana@example.com","password":"secret1"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			AccessToken string        `json:"access_token"`
			TokenType   string        `json:"token_type"`
			User        users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccessToken != "access-token" {
		t.Fatalf("expected access token in payload got %+v", envelope.Data)
	}
	if envelope.Data.User.ID != userID {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAuthLoginRejectsInvalidBody(t *testing.T) {
	handler := AuthLogin(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(`{"email":"not-an-email","password":""}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR got %s", envelope.Error.Code)
	}
}

func TestAuthMeRequiresCaller(t *testing.T) {
	handler := AuthMe(stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
