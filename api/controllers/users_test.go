package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"

	"github.com/platefinder/platefinder-backend/api/middleware"
	"github.com/platefinder/platefinder-backend/internal/users"
)

type stubUserService struct {
	profile users.UserDTO
	err     error

	gotFilename string
}

func (s *stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (users.UserDTO, error) {
	return s.profile, s.err
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch users.ProfilePatch) (users.UserDTO, error) {
	return s.profile, s.err
}

func (s *stubUserService) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader, filename string) (users.UserDTO, error) {
	s.gotFilename = filename
	return s.profile, s.err
}

func (s *stubUserService) GetPreferences(ctx context.Context, userID uuid.UUID) (users.PreferencesDTO, error) {
	return users.PreferencesDTO{}, s.err
}

func (s *stubUserService) UpsertPreferences(ctx context.Context, userID uuid.UUID, input users.PreferencesInput) (users.PreferencesDTO, error) {
	return users.PreferencesDTO{}, s.err
}

func multipartPicture(t *testing.T, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create multipart part: %v", err)
	}
	if _, err := part.Write([]byte("not-a-real-image")); err != nil {
		t.Fatalf("write multipart part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestUserProfilePictureRejectsNonImageContentType(t *testing.T) {
	svc := &stubUserService{}
	handler := UserProfilePicture(svc, nil)

	body, contentType := multipartPicture(t, "resume.jpg", "application/pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.gotFilename != "" {
		t.Fatalf("expected upload to be rejected before reaching the service, got %q", svc.gotFilename)
	}
}

func TestUserProfilePictureAcceptsImage(t *testing.T) {
	svc := &stubUserService{profile: users.UserDTO{ID: uuid.New(), Name: "Dana"}}
	handler := UserProfilePicture(svc, nil)

	body, contentType := multipartPicture(t, "avatar.png", "image/png")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/users/profile/picture", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotFilename != "avatar.png" {
		t.Fatalf("expected filename forwarded to service, got %q", svc.gotFilename)
	}
}
