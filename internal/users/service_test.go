package users

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/config"
	"github.com/platefinder/platefinder-backend/pkg/db/models"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/storage/local"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.UserPreference{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	files, err := local.New(config.UploadsConfig{Dir: t.TempDir(), PublicPath: "/uploads", MaxUploadMB: 1})
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{Repo: repo, Files: files})
	require.NoError(t, err)
	return svc, repo
}

func seedUser(t *testing.T, repo *Repository) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Name:         "Dana Diner",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
	return user
}

func strPtr(v string) *string {
	return &v
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo)

	dto, err := svc.UpdateProfile(ctx, user.ID, ProfilePatch{City: strPtr("Austin")})
	require.NoError(t, err)
	require.NotNil(t, dto.City)
	assert.Equal(t, "Austin", *dto.City)
	assert.Equal(t, "Dana Diner", dto.Name)

	dto, err = svc.UpdateProfile(ctx, user.ID, ProfilePatch{Name: strPtr("Dana D.")})
	require.NoError(t, err)
	assert.Equal(t, "Dana D.", dto.Name)
	require.NotNil(t, dto.City)
	assert.Equal(t, "Austin", *dto.City)
}

func TestUpdateProfileRejectsInvalidGender(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo)

	bad := enums.Gender("robot")
	_, err := svc.UpdateProfile(context.Background(), user.ID, ProfilePatch{Gender: &bad})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateProfilePictureReplacesPriorFile(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo)

	first, err := svc.UpdateProfilePicture(ctx, user.ID, strings.NewReader("first"), "one.png")
	require.NoError(t, err)
	require.NotNil(t, first.ProfilePic)

	second, err := svc.UpdateProfilePicture(ctx, user.ID, strings.NewReader("second"), "two.jpg")
	require.NoError(t, err)
	require.NotNil(t, second.ProfilePic)
	assert.NotEqual(t, *first.ProfilePic, *second.ProfilePic)
}

func TestUpdateProfilePictureRejectsUnsupportedType(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo)

	_, err := svc.UpdateProfilePicture(context.Background(), user.ID, strings.NewReader("x"), "malware.exe")
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestPreferencesDefaultsBeforeFirstSave(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo)

	prefs, err := svc.GetPreferences(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, prefs.SearchRadiusKm)
	assert.Equal(t, enums.SortPreferenceRating, prefs.SortPreference)
}

func TestUpsertPreferencesCreatesThenPatches(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, repo)

	radius := 25
	prefs, err := svc.UpsertPreferences(ctx, user.ID, PreferencesInput{
		CuisinePreferences: strPtr("thai, mexican"),
		SearchRadiusKm:     &radius,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, prefs.SearchRadiusKm)
	require.NotNil(t, prefs.CuisinePreferences)

	sortPref := enums.SortPreferenceDistance
	prefs, err = svc.UpsertPreferences(ctx, user.ID, PreferencesInput{SortPreference: &sortPref})
	require.NoError(t, err)
	assert.Equal(t, enums.SortPreferenceDistance, prefs.SortPreference)
	// earlier fields survive the second upsert
	assert.Equal(t, 25, prefs.SearchRadiusKm)
	require.NotNil(t, prefs.CuisinePreferences)
	assert.Equal(t, "thai, mexican", *prefs.CuisinePreferences)
}

func TestUpsertPreferencesRejectsNonPositiveRadius(t *testing.T) {
	svc, repo := newTestService(t)
	user := seedUser(t, repo)

	radius := 0
	_, err := svc.UpsertPreferences(context.Background(), user.ID, PreferencesInput{SearchRadiusKm: &radius})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetProfile(context.Background(), uuid.New())
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
