package restaurants

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefinder/platefinder-backend/pkg/db"
	"github.com/platefinder/platefinder-backend/pkg/db/models"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
	"github.com/platefinder/platefinder-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *Repository, *db.Client) {
	t.Helper()
	conn := openTestDB(t)
	repo := NewRepository(conn)
	client := db.NewFromGorm(conn)
	svc, err := NewService(ServiceParams{Repo: repo, DB: client})
	require.NoError(t, err)
	return svc, repo, client
}

func TestCreateRecordsCallerAsOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	callerID := uuid.New()

	dto, err := svc.Create(ctx, callerID, CreateInput{Name: "  Golden Fork  ", City: strPtr("Austin")})
	require.NoError(t, err)
	assert.Equal(t, "Golden Fork", dto.Name)
	require.NotNil(t, dto.OwnerID)
	assert.Equal(t, callerID, *dto.OwnerID)
	assert.False(t, dto.IsClaimed)
	assert.Equal(t, 0.0, dto.AvgRating)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Name: "   "})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestSearchFilters(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	callerID := uuid.New()

	seed := []CreateInput{
		{Name: "Taco Haven", CuisineType: strPtr("Mexican"), City: strPtr("Austin"), ZipCode: strPtr("78701"), Description: strPtr("street tacos and margaritas")},
		{Name: "Pasta Palace", CuisineType: strPtr("Italian"), City: strPtr("Austin"), ZipCode: strPtr("78702"), Amenities: strPtr("patio, live music")},
		{Name: "Sushi Central", CuisineType: strPtr("Japanese"), City: strPtr("Dallas"), ZipCode: strPtr("75201")},
	}
	for _, input := range seed {
		_, err := svc.Create(ctx, callerID, input)
		require.NoError(t, err)
	}

	page, err := svc.Search(ctx, SearchFilters{}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Restaurants, 3)

	page, err = svc.Search(ctx, SearchFilters{City: "austin"}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = svc.Search(ctx, SearchFilters{Name: "taco"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Restaurants, 1)
	assert.Equal(t, "Taco Haven", page.Restaurants[0].Name)

	page, err = svc.Search(ctx, SearchFilters{ZipCode: "75201"}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	// keywords OR across description, amenities, cuisine
	page, err = svc.Search(ctx, SearchFilters{Keywords: "patio"}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Restaurants, 1)
	assert.Equal(t, "Pasta Palace", page.Restaurants[0].Name)

	page, err = svc.Search(ctx, SearchFilters{Keywords: "japanese"}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	// AND combination narrows
	page, err = svc.Search(ctx, SearchFilters{City: "Austin", Name: "sushi"}, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, page.Total)
}

func TestSearchPaginationWindow(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	callerID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, callerID, CreateInput{Name: "Spot " + uuid.NewString()[:8]})
		require.NoError(t, err)
	}

	page, err := svc.Search(ctx, SearchFilters{}, pagination.Params{Skip: 0, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Len(t, page.Restaurants, 2)

	// skip beyond the end yields an empty page, not an error
	page, err = svc.Search(ctx, SearchFilters{}, pagination.Params{Skip: 100, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Empty(t, page.Restaurants)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	dto, err := svc.Create(ctx, ownerID, CreateInput{Name: "Golden Fork"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, uuid.New(), dto.ID, Patch{Name: strPtr("Hijacked")})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())

	updated, err := svc.Update(ctx, ownerID, dto.ID, Patch{Name: strPtr("Golden Fork & Co"), City: strPtr("Austin")})
	require.NoError(t, err)
	assert.Equal(t, "Golden Fork & Co", updated.Name)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Austin", *updated.City)
}

func TestUpdatePatchLeavesAbsentFieldsUntouched(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	dto, err := svc.Create(ctx, ownerID, CreateInput{Name: "Golden Fork", City: strPtr("Austin")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, ownerID, dto.ID, Patch{Phone: strPtr("512-555-0100")})
	require.NoError(t, err)
	require.NotNil(t, updated.City)
	assert.Equal(t, "Austin", *updated.City)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "512-555-0100", *updated.Phone)
}

func TestDeleteRemovesDependents(t *testing.T) {
	svc, _, client := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	dto, err := svc.Create(ctx, ownerID, CreateInput{Name: "Golden Fork"})
	require.NoError(t, err)

	conn := client.DB()
	require.NoError(t, conn.Create(&models.Review{UserID: uuid.New(), RestaurantID: dto.ID, Rating: 4}).Error)
	require.NoError(t, conn.Create(&models.Favorite{UserID: uuid.New(), RestaurantID: dto.ID}).Error)

	require.NoError(t, svc.Delete(ctx, ownerID, dto.ID))

	var count int64
	require.NoError(t, conn.Model(&models.Review{}).Where("restaurant_id = ?", dto.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	require.NoError(t, conn.Model(&models.Favorite{}).Where("restaurant_id = ?", dto.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	_, err = svc.Get(ctx, dto.ID)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListMine(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ownerID := uuid.New()

	_, err := svc.Create(ctx, ownerID, CreateInput{Name: "Mine"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), CreateInput{Name: "Someone Else's"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}
