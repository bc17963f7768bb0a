package reviews

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/internal/ratings"
	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/users"
	"github.com/platefinder/platefinder-backend/pkg/db"
	"github.com/platefinder/platefinder-backend/pkg/db/models"
	pkgerrors "github.com/platefinder/platefinder-backend/pkg/errors"
)

type testEnv struct {
	svc  Service
	conn *gorm.DB
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Review{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	svc, err := NewService(ServiceParams{
		ReviewRepo:     NewRepository(conn),
		RestaurantRepo: restaurants.NewRepository(conn),
		UserRepo:       users.NewRepository(conn),
		Aggregator:     ratings.NewAggregator(),
		DB:             db.NewFromGorm(conn),
	})
	require.NoError(t, err)
	return testEnv{svc: svc, conn: conn}
}

func (e testEnv) seedUser(t *testing.T, name string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: uuid.NewString() + "@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, e.conn.Create(&user).Error)
	return user
}

func (e testEnv) seedRestaurant(t *testing.T) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: "Golden Fork"}
	require.NoError(t, e.conn.Create(&restaurant).Error)
	return restaurant
}

func (e testEnv) aggregate(t *testing.T, restaurantID uuid.UUID) (float64, int) {
	t.Helper()
	var restaurant models.Restaurant
	require.NoError(t, e.conn.First(&restaurant, "id = ?", restaurantID).Error)
	return restaurant.AvgRating, restaurant.ReviewCount
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func TestReviewLifecycleKeepsAggregateConsistent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	bob := env.seedUser(t, "Bob")
	restaurant := env.seedRestaurant(t)

	first, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "Alice", first.AuthorName)

	avg, count := env.aggregate(t, restaurant.ID)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, count)

	_, err = env.svc.Create(ctx, bob.ID, restaurant.ID, CreateInput{Rating: 3})
	require.NoError(t, err)

	avg, count = env.aggregate(t, restaurant.ID)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 2, count)

	require.NoError(t, env.svc.Delete(ctx, alice.ID, restaurant.ID, first.ID))

	avg, count = env.aggregate(t, restaurant.ID)
	assert.Equal(t, 3.0, avg)
	assert.Equal(t, 1, count)
}

func TestDuplicateReviewIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	restaurant := env.seedRestaurant(t)

	_, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 4})
	require.NoError(t, err)

	_, err = env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 2})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestCreateValidatesRatingAndListing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	restaurant := env.seedRestaurant(t)

	var appErr *pkgerrors.Error

	_, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 0})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 6})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = env.svc.Create(ctx, alice.ID, uuid.New(), CreateInput{Rating: 4})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	mallory := env.seedUser(t, "Mallory")
	restaurant := env.seedRestaurant(t)

	review, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 2})
	require.NoError(t, err)

	_, err = env.svc.Update(ctx, mallory.ID, restaurant.ID, review.ID, Patch{Rating: intPtr(5)})
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())

	updated, err := env.svc.Update(ctx, alice.ID, restaurant.ID, review.ID, Patch{Rating: intPtr(4), Comment: strPtr("much better")})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	avg, count := env.aggregate(t, restaurant.ID)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 1, count)
}

func TestMutationsRequireMatchingRestaurant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	restaurant := env.seedRestaurant(t)
	other := env.seedRestaurant(t)

	review, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 5})
	require.NoError(t, err)

	var appErr *pkgerrors.Error

	_, err = env.svc.Update(ctx, alice.ID, other.ID, review.ID, Patch{Rating: intPtr(1)})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	err = env.svc.Delete(ctx, alice.ID, other.ID, review.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())

	avg, count := env.aggregate(t, restaurant.ID)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, count)
}

func TestDeleteMissingReviewIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "Alice")

	err := env.svc.Delete(context.Background(), alice.ID, uuid.New(), uuid.New())
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListForRestaurantIncludesAuthorNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	bob := env.seedUser(t, "Bob")
	restaurant := env.seedRestaurant(t)

	_, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 5, Comment: strPtr("superb")})
	require.NoError(t, err)
	_, err = env.svc.Create(ctx, bob.ID, restaurant.ID, CreateInput{Rating: 3})
	require.NoError(t, err)

	items, err := env.svc.ListForRestaurant(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	names := []string{items[0].AuthorName, items[1].AuthorName}
	assert.Contains(t, names, "Alice")
	assert.Contains(t, names, "Bob")
}

func TestListForRestaurantFallsBackToAnonymousAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	restaurant := env.seedRestaurant(t)

	_, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 4})
	require.NoError(t, err)

	require.NoError(t, env.conn.Delete(&models.User{}, "id = ?", alice.ID).Error)

	items, err := env.svc.ListForRestaurant(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Anonymous", items[0].AuthorName)
}

func TestListForAuthorAnnotatesRestaurantName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.seedUser(t, "Alice")
	restaurant := env.seedRestaurant(t)

	_, err := env.svc.Create(ctx, alice.ID, restaurant.ID, CreateInput{Rating: 4})
	require.NoError(t, err)

	items, err := env.svc.ListForAuthor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Golden Fork", items[0].RestaurantName)
}
