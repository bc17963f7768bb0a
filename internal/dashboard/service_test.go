package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/reviews"
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
		RestaurantRepo: restaurants.NewRepository(conn),
		ReviewRepo:     reviews.NewRepository(conn),
	})
	require.NoError(t, err)
	return testEnv{svc: svc, conn: conn}
}

func (e testEnv) seedOwnedRestaurant(t *testing.T, ownerID uuid.UUID) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{Name: "Golden Fork", OwnerID: &ownerID, IsClaimed: true}
	require.NoError(t, e.conn.Create(&restaurant).Error)
	return restaurant
}

func (e testEnv) seedReviewAt(t *testing.T, restaurantID uuid.UUID, rating int, at time.Time) {
	t.Helper()
	user := models.User{Name: "Reviewer", Email: uuid.NewString() + "@example.com", PasswordHash: "x", IsActive: true}
	require.NoError(t, e.conn.Create(&user).Error)
	review := models.Review{UserID: user.ID, RestaurantID: restaurantID, Rating: rating}
	require.NoError(t, e.conn.Create(&review).Error)
	require.NoError(t, e.conn.Model(&models.Review{}).Where("id = ?", review.ID).UpdateColumn("created_at", at).Error)
}

func TestDashboardDistributionAndSentiment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ownerID := uuid.New()
	restaurant := env.seedOwnedRestaurant(t, ownerID)

	base := time.Now().Add(-time.Hour)
	for i, rating := range []int{5, 5, 4, 2, 1} {
		env.seedReviewAt(t, restaurant.ID, rating, base.Add(time.Duration(i)*time.Minute))
	}

	dto, err := env.svc.ForRestaurant(ctx, ownerID, restaurant.ID)
	require.NoError(t, err)

	assert.Equal(t, map[int]int{1: 1, 2: 1, 3: 0, 4: 1, 5: 2}, dto.Distribution)
	assert.Equal(t, 3, dto.Sentiment.PositiveCount)
	assert.Equal(t, 0, dto.Sentiment.NeutralCount)
	assert.Equal(t, 2, dto.Sentiment.NegativeCount)
	assert.Equal(t, 60.0, dto.Sentiment.PositivePct)
	assert.Equal(t, 0.0, dto.Sentiment.NeutralPct)
	assert.Equal(t, 40.0, dto.Sentiment.NegativePct)
}

func TestDashboardRecentReviewsCappedAtFive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ownerID := uuid.New()
	restaurant := env.seedOwnedRestaurant(t, ownerID)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		env.seedReviewAt(t, restaurant.ID, 4, base.Add(time.Duration(i)*time.Minute))
	}

	dto, err := env.svc.ForRestaurant(ctx, ownerID, restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, dto.RecentReviews, 5)

	// newest first
	for i := 1; i < len(dto.RecentReviews); i++ {
		assert.False(t, dto.RecentReviews[i].CreatedAt.After(dto.RecentReviews[i-1].CreatedAt))
	}
}

func TestDashboardEmptyListingHasZeroPercentages(t *testing.T) {
	env := newTestEnv(t)
	ownerID := uuid.New()
	restaurant := env.seedOwnedRestaurant(t, ownerID)

	dto, err := env.svc.ForRestaurant(context.Background(), ownerID, restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, dto.Sentiment.PositivePct)
	assert.Equal(t, 0.0, dto.Sentiment.NeutralPct)
	assert.Equal(t, 0.0, dto.Sentiment.NegativePct)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, dto.Distribution)
}

func TestPercentageRoundsHalfToEven(t *testing.T) {
	// 1/16 = 6.25%, which rounds to 6.2 under half-even.
	assert.InDelta(t, 6.2, percentage(1, 16), 0.0001)
	// 3/16 = 18.75%, which rounds up to 18.8.
	assert.InDelta(t, 18.8, percentage(3, 16), 0.0001)
	assert.Equal(t, 0.0, percentage(0, 0))
}

func TestDashboardRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	restaurant := env.seedOwnedRestaurant(t, uuid.New())

	_, err := env.svc.ForRestaurant(context.Background(), uuid.New(), restaurant.ID)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}
