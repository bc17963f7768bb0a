package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/platefinder/platefinder-backend/api/controllers"
	"github.com/platefinder/platefinder-backend/api/middleware"
	"github.com/platefinder/platefinder-backend/internal/auth"
	"github.com/platefinder/platefinder-backend/internal/claims"
	"github.com/platefinder/platefinder-backend/internal/dashboard"
	"github.com/platefinder/platefinder-backend/internal/favorites"
	"github.com/platefinder/platefinder-backend/internal/restaurants"
	"github.com/platefinder/platefinder-backend/internal/reviews"
	"github.com/platefinder/platefinder-backend/internal/users"
	"github.com/platefinder/platefinder-backend/pkg/config"
	"github.com/platefinder/platefinder-backend/pkg/db"
	"github.com/platefinder/platefinder-backend/pkg/enums"
	"github.com/platefinder/platefinder-backend/pkg/logger"
	"github.com/platefinder/platefinder-backend/pkg/metrics"
	"github.com/platefinder/platefinder-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	promRegistry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	userService users.Service,
	restaurantService restaurants.Service,
	reviewService reviews.Service,
	favoriteService favorites.Service,
	claimService claims.Service,
	dashboardService dashboard.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	if cfg.Uploads.Dir != "" {
		fileServer := http.StripPrefix(cfg.Uploads.PublicPath+"/", http.FileServer(http.Dir(cfg.Uploads.Dir)))
		r.Handle(cfg.Uploads.PublicPath+"/*", fileServer)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(signupPolicy, redisClient, logg)).Post("/auth/signup", controllers.AuthSignup(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/auth/login", controllers.AuthLogin(authService, logg))

		r.Get("/restaurants", controllers.RestaurantSearch(restaurantService, logg))
		r.Get("/restaurants/{restaurantId}", controllers.RestaurantDetail(restaurantService, logg))
		r.Get("/restaurants/{restaurantId}/reviews", controllers.RestaurantReviews(reviewService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/auth/me", controllers.AuthMe(authService, logg))

			r.Get("/users/profile", controllers.UserProfile(userService, logg))
			r.Put("/users/profile", controllers.UserProfileUpdate(userService, logg))
			r.Post("/users/profile/picture", controllers.UserProfilePicture(userService, logg))
			r.Get("/users/preferences", controllers.UserPreferences(userService, logg))
			r.Put("/users/preferences", controllers.UserPreferencesUpdate(userService, logg))
			r.Get("/users/me/reviews", controllers.MyReviews(reviewService, logg))
			r.Get("/users/me/favorites", controllers.FavoriteList(favoriteService, logg))
			r.Get("/users/me/history", controllers.UserHistory(favoriteService, logg))

			r.Post("/restaurants", controllers.RestaurantCreate(restaurantService, logg))
			r.Get("/restaurants/me/listings", controllers.RestaurantMyListings(restaurantService, logg))
			r.Put("/restaurants/{restaurantId}", controllers.RestaurantUpdate(restaurantService, logg))
			r.Delete("/restaurants/{restaurantId}", controllers.RestaurantDelete(restaurantService, logg))

			r.Post("/restaurants/{restaurantId}/reviews", controllers.ReviewCreate(reviewService, logg))
			r.Put("/restaurants/{restaurantId}/reviews/{reviewId}", controllers.ReviewUpdate(reviewService, logg))
			r.Delete("/restaurants/{restaurantId}/reviews/{reviewId}", controllers.ReviewDelete(reviewService, logg))

			r.Post("/restaurants/{restaurantId}/favorite", controllers.FavoriteAdd(favoriteService, logg))
			r.Delete("/restaurants/{restaurantId}/favorite", controllers.FavoriteRemove(favoriteService, logg))

			r.Route("/owner", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleOwner), logg))

				r.Get("/restaurants", controllers.RestaurantMyListings(restaurantService, logg))
				r.Put("/restaurants/{restaurantId}", controllers.RestaurantUpdate(restaurantService, logg))
				r.Get("/restaurants/{restaurantId}/reviews", controllers.RestaurantReviews(reviewService, logg))

				r.Post("/claim", controllers.OwnerClaimSubmit(claimService, logg))
				r.Get("/claims", controllers.OwnerClaimList(claimService, logg))
				r.Post("/claims/{claimId}/decision", controllers.OwnerClaimDecision(claimService, logg))

				r.Get("/dashboard/{restaurantId}", controllers.OwnerDashboard(dashboardService, logg))
			})
		})
	})

	return r
}
