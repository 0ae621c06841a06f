package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raisul516/ironi-backend/api/controllers"
	"github.com/raisul516/ironi-backend/api/middleware"
	"github.com/raisul516/ironi-backend/internal/admin"
	"github.com/raisul516/ironi-backend/internal/auth"
	"github.com/raisul516/ironi-backend/internal/claims"
	"github.com/raisul516/ironi-backend/internal/notifications"
	"github.com/raisul516/ironi-backend/internal/orders"
	"github.com/raisul516/ironi-backend/internal/ratings"
	"github.com/raisul516/ironi-backend/pkg/config"
	"github.com/raisul516/ironi-backend/pkg/enums"
	"github.com/raisul516/ironi-backend/pkg/logger"
	"github.com/raisul516/ironi-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth          auth.Service
	Orders        orders.Service
	Ratings       ratings.Service
	Claims        claims.Service
	Notifications notifications.Service
	Admin         admin.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	// Rate limiting is skipped entirely when redis is not configured.
	limiter := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	var redisP controllers.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Get("/", controllers.HealthLive(cfg))
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Get("/api/catalog", controllers.Catalog())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(limiter(loginPolicy)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(limiter(registerPolicy)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/profile", controllers.AuthProfile(svcs.Auth, logg))
			r.Put("/profile", controllers.AuthUpdateProfile(svcs.Auth, logg))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/history", controllers.OrderHistory(svcs.Orders, logg))
			r.Post("/repeat/{orderId}", controllers.OrderRepeat(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, logg))
			r.Put("/{orderId}/cancel", controllers.OrderCancel(svcs.Orders, logg))
			r.Put("/{orderId}/instructions", controllers.OrderUpdateInstructions(svcs.Orders, logg))
			r.Post("/{orderId}/pay", controllers.OrderInitiatePayment(svcs.Orders, logg))
			r.Put("/{orderId}/pay", controllers.OrderConfirmPayment(svcs.Orders, logg))
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Post("/", controllers.RatingSubmit(svcs.Ratings, logg))
			r.Get("/order/{orderId}", controllers.RatingListForOrder(svcs.Ratings, logg))
			r.Get("/order/{orderId}/average", controllers.RatingAverage(svcs.Ratings, logg))
			r.Get("/order/{orderId}/me", controllers.RatingMine(svcs.Ratings, logg))
		})

		r.Route("/claims", func(r chi.Router) {
			r.Post("/", controllers.ClaimCreate(svcs.Claims, logg))
			r.Get("/me", controllers.ClaimListMine(svcs.Claims, logg))
			r.Get("/order/{orderId}", controllers.ClaimListMineForOrder(svcs.Claims, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.NotificationList(svcs.Notifications, logg))
			r.Get("/unread-count", controllers.NotificationUnreadCount(svcs.Notifications, logg))
			r.Post("/", controllers.NotificationCreate(svcs.Notifications, logg))
			r.Put("/mark-all-read", controllers.NotificationMarkAllRead(svcs.Notifications, logg))
			r.Put("/{notificationId}/read", controllers.NotificationMarkRead(svcs.Notifications, logg))
			r.Delete("/{notificationId}", controllers.NotificationDelete(svcs.Notifications, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

			r.Get("/stats", controllers.AdminStats(svcs.Admin, logg))
			r.Get("/users", controllers.AdminListUsers(svcs.Admin, logg))
			r.Delete("/users/{userId}", controllers.AdminDeleteUser(svcs.Admin, logg))
			r.Get("/orders", controllers.AdminListOrders(svcs.Orders, logg))
			r.Put("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(svcs.Orders, logg))
			r.Get("/ratings", controllers.AdminListRatings(svcs.Ratings, logg))
			r.Delete("/ratings/{ratingId}", controllers.AdminDeleteRating(svcs.Ratings, logg))
			r.Get("/claims", controllers.AdminListClaims(svcs.Claims, logg))
			r.Put("/claims/{claimId}", controllers.AdminUpdateClaim(svcs.Claims, logg))
		})
	})

	return r
}
