package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AYOGRAM01/Jollyshop/api/controllers"
	"github.com/AYOGRAM01/Jollyshop/api/middleware"
	authsvc "github.com/AYOGRAM01/Jollyshop/internal/auth"
	"github.com/AYOGRAM01/Jollyshop/internal/carousel"
	"github.com/AYOGRAM01/Jollyshop/internal/cart"
	"github.com/AYOGRAM01/Jollyshop/internal/catalog"
	checkoutsvc "github.com/AYOGRAM01/Jollyshop/internal/checkout"
	"github.com/AYOGRAM01/Jollyshop/internal/contact"
	"github.com/AYOGRAM01/Jollyshop/internal/dashboard"
	"github.com/AYOGRAM01/Jollyshop/internal/inbox"
	"github.com/AYOGRAM01/Jollyshop/internal/orders"
	"github.com/AYOGRAM01/Jollyshop/internal/wishlist"
	"github.com/AYOGRAM01/Jollyshop/pkg/auth/session"
	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/db"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
	"github.com/AYOGRAM01/Jollyshop/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Generate(context.Context, string) (string, error)
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services bundles everything the router mounts.
type Services struct {
	Auth      authsvc.Service
	Catalog   catalog.Service
	Cart      cart.Service
	Checkout  checkoutsvc.Service
	Orders    orders.Service
	Inbox     inbox.Service
	Wishlist  wishlist.Service
	Contact   contact.Service
	Carousel  carousel.Service
	Dashboard dashboard.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database *db.Client,
	redisClient *redis.Client,
	sessions sessionManager,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.RateLimit.LoginWindow,
		cfg.RateLimit.LoginIPLimit,
		cfg.RateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, redisClient, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	uploadsDir := http.Dir(cfg.Storage.UploadDir)
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(svcs.Catalog, logg))
		r.Get("/products/{productID}", controllers.GetProduct(svcs.Catalog, logg))
		r.Get("/carousel", controllers.ListCarousel(svcs.Carousel, logg))
		r.Post("/contact", controllers.CreateContactMessage(svcs.Contact, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))
		r.Use(middleware.RateLimit(cfg.RateLimit, redisClient, logg))

		r.Route("/v1", func(r chi.Router) {
			r.Post("/auth/logout", controllers.Logout(svcs.Auth, logg))
			r.Get("/auth/me", controllers.Me(svcs.Auth, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.ViewCart(svcs.Cart, logg))
				r.Delete("/", controllers.ClearCart(svcs.Cart, logg))
				r.Post("/items", controllers.AddCartItem(svcs.Cart, logg))
				r.Put("/items/{productID}", controllers.UpdateCartItem(svcs.Cart, logg))
				r.Delete("/items/{productID}", controllers.RemoveCartItem(svcs.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(svcs.Checkout, cfg.Storage, logg))
			r.Get("/orders", controllers.MyOrders(svcs.Orders, logg))

			r.Route("/inbox", func(r chi.Router) {
				r.Get("/", controllers.InboxMessages(svcs.Inbox, logg))
				r.Get("/unread-count", controllers.InboxUnreadCount(svcs.Inbox, logg))
				r.Post("/{messageID}/read", controllers.InboxMarkRead(svcs.Inbox, logg))
				r.Post("/read-all", controllers.InboxMarkAllRead(svcs.Inbox, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.Wishlist(svcs.Wishlist, logg))
				r.Post("/", controllers.WishlistAdd(svcs.Wishlist, logg))
				r.Delete("/{productID}", controllers.WishlistRemove(svcs.Wishlist, logg))
			})
		})

		r.Route("/admin/v1", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

			r.Get("/dashboard", controllers.AdminDashboard(svcs.Dashboard, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/pending", controllers.AdminPendingOrders(svcs.Orders, logg))
				r.Get("/rejected", controllers.AdminRejectedOrders(svcs.Orders, logg))
				r.Get("/completed", controllers.AdminCompletedOrders(svcs.Orders, logg))
				r.Post("/{orderID}/approve", controllers.AdminApproveOrder(svcs.Orders, logg))
				r.Post("/{orderID}/reject", controllers.AdminRejectOrder(svcs.Orders, logg))
				r.Post("/{orderID}/complete", controllers.AdminCompleteOrder(svcs.Orders, logg))
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateProduct(svcs.Catalog, logg))
				r.Patch("/{productID}", controllers.AdminUpdateProduct(svcs.Catalog, logg))
				r.Delete("/{productID}", controllers.AdminDeleteProduct(svcs.Catalog, logg))
			})

			r.Route("/carousel", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateSlide(svcs.Carousel, cfg.Storage, logg))
				r.Delete("/{slideID}", controllers.AdminDeleteSlide(svcs.Carousel, logg))
			})

			r.Route("/contact", func(r chi.Router) {
				r.Get("/", controllers.AdminContactMessages(svcs.Contact, logg))
				r.Post("/{messageID}/read", controllers.AdminMarkContactRead(svcs.Contact, logg))
			})
		})
	})

	return r
}
