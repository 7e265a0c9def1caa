package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/AYOGRAM01/Jollyshop/api/routes"
	authsvc "github.com/AYOGRAM01/Jollyshop/internal/auth"
	"github.com/AYOGRAM01/Jollyshop/internal/carousel"
	"github.com/AYOGRAM01/Jollyshop/internal/cart"
	"github.com/AYOGRAM01/Jollyshop/internal/catalog"
	checkoutsvc "github.com/AYOGRAM01/Jollyshop/internal/checkout"
	"github.com/AYOGRAM01/Jollyshop/internal/contact"
	"github.com/AYOGRAM01/Jollyshop/internal/dashboard"
	"github.com/AYOGRAM01/Jollyshop/internal/inbox"
	"github.com/AYOGRAM01/Jollyshop/internal/orders"
	"github.com/AYOGRAM01/Jollyshop/internal/users"
	"github.com/AYOGRAM01/Jollyshop/internal/wishlist"
	"github.com/AYOGRAM01/Jollyshop/pkg/auth/session"
	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/db"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
	"github.com/AYOGRAM01/Jollyshop/pkg/migrate"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
	"github.com/AYOGRAM01/Jollyshop/pkg/redis"
	"github.com/AYOGRAM01/Jollyshop/pkg/storage/local"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	uploadStore, err := local.New(cfg.Storage.UploadDir, cfg.Storage.MaxUploadMB)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		Repo:     users.NewRepository(dbClient.DB()),
		Sessions: sessionManager,
		JWT:      cfg.JWT,
		Password: cfg.Password,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Repo:    checkoutsvc.NewRepository(dbClient.DB()),
		DB:      dbClient,
		Storage: uploadStore,
		Events:  outboxService,
		Bank:    cfg.Bank,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo:   orders.NewRepository(dbClient.DB()),
		DB:     dbClient,
		Events: outboxService,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	inboxService, err := inbox.NewService(inbox.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create inbox service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	contactService, err := contact.NewService(contact.ServiceParams{
		Repo:   contact.NewRepository(dbClient.DB()),
		DB:     dbClient,
		Events: outboxService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	carouselService, err := carousel.NewService(carousel.ServiceParams{
		Repo:    carousel.NewRepository(dbClient.DB()),
		Storage: uploadStore,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create carousel service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dbClient.DB())
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, routes.Services{
			Auth:      authService,
			Catalog:   catalogService,
			Cart:      cartService,
			Checkout:  checkoutService,
			Orders:    ordersService,
			Inbox:     inboxService,
			Wishlist:  wishlistService,
			Contact:   contactService,
			Carousel:  carouselService,
			Dashboard: dashboardService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
