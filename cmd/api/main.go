package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gathergraze/snackshop-backend/api/routes"
	"github.com/gathergraze/snackshop-backend/internal/auth"
	"github.com/gathergraze/snackshop-backend/internal/cart"
	"github.com/gathergraze/snackshop-backend/internal/catalog"
	"github.com/gathergraze/snackshop-backend/internal/checkout"
	"github.com/gathergraze/snackshop-backend/internal/companies"
	"github.com/gathergraze/snackshop-backend/internal/purchases"
	"github.com/gathergraze/snackshop-backend/internal/stock"
	"github.com/gathergraze/snackshop-backend/internal/users"
	"github.com/gathergraze/snackshop-backend/pkg/auth/session"
	"github.com/gathergraze/snackshop-backend/pkg/config"
	"github.com/gathergraze/snackshop-backend/pkg/db"
	"github.com/gathergraze/snackshop-backend/pkg/logger"
	"github.com/gathergraze/snackshop-backend/pkg/metrics"
	"github.com/gathergraze/snackshop-backend/pkg/migrate"
	"github.com/gathergraze/snackshop-backend/pkg/redis"
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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
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

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	companyRepo := companies.NewRepository(gormDB)
	snackRepo := catalog.NewRepository(gormDB)
	purchaseRepo := purchases.NewRepository(gormDB)
	ledger := stock.NewLedger(gormDB)
	cartSessions := cart.NewSessionStore()

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		CompanyRepo:    companyRepo,
		SessionManager: sessionManager,
		CartSessions:   cartSessions,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	companyService, err := companies.NewService(companyRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create company service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(snackRepo, companyRepo, ledger)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartSessions, snackRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	checkoutService, err := checkout.NewService(dbClient, ledger, snackRepo, purchaseRepo, checkoutMetrics, cfg.Checkout)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	purchaseService, err := purchases.NewService(purchaseRepo, snackRepo, companyRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchase service", err)
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
		Handler: routes.NewRouter(cfg, logg, routes.Services{
			DB:        dbClient,
			Redis:     redisClient,
			Sessions:  sessionManager,
			Auth:      authService,
			Companies: companyService,
			Catalog:   catalogService,
			Cart:      cartService,
			Checkout:  checkoutService,
			Purchases: purchaseService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
