package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aaravmahajanofficial/shopdesk/docs"
	"github.com/aaravmahajanofficial/shopdesk/internal/api"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/guards"
	"github.com/aaravmahajanofficial/shopdesk/internal/api/handlers"
	"github.com/aaravmahajanofficial/shopdesk/internal/cache"
	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/config"
	"github.com/aaravmahajanofficial/shopdesk/internal/health"
	repository "github.com/aaravmahajanofficial/shopdesk/internal/repositories"
	service "github.com/aaravmahajanofficial/shopdesk/internal/services"
	"github.com/aaravmahajanofficial/shopdesk/internal/session"
	"github.com/aaravmahajanofficial/shopdesk/internal/telemetry"
	"github.com/aaravmahajanofficial/shopdesk/pkg/sendgrid"
)

const version = "1.0.0"

//	@title						Shopdesk API
//	@version					1.0
//	@description				Back office and storefront of the Shopdesk shop.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.
func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	shutdownTracing, err := telemetry.Setup(context.Background(), cfg.OTel, version)
	if err != nil {
		slog.Error("❌ Error setting up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer redisClient.Close()

	categoryRepo := repository.NewCategoryRepo(repos.DB)
	productRepo := repository.NewProductRepo(repos.DB)
	inventoryRepo := repository.NewInventoryRepo(repos.DB)
	orderRepo := repository.NewOrderRepo(repos.DB)
	userRepo := cache.NewProfileRepository(
		repository.NewUserRepo(repos.DB),
		cache.NewRedisCache(redisClient, cfg.Cache.ProfileTTL),
		cfg.Cache.ProfileTTL,
	)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)
	blacklist := repository.NewTokenBlacklist(redisClient)

	carts := cart.NewStore(cart.NewRedisKV(redisClient, cfg.Cart.TTL), cart.NewNotifier(), cart.Options{
		KeyPrefix:    cfg.Cart.KeyPrefix,
		PollInterval: cfg.Cart.PollInterval,
	})

	var mailer sendgrid.EmailService
	var extraChecks []health.Check
	if cfg.SendGrid.APIKey != "" {
		mailer = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
		extraChecks = append(extraChecks, health.Check{
			Name:    "sendgrid",
			Timeout: 5 * time.Second,
			Probe:   sendgrid.Probe(cfg.SendGrid.APIKey, ""),
		})
	} else {
		slog.Warn("SendGrid API key not set, emails are disabled")
	}

	tokens := service.NewTokens([]byte(cfg.Security.JWTKey))
	threshold := cfg.Inventory.LowStockThreshold

	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo)
	inventoryService := service.NewInventoryService(inventoryRepo, threshold)
	orderService := service.NewOrderService(orderRepo, inventoryRepo, carts, mailer)
	dashboardService := service.NewDashboardService(productRepo, orderRepo, userRepo, inventoryRepo, threshold)
	userService := service.NewUserService(userRepo, blacklist, tokens, mailer, service.UserSettings{
		SessionTTL: cfg.Security.TokenTTL(),
		ResetTTL:   cfg.Security.PasswordResetTTL,
		ResetURL:   cfg.Security.ResetURL,
	})

	sessions := session.NewManager(userRepo, rateLimiter, blacklist, tokens, userService, session.Options{
		TTL:          cfg.Security.TokenTTL(),
		CookieSecure: cfg.Security.CookieSecure,
	})

	healthHandler, err := health.NewHealthHandler(cfg, version, extraChecks...)
	if err != nil {
		slog.Error("❌ Error setting up health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", version))

	// Setup router
	router := api.NewRouter(guards.New(guards.NewShells(carts)), sessions, api.Handlers{
		Auth:      handlers.NewAuthHandler(sessions, userService),
		Products:  handlers.NewProductHandler(productService),
		Category:  handlers.NewCategoryHandler(categoryService),
		Inventory: handlers.NewInventoryHandler(inventoryService),
		Orders:    handlers.NewOrderHandler(orderService, carts),
		Cart:      handlers.NewCartHandler(carts, productService),
		Users:     handlers.NewUserHandler(userService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
	}, api.Options{
		ServiceName: cfg.OTel.ServiceName,
		Health:      healthHandler.Handler(),
	})

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}
}
