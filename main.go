package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hotel-ops/config"
	"hotel-ops/controllers"
	"hotel-ops/middleware"
	"hotel-ops/repository"
	"hotel-ops/routes"
	"hotel-ops/services"
	"hotel-ops/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	config.LoadConfig()
	cfg := config.AppConfig

	utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("❌ JWT_SECRET is not set. Cannot sign staff tokens.")
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("❌ Database connect failed", zap.Error(err))
	}
	logger.Info("✅ Database connection established and migrations applied", zap.String("driver", cfg.DBDriver))

	store := repository.NewGormStore(db)

	// Room listing cache: redis when configured, in-process otherwise.
	var roomCache services.RoomCache
	if cfg.RedisAddr != "" {
		client, err := utils.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Warn("⚠️  Redis unavailable, falling back to in-memory room cache", zap.Error(err))
			roomCache = services.NewMemoryRoomCache(cfg.RoomCacheTTL)
		} else {
			defer client.Close()
			roomCache = services.NewRedisRoomCache(client, cfg.RoomCacheTTL)
			logger.Info("✅ Redis room cache enabled", zap.String("addr", cfg.RedisAddr))
		}
	} else {
		roomCache = services.NewMemoryRoomCache(cfg.RoomCacheTTL)
	}

	var (
		gateway services.PaymentGateway
		stripe  *services.StripeGateway
	)
	if cfg.StripeSecretKey != "" {
		stripe = services.NewStripeGateway(services.StripeConfig{
			SecretKey:     cfg.StripeSecretKey,
			WebhookSecret: cfg.StripeWebhookSecret,
			SuccessURL:    cfg.PaymentSuccessURL,
			CancelURL:     cfg.PaymentCancelURL,
			Currency:      cfg.PaymentCurrency,
		})
		gateway = stripe
		logger.Info("✅ Stripe card payments enabled")
	} else {
		logger.Warn("⚠️  STRIPE_SECRET_KEY not set; card payments disabled")
	}

	// Initialize services
	availabilityService := services.NewAvailabilityService(store, logger)
	billingService := services.NewBillingService(db, store, gateway, logger)
	transactionService := services.NewTransactionService(db, store, billingService, logger)
	transactionService.StrictCheckIn = cfg.StrictCheckIn
	roomService := services.NewRoomService(db, store, roomCache, logger)
	roomTypeService := services.NewRoomTypeService(db, store, roomCache, logger)
	guestService := services.NewGuestService(db, logger)
	staffService := services.NewStaffService(db, logger, cfg.JWTSecret)
	dashboardService := services.NewDashboardService(db, logger)

	// Initialize controllers
	ctl := routes.Controllers{
		Rooms:        controllers.NewRoomController(roomService, availabilityService),
		RoomTypes:    controllers.NewRoomTypeController(roomTypeService),
		Guests:       controllers.NewGuestController(guestService),
		Transactions: controllers.NewTransactionController(transactionService),
		Bills:        controllers.NewBillController(billingService),
		Staff:        controllers.NewStaffController(staffService),
		Dashboard:    controllers.NewDashboardController(dashboardService),
	}
	if stripe != nil {
		ctl.Webhook = controllers.NewWebhookController(stripe, billingService)
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimitPerMin, 5, 10*time.Minute)
	stopCleanup := make(chan struct{})
	go limiter.RunCleanup(stopCleanup)

	router := routes.SetupRouter(ctl, routes.Options{
		Origins:     cfg.Origins(),
		JWTSecret:   cfg.JWTSecret,
		RateLimiter: limiter,
		Logger:      logger,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("🚀 Server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("❌ ListenAndServe()", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("⚠️  Shutdown signal received, shutting down server...")
	close(stopCleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}
