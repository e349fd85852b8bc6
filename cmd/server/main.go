package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rolloffco/rolloff/internal"
	"github.com/rolloffco/rolloff/internal/address"
	"github.com/rolloffco/rolloff/internal/billing"
	"github.com/rolloffco/rolloff/internal/domain"
	"github.com/rolloffco/rolloff/internal/email"
	"github.com/rolloffco/rolloff/internal/handler/admin"
	"github.com/rolloffco/rolloff/internal/handler/api"
	"github.com/rolloffco/rolloff/internal/handler/webhook"
	"github.com/rolloffco/rolloff/internal/middleware"
	"github.com/rolloffco/rolloff/internal/postgres"
	"github.com/rolloffco/rolloff/internal/router"
	"github.com/rolloffco/rolloff/internal/routes"
	"github.com/rolloffco/rolloff/internal/service"
	"github.com/rolloffco/rolloff/internal/tax"
	"github.com/rolloffco/rolloff/internal/worker"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed")

	// Initialize the application store on its own pgx pool
	store, err := postgres.NewStore(ctx, cfg.DatabaseUrl, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer store.Close()

	// Initialize Stripe billing provider
	billingProvider, err := billing.NewStripeProvider(cfg.Stripe.SecretKey)
	if err != nil {
		return fmt.Errorf("failed to initialize Stripe provider: %w", err)
	}
	logger.Info("Stripe billing provider initialized")

	// Initialize outbound email
	var sender email.Sender
	switch cfg.Email.Provider {
	case "sendgrid":
		sender = email.NewSendGridSender(cfg.Email.SendGridKey)
	default:
		sender = email.NewPostmarkSender(cfg.Email.PostmarkToken)
	}
	emailService, err := email.NewService(sender, cfg.Email.From, cfg.Email.FromName, cfg.Email.AdminAddress)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}
	logger.Info("Email service initialized", "provider", cfg.Email.Provider)

	// Geography: tax matching and delivery serviceability both read the
	// service-area table, through different lenses.
	taxCalculator := tax.NewAreaCalculator(store.ServiceAreas(), tax.Config{
		StateRate:        cfg.Tax.StateRate,
		DefaultLocalRate: cfg.Tax.DefaultLocalRate,
	}, logger)
	addressValidator := address.NewRadiusValidator(store.ServiceAreas(), address.Config{
		InAreaMiles:      cfg.Service.InAreaMiles,
		SurroundingMiles: cfg.Service.SurroundingMiles,
	})

	insurancePrices := domain.InsurancePrices{
		DrivewayCents:     cfg.Insurance.DrivewayCents,
		CancellationCents: cfg.Insurance.CancellationCents,
		RushCents:         cfg.Insurance.RushCents,
	}

	// Initialize services
	checkoutService := service.NewCheckoutService(taxCalculator, addressValidator, store.DumpsterTypes(), insurancePrices, logger)
	stagingService := service.NewStagingService(store.PendingOrders(), billingProvider, checkoutService, service.StagingURLs{
		SuccessURL: cfg.BaseURL + cfg.Checkout.SuccessPath,
		CancelURL:  cfg.BaseURL + cfg.Checkout.CancelPath,
	}, logger)
	confirmService := service.NewConfirmService(
		store.PendingOrders(),
		store.Customers(),
		store.Rentals(),
		store.DumpsterTypes(),
		billingProvider,
		store.Jobs(),
		cfg.Checkout.DefaultDumpsterTypeID,
		logger,
	)
	driverService := service.NewDriverService(store.Rentals(), logger)
	chargeService := service.NewChargeService(store.Rentals(), store.Customers(), billingProvider, logger)
	contactService := service.NewContactService(store.ContactMessages(), store.Jobs(), logger)
	adminService := service.NewAdminService(store.ServiceAreas(), store.DumpsterTypes(), store.Dumpsters(), store.Rentals(), logger)

	// Start the email job worker
	emailWorker := worker.NewWorker(store.Jobs(), emailService, worker.Config{
		PollInterval:   time.Duration(cfg.Worker.PollIntervalSeconds) * time.Second,
		MaxConcurrency: int(cfg.Worker.Concurrency),
	}, logger)
	go emailWorker.Start(ctx)

	// Build route dependencies
	apiDeps := routes.APIDeps{
		CheckoutHandler: api.NewCheckoutHandler(checkoutService, stagingService, confirmService, logger),
		ContactHandler:  api.NewContactHandler(contactService, logger),
	}
	adminDeps := routes.AdminDeps{
		RentalHandler:         admin.NewRentalHandler(driverService, chargeService, logger),
		DumpsterHandler:       admin.NewDumpsterHandler(adminService, logger),
		ServiceAreaHandler:    admin.NewServiceAreaHandler(adminService, logger),
		ContactMessageHandler: admin.NewContactMessageHandler(contactService, logger),
	}
	webhookDeps := routes.WebhookDeps{
		StripeHandler: webhook.NewStripeHandler(confirmService, cfg.Stripe.WebhookSecret, logger),
	}

	// Initialize middleware
	metrics := middleware.NewMetrics("rolloff")

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.ContentSecurityPolicy = ""
		securityConfig.HSTSMaxAge = 0
	}

	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())

	// Create the router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.DefaultMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		rateLimiter.Middleware,
		middleware.WithRequestLogger(logger),
		router.Logger(logger),
	)

	// Metrics endpoint; protect at the network layer in production
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	routes.RegisterAPIRoutes(r, apiDeps)
	routes.RegisterAdminRoutes(r, adminDeps)
	routes.RegisterWebhookRoutes(r, webhookDeps)

	// Start the server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
