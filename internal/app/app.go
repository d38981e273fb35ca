package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/controller"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	circuitbreaker "github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/database/mongodb"
	inventoryfeed "github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/inventory-feed"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/mail"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/payment-gateway"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/infrastructure/tracing"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/middleware"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/service"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/response"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	DB     *mongo.Database
	Config *config.Config
	Server *echo.Echo

	metrics       *echo.Echo
	scheduler     gocron.Scheduler
	publisher     *kafka.EventPublisher
	traceProvider *sdktrace.TracerProvider
}

// ConfigureLogger sets the global zerolog logger from LOG_LEVEL.
func ConfigureLogger(config *config.Config) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if config.Environment == "development" {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	log.Logger = logger
}

// Start blocks until the HTTP server stops.
func (app *App) Start() error {
	e := echo.New()
	e.HideBanner = true
	app.Server = e

	traceProvider, err := tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	}
	app.traceProvider = traceProvider

	tracer := otel.Tracer(tracing.ServiceName)

	e.Use(echomiddleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	})

	// no subsystem prefix so metrics aggregate with the other services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     app.Config.CORSAllowedOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.SeedSecretHeader},
		AllowCredentials: true,
	}))
	e.Use(middleware.Logger)

	app.startMetricsServer()

	g := e.Group("/api/v1")

	userRepo := repository.CreateNewMongoDBUserRepository(app.DB)
	productRepo := repository.CreateNewMongoDBProductRepository(app.DB)
	orderRepo := repository.CreateNewMongoDBOrderRepository(app.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to create user indexes")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to create product indexes")
	}
	cancel()

	app.publisher = kafka.CreateEventPublisher(app.Config)

	paypalClient := paymentgateway.CreatePayPalClient(app.Config, circuitbreaker.CreateCircuitBreaker("paypal", errs.ErrPaymentNotFound))
	verifiers := map[string]service.PaymentVerifier{
		domain.PaymentMethodPayPal: paypalClient,
	}
	if app.Config.MidtransConfig.ServerKey != "" {
		verifiers[domain.PaymentMethodMidtrans] = paymentgateway.CreateMidtransVerifier(paymentgateway.CreateMidtransClient(app.Config))
	}

	var receipts service.ReceiptSender
	if mailer := mail.CreateSMTPMailer(app.Config.SMTPConfig); mailer.Enabled() {
		receipts = mailer
	}

	feed := inventoryfeed.CreateInventoryFeedClient(app.Config)

	auth := middleware.CreateAuthMiddleware(app.Config.JWTConfig.JWTSecret, userRepo)

	userSvc := service.CreateUserService(userRepo, app.Config)
	productSvc := service.CreateProductService(productRepo, app.Config)
	orderSvc := service.CreateOrderService(orderRepo, productRepo, userRepo, verifiers, app.publisher, receipts, app.Config)
	inventorySvc := service.CreateInventoryService(feed, productRepo, app.publisher)
	seedSvc := service.CreateSeedService(productRepo, userRepo, app.publisher, app.Config)

	controller.CreateUserController(g, userSvc, auth.IsLoggedIn, auth.IsAdmin)
	controller.CreateProductController(g, productSvc, auth.IsLoggedIn, auth.IsAdmin)
	controller.CreateOrderController(g, orderSvc, auth.IsLoggedIn, auth.IsAdmin)
	controller.CreateInventoryController(g, inventorySvc, auth.IsLoggedIn, auth.IsAdmin)
	controller.CreateSeedController(g, seedSvc, middleware.SeedSecret(app.Config.SeedConfig.Secret))
	controller.CreateConfigController(g, paypalClient.ClientID())

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "API is running...", nil)
	})

	if feed.Configured() {
		if err := app.startScheduler(inventorySvc); err != nil {
			return err
		}
	} else {
		log.Warn().Msg("INVENTORY_API_URL not set, inventory sync is disabled")
	}

	log.Info().Str("port", app.Config.ServicePort).Msg("Starting storefront service")
	err = e.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (app *App) startMetricsServer() {
	metrics := echo.New()
	metrics.HideBanner = true
	metrics.GET("/metrics", echoprometheus.NewHandler())
	app.metrics = metrics

	go func() {
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()
}

// startScheduler runs the inventory sync once immediately and then on the
// configured cron schedule.
func (app *App) startScheduler(inventorySvc service.InventoryService) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(inventorySvc.RunScheduledSync),
		gocron.WithName("inventory-sync-startup"),
	)
	if err != nil {
		return fmt.Errorf("scheduling startup inventory sync: %w", err)
	}

	_, err = s.NewJob(
		gocron.CronJob(app.Config.InventoryConfig.SyncCron, false),
		gocron.NewTask(inventorySvc.RunScheduledSync),
		gocron.WithName("inventory-sync"),
	)
	if err != nil {
		return fmt.Errorf("scheduling inventory sync %q: %w", app.Config.InventoryConfig.SyncCron, err)
	}

	s.Start()
	app.scheduler = s

	return nil
}

// StopServer shuts down the HTTP servers, then the scheduler, the event
// publisher, the database client and the tracer provider.
func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrs []error

	if app.Server != nil {
		shutdownErrs = append(shutdownErrs, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		shutdownErrs = append(shutdownErrs, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		shutdownErrs = append(shutdownErrs, app.scheduler.Shutdown())
	}
	if app.publisher != nil {
		shutdownErrs = append(shutdownErrs, app.publisher.Close())
	}
	if app.DB != nil {
		shutdownErrs = append(shutdownErrs, mongodb.Disconnect(app.DB))
	}
	if app.traceProvider != nil {
		shutdownErrs = append(shutdownErrs, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(shutdownErrs...)
}
