package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	portssvc "github.com/SscSPs/dental_clinic_app/internal/core/ports/services"
	"github.com/SscSPs/dental_clinic_app/internal/core/services"
	"github.com/SscSPs/dental_clinic_app/internal/events"
	"github.com/SscSPs/dental_clinic_app/internal/handlers"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/SscSPs/dental_clinic_app/internal/platform/config"
	"github.com/SscSPs/dental_clinic_app/internal/platform/validation"
	"github.com/SscSPs/dental_clinic_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/dental_clinic_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Dental Clinic Cash Register API
// @version 1.0
// @description Daily cash register shifts, review workflow and read-only audit access for a dental clinic.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if missing := cfg.Missing(); len(missing) > 0 {
		logger.Error("Required configuration missing, serving configuration errors only", slog.Any("missing", missing))
		handlers.RegisterConfigErrorRoutes(r, missing)
		serve(ctx, logger, r, cfg.Port)
		return
	}

	if err := validation.RegisterGinValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher, subscriber, closeEvents := setupEvents(ctx, logger, cfg)
	defer closeEvents()

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, publisher, subscriber)

	loginLimiter, err := middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Invalid LOGIN_RATE_LIMIT", slog.String("value", cfg.LoginRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, loginLimiter)

	serve(ctx, logger, r, cfg.Port)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

// runMigrations applies all pending "up" migrations over a temporary database/sql connection.
func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	// pgx/v5/stdlib keeps the migration driver compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// setupEvents builds the in-process hub and, when configured, the Redis relay and Kafka sink.
// Redis or Kafka being unreachable degrades to local-only events rather than failing startup.
func setupEvents(ctx context.Context, logger *slog.Logger, cfg *config.Config) (portssvc.EventPublisher, portssvc.EventSubscriber, func()) {
	hub := events.NewHub()
	var publishers []portssvc.EventPublisher
	var closers []func() error

	if cfg.RedisAddr != "" {
		broker := events.NewRedisBroker(events.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), hub, events.DefaultRedisChannel, logger)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := broker.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn("Redis unreachable, events stay local to this instance", slog.String("error", err.Error()))
			_ = broker.Close()
			publishers = append(publishers, hub)
		} else {
			go func() {
				if err := broker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("Redis event relay stopped", slog.String("error", err.Error()))
				}
			}()
			publishers = append(publishers, broker)
			closers = append(closers, broker.Close)
			logger.Info("Redis event relay enabled", slog.String("channel", events.DefaultRedisChannel))
		}
	} else {
		publishers = append(publishers, hub)
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		publishers = append(publishers, kafka)
		closers = append(closers, kafka.Close)
		logger.Info("Kafka event sink enabled", slog.String("topic", cfg.KafkaTopic))
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("Error closing event publisher", slog.String("error", err.Error()))
			}
		}
	}
	return events.NewMultiPublisher(logger, publishers...), hub, closeAll
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, logger *slog.Logger, handler http.Handler, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
}
