package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bankterm/terminal_backend/internal/adapters/rabbitmq"
	"github.com/bankterm/terminal_backend/internal/core/services"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/handlers"
	"github.com/bankterm/terminal_backend/internal/middleware"
	"github.com/bankterm/terminal_backend/internal/platform/config"
	"github.com/bankterm/terminal_backend/internal/repositories/database/pgsql"
	"github.com/bankterm/terminal_backend/internal/scheduler"
	"github.com/bankterm/terminal_backend/pkg/database"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unavailable, combination caching disabled", slog.String("error", err.Error()))
		redisClient = nil
	}

	// The notification publisher is optional; the backend stays fully
	// functional without a broker.
	var publisher portssvc.NotificationPublisher
	if cfg.RabbitMQURL != "" {
		amqpPublisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.NotificationExchange)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, operation notifications disabled", slog.String("error", err.Error()))
		} else {
			defer amqpPublisher.Close()
			publisher = amqpPublisher
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	var rdb redis.UniversalClient
	if redisClient != nil {
		rdb = redisClient
	}
	container := services.NewServiceContainer(cfg, repos, rdb, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	// Settle due installments in the background for the life of the process.
	schedulerCtx, stopScheduler := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopScheduler()
	trigger := scheduler.NewTrigger(
		container.Schedule,
		container.Operation,
		repos.AccountRepo,
		repos.UserRepo,
		cfg.SchedulerInterval,
		cfg.SchedulerBatchSize,
		logger,
	)
	go trigger.Start(schedulerCtx)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending migrations from the migrations directory.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", upErr.Error()))
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
