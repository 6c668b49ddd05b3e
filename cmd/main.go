package main

import (
	"context"
	"errors"
	"fmt"
	"lending-api/internal/api"
	"lending-api/internal/batch"
	"lending-api/internal/config"
	"lending-api/internal/domain/loan"
	"lending-api/internal/domain/product"
	"lending-api/internal/domain/user"
	"lending-api/internal/event"
	"lending-api/internal/infrastructure/database/postgres"
	"lending-api/internal/infrastructure/logging"
	"lending-api/internal/pricing"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Lending API
// @version 1.0
// @description Loan origination and servicing API: fast, installment and auto loans with accountant review and monthly amortization.
// @termsOfService http://lending-api.example.com/terms/

// @contact.name API Support
// @contact.url http://lending-api.example.com/support
// @contact.email support@lending-api.example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, logger := initializeApp()

	appCtx, stopApp := context.WithCancel(context.Background())
	defer stopApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	publisher := initializeEventPublisher(cfg, logger)
	redisClient := initializeRedisClient(cfg, logger)
	oracle := initializePriceOracle(cfg, redisClient, logger)

	services := initializeServices(cfg, dbPool, publisher, oracle, logger)

	paymentJob := batch.NewMonthlyPaymentJob(services.Loans, cfg.Batch.Concurrency, logger)
	cronScheduler := startBatchJobs(cfg, logger, paymentJob)
	router := api.SetupRouter(appCtx, services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, publisher, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

// initializeEventPublisher falls back to a no-op publisher when the broker is
// unreachable; lifecycle events are best effort.
func initializeEventPublisher(cfg *config.Config, logger *slog.Logger) event.Publisher {
	driver := strings.ToLower(strings.TrimSpace(cfg.Events.Driver))
	logger.Info("Initializing event publisher...", "driver", driver)

	switch driver {
	case "rabbitmq":
		conn, err := setupRabbitMQ(cfg, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, lifecycle events will be dropped", "error", err)
			return event.NewNoopPublisher(logger)
		}
		pub, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
		if err != nil {
			logger.Warn("Failed to set up RabbitMQ publisher, lifecycle events will be dropped", "error", err)
			_ = conn.Close()
			return event.NewNoopPublisher(logger)
		}
		return pub
	case "kafka":
		pub, err := event.NewKafkaEventPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		if err != nil {
			logger.Warn("Failed to set up Kafka publisher, lifecycle events will be dropped", "error", err)
			return event.NewNoopPublisher(logger)
		}
		return pub
	case "", "none":
		return event.NewNoopPublisher(logger)
	default:
		logger.Warn("Unknown event driver, lifecycle events will be dropped", "driver", driver)
		return event.NewNoopPublisher(logger)
	}
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}

	port := cfg.Port
	if port == 0 {
		port = 5672
	}
	if cfg.Username != "" {
		return fmt.Sprintf("amqp://%s:%s@%s:%d/", cfg.Username, cfg.Password, cfg.Host, port), nil
	}
	return fmt.Sprintf("amqp://%s:%d/", cfg.Host, port), nil
}

func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, error) {
	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		return nil, err
	}

	conn, err := connectRabbitMQ(uri, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		return nil, err
	}
	return conn, nil
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					if e != nil {
						logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
					}
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

// initializeRedisClient returns nil when the price cache is disabled or redis is unreachable.
func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if !cfg.Redis.Enabled {
		logger.Info("Redis price cache disabled.")
		return nil
	}
	logger.Info("Initializing Redis client...")
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis address (addr) is not configured, price cache disabled.")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Warn("Failed to connect to Redis, price cache disabled", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		return nil
	}

	logger.Info("Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func initializePriceOracle(cfg *config.Config, redisClient *redis.Client, logger *slog.Logger) pricing.Oracle {
	client := pricing.NewClient(cfg.Pricing, logger)
	if redisClient == nil {
		return client
	}
	return pricing.NewCachedOracle(client, redisClient, cfg.Pricing.CacheTTL, logger)
}

func initializeServices(cfg *config.Config, dbPool *pgxpool.Pool, publisher event.Publisher, oracle pricing.Oracle, logger *slog.Logger) api.Services {
	logger.Info("Initializing application components...")
	timeout := cfg.Database.QueryTimeout

	userRepo := postgres.NewUserRepository(dbPool, timeout, logger)
	productRepo := postgres.NewProductRepository(dbPool, timeout, logger)
	loanRepo := postgres.NewLoanRepository(dbPool, timeout, logger)

	userService := user.NewUserService(userRepo, publisher, logger)
	productService := product.NewProductService(productRepo, logger)
	loanService := loan.NewLoanService(loanRepo, productService, oracle, userService, publisher, logger)

	return api.Services{
		Loans:    loanService,
		Users:    userService,
		Products: productService,
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, publisher event.Publisher, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	closeEventPublisher(publisher, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func closeEventPublisher(publisher event.Publisher, logger *slog.Logger) {
	if publisher == nil {
		return
	}
	logger.Info("Closing event publisher...")
	if err := publisher.Close(); err != nil {
		logger.Error("Failed to close event publisher", "error", err)
	}
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing Redis client...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client", "error", err)
	}
}

type batchJob interface {
	Run(ctx context.Context) error
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, paymentJob batchJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	if !cfg.Batch.MonthlyPaymentEnabled {
		logger.Info("Monthly payment job disabled via configuration.")
		c.Start()
		return c
	}

	scheduleSpec := cfg.Batch.MonthlyPaymentSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 3 1 * *"
		logger.Warn("Monthly payment schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.MonthlyPaymentTimeout
	if jobTimeout <= 0 {
		jobTimeout = 1 * time.Hour
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "MonthlyPayment")
		jobLogger.Info("Cron triggered: Running monthly payment job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := paymentJob.Run(ctx); runErr != nil {
			jobLogger.Error("Monthly payment job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Monthly payment job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule monthly payment job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled monthly payment job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
