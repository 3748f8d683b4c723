package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/nihalhub/paylite-relay/internal/facades"
	"github.com/nihalhub/paylite-relay/internal/handlers"
	"github.com/nihalhub/paylite-relay/internal/logger"
	"github.com/nihalhub/paylite-relay/internal/middlewares"
	"github.com/nihalhub/paylite-relay/internal/repositories"
	"github.com/nihalhub/paylite-relay/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title paylite-relay API
// @version 1.0.0
// @description Relay service forwarding mobile payment notifications to the Paylite ledger
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		ledgerURL, ledgerTimeoutSecond,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaBrokers, kafkaLogsTopic, kafkaNotificationsTopic, kafkaGroupID,
		eventSource, ingestKey, credentialsFile,
		dedupTTLHour, queueMaxSize, maxLogs,
		eventBuffer, netCheckIntervalSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		ledgerURL, ledgerTimeoutSecond,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns,
		kafkaBrokers, kafkaLogsTopic, kafkaNotificationsTopic, kafkaGroupID,
		eventSource, ingestKey, credentialsFile,
		dedupTTLHour, queueMaxSize, maxLogs,
		eventBuffer, netCheckIntervalSecond,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, ledger, database, Redis, Kafka, and pipeline configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	ledgerURL string, ledgerTimeoutSecond int,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	kafkaBrokers, kafkaLogsTopic, kafkaNotificationsTopic, kafkaGroupID string,
	eventSource, ingestKey, credentialsFile string,
	dedupTTLHour, queueMaxSize, maxLogs int,
	eventBuffer, netCheckIntervalSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// Ledger config
	ledgerURL = getEnv("LEDGER_BASE_URL", "http://localhost:8000")
	if ledgerTimeoutSecond, err = strconv.Atoi(getEnv("LEDGER_TIMEOUT_SECOND", "8")); err != nil {
		return
	}

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}

	// Kafka config
	kafkaBrokers = getEnv("KAFKA_BROKERS", "localhost:9092")
	kafkaLogsTopic = getEnv("KAFKA_LOGS_TOPIC", "")
	kafkaNotificationsTopic = getEnv("KAFKA_NOTIFICATIONS_TOPIC", "payment-notifications")
	kafkaGroupID = getEnv("KAFKA_GROUP_ID", "paylite-relay")

	// Event source and ingest config
	eventSource = getEnv("EVENT_SOURCE", "http")
	ingestKey = getEnv("INGEST_KEY", "")
	credentialsFile = getEnv("CREDENTIALS_FILE", "/var/lib/paylite-relay/credentials.json")

	// Pipeline tuning
	if dedupTTLHour, err = strconv.Atoi(getEnv("DEDUP_TTL_HOUR", "168")); err != nil {
		return
	}
	if queueMaxSize, err = strconv.Atoi(getEnv("QUEUE_MAX_SIZE", "100")); err != nil {
		return
	}
	if maxLogs, err = strconv.Atoi(getEnv("MAX_LOGS", "50")); err != nil {
		return
	}
	if eventBuffer, err = strconv.Atoi(getEnv("EVENT_BUFFER", "256")); err != nil {
		return
	}
	if netCheckIntervalSecond, err = strconv.Atoi(getEnv("NET_CHECK_INTERVAL_SECOND", "15")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, services and the HTTP
// server. It starts the pipeline workers, applies middleware, and handles
// graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	ledgerURL string, ledgerTimeoutSecond int,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns int,
	kafkaBrokers, kafkaLogsTopic, kafkaNotificationsTopic, kafkaGroupID string,
	eventSource, ingestKey, credentialsFile string,
	dedupTTLHour, queueMaxSize, maxLogs int,
	eventBuffer, netCheckIntervalSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	if eventSource != "http" && eventSource != "kafka" {
		return fmt.Errorf("unknown event source %q", eventSource)
	}

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", pgHost, pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Initialize repositories
	logsRepo := repositories.NewTransactionLogRepository(db, maxLogs)
	if err := logsRepo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure log schema: %w", err)
	}
	dedupRepo := repositories.NewDedupRepository(rdb, time.Duration(dedupTTLHour)*time.Hour)
	queueRepo := repositories.NewOfflineQueueRepository(rdb, queueMaxSize)
	credsRepo := repositories.NewCredentialsRepository(credentialsFile)

	// Ledger client
	ledger := facades.NewLedgerAPIFacade(ledgerURL, time.Duration(ledgerTimeoutSecond)*time.Second)

	// Log sink: Postgres always, Kafka when a logs topic is configured
	var sink services.LogSink = logsRepo
	if kafkaLogsTopic != "" {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:    kafkaLogsTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writer.Close()
		sink = services.NewMultiSink(logsRepo, services.NewKafkaLogSink(writer))
	}

	// Initialize services
	authService := services.NewAuthService(credsRepo, ledger)
	deliveryService := services.NewDeliveryService(authService, ledger, nil)
	queueService := services.NewOfflineQueueService(queueRepo, deliveryService, dedupRepo, sink)

	prober, err := services.NewDialProber(ledgerURL, 0)
	if err != nil {
		return fmt.Errorf("invalid ledger URL: %w", err)
	}

	pipeline := services.NewPipelineService(dedupRepo, deliveryService, queueService, prober, sink, eventBuffer)
	monitor := services.NewNetworkMonitor(prober, queueService,
		time.Duration(netCheckIntervalSecond)*time.Second, 0)
	sweeper := services.NewDedupSweeper(dedupRepo, 0)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	var workers sync.WaitGroup
	workers.Add(3)
	go func() {
		defer workers.Done()
		pipeline.Run(ctxShutdown)
	}()
	go func() {
		defer workers.Done()
		monitor.Run(ctxShutdown)
	}()
	go func() {
		defer workers.Done()
		sweeper.Run(ctxShutdown)
	}()

	if eventSource == "kafka" {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: strings.Split(kafkaBrokers, ","),
			GroupID: kafkaGroupID,
			Topic:   kafkaNotificationsTopic,
		})
		defer reader.Close()

		source := services.NewKafkaEventSource(reader, pipeline)
		workers.Add(1)
		go func() {
			defer workers.Done()
			source.Run(ctxShutdown)
		}()
		logger.Log.Infof("Consuming notifications from Kafka topic %s", kafkaNotificationsTopic)
	}

	// Re-attempt anything left over from the previous run
	go queueService.Flush(ctxShutdown)

	// Initialize handlers
	notificationHandler := handlers.NewNotificationHandler(pipeline)
	loginHandler := handlers.NewLoginHandler(authService)
	logoutHandler := handlers.NewLogoutHandler(authService)
	logsHandler := handlers.NewGetLogsHandler(logsRepo)
	statusHandler := handlers.NewStatusHandler(authService, queueService)
	flushHandler := handlers.NewFlushHandler(queueService)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", loginHandler)
		r.Post("/logout", logoutHandler)
		r.Get("/logs", logsHandler)
		r.Get("/status", statusHandler)
		r.Post("/queue/flush", flushHandler)

		if eventSource == "http" {
			r.Group(func(r chi.Router) {
				r.Use(middlewares.IngestKeyMiddleware(ingestKey))
				r.Post("/notifications", notificationHandler)
			})
		}
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	stop()
	workers.Wait()

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
