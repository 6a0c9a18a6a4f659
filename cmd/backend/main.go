package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"NYCU-SDC/photo-survey-backend/internal"
	"NYCU-SDC/photo-survey-backend/internal/config"
	"NYCU-SDC/photo-survey-backend/internal/contact"
	"NYCU-SDC/photo-survey-backend/internal/cors"
	"NYCU-SDC/photo-survey-backend/internal/fingerprint"
	"NYCU-SDC/photo-survey-backend/internal/mail"
	"NYCU-SDC/photo-survey-backend/internal/notify"
	"NYCU-SDC/photo-survey-backend/internal/slack"
	"NYCU-SDC/photo-survey-backend/internal/survey"
	"NYCU-SDC/photo-survey-backend/internal/survey/mongostore"
	"NYCU-SDC/photo-survey-backend/internal/survey/submit"
	"NYCU-SDC/photo-survey-backend/internal/trace"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/resend/resend-go/v2"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.6.1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var AppName = "no-app-name"

var Version = "no-version"

var BuildTime = "no-build-time"

var CommitHash = "no-commit-hash"

var Environment = "no-env"

// stores bundles the per-variant repositories of the selected storage driver.
type stores struct {
	photographer submit.Store[survey.PhotographerAnswers]
	user         submit.Store[survey.UserAnswers]
	close        func(ctx context.Context) error
}

func main() {
	AppName = os.Getenv("APP_NAME")
	if AppName == "" {
		AppName = "photo-survey-backend"
	}

	if BuildTime == "no-build-time" {
		now := time.Now()
		BuildTime = "not provided (now: " + now.Format(time.RFC3339) + ")"
	}

	Environment = os.Getenv("ENV")
	if Environment == "" {
		Environment = "no-env"
	}

	appMetadata := []zap.Field{
		zap.String("app_name", AppName),
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("commit_hash", CommitHash),
		zap.String("environment", Environment),
	}

	cfg, cfgLog := config.Load()
	err := cfg.Validate()
	if err != nil {
		switch {
		case errors.Is(err, config.ErrDatabaseURLRequired):
			title := "Database URL is required"
			message := "Please set the DATABASE_URL environment variable or provide a config file with the database_url key."
			log.Fatal(EarlyApplicationFailed(title, message))
		case errors.Is(err, config.ErrMongoURLRequired):
			title := "MongoDB URL is required"
			message := "Please set the MONGO_URL environment variable or provide a config file with the mongo_url key."
			log.Fatal(EarlyApplicationFailed(title, message))
		case errors.Is(err, config.ErrUnknownStorageDriver):
			title := "Unknown storage driver"
			message := "Set STORAGE_DRIVER (or storage_driver) to either \"postgres\" or \"mongo\"."
			log.Fatal(EarlyApplicationFailed(title, message))
		default:
			log.Fatalf("Failed to validate config: %v, exiting...", err)
		}
	}

	logger, err := initLogger(&cfg, appMetadata)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v, exiting...", err)
	}

	cfgLog.FlushToZap(logger)

	logger.Info("Starting application...", zap.String("storage_driver", cfg.StorageDriver))

	shutdown, err := initOpenTelemetry(AppName, Version, BuildTime, CommitHash, Environment, cfg.OtelCollectorUrl)
	if err != nil {
		logger.Fatal("Failed to initialize OpenTelemetry", zap.Error(err))
	}

	surveyStores, err := initStores(context.Background(), &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize survey storage", zap.Error(err))
	}

	validator := internal.NewValidator()
	problemWriter := internal.NewProblemWriter()
	resolver := fingerprint.NewResolver(logger)

	if cfg.SlackWebhookURL == "" {
		logger.Warn("Slack webhook URL not configured, survey notifications will be skipped")
	}
	dispatcher := notify.NewDispatcher(logger, slack.NewNotifier(logger, cfg.SlackWebhookURL), cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.NotifyTimeout)

	// Service
	photographerService := submit.NewService[survey.PhotographerAnswers](logger, surveyStores.photographer, dispatcher)
	userService := submit.NewService[survey.UserAnswers](logger, surveyStores.user, dispatcher)
	contactService := contact.NewService(logger, initMailSender(&cfg, logger), mail.Address{Name: cfg.MailName, Address: cfg.MailUser}, cfg.SiteName)

	// Handler
	photographerHandler := submit.NewHandler[survey.PhotographerAnswers](logger, validator, resolver, photographerService)
	userHandler := submit.NewHandler[survey.UserAnswers](logger, validator, resolver, userService)
	contactHandler := contact.NewHandler(logger, validator, problemWriter, contactService)

	// Middleware
	traceMiddleware := trace.NewMiddleware(logger, cfg.Debug)
	corsMiddleware := cors.NewMiddleware(logger, cfg.AllowOrigins)

	// Basic Middleware (Tracing and Recovery)
	basicMiddleware := middleware.NewSet(traceMiddleware.RecoverMiddleware)
	basicMiddleware = basicMiddleware.Append(traceMiddleware.TraceMiddleWare)

	// Public Middleware (Tracing, Recovery, CORS and client attributes)
	publicMiddleware := middleware.NewSet(traceMiddleware.RecoverMiddleware)
	publicMiddleware = publicMiddleware.Append(traceMiddleware.TraceMiddleWare)
	publicMiddleware = publicMiddleware.Append(corsMiddleware.HandlerFunc)
	publicMiddleware = publicMiddleware.Append(traceMiddleware.ClientMiddleware)

	// HTTP Server
	mux := http.NewServeMux()

	// Health check route
	mux.HandleFunc("GET /api/healthz", basicMiddleware.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			logger.Error("Failed to write response", zap.Error(err))
		}
	}))

	// Survey routes
	mux.HandleFunc("POST /api/survey/photographer", publicMiddleware.HandlerFunc(photographerHandler.SubmitHandler))
	mux.HandleFunc("OPTIONS /api/survey/photographer", corsMiddleware.PreflightHandler())
	mux.HandleFunc("POST /api/survey/user", publicMiddleware.HandlerFunc(userHandler.SubmitHandler))
	mux.HandleFunc("OPTIONS /api/survey/user", corsMiddleware.PreflightHandler())

	// Contact route
	mux.HandleFunc("POST /api/emails", publicMiddleware.HandlerFunc(contactHandler.SendHandler))
	mux.HandleFunc("OPTIONS /api/emails", corsMiddleware.PreflightHandler())

	// handle interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:    cfg.Host + ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info("Starting listening request", zap.String("host", cfg.Host), zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Fail to start server with error", zap.Error(err))
		}
	}()

	// wait for context close
	<-ctx.Done()
	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	notifyCtx, notifyCancel := context.WithTimeout(context.Background(), cfg.NotifyTimeout)
	defer notifyCancel()
	if err := dispatcher.Shutdown(notifyCtx); err != nil {
		logger.Error("Dropped pending notifications", zap.Error(err))
	}

	storeCtx, storeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer storeCancel()
	if err := surveyStores.close(storeCtx); err != nil {
		logger.Error("Failed to close survey storage", zap.Error(err))
	}

	otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer otelCancel()
	if err := shutdown(otelCtx); err != nil {
		logger.Error("Forced to shutdown OpenTelemetry", zap.Error(err))
	}

	logger.Info("Successfully shutdown")
}

func initLogger(cfg *config.Config, appMetadata []zap.Field) (*zap.Logger, error) {
	var err error
	var logger *zap.Logger
	if cfg.Debug {
		logger, err = logutil.ZapDevelopmentConfig().Build()
		if err != nil {
			return nil, err
		}
		logger.Info("Running in debug mode", appMetadata...)
	} else {
		logger, err = logutil.ZapProductionConfig().Build()
		if err != nil {
			return nil, err
		}

		logger = logger.With(appMetadata...)
	}
	defer func() {
		err := logger.Sync()
		if err != nil {
			zap.S().Errorw("Failed to sync logger", zap.Error(err))
		}
	}()

	return logger, nil
}

func initStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (stores, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMongo:
		client, err := initMongoClient(ctx, cfg.MongoURL)
		if err != nil {
			return stores{}, err
		}

		db := client.Database(cfg.MongoDatabase)
		photographerStore := mongostore.NewStore[survey.PhotographerAnswers](logger, db)
		userStore := mongostore.NewStore[survey.UserAnswers](logger, db)

		for _, store := range []interface{ EnsureIndexes(context.Context) error }{photographerStore, userStore} {
			err = store.EnsureIndexes(ctx)
			if err != nil {
				return stores{}, err
			}
		}

		return stores{
			photographer: photographerStore,
			user:         userStore,
			close:        client.Disconnect,
		}, nil

	default:
		logger.Info("Starting database migration...")

		err := databaseutil.MigrationUp(cfg.MigrationSource, cfg.DatabaseURL, logger)
		if err != nil {
			return stores{}, fmt.Errorf("failed to run database migration: %w", err)
		}

		dbPool, err := initDatabasePool(cfg.DatabaseURL)
		if err != nil {
			return stores{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}

		return stores{
			photographer: survey.NewService[survey.PhotographerAnswers](logger, dbPool),
			user:         survey.NewService[survey.UserAnswers](logger, dbPool),
			close: func(context.Context) error {
				dbPool.Close()
				return nil
			},
		}, nil
	}
}

func initDatabasePool(databaseURL string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	return dbPool, nil
}

func initMongoClient(ctx context.Context, mongoURL string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	err = client.Ping(connectCtx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// initMailSender returns nil when the selected provider is missing settings;
// the contact endpoint then reports a send failure instead of crashing.
func initMailSender(cfg *config.Config, logger *zap.Logger) mail.Sender {
	if !cfg.MailConfigured() {
		logger.Warn("Mail provider not configured, contact messages cannot be relayed", zap.String("provider", cfg.MailProvider))
		return nil
	}

	switch cfg.MailProvider {
	case config.MailProviderResend:
		return mail.NewResendSender(logger, resend.NewClient(cfg.ResendAPIKey), cfg.ResendFrom)
	default:
		return mail.NewSMTPSender(logger, mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		})
	}
}

func initOpenTelemetry(appName, version, buildTime, commitHash, environment, otelCollectorUrl string) (func(context.Context) error, error) {
	ctx := context.Background()

	serviceName := semconv.ServiceNameKey.String(appName)
	serviceVersion := semconv.ServiceVersionKey.String(version)
	serviceNamespace := semconv.ServiceNamespaceKey.String("photo-survey")
	serviceCommitHash := semconv.ServiceVersionKey.String(commitHash)
	serviceEnvironment := semconv.DeploymentEnvironmentKey.String(environment)

	res, err := resource.New(ctx,
		resource.WithAttributes(
			serviceName,
			serviceVersion,
			serviceNamespace,
			serviceCommitHash,
			serviceEnvironment,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providerOptions := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if otelCollectorUrl != "" {
		conn, err := initGrpcConn(otelCollectorUrl)
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
		}

		traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
		providerOptions = append(providerOptions, sdktrace.WithSpanProcessor(bsp))
	}

	tracerProvider := sdktrace.NewTracerProvider(providerOptions...)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tracerProvider.Shutdown, nil
}

func initGrpcConn(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	return conn, nil
}

func EarlyApplicationFailed(title, action string) string {
	result := `
-----------------------------------------
Application Failed to Start
-----------------------------------------

# What's wrong?
%s

# How to fix it?
%s

`

	result = fmt.Sprintf(result, title, action)
	return result
}
