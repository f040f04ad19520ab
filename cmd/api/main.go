package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/qonuniy/api/internal/content"
	"github.com/qonuniy/api/internal/domain"
	"github.com/qonuniy/api/internal/handlers"
	"github.com/qonuniy/api/internal/platform/config"
	"github.com/qonuniy/api/internal/platform/events"
	pfirestore "github.com/qonuniy/api/internal/platform/firestore"
	"github.com/qonuniy/api/internal/platform/observability"
	firestoreRepo "github.com/qonuniy/api/internal/repositories/firestore"
	"github.com/qonuniy/api/internal/services"
	"github.com/qonuniy/api/internal/state"
)

func main() {
	ctx := context.Background()
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")
	ctx = observability.WithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	firestoreProvider := pfirestore.NewProvider(cfg.Firestore, cfg.Firebase)
	firestoreClient, err := firestoreProvider.Client(ctx)
	if err != nil {
		logger.Fatal("failed to initialise firestore client", zap.Error(err))
	}
	defer func() {
		if err := firestoreProvider.Close(); err != nil {
			logger.Warn("firestore close error", zap.Error(err))
		}
	}()

	contentRepo, err := firestoreRepo.NewContentRepository(firestoreProvider, cfg.Content.ArticlesCollection, cfg.Content.ProjectsCollection)
	if err != nil {
		logger.Fatal("failed to initialise content repository", zap.Error(err))
	}

	feed, err := content.NewFeed(contentRepo, logger.Named("feed"))
	if err != nil {
		logger.Fatal("failed to initialise content feed", zap.Error(err))
	}

	displayService, err := services.NewDisplayService(services.DisplayServiceDeps{
		Feed:   feed,
		Logger: newServiceLogger(logger.Named("display")),
	})
	if err != nil {
		logger.Fatal("failed to initialise display service", zap.Error(err))
	}

	feedCtx, feedCancel := context.WithCancel(ctx)
	defer feedCancel()
	if err := displayService.Start(feedCtx); err != nil {
		logger.Fatal("failed to start content feed subscriptions", zap.Error(err))
	}
	defer displayService.Stop()

	contentService, err := services.NewContentService(services.ContentServiceDeps{
		Repository:    contentRepo,
		RelatedLimit:  cfg.Content.RelatedLimit,
		ExcerptLength: cfg.Content.ExcerptLength,
		Logger:        newServiceLogger(logger.Named("content")),
	})
	if err != nil {
		logger.Fatal("failed to initialise content service", zap.Error(err))
	}

	viewDeps := services.ViewServiceDeps{
		Incrementer: contentRepo,
		Clock:       time.Now,
		Logger:      newServiceLogger(logger.Named("views")),
	}
	if cfg.PubSub.ViewTopic != "" {
		var pubsubOpts []option.ClientOption
		if credentials := strings.TrimSpace(cfg.Firebase.CredentialsFile); credentials != "" {
			pubsubOpts = append(pubsubOpts, option.WithCredentialsFile(credentials))
		}
		pubsubClient, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, pubsubOpts...)
		if err != nil {
			logger.Fatal("failed to initialise pubsub client", zap.Error(err))
		}
		defer func() {
			if err := pubsubClient.Close(); err != nil {
				logger.Warn("pubsub close error", zap.Error(err))
			}
		}()

		topic := pubsubClient.Topic(cfg.PubSub.ViewTopic)
		defer topic.Stop()

		publisher, err := events.NewPubSubViewPublisher(topic)
		if err != nil {
			logger.Fatal("failed to initialise view event publisher", zap.Error(err))
		}
		viewDeps.Events = publisher
	}

	viewService, err := services.NewViewService(viewDeps)
	if err != nil {
		logger.Fatal("failed to initialise view service", zap.Error(err))
	}

	contentHandlers, err := handlers.NewContentHandlers(handlers.ContentHandlersDeps{
		Display: displayService,
		Content: contentService,
		Views:   viewService,
		Logger:  newServiceLogger(logger.Named("handlers")),
	})
	if err != nil {
		logger.Fatal("failed to initialise content handlers", zap.Error(err))
	}

	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildInfoFromEnv(startedAt)),
		handlers.WithReadinessCheck(firestoreReadinessCheck(firestoreClient)),
	)

	projectID := traceProjectID(cfg)
	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(projectID),
		observability.RecoveryMiddleware(logger.Named("http")),
		state.ViewerContextMiddleware,
		observability.RequestLoggerMiddleware(projectID),
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithArticleRoutes(contentHandlers.Routes(domain.KindArticle)),
		handlers.WithProjectRoutes(contentHandlers.Routes(domain.KindProject)),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("qonuniy api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newServiceLogger(logger *zap.Logger) services.LoggerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(_ context.Context, event string, fields map[string]any) {
		zFields := make([]zap.Field, 0, len(fields)+1)
		zFields = append(zFields, zap.String("event", event))
		for k, v := range fields {
			zFields = append(zFields, zap.Any(k, v))
		}
		logger.Info("service log", zFields...)
	}
}

func buildInfoFromEnv(started time.Time) handlers.BuildInfo {
	version := strings.TrimSpace(os.Getenv("QONUNIY_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	commit := strings.TrimSpace(os.Getenv("QONUNIY_BUILD_COMMIT_SHA"))
	if commit == "" {
		commit = "unknown"
	}
	environment := strings.TrimSpace(os.Getenv("QONUNIY_ENVIRONMENT"))
	if environment == "" {
		environment = "local"
	}
	return handlers.BuildInfo{
		Version:     version,
		CommitSHA:   commit,
		Environment: environment,
		StartedAt:   started,
	}
}

func firestoreReadinessCheck(client *firestore.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		iter := client.Collections(ctx)
		if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
			return err
		}
		return nil
	}
}

func traceProjectID(cfg config.Config) string {
	if id := strings.TrimSpace(cfg.Firebase.ProjectID); id != "" {
		return id
	}
	return strings.TrimSpace(cfg.Firestore.ProjectID)
}
