package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/application/invoicing"
	webhookapp "github.com/orderdocs/backend/internal/application/webhook"
	"github.com/orderdocs/backend/internal/infrastructure/config"
	"github.com/orderdocs/backend/internal/infrastructure/logger"
	"github.com/orderdocs/backend/internal/infrastructure/rendering"
	"github.com/orderdocs/backend/internal/infrastructure/storage"
	"github.com/orderdocs/backend/internal/infrastructure/telegram"
	"github.com/orderdocs/backend/internal/interfaces/http/handler"
	"github.com/orderdocs/backend/internal/interfaces/http/middleware"
	"github.com/orderdocs/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting order document service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Rendering: one Chrome-backed renderer serves both the measurement
	// pass and final PDF output
	renderer, err := rendering.NewChromedpRenderer(&rendering.ChromedpConfig{
		DefaultTimeout: cfg.Render.Timeout,
		RemoteURL:      cfg.Render.RemoteURL,
		NoSandbox:      cfg.Render.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing renderer", zap.Error(err))
		}
	}()

	templates, err := rendering.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to parse document templates", zap.Error(err))
	}

	// Artifact storage
	store, err := buildArtifactStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize artifact storage", zap.Error(err))
	}

	// Telegram delivery is optional
	var notifier invoicing.Notifier
	if cfg.Telegram.Enabled {
		botNotifier, err := telegram.NewBotNotifier(&telegram.BotConfig{
			Token:          cfg.Telegram.Token,
			GroupChatID:    cfg.Telegram.GroupChatID,
			APIBaseURL:     cfg.Telegram.APIBaseURL,
			TimeoutSeconds: cfg.Telegram.TimeoutSeconds,
		}, telegram.NewFileDirectory(cfg.Telegram.UsersFile), telegram.WithNotifierLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize telegram notifier", zap.Error(err))
		}
		notifier = botNotifier
		log.Info("Telegram delivery enabled", zap.String("group", cfg.Telegram.GroupChatID))
	}

	// Application services
	invoiceService := invoicing.NewService(invoicing.ServiceParams{
		Templates: templates,
		Estimator: invoicing.NewPaginationEstimator(renderer),
		Renderer:  renderer,
		Store:     store,
		Notifier:  notifier,
		StoreInfo: rendering.StoreInfo{
			Name:    cfg.Store.Name,
			Phone:   cfg.Store.Phone,
			Address: cfg.Store.Address,
		},
		FontPath: cfg.Render.FontPath,
		Logger:   log,
	})
	webhookService := webhookapp.NewService(cfg.Webhook.Secret, invoiceService, log)

	if cfg.Webhook.Secret == "" {
		log.Warn("Webhook signature verification is disabled")
	}

	// HTTP server
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	router.NewRouter(engine).
		Register(handler.NewWebhookHandler(webhookService, log)).
		Register(handler.NewHealthHandler(cfg.App.Name)).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildArtifactStore selects the configured storage backend.
func buildArtifactStore(cfg *config.Config, log *zap.Logger) (storage.ArtifactStore, error) {
	if cfg.Storage.Backend == "s3" {
		s3Store, err := storage.NewS3Store(&storage.S3Config{
			Endpoint:     cfg.Storage.S3.Endpoint,
			Region:       cfg.Storage.S3.Region,
			Bucket:       cfg.Storage.S3.Bucket,
			AccessKey:    cfg.Storage.S3.AccessKey,
			SecretKey:    cfg.Storage.S3.SecretKey,
			Prefix:       cfg.Storage.S3.Prefix,
			UseSSL:       cfg.Storage.S3.UseSSL,
			UsePathStyle: cfg.Storage.S3.UsePathStyle,
		}, storage.WithS3Logger(log))
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s3Store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3Store, nil
	}
	return storage.NewFilesystemStore(cfg.Storage.BasePath, storage.WithFilesystemLogger(log)), nil
}
