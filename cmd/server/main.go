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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "ledgerbook/docs"
	"ledgerbook/internal/cache"
	"ledgerbook/internal/config"
	"ledgerbook/internal/email/noop"
	"ledgerbook/internal/email/ses"
	"ledgerbook/internal/export"
	"ledgerbook/internal/handler"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/middleware"
	"ledgerbook/internal/port"
	"ledgerbook/internal/printing"
	"ledgerbook/internal/repository/postgres"
	"ledgerbook/internal/router"
	"ledgerbook/internal/service"
	s3storage "ledgerbook/internal/storage/s3"
)

// @title Ledgerbook API
// @version 1.0
// @description Invoicing, inventory and GST totals for small businesses.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := cache.NewClient(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	businessRepo := postgres.NewBusinessRepo(db)
	userRepo := postgres.NewUserRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	invRepo := postgres.NewInventoryRepo(db)
	jobRepo := postgres.NewExportJobRepo(db)
	registrar := postgres.NewRegistrar(db)
	draftStore := cache.NewDraftStore(redisClient, "ledgerbook:draft:")

	// Initialize storage, email and PDF rendering
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender(zl)
	}

	renderer := printing.NewChromeRenderer(printing.ChromeConfig{
		RemoteURL: cfg.Export.ChromeRemoteURL,
		NoSandbox: cfg.Export.ChromeNoSandbox,
	}, zl)
	defer renderer.Close()
	exporter := export.NewExporter(renderer)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, businessRepo, cfg.JWT)
	registrationSvc := service.NewRegistrationService(registrar, authSvc)
	businessSvc := service.NewBusinessService(businessRepo)
	userSvc := service.NewUserService(userRepo)
	docSvc := service.NewDocumentService(docRepo, zl)
	invSvc := service.NewInventoryService(invRepo, cfg.Import.MaxRows, zl)
	exportSvc := service.NewExportService(docRepo, invRepo, jobRepo, s3Client, emailSender, exporter, service.ExportConfig{
		MaxRows:       cfg.Export.MaxRows,
		Bucket:        cfg.S3.Bucket,
		KeyPrefix:     cfg.Export.KeyPrefix,
		PresignExpiry: cfg.S3.PresignExpiry,
	}, zl)
	draftSvc := service.NewDraftService(draftStore, docSvc, service.DraftConfig{
		SaveDebounce: cfg.Draft.SaveDebounce,
		TTL:          cfg.Draft.TTL,
	}, zl)
	defer draftSvc.Close()

	// Initialize handlers
	handlers := router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc, registrationSvc),
		Business:  handler.NewBusinessHandler(businessSvc),
		User:      handler.NewUserHandler(userSvc),
		Document:  handler.NewDocumentHandler(docSvc, exportSvc),
		Inventory: handler.NewInventoryHandler(invSvc, exportSvc, cfg.Import.MaxFileSizeMB<<20),
		Export:    handler.NewExportHandler(exportSvc),
		Draft:     handler.NewDraftHandler(draftSvc),
		Health: handler.NewHealthHandler(db, handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})),
	}

	limiter := middleware.NewBusinessRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.EntryTTL)

	// Setup router
	r := router.Setup(authSvc, handlers, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimiter:    limiter,
		Swagger:        cfg.Server.Environment != "production",
	}, zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start background work
	go limiter.Run(time.Minute, ctx.Done())

	worker := service.NewExportWorker(jobRepo, exportSvc, service.ExportWorkerConfig{
		PollInterval: time.Duration(cfg.Export.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Export.Concurrency,
		JobTimeout:   time.Duration(cfg.Export.JobTimeoutSecs) * time.Second,
	}, zl)
	workerDone := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			stop()
			<-workerDone
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	<-workerDone
	return nil
}
