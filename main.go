package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"go.uber.org/zap"

	"habitTrackerAPI/handlers"
	"habitTrackerAPI/internal/config"
	"habitTrackerAPI/internal/db"
	"habitTrackerAPI/internal/logger"
	"habitTrackerAPI/middleware"
	"habitTrackerAPI/services"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, applied, err := db.OpenRecordStore(ctx, cfg.DatabaseURL, cfg.DBMaxConns, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to open record store", zap.Error(err))
	}
	defer func() {
		log.Info("Closing record store...")
		store.Close()
	}()
	log.Info("Record store ready",
		zap.Bool("postgres", db.IsPostgresURL(cfg.DatabaseURL)),
		zap.Int("migrationsApplied", applied))

	middleware.InitPrometheus()

	actionService := services.NewActionService(store, log)
	recordService := services.NewRecordService(store, log)
	signatureService := services.NewSignatureService(cfg.Cloudinary)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	appCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	go rateLimiter.CleanupVisitors(appCtx)

	r := handlers.NewRouter(handlers.RouterDeps{
		Invoke:      handlers.NewInvokeHandler(actionService, log),
		Records:     handlers.NewRecordsHandler(recordService),
		Checkin:     handlers.NewCheckinHandler(recordService),
		Signature:   handlers.NewSignatureHandler(signatureService),
		Meta:        handlers.NewMetaHandler(store, log),
		RateLimiter: rateLimiter,
		MetricsUser: cfg.MetricsUser,
		MetricsPass: cfg.MetricsPass,
		Log:         log,
	})

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{
			"Content-Type",
			middleware.HeaderCallerID,
			middleware.HeaderCallerScopes,
			middleware.HeaderCallerUTCOffset,
			middleware.HeaderRequestID,
		}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", middleware.HeaderRequestID}),
	)

	port := ":" + cfg.Port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("addr", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Info("Got signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server shutdown complete")
}
