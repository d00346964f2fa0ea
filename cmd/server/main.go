package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
	"github.com/shopmetrics/pricecast/internal/api"
	"github.com/shopmetrics/pricecast/internal/cache"
	"github.com/shopmetrics/pricecast/internal/config"
	"github.com/shopmetrics/pricecast/internal/repository/postgres"
	"github.com/shopmetrics/pricecast/internal/service"
	"github.com/shopmetrics/pricecast/internal/storage"
	"github.com/shopmetrics/pricecast/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize summary cache
	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Summary cache unavailable, falling back to noop")
		summaryCache = cache.NewNoopSummaryCache()
	}

	// Initialize report archive
	var reports storage.ObjectStorage
	if cfg.Reports.Enabled {
		client, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.Reports.Endpoint,
			AccessKey: cfg.Reports.AccessKey,
			SecretKey: cfg.Reports.SecretKey,
			Bucket:    cfg.Reports.Bucket,
			Region:    cfg.Reports.Region,
			UseSSL:    cfg.Reports.UseSSL,
		})
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize report storage")
		}
		reports = client
	}

	// Initialize services
	productRepo := postgres.NewProductRepository(db)
	services := &api.Services{
		ProductService:  service.NewProductService(productRepo, summaryCache),
		ForecastService: service.NewForecastService(productRepo, cfg.Engine.ProjectionYears),
		PricingService:  service.NewPricingService(productRepo, summaryCache, reports, cfg.Engine.SummaryWorkers),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	opsSrv := newOpsServer(cfg.Server.OpsPort, db)

	// Start servers in goroutines
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()
	go func() {
		logger.Log.Info().Str("port", cfg.Server.OpsPort).Msg("Starting ops server")
		if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start ops server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	if err := opsSrv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Ops server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

// newOpsServer exposes liveness and readiness on a side port, away
// from the public API surface.
func newOpsServer(port string, db *postgres.DB) *http.Server {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("database unavailable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	}).Methods("GET")

	return &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
}
