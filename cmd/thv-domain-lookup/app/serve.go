package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/mcp-domain-registry/internal/api"
	"github.com/stacklok/mcp-domain-registry/internal/cache"
	"github.com/stacklok/mcp-domain-registry/internal/config"
	"github.com/stacklok/mcp-domain-registry/internal/db"
	"github.com/stacklok/mcp-domain-registry/internal/logger"
	"github.com/stacklok/mcp-domain-registry/internal/service"
	lookupdb "github.com/stacklok/mcp-domain-registry/internal/service/db"
	"github.com/stacklok/mcp-domain-registry/internal/telemetry"
	"github.com/stacklok/mcp-domain-registry/internal/versions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the domain lookup server",
	Long: `Start the domain lookup server to resolve domains to MCP servers.

The server requires a configuration file (--config) that specifies:
- Database connection parameters for the registry store
- Response cache TTL and sweep interval
- Telemetry settings

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second // Kubernetes-friendly shutdown time
	serverRequestTimeout   = 10 * time.Second // Lookups should respond quickly
	serverReadTimeout      = 10 * time.Second // Enough for headers and small requests
	serverWriteTimeout     = 15 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second // Keep connections alive for reuse
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	// Mark config as required
	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Load and validate configuration
	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.Server.GetAddress()
	}
	logger.Infof("Starting domain lookup server on %s", address)

	// Initialize telemetry (no-op providers when disabled)
	if cfg.Telemetry != nil && cfg.Telemetry.ServiceVersion == "" {
		cfg.Telemetry.ServiceVersion = versions.GetVersionInfo().Version
	}
	tel, err := telemetry.New(ctx, telemetry.WithTelemetryConfig(cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Failed to shut down telemetry: %v", err)
		}
	}()

	// Connect to the registry store
	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	logger.Infof("Connected to registry store at %s:%d/%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)

	// Build the lookup response cache
	ttl, err := cfg.Cache.GetTTL()
	if err != nil {
		return err
	}
	sweepInterval, err := cfg.Cache.GetSweepInterval()
	if err != nil {
		return err
	}
	responseCache := cache.New[*service.LookupResponse](
		cache.WithTTL(ttl),
		cache.WithSweepInterval(sweepInterval),
	)
	defer responseCache.Close()

	lookupMetrics, err := telemetry.NewLookupMetrics(tel.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create lookup metrics: %w", err)
	}

	// Create the lookup service
	svc, err := lookupdb.New(
		lookupdb.WithConnectionPool(pool),
		lookupdb.WithResponseCache(responseCache),
		lookupdb.WithTracer(tel.Tracer(lookupdb.ServiceTracerName)),
		lookupdb.WithLookupMetrics(lookupMetrics),
	)
	if err != nil {
		return fmt.Errorf("failed to create lookup service: %w", err)
	}

	metricsMiddleware, err := telemetry.MetricsMiddleware(tel.MeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create metrics middleware: %w", err)
	}

	// Create the lookup server with middleware
	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			metricsMiddleware,
			api.LoggingMiddleware,
		),
		api.WithMetricsHandler(tel.MetricsHandler()),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Server listening on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}
