package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/latoulicious/setforge/internal/config"
	"github.com/latoulicious/setforge/internal/handlers"
	"github.com/latoulicious/setforge/internal/reporter"
	"github.com/latoulicious/setforge/internal/version"
	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/service"
	"github.com/latoulicious/setforge/pkg/database"
	"github.com/latoulicious/setforge/pkg/database/migration"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/latoulicious/setforge/pkg/metrics"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", ".", "Directory holding config/ and .env")
	flag.Parse()

	if err := run(*configDir); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

// run wires every component and serves until SIGINT or SIGTERM
func run(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	base, err := logging.BuildZap(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.NewGormDB(cfg.Database.URL,
		database.WithLogger(base.Named("gorm")),
		database.WithPool(cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := migration.RunMigration(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	manager := database.NewManager(db)
	defer manager.Close()

	loggers := newLoggerFactory(base, cfg, manager)
	defer func() { _ = loggers.Sync() }()
	systemLogger := loggers.CreateLogger("system")
	systemLogger.Info("Starting setforge", map[string]interface{}{
		"version":     version.Get().String(),
		"driver":      database.DriverFor(cfg.Database.URL),
		"log_to_db":   cfg.Logger.SaveToDB,
		"listen_addr": cfg.Addr(),
	})

	m := metrics.New()
	cat := service.NewCatalog(catalog.NewService(manager, loggers, m))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Reporter.Enabled {
		var opts []reporter.Option
		if cfg.Logger.SaveToDB {
			opts = append(opts, reporter.WithLogRetention(manager.Logs, cfg.Logger.Retention))
		}
		rep := reporter.New(cat, loggers.CreateLogger("reporter"), cfg.Reporter.Schedule, opts...)
		if err := rep.Start(ctx); err != nil {
			return err
		}
		defer rep.Stop()
	}

	server := &http.Server{
		Addr: cfg.Addr(),
		Handler: handlers.NewRouter(handlers.Dependencies{
			Catalog:        cat,
			Loggers:        loggers,
			Metrics:        m,
			DB:             manager,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     zap.NewStdLog(base.Named("http")),
	}

	serveErr := make(chan error, 1)
	go func() {
		systemLogger.Info("HTTP server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	systemLogger.Info("Shutting down gracefully...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("HTTP server shutdown error", err, nil)
	}

	systemLogger.Info("Application shutdown complete", nil)
	return nil
}

// newLoggerFactory persists WARN and above to app_logs when enabled
func newLoggerFactory(base *zap.Logger, cfg *config.Config, manager *database.Manager) *logging.DefaultLoggerFactory {
	if !cfg.Logger.SaveToDB {
		return logging.NewLoggerFactory(base)
	}
	return logging.NewLoggerFactory(base,
		logging.WithPersistence(logging.NewGormLogStore(manager.Logs), logging.LevelWarn),
	)
}
