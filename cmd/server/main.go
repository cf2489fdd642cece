package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"autosphere-api/internal/client"
	"autosphere-api/internal/config"
	"autosphere-api/internal/database"
	"autosphere-api/internal/handler"
	"autosphere-api/internal/logging"
	"autosphere-api/internal/repository"
	"autosphere-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting autosphere-api", zap.String("oracle", cfg.Oracle.Provider))

	ctx := context.Background()

	oracle, err := client.New(ctx, cfg.Oracle, logger)
	if err != nil {
		return fmt.Errorf("failed to create oracle client: %w", err)
	}
	defer oracle.Close()

	carSvc := service.NewCarService(oracle, logger)
	tracker := service.NewLookupTracker()
	carSvc.SetRecorder(tracker)

	routes := handler.Routes{
		Cars: handler.NewCarHandler(carSvc, logger),
		Live: handler.NewLiveHandler(tracker),
	}

	// Lookup audit log
	var db *pgxpool.Pool
	if cfg.Database.Enabled {
		logger.Info("connecting to database",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
		)
		db, err = database.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(ctx, db, logger); err != nil {
			return err
		}

		lookupRepo := repository.NewLookupLogRepo(db)
		carSvc.SetRecorder(service.MultiRecorder{tracker, lookupRepo})
		routes.Lookups = handler.NewLookupHandler(lookupRepo, logger)
		routes.Health = handler.NewHealthHandler(db, carSvc.OracleName())
		logger.Info("lookup audit log enabled")
	} else {
		routes.Health = handler.NewHealthHandler(nil, carSvc.OracleName())
	}

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      handler.NewRouter(routes, 60*time.Second),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server started", zap.String("port", cfg.APIPort))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}
