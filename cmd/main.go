package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecoheat_dashboard/internal/handlers"
	"ecoheat_dashboard/internal/logger"
	"ecoheat_dashboard/internal/repository"
	"ecoheat_dashboard/internal/repository/db"
	"ecoheat_dashboard/internal/server"
	"ecoheat_dashboard/internal/service"
	"ecoheat_dashboard/internal/upstream"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml, then init the logger with the configured level
	cfgErr := loadConfig()
	log := logger.Get(logLevel())
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open the local event DB
	eventDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := eventDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	backend := upstream.New(
		viper.GetString("backend.base_url"),
		viper.GetString("backend.token"),
		time.Duration(viper.GetInt("backend.timeout_seconds"))*time.Second,
	)
	repos := repository.NewRepository(eventDB)
	services := service.NewService(backend, repos, log)
	apiHandler := handlers.NewHandler(services, log)

	// warm up: load the day × hour grid and select the first schedule so the
	// dashboard renders immediately. Both are retried lazily on request if the
	// backend is down at boot.
	warmUp(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func logLevel() string {
	if lvl := viper.GetString("log_level"); lvl != "" {
		return lvl
	}
	return logger.InfoLevel
}

// openDB initializes the SQLite event log using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "dashboard.db")
		dbPath = "dashboard.db"
	}
	return db.InitDB(dbPath)
}

// warmUp primes the grid and schedule caches; failures are logged, not fatal.
func warmUp(services *service.Service, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := services.TimeGrid.Load(ctx); err != nil {
		log.Warnw("grid warm-up failed", "err", err)
		return
	}
	if _, err := services.Schedules.List(ctx); err != nil {
		log.Warnw("schedule warm-up failed", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
