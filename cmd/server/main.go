// Package main initializes and starts the ContactKeeper API server,
// setting up configuration, logging, database connections, repositories,
// services, handlers, and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"github.com/atinyakov/ContactKeeper/internal/config"
	"github.com/atinyakov/ContactKeeper/internal/db"
	"github.com/atinyakov/ContactKeeper/internal/logger"
	"github.com/atinyakov/ContactKeeper/internal/metrics"
	"github.com/atinyakov/ContactKeeper/internal/repository"
	"github.com/atinyakov/ContactKeeper/internal/server/handler/http"
	"github.com/atinyakov/ContactKeeper/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		return
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}
	defer postgresDB.Close()

	// Purge accounts removed longer than the retention period.
	db.StartRemovedAccountCleaner(ctx, postgresDB,
		options.CleanupInterval,
		options.RemovedRetention,
		zapLogger,
	)

	// Initialize repositories for the account registry and preferences.
	accountRepo := repository.NewPostgresAccountRepository(postgresDB)
	prefRepo := repository.NewPostgresPreferenceRepository(postgresDB)

	// Initialize business-logic services.
	m := metrics.New()
	accountService := service.NewAccountService(accountRepo)
	defaultService := service.NewDefaultAccountService(
		accountService, prefRepo, options.DefaultAccountKey, zapLogger, m,
	)

	// Build the router with middleware and routes.
	router := http.NewRouter(
		&http.AccountHandler{AccountService: accountService, Log: zapLogger},
		&http.DefaultAccountHandler{DefaultAccountService: defaultService, Log: zapLogger},
		m.Handler(),
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	if options.TLSCert != "" && options.TLSKey != "" {
		zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("server failed", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
