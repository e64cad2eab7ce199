package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/arrieta/campus-tickets/internal/app"
	"github.com/arrieta/campus-tickets/internal/clock"
	"github.com/arrieta/campus-tickets/internal/config"
	"github.com/arrieta/campus-tickets/internal/storage/postgres"
	transporthttp "github.com/arrieta/campus-tickets/internal/transport/http"
	"github.com/arrieta/campus-tickets/migrations"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if path, err := config.LoadDotEnv(); err != nil {
		logger.WithError(err).Warn("failed to load .env")
	} else if path != "" {
		logger.WithField("path", path).Info("loaded env file")
	}

	cfg, err := config.Parse()
	if err != nil {
		logger.WithError(err).Fatal("parse config")
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.StartupTimeout)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("connect to db")
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.WithError(err).Fatal("db ping")
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.WithError(err).Fatal("apply migrations")
	}

	eventRepo := postgres.NewEventRepository(pool)
	eventSvc := app.NewEventService(eventRepo)
	ticketRepo := postgres.NewTicketRepository(pool)
	ticketSvc := app.NewTicketService(ticketRepo)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	purchaseSvc := app.NewPurchaseService(purchaseRepo, clock.NewSystem())

	handler := transporthttp.NewRouter(transporthttp.Services{
		Events: &transporthttp.EventServices{
			Reader:    eventSvc,
			Authoring: eventSvc,
		},
		Purchase: purchaseSvc,
		Tickets:  ticketSvc,
	}, cfg.CORSOrigins, logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.WithField("port", cfg.Port).Info("api listening")

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server error")
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Error("server shutdown error")
	}
	logger.Info("server stopped")
}
