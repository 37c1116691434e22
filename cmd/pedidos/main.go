package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pedidos/internal/config"
	"pedidos/internal/database"
	"pedidos/internal/events"
	"pedidos/internal/handler"
	"pedidos/internal/metrics"
	"pedidos/internal/service"
	"pedidos/internal/worker"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctxInit, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewDB(ctxInit, cfg.DatabaseURI)
	if err != nil {
		cancelInit()
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(db)

	err = database.InitSchema(ctxInit, db)
	cancelInit()
	if err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Error("failed to close event publisher", "error", err)
		}
	}()

	// Services
	authSvc := service.NewAuthService(db)
	catalogSvc := service.NewCatalogService(db)
	orderStore := service.NewOrderStore(db)

	opts := service.OrderManagerOptions{
		Publisher: publisher,
		Strict:    cfg.DispatchStrict,
	}
	if cfg.DispatchEnabled() {
		opts.Dispatcher = service.NewFabricationClient(cfg.FabricationURL, cfg.CallbackBaseURL, cfg.StockPosition, cfg.DispatchTimeout, m)
		slog.Info("fabrication dispatch enabled", "url", cfg.FabricationURL, "strict", cfg.DispatchStrict)
	} else {
		slog.Warn("fabrication dispatch disabled, orders are only persisted")
	}
	orderMgr := service.NewOrderManager(orderStore, catalogSvc, opts)

	// Worker
	reconcileWorker := worker.NewReconcileWorker(orderMgr, cfg.ReconcileInterval)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:      authSvc,
		Catalog:   catalogSvc,
		Orders:    orderMgr,
		Metrics:   m,
		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.DispatchTimeout + 10*time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reconcileWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
