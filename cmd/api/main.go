package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/medjourney/backend/internal/config"
	"github.com/zhouzirui/medjourney/backend/internal/handler"
	"github.com/zhouzirui/medjourney/backend/internal/pkg/logger"
	reportService "github.com/zhouzirui/medjourney/backend/internal/service/report"
	"github.com/zhouzirui/medjourney/backend/internal/store/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log)
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	store, err := db.Open(ctx, cfg.Storage)
	if err != nil {
		zlog.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			zlog.Warn("failed to close storage", zap.Error(err))
		}
	}()
	zlog.Info("storage ready", zap.String("driver", cfg.Storage.Driver), zap.String("path", cfg.Storage.Path))

	reports := reportService.NewService(store, nil, zlog)
	router := handler.NewRouter(store, reports, zlog)

	startServer(ctx, cfg.Server, router, zlog)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, zlog *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	zlog.Info("MedJourney conversation service listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		zlog.Error("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
