package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/tmcf/custaudit/internal/assess"
	"github.com/tmcf/custaudit/internal/config"
	"github.com/tmcf/custaudit/internal/db"
	"github.com/tmcf/custaudit/internal/logging"
	"github.com/tmcf/custaudit/internal/middleware"
	"github.com/tmcf/custaudit/internal/repository"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.Log)

	opts := []assess.Option{
		assess.WithReferenceYear(cfg.Audit.ReferenceYear),
	}

	var runRepo repository.AuditRunRepository
	if cfg.Database.Enabled {
		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			logger.Fatalf("failed to connect to database: %v", err)
		}
		defer conn.Close()

		if err := db.RunMigrations(ctx, conn.Pool, "./migrations"); err != nil {
			logger.Fatalf("failed to run migrations: %v", err)
		}

		runRepo = repository.NewAuditRunRepository(conn.Pool)
		opts = append(opts, assess.WithRunRepository(runRepo))
		logger.Info("run history persistence enabled")
	}

	service := assess.NewService(logger, opts...)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	router := chi.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	router.Use(corsHandler.Handler)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Method(http.MethodPost, "/api/assess", assess.NewHTTPHandler(service))
	router.Get("/api/runs", assess.ListRunsHandler(runRepo, logger))
	router.Get("/api/runs/{id}/issues", assess.ListRunIssuesHandler(runRepo, logger))

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("starting assessment server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}
