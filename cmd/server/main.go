// cmd/server is the event-publishing API entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asyachem/explore-events/internal/config"
	"github.com/asyachem/explore-events/internal/database"
	"github.com/asyachem/explore-events/internal/handler"
	"github.com/asyachem/explore-events/internal/repository"
	"github.com/asyachem/explore-events/internal/service"
	"github.com/asyachem/explore-events/internal/stats"
	"github.com/go-redis/redis/v8"
)

func main() {
	ctx := context.Background()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg.DB.DSN())
	if err != nil {
		slog.Error("database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		slog.Error("migrate", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to postgres", "db", cfg.DB.Name)

	// Stats collaborator; falls back to a plain HTTP client when redis is
	// not configured.
	var statsClient stats.Client = stats.NewHTTPClient(cfg.StatsURL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		statsClient = stats.NewCached(statsClient, rdb)
		slog.Info("view-count cache enabled", "addr", cfg.RedisAddr)
	}

	// Wire up layers.
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	compilationRepo := repository.NewCompilationRepository(pool)

	eventSvc := service.NewEventService(eventRepo, userRepo, categoryRepo, statsClient, cfg.AppName)
	requestSvc := service.NewRequestService(requestRepo, eventRepo, userRepo)
	commentSvc := service.NewCommentService(commentRepo, eventRepo, userRepo)
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	compilationSvc := service.NewCompilationService(compilationRepo)

	router := handler.NewRouter(
		handler.NewEventHandler(eventSvc),
		handler.NewRequestHandler(requestSvc),
		handler.NewCommentHandler(commentSvc),
		handler.NewAdminHandler(userSvc, categorySvc, compilationSvc),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
