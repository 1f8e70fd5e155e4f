// Package main запускает HTTP-сервер калькулятора кормов.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/mmeshcher/feedcalc/internal/assistant"
	"github.com/mmeshcher/feedcalc/internal/config"
	"github.com/mmeshcher/feedcalc/internal/handler"
	"github.com/mmeshcher/feedcalc/internal/metrics"
	"github.com/mmeshcher/feedcalc/internal/middleware"
	"github.com/mmeshcher/feedcalc/internal/repository"
	"github.com/mmeshcher/feedcalc/internal/service"
)

const (
	aiBurst         = 3
	aiCacheTTL      = 24 * time.Hour
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}

	session := service.NewSessionStore()
	loadCtx, cancelLoad := context.WithTimeout(ctx, startupTimeout)
	err = session.Load(loadCtx, repo)
	cancelLoad()
	if err != nil {
		sugar.Fatalw("initial data load error", "error", err.Error())
	}

	ai, rdb, err := newAssistant(ctx, cfg)
	if err != nil {
		sugar.Fatalw("assistant initialization error", "error", err.Error())
	}
	if rdb != nil {
		defer rdb.Close()
	}
	if ai == nil {
		sugar.Warn("GEMINI_API_KEY is not set, assistant is disabled")
	}

	m := metrics.New()

	svc := service.NewService(repo, session, ai, m, cfg.AdminEmail)
	defer svc.Close()

	if cfg.AdminEmail == "" {
		sugar.Warn("ADMIN_EMAIL is not set, admin panel is disabled")
	}

	h := handler.NewHandler(
		svc,
		logger,
		middleware.NewSessionMiddleware(cfg.SessionSecret),
		middleware.NewAdminAuth(cfg.SessionSecret),
		m,
	)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting feedcalc server", "addr", cfg.RunAddress, "feeds", len(svc.Feeds()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown по сигналу или при ошибке сервера
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// newAssistant собирает AI-ассистента. Без ключа API ассистент отключён и возвращается nil.
func newAssistant(ctx context.Context, cfg *config.Config) (service.Assistant, *redis.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil, nil
	}

	client, err := assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}

	limit := rate.Inf
	if cfg.AIRateLimit > 0 {
		limit = rate.Limit(cfg.AIRateLimit)
	}
	opts := []assistant.Option{assistant.WithLimiter(rate.NewLimiter(limit, aiBurst))}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		opts = append(opts, assistant.WithCache(assistant.NewRedisCache(rdb, aiCacheTTL)))
	}

	return assistant.New(client, opts...), rdb, nil
}
