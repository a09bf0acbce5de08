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

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-blog/inkwell/internal/app"
	"github.com/inkwell-blog/inkwell/internal/auth"
	"github.com/inkwell-blog/inkwell/internal/platform/cache"
	"github.com/inkwell-blog/inkwell/internal/platform/db"
	"github.com/inkwell-blog/inkwell/internal/posts"
	"github.com/inkwell-blog/inkwell/internal/rbac"
	"github.com/inkwell-blog/inkwell/internal/roles"
	"github.com/inkwell-blog/inkwell/internal/users"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// The post cache is an optimization; the API stays up without Redis.
	var redisClient *redis.Client
	if client, err := cache.New(ctx, cfg.RedisAddr); err != nil {
		logger.Warn("redis unavailable, post cache disabled", slog.Any("error", err))
	} else {
		redisClient = client
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	rolesService := roles.NewService(roles.NewRepository(pool))
	if err := rolesService.Seed(ctx); err != nil {
		logger.Error("seed roles", slog.Any("error", err))
		os.Exit(1)
	}

	tokens, err := auth.NewTokenCodec(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		logger.Error("token codec", slog.Any("error", err))
		os.Exit(1)
	}

	rbacMiddleware := rbac.Middleware{Logger: logger}

	authService := auth.NewService(auth.NewRepository(pool), tokens)
	authHandler := auth.NewHandler(logger, authService)

	postsService := posts.NewService(posts.NewPGRepository(pool), redisClient)
	postsHandler := posts.NewHandler(logger, postsService, rbacMiddleware, cfg.BaseURL, cfg.PostsPerPage)

	usersService := users.NewService(users.NewRepository(pool), rolesService, users.Config{AdminEmail: cfg.AdminEmail})
	usersHandler := users.NewHandler(logger, usersService, postsService, rbacMiddleware, cfg.BaseURL, cfg.PostsPerPage)

	router := app.NewRouter(app.RouterParams{
		Logger:       logger,
		Config:       cfg,
		AuthService:  authService,
		AuthHandler:  authHandler,
		PostsHandler: postsHandler,
		UsersHandler: usersHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
	}
}
