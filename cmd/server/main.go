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

	"linkhub/internal/config"
	"linkhub/internal/db"
	"linkhub/internal/handlers"
	"linkhub/internal/logging"
	"linkhub/internal/middleware"
	"linkhub/internal/repository"
	"linkhub/internal/router"
	"linkhub/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	gdb, err := db.Open(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)

	engine, sessionService := buildServer(cfg, gdb, logger)

	// 启动时清理过期 session
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if n, err := sessionService.PurgeExpired(ctx); err != nil {
		logger.Warn("Failed to purge expired sessions", "error", err)
	} else if n > 0 {
		logger.Info("Purged expired sessions", "count", n)
	}
	cancel()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("LinkHub server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server exited")
}

// buildServer wires repositories, services and handlers onto a gin engine.
func buildServer(cfg *config.Config, gdb *gorm.DB, logger *slog.Logger) (*gin.Engine, services.SessionService) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(gdb)
	sessionRepo := repository.NewSessionRepository(gdb)
	subredditRepo := repository.NewSubredditRepository(gdb)
	postRepo := repository.NewPostRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	voteRepo := repository.NewVoteRepository(gdb)

	userService := services.NewUserService(userRepo, cfg.BcryptCost)
	sessionService := services.NewSessionService(sessionRepo, cfg.SessionTTL)
	subredditService := services.NewSubredditService(subredditRepo)
	postService := services.NewPostService(postRepo, subredditRepo)
	commentService := services.NewCommentService(commentRepo)
	voteService := services.NewVoteService(voteRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("SESSION", store))

	r.HTMLRender = loadTemplates(cfg.TemplatesDir)
	r.Static("/static", cfg.StaticDir)

	r.Use(middleware.LoadUser(sessionService, logger))

	router.RegisterRoutes(r, router.Handlers{
		Auth:      handlers.NewAuthHandler(userService, sessionService, logger),
		Story:     handlers.NewStoryHandler(postService, commentService, subredditService, logger),
		Vote:      handlers.NewVoteHandler(voteService, postService, logger),
		Subreddit: handlers.NewSubredditHandler(subredditService, postService, logger),
		User:      handlers.NewUserHandler(userService, postService, logger),
	}, cfg.LoginRateLimit)

	return r, sessionService
}
