package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/cache"
	"reviewhub/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	ratingCache, err := cache.NewRatingCache(cfg.RedisURL, cfg.RedisPassword, cfg.RatingCacheTTL)
	if err != nil {
		logger.Error("could not connect to redis", "error", err)
		os.Exit(1)
	}
	defer ratingCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	codeSender := service.NewLogCodeSender(logger)
	authService := service.NewAuthService(userRepo, codeSender, cfg)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	genreService := service.NewGenreService(genreRepo)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewRepo, ratingCache)
	reviewService := service.NewReviewService(reviewRepo, titleRepo, ratingCache)
	commentService := service.NewCommentService(commentRepo, reviewRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, cfg)
	categoryHandler := handler.NewCategoryHandler(categoryService, cfg)
	genreHandler := handler.NewGenreHandler(genreService, cfg)
	titleHandler := handler.NewTitleHandler(titleService, cfg)
	reviewHandler := handler.NewReviewHandler(reviewService, cfg)
	commentHandler := handler.NewCommentHandler(commentService, cfg)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMW := middleware.AuthMiddleware(authService)
	adminMW := middleware.RequireAdmin()
	administratorMW := middleware.RequireAdministrator()
	authLimiter := middleware.NewRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)

	v1 := r.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Use(authLimiter.Middleware())
	authHandler.RegisterRoutes(authGroup)

	userHandler.RegisterRoutes(v1.Group("/users"), authMW, administratorMW)
	categoryHandler.RegisterRoutes(v1.Group("/categories"), authMW, adminMW)
	genreHandler.RegisterRoutes(v1.Group("/genres"), authMW, adminMW)

	titles := v1.Group("/titles")
	titleHandler.RegisterRoutes(titles, authMW, adminMW)
	reviewHandler.RegisterRoutes(titles, authMW)
	commentHandler.RegisterRoutes(titles, authMW)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting HTTP server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.LogFormat) == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
