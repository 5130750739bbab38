package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"nightshelf/database"
	"nightshelf/internal/api/cache"
	"nightshelf/internal/api/handler"
	"nightshelf/internal/api/middleware"
	"nightshelf/internal/api/repository"
	"nightshelf/internal/api/service"
	"nightshelf/internal/config"
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

	storeCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)

	userRepo := repository.NewUserRepository(db)
	storyRepo := repository.NewStoryRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	authService := service.NewAuthService(userRepo, cfg)
	storyService := service.NewStoryService(storyRepo, categoryRepo, storeCache)
	categoryService := service.NewCategoryService(categoryRepo, storyRepo, storeCache)
	favoriteService := service.NewFavoriteService(favoriteRepo, storyRepo)
	progressService := service.NewProgressService(progressRepo)
	userService := service.NewUserService(userRepo)
	statsService := service.NewStatsService(storyRepo, categoryRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	storyHandler := handler.NewStoryHandler(storyService, favoriteService, progressService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	adminStoryHandler := handler.NewAdminStoryHandler(storyService)
	adminCategoryHandler := handler.NewAdminCategoryHandler(categoryService)
	adminUserHandler := handler.NewAdminUserHandler(userService)
	statsHandler := handler.NewStatsHandler(statsService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authRequired := middleware.AuthMiddleware(authService)
	authLimiter := middleware.NewIPRateLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(authLimiter), authHandler.Register)
			auth.POST("/login", middleware.RateLimit(authLimiter), authHandler.Login)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		stories := api.Group("/stories")
		storyHandler.RegisterRoutes(stories, authRequired)

		categories := api.Group("/categories")
		categoryHandler.RegisterRoutes(categories)

		admin := api.Group("/admin", authRequired, middleware.RequireAdmin())
		{
			adminStoryHandler.RegisterRoutes(admin)
			adminCategoryHandler.RegisterRoutes(admin)
			adminUserHandler.RegisterRoutes(admin)
			statsHandler.RegisterRoutes(admin)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("server starting", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
