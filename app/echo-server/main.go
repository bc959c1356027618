package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rateMenu/app/echo-server/router"
	"rateMenu/business/recommend"
	"rateMenu/business/review"
	"rateMenu/business/user"
	"rateMenu/internal/middleware"
	psqlRepo "rateMenu/internal/repository/postgres"
	redisRepo "rateMenu/internal/repository/redis"
	"rateMenu/internal/repository/resilient"
	"rateMenu/internal/rest"
	"rateMenu/pkg/config"
	"rateMenu/pkg/database"
	redisdb "rateMenu/pkg/database/redis"
	"rateMenu/pkg/logger"
	"rateMenu/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting "+cfg.App.Name, "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer func() {
		if err := database.ClosePostgres(db); err != nil {
			logger.Error("Failed to close database", err)
		}
	}()

	logger.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Fatal("Failed to migrate database", err)
		}
	}

	// Similarity cache is optional; without it every request recomputes.
	var similarityCache recommend.SimilarityCache
	if cfg.Redis.Enabled {
		client, err := redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, similarity cache disabled", err)
		} else {
			defer func() {
				if err := redisdb.CloseRedisClient(client); err != nil {
					logger.Error("Failed to close redis", err)
				}
			}()
			similarityCache = redisRepo.NewSimilarityCache(client, cfg.Redis.SimilarityTTL)
			logger.Info("Redis connected successfully", "ttl", cfg.Redis.SimilarityTTL.String())
		}
	}

	// Init repo
	ratingStore := resilient.NewRatingStore(
		psqlRepo.NewRatingRepository(db, cfg.Recommend.MinPopularityRatings),
		resilient.Settings{
			MaxConsecutiveFailures: cfg.Breaker.MaxConsecutiveFailures,
			OpenTimeout:            cfg.Breaker.OpenTimeout,
		},
	)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	userRepo := psqlRepo.NewUserRepository(db)

	// Init service
	recommendationService := recommend.NewRecommendationService(ratingStore, similarityCache, recommend.Config{
		SimilarityThreshold:  cfg.Recommend.SimilarityThreshold,
		MinNeighborRating:    cfg.Recommend.MinNeighborRating,
		NeutralRating:        cfg.Recommend.NeutralRating,
		MinPopularityRatings: cfg.Recommend.MinPopularityRatings,
		CenterRatedOnly:      cfg.Recommend.CenterRatedOnly,
	})
	reviewService := review.NewReviewService(reviewRepo)
	userService := user.NewUserService(userRepo, cfg.JWT.SecretKey, cfg.JWT.TokenTTL)

	// Init handler
	recommendationHandler := rest.NewRecommendationHandler(recommendationService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	userHandler := rest.NewUserHandler(userService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)

	// Setup routes
	router.SetupSystemRoutes(e)

	api := e.Group("/api/v1")
	if cfg.RateLimit.RequestsPerSecond > 0 {
		api.Use(echomiddleware.RateLimiter(
			echomiddleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit.RequestsPerSecond)),
		))
	}
	router.SetupAuthRoutes(api, userHandler)
	router.SetupRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetupReviewRoutes(api, reviewHandler, authRequired)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
