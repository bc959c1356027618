package router

import (
	"rateMenu/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupSystemRoutes(e *echo.Echo) {
	e.GET("/health", rest.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func SetupAuthRoutes(api *echo.Group, handler *rest.UserHandler) {
	auth := api.Group("/auth")
	auth.POST("/signup", handler.Signup)
	auth.POST("/login", handler.Login)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/recommend", handler.Recommend)

	reco := api.Group("/recommendations")
	reco.GET("/popular", handler.Popular)
	reco.GET("/user/:user_id", handler.RecommendForUser)
	reco.GET("/me", handler.RecommendForMe, authRequired)
}

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews")
	reviews.POST("", handler.SubmitReview, authRequired)
	reviews.GET("/me", handler.ListMyReviews, authRequired)
	reviews.GET("/menu-item/:menu_item_id", handler.ListMenuItemReviews)
	reviews.GET("/user/:user_id", handler.ListUserReviews)
	reviews.GET("/:review_id", handler.GetReview)
	reviews.DELETE("/:review_id", handler.DeleteReview, authRequired)
}
