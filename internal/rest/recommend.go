package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rateMenu/business/recommend"
	"rateMenu/domain"
	"rateMenu/pkg/logger"
	"rateMenu/pkg/metrics"
	"rateMenu/pkg/trace"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate              *validator.Validate
		recommendationService RecommendationService
		timeout               time.Duration
	}

	RecommendationService interface {
		Recommend(ctx context.Context, userID int64, limit int) (domain.RecommendationResponse, error)
		Popular(ctx context.Context, limit int) ([]domain.PopularItem, error)
	}

	RecommendRequest struct {
		UserID int64 `json:"user_id" validate:"required,gt=0"`
		Limit  *int  `json:"limit"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:              validator.New(),
		recommendationService: svc,
		timeout:               10 * time.Second,
	}
}

// POST /api/v1/recommend {"user_id": 1, "limit": 5}
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	limit := defaultLimit
	if req.Limit != nil {
		var err error
		if limit, err = checkLimit(*req.Limit); err != nil {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
	}

	return h.recommend(c, req.UserID, limit)
}

// GET /api/v1/recommendations/user/:user_id?limit=10
func (h *RecommendationHandler) RecommendForUser(c echo.Context) error {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return h.recommend(c, userID, limit)
}

// GET /api/v1/recommendations/me?limit=10
func (h *RecommendationHandler) RecommendForMe(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return h.recommend(c, userID, limit)
}

// GET /api/v1/recommendations/popular?limit=10
func (h *RecommendationHandler) Popular(c echo.Context) error {
	limit, err := parseLimit(c.QueryParam("limit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.recommendationService.Popular(ctx, limit)
	if err != nil {
		logger.Error("Failed to get popular items", "trace_id", trace.TraceIDFromContext(ctx), err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}

func (h *RecommendationHandler) recommend(c echo.Context, userID int64, limit int) error {
	start := time.Now()
	defer func() {
		metrics.RecommendLatency.Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	resp, err := h.recommendationService.Recommend(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to recommend", "trace_id", trace.TraceIDFromContext(ctx), "user_id", userID, err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, recommend.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// GET /health
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
