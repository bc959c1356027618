package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rateMenu/business/review"
	"rateMenu/domain"
	"rateMenu/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ReviewService interface {
	SubmitReview(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ListUserReviews(ctx context.Context, userID int64) ([]domain.Review, error)
	ListMenuItemReviews(ctx context.Context, menuItemID int64) ([]domain.Review, error)
	GetReview(ctx context.Context, id uint64) (domain.Review, error)
	DeleteReview(ctx context.Context, userID int64, id uint64) error
}

type ReviewHandler struct {
	reviewService ReviewService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type SubmitReviewRequest struct {
	MenuItemID int64  `json:"menu_item_id" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=2000"`
}

func (h *ReviewHandler) SubmitReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req SubmitReviewRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	saved, err := h.reviewService.SubmitReview(ctx, &domain.Review{
		UserID:     userID,
		MenuItemID: req.MenuItemID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		if isReviewValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}

func (h *ReviewHandler) ListMyReviews(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListUserReviews(ctx, userID)
	if err != nil {
		logger.Error("Failed to list reviews", err)
		if isReviewValidationError(err) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

// GET /api/v1/reviews/user/:user_id
func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	userID, err := parseUserID(c.Param("user_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListUserReviews(ctx, userID)
	if err != nil {
		return c.JSON(reviewStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

// GET /api/v1/reviews/menu-item/:menu_item_id
func (h *ReviewHandler) ListMenuItemReviews(c echo.Context) error {
	menuItemID, err := strconv.ParseInt(c.Param("menu_item_id"), 10, 64)
	if err != nil || menuItemID <= 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: review.ErrInvalidMenuItem.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.ListMenuItemReviews(ctx, menuItemID)
	if err != nil {
		logger.Error("Failed to list menu item reviews", err)
		return c.JSON(reviewStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

// GET /api/v1/reviews/:review_id
func (h *ReviewHandler) GetReview(c echo.Context) error {
	reviewID, err := parseReviewID(c.Param("review_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	rev, err := h.reviewService.GetReview(ctx, reviewID)
	if err != nil {
		return c.JSON(reviewStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rev))
}

// DELETE /api/v1/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	userID, ok := c.Get("user_id").(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	reviewID, err := parseReviewID(c.Param("review_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.reviewService.DeleteReview(ctx, userID, reviewID); err != nil {
		return c.JSON(reviewStatusFor(err), ResponseError{Message: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}

func parseReviewID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, review.ErrInvalidReview
	}
	return id, nil
}

func reviewStatusFor(err error) int {
	switch {
	case isReviewValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, review.ErrReviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, review.ErrNotReviewOwner):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func isReviewValidationError(err error) bool {
	return errors.Is(err, review.ErrInvalidRating) ||
		errors.Is(err, review.ErrInvalidMenuItem) ||
		errors.Is(err, review.ErrInvalidUser) ||
		errors.Is(err, review.ErrInvalidReview)
}
