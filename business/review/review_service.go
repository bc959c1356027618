package review

import (
	"context"
	"errors"
	"fmt"
	"rateMenu/domain"
	"rateMenu/pkg/logger"
	"rateMenu/pkg/metrics"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidMenuItem = errors.New("invalid menu item id")
	ErrInvalidUser     = errors.New("invalid user id")
	ErrInvalidReview   = errors.New("invalid review id")
	ErrReviewNotFound  = domain.ErrReviewNotFound
	ErrNotReviewOwner  = errors.New("only the author can delete a review")
)

const (
	minRating = 1
	maxRating = 5
)

// ReviewRepository contract interface
type ReviewRepository interface {
	Upsert(ctx context.Context, review *domain.Review) error
	FindByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	FindByMenuItem(ctx context.Context, menuItemID int64) ([]domain.Review, error)
	FindByID(ctx context.Context, id uint64) (domain.Review, error)
	Delete(ctx context.Context, id uint64) error
}

type reviewService struct {
	reviewRepo ReviewRepository
}

func NewReviewService(reviewRepo ReviewRepository) *reviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
	}
}

// SubmitReview stores a review. A second review of the same menu item by the
// same user replaces the first.
func (s *reviewService) SubmitReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when submit review")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if review.UserID <= 0 {
		return nil, ErrInvalidUser
	}
	if review.MenuItemID <= 0 {
		return nil, ErrInvalidMenuItem
	}
	if review.Rating < minRating || review.Rating > maxRating {
		return nil, ErrInvalidRating
	}

	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		logger.Error("failed to save review", err)
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	metrics.ReviewSubmissions.Inc()
	logger.Info("review saved", "user_id", review.UserID, "menu_item_id", review.MenuItemID, "rating", review.Rating)

	return review, nil
}

func (s *reviewService) ListUserReviews(ctx context.Context, userID int64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when list user reviews")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID <= 0 {
		return nil, ErrInvalidUser
	}

	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to find user reviews", err)
		return nil, err
	}

	return reviews, nil
}

func (s *reviewService) ListMenuItemReviews(ctx context.Context, menuItemID int64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if menuItemID <= 0 {
		return nil, ErrInvalidMenuItem
	}

	reviews, err := s.reviewRepo.FindByMenuItem(ctx, menuItemID)
	if err != nil {
		logger.Error("Failed to find menu item reviews", err)
		return nil, err
	}

	return reviews, nil
}

func (s *reviewService) GetReview(ctx context.Context, id uint64) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		return domain.Review{}, ErrInvalidReview
	}

	return s.reviewRepo.FindByID(ctx, id)
}

// DeleteReview removes the caller's own review, withdrawing its rating from
// future recommendations.
func (s *reviewService) DeleteReview(ctx context.Context, userID int64, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if userID <= 0 {
		return ErrInvalidUser
	}
	if id == 0 {
		return ErrInvalidReview
	}

	existing, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		logger.Warn("review delete by non-owner", "review_id", id, "user_id", userID)
		return ErrNotReviewOwner
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete review", err)
		return fmt.Errorf("failed to delete review: %w", err)
	}

	metrics.ReviewDeletions.Inc()
	logger.Info("review deleted", "review_id", id, "user_id", userID, "menu_item_id", existing.MenuItemID)

	return nil
}
