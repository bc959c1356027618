package postgres

import (
	"context"
	"errors"
	"fmt"
	"rateMenu/business/review"
	"rateMenu/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	DB *gorm.DB
}

var _ review.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{
		DB: db,
	}
}

// Upsert inserts the review or, when the user already reviewed the item,
// overwrites rating and comment.
func (r *ReviewRepository) Upsert(ctx context.Context, rev *domain.Review) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
		},
	).Create(rev).Error; err != nil {
		return fmt.Errorf("failed to upsert review: %w", err)
	}

	return nil
}

func (r *ReviewRepository) FindByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews := []domain.Review{}
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByMenuItem(ctx context.Context, menuItemID int64) ([]domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	reviews := []domain.Review{}
	if err := r.DB.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to find menu item reviews: %w", err)
	}

	return reviews, nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint64) (domain.Review, error) {
	var rev domain.Review

	err := r.DB.WithContext(ctx).First(&rev, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Review{}, domain.ErrReviewNotFound
		}
		return domain.Review{}, fmt.Errorf("failed to find review: %w", err)
	}

	return rev, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.ErrReviewNotFound
	}

	return nil
}
