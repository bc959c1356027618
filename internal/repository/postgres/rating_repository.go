package postgres

import (
	"context"
	"fmt"
	"rateMenu/business/recommend"
	"rateMenu/domain"

	"gorm.io/gorm"
)

const popularityQuery = `
SELECT menu_item_id, AVG(rating)::float8 AS avg_rating, COUNT(*) AS rating_count
FROM reviews
GROUP BY menu_item_id
HAVING COUNT(*) >= ?
ORDER BY avg_rating DESC, menu_item_id ASC
LIMIT ?`

// RatingRepository is the RatingStore backed by the reviews table.
type RatingRepository struct {
	DB         *gorm.DB
	minRatings int
}

var _ recommend.RatingStore = (*RatingRepository)(nil)

func NewRatingRepository(db *gorm.DB, minPopularityRatings int) *RatingRepository {
	return &RatingRepository{
		DB:         db,
		minRatings: minPopularityRatings,
	}
}

func (r *RatingRepository) FetchAllRatings(ctx context.Context) ([]domain.Rating, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.Rating
	if err := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Select("user_id, menu_item_id, rating").
		Order("user_id, menu_item_id").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}

	return rows, nil
}

// FetchPopularity ranks items by average rating, skipping items with fewer
// than minRatings reviews.
func (r *RatingRepository) FetchPopularity(ctx context.Context, limit int) ([]domain.PopularItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		return []domain.PopularItem{}, nil
	}

	items := []domain.PopularItem{}
	if err := r.DB.WithContext(ctx).
		Raw(popularityQuery, r.minRatings, limit).
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to query popular items: %w", err)
	}

	return items, nil
}
