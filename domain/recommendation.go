package domain

const (
	SourcePersonalized = "personalized"
	SourcePopular      = "popular"
)

type Recommendation struct {
	MenuItemID int64   `json:"menu_item_id"`
	Score      float64 `json:"score"`
}

type PopularItem struct {
	MenuItemID    int64   `gorm:"column:menu_item_id" json:"menu_item_id"`
	AverageRating float64 `gorm:"column:avg_rating" json:"score"`
	RatingCount   int64   `gorm:"column:rating_count" json:"rating_count"`
}

// RecommendationResponse is what callers get back for one user: either the
// personalized ranking or the popularity fallback.
type RecommendationResponse struct {
	UserID          int64            `json:"user_id"`
	Source          string           `json:"source"`
	Recommendations []Recommendation `json:"recommendations"`
}
