package domain

import (
	"errors"
	"time"
)

// CREATE TABLE public.reviews (
//     id              SERIAL PRIMARY KEY,
//     user_id         INTEGER NOT NULL,
//     menu_item_id    INTEGER NOT NULL,
//     rating          INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
//     comment         TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW(),
//     updated_at      TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, menu_item_id)
// );

var ErrReviewNotFound = errors.New("review not found")

type Review struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:idx_reviews_user_item" json:"user_id"`
	MenuItemID int64     `gorm:"column:menu_item_id;not null;uniqueIndex:idx_reviews_user_item" json:"menu_item_id"`
	Rating     int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// Rating is one observed (user, menu item, rating) fact, the projection of a
// review row the recommender works on.
type Rating struct {
	UserID     int64   `gorm:"column:user_id" json:"user_id"`
	MenuItemID int64   `gorm:"column:menu_item_id" json:"menu_item_id"`
	Rating     float64 `gorm:"column:rating" json:"rating"`
}
