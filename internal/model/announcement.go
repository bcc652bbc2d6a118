package model

import "time"

type Announcement struct {
	ID          int        `db:"id" json:"id"`
	AuthorID    int        `db:"author_id" json:"author_id"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	Priority    int        `db:"priority" json:"priority"`
	IsPublished bool       `db:"is_published" json:"is_published"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// AdminStats is the operator dashboard rollup.
type AdminStats struct {
	TotalUsers      int `db:"total_users" json:"total_users"`
	TotalAds        int `db:"total_ads" json:"total_ads"`
	PaidAds         int `db:"paid_ads" json:"paid_ads"`
	TotalBusinesses int `db:"total_businesses" json:"total_businesses"`
	TotalMessages   int `db:"total_messages" json:"total_messages"`
}
