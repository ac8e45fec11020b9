package model

import "time"

// Article is an authored piece. The search_vector column is created by
// platform/postgres as a stored generated tsvector over
// title+announcement+body, so it is deliberately absent here.
type Article struct {
	ArticleID    uint      `gorm:"primaryKey;column:article_id" json:"article_id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Announcement string    `gorm:"type:text" json:"announcement"`
	Body         string    `gorm:"type:text;column:article_body" json:"article_body"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Announcement is a feed teaser row: article joined with its author login.
type Announcement struct {
	ArticleID    uint   `json:"article_id"`
	Title        string `json:"title"`
	Login        string `json:"login"`
	Announcement string `json:"announcement"`
}

// ArticleData is an article without its announcement.
type ArticleData struct {
	ArticleID uint   `json:"article_id"`
	Title     string `json:"title"`
	Login     string `json:"login"`
	Body      string `json:"article_body"`
}

// ArticleFull carries every text field of an article.
type ArticleFull struct {
	ArticleID    uint   `json:"article_id"`
	Title        string `json:"title"`
	Login        string `json:"login"`
	Announcement string `json:"announcement"`
	Body         string `json:"article_body"`
}

// SearchHit is a ranked search result. Score is the combined
// full-text + trigram relevance; it is derived, never persisted.
type SearchHit struct {
	ArticleID uint    `json:"article_id"`
	Title     string  `json:"title"`
	Login     string  `json:"login"`
	Score     float64 `json:"score"`
}
