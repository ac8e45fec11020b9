package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pressfeed/internal/model"
)

type ArticleRepository struct {
	db             *gorm.DB
	searchLanguage string
}

func NewArticleRepository(db *gorm.DB, searchLanguage string) *ArticleRepository {
	return &ArticleRepository{db: db, searchLanguage: searchLanguage}
}

// ListAnnouncements returns feed teasers newest first. Paging is
// 1-indexed: offset = (page-1)*amount, applied only when both are given.
// A non-empty login narrows the feed to that author.
func (r *ArticleRepository) ListAnnouncements(ctx context.Context, amount, page int, login string) ([]model.Announcement, error) {
	q := r.db.WithContext(ctx).Table("articles").
		Select("articles.article_id, articles.title, users.login, articles.announcement").
		Joins("JOIN users ON users.id = articles.user_id").
		Order("articles.article_id DESC")

	if login != "" {
		q = q.Where("users.login = ?", login)
	}
	if amount > 0 && page > 0 {
		q = q.Offset((page - 1) * amount).Limit(amount)
	}

	var rows []model.Announcement
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list announcements failed: %w", err)
	}
	return rows, nil
}

func (r *ArticleRepository) Get(ctx context.Context, articleID uint) (*model.ArticleData, error) {
	var row model.ArticleData
	err := r.db.WithContext(ctx).Table("articles").
		Select("articles.article_id, articles.title, users.login, articles.article_body AS body").
		Joins("JOIN users ON users.id = articles.user_id").
		Where("articles.article_id = ?", articleID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query article failed: %w", err)
	}
	return &row, nil
}

func (r *ArticleRepository) GetFull(ctx context.Context, articleID uint) (*model.ArticleFull, error) {
	var row model.ArticleFull
	err := r.db.WithContext(ctx).Table("articles").
		Select("articles.article_id, articles.title, users.login, articles.announcement, articles.article_body AS body").
		Joins("JOIN users ON users.id = articles.user_id").
		Where("articles.article_id = ?", articleID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query full article failed: %w", err)
	}
	return &row, nil
}

// Create resolves the owner id from the login inside the insert itself.
// An unresolvable login makes the subquery yield NULL and the insert fail
// on the user_id constraint.
func (r *ArticleRepository) Create(ctx context.Context, article *model.ArticleFull) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO articles (title, user_id, announcement, article_body, created_at, updated_at)
		VALUES (?, (SELECT id FROM users WHERE login = ?), ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING article_id`,
		article.Title, article.Login, article.Announcement, article.Body,
	).Scan(&id).Error
	if err != nil {
		return 0, fmt.Errorf("insert article failed: %w", err)
	}
	return id, nil
}

// Update is a full replace of the text fields by id.
func (r *ArticleRepository) Update(ctx context.Context, article *model.ArticleFull) error {
	err := r.db.WithContext(ctx).Exec(`
		UPDATE articles
		SET title = ?, article_body = ?, announcement = ?, updated_at = CURRENT_TIMESTAMP
		WHERE article_id = ?`,
		article.Title, article.Body, article.Announcement, article.ArticleID,
	).Error
	if err != nil {
		return fmt.Errorf("update article failed: %w", err)
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, articleID uint) error {
	if err := r.db.WithContext(ctx).Exec(`DELETE FROM articles WHERE article_id = ?`, articleID).Error; err != nil {
		return fmt.Errorf("delete article failed: %w", err)
	}
	return nil
}

func (r *ArticleRepository) CheckOwner(ctx context.Context, articleID uint, login string) (bool, error) {
	var owned bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1
			FROM articles
			JOIN users ON users.id = articles.user_id
			WHERE articles.article_id = ? AND users.login = ?
		)`, articleID, login,
	).Scan(&owned).Error
	if err != nil {
		return false, fmt.Errorf("check article owner failed: %w", err)
	}
	return owned, nil
}
