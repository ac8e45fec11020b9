package app

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"pressfeed/internal/model"
)

var (
	ErrNotOwner        = errors.New("article is not owned by this login")
	ErrArticleNotFound = errors.New("article not found")
	ErrQueryEmpty      = errors.New("search query is empty")
)

// ArticleStore is the repository surface the feed service needs.
type ArticleStore interface {
	ListAnnouncements(ctx context.Context, amount, page int, login string) ([]model.Announcement, error)
	Get(ctx context.Context, articleID uint) (*model.ArticleData, error)
	GetFull(ctx context.Context, articleID uint) (*model.ArticleFull, error)
	Create(ctx context.Context, article *model.ArticleFull) (uint, error)
	Update(ctx context.Context, article *model.ArticleFull) error
	Delete(ctx context.Context, articleID uint) error
	CheckOwner(ctx context.Context, articleID uint, login string) (bool, error)
	Search(ctx context.Context, query string, amount, page int, login string) ([]model.SearchHit, error)
}

// ImageBlobStore is implemented by imagestore.Store.
type ImageBlobStore interface {
	Insert(ctx context.Context, ownerID uint, base64Images []string) ([]string, error)
	ListIDs(ctx context.Context, ownerID uint, firstOnly bool) ([]string, error)
	GetBytes(ctx context.Context, ownerID uint, imageID string) ([]byte, error)
	Replace(ctx context.Context, ownerID uint, imageID, b64Image string) (bool, error)
	Delete(ctx context.Context, ownerID uint, imageIDs []string) ([]string, error)
}

// ImagePurgeNotifier enqueues asynchronous cleanup of article images.
type ImagePurgeNotifier interface {
	Publish(ctx context.Context, articleID uint) error
}

type FeedService struct {
	articles ArticleStore
	images   ImageBlobStore
	purger   ImagePurgeNotifier
	log      *zap.Logger
}

func NewFeedService(articles ArticleStore, images ImageBlobStore, purger ImagePurgeNotifier, log *zap.Logger) *FeedService {
	return &FeedService{
		articles: articles,
		images:   images,
		purger:   purger,
		log:      log,
	}
}

func (s *FeedService) ListAnnouncements(ctx context.Context, amount, page int, login string) ([]model.Announcement, error) {
	return s.articles.ListAnnouncements(ctx, amount, page, login)
}

func (s *FeedService) GetArticle(ctx context.Context, articleID uint) (*model.ArticleData, error) {
	if articleID == 0 {
		return nil, ErrInvalidInput
	}
	return s.articles.Get(ctx, articleID)
}

func (s *FeedService) GetArticleFull(ctx context.Context, articleID uint) (*model.ArticleFull, error) {
	if articleID == 0 {
		return nil, ErrInvalidInput
	}
	return s.articles.GetFull(ctx, articleID)
}

func (s *FeedService) CreateArticle(ctx context.Context, login string, article *model.ArticleFull) (uint, error) {
	if strings.TrimSpace(article.Title) == "" {
		return 0, ErrInvalidInput
	}
	article.Login = login
	return s.articles.Create(ctx, article)
}

// UpdateArticle fully replaces the text fields. The ownership gate runs
// before the store is touched, so a violation never mutates anything.
func (s *FeedService) UpdateArticle(ctx context.Context, login string, article *model.ArticleFull) error {
	if article.ArticleID == 0 {
		return ErrInvalidInput
	}
	if err := s.requireOwner(ctx, article.ArticleID, login); err != nil {
		return err
	}
	return s.articles.Update(ctx, article)
}

// DeleteArticle removes the row, then asks the purge worker to drop the
// article's image blobs. The enqueue is best-effort: a broker failure is
// logged and the delete still succeeds.
func (s *FeedService) DeleteArticle(ctx context.Context, login string, articleID uint) error {
	if articleID == 0 {
		return ErrInvalidInput
	}
	if err := s.requireOwner(ctx, articleID, login); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, articleID); err != nil {
		return err
	}

	if s.purger != nil {
		if err := s.purger.Publish(ctx, articleID); err != nil {
			s.log.Warn("enqueue image purge failed",
				zap.Uint("article_id", articleID),
				zap.Error(err))
		}
	}
	return nil
}

func (s *FeedService) Search(ctx context.Context, query string, amount, page int, login string) ([]model.SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryEmpty
	}
	return s.articles.Search(ctx, query, amount, page, login)
}

func (s *FeedService) AddImages(ctx context.Context, login string, articleID uint, base64Images []string) ([]string, error) {
	if articleID == 0 || len(base64Images) == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.requireOwner(ctx, articleID, login); err != nil {
		return nil, err
	}
	return s.images.Insert(ctx, articleID, base64Images)
}

func (s *FeedService) RemoveImages(ctx context.Context, login string, articleID uint, imageIDs []string) ([]string, error) {
	if articleID == 0 || len(imageIDs) == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.requireOwner(ctx, articleID, login); err != nil {
		return nil, err
	}
	return s.images.Delete(ctx, articleID, imageIDs)
}

func (s *FeedService) ListImages(ctx context.Context, articleID uint, firstOnly bool) ([]string, error) {
	if articleID == 0 {
		return nil, ErrInvalidInput
	}
	return s.images.ListIDs(ctx, articleID, firstOnly)
}

func (s *FeedService) GetImage(ctx context.Context, articleID uint, imageID string) ([]byte, error) {
	if articleID == 0 || imageID == "" {
		return nil, ErrInvalidInput
	}
	return s.images.GetBytes(ctx, articleID, imageID)
}

func (s *FeedService) requireOwner(ctx context.Context, articleID uint, login string) error {
	owned, err := s.articles.CheckOwner(ctx, articleID, login)
	if err != nil {
		return err
	}
	if !owned {
		return ErrNotOwner
	}
	return nil
}
