package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pressfeed/internal/app"
	"pressfeed/internal/model"
)

type fakeArticleStore struct {
	owners        map[uint]string
	updateCalled  bool
	deleteCalled  bool
	searchQueries []string
}

func newFakeArticleStore(owners map[uint]string) *fakeArticleStore {
	return &fakeArticleStore{owners: owners}
}

func (f *fakeArticleStore) ListAnnouncements(context.Context, int, int, string) ([]model.Announcement, error) {
	return nil, nil
}

func (f *fakeArticleStore) Get(context.Context, uint) (*model.ArticleData, error) { return nil, nil }

func (f *fakeArticleStore) GetFull(context.Context, uint) (*model.ArticleFull, error) {
	return nil, nil
}

func (f *fakeArticleStore) Create(context.Context, *model.ArticleFull) (uint, error) { return 1, nil }

func (f *fakeArticleStore) Update(context.Context, *model.ArticleFull) error {
	f.updateCalled = true
	return nil
}

func (f *fakeArticleStore) Delete(context.Context, uint) error {
	f.deleteCalled = true
	return nil
}

func (f *fakeArticleStore) CheckOwner(_ context.Context, articleID uint, login string) (bool, error) {
	return f.owners[articleID] == login, nil
}

func (f *fakeArticleStore) Search(_ context.Context, query string, _, _ int, _ string) ([]model.SearchHit, error) {
	f.searchQueries = append(f.searchQueries, query)
	return nil, nil
}

type fakeImageStore struct {
	insertCalled bool
	deleteCalled bool
}

func (f *fakeImageStore) Insert(_ context.Context, _ uint, images []string) ([]string, error) {
	f.insertCalled = true
	return make([]string, len(images)), nil
}

func (f *fakeImageStore) ListIDs(context.Context, uint, bool) ([]string, error) { return nil, nil }

func (f *fakeImageStore) GetBytes(context.Context, uint, string) ([]byte, error) { return nil, nil }

func (f *fakeImageStore) Replace(context.Context, uint, string, string) (bool, error) {
	return false, nil
}

func (f *fakeImageStore) Delete(_ context.Context, _ uint, ids []string) ([]string, error) {
	f.deleteCalled = true
	return ids, nil
}

type fakePurger struct {
	published []uint
}

func (f *fakePurger) Publish(_ context.Context, articleID uint) error {
	f.published = append(f.published, articleID)
	return nil
}

func TestFeedService_UpdateArticle_NotOwner(t *testing.T) {
	articles := newFakeArticleStore(map[uint]string{42: "alice"})
	svc := app.NewFeedService(articles, &fakeImageStore{}, &fakePurger{}, zap.NewNop())

	err := svc.UpdateArticle(context.Background(), "mallory", &model.ArticleFull{
		ArticleID: 42,
		Title:     "hijacked",
		Body:      "body",
	})
	assert.ErrorIs(t, err, app.ErrNotOwner)
	assert.False(t, articles.updateCalled, "the mutation must not be applied")
}

func TestFeedService_UpdateArticle_Owner(t *testing.T) {
	articles := newFakeArticleStore(map[uint]string{42: "alice"})
	svc := app.NewFeedService(articles, &fakeImageStore{}, &fakePurger{}, zap.NewNop())

	err := svc.UpdateArticle(context.Background(), "alice", &model.ArticleFull{
		ArticleID: 42,
		Title:     "edited",
		Body:      "body",
	})
	require.NoError(t, err)
	assert.True(t, articles.updateCalled)
}

func TestFeedService_DeleteArticle_PublishesPurge(t *testing.T) {
	articles := newFakeArticleStore(map[uint]string{42: "alice"})
	purger := &fakePurger{}
	svc := app.NewFeedService(articles, &fakeImageStore{}, purger, zap.NewNop())

	err := svc.DeleteArticle(context.Background(), "alice", 42)
	require.NoError(t, err)
	assert.True(t, articles.deleteCalled)
	assert.Equal(t, []uint{42}, purger.published)
}

func TestFeedService_DeleteArticle_NotOwner(t *testing.T) {
	articles := newFakeArticleStore(map[uint]string{42: "alice"})
	purger := &fakePurger{}
	svc := app.NewFeedService(articles, &fakeImageStore{}, purger, zap.NewNop())

	err := svc.DeleteArticle(context.Background(), "mallory", 42)
	assert.ErrorIs(t, err, app.ErrNotOwner)
	assert.False(t, articles.deleteCalled)
	assert.Empty(t, purger.published)
}

func TestFeedService_AddImages_NotOwner(t *testing.T) {
	articles := newFakeArticleStore(map[uint]string{42: "alice"})
	images := &fakeImageStore{}
	svc := app.NewFeedService(articles, images, &fakePurger{}, zap.NewNop())

	_, err := svc.AddImages(context.Background(), "mallory", 42, []string{"aGVsbG8="})
	assert.ErrorIs(t, err, app.ErrNotOwner)
	assert.False(t, images.insertCalled)
}

func TestFeedService_Search_EmptyQuery(t *testing.T) {
	articles := newFakeArticleStore(nil)
	svc := app.NewFeedService(articles, &fakeImageStore{}, &fakePurger{}, zap.NewNop())

	_, err := svc.Search(context.Background(), "   ", 5, 1, "")
	assert.ErrorIs(t, err, app.ErrQueryEmpty)
	assert.Empty(t, articles.searchQueries)
}
