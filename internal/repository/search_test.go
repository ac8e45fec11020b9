package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery_Basic(t *testing.T) {
	sql, args := buildSearchQuery("russian", "golang generics", 0, 0, "")

	// Both signals with their fixed weights, coalesced so a single-signal
	// match still scores.
	assert.Contains(t, sql, "coalesce(fts.rank_fts, 0) * 1 + coalesce(trgm.rank_trgm, 0) * 0.5")
	assert.Contains(t, sql, "plainto_tsquery(?, ?)")
	assert.Contains(t, sql, "ts_rank_cd(search_vector, q.tsq)")
	assert.Contains(t, sql, "similarity(title, q.rawq)")
	assert.Contains(t, sql, "LEFT JOIN fts")
	assert.Contains(t, sql, "LEFT JOIN trgm")
	assert.Contains(t, sql, ") > 0")
	assert.Contains(t, sql, "ORDER BY score DESC, a.article_id DESC")
	assert.NotContains(t, sql, "OFFSET")

	require.Len(t, args, 3)
	assert.Equal(t, "russian", args[0])
	assert.Equal(t, "golang generics", args[1])
	assert.Equal(t, "golang generics", args[2])
}

func TestBuildSearchQuery_WithAuthorFilter(t *testing.T) {
	sql, args := buildSearchQuery("english", "query", 0, 0, "alice")

	assert.Contains(t, sql, "us.login = ? AND ")
	require.Len(t, args, 4)
	assert.Equal(t, "alice", args[3])
}

func TestBuildSearchQuery_WithPaging(t *testing.T) {
	sql, args := buildSearchQuery("english", "query", 5, 3, "")

	assert.Contains(t, sql, "OFFSET ? LIMIT ?")
	require.Len(t, args, 5)
	assert.Equal(t, 10, args[3], "offset is (page-1)*amount, 1-indexed")
	assert.Equal(t, 5, args[4])
}

func TestBuildSearchQuery_FilterAndPagingArgOrder(t *testing.T) {
	_, args := buildSearchQuery("english", "query", 2, 2, "bob")

	require.Len(t, args, 6)
	assert.Equal(t, []interface{}{"english", "query", "query", "bob", 2, 2}, args)
}

func TestBuildSearchQuery_PagingRequiresBoth(t *testing.T) {
	sql, _ := buildSearchQuery("english", "query", 5, 0, "")
	assert.False(t, strings.Contains(sql, "OFFSET"), "amount without page must not page")

	sql, _ = buildSearchQuery("english", "query", 0, 3, "")
	assert.False(t, strings.Contains(sql, "OFFSET"), "page without amount must not page")
}
