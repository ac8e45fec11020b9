package repository

import (
	"context"
	"fmt"
	"strings"

	"pressfeed/internal/model"
)

// Relevance weights for the combined score. Exact lexical matches must
// dominate, with fuzzy matches still surfacing near-misses such as typos.
const (
	weightLexical = 1.0
	weightFuzzy   = 0.5
)

// Search runs the hybrid full-text + trigram ranking over the articles.
// Paging and the author filter behave exactly as in ListAnnouncements.
func (r *ArticleRepository) Search(ctx context.Context, query string, amount, page int, login string) ([]model.SearchHit, error) {
	sql, args := buildSearchQuery(r.searchLanguage, query, amount, page, login)

	var hits []model.SearchHit
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&hits).Error; err != nil {
		return nil, fmt.Errorf("search articles failed: %w", err)
	}
	return hits, nil
}

// buildSearchQuery composes the ranking statement from two independent
// signals:
//
//   - fts: ts_rank_cd of the stored search_vector against
//     plainto_tsquery(language, query);
//   - trgm: the greatest pg_trgm similarity of the raw query against
//     title, announcement and body.
//
// Both join back LEFT, with an absent signal coalesced to zero, so an
// article matching on only one signal still qualifies. Rows are kept
// only when the combined score is positive and ordered by score
// descending, then article_id descending as the deterministic tie-break.
func buildSearchQuery(language, query string, amount, page int, login string) (string, []interface{}) {
	score := fmt.Sprintf("coalesce(fts.rank_fts, 0) * %g + coalesce(trgm.rank_trgm, 0) * %g", weightLexical, weightFuzzy)

	var b strings.Builder
	b.WriteString(`
		WITH q AS (SELECT plainto_tsquery(?, ?) AS tsq, ?::text AS rawq),
		fts AS (SELECT article_id,
		               ts_rank_cd(search_vector, q.tsq) AS rank_fts
		        FROM articles, q
		        WHERE search_vector @@ q.tsq),
		trgm AS (SELECT article_id,
		                greatest(
		                        similarity(title, q.rawq),
		                        similarity(announcement, q.rawq),
		                        similarity(article_body, q.rawq)
		                ) AS rank_trgm
		         FROM articles, q
		         WHERE (coalesce(title, '') || ' ' ||
		                coalesce(announcement, '') || ' ' ||
		                coalesce(article_body, '')) % q.rawq)
		SELECT a.article_id,
		       a.title,
		       us.login,
		       ` + score + ` AS score
		FROM articles a
		JOIN users us ON a.user_id = us.id
		LEFT JOIN fts ON fts.article_id = a.article_id
		LEFT JOIN trgm ON trgm.article_id = a.article_id`)
	args := []interface{}{language, query, query}

	b.WriteString("\nWHERE ")
	if login != "" {
		b.WriteString("us.login = ? AND ")
		args = append(args, login)
	}
	b.WriteString("(" + score + ") > 0")

	b.WriteString("\nORDER BY score DESC, a.article_id DESC")

	if amount > 0 && page > 0 {
		b.WriteString("\nOFFSET ? LIMIT ?")
		args = append(args, (page-1)*amount, amount)
	}

	return b.String(), args
}
