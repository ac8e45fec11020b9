package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func New(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get postgres sql db failed: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("ping postgres failed: %w", err)
	}

	return db, nil
}

// SetupSearchSchema installs the pieces the hybrid ranker depends on:
// the pg_trgm extension, a stored tsvector column over the article text
// fields and GIN indexes for both signals. Idempotent.
func SetupSearchSchema(db *gorm.DB, language string) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
		fmt.Sprintf(`ALTER TABLE articles ADD COLUMN IF NOT EXISTS search_vector tsvector
			GENERATED ALWAYS AS (to_tsvector('%s',
				coalesce(title, '') || ' ' ||
				coalesce(announcement, '') || ' ' ||
				coalesce(article_body, ''))) STORED`, language),
		`CREATE INDEX IF NOT EXISTS idx_articles_search_vector ON articles USING gin (search_vector)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_trgm ON articles USING gin (
			(coalesce(title, '') || ' ' || coalesce(announcement, '') || ' ' || coalesce(article_body, '')) gin_trgm_ops)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("setup search schema failed: %w", err)
		}
	}
	return nil
}
