package repository

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/sirupsen/logrus"
)

const viewCountsSchema = `
        CREATE TABLE IF NOT EXISTS view_counts (
            id    SMALLINT PRIMARY KEY,
            count BIGINT NOT NULL DEFAULT 0
        )`

type postgresViewCounter struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresViewCounter(ctx context.Context, db *sql.DB, logger *logrus.Logger) (domain.ViewCounter, error) {
	if _, err := db.ExecContext(ctx, viewCountsSchema); err != nil {
		return nil, fmt.Errorf("could not ensure view_counts table: %w", err)
	}
	return &postgresViewCounter{db: db, log: logger}, nil
}

func (c *postgresViewCounter) IncrementAndGet(ctx context.Context) (int64, error) {
	query := `
        INSERT INTO view_counts (id, count) VALUES (1, 1)
        ON CONFLICT (id) DO UPDATE SET count = view_counts.count + 1
        RETURNING count`
	var count int64
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		c.log.Errorf("Failed to increment view count: %v", err)
		return 0, fmt.Errorf("could not update view count: %w", err)
	}
	return count, nil
}
