package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"contentgen/internal/models"
)

type UsageRepo struct {
	pool *pgxpool.Pool
}

func NewUsageRepo(pool *pgxpool.Pool) *UsageRepo {
	return &UsageRepo{pool: pool}
}

func (r *UsageRepo) Record(ctx context.Context, e *models.UsageEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	query := `INSERT INTO usage_log (id, kind, variant, tokens_used, input_words, output_words)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		e.ID, e.Kind, e.Variant, e.TokensUsed, e.InputWords, e.OutputWords,
	).Scan(&e.CreatedAt)
}

// Totals aggregates request count and tokens per kind.
func (r *UsageRepo) Totals(ctx context.Context) ([]models.UsageTotal, error) {
	rows, err := r.pool.Query(ctx, `SELECT kind, COUNT(*), COALESCE(SUM(tokens_used), 0)
		FROM usage_log GROUP BY kind ORDER BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage totals: %w", err)
	}
	defer rows.Close()

	totals := []models.UsageTotal{}
	for rows.Next() {
		var t models.UsageTotal
		if err := rows.Scan(&t.Kind, &t.Requests, &t.TokensUsed); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
