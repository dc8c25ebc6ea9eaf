package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/infra/postgres"
)

// ResultRepository provides access to finished quiz runs.
type ResultRepository struct {
	db postgres.DBTX
}

// NewResultRepository creates a new ResultRepository on a pool or transaction.
func NewResultRepository(db postgres.DBTX) *ResultRepository {
	return &ResultRepository{db: db}
}

// Insert stores a result and fills its ID.
func (r *ResultRepository) Insert(ctx context.Context, result *entities.QuizResult) error {
	query := `
		INSERT INTO quiz_results (user_id, chat_id, score, total, finished_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(
		ctx, query,
		result.UserID,
		result.ChatID,
		result.Score,
		result.Total,
		result.FinishedAt,
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}

	return nil
}

// Recent returns the latest results of a user, newest first.
func (r *ResultRepository) Recent(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	query := `
		SELECT id, user_id, chat_id, score, total, finished_at
		FROM quiz_results
		WHERE user_id = $1
		ORDER BY finished_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent results: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.QuizResult, error) {
		var res entities.QuizResult
		err := row.Scan(&res.ID, &res.UserID, &res.ChatID, &res.Score, &res.Total, &res.FinishedAt)
		return &res, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect recent results: %w", err)
	}

	return results, nil
}
