package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/infra/postgres"
)

var ErrStatsNotFound = errors.New("player stats not found")

// StatsRepository provides access to aggregated player stats.
type StatsRepository struct {
	db postgres.DBTX
}

func NewStatsRepository(db postgres.DBTX) *StatsRepository {
	return &StatsRepository{db: db}
}

// Get returns the stats of a user or ErrStatsNotFound.
func (r *StatsRepository) Get(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	return r.get(ctx, userID, false)
}

// GetForUpdate is Get with a row lock; use it inside a transaction.
func (r *StatsRepository) GetForUpdate(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	return r.get(ctx, userID, true)
}

func (r *StatsRepository) get(ctx context.Context, userID int64, lock bool) (*entities.PlayerStats, error) {
	query := `
		SELECT user_id, games_played, best_score, best_total, total_correct, updated_at
		FROM player_stats
		WHERE user_id = $1
	`
	if lock {
		query += " FOR UPDATE"
	}

	var s entities.PlayerStats
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&s.UserID,
		&s.GamesPlayed,
		&s.BestScore,
		&s.BestTotal,
		&s.TotalCorrect,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatsNotFound
		}
		return nil, fmt.Errorf("get player stats: %w", err)
	}

	return &s, nil
}

// Upsert creates or replaces the stats row of a user.
func (r *StatsRepository) Upsert(ctx context.Context, s *entities.PlayerStats) error {
	query := `
		INSERT INTO player_stats (user_id, games_played, best_score, best_total, total_correct, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			games_played = EXCLUDED.games_played,
			best_score = EXCLUDED.best_score,
			best_total = EXCLUDED.best_total,
			total_correct = EXCLUDED.total_correct,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(
		ctx, query,
		s.UserID,
		s.GamesPlayed,
		s.BestScore,
		s.BestTotal,
		s.TotalCorrect,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert player stats: %w", err)
	}

	return nil
}
