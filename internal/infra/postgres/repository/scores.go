package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/infra/postgres"
)

// ScoreStore keeps quiz results and player stats consistent in one transaction.
type ScoreStore struct {
	pool *pgxpool.Pool
	tr   *postgres.Transactor
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{
		pool: pool,
		tr:   postgres.NewTransactor(pool),
	}
}

// Record stores the result and returns the updated stats of the player.
func (s *ScoreStore) Record(ctx context.Context, result *entities.QuizResult) (*entities.PlayerStats, error) {
	var stats *entities.PlayerStats

	err := s.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		resultRepo := NewResultRepository(tx)
		statsRepo := NewStatsRepository(tx)

		if err := resultRepo.Insert(ctx, result); err != nil {
			return err
		}

		current, err := statsRepo.GetForUpdate(ctx, result.UserID)
		if err != nil {
			if !errors.Is(err, ErrStatsNotFound) {
				return err
			}
			current = entities.NewPlayerStats(result.UserID)
		}

		current.Apply(result)
		if err := statsRepo.Upsert(ctx, current); err != nil {
			return err
		}

		stats = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Stats returns the stats of a user; a user without results gets empty stats.
func (s *ScoreStore) Stats(ctx context.Context, userID int64) (*entities.PlayerStats, error) {
	stats, err := NewStatsRepository(s.pool).Get(ctx, userID)
	if errors.Is(err, ErrStatsNotFound) {
		return entities.NewPlayerStats(userID), nil
	}
	return stats, err
}

func (s *ScoreStore) Recent(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	return NewResultRepository(s.pool).Recent(ctx, userID, limit)
}
