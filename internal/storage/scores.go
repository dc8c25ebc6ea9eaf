package storage

import (
	"context"
	"sync"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

// ScoreStorage keeps quiz results in memory when no database is configured.
type ScoreStorage struct {
	mu      sync.RWMutex
	nextID  int64
	results map[int64][]*entities.QuizResult
	stats   map[int64]*entities.PlayerStats
}

// NewScoreStorage creates a new ScoreStorage.
func NewScoreStorage() *ScoreStorage {
	return &ScoreStorage{
		results: make(map[int64][]*entities.QuizResult),
		stats:   make(map[int64]*entities.PlayerStats),
	}
}

// Record saves a result and returns the updated stats of the player.
func (s *ScoreStorage) Record(_ context.Context, result *entities.QuizResult) (*entities.PlayerStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := *result
	stored.ID = s.nextID
	result.ID = stored.ID
	s.results[result.UserID] = append(s.results[result.UserID], &stored)

	stats, ok := s.stats[result.UserID]
	if !ok {
		stats = entities.NewPlayerStats(result.UserID)
		s.stats[result.UserID] = stats
	}
	stats.Apply(&stored)

	out := *stats
	return &out, nil
}

// Stats returns a copy of the player's stats; unknown players get empty stats.
func (s *ScoreStorage) Stats(_ context.Context, userID int64) (*entities.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[userID]
	if !ok {
		return entities.NewPlayerStats(userID), nil
	}
	out := *stats
	return &out, nil
}

// Recent returns up to limit results of a user, newest first.
func (s *ScoreStorage) Recent(_ context.Context, userID int64, limit int) ([]*entities.QuizResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.results[userID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}

	out := make([]*entities.QuizResult, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		res := *all[i]
		out = append(out, &res)
	}
	return out, nil
}
