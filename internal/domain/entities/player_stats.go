package entities

import "time"

// PlayerStats aggregates quiz results of a single user.
type PlayerStats struct {
	UserID       int64     // telegram user ID
	GamesPlayed  int       // number of finished quizzes
	BestScore    int       // highest score of a single quiz
	BestTotal    int       // question count of the best quiz
	TotalCorrect int       // correct answers over all quizzes
	UpdatedAt    time.Time // last time a result was recorded
}

// NewPlayerStats creates empty stats for a user.
func NewPlayerStats(userID int64) *PlayerStats {
	return &PlayerStats{UserID: userID}
}

// Apply folds a finished quiz into the stats.
func (s *PlayerStats) Apply(r *QuizResult) {
	s.GamesPlayed++
	s.TotalCorrect += r.Score
	if s.GamesPlayed == 1 || r.Score > s.BestScore {
		s.BestScore = r.Score
		s.BestTotal = r.Total
	}
	s.UpdatedAt = r.FinishedAt
}
