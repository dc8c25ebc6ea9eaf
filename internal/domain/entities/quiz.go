package entities

import "time"

// QuizQuestion is a single multiple-choice question of a quiz run.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// IsCorrect reports whether index points at the correct option.
func (q QuizQuestion) IsCorrect(index int) bool {
	return index == q.CorrectAnswerIndex
}

// CorrectAnswer returns the text of the correct option.
func (q QuizQuestion) CorrectAnswer() string {
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswerIndex]
}

// QuizResult is the outcome of a finished quiz run.
type QuizResult struct {
	ID         int64     // unique result ID
	UserID     int64     // telegram user who played
	ChatID     int64     // chat the quiz was played in
	Score      int       // number of correct answers
	Total      int       // number of questions
	FinishedAt time.Time // timestamp when the last question was answered
}

// NewQuizResult creates a result finished now.
func NewQuizResult(userID, chatID int64, score, total int) *QuizResult {
	return &QuizResult{
		UserID:     userID,
		ChatID:     chatID,
		Score:      score,
		Total:      total,
		FinishedAt: time.Now(),
	}
}

// Percentage returns the share of correct answers in percent.
func (r *QuizResult) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

// IsPerfect reports whether every answer was correct.
func (r *QuizResult) IsPerfect() bool {
	return r.Total > 0 && r.Score == r.Total
}
