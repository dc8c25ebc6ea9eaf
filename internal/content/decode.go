package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

// ErrMalformedResponse matches every *MalformedResponseError.
var ErrMalformedResponse = errors.New("malformed model response")

// MalformedResponseError describes a response that could not be turned into a typed value.
type MalformedResponseError struct {
	Op     string // "country facts" or "quiz"
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", ErrMalformedResponse, e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", ErrMalformedResponse, e.Op, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func malformed(op, reason string, err error) error {
	return &MalformedResponseError{Op: op, Reason: reason, Err: err}
}

const (
	opFacts = "country facts"
	opQuiz  = "quiz"
)

// DecodeCountryFacts parses a structured-output payload into CountryFacts.
func DecodeCountryFacts(text string) (*entities.CountryFacts, error) {
	if strings.TrimSpace(text) == "" {
		return nil, malformed(opFacts, "empty response", nil)
	}

	var facts entities.CountryFacts
	if err := json.Unmarshal([]byte(text), &facts); err != nil {
		return nil, malformed(opFacts, "invalid json", err)
	}

	if strings.TrimSpace(facts.Name) == "" {
		return nil, malformed(opFacts, "missing country name", nil)
	}

	return &facts, nil
}

// DecodeQuizQuestions parses a structured-output payload into at most limit questions.
func DecodeQuizQuestions(text string, limit int) ([]entities.QuizQuestion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, malformed(opQuiz, "empty response", nil)
	}

	var questions []entities.QuizQuestion
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, malformed(opQuiz, "invalid json", err)
	}

	if len(questions) == 0 {
		return nil, malformed(opQuiz, "no questions", nil)
	}

	if limit > 0 && len(questions) > limit {
		questions = questions[:limit]
	}

	for i, q := range questions {
		if len(q.Options) < 2 {
			return nil, malformed(opQuiz, fmt.Sprintf("question %d has %d options", i+1, len(q.Options)), nil)
		}
		if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
			return nil, malformed(opQuiz, fmt.Sprintf("question %d has correct index %d", i+1, q.CorrectAnswerIndex), nil)
		}
	}

	return questions, nil
}
