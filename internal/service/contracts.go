package service

import (
	"context"
	"time"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

type ContentClient interface {
	FetchCountryFacts(ctx context.Context, countryName string) (*entities.CountryFacts, error)
	FetchQuizQuestions(ctx context.Context) ([]entities.QuizQuestion, error)
}

type FactsCache interface {
	Get(country string) *entities.CountryFacts
	Store(country string, facts *entities.CountryFacts)
}

type ScoreStore interface {
	Record(ctx context.Context, result *entities.QuizResult) (*entities.PlayerStats, error)
	Stats(ctx context.Context, userID int64) (*entities.PlayerStats, error)
	Recent(ctx context.Context, userID int64, limit int) ([]*entities.QuizResult, error)
}

// Renderer shows the transition from prev to next to the chat.
type Renderer interface {
	Render(ctx context.Context, chatID int64, prev, next state.State) error
}

type RegionCatalog interface {
	Refresh(ctx context.Context) error
}

type SessionSweeper interface {
	Sweep(ttl time.Duration) int
}
