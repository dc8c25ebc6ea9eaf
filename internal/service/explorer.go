package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
	"github.com/aliskhannn/euroexplorer-bot/internal/storage"
)

const (
	kindFacts = "facts"
	kindQuiz  = "quiz"

	recordTimeout = 10 * time.Second
)

// ExplorerService drives the per-chat explorer state. Events of one chat are
// applied one at a time; requests run in the background and come back as events.
type ExplorerService struct {
	content  ContentClient
	facts    FactsCache
	scores   ScoreStore
	sessions *storage.SessionStore
	renderer Renderer
	logger   *zap.Logger

	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup
}

// NewExplorerService creates a new explorer service.
func NewExplorerService(
	content ContentClient,
	facts FactsCache,
	scores ScoreStore,
	sessions *storage.SessionStore,
	logger *zap.Logger,
) *ExplorerService {
	base, stop := context.WithCancel(context.Background())
	return &ExplorerService{
		content:  content,
		facts:    facts,
		scores:   scores,
		sessions: sessions,
		logger:   logger,
		base:     base,
		stop:     stop,
	}
}

// SetRenderer sets the renderer (called after the handler is created).
func (s *ExplorerService) SetRenderer(r Renderer) {
	s.renderer = r
}

// Dispatch applies ev to the chat's state, starts the requested work and renders
// the result. It returns the new state.
func (s *ExplorerService) Dispatch(ctx context.Context, chatID, userID int64, ev state.Event) (state.State, error) {
	sess := s.sessions.Get(chatID)

	sess.Lock()
	defer sess.Unlock()

	if userID != 0 {
		sess.UserID = userID
	}

	return s.apply(ctx, sess, ev)
}

// Snapshot returns the current state of a chat.
func (s *ExplorerService) Snapshot(chatID int64) state.State {
	sess := s.sessions.Get(chatID)

	sess.Lock()
	defer sess.Unlock()

	return sess.State
}

// Stats returns the player's stats and up to limit latest results.
func (s *ExplorerService) Stats(ctx context.Context, userID int64, limit int) (*entities.PlayerStats, []*entities.QuizResult, error) {
	stats, err := s.scores.Stats(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("get stats: %w", err)
	}

	recent, err := s.scores.Recent(ctx, userID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("get recent results: %w", err)
	}

	return stats, recent, nil
}

// Shutdown cancels in-flight requests and waits for them to return.
func (s *ExplorerService) Shutdown() {
	s.stop()
	s.wg.Wait()
}

// Wait blocks until all background work has finished.
func (s *ExplorerService) Wait() {
	s.wg.Wait()
}

// apply must be called with sess locked.
func (s *ExplorerService) apply(ctx context.Context, sess *storage.Session, ev state.Event) (state.State, error) {
	if click, ok := ev.(state.ClickCountry); ok && click.Cached == nil {
		click.Cached = s.facts.Get(click.Props.DisplayName())
		ev = click
	}

	prev := sess.State
	next, effects := state.Reduce(prev, ev)
	sess.State = next

	for _, eff := range effects {
		s.run(sess, eff)
	}

	if s.renderer == nil {
		return next, nil
	}
	if err := s.renderer.Render(ctx, sess.ChatID, prev, next); err != nil {
		return next, fmt.Errorf("render: %w", err)
	}

	return next, nil
}

// run must be called with sess locked.
func (s *ExplorerService) run(sess *storage.Session, eff state.Effect) {
	switch e := eff.(type) {
	case state.FetchFacts:
		ctx, cancel := context.WithCancel(s.base)
		sess.SetCancel(kindFacts, cancel)
		s.goFetchFacts(ctx, cancel, sess, e)

	case state.CancelFacts:
		sess.Cancel(kindFacts)

	case state.FetchQuiz:
		ctx, cancel := context.WithCancel(s.base)
		sess.SetCancel(kindQuiz, cancel)
		s.goFetchQuiz(ctx, cancel, sess, e)

	case state.RecordResult:
		s.goRecordResult(sess.UserID, sess.ChatID, e)
	}
}

func (s *ExplorerService) goFetchFacts(ctx context.Context, cancel context.CancelFunc, sess *storage.Session, e state.FetchFacts) {
	log := s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int64("chat_id", sess.ChatID),
		zap.String("country", e.Country),
		zap.Uint64("tag", e.Tag),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		log.Debug("fetching country facts")
		facts, err := s.content.FetchCountryFacts(ctx, e.Country)
		if err == nil {
			s.facts.Store(e.Country, facts)
		}

		if ctx.Err() != nil {
			log.Debug("facts request abandoned")
			return
		}

		var ev state.Event = state.FactsLoaded{Tag: e.Tag, Facts: facts}
		if err != nil {
			log.Warn("failed to fetch country facts", zap.Error(err))
			ev = state.FactsFailed{Tag: e.Tag, Err: err}
		}

		s.complete(log, sess, ev)
	}()
}

func (s *ExplorerService) goFetchQuiz(ctx context.Context, cancel context.CancelFunc, sess *storage.Session, e state.FetchQuiz) {
	log := s.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int64("chat_id", sess.ChatID),
		zap.Uint64("tag", e.Tag),
	)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		log.Debug("fetching quiz")
		questions, err := s.content.FetchQuizQuestions(ctx)
		if ctx.Err() != nil {
			log.Debug("quiz request abandoned")
			return
		}

		var ev state.Event = state.QuizLoaded{Tag: e.Tag, Questions: questions}
		if err != nil {
			log.Warn("failed to fetch quiz", zap.Error(err))
			ev = state.QuizFailed{Tag: e.Tag, Err: err}
		}

		s.complete(log, sess, ev)
	}()
}

func (s *ExplorerService) goRecordResult(userID, chatID int64, e state.RecordResult) {
	result := entities.NewQuizResult(userID, chatID, e.Score, e.Total)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.base), recordTimeout)
		defer cancel()

		stats, err := s.scores.Record(ctx, result)
		if err != nil {
			s.logger.Error("failed to record quiz result",
				zap.Int64("chat_id", chatID),
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			return
		}

		s.logger.Info("quiz result recorded",
			zap.Int64("chat_id", chatID),
			zap.Int64("user_id", userID),
			zap.Int("score", result.Score),
			zap.Int("total", result.Total),
			zap.Int("games_played", stats.GamesPlayed),
		)
	}()
}

// complete feeds the outcome of a request back into the chat's state.
func (s *ExplorerService) complete(log *zap.Logger, sess *storage.Session, ev state.Event) {
	sess.Lock()
	defer sess.Unlock()

	if _, err := s.apply(s.base, sess, ev); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("failed to render request result", zap.Error(err))
	}
}
