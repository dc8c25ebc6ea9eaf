package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
	"github.com/aliskhannn/euroexplorer-bot/internal/storage"
)

type fakeContent struct {
	mu         sync.Mutex
	factsCalls []string
	quizCalls  int

	facts func(ctx context.Context, name string) (*entities.CountryFacts, error)
	quiz  func(ctx context.Context) ([]entities.QuizQuestion, error)
}

func (f *fakeContent) FetchCountryFacts(ctx context.Context, name string) (*entities.CountryFacts, error) {
	f.mu.Lock()
	f.factsCalls = append(f.factsCalls, name)
	f.mu.Unlock()
	return f.facts(ctx, name)
}

func (f *fakeContent) FetchQuizQuestions(ctx context.Context) ([]entities.QuizQuestion, error) {
	f.mu.Lock()
	f.quizCalls++
	f.mu.Unlock()
	return f.quiz(ctx)
}

func (f *fakeContent) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.factsCalls...)
}

type recordingRenderer struct {
	mu     sync.Mutex
	states []state.State
}

func (r *recordingRenderer) Render(_ context.Context, _ int64, _, next state.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, next)
	return nil
}

func (r *recordingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func factsFor(name string) *entities.CountryFacts {
	return &entities.CountryFacts{Name: name, Capital: "Capital of " + name, Emoji: "🏳️"}
}

func newTestExplorer(content *fakeContent) (*ExplorerService, *storage.FactsCache, *storage.ScoreStorage, *recordingRenderer) {
	cache := storage.NewFactsCache()
	scores := storage.NewScoreStorage()
	renderer := &recordingRenderer{}

	svc := NewExplorerService(content, cache, scores, storage.NewSessionStore(), zap.NewNop())
	svc.SetRenderer(renderer)

	return svc, cache, scores, renderer
}

func click(name string) state.ClickCountry {
	return state.ClickCountry{Props: entities.RegionProperties{Name: name}}
}

func TestExplorer_CachedClickNeverFetches(t *testing.T) {
	content := &fakeContent{}
	svc, cache, _, renderer := newTestExplorer(content)

	cached := factsFor("France")
	cache.Store("France", cached)

	next, err := svc.Dispatch(context.Background(), 1, 10, click("France"))
	require.NoError(t, err)
	svc.Wait()

	assert.Empty(t, content.calls())
	assert.Same(t, cached, next.Facts)
	assert.False(t, next.Loading)
	assert.Equal(t, 1, renderer.count())
}

func TestExplorer_FetchesAndCaches(t *testing.T) {
	content := &fakeContent{
		facts: func(_ context.Context, name string) (*entities.CountryFacts, error) {
			return factsFor(name), nil
		},
	}
	svc, cache, _, renderer := newTestExplorer(content)

	next, err := svc.Dispatch(context.Background(), 1, 10, click("France"))
	require.NoError(t, err)
	assert.True(t, next.Loading)
	assert.Equal(t, "France", next.Selected)

	svc.Wait()

	got := svc.Snapshot(1)
	require.NotNil(t, got.Facts)
	assert.Equal(t, "France", got.Facts.Name)
	assert.False(t, got.Loading)
	assert.NotNil(t, cache.Get("France"))
	assert.Equal(t, []string{"France"}, content.calls())
	assert.Equal(t, 2, renderer.count())

	// A second click on another chat is served from the cache.
	other, err := svc.Dispatch(context.Background(), 2, 20, click("France"))
	require.NoError(t, err)
	assert.NotNil(t, other.Facts)
	assert.Len(t, content.calls(), 1)
}

func TestExplorer_StaleResultIsDiscarded(t *testing.T) {
	release := map[string]chan struct{}{
		"France": make(chan struct{}),
		"Spain":  make(chan struct{}),
	}
	content := &fakeContent{
		facts: func(_ context.Context, name string) (*entities.CountryFacts, error) {
			<-release[name]
			return factsFor(name), nil
		},
	}
	svc, cache, _, _ := newTestExplorer(content)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx, 1, 10, click("France"))
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, 1, 10, click("Spain"))
	require.NoError(t, err)

	close(release["Spain"])
	close(release["France"])
	svc.Wait()

	got := svc.Snapshot(1)
	assert.Equal(t, "Spain", got.Selected)
	require.NotNil(t, got.Facts)
	assert.Equal(t, "Spain", got.Facts.Name)

	// The late result still warms the cache.
	assert.NotNil(t, cache.Get("France"))
}

func TestExplorer_FactsFailureRaisesBanner(t *testing.T) {
	content := &fakeContent{
		facts: func(context.Context, string) (*entities.CountryFacts, error) {
			return nil, errors.New("boom")
		},
	}
	svc, cache, _, _ := newTestExplorer(content)

	_, err := svc.Dispatch(context.Background(), 1, 10, click("Atlantis"))
	require.NoError(t, err)
	svc.Wait()

	got := svc.Snapshot(1)
	require.NotNil(t, got.Failure)
	assert.Equal(t, state.ScopeFacts, got.Failure.Scope)
	assert.Equal(t, "Atlantis", got.Failure.Country)
	assert.Empty(t, got.Selected)
	assert.False(t, got.Loading)
	assert.Nil(t, cache.Get("Atlantis"))
}

func TestExplorer_CloseCardCancelsRequest(t *testing.T) {
	started := make(chan struct{})
	content := &fakeContent{
		facts: func(ctx context.Context, _ string) (*entities.CountryFacts, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc, _, _, _ := newTestExplorer(content)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx, 1, 10, click("France"))
	require.NoError(t, err)
	<-started

	_, err = svc.Dispatch(ctx, 1, 10, state.CloseCard{})
	require.NoError(t, err)
	svc.Wait()

	got := svc.Snapshot(1)
	assert.Nil(t, got.Failure)
	assert.Nil(t, got.Facts)
	assert.Empty(t, got.Selected)
}

func TestExplorer_QuizRunIsRecorded(t *testing.T) {
	questions := []entities.QuizQuestion{
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, CorrectAnswerIndex: 0},
		{Question: "Capital of Italy?", Options: []string{"Paris", "Rome"}, CorrectAnswerIndex: 1},
	}
	content := &fakeContent{
		quiz: func(context.Context) ([]entities.QuizQuestion, error) {
			return questions, nil
		},
	}
	svc, _, _, _ := newTestExplorer(content)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx, 1, 10, state.StartQuiz{})
	require.NoError(t, err)
	svc.Wait()
	require.Equal(t, state.PhasePlaying, svc.Snapshot(1).Quiz.Phase)

	for _, ev := range []state.Event{
		state.SelectOption{Index: 0},
		state.NextQuestion{},
		state.SelectOption{Index: 0},
		state.NextQuestion{},
	} {
		_, err := svc.Dispatch(ctx, 1, 10, ev)
		require.NoError(t, err)
	}
	svc.Wait()

	got := svc.Snapshot(1)
	assert.Equal(t, state.PhaseFinished, got.Quiz.Phase)
	assert.Equal(t, 1, got.Quiz.Score)

	stats, recent, err := svc.Stats(ctx, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GamesPlayed)
	require.Len(t, recent, 1)
	assert.Equal(t, 1, recent[0].Score)
	assert.Equal(t, 2, recent[0].Total)
	assert.Equal(t, int64(1), recent[0].ChatID)
}

func TestExplorer_QuizFailureKeepsPhase(t *testing.T) {
	content := &fakeContent{
		quiz: func(context.Context) ([]entities.QuizQuestion, error) {
			return nil, errors.New("overloaded")
		},
	}
	svc, _, _, _ := newTestExplorer(content)

	_, err := svc.Dispatch(context.Background(), 1, 10, state.StartQuiz{})
	require.NoError(t, err)
	svc.Wait()

	got := svc.Snapshot(1)
	assert.Equal(t, state.PhaseIntro, got.Quiz.Phase)
	assert.False(t, got.Quiz.Loading)
	require.NotNil(t, got.Failure)
	assert.Equal(t, state.ScopeQuiz, got.Failure.Scope)
}

func TestExplorer_ShutdownCancelsInFlight(t *testing.T) {
	started := make(chan struct{})
	content := &fakeContent{
		facts: func(ctx context.Context, _ string) (*entities.CountryFacts, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	svc, _, _, renderer := newTestExplorer(content)

	_, err := svc.Dispatch(context.Background(), 1, 10, click("France"))
	require.NoError(t, err)
	<-started

	svc.Shutdown()
	assert.Equal(t, 1, renderer.count())
}
