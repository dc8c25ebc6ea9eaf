package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

var france = &entities.CountryFacts{Name: "France", Capital: "Paris"}

func questions() []entities.QuizQuestion {
	return []entities.QuizQuestion{
		{Question: "Capital of Italy?", Options: []string{"Rome", "Milan", "Naples", "Turin"}, CorrectAnswerIndex: 0},
		{Question: "Where is paella from?", Options: []string{"France", "Spain", "Greece", "Malta"}, CorrectAnswerIndex: 1},
		{Question: "Largest country?", Options: []string{"Malta", "Spain", "Russia", "Ukraine"}, CorrectAnswerIndex: 2},
	}
}

func click(name string) ClickCountry {
	return ClickCountry{Props: entities.RegionProperties{Name: name}}
}

func TestClickCountry_FetchThenDisplay(t *testing.T) {
	s := New()

	s, effects := Reduce(s, click("France"))
	assert.True(t, s.Loading)
	assert.Nil(t, s.Facts)
	assert.Equal(t, "France", s.Selected)
	require.Len(t, effects, 1)

	fetch, ok := effects[0].(FetchFacts)
	require.True(t, ok)
	assert.Equal(t, "France", fetch.Country)
	assert.Equal(t, s.FactsTag, fetch.Tag)

	s, effects = Reduce(s, FactsLoaded{Tag: fetch.Tag, Facts: france})
	assert.False(t, s.Loading)
	assert.Same(t, france, s.Facts)
	assert.Empty(t, effects)

	again, effects := Reduce(s, click("France"))
	assert.Empty(t, effects)
	assert.Equal(t, s, again)
}

func TestClickCountry_SameCountryWhileLoadingIsNoop(t *testing.T) {
	s, _ := Reduce(New(), click("France"))

	next, effects := Reduce(s, click("France"))
	assert.Empty(t, effects)
	assert.Equal(t, s, next)
}

func TestClickCountry_CachedNeverFetches(t *testing.T) {
	s, effects := Reduce(New(), ClickCountry{Props: entities.RegionProperties{Name: "France"}, Cached: france})

	assert.Same(t, france, s.Facts)
	assert.False(t, s.Loading)
	for _, e := range effects {
		_, isFetch := e.(FetchFacts)
		assert.False(t, isFetch)
	}
}

func TestClickCountry_NameFallbackAndMissing(t *testing.T) {
	s, effects := Reduce(New(), ClickCountry{Props: entities.RegionProperties{Key: "fr"}})
	assert.Equal(t, "fr", s.Selected)
	assert.Len(t, effects, 1)

	s, effects = Reduce(New(), ClickCountry{Props: entities.RegionProperties{Alpha2: "FR"}})
	assert.Equal(t, New(), s)
	assert.Empty(t, effects)
}

func TestFactsLoaded_StaleResultDiscarded(t *testing.T) {
	s, effects := Reduce(New(), click("France"))
	franceTag := effects[0].(FetchFacts).Tag

	s, effects = Reduce(s, click("Spain"))
	spainTag := effects[0].(FetchFacts).Tag
	assert.NotEqual(t, franceTag, spainTag)

	s, _ = Reduce(s, FactsLoaded{Tag: franceTag, Facts: france})
	assert.True(t, s.Loading)
	assert.Nil(t, s.Facts)
	assert.Equal(t, "Spain", s.Selected)

	spain := &entities.CountryFacts{Name: "Spain"}
	s, _ = Reduce(s, FactsLoaded{Tag: spainTag, Facts: spain})
	assert.Same(t, spain, s.Facts)
}

func TestFactsFailed(t *testing.T) {
	s, effects := Reduce(New(), click("France"))
	tag := effects[0].(FetchFacts).Tag
	boom := errors.New("boom")

	stale, _ := Reduce(s, FactsFailed{Tag: tag + 1, Err: boom})
	assert.Equal(t, s, stale)

	s, _ = Reduce(s, FactsFailed{Tag: tag, Err: boom})
	require.NotNil(t, s.Failure)
	assert.Equal(t, ScopeFacts, s.Failure.Scope)
	assert.Equal(t, "France", s.Failure.Country)
	assert.ErrorIs(t, s.Failure.Err, boom)
	assert.False(t, s.Loading)
	assert.Nil(t, s.Facts)
	assert.Empty(t, s.Selected)

	s, effects = Reduce(s, click("France"))
	assert.Nil(t, s.Failure)
	assert.True(t, s.Loading)
	assert.Len(t, effects, 1)
}

func TestCloseCard(t *testing.T) {
	s, effects := Reduce(New(), click("France"))
	tag := effects[0].(FetchFacts).Tag

	s, effects = Reduce(s, CloseCard{})
	assert.Empty(t, s.Selected)
	assert.Nil(t, s.Facts)
	assert.False(t, s.Loading)
	assert.Equal(t, []Effect{CancelFacts{}}, effects)

	s, _ = Reduce(s, FactsLoaded{Tag: tag, Facts: france})
	assert.Nil(t, s.Facts)
	assert.False(t, s.CardVisible())
}

func TestSwitchTab(t *testing.T) {
	s, _ := Reduce(New(), ClickCountry{Props: entities.RegionProperties{Name: "France"}, Cached: france})
	assert.True(t, s.CardVisible())

	s, _ = Reduce(s, SwitchTab{Tab: TabQuiz})
	assert.Equal(t, TabQuiz, s.Tab)
	assert.False(t, s.CardVisible())

	s, _ = Reduce(s, SwitchTab{Tab: "weather"})
	assert.Equal(t, TabQuiz, s.Tab)
}

func startQuiz(t *testing.T, s State) State {
	t.Helper()

	s, effects := Reduce(s, StartQuiz{})
	require.Len(t, effects, 1)
	fetch := effects[0].(FetchQuiz)
	assert.True(t, s.Quiz.Loading)

	s, _ = Reduce(s, QuizLoaded{Tag: fetch.Tag, Questions: questions()})
	require.Equal(t, PhasePlaying, s.Quiz.Phase)
	return s
}

func TestQuiz_ScoreCountsCorrectSelections(t *testing.T) {
	s := startQuiz(t, New())

	var recorded []Effect
	for _, answer := range []int{0, 3, 2} {
		s, _ = Reduce(s, SelectOption{Index: answer})
		s, recorded = Reduce(s, NextQuestion{})
	}

	assert.Equal(t, PhaseFinished, s.Quiz.Phase)
	assert.Equal(t, 2, s.Quiz.Score)
	assert.Equal(t, []Effect{RecordResult{Score: 2, Total: 3}}, recorded)
}

func TestQuiz_SelectTwiceIsIdempotent(t *testing.T) {
	s := startQuiz(t, New())

	s, _ = Reduce(s, SelectOption{Index: 0})
	assert.Equal(t, 1, s.Quiz.Score)
	assert.Equal(t, 0, s.Quiz.Selected)

	again, _ := Reduce(s, SelectOption{Index: 0})
	assert.Equal(t, s, again)

	other, _ := Reduce(s, SelectOption{Index: 2})
	assert.Equal(t, 1, other.Quiz.Score)
	assert.Equal(t, 0, other.Quiz.Selected)
}

func TestQuiz_InvalidMoves(t *testing.T) {
	s := New()

	next, _ := Reduce(s, SelectOption{Index: 0})
	assert.Equal(t, s, next)

	next, _ = Reduce(s, NextQuestion{})
	assert.Equal(t, s, next)

	s = startQuiz(t, s)

	next, _ = Reduce(s, NextQuestion{})
	assert.Equal(t, s, next, "next before answering")

	next, _ = Reduce(s, SelectOption{Index: 4})
	assert.Equal(t, s, next, "out of range option")

	next, effects := Reduce(s, StartQuiz{})
	assert.Equal(t, s, next, "start while playing")
	assert.Empty(t, effects)
}

func TestQuiz_RestartFromFinished(t *testing.T) {
	s := startQuiz(t, New())
	for range questions() {
		s, _ = Reduce(s, SelectOption{Index: 0})
		s, _ = Reduce(s, NextQuestion{})
	}
	require.Equal(t, PhaseFinished, s.Quiz.Phase)
	require.Equal(t, 1, s.Quiz.Score)

	s, effects := Reduce(s, StartQuiz{})
	tag := effects[0].(FetchQuiz).Tag
	assert.Equal(t, PhaseFinished, s.Quiz.Phase)

	s, _ = Reduce(s, QuizLoaded{Tag: tag, Questions: questions()})
	assert.Equal(t, PhasePlaying, s.Quiz.Phase)
	assert.Equal(t, 0, s.Quiz.Score)
	assert.Equal(t, 0, s.Quiz.Index)
	assert.False(t, s.Quiz.Answered)
	assert.Equal(t, NoSelection, s.Quiz.Selected)
}

func TestQuiz_LoadFailures(t *testing.T) {
	s, effects := Reduce(New(), StartQuiz{})
	tag := effects[0].(FetchQuiz).Tag

	again, effects := Reduce(s, StartQuiz{})
	assert.Equal(t, s, again)
	assert.Empty(t, effects)

	failed, _ := Reduce(s, QuizFailed{Tag: tag, Err: errors.New("boom")})
	assert.Equal(t, PhaseIntro, failed.Quiz.Phase)
	assert.False(t, failed.Quiz.Loading)
	require.NotNil(t, failed.Failure)
	assert.Equal(t, ScopeQuiz, failed.Failure.Scope)

	empty, _ := Reduce(s, QuizLoaded{Tag: tag})
	require.NotNil(t, empty.Failure)
	assert.ErrorIs(t, empty.Failure.Err, ErrEmptyQuiz)

	stale, _ := Reduce(s, QuizLoaded{Tag: tag + 10, Questions: questions()})
	assert.Equal(t, s, stale)
}
