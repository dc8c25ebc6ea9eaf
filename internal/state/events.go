package state

import "github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"

// Event is an input of the reducer.
type Event interface {
	event()
}

// SwitchTab changes the active view.
type SwitchTab struct{ Tab Tab }

// ClickCountry is a press on a map region. Cached holds the facts found in the
// cache for the region's display name, if any.
type ClickCountry struct {
	Props  entities.RegionProperties
	Cached *entities.CountryFacts
}

// FactsLoaded completes the facts request issued with Tag.
type FactsLoaded struct {
	Tag   uint64
	Facts *entities.CountryFacts
}

// FactsFailed fails the facts request issued with Tag.
type FactsFailed struct {
	Tag uint64
	Err error
}

// CloseCard closes the flashcard.
type CloseCard struct{}

// StartQuiz requests a new quiz run.
type StartQuiz struct{}

// QuizLoaded completes the quiz request issued with Tag.
type QuizLoaded struct {
	Tag       uint64
	Questions []entities.QuizQuestion
}

// QuizFailed fails the quiz request issued with Tag.
type QuizFailed struct {
	Tag uint64
	Err error
}

// SelectOption answers the current question.
type SelectOption struct{ Index int }

// NextQuestion advances past an answered question.
type NextQuestion struct{}

func (SwitchTab) event()    {}
func (ClickCountry) event() {}
func (FactsLoaded) event()  {}
func (FactsFailed) event()  {}
func (CloseCard) event()    {}
func (StartQuiz) event()    {}
func (QuizLoaded) event()   {}
func (QuizFailed) event()   {}
func (SelectOption) event() {}
func (NextQuestion) event() {}

// Effect is work the reducer asks the controller to perform.
type Effect interface {
	effect()
}

// FetchFacts loads the facts of Country; the result must carry Tag.
type FetchFacts struct {
	Tag     uint64
	Country string
}

// CancelFacts abandons the in-flight facts request, if any.
type CancelFacts struct{}

// FetchQuiz loads a new quiz; the result must carry Tag.
type FetchQuiz struct{ Tag uint64 }

// RecordResult stores a finished quiz run.
type RecordResult struct {
	Score int
	Total int
}

func (FetchFacts) effect()   {}
func (CancelFacts) effect()  {}
func (FetchQuiz) effect()    {}
func (RecordResult) effect() {}
