// Package state holds the per-chat explorer state and the reducer that advances it.
//
// A State is a value: Reduce never mutates its input and slices held by a State are
// never written after they are stored.
package state

import "github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"

// Tab is the active view.
type Tab string

const (
	TabMap  Tab = "map"
	TabQuiz Tab = "quiz"
)

// Phase is the quiz state machine position.
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhasePlaying  Phase = "playing"
	PhaseFinished Phase = "finished"
)

// NoSelection marks a quiz question without a chosen option.
const NoSelection = -1

// Scope tells which view a failure belongs to.
type Scope string

const (
	ScopeFacts Scope = "facts"
	ScopeQuiz  Scope = "quiz"
)

// Failure is a transient user-visible error.
type Failure struct {
	Scope   Scope
	Country string
	Err     error
}

// Quiz is the quiz progress of a chat.
type Quiz struct {
	Phase     Phase
	Loading   bool
	Questions []entities.QuizQuestion
	Index     int
	Score     int
	Answered  bool
	Selected  int
	Tag       uint64
}

// Current returns the question being played, if any.
func (q Quiz) Current() (entities.QuizQuestion, bool) {
	if q.Phase != PhasePlaying || q.Index < 0 || q.Index >= len(q.Questions) {
		return entities.QuizQuestion{}, false
	}
	return q.Questions[q.Index], true
}

// IsLast reports whether the current question is the last one.
func (q Quiz) IsLast() bool {
	return q.Index == len(q.Questions)-1
}

// Total returns the number of questions of the run.
func (q Quiz) Total() int {
	return len(q.Questions)
}

// State is an immutable snapshot of one chat.
type State struct {
	Tab      Tab
	Selected string
	Facts    *entities.CountryFacts
	Loading  bool
	FactsTag uint64
	Failure  *Failure
	Quiz     Quiz

	// Seq issues request tags; it only grows.
	Seq uint64
}

// New returns the initial state: map tab, nothing selected, quiz intro.
func New() State {
	return State{
		Tab: TabMap,
		Quiz: Quiz{
			Phase:    PhaseIntro,
			Selected: NoSelection,
		},
	}
}

// CardVisible reports whether the flashcard should be shown.
func (s State) CardVisible() bool {
	return s.Tab == TabMap && (s.Facts != nil || s.Loading)
}

func (s State) nextTag() (State, uint64) {
	s.Seq++
	return s, s.Seq
}
