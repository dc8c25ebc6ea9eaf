package state

import "errors"

// ErrEmptyQuiz is reported when a quiz arrives without questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

// Reduce returns the state that follows ev, and the effects to run.
func Reduce(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case SwitchTab:
		if e.Tab != TabMap && e.Tab != TabQuiz {
			return s, nil
		}
		s.Tab = e.Tab
		return s, nil

	case ClickCountry:
		return clickCountry(s, e)

	case FactsLoaded:
		if !s.Loading || e.Tag != s.FactsTag || e.Facts == nil {
			return s, nil
		}
		s.Facts = e.Facts
		s.Loading = false
		return s, nil

	case FactsFailed:
		if !s.Loading || e.Tag != s.FactsTag {
			return s, nil
		}
		s.Failure = &Failure{Scope: ScopeFacts, Country: s.Selected, Err: e.Err}
		s.Selected = ""
		s.Facts = nil
		s.Loading = false
		s.FactsTag = 0
		return s, nil

	case CloseCard:
		s.Selected = ""
		s.Facts = nil
		s.Loading = false
		s.FactsTag = 0
		return s, []Effect{CancelFacts{}}

	case StartQuiz:
		if s.Quiz.Loading || s.Quiz.Phase == PhasePlaying {
			return s, nil
		}
		var tag uint64
		s, tag = s.nextTag()
		s.Failure = nil
		s.Quiz.Loading = true
		s.Quiz.Tag = tag
		return s, []Effect{FetchQuiz{Tag: tag}}

	case QuizLoaded:
		if !s.Quiz.Loading || e.Tag != s.Quiz.Tag {
			return s, nil
		}
		if len(e.Questions) == 0 {
			return quizFailed(s, ErrEmptyQuiz), nil
		}
		s.Quiz = Quiz{
			Phase:     PhasePlaying,
			Questions: e.Questions,
			Selected:  NoSelection,
			Tag:       s.Quiz.Tag,
		}
		return s, nil

	case QuizFailed:
		if !s.Quiz.Loading || e.Tag != s.Quiz.Tag {
			return s, nil
		}
		return quizFailed(s, e.Err), nil

	case SelectOption:
		q, ok := s.Quiz.Current()
		if !ok || s.Quiz.Answered || e.Index < 0 || e.Index >= len(q.Options) {
			return s, nil
		}
		s.Quiz.Answered = true
		s.Quiz.Selected = e.Index
		if q.IsCorrect(e.Index) {
			s.Quiz.Score++
		}
		return s, nil

	case NextQuestion:
		if s.Quiz.Phase != PhasePlaying || !s.Quiz.Answered {
			return s, nil
		}
		if !s.Quiz.IsLast() {
			s.Quiz.Index++
			s.Quiz.Answered = false
			s.Quiz.Selected = NoSelection
			return s, nil
		}
		s.Quiz.Phase = PhaseFinished
		return s, []Effect{RecordResult{Score: s.Quiz.Score, Total: s.Quiz.Total()}}
	}

	return s, nil
}

func clickCountry(s State, e ClickCountry) (State, []Effect) {
	name := e.Props.DisplayName()
	if name == "" {
		return s, nil
	}

	if s.Selected == name && (s.Facts != nil || s.Loading) {
		return s, nil
	}

	s.Selected = name
	s.Failure = nil

	if e.Cached != nil {
		s.Facts = e.Cached
		s.Loading = false
		s.FactsTag = 0
		return s, []Effect{CancelFacts{}}
	}

	var tag uint64
	s, tag = s.nextTag()
	s.Facts = nil
	s.Loading = true
	s.FactsTag = tag

	return s, []Effect{FetchFacts{Tag: tag, Country: name}}
}

func quizFailed(s State, err error) State {
	s.Quiz.Loading = false
	s.Failure = &Failure{Scope: ScopeQuiz, Err: err}
	return s
}
