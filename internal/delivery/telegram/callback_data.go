package telegram

import (
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionCountry = "country"
	actionMap     = "map"
	actionCard    = "card"
	actionQuiz    = "quiz"
	actionTab     = "tab"
	actionNoop    = "noop"
)

// Map sub-actions.
const (
	mapPage = "page"
)

// Card sub-actions.
const (
	cardClose = "close"
)

// Quiz sub-actions.
const (
	quizStart  = "start"
	quizAnswer = "answer"
	quizNext   = "next"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// param returns the i-th parameter or "".
func (cd callbackData) param(i int) string {
	if i < 0 || i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

// intParam parses the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	n, err := strconv.Atoi(cd.param(i))
	if err != nil {
		return 0, false
	}
	return n, true
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

func buildCountryCallback(regionID string) string {
	return callbackData{
		Action: actionCountry,
		Params: []string{regionID},
	}.encode()
}

func buildMapPageCallback(page int) string {
	return callbackData{
		Action: actionMap,
		Params: []string{mapPage, strconv.Itoa(page)},
	}.encode()
}

func buildCardCloseCallback() string {
	return callbackData{
		Action: actionCard,
		Params: []string{cardClose},
	}.encode()
}

func buildQuizStartCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizStart},
	}.encode()
}

func buildQuizAnswerCallback(index int) string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizAnswer, strconv.Itoa(index)},
	}.encode()
}

func buildQuizNextCallback() string {
	return callbackData{
		Action: actionQuiz,
		Params: []string{quizNext},
	}.encode()
}

func buildTabCallback(tab string) string {
	return callbackData{
		Action: actionTab,
		Params: []string{tab},
	}.encode()
}

func buildNoopCallback() string {
	return actionNoop
}
