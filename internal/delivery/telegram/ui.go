package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/geo"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

const (
	regionsPerRow  = 3
	regionsPerPage = 15
)

// totalMapPages returns the number of map pages for n regions.
func totalMapPages(n int) int {
	if n == 0 {
		return 0
	}
	return (n + regionsPerPage - 1) / regionsPerPage
}

// clampPage keeps page within [0, total).
func clampPage(page, total int) int {
	if page < 0 || total == 0 {
		return 0
	}
	if page >= total {
		return total - 1
	}
	return page
}

// pageOf returns the page that lists the region named selected, or -1.
func pageOf(regions []entities.Region, selected string) int {
	if selected == "" {
		return -1
	}
	for i, r := range regions {
		if r.Name() == selected {
			return i / regionsPerPage
		}
	}
	return -1
}

func regionLabel(r entities.Region, selected string) string {
	label := r.Name()
	if r.Flag != "" {
		label = r.Flag + " " + label
	}
	if selected != "" && r.Name() == selected {
		label = "📍 " + label
	}
	return label
}

// buildMapKeyboard builds one page of the region keyboard.
func buildMapKeyboard(regions []entities.Region, page int, selected string) tgbotapi.InlineKeyboardMarkup {
	total := totalMapPages(len(regions))
	page = clampPage(page, total)

	start := page * regionsPerPage
	end := min(start+regionsPerPage, len(regions))

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, r := range regions[start:end] {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			regionLabel(r, selected),
			buildCountryCallback(geo.RegionID(r)),
		))
		if len(row) == regionsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if total > 1 {
		var nav []tgbotapi.InlineKeyboardButton
		if page > 0 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("◀️", buildMapPageCallback(page-1)))
		}
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d / %d", page+1, total),
			buildNoopCallback(),
		))
		if page < total-1 {
			nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("▶️", buildMapPageCallback(page+1)))
		}
		rows = append(rows, nav)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❓ Quiz", buildTabCallback(string(state.TabQuiz))),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCardKeyboard builds keyboard for the flashcard.
func buildCardKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Close", buildCardCloseCallback()),
		),
	)
}

// buildQuizIntroKeyboard builds keyboard for the quiz intro screen.
func buildQuizIntroKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏆 Start Quiz", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺 Map", buildTabCallback(string(state.TabMap))),
		),
	)
}

// buildQuizQuestionKeyboard builds keyboard for the current question.
// Once answered, options are marked and the Next or Finish button appears.
func buildQuizQuestionKeyboard(q state.Quiz) tgbotapi.InlineKeyboardMarkup {
	current, ok := q.Current()
	if !ok {
		return tgbotapi.NewInlineKeyboardMarkup()
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range current.Options {
		label := option
		if q.Answered {
			switch {
			case current.IsCorrect(i):
				label = "✅ " + option
			case i == q.Selected:
				label = "❌ " + option
			}
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildQuizAnswerCallback(i)),
		))
	}

	if q.Answered {
		next := "Next ➡️"
		if q.IsLast() {
			next = "Finish ➡️"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(next, buildQuizNextCallback()),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizResultKeyboard builds keyboard for quiz results screen.
func buildQuizResultKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄 Play Again", buildQuizStartCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺 Map", buildTabCallback(string(state.TabMap))),
		),
	)
}
