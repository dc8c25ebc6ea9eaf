// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

// Error messages.
const (
	msgInternalError     = "Something went wrong. Please try again later."
	msgFactsUnavailable  = "Oops! We couldn't find facts for this place right now. Try again later!"
	msgQuizUnavailable   = "Oops! We couldn't make a quiz right now. Try again later!"
	msgMapUnavailable    = "The map is taking a break. Please try again in a minute."
	msgScoresUnavailable = "We couldn't load your scores right now. Try again later!"
	msgUnknownCommand    = "I don't know that command. Try /map, /quiz or /help."
)

const (
	msgMapHeader = "🗺 Pick a country to learn about it!"
	msgNoScores  = "You haven't finished a quiz yet. Try /quiz!"
)

const (
	scoresHistoryLimit = 5
	dateLayout         = "02 Jan 2006"
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// welcomeText builds the /start message.
func welcomeText() string {
	var sb strings.Builder

	sb.WriteString(bold("🧭 EuroExplorer"))
	sb.WriteString("\n")
	sb.WriteString(italic("Interactive Learning Map · 5th Grade Edition"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Tap a country on the map to discover its capital, languages, money, famous places and yummy foods."))
	sb.WriteString("\n\n")
	sb.WriteString(md("Ready for a challenge? Take the quiz and become a geography master!"))
	sb.WriteString("\n\n")
	sb.WriteString(helpText())

	return sb.String()
}

// helpText lists the commands.
func helpText() string {
	lines := []string{
		md("/map — explore the map of Europe"),
		md("/quiz — take the European Knowledge Quiz"),
		md("/scores — see your best score and latest quizzes"),
		md("/help — show this message"),
	}
	return strings.Join(lines, "\n")
}

// mapText builds the text above the region keyboard.
func mapText(selected string) string {
	if selected == "" {
		return md(msgMapHeader)
	}
	return md(msgMapHeader) + "\n\n" + md("📍 Selected: ") + bold(selected)
}

// cardText renders the flashcard: a loading skeleton while fetching, the facts afterwards.
func cardText(st state.State) string {
	if st.Loading || st.Facts == nil {
		return loadingText(st.Selected)
	}
	return factsText(st.Facts)
}

func loadingText(country string) string {
	return md(fmt.Sprintf("✈️ Traveling to %s...", country)) + "\n\n" + md("▫️▫️▫️▫️▫️▫️▫️▫️")
}

func factsText(f *entities.CountryFacts) string {
	var sb strings.Builder

	sb.WriteString(md(f.Emoji))
	sb.WriteString(" ")
	sb.WriteString(bold(f.Name))
	sb.WriteString("\n")
	sb.WriteString(italic("Europe"))
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "📍 %s %s\n", bold("Capital:"), md(f.Capital))
	fmt.Fprintf(&sb, "💬 %s %s\n", bold("Language:"), md(strings.Join(f.TopLanguages(2), ", ")))
	fmt.Fprintf(&sb, "👥 %s %s\n", bold("People:"), md(f.Population))
	fmt.Fprintf(&sb, "🪙 %s %s\n", bold("Money:"), md(f.Currency))

	sb.WriteString("\n💡 ")
	sb.WriteString(bold("Did You Know?"))
	sb.WriteString("\n")
	sb.WriteString(md(f.FunFact))
	sb.WriteString("\n")

	if len(f.Landmarks) > 0 {
		sb.WriteString("\n🏰 ")
		sb.WriteString(bold("Famous Places"))
		sb.WriteString("\n")
		for _, l := range f.Landmarks {
			fmt.Fprintf(&sb, "• %s %s\n", bold(l.Name), md("— "+l.Description))
		}
	}

	if len(f.Foods) > 0 {
		sb.WriteString("\n🍽 ")
		sb.WriteString(bold("Yummy Foods"))
		sb.WriteString("\n")
		for _, food := range f.Foods {
			fmt.Fprintf(&sb, "• %s %s\n", bold(food.Name), md("— "+food.Description))
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// quizText renders the quiz screen for the current phase.
func quizText(q state.Quiz) string {
	if q.Loading {
		return bold("⏳ Generating your quiz...") + "\n\n" + md("Asking our AI travel guide for tricky questions!")
	}

	switch q.Phase {
	case state.PhasePlaying:
		return questionText(q)
	case state.PhaseFinished:
		return resultText(q.Score, q.Total())
	default:
		return bold("🏆 European Knowledge Quiz") + "\n\n" +
			md("Test your knowledge about the countries, capitals, flags, and foods of Europe! Are you ready to become a geography master?")
	}
}

func questionText(q state.Quiz) string {
	current, ok := q.Current()
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(md(progressBar(q.Index+1, q.Total(), 10)))
	sb.WriteString(" ")
	sb.WriteString(md(fmt.Sprintf("%d/%d", q.Index+1, q.Total())))
	sb.WriteString("\n\n")
	sb.WriteString(bold(current.Question))

	if q.Answered {
		sb.WriteString("\n\n")
		if current.IsCorrect(q.Selected) {
			sb.WriteString(bold("✅ Correct!"))
		} else {
			sb.WriteString(bold("💡 Explanation:"))
		}
		sb.WriteString("\n")
		sb.WriteString(md(current.Explanation))
	}

	return sb.String()
}

func resultText(score, total int) string {
	return bold("🎉 Quiz Complete!") + "\n\n" +
		bold(fmt.Sprintf("%d / %d", score, total)) + "\n\n" +
		md(finishMessage(score, total))
}

// finishMessage picks the closing line for a score.
func finishMessage(score, total int) string {
	switch {
	case score == total:
		return "Wow! You're an expert explorer! 🌍"
	case score*2 > total:
		return "Great job! Keep traveling! ✈️"
	default:
		return "Good try! Explore the map more and come back! 🗺️"
	}
}

// progressBar draws done out of total as a bar of width cells.
func progressBar(done, total, width int) string {
	if total <= 0 {
		return strings.Repeat("▱", width)
	}
	filled := done * width / total
	filled = max(0, min(filled, width))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// bannerText is the transient error shown for a failure.
func bannerText(f *state.Failure) string {
	if f.Scope == state.ScopeQuiz {
		return "⚠️ " + msgQuizUnavailable
	}
	return "⚠️ " + msgFactsUnavailable
}

// scoresText renders the /scores screen.
func scoresText(stats *entities.PlayerStats, recent []*entities.QuizResult) string {
	if stats == nil || stats.GamesPlayed == 0 {
		return md(msgNoScores)
	}

	var sb strings.Builder
	sb.WriteString(bold("🏅 Your Scores"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s %s\n", md("🎮 Quizzes played:"), md(fmt.Sprint(stats.GamesPlayed)))
	fmt.Fprintf(&sb, "%s %s\n", md("🏆 Best score:"), md(fmt.Sprintf("%d / %d", stats.BestScore, stats.BestTotal)))
	fmt.Fprintf(&sb, "%s %s\n", md("✅ Correct answers:"), md(fmt.Sprint(stats.TotalCorrect)))

	if len(recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(bold("Latest quizzes"))
		sb.WriteString("\n")
		for _, r := range recent {
			line := fmt.Sprintf("• %s: %d / %d", r.FinishedAt.Format(dateLayout), r.Score, r.Total)
			if r.IsPerfect() {
				line += " 🌟"
			}
			sb.WriteString(md(line))
			sb.WriteString("\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}
