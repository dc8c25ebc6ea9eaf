package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

// DefaultBannerTTL is how long an error banner stays in the chat.
const DefaultBannerTTL = 5 * time.Second

// chatView remembers which messages show the map, card and quiz of a chat.
type chatView struct {
	mapMsgID  int
	mapPage   int
	cardMsgID int
	quizMsgID int
}

// Renderer turns state transitions into sent, edited and deleted messages.
type Renderer struct {
	sender    Sender
	catalog   RegionCatalog
	logger    *zap.Logger
	bannerTTL time.Duration

	mu    sync.Mutex
	views map[int64]*chatView
}

// NewRenderer creates a new Renderer.
func NewRenderer(sender Sender, catalog RegionCatalog, logger *zap.Logger, bannerTTL time.Duration) *Renderer {
	if bannerTTL <= 0 {
		bannerTTL = DefaultBannerTTL
	}
	return &Renderer{
		sender:    sender,
		catalog:   catalog,
		logger:    logger,
		bannerTTL: bannerTTL,
		views:     make(map[int64]*chatView),
	}
}

func (r *Renderer) view(chatID int64) chatView {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.views[chatID]; ok {
		return *v
	}
	return chatView{}
}

func (r *Renderer) update(chatID int64, fn func(v *chatView)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[chatID]
	if !ok {
		v = &chatView{}
		r.views[chatID] = v
	}
	fn(v)
}

// messageKind names a message tracked per chat.
type messageKind int

const (
	kindMap messageKind = iota
	kindCard
	kindQuiz
)

// Adopt makes msgID the tracked message of a kind, so that a press on an
// older message updates that message.
func (r *Renderer) Adopt(chatID int64, kind messageKind, msgID int) {
	r.update(chatID, func(v *chatView) {
		switch kind {
		case kindMap:
			if v.mapMsgID != msgID {
				v.mapMsgID = msgID
				v.mapPage = -1
			}
		case kindCard:
			v.cardMsgID = msgID
		case kindQuiz:
			v.quizMsgID = msgID
		}
	})
}

// Forget drops what is known about a chat's messages.
func (r *Renderer) Forget(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, chatID)
}

// Render shows the transition from prev to next.
func (r *Renderer) Render(ctx context.Context, chatID int64, prev, next state.State) error {
	var errs []error

	if prev.Tab != next.Tab {
		switch next.Tab {
		case state.TabMap:
			errs = append(errs, r.ShowMap(ctx, chatID, next))
		case state.TabQuiz:
			r.update(chatID, func(v *chatView) { v.cardMsgID = 0 })
			errs = append(errs, r.ShowQuiz(chatID, next))
		}
	} else {
		if prev.Selected != next.Selected {
			errs = append(errs, r.refreshMap(ctx, chatID, next))
		}
		if cardChanged(prev, next) {
			errs = append(errs, r.renderCard(chatID, next))
		}
		if quizChanged(prev.Quiz, next.Quiz) {
			errs = append(errs, r.renderQuiz(chatID, next))
		}
	}

	if next.Failure != nil && next.Failure != prev.Failure {
		errs = append(errs, r.showBanner(chatID, next.Failure))
	}

	return errors.Join(errs...)
}

// ShowMap sends a fresh map message, followed by the card if one is open.
func (r *Renderer) ShowMap(ctx context.Context, chatID int64, st state.State) error {
	regions, err := r.catalog.Regions(ctx)
	if err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	page := max(r.view(chatID).mapPage, 0)
	if p := pageOf(regions, st.Selected); p >= 0 {
		page = p
	}
	page = clampPage(page, totalMapPages(len(regions)))

	msg := newMessage(chatID, mapText(st.Selected))
	msg.ReplyMarkup = buildMapKeyboard(regions, page, st.Selected)

	sent, err := r.sender.Send(msg)
	if err != nil {
		return fmt.Errorf("send map: %w", err)
	}

	r.update(chatID, func(v *chatView) {
		v.mapMsgID = sent.MessageID
		v.mapPage = page
		v.cardMsgID = 0
	})

	if st.CardVisible() {
		return r.renderCard(chatID, st)
	}
	return nil
}

// ShowMapPage moves the map message msgID to page.
func (r *Renderer) ShowMapPage(ctx context.Context, chatID int64, msgID, page int, st state.State) error {
	regions, err := r.catalog.Regions(ctx)
	if err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	page = clampPage(page, totalMapPages(len(regions)))
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, buildMapKeyboard(regions, page, st.Selected))
	if err := r.request(edit); err != nil {
		return fmt.Errorf("edit map page: %w", err)
	}

	r.update(chatID, func(v *chatView) {
		v.mapMsgID = msgID
		v.mapPage = page
	})
	return nil
}

// ShowQuiz sends a fresh quiz message for the current quiz phase.
func (r *Renderer) ShowQuiz(chatID int64, st state.State) error {
	msg := newMessage(chatID, quizText(st.Quiz))
	if kb, ok := quizKeyboard(st.Quiz); ok {
		msg.ReplyMarkup = kb
	}

	sent, err := r.sender.Send(msg)
	if err != nil {
		return fmt.Errorf("send quiz: %w", err)
	}

	r.update(chatID, func(v *chatView) { v.quizMsgID = sent.MessageID })
	return nil
}

// refreshMap redraws the map text and keyboard around the new selection.
func (r *Renderer) refreshMap(ctx context.Context, chatID int64, st state.State) error {
	v := r.view(chatID)
	if v.mapMsgID == 0 {
		return nil
	}

	regions, err := r.catalog.Regions(ctx)
	if err != nil {
		return fmt.Errorf("load regions: %w", err)
	}

	page := v.mapPage
	if page < 0 {
		page = max(pageOf(regions, st.Selected), 0)
		r.update(chatID, func(v *chatView) { v.mapPage = page })
	}

	edit := newEdit(chatID, v.mapMsgID, mapText(st.Selected))
	kb := buildMapKeyboard(regions, page, st.Selected)
	edit.ReplyMarkup = &kb

	if _, err := r.sender.Send(edit); err != nil && !isNotModified(err) {
		return fmt.Errorf("edit map: %w", err)
	}
	return nil
}

func (r *Renderer) renderCard(chatID int64, st state.State) error {
	v := r.view(chatID)

	if !st.CardVisible() {
		if v.cardMsgID == 0 {
			return nil
		}
		r.update(chatID, func(v *chatView) { v.cardMsgID = 0 })
		if err := r.request(tgbotapi.NewDeleteMessage(chatID, v.cardMsgID)); err != nil {
			return fmt.Errorf("delete card: %w", err)
		}
		return nil
	}

	kb := buildCardKeyboard()

	if v.cardMsgID != 0 {
		edit := newEdit(chatID, v.cardMsgID, cardText(st))
		edit.ReplyMarkup = &kb
		if _, err := r.sender.Send(edit); err != nil && !isNotModified(err) {
			return fmt.Errorf("edit card: %w", err)
		}
		return nil
	}

	msg := newMessage(chatID, cardText(st))
	msg.ReplyMarkup = kb

	sent, err := r.sender.Send(msg)
	if err != nil {
		return fmt.Errorf("send card: %w", err)
	}
	r.update(chatID, func(v *chatView) { v.cardMsgID = sent.MessageID })
	return nil
}

func (r *Renderer) renderQuiz(chatID int64, st state.State) error {
	v := r.view(chatID)
	if v.quizMsgID == 0 {
		return r.ShowQuiz(chatID, st)
	}

	edit := newEdit(chatID, v.quizMsgID, quizText(st.Quiz))
	if kb, ok := quizKeyboard(st.Quiz); ok {
		edit.ReplyMarkup = &kb
	}

	if _, err := r.sender.Send(edit); err != nil && !isNotModified(err) {
		return fmt.Errorf("edit quiz: %w", err)
	}
	return nil
}

// showBanner sends the error banner and deletes it after bannerTTL.
func (r *Renderer) showBanner(chatID int64, f *state.Failure) error {
	sent, err := r.sender.Send(newPlainMessage(chatID, bannerText(f)))
	if err != nil {
		return fmt.Errorf("send banner: %w", err)
	}

	time.AfterFunc(r.bannerTTL, func() {
		if err := r.request(tgbotapi.NewDeleteMessage(chatID, sent.MessageID)); err != nil {
			r.logger.Debug("failed to delete banner",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	})
	return nil
}

func (r *Renderer) request(c tgbotapi.Chattable) error {
	_, err := r.sender.Request(c)
	if err != nil && !isNotModified(err) {
		return err
	}
	return nil
}

// quizKeyboard returns the keyboard of a quiz screen; loading screens have none.
func quizKeyboard(q state.Quiz) (tgbotapi.InlineKeyboardMarkup, bool) {
	if q.Loading {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	switch q.Phase {
	case state.PhasePlaying:
		return buildQuizQuestionKeyboard(q), true
	case state.PhaseFinished:
		return buildQuizResultKeyboard(), true
	default:
		return buildQuizIntroKeyboard(), true
	}
}

func cardChanged(prev, next state.State) bool {
	return prev.Selected != next.Selected ||
		prev.Loading != next.Loading ||
		prev.Facts != next.Facts
}

func quizChanged(prev, next state.Quiz) bool {
	return prev.Phase != next.Phase ||
		prev.Loading != next.Loading ||
		prev.Tag != next.Tag ||
		prev.Index != next.Index ||
		prev.Score != next.Score ||
		prev.Answered != next.Answered ||
		prev.Selected != next.Selected ||
		len(prev.Questions) != len(next.Questions)
}

// isNotModified reports the Telegram error for edits that change nothing.
func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
