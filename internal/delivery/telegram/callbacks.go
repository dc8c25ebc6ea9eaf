package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Remove the user's "clock".
	defer func() {
		if _, err := h.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			h.logger.Debug("callback answer error", zap.Error(err))
		}
	}()

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	userID := cb.From.ID

	data := decodeCallback(cb.Data)

	var fn HandlerFunc
	switch data.Action {
	case actionCountry:
		fn = h.handleCountryCallback(data, userID, msgID)
	case actionMap:
		fn = h.handleMapCallback(data, msgID)
	case actionCard:
		fn = h.handleCardCallback(data, userID, msgID)
	case actionQuiz:
		fn = h.handleQuizCallback(data, userID, msgID)
	case actionTab:
		fn = h.handleTabCallback(data, userID)
	default:
		return
	}

	_ = h.withErrorHandling(fn)(ctx, chatID)
}

func (h *Handler) handleCountryCallback(data callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id := strings.Join(data.Params, ":")
		if id == "" {
			return nil
		}

		h.renderer.Adopt(chatID, kindMap, msgID)

		props := entities.RegionProperties{Key: id}
		if region, err := h.catalog.Lookup(ctx, id); err == nil {
			props = region.Properties
		} else {
			h.logger.Debug("region not in catalog", zap.String("id", id), zap.Error(err))
		}

		return h.selectRegion(ctx, chatID, userID, props)
	}
}

func (h *Handler) handleMapCallback(data callbackData, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if data.param(0) != mapPage {
			return nil
		}

		page, ok := data.intParam(1)
		if !ok {
			h.logger.Debug("invalid page in callback", zap.String("data", data.Raw))
			return nil
		}

		return h.renderer.ShowMapPage(ctx, chatID, msgID, page, h.explorer.Snapshot(chatID))
	}
}

func (h *Handler) handleCardCallback(data callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if data.param(0) != cardClose {
			return nil
		}

		h.renderer.Adopt(chatID, kindCard, msgID)
		_, err := h.explorer.Dispatch(ctx, chatID, userID, state.CloseCard{})
		return err
	}
}

func (h *Handler) handleQuizCallback(data callbackData, userID int64, msgID int) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		var ev state.Event
		switch data.param(0) {
		case quizStart:
			ev = state.StartQuiz{}
		case quizNext:
			ev = state.NextQuestion{}
		case quizAnswer:
			index, ok := data.intParam(1)
			if !ok {
				h.logger.Debug("invalid answer in callback", zap.String("data", data.Raw))
				return nil
			}
			ev = state.SelectOption{Index: index}
		default:
			return nil
		}

		h.renderer.Adopt(chatID, kindQuiz, msgID)
		_, err := h.explorer.Dispatch(ctx, chatID, userID, ev)
		return err
	}
}

func (h *Handler) handleTabCallback(data callbackData, userID int64) HandlerFunc {
	switch state.Tab(data.param(0)) {
	case state.TabMap:
		return h.handleMap(userID)
	case state.TabQuiz:
		return h.handleQuiz(userID)
	default:
		return func(context.Context, int64) error { return nil }
	}
}
