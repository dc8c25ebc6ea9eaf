package telegram

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
	"github.com/aliskhannn/euroexplorer-bot/internal/geo"
	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

// handleStart greets the user and opens a fresh map.
func (h *Handler) handleStart(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.renderer.Forget(chatID)
		h.send(newMessage(chatID, welcomeText()))
		return h.showMap(ctx, chatID, userID)
	}
}

// handleMap switches the chat to the map.
func (h *Handler) handleMap(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		return h.showMap(ctx, chatID, userID)
	}
}

// handleQuiz switches the chat to the quiz.
func (h *Handler) handleQuiz(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		st := h.explorer.Snapshot(chatID)
		if st.Tab == state.TabQuiz {
			return h.renderer.ShowQuiz(chatID, st)
		}

		_, err := h.explorer.Dispatch(ctx, chatID, userID, state.SwitchTab{Tab: state.TabQuiz})
		return err
	}
}

// handleScores shows the player's quiz history.
func (h *Handler) handleScores(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		stats, recent, err := h.explorer.Stats(ctx, userID, scoresHistoryLimit)
		if err != nil {
			h.logger.Error("failed to get scores",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			h.sendError(chatID, msgScoresUnavailable)
			return nil
		}

		h.send(newMessage(chatID, scoresText(stats, recent)))
		return nil
	}
}

// handleCountryName selects the country the user typed.
func (h *Handler) handleCountryName(text string, userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		region, err := h.catalog.Find(ctx, text)
		if err != nil {
			if errors.Is(err, geo.ErrRegionNotFound) {
				h.send(newPlainMessage(chatID, fmt.Sprintf("I couldn't find %q on the map of Europe. Try /map!", text)))
				return nil
			}
			h.logger.Warn("failed to load map", zap.Error(err))
			h.sendError(chatID, msgMapUnavailable)
			return nil
		}

		return h.selectRegion(ctx, chatID, userID, region.Properties)
	}
}

// showMap makes sure the regions are available, then shows the map tab.
func (h *Handler) showMap(ctx context.Context, chatID, userID int64) error {
	if _, err := h.catalog.Regions(ctx); err != nil {
		h.logger.Warn("failed to load map", zap.Error(err))
		h.sendError(chatID, msgMapUnavailable)
		return nil
	}

	st := h.explorer.Snapshot(chatID)
	if st.Tab == state.TabMap {
		return h.renderer.ShowMap(ctx, chatID, st)
	}

	_, err := h.explorer.Dispatch(ctx, chatID, userID, state.SwitchTab{Tab: state.TabMap})
	return err
}

// selectRegion opens the flashcard of a region, switching to the map first.
func (h *Handler) selectRegion(ctx context.Context, chatID, userID int64, props entities.RegionProperties) error {
	if h.explorer.Snapshot(chatID).Tab != state.TabMap {
		if _, err := h.explorer.Dispatch(ctx, chatID, userID, state.SwitchTab{Tab: state.TabMap}); err != nil {
			return err
		}
	}

	_, err := h.explorer.Dispatch(ctx, chatID, userID, state.ClickCountry{Props: props})
	return err
}
