package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot      Bot
	logger   *zap.Logger
	explorer ExplorerService
	catalog  RegionCatalog
	renderer *Renderer
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	explorer ExplorerService,
	catalog RegionCatalog,
	renderer *Renderer,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		explorer: explorer,
		catalog:  catalog,
		renderer: renderer,
	}
}

// Commands returns the bot menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Start exploring"},
		{Command: "map", Description: "Show the map of Europe"},
		{Command: "quiz", Description: "Take the European Knowledge Quiz"},
		{Command: "scores", Description: "Show your quiz scores"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}

	if update.Message.IsCommand() {
		switch update.Message.Command() {
		case "start":
			_ = h.withErrorHandling(h.handleStart(userID))(ctx, chatID)

		case "map":
			_ = h.withErrorHandling(h.handleMap(userID))(ctx, chatID)

		case "quiz":
			_ = h.withErrorHandling(h.handleQuiz(userID))(ctx, chatID)

		case "scores":
			_ = h.withErrorHandling(h.handleScores(userID))(ctx, chatID)

		case "help":
			h.send(newMessage(chatID, helpText()))

		default:
			h.send(newPlainMessage(chatID, msgUnknownCommand))
		}

		return
	}

	if update.Message.Text == "" {
		return
	}

	_ = h.withErrorHandling(h.handleCountryName(update.Message.Text, userID))(ctx, chatID)
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
