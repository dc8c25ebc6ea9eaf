package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs a failed handler and tells the user something went wrong.
// Errors caused by shutdown are dropped. A panic is reported the same way.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		defer func() {
			if r := recover(); r != nil {
				h.logger.Error("handler panicked",
					zap.Int64("chat_id", chatID),
					zap.Any("panic", r),
				)
				h.sendError(chatID, msgInternalError)
			}
		}()

		if err := fn(ctx, chatID); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil
			}
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}
		return nil
	}
}
