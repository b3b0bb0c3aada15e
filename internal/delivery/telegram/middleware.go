package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/sva-bot/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling turns known service errors into user-facing messages and
// logs everything else.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if msg, ok := userMessage(err); ok {
			h.logger.Debug("user error", zap.Int64("chat_id", chatID), zap.Error(err))
			h.sendError(chatID, msg)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

// userMessage maps expected errors to the text shown to the user.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrRuleNotFound), errors.Is(err, service.ErrCategoryNotFound):
		return msgRuleNotFound, true
	case errors.Is(err, service.ErrBasicsNotFound):
		return msgBasicsMissing, true
	case errors.Is(err, service.ErrNoQuestionsAvailable):
		return msgNoQuestions, true
	case errors.Is(err, service.ErrSessionNotFound):
		return msgSessionExpired, true
	default:
		return "", false
	}
}
