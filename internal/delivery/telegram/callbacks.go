package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/service"
)

var errBadCallback = errors.New("malformed callback data")

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	data := decodeCallback(cb.Data)

	s, toast, err := h.dispatchCallback(ctx, chatID, data)
	if err != nil {
		toast = h.callbackError(chatID, data, err)
	}

	if s != nil {
		h.editScreen(chatID, cb.Message.MessageID, *s)
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, toast)
}

// callbackError picks the toast for a failed callback. Presses on outdated
// buttons are expected and stay silent.
func (h *Handler) callbackError(chatID int64, data callbackData, err error) string {
	if errors.Is(err, service.ErrStaleAction) || errors.Is(err, service.ErrInvalidTransition) {
		h.logger.Debug("stale callback ignored",
			zap.Int64("chat_id", chatID),
			zap.String("data", data.Raw),
		)
		return ""
	}

	if msg, ok := userMessage(err); ok {
		return msg
	}

	h.logger.Error("callback error",
		zap.Int64("chat_id", chatID),
		zap.String("data", data.Raw),
		zap.Error(err),
	)
	return msgInternalError
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// dispatchCallback returns the screen that replaces the pressed message, if
// any, and a short toast.
func (h *Handler) dispatchCallback(_ context.Context, chatID int64, data callbackData) (*screen, string, error) {
	switch data.Action {
	case actionMenu:
		s := menuScreen()
		return &s, "", nil

	case actionRules:
		s := h.categoriesScreen()
		return &s, "", nil

	case actionBasics:
		return wrap(h.basicsScreen())

	case actionCategory:
		idx, ok := data.intParam(0)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		return wrap(h.categoryScreen(idx))

	case actionRule:
		id, ok := data.intParam(0)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		return wrap(h.ruleScreen(id))

	case actionExamples:
		id, ok := data.intParam(0)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		return wrap(h.examplesScreen(id))

	case actionTiers:
		if data.param(0) == scopeMasteryParam {
			s := h.masteryTiersScreen()
			return &s, "", nil
		}
		id, ok := data.intParam(1)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		return wrap(h.ruleTiersScreen(id))

	case actionTier:
		return h.handleTier(chatID, data)

	case actionSize:
		n, ok := data.intParam(0)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		entry, err := h.quizService.Start(chatID, n)
		if err != nil {
			return nil, "", err
		}
		s := h.questionScreen(entry)
		return &s, "", nil

	case actionAnswer:
		return h.handleAnswer(chatID, data)

	case actionNext:
		idx, ok := data.intParam(1)
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		entry, err := h.quizService.Next(chatID, data.param(0), idx)
		if err != nil {
			return nil, "", err
		}
		s := h.entryScreen(entry)
		return &s, "", nil

	case actionExit:
		if _, err := h.quizService.Exit(chatID); err != nil && !errors.Is(err, service.ErrSessionNotFound) {
			return nil, "", err
		}
		s := menuScreen()
		return &s, "", nil

	case actionReview:
		res, err := h.quizService.EnterReview(chatID)
		if err != nil {
			return nil, "", err
		}
		s := reviewScreen(res)
		return &s, "", nil

	case actionUnreview:
		if _, err := h.quizService.LeaveReview(chatID); err != nil {
			return nil, "", err
		}
		entry, err := h.quizService.Entry(chatID)
		if err != nil {
			return nil, "", err
		}
		s := h.entryScreen(entry)
		return &s, "", nil

	case actionRetry:
		entry, err := h.quizService.Retry(chatID)
		if err != nil {
			return nil, "", err
		}
		s := h.sizeScreen(entry)
		return &s, "", nil

	case actionTip:
		tip, snap, ok := h.quizService.Tickle(chatID)
		if !ok {
			return nil, snap.Face() + " " + msgStillGiggling, nil
		}
		return nil, snap.Face() + " " + tip, nil

	case actionNoop:
		return nil, "🔒 " + msgUnavailableSize, nil

	default:
		return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
	}
}

func (h *Handler) handleTier(chatID int64, data callbackData) (*screen, string, error) {
	var (
		d   entities.Difficulty
		err error
	)

	switch data.param(0) {
	case scopeMasteryParam:
		d = entities.Difficulty(data.param(1))
		if !d.Valid() {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		_, err = h.quizService.ConfigureMastery(chatID, d)

	case scopeRuleParam:
		id, ok := data.intParam(1)
		d = entities.Difficulty(data.param(2))
		if !ok || !d.Valid() {
			return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
		}
		_, err = h.quizService.ConfigureRule(chatID, id, d)

	default:
		return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
	}
	if err != nil {
		return nil, "", err
	}

	entry, err := h.quizService.Entry(chatID)
	if err != nil {
		return nil, "", err
	}
	s := h.sizeScreen(entry)
	return &s, "", nil
}

func (h *Handler) handleAnswer(chatID int64, data callbackData) (*screen, string, error) {
	idx, ok1 := data.intParam(1)
	opt, ok2 := data.intParam(2)
	if !ok1 || !ok2 {
		return nil, "", fmt.Errorf("%w: %s", errBadCallback, data.Raw)
	}

	outcome, err := h.quizService.Answer(chatID, data.param(0), idx, opt)
	if err != nil {
		return nil, "", err
	}

	entry, err := h.quizService.Entry(chatID)
	if err != nil {
		return nil, "", err
	}

	toast := msgIncorrectToast
	if outcome == entities.OutcomeCorrect {
		toast = msgCorrectToast
	}
	s := h.questionScreen(entry)
	return &s, toast, nil
}

func wrap(s screen, err error) (*screen, string, error) {
	if err != nil {
		return nil, "", err
	}
	return &s, "", nil
}
