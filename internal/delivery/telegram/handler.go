package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// QuizConfig holds presentation settings of the quiz setup screen.
type QuizConfig struct {
	SizeOptions []int
	AllLimit    int
}

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	ruleService RuleService
	quizService QuizService
	quizConfig  QuizConfig
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	ruleService RuleService,
	quizService QuizService,
	quizConfig QuizConfig,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		ruleService: ruleService,
		quizService: quizService,
		quizConfig:  quizConfig,
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
		case update := <-updates:
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

	if !update.Message.IsCommand() {
		h.send(newPlainMessage(chatID, msgUnknownCommand))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.startHandler())(ctx, chatID)

	case "help":
		_ = h.withErrorHandling(h.helpHandler())(ctx, chatID)

	case "basics":
		_ = h.withErrorHandling(h.basicsHandler())(ctx, chatID)

	case "rules":
		_ = h.withErrorHandling(h.rulesHandler())(ctx, chatID)

	case "rule":
		_ = h.withErrorHandling(h.ruleHandler(update.Message.CommandArguments()))(ctx, chatID)

	case "mastery":
		_ = h.withErrorHandling(h.masteryHandler())(ctx, chatID)

	case "tip":
		_ = h.withErrorHandling(h.tipHandler())(ctx, chatID)

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, err string) {
	h.send(newPlainMessage(chatID, err))
}

// send delivers c and logs failures. Delivery errors never interrupt the
// caller.
func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
