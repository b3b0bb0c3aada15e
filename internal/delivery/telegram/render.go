package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/quiz"
	"github.com/aliskhannn/sva-bot/internal/service"
	"github.com/aliskhannn/sva-bot/internal/storage"
)

// screen is a MarkdownV2 text with its inline keyboard.
type screen struct {
	text     string
	keyboard tgbotapi.InlineKeyboardMarkup
}

func (h *Handler) sendScreen(chatID int64, s screen) {
	msg := newMessage(chatID, s.text)
	msg.ReplyMarkup = s.keyboard
	h.send(msg)
}

func (h *Handler) editScreen(chatID int64, msgID int, s screen) {
	edit := newEdit(chatID, msgID, s.text)
	edit.ReplyMarkup = &s.keyboard
	h.send(edit)
}

func menuScreen() screen {
	return screen{text: formatWelcome(), keyboard: buildMenuKeyboard()}
}

func (h *Handler) categoriesScreen() screen {
	return screen{text: formatCategories(), keyboard: buildCategoriesKeyboard(h.ruleService.GetCategories())}
}

func (h *Handler) basicsScreen() (screen, error) {
	basics, err := h.ruleService.GetBasics()
	if err != nil {
		return screen{}, err
	}
	return screen{text: formatBasics(basics), keyboard: buildBasicsKeyboard()}, nil
}

func (h *Handler) categoryScreen(index int) (screen, error) {
	cat, err := h.ruleService.GetCategory(index)
	if err != nil {
		return screen{}, err
	}
	return screen{text: formatCategory(cat), keyboard: buildCategoryKeyboard(cat)}, nil
}

func (h *Handler) ruleScreen(id int) (screen, error) {
	nav, err := h.ruleService.GetRule(id)
	if err != nil {
		return screen{}, err
	}
	return screen{text: formatRule(nav.Rule), keyboard: buildRuleKeyboard(nav)}, nil
}

func (h *Handler) examplesScreen(id int) (screen, error) {
	nav, err := h.ruleService.GetRule(id)
	if err != nil {
		return screen{}, err
	}
	return screen{text: formatExamples(nav.Rule), keyboard: buildExamplesKeyboard(id)}, nil
}

func (h *Handler) ruleTiersScreen(id int) (screen, error) {
	nav, err := h.ruleService.GetRule(id)
	if err != nil {
		return screen{}, err
	}
	tiers, err := h.quizService.Difficulties(id)
	if err != nil {
		return screen{}, err
	}
	return screen{text: formatTiers("🎯 " + nav.Rule.Name), keyboard: buildTiersKeyboard(id, tiers)}, nil
}

func (h *Handler) masteryTiersScreen() screen {
	return screen{
		text:     formatTiers("🏆 Mastery quiz"),
		keyboard: buildTiersKeyboard(0, h.quizService.MasteryDifficulties()),
	}
}

// entryScreen renders whatever state the chat's quiz is in.
func (h *Handler) entryScreen(entry *storage.QuizEntry) screen {
	switch entry.Session.State() {
	case entities.StateConfiguring:
		return h.sizeScreen(entry)
	case entities.StateActive:
		return h.questionScreen(entry)
	case entities.StateSummary:
		res, _ := entry.Session.Result()
		return summaryScreen(entry, res)
	case entities.StateReviewing:
		res, _ := entry.Session.Result()
		return reviewScreen(res)
	default:
		return menuScreen()
	}
}

func (h *Handler) sizeScreen(entry *storage.QuizEntry) screen {
	available := entry.Session.PoolSize()
	choices := service.SizeChoices(available, h.quizConfig.SizeOptions, h.quizConfig.AllLimit)

	return screen{
		text:     formatSizePicker(h.quizTitle(entry), available, entry.Mascot.Snapshot().Face()),
		keyboard: buildSizeKeyboard(choices),
	}
}

func (h *Handler) quizTitle(entry *storage.QuizEntry) string {
	title := "Mastery"
	if entry.RuleID > 0 {
		title = fmt.Sprintf("Rule %d", entry.RuleID)
		if nav, err := h.ruleService.GetRule(entry.RuleID); err == nil && nav.Rule.Name != "" {
			title = nav.Rule.Name
		}
	}
	return title + " · " + difficultyLabel(entry.Difficulty)
}

func (h *Handler) questionScreen(entry *storage.QuizEntry) screen {
	s := entry.Session
	if s.NoQuestions() {
		return screen{text: formatNoQuestions(), keyboard: buildNoQuestionsKeyboard()}
	}

	q, idx, ok := s.Current()
	if !ok {
		return menuScreen()
	}

	view := questionView{
		Question: q,
		Index:    idx,
		Total:    s.Total(),
		Score:    s.Score(),
		Mastery:  s.Scope() == entities.ScopeMastery,
		Mascot:   entry.Mascot.Snapshot(),
		Answered: s.Answered(),
		Chosen:   -1,
		Outcome:  s.Outcome(),
	}
	if view.Answered {
		view.Chosen = s.Answers()[idx]
		return screen{text: formatQuestion(view), keyboard: buildFeedbackKeyboard(s.ID(), idx, view.Total)}
	}
	return screen{text: formatQuestion(view), keyboard: buildAnswerKeyboard(q, s.ID(), idx)}
}

func summaryScreen(entry *storage.QuizEntry, res quiz.Result) screen {
	return screen{
		text:     formatSummary(res, entry.Mascot.Snapshot().Face()),
		keyboard: buildSummaryKeyboard(),
	}
}

func reviewScreen(res quiz.Result) screen {
	return screen{text: formatReview(res), keyboard: buildReviewKeyboard()}
}
