package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/service"
)

// buildMenuKeyboard builds the main menu.
func buildMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Rules", actionRules),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Mastery quiz", buildMasteryTiersCallback()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Before you begin", actionBasics),
			tgbotapi.NewInlineKeyboardButtonData("💡 Grammar tip", actionTip),
		),
	)
}

// buildBasicsKeyboard leads from the primer to the rules.
func buildBasicsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📚 Go to the rules", actionRules),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", actionMenu),
		),
	)
}

// buildCategoriesKeyboard builds one button per category.
func buildCategoriesKeyboard(cats []*entities.RuleCategory) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cats)+1)
	for i, cat := range cats {
		label := cat.Title
		if cat.Icon != "" {
			label = cat.Icon + " " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildCategoryCallback(i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", actionMenu),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildCategoryKeyboard builds one button per rule of a category.
func buildCategoryKeyboard(cat *entities.RuleCategory) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cat.Rules)+1)
	for _, r := range cat.Rules {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(r.Name, buildRuleCallback(r.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("« Categories", actionRules),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildRuleKeyboard builds navigation and quiz buttons for a rule card.
func buildRuleKeyboard(nav *service.RuleNav) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var navRow []tgbotapi.InlineKeyboardButton
	if nav.Prev > 0 {
		navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData("◀️ Previous", buildRuleCallback(nav.Prev)))
	}
	if nav.Next > 0 {
		navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData("Next ▶️", buildRuleCallback(nav.Next)))
	}
	if len(navRow) > 0 {
		rows = append(rows, navRow)
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 Examples", buildExamplesCallback(nav.Rule.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🎯 Quiz", buildRuleTiersCallback(nav.Rule.ID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Categories", actionRules),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildExamplesKeyboard returns to the rule card.
func buildExamplesKeyboard(ruleID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back to rule", buildRuleCallback(ruleID)),
		),
	)
}

// buildTiersKeyboard lists every difficulty; tiers without questions are
// shown locked. ruleID 0 builds the mastery picker.
func buildTiersKeyboard(ruleID int, available []entities.Difficulty) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range entities.Difficulties {
		if !containsDifficulty(available, d) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData("🔒 "+difficultyLabel(d), actionNoop))
			continue
		}

		data := buildMasteryTierCallback(d)
		if ruleID > 0 {
			data = buildRuleTierCallback(ruleID, d)
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(difficultyLabel(d), data))
	}

	back := tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", actionMenu)
	if ruleID > 0 {
		back = tgbotapi.NewInlineKeyboardButtonData("« Back to rule", buildRuleCallback(ruleID))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row, tgbotapi.NewInlineKeyboardRow(back))
}

func containsDifficulty(list []entities.Difficulty, d entities.Difficulty) bool {
	for _, x := range list {
		if x == d {
			return true
		}
	}
	return false
}

// buildSizeKeyboard lays the size choices out two per row.
func buildSizeKeyboard(choices []service.SizeChoice) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	var all *tgbotapi.InlineKeyboardButton

	for _, c := range choices {
		if c.All {
			b := tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("All %d Questions", c.Count), buildSizeCallback(c.Count))
			all = &b
			continue
		}

		label := fmt.Sprintf("%d Questions", c.Count)
		data := buildSizeCallback(c.Count)
		if !c.Enabled {
			label = "🔒 " + label
			data = actionNoop
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, data))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if all != nil {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(*all))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Cancel", actionExit),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildAnswerKeyboard builds one button per option of the current question.
func buildAnswerKeyboard(q entities.QuizQuestion, sessionID string, index int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options)+1)
	for i, option := range q.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(option, buildAnswerCallback(sessionID, index, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Exit quiz", actionExit),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildFeedbackKeyboard is shown after a question was answered.
func buildFeedbackKeyboard(sessionID string, index, total int) tgbotapi.InlineKeyboardMarkup {
	label := "Next ▶️"
	if index >= total-1 {
		label = "See results 🏁"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildNextCallback(sessionID, index)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Exit quiz", actionExit),
		),
	)
}

// buildNoQuestionsKeyboard only allows leaving the quiz.
func buildNoQuestionsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Exit quiz", actionExit),
		),
	)
}

// buildSummaryKeyboard builds keyboard for quiz results screen.
func buildSummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Review answers", actionReview),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Try again", actionRetry),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", actionExit),
		),
	)
}

// buildReviewKeyboard builds keyboard for the review screen.
func buildReviewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("« Back to results", actionUnreview),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Try again", actionRetry),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 Menu", actionExit),
		),
	)
}
