// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
	"github.com/aliskhannn/sva-bot/internal/mascot"
	"github.com/aliskhannn/sva-bot/internal/quiz"
	"github.com/aliskhannn/sva-bot/internal/service"
)

// Plain text messages.
const (
	msgInternalError   = "Something went wrong. Please try again later."
	msgUnknownCommand  = "Unknown command. Send /help to see what I can do."
	msgUseRule         = "Usage: /rule N, for example /rule 5."
	msgRuleNotFound    = "There is no rule with that number. Send /rules to browse them."
	msgNoQuestions     = "No questions available for this level yet. Try another difficulty."
	msgSessionExpired  = "This quiz has expired. Start a new one from the menu."
	msgStillGiggling   = "Hee hee! Give me a second..."
	msgCorrectToast    = "✅ Correct!"
	msgIncorrectToast  = "❌ Not quite"
	msgUnavailableSize = "Not enough questions for that size"
	msgBasicsMissing   = "The basics are not available right now. Send /rules to browse the rules."
)

const maxMessageLength = 4096

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

func italic(s string) string {
	return "_" + md(s) + "_"
}

func underline(s string) string {
	return "__" + md(s) + "__"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

// formatWelcome builds the welcome message.
func formatWelcome() string {
	var sb strings.Builder

	sb.WriteString(bold("😊 Subject-Verb Agreement Trainer"))
	sb.WriteString("\n\n")
	sb.WriteString(md("Learn when a verb should be singular or plural, one rule at a time."))
	sb.WriteString("\n\n")
	sb.WriteString(md("📖 Start with the basics if you are new to grammar terms."))
	sb.WriteString("\n")
	sb.WriteString(md("📚 Browse the rules with examples."))
	sb.WriteString("\n")
	sb.WriteString(md("🎯 Quiz yourself on a single rule."))
	sb.WriteString("\n")
	sb.WriteString(md("🏆 Take a mastery quiz that mixes every rule."))
	sb.WriteString("\n")
	sb.WriteString(md("💡 Tickle me for a grammar tip."))
	return sb.String()
}

// formatHelp lists the commands.
func formatHelp() string {
	lines := []string{
		bold("Commands"),
		"",
		md("/basics - core concepts before you begin"),
		md("/rules - browse rule categories"),
		md("/rule N - open rule number N"),
		md("/mastery - quiz across all rules"),
		md("/tip - get a grammar tip"),
		md("/help - show this message"),
	}
	return strings.Join(lines, "\n")
}

// formatCategories builds the category list header.
func formatCategories() string {
	return bold("📚 Rule categories") + "\n\n" + md("Pick a category to see its rules.")
}

// formatCategory lists the rules of a category.
func formatCategory(cat *entities.RuleCategory) string {
	var sb strings.Builder
	sb.WriteString(bold(strings.TrimSpace(cat.Icon + " " + cat.Title)))
	sb.WriteString("\n\n")
	for _, r := range cat.Rules {
		sb.WriteString(md("• " + r.Name))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// formatRule builds the rule card.
func formatRule(rule *entities.Rule) string {
	var sb strings.Builder

	sb.WriteString(bold(rule.Name))
	if rule.Formula != "" {
		sb.WriteString("\n\n")
		sb.WriteString("`" + escapeCode(rule.Formula) + "`")
	}
	if rule.Explanation != "" {
		sb.WriteString("\n\n")
		sb.WriteString(markdownV2(rule.Explanation))
	}
	if rule.Infographic != nil {
		sb.WriteString("\n\n")
		sb.WriteString(formatInfographic(rule.Infographic))
	}
	if len(rule.Examples) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(bold("Examples"))
		for _, ex := range rule.Examples {
			sb.WriteString("\n")
			sb.WriteString(md("• "))
			sb.WriteString(highlightExample(ex))
		}
	}
	return sb.String()
}

// formatInfographic draws the visual summary of a rule as a framed card.
func formatInfographic(info *entities.Infographic) string {
	const frame = "┃ "

	var lines []string
	if info.Title != "" {
		lines = append(lines, "🖼 "+bold(info.Title))
	}

	headline := bold(info.Heading)
	if info.Subtitle != "" {
		headline += md(" · ") + italic(info.Subtitle)
	}
	lines = append(lines, frame+headline)
	if info.Caption != "" {
		lines = append(lines, frame+md(info.Caption))
	}
	if len(info.Examples) > 0 {
		lines = append(lines, frame+"⬇️")
		for _, ex := range info.Examples {
			lines = append(lines, frame+highlightExample(ex))
		}
	}
	return strings.Join(lines, "\n")
}

// formatBasics builds the primer shown before the rules.
func formatBasics(p *entities.Primer) string {
	var sb strings.Builder
	sb.WriteString(bold("📖 " + p.Title))
	if p.Intro != "" {
		sb.WriteString("\n\n")
		sb.WriteString(markdownV2(p.Intro))
	}
	for _, section := range p.Sections {
		sb.WriteString("\n\n")
		sb.WriteString(bold(section.Heading))
		if section.Body != "" {
			sb.WriteString("\n")
			sb.WriteString(markdownV2(section.Body))
		}
	}
	return sb.String()
}

// formatExamples builds the detailed example breakdown of a rule.
func formatExamples(rule *entities.Rule) string {
	var sb strings.Builder
	sb.WriteString(bold(rule.Name))
	sb.WriteString("\n\n")

	if len(rule.Examples) == 0 {
		sb.WriteString(md("No examples for this rule yet."))
		return sb.String()
	}

	for i, ex := range rule.Examples {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(md(fmt.Sprintf("%d. ", i+1)))
		sb.WriteString(highlightExample(ex))
		if !ex.IsStructured() {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(md("Subject: "))
		sb.WriteString(bold(ex.Subject))
		sb.WriteString(md(" · Verb: "))
		sb.WriteString(underline(ex.Verb))
		if ex.Reason != "" {
			sb.WriteString("\n")
			sb.WriteString(italic(ex.Reason))
		}
	}
	return sb.String()
}

// highlightExample marks the subject in bold and the verb underlined. Plain
// examples and highlights that cannot be located are rendered as is.
func highlightExample(ex entities.Example) string {
	if !ex.IsStructured() {
		return md(ex.Text)
	}

	sentence := ex.Sentence
	si := indexFold(sentence, ex.Subject)
	if ex.Subject == "" || si < 0 {
		return md(sentence)
	}
	subjectEnd := si + len(ex.Subject)

	vi := -1
	if ex.Verb != "" {
		if rel := indexFold(sentence[subjectEnd:], ex.Verb); rel >= 0 {
			vi = subjectEnd + rel
		}
	}

	var sb strings.Builder
	sb.WriteString(md(sentence[:si]))
	sb.WriteString(bold(sentence[si:subjectEnd]))
	if vi < 0 {
		sb.WriteString(md(sentence[subjectEnd:]))
		return sb.String()
	}
	verbEnd := vi + len(ex.Verb)
	sb.WriteString(md(sentence[subjectEnd:vi]))
	sb.WriteString(underline(sentence[vi:verbEnd]))
	sb.WriteString(md(sentence[verbEnd:]))
	return sb.String()
}

// indexFold is a case-insensitive strings.Index for ASCII-cased text.
func indexFold(s, substr string) int {
	return strings.Index(strings.ToLower(s), strings.ToLower(substr))
}

// formatTiers builds the difficulty picker text.
func formatTiers(title string) string {
	return bold(title) + "\n\n" + md("Choose a difficulty.")
}

// formatSizePicker builds the quiz setup text.
func formatSizePicker(title string, available int, face string) string {
	return fmt.Sprintf(
		"%s %s\n\n%s\n%s",
		face,
		bold("Quiz Setup: "+title),
		md("How many questions would you like to attempt?"),
		italic(fmt.Sprintf("%d questions available", available)),
	)
}

// questionView is what a question card shows.
type questionView struct {
	Question entities.QuizQuestion
	Index    int
	Total    int
	Score    int
	Mastery  bool
	Mascot   mascot.Snapshot
	Answered bool
	Chosen   int
	Outcome  entities.Outcome
}

// formatQuestion builds the question card, with feedback once answered.
func formatQuestion(v questionView) string {
	var sb strings.Builder

	sb.WriteString(md(fmt.Sprintf("%s Question %d of %d · %s · Score %d",
		v.Mascot.Face(), v.Index+1, v.Total, difficultyLabel(v.Question.Difficulty), v.Score)))
	if v.Mascot.Bubble != "" {
		sb.WriteString("\n")
		sb.WriteString(italic("💬 " + v.Mascot.Bubble))
	}
	if v.Mastery && v.Question.Rule != "" {
		sb.WriteString("\n")
		sb.WriteString(italic(v.Question.Rule))
	}

	sb.WriteString("\n\n")
	sb.WriteString(bold(v.Question.Question))

	if !v.Answered {
		return sb.String()
	}

	sb.WriteString("\n\n")
	for i, opt := range v.Question.Options {
		mark := "▫️"
		switch {
		case i == v.Question.Correct:
			mark = "✅"
		case i == v.Chosen:
			mark = "❌"
		}
		sb.WriteString(md(fmt.Sprintf("%s %s", mark, opt)))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if v.Question.IsCorrect(v.Chosen) {
		sb.WriteString(bold("Correct! 🎉"))
	} else {
		sb.WriteString(bold("Not quite."))
		sb.WriteString(md(" The answer is "))
		sb.WriteString(underline(v.Question.CorrectOption()))
		sb.WriteString(md("."))
	}
	if v.Question.Explanation != "" {
		sb.WriteString("\n")
		sb.WriteString(md(v.Question.Explanation))
	}
	return sb.String()
}

// formatNoQuestions is shown for an active quiz with nothing to ask.
func formatNoQuestions() string {
	return md("😞 " + msgNoQuestions)
}

// formatSummary builds the quiz result message.
func formatSummary(res quiz.Result, face string) string {
	pct := res.Percentage()
	grade := service.GradeFor(pct)

	return fmt.Sprintf(
		"%s %s\n\n%s\n\n%s\n%s",
		face,
		bold("Quiz Complete!"),
		md(grade.Message),
		bold(fmt.Sprintf("Your score: %d / %d", res.Score, res.Total())),
		md(fmt.Sprintf("%d%% accuracy", pct)),
	)
}

// formatReview lists every question of a finished quiz. Rows that do not fit
// into one Telegram message are summarised at the end.
func formatReview(res quiz.Result) string {
	header := bold("📝 Review") + "\n\n"
	var sb strings.Builder
	sb.WriteString(header)

	items := res.Review()
	for i, item := range items {
		row := formatReviewItem(item)
		if sb.Len()+len(row)+64 > maxMessageLength {
			sb.WriteString(italic(fmt.Sprintf("…and %d more", len(items)-i)))
			return sb.String()
		}
		sb.WriteString(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatReviewItem(item entities.ReviewItem) string {
	q := item.Question

	var icon, answer string
	switch item.Status {
	case entities.AnswerCorrect:
		icon = "✅"
		answer = "Your answer: " + q.Options[item.Chosen]
	case entities.AnswerIncorrect:
		icon = "❌"
		answer = fmt.Sprintf("Your answer: %s · Correct: %s", q.Options[item.Chosen], q.CorrectOption())
	default:
		icon = "⏭"
		answer = "Not answered · Correct: " + q.CorrectOption()
	}

	return fmt.Sprintf("%s %s\n%s\n\n",
		md(fmt.Sprintf("%s %d.", icon, item.Index+1)),
		md(q.Question),
		italic(answer),
	)
}

// formatTip builds the mascot tip message.
func formatTip(snap mascot.Snapshot) string {
	if snap.Bubble == "" {
		return md(snap.Face() + " " + msgStillGiggling)
	}
	return md(snap.Face()+" ") + italic(snap.Bubble)
}

func difficultyLabel(d entities.Difficulty) string {
	switch d {
	case entities.DifficultyEasy:
		return "🟢 Easy"
	case entities.DifficultyMedium:
		return "🟡 Medium"
	case entities.DifficultyHard:
		return "🔴 Hard"
	default:
		return string(d)
	}
}
