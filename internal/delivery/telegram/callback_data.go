package telegram

import (
	"strconv"
	"strings"

	"github.com/aliskhannn/sva-bot/internal/domain/entities"
)

// Callback action constants.
const (
	actionMenu     = "menu"
	actionRules    = "rules"
	actionBasics   = "basics"
	actionCategory = "cat"
	actionRule     = "rule"
	actionExamples = "ex"
	actionTiers    = "tiers"
	actionTier     = "tier"
	actionSize     = "size"
	actionAnswer   = "ans"
	actionNext     = "next"
	actionExit     = "exit"
	actionReview   = "review"
	actionUnreview = "unreview"
	actionRetry    = "retry"
	actionTip      = "tip"
	actionNoop     = "noop"
)

// Quiz scope parameters.
const (
	scopeRuleParam    = "r"
	scopeMasteryParam = "m"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// intParam returns the i-th parameter as an int.
func (cd callbackData) intParam(i int) (int, bool) {
	if i >= len(cd.Params) {
		return 0, false
	}
	n, err := strconv.Atoi(cd.Params[i])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (cd callbackData) param(i int) string {
	if i >= len(cd.Params) {
		return ""
	}
	return cd.Params[i]
}

func buildCategoryCallback(index int) string {
	return callbackData{Action: actionCategory, Params: []string{strconv.Itoa(index)}}.encode()
}

func buildRuleCallback(id int) string {
	return callbackData{Action: actionRule, Params: []string{strconv.Itoa(id)}}.encode()
}

func buildExamplesCallback(id int) string {
	return callbackData{Action: actionExamples, Params: []string{strconv.Itoa(id)}}.encode()
}

// buildRuleTiersCallback opens the difficulty picker for one rule.
func buildRuleTiersCallback(ruleID int) string {
	return callbackData{Action: actionTiers, Params: []string{scopeRuleParam, strconv.Itoa(ruleID)}}.encode()
}

// buildMasteryTiersCallback opens the difficulty picker for the mastery quiz.
func buildMasteryTiersCallback() string {
	return callbackData{Action: actionTiers, Params: []string{scopeMasteryParam}}.encode()
}

func buildRuleTierCallback(ruleID int, d entities.Difficulty) string {
	return callbackData{Action: actionTier, Params: []string{scopeRuleParam, strconv.Itoa(ruleID), string(d)}}.encode()
}

func buildMasteryTierCallback(d entities.Difficulty) string {
	return callbackData{Action: actionTier, Params: []string{scopeMasteryParam, string(d)}}.encode()
}

func buildSizeCallback(count int) string {
	return callbackData{Action: actionSize, Params: []string{strconv.Itoa(count)}}.encode()
}

// buildAnswerCallback binds an option to one question of one attempt so that
// presses on outdated keyboards can be recognised.
func buildAnswerCallback(sessionID string, index, option int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{sessionID, strconv.Itoa(index), strconv.Itoa(option)},
	}.encode()
}

func buildNextCallback(sessionID string, index int) string {
	return callbackData{Action: actionNext, Params: []string{sessionID, strconv.Itoa(index)}}.encode()
}
