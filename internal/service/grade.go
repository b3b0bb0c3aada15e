package service

import "github.com/aliskhannn/sva-bot/internal/mascot"

// Grade is how a finished quiz is presented.
type Grade struct {
	Message    string
	Expression mascot.Expression
	Celebrate  bool
}

// GradeFor maps a rounded percentage to its summary message.
func GradeFor(percentage int) Grade {
	switch {
	case percentage == 100:
		return Grade{"Perfection! You're a grammar master! 🏆", mascot.ExpressionExcited, true}
	case percentage >= 80:
		return Grade{"Amazing job! Keep it up! 🌟", mascot.ExpressionHappy, true}
	case percentage >= 60:
		return Grade{"Good work! You're getting there. 👍", mascot.ExpressionHappy, false}
	default:
		return Grade{"Keep practicing! You'll improve. 💪", mascot.ExpressionThinking, false}
	}
}
