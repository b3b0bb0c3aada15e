package telegram

import (
	"context"
	"strconv"
	"strings"
)

func (h *Handler) startHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendScreen(chatID, menuScreen())
		return nil
	}
}

func (h *Handler) helpHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendScreen(chatID, screen{text: formatHelp(), keyboard: buildMenuKeyboard()})
		return nil
	}
}

func (h *Handler) rulesHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendScreen(chatID, h.categoriesScreen())
		return nil
	}
}

func (h *Handler) basicsHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		s, err := h.basicsScreen()
		if err != nil {
			return err
		}
		h.sendScreen(chatID, s)
		return nil
	}
}

func (h *Handler) ruleHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		id, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			h.sendError(chatID, msgUseRule)
			return nil
		}

		s, err := h.ruleScreen(id)
		if err != nil {
			return err
		}
		h.sendScreen(chatID, s)
		return nil
	}
}

func (h *Handler) masteryHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.sendScreen(chatID, h.masteryTiersScreen())
		return nil
	}
}

func (h *Handler) tipHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		_, snap, _ := h.quizService.Tickle(chatID)
		h.send(newMessage(chatID, formatTip(snap)))
		return nil
	}
}
