package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/sva-bot/internal/config"
	"github.com/aliskhannn/sva-bot/internal/delivery/telegram"
	"github.com/aliskhannn/sva-bot/internal/logger"
	"github.com/aliskhannn/sva-bot/internal/mascot"
	"github.com/aliskhannn/sva-bot/internal/quiz"
	"github.com/aliskhannn/sva-bot/internal/repository"
	"github.com/aliskhannn/sva-bot/internal/service"
	"github.com/aliskhannn/sva-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	contentRepo, err := repository.NewContentRepository(cfg.ContentPath)
	if err != nil {
		lg.Fatal("failed to load content", zap.String("path", cfg.ContentPath), zap.Error(err))
	}
	for _, defect := range contentRepo.Defects() {
		lg.Warn("content defect", zap.String("defect", defect))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Open the main menu"},
		{Command: "basics", Description: "Core concepts before you begin"},
		{Command: "rules", Description: "Browse the agreement rules"},
		{Command: "rule", Description: "Open a rule (usage: /rule 5)"},
		{Command: "mastery", Description: "Quiz across all rules"},
		{Command: "tip", Description: "Get a grammar tip"},
		{Command: "help", Description: "Help"},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	quizStorage := storage.NewQuizStorage()

	ruleService := service.NewRuleService(contentRepo)
	quizService := service.NewQuizService(
		contentRepo,
		quizStorage,
		quiz.NewSampler(nil),
		service.QuizOptions{
			OutcomeDuration: cfg.Quiz.OutcomeDuration,
			Mascot: mascot.Timings{
				BlinkMin:           cfg.Mascot.BlinkMin,
				BlinkMax:           cfg.Mascot.BlinkMax,
				BlinkDuration:      cfg.Mascot.BlinkDuration,
				IdleInterval:       cfg.Mascot.IdleInterval,
				IdlePromptDuration: cfg.Mascot.IdlePromptDuration,
				TipDuration:        cfg.Mascot.TipDuration,
				CelebrateDuration:  cfg.Mascot.CelebrateDuration,
				CryDuration:        cfg.Mascot.CryDuration,
				TickleDuration:     cfg.Mascot.TickleDuration,
			},
		},
		lg,
	)

	handler := telegram.NewHandler(
		bot,
		lg,
		ruleService,
		quizService,
		telegram.QuizConfig{
			SizeOptions: cfg.Quiz.SizeOptions,
			AllLimit:    cfg.Quiz.AllLimit,
		},
	)
	sweeper := service.NewSessionSweeper(quizService, cfg.Quiz.SweepSchedule, cfg.Quiz.IdleTimeout, lg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return handler.Run(gctx) })
	g.Go(func() error { return sweeper.Start(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
	}

	quizStorage.Range(func(chatID int64, _ *storage.QuizEntry) bool {
		_, _ = quizService.Exit(chatID)
		return true
	})
	lg.Info("shutdown complete")
}
