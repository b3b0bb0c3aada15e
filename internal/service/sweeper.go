package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically closes quiz sessions nobody has touched for a
// while, so abandoned chats do not hold timers and memory forever.
type SessionSweeper struct {
	sweeper  IdleSweeper
	schedule string
	idle     time.Duration
	logger   *zap.Logger
}

// NewSessionSweeper creates a sweeper running on a cron schedule.
func NewSessionSweeper(sweeper IdleSweeper, schedule string, idle time.Duration, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		sweeper:  sweeper,
		schedule: schedule,
		idle:     idle,
		logger:   logger,
	}
}

// Start runs the sweeper until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, s.Sweep)
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("schedule", s.schedule), zap.Duration("idle_timeout", s.idle))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep runs one pass immediately.
func (s *SessionSweeper) Sweep() {
	if n := s.sweeper.SweepIdle(s.idle); n > 0 {
		s.logger.Info("idle sessions closed", zap.Int("count", n))
	}
}
