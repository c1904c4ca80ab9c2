// Package scheduler sends periodic drink-leaderboard recaps to the chat.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/golazobot/golazo/internal/service"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	c           *cron.Cron
	gameService *service.GameService
	sendMessage func(string) error
}

// NewScheduler registers the recap job on the given cron expression.
func NewScheduler(spec string, gameService *service.GameService, sendMessage func(string) error) (*Scheduler, error) {
	s := &Scheduler{
		c:           cron.New(),
		gameService: gameService,
		sendMessage: sendMessage,
	}

	if _, err := s.c.AddFunc(spec, s.sendRecap); err != nil {
		return nil, fmt.Errorf("failed to create recap job: %w", err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.c.Start()
}

func (s *Scheduler) Stop() {
	s.c.Stop()
}

func (s *Scheduler) sendRecap() {
	leaderboard, err := s.gameService.Leaderboard()
	if err != nil {
		// No active game is the normal idle state, not worth a recap.
		slog.Debug("Skipping recap", "reason", err)
		return
	}
	s.sendMessage(leaderboard)
}
