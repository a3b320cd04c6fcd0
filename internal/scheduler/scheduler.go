// Package scheduler runs the daily pipeline on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/yanivvi/stocksmania/internal/notifier"
	"github.com/yanivvi/stocksmania/internal/report"
	"github.com/yanivvi/stocksmania/internal/tracker"
)

// Scheduler drives the daily update + report task.
type Scheduler struct {
	Cron     *cron.Cron
	Tracker  *tracker.Tracker
	Notifier notifier.Notifier
	Symbols  []string
	Holdings []string
	Ctx      context.Context
}

// New creates a Scheduler.
func New(ctx context.Context, tr *tracker.Tracker, n notifier.Notifier, symbols, holdings []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Tracker:  tr,
		Notifier: n,
		Symbols:  symbols,
		Holdings: holdings,
		Ctx:      ctx,
	}
}

// Register registers the daily cron task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily task")
	results := s.Tracker.RunDaily(s.Ctx, s.Symbols)
	if len(results) == 0 {
		log.Println("[WARN] daily task produced no data; skipping report")
		return
	}

	signals := s.Tracker.Signals(results)
	rep := report.Build(signals, s.Holdings)
	if err := notifier.SendWithRetry(s.Ctx, s.Notifier, report.Format(rep), 3); err != nil {
		log.Printf("[ERROR] send daily report: %v", err)
	}
}
