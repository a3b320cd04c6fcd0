package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/yanivvi/stocksmania/internal/notifier"
	"github.com/yanivvi/stocksmania/internal/scheduler"
)

type daemonCmd struct {
	runOnStart bool
}

func (*daemonCmd) Name() string     { return "daemon" }
func (*daemonCmd) Synopsis() string { return "run the daily update + report on a cron schedule" }
func (*daemonCmd) Usage() string {
	return `stocksmania daemon [-run-on-start]

  Stays resident and runs the daily update and Telegram report on the
  configured cron expression.
`
}

func (c *daemonCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.runOnStart, "run-on-start", false, "Execute the daily task immediately on startup")
}

func (c *daemonCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp("", 0, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	if a.cfg.Telegram.BotToken == "" || a.cfg.Telegram.ChatID == "" {
		fmt.Fprintln(os.Stderr, "Error: telegram.bot_token and telegram.chat_id are required in daemon mode")
		return subcommands.ExitFailure
	}
	tn, err := notifier.NewTelegram(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(ctx, a.tracker, tn, a.cfg.Symbols, a.cfg.Holdings)
	if err := sched.Register(a.cfg.Schedule.DailyCron); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if c.runOnStart || os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] run-on-start enabled, executing daily task now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] stocksmania daemon running. Press Ctrl+C to stop.")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return subcommands.ExitSuccess
}
