package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yanivvi/stocksmania/internal/metrics"
	"github.com/yanivvi/stocksmania/internal/model"
	"github.com/yanivvi/stocksmania/internal/notifier"
	"github.com/yanivvi/stocksmania/internal/report"
)

type reportCmd struct {
	window int
	noSend bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "build the daily BUY/SELL report from stored data" }
func (*reportCmd) Usage() string {
	return `stocksmania report [-w 150] [-no-send]

  Derives signals from the stored series, prints the report and sends it
  to Telegram when a bot token and chat id are configured.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.window, "w", 0, "Rolling average window in days (defaults to config)")
	f.BoolVar(&c.noSend, "no-send", false, "Print only, never send to Telegram")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp("", c.window, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	// Report works off persisted state only; no fetching here.
	results := make(map[string]model.Series, len(a.cfg.Symbols))
	for _, symbol := range a.cfg.Symbols {
		s, err := a.store.Load(symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if s.Empty() {
			fmt.Printf("No data found for %s, run 'initial' first\n", symbol)
			continue
		}
		results[symbol] = metrics.Recompute(s, a.cfg.RollingWindow)
	}
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No stock data found")
		return subcommands.ExitFailure
	}

	signals := a.tracker.Signals(results)
	rep := report.Build(signals, a.cfg.Holdings)
	text := report.Format(rep)
	fmt.Println(text)

	if c.noSend || a.cfg.Telegram.BotToken == "" || a.cfg.Telegram.ChatID == "" {
		return subcommands.ExitSuccess
	}
	tn, err := notifier.NewTelegram(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := notifier.SendWithRetry(ctx, tn, text, 3); err != nil {
		fmt.Fprintf(os.Stderr, "Error: send report: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Report sent.")
	return subcommands.ExitSuccess
}
