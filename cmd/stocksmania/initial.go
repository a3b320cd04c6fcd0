package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yanivvi/stocksmania/internal/report"
)

type initialCmd struct {
	symbols string
	window  int
	start   string
	display int
}

func (*initialCmd) Name() string     { return "initial" }
func (*initialCmd) Synopsis() string { return "fetch historical data for the configured symbols" }
func (*initialCmd) Usage() string {
	return `stocksmania initial [-s NVDA,AAPL] [-w 150] [-start 2025-01-01] [-d 20]

  Fetches closing-price history from the historical start date, computes
  rolling averages and persists one CSV series per symbol.
`
}

func (c *initialCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbols, "s", "", "Comma-separated symbols (defaults to config)")
	f.IntVar(&c.window, "w", 0, "Rolling average window in days (defaults to config)")
	f.StringVar(&c.start, "start", "", "Start date YYYY-MM-DD (defaults to config)")
	f.IntVar(&c.display, "d", 20, "Number of recent rows to display")
}

func (c *initialCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.symbols, c.window, c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	results := a.tracker.RunInitial(ctx, a.cfg.Symbols)
	for _, symbol := range a.cfg.Symbols {
		s, ok := results[symbol]
		if !ok {
			fmt.Printf("No data found for %s\n\n", symbol)
			continue
		}
		printSeries(s, a.cfg.RollingWindow, c.display)
		fmt.Println(report.FormatSummary(s, a.cfg.RollingWindow))
	}
	if len(results) == 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
