package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/yanivvi/stocksmania/internal/report"
)

type dailyCmd struct {
	symbols string
	window  int
	display int
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "update each symbol with the latest trading day" }
func (*dailyCmd) Usage() string {
	return `stocksmania daily [-s NVDA,AAPL] [-w 150] [-d 20]

  Appends the most recent trading day to each stored series and recomputes
  derived columns. A day that is already recorded is a no-op.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbols, "s", "", "Comma-separated symbols (defaults to config)")
	f.IntVar(&c.window, "w", 0, "Rolling average window in days (defaults to config)")
	f.IntVar(&c.display, "d", 20, "Number of recent rows to display")
}

func (c *dailyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(c.symbols, c.window, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	results := a.tracker.RunDaily(ctx, a.cfg.Symbols)
	for _, symbol := range a.cfg.Symbols {
		s, ok := results[symbol]
		if !ok {
			fmt.Printf("No data found for %s, run 'initial' first\n\n", symbol)
			continue
		}
		printSeries(s, a.cfg.RollingWindow, c.display)
		fmt.Println(report.FormatSummary(s, a.cfg.RollingWindow))
	}
	return subcommands.ExitSuccess
}
