package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/yanivvi/stocksmania/internal/metrics"
	"github.com/yanivvi/stocksmania/internal/model"
	"github.com/yanivvi/stocksmania/internal/report"
)

type showCmd struct {
	window  int
	display int
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the stored series for a symbol" }
func (*showCmd) Usage() string {
	return `stocksmania show [-w 150] [-d 20] SYMBOL

  Displays the most recent stored rows with the rolling average recomputed
  under the current window.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.window, "w", 0, "Rolling average window in days (defaults to config)")
	f.IntVar(&c.display, "d", 20, "Number of recent rows to display")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one symbol required")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	a, err := newApp("", c.window, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	s, err := a.store.Load(symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if s.Empty() {
		fmt.Printf("No data found for %s. Run 'initial' first.\n", symbol)
		return subcommands.ExitFailure
	}

	// Window is a runtime parameter; recompute instead of trusting the
	// persisted column.
	s = metrics.Recompute(s, a.cfg.RollingWindow)
	printSeries(s, a.cfg.RollingWindow, c.display)
	fmt.Println(report.FormatSummary(s, a.cfg.RollingWindow))
	return subcommands.ExitSuccess
}

// printSeries renders the last n rows of a series as an aligned table.
func printSeries(s model.Series, window, n int) {
	fmt.Printf("📊 %s - Last %d Trading Days\n", s.Symbol, n)

	start := s.Len() - n
	if start < 0 {
		start = 0
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Date\tClose\tRolling_Avg_%dd\n", window)
	for i := start; i < s.Len(); i++ {
		avg := "N/A"
		if i < len(s.RollingAvg) && !math.IsNaN(s.RollingAvg[i]) {
			avg = fmt.Sprintf("$%.2f", s.RollingAvg[i])
		}
		fmt.Fprintf(w, "%s\t$%.2f\t%s\n", s.Points[i].Date, s.Points[i].Close, avg)
	}
	w.Flush()
}
