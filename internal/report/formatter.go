package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/yanivvi/stocksmania/internal/model"
)

const divider = "━━━━━━━━━━━━━━━━━━━━\n"

// Format renders the report as a Telegram HTML message.
func Format(r *Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>StocksMania - %s</b>\n", r.Date.Format("Jan 02, 2006")))
	b.WriteString(divider)
	b.WriteString("\n")

	b.WriteString("🟢 <b>ACTION: BUY</b>\n")
	b.WriteString("<i>(Above average, not overbought)</i>\n")
	if len(r.Buys) > 0 {
		for _, s := range r.Buys {
			b.WriteString(fmt.Sprintf("  → <b>%s</b> $%.2f (%+.1f%%)\n", s.Symbol, s.Price, s.VsAveragePct))
		}
	} else {
		b.WriteString("  <i>No strong buys today</i>\n")
	}
	b.WriteString("\n")

	b.WriteString("🔴 <b>ACTION: SELL/AVOID</b>\n")
	b.WriteString("<i>(Downtrend or overbought)</i>\n")
	if len(r.Sells) > 0 {
		for _, s := range r.Sells {
			b.WriteString(fmt.Sprintf("  → <b>%s</b> $%.2f (%+.1f%%) ⚠️ %s\n",
				s.Symbol, s.Price, s.VsAveragePct, s.Reason))
		}
	} else {
		b.WriteString("  <i>Nothing to sell today</i>\n")
	}
	b.WriteString("\n")

	if len(r.Holdings) > 0 {
		b.WriteString(divider)
		b.WriteString("💼 <b>YOUR HOLDINGS CHECK:</b>\n")
		for _, h := range r.Holdings {
			s := h.Signal
			b.WriteString(fmt.Sprintf("\n<b>%s</b>: $%.2f\n", s.Symbol, s.Price))
			if s.HasAverage() {
				b.WriteString(fmt.Sprintf("  vs average: %+.1f%%\n", s.VsAveragePct))
			} else {
				b.WriteString("  vs average: insufficient history\n")
			}
			if !math.IsNaN(s.DailyChangePct) {
				b.WriteString(fmt.Sprintf("  Today: %+.1f%%\n", s.DailyChangePct))
			}
			b.WriteString(fmt.Sprintf("  → <b>%s</b>\n", h.Action))
		}
		b.WriteString("\n")
	}

	b.WriteString(divider)
	if r.TopGainer != nil {
		b.WriteString(fmt.Sprintf("🚀 Top Gainer: <b>%s</b> %+.1f%%\n", r.TopGainer.Symbol, r.TopGainer.DailyChangePct))
	}
	if r.TopLoser != nil {
		b.WriteString(fmt.Sprintf("💥 Top Loser: <b>%s</b> %+.1f%%\n", r.TopLoser.Symbol, r.TopLoser.DailyChangePct))
	}
	b.WriteString(fmt.Sprintf("\nSignals: %d BUY / %d SELL\n", r.BuyCount, r.SellCount))

	return b.String()
}

// FormatSummary renders one symbol's latest state for terminal display.
func FormatSummary(s model.Series, window int) string {
	var b strings.Builder
	if s.Empty() {
		b.WriteString(fmt.Sprintf("No data found for %s. Run 'initial' first.\n", s.Symbol))
		return b.String()
	}
	last := s.Last()
	b.WriteString(fmt.Sprintf("Latest Close: $%.2f (%s)\n", last.Close, last.Date))
	avg := s.LatestRollingAvg()
	if math.IsNaN(avg) {
		b.WriteString(fmt.Sprintf("Rolling average requires %d days of data (insufficient history)\n", window))
		return b.String()
	}
	diffPct := (last.Close - avg) / avg * 100
	trend := "above"
	if diffPct < 0 {
		trend = "below"
	}
	b.WriteString(fmt.Sprintf("%d-day Avg: $%.2f\n", window, avg))
	b.WriteString(fmt.Sprintf("Current price is %.2f%% %s the rolling average\n", math.Abs(diffPct), trend))
	return b.String()
}
