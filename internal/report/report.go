// Package report aggregates per-symbol signals into the daily notification.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/yanivvi/stocksmania/internal/model"
)

// maxListed caps how many symbols each action list shows in the message.
const maxListed = 5

// HoldingCheck is the report row for a symbol the user owns.
type HoldingCheck struct {
	Signal model.Signal
	Action string
}

// Report is the aggregate daily output over all tracked symbols. It is
// computed only after every symbol pipeline has finished.
type Report struct {
	Date      time.Time
	Buys      []model.Signal // ascending by vs-average: closest to the average first (best entry)
	Sells     []model.Signal // ascending by vs-average: worst first
	Holdings  []HoldingCheck
	TopGainer *model.Signal
	TopLoser  *model.Signal
	BuyCount  int
	SellCount int
}

// Build categorizes signals into the report. Symbols without a computable
// rolling average never land in the action lists but still count for the
// top gainer/loser when they have a daily change.
func Build(signals []model.Signal, holdings []string) *Report {
	r := &Report{Date: time.Now()}

	for i := range signals {
		sig := signals[i]
		if sig.HasAverage() {
			switch sig.Classification {
			case model.Buy:
				r.Buys = append(r.Buys, sig)
			case model.Sell:
				r.Sells = append(r.Sells, sig)
			}
		}
		if !math.IsNaN(sig.DailyChangePct) {
			if r.TopGainer == nil || sig.DailyChangePct > r.TopGainer.DailyChangePct {
				s := sig
				r.TopGainer = &s
			}
			if r.TopLoser == nil || sig.DailyChangePct < r.TopLoser.DailyChangePct {
				s := sig
				r.TopLoser = &s
			}
		}
	}
	r.BuyCount = len(r.Buys)
	r.SellCount = len(r.Sells)

	sort.Slice(r.Buys, func(i, j int) bool { return r.Buys[i].VsAveragePct < r.Buys[j].VsAveragePct })
	sort.Slice(r.Sells, func(i, j int) bool { return r.Sells[i].VsAveragePct < r.Sells[j].VsAveragePct })
	if len(r.Buys) > maxListed {
		r.Buys = r.Buys[:maxListed]
	}
	if len(r.Sells) > maxListed {
		r.Sells = r.Sells[:maxListed]
	}

	for _, h := range holdings {
		for i := range signals {
			if signals[i].Symbol != h {
				continue
			}
			r.Holdings = append(r.Holdings, HoldingCheck{
				Signal: signals[i],
				Action: holdingAction(signals[i].Classification),
			})
			break
		}
	}
	return r
}

func holdingAction(c model.Classification) string {
	switch c {
	case model.Sell:
		return "CONSIDER SELLING"
	case model.Buy:
		return "KEEP / ADD MORE"
	default:
		return "HOLD"
	}
}
