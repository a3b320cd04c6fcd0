package metrics

import (
	"math"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Thresholds are the vs-average percentage breakpoints driving BUY/SELL
// classification. All values are configuration, not law; the defaults are
// the long-standing report thresholds.
type Thresholds struct {
	Overbought float64 // >= this far above average: SELL (take profits)
	SellBelow  float64 // <= this far below average: SELL (downtrend)
	BuyZoneMin float64
	BuyZoneMax float64
}

// DefaultThresholds returns the stock report defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Overbought: 40, SellBelow: -10, BuyZoneMin: 0, BuyZoneMax: 15}
}

// Strategy selects how the 0-100 score is derived from a classification.
type Strategy string

const (
	// StrategyThreshold gives flat scores: actionable or not.
	StrategyThreshold Strategy = "threshold"
	// StrategyWeighted grades entries and urgency along the breakpoints below.
	StrategyWeighted Strategy = "weighted"
)

// Scoring breakpoints for the weighted strategy. Tunable policy: the ideal
// BUY entry sits slightly above the average, urgency grows linearly past
// the SELL thresholds, and same-day momentum nudges the score within a
// bounded band.
const (
	idealBuyEntryPct    = 5.0
	buyFalloffPerPct    = 6.0
	overboughtSlope     = 2.5
	downtrendSlope      = 4.0
	momentumWeight      = 2.0
	momentumBoundPct    = 10.0
	sellUrgencyBaseline = 50.0
)

// Engine derives a Signal from a recomputed series.
type Engine struct {
	Thresholds Thresholds
	Strategy   Strategy
}

// NewEngine builds an engine; a zero Strategy means weighted.
func NewEngine(th Thresholds, strategy Strategy) Engine {
	if strategy == "" {
		strategy = StrategyWeighted
	}
	return Engine{Thresholds: th, Strategy: strategy}
}

// Classify maps a vs-average percentage to an action. NaN means the rolling
// average is not yet computable and always classifies HOLD.
func (e Engine) Classify(vsAvgPct float64) (model.Classification, string) {
	th := e.Thresholds
	switch {
	case math.IsNaN(vsAvgPct):
		return model.Hold, "insufficient history"
	case vsAvgPct >= th.Overbought:
		return model.Sell, "overbought"
	case vsAvgPct <= th.SellBelow:
		return model.Sell, "downtrend"
	case vsAvgPct >= th.BuyZoneMin && vsAvgPct <= th.BuyZoneMax:
		return model.Buy, "sweet spot"
	case vsAvgPct > th.BuyZoneMax:
		return model.Hold, "extended"
	default:
		return model.Hold, "slightly below average"
	}
}

// Signal computes the derived signal from the latest two points of a series
// and its latest rolling average. The series must already carry recomputed
// derived columns.
func (e Engine) Signal(s model.Series) model.Signal {
	if s.Empty() {
		return model.Signal{
			Symbol:         s.Symbol,
			VsAveragePct:   math.NaN(),
			DailyChangePct: math.NaN(),
			Classification: model.Hold,
			Reason:         "no data",
		}
	}

	price := s.Last().Close
	avg := s.LatestRollingAvg()
	vs := math.NaN()
	if !math.IsNaN(avg) && avg > 0 {
		vs = (price - avg) / avg * 100
	}
	chg := s.LatestDailyChange()

	class, reason := e.Classify(vs)
	return model.Signal{
		Symbol:         s.Symbol,
		Price:          price,
		VsAveragePct:   vs,
		DailyChangePct: chg,
		Classification: class,
		Reason:         reason,
		Score:          e.score(class, vs, chg),
	}
}

func (e Engine) score(class model.Classification, vsAvgPct, dailyChangePct float64) float64 {
	if class == model.Hold {
		return 0
	}
	if e.Strategy == StrategyThreshold {
		return 100
	}

	momentum := 0.0
	if !math.IsNaN(dailyChangePct) {
		momentum = clamp(dailyChangePct*momentumWeight, -momentumBoundPct, momentumBoundPct)
	}

	var base float64
	switch {
	case class == model.Buy:
		// Best entry slightly above the average; a same-day dip improves
		// the entry, a spike works against it.
		base = 100 - buyFalloffPerPct*math.Abs(vsAvgPct-idealBuyEntryPct) - momentum
	case vsAvgPct >= e.Thresholds.Overbought:
		// Urgency grows the further past overbought, and with continued climb.
		base = sellUrgencyBaseline + (vsAvgPct-e.Thresholds.Overbought)*overboughtSlope + momentum
	default:
		// Downtrend: urgency grows the further below, and with continued fall.
		base = sellUrgencyBaseline + (e.Thresholds.SellBelow-vsAvgPct)*downtrendSlope - momentum
	}
	return clamp(base, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
