package model

// Classification is the trading action derived from a series.
type Classification string

const (
	Buy  Classification = "BUY"
	Sell Classification = "SELL"
	Hold Classification = "HOLD"
)

// Signal is the derived state of one symbol at the latest trading day.
// It is computed on demand from the last two points of a Series plus its
// rolling average, and is never persisted as part of the series.
type Signal struct {
	Symbol         string
	Price          float64
	VsAveragePct   float64 // percent distance from the rolling average; NaN when the average is absent
	DailyChangePct float64 // NaN for a single-point series
	Classification Classification
	Reason         string // "overbought", "downtrend", "insufficient history", ...
	Score          float64 // 0-100
}

// HasAverage reports whether the rolling average backing this signal was
// computable (enough history existed).
func (s Signal) HasAverage() bool { return s.VsAveragePct == s.VsAveragePct } // NaN != NaN
