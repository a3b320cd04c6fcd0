package metrics

import (
	"math"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Recompute returns a copy of the series with the rolling average and
// day-over-day change recomputed over the entire ordered sequence under the
// given window. Pure function: the input series is never mutated; points
// are shared, derived columns are freshly allocated.
//
// RollingAvg[i] is the arithmetic mean of the trailing window closes ending
// at i, NaN while fewer than window points exist. DailyChange[i] is the
// percent change from close[i-1], NaN at i == 0.
func Recompute(s model.Series, window int) model.Series {
	out := model.Series{
		Symbol: s.Symbol,
		Points: s.Points,
		Window: window,
	}
	n := len(s.Points)
	if n == 0 {
		return out
	}

	avg := make([]float64, n)
	chg := make([]float64, n)
	sum := 0.0
	for i, p := range s.Points {
		sum += p.Close
		if i >= window {
			sum -= s.Points[i-window].Close
		}
		if window > 0 && i >= window-1 {
			avg[i] = sum / float64(window)
		} else {
			avg[i] = math.NaN()
		}
		if i > 0 {
			prev := s.Points[i-1].Close
			chg[i] = (p.Close - prev) / prev * 100
		} else {
			chg[i] = math.NaN()
		}
	}
	out.RollingAvg = avg
	out.DailyChange = chg
	return out
}
