package model

import "math"

// PricePoint is one trading day's closing price.
type PricePoint struct {
	Date  Date
	Close float64
}

// FetchResult is the transient output of a single provider fetch. It is
// consumed by the merge step and discarded; it only becomes part of a
// Series after merging.
type FetchResult struct {
	Points   []PricePoint
	Provider string
}

// Empty reports whether the fetch produced no usable points.
func (r FetchResult) Empty() bool { return len(r.Points) == 0 }

// Series is the persisted price history of one symbol, sorted strictly
// ascending by date, plus derived columns recomputed over the full
// sequence after every mutation. RollingAvg and DailyChange run parallel
// to Points; NaN marks an absent value (fewer than Window prior points,
// or the first point for DailyChange).
type Series struct {
	Symbol      string
	Points      []PricePoint
	RollingAvg  []float64
	DailyChange []float64
	Window      int
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Points) }

// Empty reports whether the series holds no points.
func (s Series) Empty() bool { return len(s.Points) == 0 }

// Last returns the most recent point. The series must not be empty.
func (s Series) Last() PricePoint { return s.Points[len(s.Points)-1] }

// HasDate reports whether a point for the given date is already recorded.
func (s Series) HasDate(d Date) bool {
	for _, p := range s.Points {
		if p.Date == d {
			return true
		}
	}
	return false
}

// LatestRollingAvg returns the rolling average of the most recent point,
// or NaN when it is absent or the series is empty.
func (s Series) LatestRollingAvg() float64 {
	if len(s.RollingAvg) == 0 {
		return math.NaN()
	}
	return s.RollingAvg[len(s.RollingAvg)-1]
}

// LatestDailyChange returns the day-over-day change percentage of the most
// recent point, or NaN when it is absent.
func (s Series) LatestDailyChange() float64 {
	if len(s.DailyChange) == 0 {
		return math.NaN()
	}
	return s.DailyChange[len(s.DailyChange)-1]
}
