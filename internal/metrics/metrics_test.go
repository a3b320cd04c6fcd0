package metrics

import (
	"math"
	"testing"

	"github.com/yanivvi/stocksmania/internal/model"
)

func seriesOf(closes ...float64) model.Series {
	pts := make([]model.PricePoint, len(closes))
	d := model.MustParseDate("2025-01-01")
	for i, c := range closes {
		pts[i] = model.PricePoint{Date: d.AddDays(i), Close: c}
	}
	return model.Series{Symbol: "TEST", Points: pts}
}

func TestRecompute_RollingAverage(t *testing.T) {
	closes := []float64{10, 20, 30, 40, 50, 60, 70}
	s := Recompute(seriesOf(closes...), 3)

	// First window-1 points have no average.
	for i := 0; i < 2; i++ {
		if !math.IsNaN(s.RollingAvg[i]) {
			t.Errorf("RollingAvg[%d] = %v, want NaN", i, s.RollingAvg[i])
		}
	}
	// Every later point equals the exact trailing mean.
	for i := 2; i < len(closes); i++ {
		want := (closes[i] + closes[i-1] + closes[i-2]) / 3
		if math.Abs(s.RollingAvg[i]-want) > 1e-9 {
			t.Errorf("RollingAvg[%d] = %v, want %v", i, s.RollingAvg[i], want)
		}
	}
}

func TestRecompute_WindowLargerThanSeries(t *testing.T) {
	s := Recompute(seriesOf(10, 11, 12), 150)
	for i, avg := range s.RollingAvg {
		if !math.IsNaN(avg) {
			t.Errorf("RollingAvg[%d] = %v, want NaN with window > len", i, avg)
		}
	}
	if s.Window != 150 {
		t.Errorf("Window = %d, want 150", s.Window)
	}
}

func TestRecompute_DailyChange(t *testing.T) {
	s := Recompute(seriesOf(100, 110, 99), 2)
	if !math.IsNaN(s.DailyChange[0]) {
		t.Errorf("DailyChange[0] = %v, want NaN", s.DailyChange[0])
	}
	if got := s.DailyChange[1]; math.Abs(got-10) > 1e-9 {
		t.Errorf("DailyChange[1] = %v, want 10", got)
	}
	if got := s.DailyChange[2]; math.Abs(got-(-10)) > 1e-9 {
		t.Errorf("DailyChange[2] = %v, want -10", got)
	}
}

func TestRecompute_Pure(t *testing.T) {
	in := seriesOf(1, 2, 3)
	in.RollingAvg = []float64{9, 9, 9}
	out := Recompute(in, 2)
	if &in.RollingAvg[0] == &out.RollingAvg[0] {
		t.Error("Recompute shares derived columns with its input")
	}
	if in.RollingAvg[0] != 9 {
		t.Error("Recompute mutated its input")
	}
}

func TestClassify_Boundaries(t *testing.T) {
	e := NewEngine(DefaultThresholds(), StrategyWeighted)
	tests := []struct {
		vsAvg float64
		want  model.Classification
	}{
		{40, model.Sell},   // overbought boundary
		{40.1, model.Sell},
		{15, model.Buy},    // buy zone upper boundary
		{16, model.Hold},   // just extended
		{0, model.Buy},     // buy zone lower boundary
		{-10, model.Sell},  // downtrend boundary
		{-9.9, model.Hold}, // just above downtrend
		{5, model.Buy},
		{25, model.Hold},
		{-50, model.Sell},
	}
	for _, tt := range tests {
		got, _ := e.Classify(tt.vsAvg)
		if got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.vsAvg, got, tt.want)
		}
	}
}

func TestClassify_InsufficientHistory(t *testing.T) {
	e := NewEngine(DefaultThresholds(), StrategyWeighted)
	got, reason := e.Classify(math.NaN())
	if got != model.Hold {
		t.Errorf("Classify(NaN) = %s, want HOLD", got)
	}
	if reason != "insufficient history" {
		t.Errorf("reason = %q, want %q", reason, "insufficient history")
	}
}

func TestSignal_InsufficientHistory(t *testing.T) {
	e := NewEngine(DefaultThresholds(), StrategyWeighted)
	s := Recompute(seriesOf(100, 101, 102), 150)
	sig := e.Signal(s)
	if sig.Classification != model.Hold {
		t.Errorf("classification = %s, want HOLD", sig.Classification)
	}
	if sig.HasAverage() {
		t.Error("expected absent vs-average for short series")
	}
	if sig.Score != 0 {
		t.Errorf("score = %v, want 0", sig.Score)
	}
}

func TestSignal_BuyFromSeries(t *testing.T) {
	// 10 closes at 100, latest at 105: 5% above the 10-day average-ish.
	closes := make([]float64, 11)
	for i := range closes {
		closes[i] = 100
	}
	closes[10] = 105
	e := NewEngine(DefaultThresholds(), StrategyWeighted)
	sig := e.Signal(Recompute(seriesOf(closes...), 10))
	if sig.Classification != model.Buy {
		t.Fatalf("classification = %s (vs=%.2f), want BUY", sig.Classification, sig.VsAveragePct)
	}
	if sig.Score <= 0 || sig.Score > 100 {
		t.Errorf("score = %v, want in (0, 100]", sig.Score)
	}
}

func TestScore_Bounds(t *testing.T) {
	e := NewEngine(DefaultThresholds(), StrategyWeighted)
	for _, vs := range []float64{-80, -10, 0, 5, 15, 40, 200} {
		for _, chg := range []float64{-30, -2, 0, 2, 30, math.NaN()} {
			class, _ := e.Classify(vs)
			got := e.score(class, vs, chg)
			if got < 0 || got > 100 {
				t.Errorf("score(vs=%v, chg=%v) = %v, out of [0, 100]", vs, chg, got)
			}
		}
	}
}

func TestScore_SellUrgencyMonotonic(t *testing.T) {
	e := NewEngine(DefaultThresholds(), StrategyWeighted)
	prev := -1.0
	// Urgency must not decrease as price stretches further past overbought.
	for _, vs := range []float64{40, 42, 45, 50, 55} {
		got := e.score(model.Sell, vs, 0)
		if got < prev {
			t.Errorf("score(vs=%v) = %v, decreased from %v", vs, got, prev)
		}
		prev = got
	}
	prev = -1.0
	// And as price falls further below the downtrend threshold.
	for _, vs := range []float64{-10, -12, -15, -20, -30} {
		got := e.score(model.Sell, vs, 0)
		if got < prev {
			t.Errorf("score(vs=%v) = %v, decreased from %v", vs, got, prev)
		}
		prev = got
	}
}

func TestScore_ThresholdStrategy(t *testing.T) {
	e := NewEngine(DefaultThresholds(), StrategyThreshold)
	if got := e.score(model.Buy, 5, 1); got != 100 {
		t.Errorf("threshold BUY score = %v, want 100", got)
	}
	if got := e.score(model.Hold, 25, 1); got != 0 {
		t.Errorf("threshold HOLD score = %v, want 0", got)
	}
}
