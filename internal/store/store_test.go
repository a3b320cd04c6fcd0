package store

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yanivvi/stocksmania/internal/metrics"
	"github.com/yanivvi/stocksmania/internal/model"
)

func testSeries(t *testing.T, window int, closes ...float64) model.Series {
	t.Helper()
	pts := make([]model.PricePoint, len(closes))
	d := model.MustParseDate("2025-03-03")
	for i, c := range closes {
		pts[i] = model.PricePoint{Date: d.AddDays(i), Close: c}
	}
	return metrics.Recompute(model.Series{Symbol: "NVDA", Points: pts}, window)
}

func TestLoad_MissingFile(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s, err := st.Load("NVDA")
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if !s.Empty() {
		t.Errorf("expected empty series, got %d points", s.Len())
	}
	if s.Symbol != "NVDA" {
		t.Errorf("symbol = %q, want NVDA", s.Symbol)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	in := testSeries(t, 3, 100, 101, 102, 103, 104)
	if err := st.Save(in); err != nil {
		t.Fatal(err)
	}

	out, err := st.Load("nvda") // case-insensitive lookup
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("loaded %d points, want %d", out.Len(), in.Len())
	}
	if out.Window != 3 {
		t.Errorf("window = %d, want 3", out.Window)
	}
	for i := range in.Points {
		if out.Points[i] != in.Points[i] {
			t.Errorf("point %d = %+v, want %+v", i, out.Points[i], in.Points[i])
		}
		switch {
		case math.IsNaN(in.RollingAvg[i]):
			if !math.IsNaN(out.RollingAvg[i]) {
				t.Errorf("avg %d = %v, want NaN", i, out.RollingAvg[i])
			}
		case math.Abs(out.RollingAvg[i]-in.RollingAvg[i]) > 1e-9:
			t.Errorf("avg %d = %v, want %v", i, out.RollingAvg[i], in.RollingAvg[i])
		}
	}
}

func TestLoad_DifferentWindowHeader(t *testing.T) {
	dir := t.TempDir()
	st, _ := New(dir)
	if err := st.Save(testSeries(t, 150, 100, 101, 102)); err != nil {
		t.Fatal(err)
	}
	s, err := st.Load("NVDA")
	if err != nil {
		t.Fatal(err)
	}
	// The stored window travels in the header; a caller recomputes under
	// its own window afterwards.
	if s.Window != 150 {
		t.Errorf("window = %d, want 150", s.Window)
	}
	if s.Len() != 3 {
		t.Errorf("points = %d, want 3", s.Len())
	}
}

func TestSave_ReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	st, _ := New(dir)
	if err := st.Save(testSeries(t, 2, 100, 101)); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(testSeries(t, 2, 100, 101, 102, 103)); err != nil {
		t.Fatal(err)
	}

	s, err := st.Load("NVDA")
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 {
		t.Errorf("points after replace = %d, want 4", s.Len())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSave_RequiresWindow(t *testing.T) {
	st, _ := New(t.TempDir())
	s := model.Series{
		Symbol: "NVDA",
		Points: []model.PricePoint{{Date: model.MustParseDate("2025-03-03"), Close: 1}},
	}
	if err := st.Save(s); err == nil {
		t.Error("Save without recomputed window succeeded, want error")
	}
}

func TestLoad_BadClose(t *testing.T) {
	dir := t.TempDir()
	st, _ := New(dir)
	csv := "Date,Close,Rolling_Avg_150d\n2025-03-03,not-a-number,\n"
	if err := os.WriteFile(filepath.Join(dir, "NVDA_prices.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load("NVDA"); err == nil {
		t.Error("Load with corrupt close succeeded, want error")
	}
}

func TestLoad_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	st, _ := New(dir)
	csv := "Timestamp,Price\n2025-03-03,100\n"
	if err := os.WriteFile(filepath.Join(dir, "NVDA_prices.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load("NVDA"); err == nil {
		t.Error("Load without Date/Close columns succeeded, want error")
	}
}

func TestPath(t *testing.T) {
	dir := t.TempDir()
	st, _ := New(dir)
	want := filepath.Join(dir, "NVDA_prices.csv")
	if got := st.Path("nvda"); got != want {
		t.Errorf("Path = %q, want %q", got, want)
	}
}
