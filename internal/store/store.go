// Package store persists one CSV series per symbol under a data directory.
//
// The persisted contract is one record per trading day with columns
// Date,Close,Rolling_Avg_<window>d; the window size is encoded in the
// rolling-average header so series computed under different windows can
// coexist and stay backward-readable.
package store

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yanivvi/stocksmania/internal/model"
)

const rollingPrefix = "Rolling_Avg_"

// Store loads and saves symbol series as CSV files.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the CSV path for a symbol.
func (s *Store) Path(symbol string) string {
	return filepath.Join(s.dir, strings.ToUpper(symbol)+"_prices.csv")
}

// Load reads a symbol's series. A missing file is not an error: it returns
// an empty series, the normal state for a new symbol. The rolling-average
// column is matched by prefix so a file written under a different window
// size still loads; derived columns are recomputed downstream anyway.
func (s *Store) Load(symbol string) (model.Series, error) {
	symbol = strings.ToUpper(symbol)
	out := model.Series{Symbol: symbol}

	f, err := os.Open(s.Path(symbol))
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, fmt.Errorf("load %s: %w", symbol, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return out, fmt.Errorf("load %s: %w", symbol, err)
	}
	if len(records) == 0 {
		return out, nil
	}

	dateIdx, closeIdx, avgIdx := -1, -1, -1
	for i, col := range records[0] {
		switch {
		case col == "Date":
			dateIdx = i
		case col == "Close":
			closeIdx = i
		case strings.HasPrefix(col, rollingPrefix):
			avgIdx = i
			if w, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(col, rollingPrefix), "d")); err == nil {
				out.Window = w
			}
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return out, fmt.Errorf("load %s: missing Date/Close columns", symbol)
	}

	for _, rec := range records[1:] {
		if len(rec) <= dateIdx || len(rec) <= closeIdx {
			return out, fmt.Errorf("load %s: short record %v", symbol, rec)
		}
		d, err := model.ParseDate(rec[dateIdx])
		if err != nil {
			return out, fmt.Errorf("load %s: %w", symbol, err)
		}
		close, err := strconv.ParseFloat(rec[closeIdx], 64)
		if err != nil {
			return out, fmt.Errorf("load %s: bad close %q: %w", symbol, rec[closeIdx], err)
		}
		out.Points = append(out.Points, model.PricePoint{Date: d, Close: close})

		avg := math.NaN()
		if avgIdx >= 0 && avgIdx < len(rec) && rec[avgIdx] != "" {
			if v, err := strconv.ParseFloat(rec[avgIdx], 64); err == nil {
				avg = v
			}
		}
		out.RollingAvg = append(out.RollingAvg, avg)
	}
	return out, nil
}

// Save persists the series, replacing any prior state atomically: the CSV
// is written to a temp file in the same directory and renamed into place,
// so a partially written file is never observable as the current state.
func (s *Store) Save(series model.Series) error {
	if series.Symbol == "" {
		return fmt.Errorf("save: series has no symbol")
	}
	if series.Window <= 0 {
		return fmt.Errorf("save %s: series has no window, recompute first", series.Symbol)
	}

	tmp, err := os.CreateTemp(s.dir, series.Symbol+"_prices-*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", series.Symbol, err)
	}
	defer os.Remove(tmp.Name()) // no-op after successful rename

	w := csv.NewWriter(tmp)
	header := []string{"Date", "Close", fmt.Sprintf("%s%dd", rollingPrefix, series.Window)}
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", series.Symbol, err)
	}
	for i, p := range series.Points {
		avg := ""
		if i < len(series.RollingAvg) && !math.IsNaN(series.RollingAvg[i]) {
			avg = floatStr(series.RollingAvg[i])
		}
		if err := w.Write([]string{p.Date.String(), floatStr(p.Close), avg}); err != nil {
			tmp.Close()
			return fmt.Errorf("save %s: %w", series.Symbol, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("save %s: %w", series.Symbol, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", series.Symbol, err)
	}
	if err := os.Rename(tmp.Name(), s.Path(series.Symbol)); err != nil {
		return fmt.Errorf("save %s: %w", series.Symbol, err)
	}
	return nil
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
