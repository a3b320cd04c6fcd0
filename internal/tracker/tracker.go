// Package tracker runs the per-symbol fetch/merge/persist pipeline.
package tracker

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/yanivvi/stocksmania/internal/metrics"
	"github.com/yanivvi/stocksmania/internal/model"
	"github.com/yanivvi/stocksmania/internal/recorder"
	"github.com/yanivvi/stocksmania/internal/series"
	"github.com/yanivvi/stocksmania/internal/store"
)

// Fetcher is the provider-chain contract the tracker depends on. It never
// fails; an empty result means "no update available".
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, start, end model.Date) model.FetchResult
}

// Tracker orchestrates load -> fetch -> merge -> recompute -> save for each
// symbol. Each symbol's store sequence is serialized inside its own
// pipeline; distinct symbols may run concurrently.
type Tracker struct {
	fetcher Fetcher
	store   *store.Store
	engine  metrics.Engine
	rec     recorder.Recorder
	window  int
	start   model.Date
}

// New wires a tracker. window must be positive; start is the historical
// fetch start date.
func New(f Fetcher, st *store.Store, eng metrics.Engine, rec recorder.Recorder, window int, start model.Date) *Tracker {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Tracker{fetcher: f, store: st, engine: eng, rec: rec, window: window, start: start}
}

// Window returns the configured rolling window size.
func (t *Tracker) Window() int { return t.window }

// Historical fetches the full history for a symbol from the configured
// start date, merges it with whatever is already stored, and persists the
// result. An empty fetch is a normal outcome and leaves the store alone.
func (t *Tracker) Historical(ctx context.Context, symbol string) (model.Series, error) {
	existing, err := t.store.Load(symbol)
	if err != nil {
		return model.Series{}, err
	}

	log.Printf("[INFO] fetching %s history from %s", symbol, t.start)
	res := t.fetch(ctx, symbol, t.start, model.Today())
	if res.Empty() {
		log.Printf("[WARN] no data found for %s", symbol)
		return metrics.Recompute(existing, t.window), nil
	}

	merged, changed := series.Merge(existing, res, t.window)
	if !changed {
		return metrics.Recompute(existing, t.window), nil
	}
	if err := t.store.Save(merged); err != nil {
		return model.Series{}, err
	}
	log.Printf("[INFO] saved %d records for %s", merged.Len(), symbol)
	return merged, nil
}

// Update appends the latest trading day to a symbol's stored series. With
// no existing data it falls back to a full historical fetch. A fetched
// date that is already recorded is a genuine no-op: nothing is rewritten.
// The returned series always carries derived columns recomputed under the
// current window; changed reports whether the store was touched.
func (t *Tracker) Update(ctx context.Context, symbol string) (model.Series, bool, error) {
	existing, err := t.store.Load(symbol)
	if err != nil {
		return model.Series{}, false, err
	}
	if existing.Empty() {
		log.Printf("[INFO] no existing data for %s, performing full historical fetch", symbol)
		s, err := t.Historical(ctx, symbol)
		return s, err == nil && !s.Empty(), err
	}

	// Last 7 calendar days cover weekends and holidays around the most
	// recent trading day.
	end := model.Today()
	res := t.fetch(ctx, symbol, end.AddDays(-7), end)
	if res.Empty() {
		log.Printf("[WARN] no recent data found for %s", symbol)
		return metrics.Recompute(existing, t.window), false, nil
	}

	// Only the most recent trading day participates in a daily update.
	res.Points = res.Points[len(res.Points)-1:]

	merged, changed := series.Merge(existing, res, t.window)
	if !changed {
		log.Printf("[INFO] %s: data for %s already exists", symbol, res.Points[0].Date)
		return metrics.Recompute(existing, t.window), false, nil
	}
	if err := t.store.Save(merged); err != nil {
		return model.Series{}, false, err
	}
	log.Printf("[INFO] %s: added data for %s", symbol, res.Points[0].Date)
	return merged, true, nil
}

// RunInitial runs the historical fetch for all symbols, one pipeline per
// symbol, and returns the non-empty results. A failure aborts only that
// symbol's pipeline.
func (t *Tracker) RunInitial(ctx context.Context, symbols []string) map[string]model.Series {
	return t.runAll(symbols, func(symbol string) (model.Series, error) {
		return t.Historical(ctx, symbol)
	})
}

// RunDaily runs the daily update for all symbols, one pipeline per symbol.
func (t *Tracker) RunDaily(ctx context.Context, symbols []string) map[string]model.Series {
	return t.runAll(symbols, func(symbol string) (model.Series, error) {
		s, _, err := t.Update(ctx, symbol)
		return s, err
	})
}

func (t *Tracker) runAll(symbols []string, run func(symbol string) (model.Series, error)) map[string]model.Series {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]model.Series, len(symbols))
	)
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			s, err := run(symbol)
			if err != nil {
				log.Printf("[ERROR] %s pipeline: %v", symbol, err)
				return
			}
			if s.Empty() {
				return
			}
			mu.Lock()
			results[symbol] = s
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()
	return results
}

// Signals derives one signal per tracked series, in stable symbol order,
// recording each snapshot. Aggregations over the result (top gainer,
// BUY/SELL counts) therefore see every finished pipeline.
func (t *Tracker) Signals(results map[string]model.Series) []model.Signal {
	symbols := make([]string, 0, len(results))
	for s := range results {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	signals := make([]model.Signal, 0, len(symbols))
	for _, symbol := range symbols {
		s := results[symbol]
		sig := t.engine.Signal(s)
		signals = append(signals, sig)

		if err := t.rec.RecordSignal(&recorder.SignalSnapshot{
			Symbol:         sig.Symbol,
			Price:          sig.Price,
			RollingAvg:     s.LatestRollingAvg(),
			VsAveragePct:   sig.VsAveragePct,
			DailyChangePct: sig.DailyChangePct,
			Classification: string(sig.Classification),
			Score:          sig.Score,
		}); err != nil {
			log.Printf("[ERROR] record signal %s: %v", sig.Symbol, err)
		}
	}
	return signals
}

func (t *Tracker) fetch(ctx context.Context, symbol string, start, end model.Date) model.FetchResult {
	began := time.Now()
	res := t.fetcher.Fetch(ctx, symbol, start, end)
	if err := t.rec.RecordFetch(&recorder.FetchRecord{
		Symbol:   symbol,
		Provider: res.Provider,
		Points:   len(res.Points),
		Duration: time.Since(began),
	}); err != nil {
		log.Printf("[ERROR] record fetch %s: %v", symbol, err)
	}
	return res
}
