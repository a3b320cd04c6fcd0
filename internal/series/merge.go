// Package series combines fetched price fragments into persisted series.
package series

import (
	"sort"

	"github.com/yanivvi/stocksmania/internal/metrics"
	"github.com/yanivvi/stocksmania/internal/model"
)

// Merge combines an existing series with a fetched fragment. Points whose
// dates are already recorded are dropped silently: historical closes are
// immutable once recorded. The merged sequence is re-sorted ascending and
// all derived columns are recomputed over the entire sequence under the
// given window, since new points invalidate averages inside the window
// radius and the window itself can change between runs.
//
// When the fragment is empty or contributes zero new dates, Merge returns
// the existing series untouched and changed=false, so callers can skip a
// spurious rewrite.
func Merge(existing model.Series, fetched model.FetchResult, window int) (merged model.Series, changed bool) {
	if fetched.Empty() {
		return existing, false
	}

	seen := make(map[model.Date]bool, existing.Len())
	for _, p := range existing.Points {
		seen[p.Date] = true
	}

	var added []model.PricePoint
	for _, p := range fetched.Points {
		if seen[p.Date] {
			continue
		}
		seen[p.Date] = true
		added = append(added, p)
	}
	if len(added) == 0 {
		return existing, false
	}

	combined := make([]model.PricePoint, 0, existing.Len()+len(added))
	combined = append(combined, existing.Points...)
	combined = append(combined, added...)
	sort.Slice(combined, func(i, j int) bool { return combined[i].Date.Before(combined[j].Date) })

	merged = metrics.Recompute(model.Series{Symbol: existing.Symbol, Points: combined}, window)
	return merged, true
}
