package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Client is a single upstream data source. Given a symbol and an inclusive
// date range it returns an ordered close-price series or fails with *Error.
type Client interface {
	// Fetch returns points within [start, end], sorted ascending by date,
	// with no duplicate dates.
	Fetch(ctx context.Context, symbol string, start, end model.Date) (model.FetchResult, error)
	Name() string
}

// checkArgs enforces the fetch contract: non-empty upper-case ticker and
// start <= end.
func checkArgs(symbol string, start, end model.Date) error {
	if symbol == "" || symbol != strings.ToUpper(symbol) {
		return fmt.Errorf("symbol must be a non-empty upper-case ticker, got %q", symbol)
	}
	if start.After(end) {
		return fmt.Errorf("start %s is after end %s", start, end)
	}
	return nil
}

// normalize sorts points ascending, drops duplicate dates (first wins) and
// clips to the requested range. Providers call it before returning so every
// client honors the same guarantees.
func normalize(points []model.PricePoint, start, end model.Date) []model.PricePoint {
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	out := points[:0]
	var last model.Date
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		if !last.IsZero() && p.Date == last {
			continue
		}
		out = append(out, p)
		last = p.Date
	}
	return out
}
