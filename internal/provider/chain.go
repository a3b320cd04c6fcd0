package provider

import (
	"context"
	"log"
	"time"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Entry is one provider in a Chain with its per-call retry budget.
type Entry struct {
	Client     Client
	MaxRetries int
}

// Chain tries providers in priority order with per-provider retries and a
// fixed inter-attempt delay. It never fails: when every provider exhausts,
// callers get an empty FetchResult meaning "no update available".
type Chain struct {
	entries    []Entry
	retryDelay time.Duration
}

// NewChain builds a chain over the given entries. Entries with a
// non-positive retry budget get one attempt.
func NewChain(retryDelay time.Duration, entries ...Entry) *Chain {
	return &Chain{entries: entries, retryDelay: retryDelay}
}

// Fetch walks the chain and returns the first non-empty result. A provider
// reporting a rate limit is not retried again within this call; the chain
// moves on to the next provider. Context cancellation cuts retry delays
// short and returns whatever was gathered so far (nothing).
func (c *Chain) Fetch(ctx context.Context, symbol string, start, end model.Date) model.FetchResult {
	for _, e := range c.entries {
		attempts := e.MaxRetries
		if attempts < 1 {
			attempts = 1
		}
		for attempt := 1; attempt <= attempts; attempt++ {
			res, err := e.Client.Fetch(ctx, symbol, start, end)
			if err == nil && !res.Empty() {
				log.Printf("[INFO] %s: got %d points from %s", symbol, len(res.Points), e.Client.Name())
				return res
			}
			if err != nil {
				log.Printf("[WARN] %s: provider %s attempt %d/%d: %v",
					symbol, e.Client.Name(), attempt, attempts, err)
				if IsRateLimit(err) {
					// Pointless to hammer a throttled source; skip its
					// remaining retries but keep the rest of the chain.
					break
				}
			}
			if attempt < attempts {
				if !sleepCtx(ctx, c.retryDelay) {
					return model.FetchResult{}
				}
			}
		}
		if ctx.Err() != nil {
			return model.FetchResult{}
		}
	}
	log.Printf("[WARN] %s: all providers exhausted, no data", symbol)
	return model.FetchResult{}
}

// sleepCtx waits for d or until ctx is done; it reports whether the full
// delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
