package recorder

import "time"

// SignalSnapshot is one symbol's derived state at the end of a run.
type SignalSnapshot struct {
	Symbol         string
	Price          float64
	RollingAvg     float64 // NaN when not yet computable
	VsAveragePct   float64 // NaN when not yet computable
	DailyChangePct float64 // NaN for a single-point series
	Classification string
	Score          float64
}

// FetchRecord is an audit row for one provider-chain fetch.
type FetchRecord struct {
	Symbol   string
	Provider string // empty when every provider exhausted
	Points   int
	Duration time.Duration
}

// Recorder persists historical run data for later analysis.
type Recorder interface {
	RecordSignal(snap *SignalSnapshot) error
	RecordFetch(rec *FetchRecord) error
	Close() error
}
