package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Stooq fetches daily closes from the Stooq CSV download endpoint.
// Free, no API key, full history; first choice in the default chain.
type Stooq struct {
	BaseURL string
	Client  *http.Client
}

// NewStooq creates a Stooq client with the production endpoint.
func NewStooq() *Stooq {
	return &Stooq{
		BaseURL: "https://stooq.com",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *Stooq) Name() string { return "stooq" }

func (s *Stooq) Fetch(ctx context.Context, symbol string, start, end model.Date) (model.FetchResult, error) {
	if err := checkArgs(symbol, start, end); err != nil {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindParse, Err: err}
	}

	// Stooq addresses US stocks with a ".us" suffix.
	u := fmt.Sprintf("%s/q/d/l/?s=%s.us&d1=%s&d2=%s&i=d",
		s.BaseURL, strings.ToLower(symbol), start.Format("20060102"), end.Format("20060102"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindNetwork, Err: err}
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindNetwork,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindParse, Err: err}
	}
	// Unknown symbols come back as a one-line "No data" body, not an HTTP error.
	if len(records) < 2 {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindNoData,
			Err: fmt.Errorf("empty payload for %s", symbol)}
	}

	dateIdx, closeIdx := -1, -1
	for i, col := range records[0] {
		switch col {
		case "Date":
			dateIdx = i
		case "Close":
			closeIdx = i
		}
	}
	if dateIdx < 0 || closeIdx < 0 {
		return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindNoData,
			Err: fmt.Errorf("missing Date/Close columns for %s", symbol)}
	}

	points := make([]model.PricePoint, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= dateIdx || len(rec) <= closeIdx {
			continue
		}
		d, err := model.ParseDate(rec[dateIdx])
		if err != nil {
			return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindParse, Err: err}
		}
		close, err := strconv.ParseFloat(rec[closeIdx], 64)
		if err != nil {
			return model.FetchResult{}, &Error{Provider: s.Name(), Kind: KindParse, Err: err}
		}
		points = append(points, model.PricePoint{Date: d, Close: close})
	}

	return model.FetchResult{Points: normalize(points, start, end), Provider: s.Name()}, nil
}
