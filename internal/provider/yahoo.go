package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Yahoo fetches daily closes from the Yahoo Finance v8 chart API. No key
// required, but a shorter reliable lookback than Stooq; last in the
// default chain.
type Yahoo struct {
	BaseURL string
	Client  *http.Client
}

// NewYahoo creates a Yahoo Finance client with the production endpoint.
func NewYahoo() *Yahoo {
	return &Yahoo{
		BaseURL: "https://query1.finance.yahoo.com",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (y *Yahoo) Name() string { return "yahoo" }

// yahooChart is the v8 chart response. Close values are interface{} because
// the API emits nulls for market holidays.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func (y *Yahoo) Fetch(ctx context.Context, symbol string, start, end model.Date) (model.FetchResult, error) {
	if err := checkArgs(symbol, start, end); err != nil {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindParse, Err: err}
	}

	// period2 is exclusive in practice; push it one day past end.
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		y.BaseURL, url.PathEscape(symbol), dateUnix(start), dateUnix(end.AddDays(1)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindNetwork, Err: err}
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.Client.Do(req)
	if err != nil {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindRateLimit,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindNetwork,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var chart yahooChart
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindParse, Err: err}
	}
	if chart.Chart.Error != nil {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindNoData,
			Err: fmt.Errorf("api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindNoData,
			Err: fmt.Errorf("no data returned for %s", symbol)}
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		close, ok := toFloat(quote.Close[i])
		if !ok || close == 0 {
			continue // null bars (holidays etc.)
		}
		t := time.Unix(ts, 0).UTC()
		points = append(points, model.PricePoint{
			Date:  model.NewDate(t.Date()),
			Close: close,
		})
	}
	if len(points) == 0 {
		return model.FetchResult{}, &Error{Provider: y.Name(), Kind: KindNoData,
			Err: fmt.Errorf("only null bars for %s", symbol)}
	}

	return model.FetchResult{Points: normalize(points, start, end), Provider: y.Name()}, nil
}

func dateUnix(d model.Date) int64 {
	t, _ := time.Parse(model.DateFormat, d.String())
	return t.Unix()
}
