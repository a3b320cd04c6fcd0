package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yanivvi/stocksmania/internal/model"
)

// AlphaVantage fetches daily closes from the Alpha Vantage JSON API.
// Requires a free API key; the free tier throttles at 25 requests/day.
type AlphaVantage struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantage creates an Alpha Vantage client with the production endpoint.
func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{
		BaseURL: "https://www.alphavantage.co",
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (a *AlphaVantage) Name() string { return "alphavantage" }

// avPayload is the TIME_SERIES_DAILY response shape. Alpha Vantage reports
// throttling in-band with HTTP 200 and a Note/Information field instead of
// the time series, so those fields are the structured rate-limit signal.
type avPayload struct {
	TimeSeries map[string]struct {
		Close string `json:"4. close"`
	} `json:"Time Series (Daily)"`
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (a *AlphaVantage) Fetch(ctx context.Context, symbol string, start, end model.Date) (model.FetchResult, error) {
	if err := checkArgs(symbol, start, end); err != nil {
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindParse, Err: err}
	}

	q := url.Values{}
	q.Set("function", "TIME_SERIES_DAILY")
	q.Set("symbol", symbol)
	q.Set("apikey", a.APIKey)
	q.Set("outputsize", "full")
	q.Set("datatype", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/query?"+q.Encode(), nil)
	if err != nil {
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindNetwork, Err: err}
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindNetwork,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var payload avPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindParse, Err: err}
	}
	if len(payload.TimeSeries) == 0 {
		if payload.Note != "" || payload.Information != "" {
			return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindRateLimit,
				Err: fmt.Errorf("request throttled")}
		}
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindNoData,
			Err: fmt.Errorf("no time series for %s: %s", symbol, payload.ErrorMessage)}
	}

	points := make([]model.PricePoint, 0, len(payload.TimeSeries))
	for dateStr, values := range payload.TimeSeries {
		d, err := model.ParseDate(dateStr)
		if err != nil {
			return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindParse, Err: err}
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		close, err := strconv.ParseFloat(values.Close, 64)
		if err != nil {
			return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindParse, Err: err}
		}
		points = append(points, model.PricePoint{Date: d, Close: close})
	}
	if len(points) == 0 {
		return model.FetchResult{}, &Error{Provider: a.Name(), Kind: KindNoData,
			Err: fmt.Errorf("no points in range for %s", symbol)}
	}

	return model.FetchResult{Points: normalize(points, start, end), Provider: a.Name()}, nil
}
