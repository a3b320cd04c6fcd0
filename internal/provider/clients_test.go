package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yanivvi/stocksmania/internal/model"
)

func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("error %v is not a provider error", err)
	}
	return pe.Kind
}

func TestStooq_ParsesCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("s"); got != "nvda.us" {
			t.Errorf("symbol query = %q, want nvda.us", got)
		}
		fmt.Fprint(w, "Date,Open,High,Low,Close,Volume\n"+
			"2025-01-03,101,103,100,102,1000\n"+
			"2025-01-02,99,101,98,100,1000\n")
	}))
	defer srv.Close()

	s := &Stooq{BaseURL: srv.URL, Client: srv.Client()}
	res, err := s.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(res.Points))
	}
	// Rows arrive newest-first; results must be ascending.
	if res.Points[0].Date != model.MustParseDate("2025-01-02") || res.Points[0].Close != 100 {
		t.Errorf("first point = %+v", res.Points[0])
	}
	if res.Provider != "stooq" {
		t.Errorf("provider = %q, want stooq", res.Provider)
	}
}

func TestStooq_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "No data\n")
	}))
	defer srv.Close()

	s := &Stooq{BaseURL: srv.URL, Client: srv.Client()}
	_, err := s.Fetch(context.Background(), "NOSUCH",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if kindOf(t, err) != KindNoData {
		t.Errorf("kind = %v, want no-data", kindOf(t, err))
	}
}

func TestStooq_ClipsToRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Date,Close\n"+
			"2024-12-31,90\n"+
			"2025-01-02,100\n"+
			"2025-02-01,110\n")
	}))
	defer srv.Close()

	s := &Stooq{BaseURL: srv.URL, Client: srv.Client()}
	res, err := s.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != 1 || res.Points[0].Close != 100 {
		t.Errorf("points = %+v, want only the in-range row", res.Points)
	}
}

func TestAlphaVantage_ParsesSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("apikey = %q, want test-key", got)
		}
		fmt.Fprint(w, `{"Time Series (Daily)": {
			"2025-01-03": {"4. close": "102.5"},
			"2025-01-02": {"4. close": "100.0"},
			"2024-06-01": {"4. close": "80.0"}
		}}`)
	}))
	defer srv.Close()

	a := &AlphaVantage{BaseURL: srv.URL, APIKey: "test-key", Client: srv.Client()}
	res, err := a.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != 2 {
		t.Fatalf("points = %d, want 2 (out-of-range row dropped)", len(res.Points))
	}
	if res.Points[1].Close != 102.5 {
		t.Errorf("latest close = %v, want 102.5", res.Points[1].Close)
	}
}

func TestAlphaVantage_RateLimitNote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`)
	}))
	defer srv.Close()

	a := &AlphaVantage{BaseURL: srv.URL, APIKey: "k", Client: srv.Client()}
	_, err := a.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if !IsRateLimit(err) {
		t.Errorf("error = %v, want rate-limit kind", err)
	}
}

func TestAlphaVantage_InformationFieldIsRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Information": "25 requests per day exceeded"}`)
	}))
	defer srv.Close()

	a := &AlphaVantage{BaseURL: srv.URL, APIKey: "k", Client: srv.Client()}
	_, err := a.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if !IsRateLimit(err) {
		t.Errorf("error = %v, want rate-limit kind", err)
	}
}

func TestAlphaVantage_UnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Error Message": "Invalid API call."}`)
	}))
	defer srv.Close()

	a := &AlphaVantage{BaseURL: srv.URL, APIKey: "k", Client: srv.Client()}
	_, err := a.Fetch(context.Background(), "NOSUCH",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if kindOf(t, err) != KindNoData {
		t.Errorf("kind = %v, want no-data", kindOf(t, err))
	}
}

func TestYahoo_SkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 2025-01-02 and 2025-01-06 midnight UTC, null in between.
		fmt.Fprint(w, `{"chart":{"result":[{
			"timestamp":[1735776000,1736035200,1736121600],
			"indicators":{"quote":[{"close":[100.5,null,102.25]}]}
		}],"error":null}}`)
	}))
	defer srv.Close()

	y := &Yahoo{BaseURL: srv.URL, Client: srv.Client()}
	res, err := y.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Points) != 2 {
		t.Fatalf("points = %d, want 2 (null bar dropped)", len(res.Points))
	}
	for _, p := range res.Points {
		if p.Close == 0 {
			t.Errorf("zero close slipped through: %+v", p)
		}
	}
}

func TestYahoo_TooManyRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	y := &Yahoo{BaseURL: srv.URL, Client: srv.Client()}
	_, err := y.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if !IsRateLimit(err) {
		t.Errorf("error = %v, want rate-limit kind", err)
	}
}

func TestYahoo_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	y := &Yahoo{BaseURL: srv.URL, Client: srv.Client()}
	_, err := y.Fetch(context.Background(), "NOSUCH",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if kindOf(t, err) != KindNoData {
		t.Errorf("kind = %v, want no-data", kindOf(t, err))
	}
}

func TestFetch_BadArguments(t *testing.T) {
	s := NewStooq()
	_, err := s.Fetch(context.Background(), "",
		model.MustParseDate("2025-01-01"), model.MustParseDate("2025-01-31"))
	if err == nil {
		t.Error("empty symbol accepted")
	}
	_, err = s.Fetch(context.Background(), "NVDA",
		model.MustParseDate("2025-02-01"), model.MustParseDate("2025-01-01"))
	if err == nil {
		t.Error("inverted range accepted")
	}
}
