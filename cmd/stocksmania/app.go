package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yanivvi/stocksmania/internal/config"
	"github.com/yanivvi/stocksmania/internal/metrics"
	"github.com/yanivvi/stocksmania/internal/provider"
	"github.com/yanivvi/stocksmania/internal/recorder"
	"github.com/yanivvi/stocksmania/internal/store"
	"github.com/yanivvi/stocksmania/internal/tracker"
)

// app bundles the wired pipeline shared by every subcommand.
type app struct {
	cfg     *config.Config
	store   *store.Store
	tracker *tracker.Tracker
	rec     recorder.Recorder
}

// newApp loads config, applies per-command overrides, and wires the
// provider chain, store, engine, recorder and tracker.
func newApp(symbols string, window int, start string) (*app, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if symbols != "" {
		cfg.Symbols = strings.Split(symbols, ",")
	}
	if window > 0 {
		cfg.RollingWindow = window
	}
	if start != "" {
		cfg.HistoricalStart = start
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	st, err := store.New(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
		} else {
			rec = sr
		}
	}

	engine := metrics.NewEngine(metrics.Thresholds{
		Overbought: cfg.Signals.Overbought,
		SellBelow:  cfg.Signals.SellBelow,
		BuyZoneMin: cfg.Signals.BuyZoneMin,
		BuyZoneMax: cfg.Signals.BuyZoneMax,
	}, metrics.Strategy(cfg.Signals.Scoring))

	tr := tracker.New(buildChain(cfg), st, engine, rec, cfg.RollingWindow, cfg.StartDate())
	return &app{cfg: cfg, store: st, tracker: tr, rec: rec}, nil
}

func (a *app) close() {
	if err := a.rec.Close(); err != nil {
		log.Printf("[WARN] close recorder: %v", err)
	}
}

// buildChain assembles the provider fallback chain in the configured
// priority order. Key-gated providers are dropped when no key is present;
// the final fallback gets the larger retry budget.
func buildChain(cfg *config.Config) *provider.Chain {
	var clients []provider.Client
	for _, name := range cfg.Providers.Order {
		switch name {
		case "stooq":
			clients = append(clients, provider.NewStooq())
		case "alphavantage":
			if cfg.Providers.AlphaVantageKey == "" {
				log.Println("[INFO] no Alpha Vantage key, skipping provider")
				continue
			}
			clients = append(clients, provider.NewAlphaVantage(cfg.Providers.AlphaVantageKey))
		case "yahoo":
			clients = append(clients, provider.NewYahoo())
		}
	}

	entries := make([]provider.Entry, len(clients))
	for i, c := range clients {
		retries := cfg.Providers.MaxRetries
		if i == len(clients)-1 {
			retries = cfg.Providers.FinalMaxRetries
		}
		entries[i] = provider.Entry{Client: c, MaxRetries: retries}
	}
	return provider.NewChain(time.Duration(cfg.Providers.RetryDelaySeconds)*time.Second, entries...)
}
