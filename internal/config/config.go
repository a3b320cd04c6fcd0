package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yanivvi/stocksmania/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Symbols         []string `yaml:"symbols"`
	RollingWindow   int      `yaml:"rolling_window"`
	HistoricalStart string   `yaml:"historical_start"`
	DataDir         string   `yaml:"data_dir"`
	Holdings        []string `yaml:"holdings"`

	Providers struct {
		Order             []string `yaml:"order"`
		AlphaVantageKey   string   `yaml:"alpha_vantage_key"`
		MaxRetries        int      `yaml:"max_retries"`
		FinalMaxRetries   int      `yaml:"final_max_retries"`
		RetryDelaySeconds int      `yaml:"retry_delay_seconds"`
	} `yaml:"providers"`

	Signals struct {
		Overbought float64 `yaml:"overbought"`
		SellBelow  float64 `yaml:"sell_below"`
		BuyZoneMin float64 `yaml:"buy_zone_min"`
		BuyZoneMax float64 `yaml:"buy_zone_max"`
		Scoring    string  `yaml:"scoring"` // "threshold" or "weighted"
	} `yaml:"signals"`

	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error: everything can
// be configured through the environment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCK_SYMBOLS"); v != "" {
		cfg.Symbols = splitList(v)
	}
	if v := os.Getenv("MY_HOLDINGS"); v != "" {
		cfg.Holdings = splitList(v)
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.Providers.AlphaVantageKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ROLLING_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RollingWindow = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"NVDA"}
	}
	if c.RollingWindow == 0 {
		c.RollingWindow = 150
	}
	if c.HistoricalStart == "" {
		c.HistoricalStart = "2025-01-01"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if len(c.Providers.Order) == 0 {
		c.Providers.Order = []string{"stooq", "alphavantage", "yahoo"}
	}
	if c.Providers.MaxRetries == 0 {
		c.Providers.MaxRetries = 1
	}
	if c.Providers.FinalMaxRetries == 0 {
		c.Providers.FinalMaxRetries = 2
	}
	if c.Providers.RetryDelaySeconds == 0 {
		c.Providers.RetryDelaySeconds = 2
	}
	if c.Signals.Overbought == 0 {
		c.Signals.Overbought = 40
	}
	if c.Signals.SellBelow == 0 {
		c.Signals.SellBelow = -10
	}
	if c.Signals.BuyZoneMax == 0 {
		c.Signals.BuyZoneMax = 15
	}
	if c.Signals.Scoring == "" {
		c.Signals.Scoring = "weighted"
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
}

// Validate checks field constraints and normalizes symbols to upper case.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	for i, s := range c.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			return fmt.Errorf("symbols[%d] is empty", i)
		}
		c.Symbols[i] = s
	}
	for i, h := range c.Holdings {
		c.Holdings[i] = strings.ToUpper(strings.TrimSpace(h))
	}
	if c.RollingWindow <= 0 {
		return fmt.Errorf("rolling_window must be positive, got %d", c.RollingWindow)
	}
	if _, err := model.ParseDate(c.HistoricalStart); err != nil {
		return fmt.Errorf("historical_start: %w", err)
	}
	if c.Signals.Scoring != "threshold" && c.Signals.Scoring != "weighted" {
		return fmt.Errorf("signals.scoring must be %q or %q, got %q", "threshold", "weighted", c.Signals.Scoring)
	}
	for _, name := range c.Providers.Order {
		switch name {
		case "stooq", "alphavantage", "yahoo":
		default:
			return fmt.Errorf("unknown provider %q in providers.order", name)
		}
	}
	return nil
}

// StartDate returns historical_start as a Date. Validate must have passed.
func (c *Config) StartDate() model.Date {
	d, err := model.ParseDate(c.HistoricalStart)
	if err != nil {
		// Validate rejects unparseable values; keep the documented default.
		return model.NewDate(2025, 1, 1)
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
