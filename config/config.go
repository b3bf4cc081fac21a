package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger        `mapstructure:"logger"`
	API          API           `mapstructure:"api"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	Cache        Cache         `mapstructure:"cache"`
	Backtest     Backtest      `mapstructure:"backtest"`
	Simulation   Simulation    `mapstructure:"simulation"`
	Session      SessionConfig `mapstructure:"session"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type Backtest struct {
	InitialCash  float64 `mapstructure:"initial_cash"`
	RiskFreeRate float64 `mapstructure:"risk_free_rate"`
	ShortWindow  int     `mapstructure:"short_window"`
	LongWindow   int     `mapstructure:"long_window"`
}

type Simulation struct {
	MaxDays         int       `mapstructure:"max_days"`
	PositionSizePct float64   `mapstructure:"position_size_pct"`
	CooldownDays    int       `mapstructure:"cooldown_days"`
	StopLossGrid    []float64 `mapstructure:"stop_loss_grid"`
	TakeProfitGrid  []float64 `mapstructure:"take_profit_grid"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

func Load() (*Config, error) {
	// .env is optional; env vars override file settings either way.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")

	viper.SetDefault("api.port", 8080)

	viper.SetDefault("yahoo_finance.base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.timeout", 15*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("yahoo_finance.cache_ttl", 10*time.Minute)

	viper.SetDefault("cache.default_expiration", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)

	viper.SetDefault("backtest.initial_cash", 100000.0)
	viper.SetDefault("backtest.risk_free_rate", 0.02)
	viper.SetDefault("backtest.short_window", 50)
	viper.SetDefault("backtest.long_window", 200)

	viper.SetDefault("simulation.max_days", 365)
	viper.SetDefault("simulation.position_size_pct", 10.0)
	viper.SetDefault("simulation.cooldown_days", 1)
	viper.SetDefault("simulation.stop_loss_grid", []float64{2, 5, 10, 15})
	viper.SetDefault("simulation.take_profit_grid", []float64{5, 10, 15, 20, 30})

	viper.SetDefault("session.ttl", 2*time.Hour)
	viper.SetDefault("session.cleanup_interval", 30*time.Minute)
}
