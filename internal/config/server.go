package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds API server settings. Every key can be overridden by a
// PLANNER_<KEY> environment variable, e.g. PLANNER_PORT=9090.
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	Env       string `mapstructure:"env"`
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`

	PresetsDir     string   `mapstructure:"presets_dir"`
	StaticDir      string   `mapstructure:"static_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	PriceFeedURL  string        `mapstructure:"price_feed_url"`
	PriceTimeout  time.Duration `mapstructure:"price_timeout"`
	PriceCooldown time.Duration `mapstructure:"price_cooldown"`
	PriceCacheTTL time.Duration `mapstructure:"price_cache_ttl"`
	PriceRetries  int           `mapstructure:"price_retries"`

	// RedisAddr enables the shared quote cache; empty means in-memory.
	RedisAddr string `mapstructure:"redis_addr"`
}

const (
	DefaultPort          = "8080"
	DefaultPriceFeedURL  = "https://api.coingecko.com"
	DefaultPriceTimeout  = 10 * time.Second
	DefaultPriceCooldown = 30 * time.Second
	DefaultPriceCacheTTL = time.Minute
	DefaultPriceRetries  = 3
)

// LoadServer reads settings from path (optional) and the environment.
func LoadServer(path string) (*ServerConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	defaults := map[string]interface{}{
		"port":            DefaultPort,
		"env":             "development",
		"log_level":       "info",
		"log_pretty":      false,
		"presets_dir":     "./presets",
		"static_dir":      "./web/dist",
		"allowed_origins": []string{"*"},
		"price_feed_url":  DefaultPriceFeedURL,
		"price_timeout":   DefaultPriceTimeout,
		"price_cooldown":  DefaultPriceCooldown,
		"price_cache_ttl": DefaultPriceCacheTTL,
		"price_retries":   DefaultPriceRetries,
		"redis_addr":      "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	u, err := url.Parse(c.PriceFeedURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid price_feed_url %q", c.PriceFeedURL)
	}
	if c.PriceTimeout <= 0 {
		return errors.New("price_timeout must be > 0")
	}
	if c.PriceCooldown < 0 || c.PriceCacheTTL < 0 {
		return errors.New("price_cooldown and price_cache_ttl must be >= 0")
	}
	if c.PriceRetries < 0 {
		return errors.New("price_retries must be >= 0")
	}
	return nil
}

func (c *ServerConfig) IsProduction() bool { return c.Env == "production" }
