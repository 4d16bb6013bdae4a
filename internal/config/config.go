package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	Images  ImagesConfig  `mapstructure:"images"`
}

// CatalogConfig holds the device-metadata feed settings
type CatalogConfig struct {
	FeedURL              string `mapstructure:"feed_url"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// CacheConfig holds snapshot cache settings
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// TTL returns the snapshot time-to-live as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// SearchConfig holds search and autocomplete settings
type SearchConfig struct {
	SuggestionLimit   int `mapstructure:"suggestion_limit"`
	SuggestDebounceMs int `mapstructure:"suggest_debounce_ms"`
	FilterDebounceMs  int `mapstructure:"filter_debounce_ms"`
}

// SuggestDebounce returns the autocomplete quiet period.
func (c SearchConfig) SuggestDebounce() time.Duration {
	return time.Duration(c.SuggestDebounceMs) * time.Millisecond
}

// FilterDebounce returns the free-text filter commit quiet period.
func (c SearchConfig) FilterDebounce() time.Duration {
	return time.Duration(c.FilterDebounceMs) * time.Millisecond
}

// ImagesConfig holds the image CDN settings
type ImagesConfig struct {
	ImageBase   string `mapstructure:"image_base"`
	IconBase    string `mapstructure:"icon_base"`
	Placeholder string `mapstructure:"placeholder"`
	SmallWidth  int    `mapstructure:"small_width"`
	MediumWidth int    `mapstructure:"medium_width"`
	LargeWidth  int    `mapstructure:"large_width"`
}

// Load loads configuration from YAML file with environment variable overrides.
// The feed is public and every key has a default, so a missing config.yaml is
// not an error.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("catalog.feed_url", "https://static.ui.com/fingerprint/ui/public.json")
	viper.SetDefault("catalog.timeout", 30)
	viper.SetDefault("catalog.max_retries", 3)
	viper.SetDefault("catalog.max_requests_per_second", 5)

	viper.SetDefault("cache.ttl_seconds", 300)

	viper.SetDefault("search.suggestion_limit", 8)
	viper.SetDefault("search.suggest_debounce_ms", 150)
	viper.SetDefault("search.filter_debounce_ms", 300)

	viper.SetDefault("images.image_base", "https://static.ui.com/fingerprint/ui/images")
	viper.SetDefault("images.icon_base", "https://static.ui.com/fingerprint/ui/icons")
	viper.SetDefault("images.placeholder", "/images/device-placeholder.png")
	viper.SetDefault("images.small_width", 32)
	viper.SetDefault("images.medium_width", 64)
	viper.SetDefault("images.large_width", 128)
}
