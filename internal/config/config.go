package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Support SupportConfig `mapstructure:"support"`
	Storage StorageConfig `mapstructure:"storage"`
	Locale  LocaleConfig  `mapstructure:"locale"`
	MockAPI MockAPIConfig `mapstructure:"mockapi"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SupportConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	MaxAttachments int           `mapstructure:"max_attachments"`
}

type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

type LocaleConfig struct {
	Language string `mapstructure:"language"`
	Currency string `mapstructure:"currency"`
}

type MockAPIConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is fine; defaults cover local development against
// the mock backend.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.storefront/")
	v.AddConfigPath("/etc/storefront/")

	v.SetDefault("api.base_url", "http://localhost:3000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("support.base_url", "http://localhost:3000/api/support")
	v.SetDefault("support.poll_interval", 4500*time.Millisecond)
	v.SetDefault("support.max_attachments", 3)
	v.SetDefault("storage.dir", ".storefront")
	v.SetDefault("locale.language", "tr")
	v.SetDefault("locale.currency", "TRY")
	v.SetDefault("mockapi.addr", ":3000")

	// Enable environment variable override with STOREFRONT_ prefix
	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
