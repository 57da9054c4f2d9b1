package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"

	"rhystmorgan/regform/internal/address"
	"rhystmorgan/regform/internal/logging"
	"rhystmorgan/regform/internal/storage"
)

// EnvPrefix prefixes every environment variable read by Load. A double
// underscore separates nested keys: REGFORM_LOOKUP__TIMEOUT=5s.
const EnvPrefix = "REGFORM_"

type Config struct {
	DataDir    string       `koanf:"data_dir"`
	LogLevel   string       `koanf:"log_level"`
	Passphrase string       `koanf:"passphrase"`
	Lookup     LookupConfig `koanf:"lookup"`
}

type LookupConfig struct {
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
	CacheTTL  time.Duration `koanf:"cache_ttl"`
	RateLimit float64       `koanf:"rate_limit"`
	Burst     int           `koanf:"burst"`
}

func defaults() *Config {
	return &Config{
		LogLevel: "info",
		Lookup: LookupConfig{
			BaseURL:   address.DefaultBaseURL,
			Timeout:   address.DefaultTimeout,
			CacheTTL:  address.DefaultCacheTTL,
			RateLimit: address.DefaultRateLimit,
			Burst:     address.DefaultBurst,
		},
	}
}

// Load reads REGFORM_* variables over the compiled defaults
func Load() (*Config, error) {
	k := koanf.New(".")
	cfg := defaults()

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := storage.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	if !filepath.IsAbs(c.DataDir) {
		return fmt.Errorf("data directory must be absolute, got: %q", c.DataDir)
	}

	l := c.Lookup
	if !strings.HasPrefix(l.BaseURL, "http://") && !strings.HasPrefix(l.BaseURL, "https://") {
		return fmt.Errorf("invalid lookup base url: %q", l.BaseURL)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("lookup timeout must be positive, got: %v", l.Timeout)
	}
	if l.CacheTTL <= 0 {
		return fmt.Errorf("lookup cache TTL must be positive, got: %v", l.CacheTTL)
	}
	if l.RateLimit <= 0 {
		return fmt.Errorf("lookup rate limit must be positive, got: %v", l.RateLimit)
	}
	if l.Burst < 1 {
		return fmt.Errorf("lookup burst must be at least 1, got: %d", l.Burst)
	}

	return nil
}

func (c *Config) ToAddressConfig() address.Config {
	return address.Config{
		BaseURL:   c.Lookup.BaseURL,
		Timeout:   c.Lookup.Timeout,
		CacheTTL:  c.Lookup.CacheTTL,
		RateLimit: c.Lookup.RateLimit,
		Burst:     c.Lookup.Burst,
	}
}

func (c *Config) LogConfig() logging.Config {
	return logging.Config{
		Level: c.LogLevel,
		Dir:   filepath.Join(c.DataDir, "logs"),
	}
}

func (c *Config) StorageOptions() []storage.Option {
	if c.Passphrase == "" {
		return nil
	}
	return []storage.Option{storage.WithPassphrase(c.Passphrase)}
}
