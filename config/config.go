// Package config loads fincalc settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all fincalc configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Advice    AdviceConfig    `toml:"advice"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Log       LogConfig       `toml:"log"`
}

type ServerConfig struct {
	Addr            string   `toml:"addr"`
	Env             string   `toml:"env"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// StorageConfig selects the key-value backend: memory, sqlite or redis.
type StorageConfig struct {
	Driver      string `toml:"driver"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	RedisAddr   string `toml:"redis_addr,omitempty"`
	RedisPrefix string `toml:"redis_prefix,omitempty"`
}

type AdviceConfig struct {
	URL     string   `toml:"url,omitempty"`
	APIKey  string   `toml:"api_key,omitempty"`
	Timeout Duration `toml:"timeout"`
}

// RateLimitConfig bounds requests per client address. The advice limit
// applies to AI tip requests in addition to the general one.
type RateLimitConfig struct {
	Capacity       int      `toml:"capacity"`
	Window         Duration `toml:"window"`
	AdviceCapacity int      `toml:"advice_capacity"`
	AdviceWindow   Duration `toml:"advice_window"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration decodes TOML strings such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			Env:             "local",
			ReadTimeout:     Duration{15 * time.Second},
			WriteTimeout:    Duration{30 * time.Second},
			ShutdownTimeout: Duration{10 * time.Second},
		},
		Storage: StorageConfig{
			Driver:      "memory",
			SQLitePath:  filepath.Join(Dir(), "fincalc.db"),
			RedisAddr:   "localhost:6379",
			RedisPrefix: "fincalc:",
		},
		Advice: AdviceConfig{
			Timeout: Duration{15 * time.Second},
		},
		RateLimit: RateLimitConfig{
			Capacity:       30,
			Window:         Duration{time.Minute},
			AdviceCapacity: 5,
			AdviceWindow:   Duration{time.Minute},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fincalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fincalc")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path (or Path() when empty), applies
// environment overrides, and returns defaults if the file does not exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

// Save writes the config to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window.Duration <= 0 {
		return errors.New("config: rate_limit capacity and window must be positive")
	}
	if c.RateLimit.AdviceCapacity <= 0 || c.RateLimit.AdviceWindow.Duration <= 0 {
		return errors.New("config: rate_limit advice_capacity and advice_window must be positive")
	}
	if c.Advice.Timeout.Duration <= 0 {
		return errors.New("config: advice timeout must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"FINCALC_ADDR":           &cfg.Server.Addr,
		"FINCALC_ENV":            &cfg.Server.Env,
		"FINCALC_STORAGE_DRIVER": &cfg.Storage.Driver,
		"FINCALC_SQLITE_PATH":    &cfg.Storage.SQLitePath,
		"FINCALC_REDIS_ADDR":     &cfg.Storage.RedisAddr,
		"FINCALC_ADVICE_URL":     &cfg.Advice.URL,
		"FINCALC_ADVICE_API_KEY": &cfg.Advice.APIKey,
		"FINCALC_LOG_LEVEL":      &cfg.Log.Level,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
}
