package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // locale.timezone must resolve on hosts without a zone database

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/notexe/lembretes/internal/kv"
	"github.com/notexe/lembretes/internal/logging"
	"github.com/notexe/lembretes/internal/recurrence"
)

// EnvPrefix prefixes every environment variable that overrides a config key.
// LEMBRETES_STORAGE_PATH sets storage.path.
const EnvPrefix = "LEMBRETES_"

// EnvConfigPath names the variable holding the config file location.
const EnvConfigPath = EnvPrefix + "CONFIG"

type Config struct {
	Storage   StorageConfig   `koanf:"storage"`
	Log       logging.Config  `koanf:"log"`
	Locale    LocaleConfig    `koanf:"locale"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
}

type StorageConfig struct {
	Backend    string `koanf:"backend"` // memory, file or sqlite
	Path       string `koanf:"path"`
	Namespace  string `koanf:"namespace"`
	QuotaBytes int    `koanf:"quota_bytes"` // memory backend only; 0 = unlimited
}

type LocaleConfig struct {
	Timezone string `koanf:"timezone"` // IANA name; empty = system local
	Language string `koanf:"language"` // used until settings are saved
}

type SchedulerConfig struct {
	Enabled  bool           `koanf:"enabled"`
	Interval int            `koanf:"interval"` // seconds
	Telegram TelegramConfig `koanf:"telegram"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
	BaseURL  string `koanf:"base_url"`
}

// Load layers defaults, the YAML file at configPath (if it exists) and
// LEMBRETES_* environment variables.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	known := envKeys(k.Keys())

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return known[strings.TrimPrefix(s, EnvPrefix)]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.Path = expandPath(cfg.Storage.Path)

	return &cfg, nil
}

// envKeys maps STORAGE_QUOTA_BYTES style names to their dotted keys.
// Underscores inside key names make the reverse mapping ambiguous, so only
// known keys are accepted.
func envKeys(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		m[strings.ToUpper(strings.ReplaceAll(key, ".", "_"))] = key
	}
	return m
}

func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case kv.BackendMemory:
	case kv.BackendFile, kv.BackendSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the %s backend", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend: %s (supported: %s, %s, %s)",
			c.Storage.Backend, kv.BackendMemory, kv.BackendFile, kv.BackendSQLite)
	}

	if c.Storage.Namespace == "" {
		return fmt.Errorf("storage.namespace is required")
	}

	if c.Storage.QuotaBytes < 0 {
		return fmt.Errorf("storage.quota_bytes must not be negative")
	}

	if err := c.Log.Validate(); err != nil {
		return err
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if !recurrence.Language(c.Locale.Language).Valid() {
		return fmt.Errorf("unknown language: %s (supported: %s, %s)",
			c.Locale.Language, recurrence.Portuguese, recurrence.English)
	}

	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive")
	}

	if c.Scheduler.Enabled {
		if c.Scheduler.Telegram.BotToken == "" || c.Scheduler.Telegram.ChatID == "" {
			return fmt.Errorf("telegram bot_token and chat_id are required when the scheduler is enabled (set %sSCHEDULER_TELEGRAM_BOT_TOKEN and %sSCHEDULER_TELEGRAM_CHAT_ID)",
				EnvPrefix, EnvPrefix)
		}
	}

	return nil
}

// Location resolves locale.timezone. An empty name is the system local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Locale.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid locale.timezone %q: %w", c.Locale.Timezone, err)
	}
	return loc, nil
}

// SchedulerInterval returns scheduler.interval as a duration.
func (c *Config) SchedulerInterval() time.Duration {
	return time.Duration(c.Scheduler.Interval) * time.Second
}

// StorageOptions returns the kv backend options for this config.
func (c *Config) StorageOptions() kv.Options {
	return kv.Options{
		Backend:    c.Storage.Backend,
		Path:       c.Storage.Path,
		QuotaBytes: c.Storage.QuotaBytes,
	}
}

// ResolvePath returns the config file to load: the explicit path if given,
// then LEMBRETES_CONFIG, then the default location.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return GetDefaultConfigPath()
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
