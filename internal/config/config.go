package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AIConfig holds settings for the syllabus extraction / assistant chat
// service. The endpoint speaks the OpenAI chat-completions protocol.
type AIConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	APIKey  string `yaml:"api_key" json:"api_key"`
	Model   string `yaml:"model" json:"model"`
}

// AuthConfig holds session-token settings.
type AuthConfig struct {
	// Secret signs session tokens. Empty disables authentication
	// entirely (all requests run as an anonymous local user).
	Secret string `yaml:"secret" json:"secret"`
	// SessionTTLHours is the token lifetime. Zero means 72h.
	SessionTTLHours int `yaml:"session_ttl_hours" json:"session_ttl_hours"`
}

// TimerConfig holds focus timer durations in minutes.
type TimerConfig struct {
	WorkMinutes       int `yaml:"work_minutes" json:"work_minutes"`
	ShortBreakMinutes int `yaml:"short_break_minutes" json:"short_break_minutes"`
	LongBreakMinutes  int `yaml:"long_break_minutes" json:"long_break_minutes"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the JSON API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone used as the canonical display zone
	// for calendar views (e.g. "America/New_York").
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart controls which weekday begins a calendar week.
	// Supported values: "sunday" (default) and "monday".
	WeekStart string `yaml:"week_start" json:"week_start"`

	// DataDir holds the local database and backups.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Storage selects the key-value backend: "sqlite" (default) or "redis".
	Storage string `yaml:"storage" json:"storage"`

	// RedisAddr is used when Storage is "redis".
	RedisAddr string `yaml:"redis_addr" json:"redis_addr"`

	// BackupCron is a cron expression for the periodic state backup.
	// Empty disables backups.
	BackupCron string `yaml:"backup_cron" json:"backup_cron"`

	// CORSOrigins lists allowed browser origins. Empty means "*".
	CORSOrigins []string `yaml:"cors_origins" json:"cors_origins"`

	// LogLevel is "debug", "info" or "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	AI    AIConfig    `yaml:"ai" json:"ai"`
	Auth  AuthConfig  `yaml:"auth" json:"auth"`
	Timer TimerConfig `yaml:"timer" json:"timer"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      "127.0.0.1:8080",
		Timezone:    "Local",
		WeekStart:   "sunday",
		DataDir:     "./data",
		Storage:     "sqlite",
		RedisAddr:   "127.0.0.1:6379",
		BackupCron:  "0 3 * * *",
		CORSOrigins: nil,
		LogLevel:    "info",
		AI: AIConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o-mini",
		},
		Auth: AuthConfig{
			SessionTTLHours: 72,
		},
		Timer: TimerConfig{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
		},
	}
}

// Normalize fills missing/zero values with defaults so partially filled
// configs from older versions still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	switch c.WeekStart {
	case "sunday", "monday":
	default:
		c.WeekStart = "sunday"
	}
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	switch c.Storage {
	case "sqlite", "redis":
	default:
		c.Storage = "sqlite"
	}
	if c.RedisAddr == "" {
		c.RedisAddr = "127.0.0.1:6379"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.AI.BaseURL == "" {
		c.AI.BaseURL = "https://api.openai.com/v1"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
	if c.Auth.SessionTTLHours <= 0 {
		c.Auth.SessionTTLHours = 72
	}
	if c.Timer.WorkMinutes <= 0 {
		c.Timer.WorkMinutes = 25
	}
	if c.Timer.ShortBreakMinutes <= 0 {
		c.Timer.ShortBreakMinutes = 5
	}
	if c.Timer.LongBreakMinutes <= 0 {
		c.Timer.LongBreakMinutes = 15
	}
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist, a default config is written there (parent
// directory created, 0600 perms) and returned. If it exists, it is read,
// unmarshalled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".chronofy-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
