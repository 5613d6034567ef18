// Package config loads the any-bot YAML configuration. Loading applies
// defaults and then validates; missing required settings are the only
// fatal startup condition in the whole system, checked once before any
// trigger is armed.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level any-bot configuration.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Grid     GridConfig     `yaml:"grid"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Duty     DutyConfig     `yaml:"duty"`

	// Directory maps full names to display handles. Static data: loaded
	// once, never derived at runtime.
	Directory map[string]string `yaml:"directory"`

	// Editors is the allow-list of sender identities permitted to issue
	// update commands.
	Editors []string `yaml:"editors"`

	// StatusAddr enables the /healthz and /stats endpoint when set,
	// e.g. "127.0.0.1:8844".
	StatusAddr string `yaml:"status_addr"`
}

// TelegramConfig configures the messaging transport.
type TelegramConfig struct {
	// Token is the bot token. The ANYBOT_TELEGRAM_TOKEN environment
	// variable overrides it, so the secret can stay out of the file.
	Token string `yaml:"token"`
	// NotifyChat receives change notifications and scheduled digests.
	NotifyChat int64 `yaml:"notify_chat"`
	// RichText enables HTML parse mode on outbound messages.
	RichText bool `yaml:"rich_text"`
	// Timeout bounds each API call. Default: 35s.
	Timeout time.Duration `yaml:"timeout"`
}

// GridConfig selects and configures the roster source.
type GridConfig struct {
	// Backend is "http" (spreadsheet gateway) or "xlsx" (local workbook).
	Backend string `yaml:"backend"`
	// URL is the gateway base URL (http backend).
	URL string `yaml:"url"`
	// Path is the workbook file (xlsx backend).
	Path string `yaml:"path"`
	// Sheet is the workbook sheet name (xlsx backend). Default: "Sheet1".
	Sheet string `yaml:"sheet"`
	// Timeout bounds each gateway call. Default: 15s.
	Timeout time.Duration `yaml:"timeout"`
}

// SnapshotConfig selects where the last-known grid lives.
type SnapshotConfig struct {
	// Backend is "file" (single JSON document) or "sqlite".
	Backend string `yaml:"backend"`
	// Path is the snapshot file or database path.
	// Default: "snapshot.json".
	Path string `yaml:"path"`
}

// ScheduleConfig tunes the two timers.
type ScheduleConfig struct {
	// PollInterval is the diff-cycle frequency. Default: 2m.
	PollInterval time.Duration `yaml:"poll_interval"`
	// DigestAt is the local "HH:MM" the daily digest fires at.
	// Default: "18:00".
	DigestAt string `yaml:"digest_at"`
}

// DutyConfig is the duty-classification vocabulary.
type DutyConfig struct {
	DayTokens   []string `yaml:"day_tokens"`
	NightTokens []string `yaml:"night_tokens"`
	OffTokens   []string `yaml:"off_tokens"`
}

// Load reads, defaults, and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if v := os.Getenv("ANYBOT_TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if c.Telegram.Timeout <= 0 {
		c.Telegram.Timeout = 35 * time.Second
	}
	if c.Grid.Backend == "" {
		c.Grid.Backend = "http"
	}
	if c.Grid.Sheet == "" {
		c.Grid.Sheet = "Sheet1"
	}
	if c.Grid.Timeout <= 0 {
		c.Grid.Timeout = 15 * time.Second
	}
	if c.Snapshot.Backend == "" {
		c.Snapshot.Backend = "file"
	}
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = "snapshot.json"
	}
	if c.Schedule.PollInterval <= 0 {
		c.Schedule.PollInterval = 2 * time.Minute
	}
	if c.Schedule.DigestAt == "" {
		c.Schedule.DigestAt = "18:00"
	}
	if len(c.Duty.DayTokens) == 0 {
		c.Duty.DayTokens = []string{"day"}
	}
	if len(c.Duty.NightTokens) == 0 {
		c.Duty.NightTokens = []string{"night"}
	}
	if len(c.Duty.OffTokens) == 0 {
		c.Duty.OffTokens = []string{"off"}
	}
}

// Validate reports the first missing or malformed required setting.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return errors.New("config: telegram.token is required (or set ANYBOT_TELEGRAM_TOKEN)")
	}
	if c.Telegram.NotifyChat == 0 {
		return errors.New("config: telegram.notify_chat is required")
	}

	switch c.Grid.Backend {
	case "http":
		if c.Grid.URL == "" {
			return errors.New("config: grid.url is required for the http backend")
		}
	case "xlsx":
		if c.Grid.Path == "" {
			return errors.New("config: grid.path is required for the xlsx backend")
		}
	default:
		return fmt.Errorf("config: unknown grid.backend %q", c.Grid.Backend)
	}

	switch c.Snapshot.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: unknown snapshot.backend %q", c.Snapshot.Backend)
	}

	if _, err := time.Parse("15:04", c.Schedule.DigestAt); err != nil {
		return fmt.Errorf("config: schedule.digest_at %q is not HH:MM", c.Schedule.DigestAt)
	}
	return nil
}
