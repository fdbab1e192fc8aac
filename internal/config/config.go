package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	KindGoogle = "google"
	KindICS    = "ics"
	KindAPI    = "api"
)

// SourceConfig describes one event source.
type SourceConfig struct {
	// ID is the calendar identifier used for filtering. Defaults to Name,
	// then to the URL / Google calendar id.
	ID string `yaml:"id" json:"id"`
	// Name is the label shown on filter buttons.
	Name string `yaml:"name" json:"name"`
	// Kind is one of "google", "ics" or "api".
	Kind string `yaml:"kind" json:"kind"`

	// URL is the ICS subscription endpoint ("ics") or the base URL of an
	// events API serving GET {url}/calendar ("api").
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// CalendarID is the Google calendar to read ("google"), e.g. "primary".
	CalendarID string `yaml:"calendar_id,omitempty" json:"calendar_id,omitempty"`
	// CredentialsFile points at a service-account JSON key. When empty the
	// GOOGLE_CREDENTIALS environment variable (or .env entry) is used.
	CredentialsFile string `yaml:"credentials_file,omitempty" json:"credentials_file,omitempty"`
}

// CaptureConfig controls headless screenshots of the calendar page.
type CaptureConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
	// Cron is the capture schedule, e.g. "0 * * * *".
	Cron       string `yaml:"cron" json:"cron"`
	OutputPath string `yaml:"output_path" json:"output_path"`
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	TimeoutSec int    `yaml:"timeout_sec" json:"timeout_sec"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone used for day boundaries and HH:MM.
	Timezone string `yaml:"timezone" json:"timezone"`

	// WeekStart is "monday" (default) or "sunday".
	WeekStart string `yaml:"week_start" json:"week_start"`

	// Locale selects UI labels: "es" (default) or "en".
	Locale string `yaml:"locale" json:"locale"`

	LogLevel string `yaml:"log_level" json:"log_level"`

	// RefreshCron is the cron schedule of snapshot refreshes.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// CacheDir holds the ICS HTTP cache.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// MonthsBack / MonthsAhead bound what sources are asked for, relative
	// to the current month.
	MonthsBack  int `yaml:"months_back" json:"months_back"`
	MonthsAhead int `yaml:"months_ahead" json:"months_ahead"`

	// MaxOccurrencesPerEvent caps recurrence expansion of ICS events.
	MaxOccurrencesPerEvent int `yaml:"max_occurrences_per_event" json:"max_occurrences_per_event"`

	Sources []SourceConfig `yaml:"sources" json:"sources"`

	Capture CaptureConfig `yaml:"capture" json:"capture"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`

	// GoogleCredentials is read from the environment, never from YAML.
	GoogleCredentials string `yaml:"-" json:"-"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:                 "127.0.0.1:8080",
		Timezone:               "Europe/Madrid",
		WeekStart:              "monday",
		Locale:                 "es",
		LogLevel:               "info",
		RefreshCron:            "*/15 * * * *",
		CacheDir:               "./var/ics-cache",
		MonthsBack:             12,
		MonthsAhead:            12,
		MaxOccurrencesPerEvent: 5000,
		Sources:                []SourceConfig{},
		Capture: CaptureConfig{
			Cron:       "0 * * * *",
			OutputPath: "./var/preview.png",
			Width:      1304,
			Height:     984,
			TimeoutSec: 30,
		},
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = "monday"
	}
	switch c.Locale {
	case "es", "en":
	default:
		c.Locale = def.Locale
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
	if c.CacheDir == "" {
		c.CacheDir = def.CacheDir
	}
	if c.MonthsBack < 0 {
		c.MonthsBack = 0
	}
	if c.MonthsAhead <= 0 {
		c.MonthsAhead = def.MonthsAhead
	}
	if c.MaxOccurrencesPerEvent <= 0 {
		c.MaxOccurrencesPerEvent = def.MaxOccurrencesPerEvent
	}
	if c.Sources == nil {
		c.Sources = []SourceConfig{}
	}
	for i := range c.Sources {
		c.Sources[i].Kind = strings.ToLower(strings.TrimSpace(c.Sources[i].Kind))
		if c.Sources[i].ID == "" {
			c.Sources[i].ID = c.Sources[i].defaultID()
		}
	}
	if c.Capture.Cron == "" {
		c.Capture.Cron = def.Capture.Cron
	}
	if c.Capture.OutputPath == "" {
		c.Capture.OutputPath = def.Capture.OutputPath
	}
	if c.Capture.Width <= 0 {
		c.Capture.Width = def.Capture.Width
	}
	if c.Capture.Height <= 0 {
		c.Capture.Height = def.Capture.Height
	}
	if c.Capture.TimeoutSec <= 0 {
		c.Capture.TimeoutSec = def.Capture.TimeoutSec
	}
}

func (s SourceConfig) defaultID() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.CalendarID != "":
		return s.CalendarID
	default:
		return s.URL
	}
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		switch s.Kind {
		case KindGoogle:
			if s.CalendarID == "" {
				return fmt.Errorf("config: sources[%d]: google source needs calendar_id", i)
			}
		case KindICS, KindAPI:
			if s.URL == "" {
				return fmt.Errorf("config: sources[%d]: %s source needs url", i, s.Kind)
			}
		default:
			return fmt.Errorf("config: sources[%d]: unknown kind %q", i, s.Kind)
		}
		if seen[s.ID] {
			return fmt.Errorf("config: sources[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the display timezone, falling back to time.Local.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil || c.Timezone == "" {
		return time.Local
	}
	return loc
}

// FirstWeekday maps WeekStart to a time.Weekday.
func (c *Config) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - A .env file next to the config (and one in the working directory) is
//     loaded into the environment first; existing variables win.
//   - If the config file does not exist a default one is written with 0600
//     permissions and returned.
//   - Otherwise the YAML is read, normalized and validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			cfg.applyEnv()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadDotEnv(paths ...string) {
	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if _, err := os.Stat(abs); err != nil {
			continue
		}
		_ = godotenv.Load(abs)
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS")); v != "" {
		c.GoogleCredentials = v
	}
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
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

	tmp, err := os.CreateTemp(dir, ".monthcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
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

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
