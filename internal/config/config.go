// Package config handles configuration loading, validation and change
// notification for focus-border.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config is the complete focus-border configuration. It is a plain value;
// providers hand out copies.
type Config struct {
	Highlight HighlightConfig `toml:"highlight" yaml:"highlight" json:"highlight"`
	Timing    TimingConfig    `toml:"timing"    yaml:"timing"    json:"timing"`
	Logging   LoggingConfig   `toml:"logging"   yaml:"logging"   json:"logging"`
}

// HighlightConfig controls whether and how the focus border is drawn.
type HighlightConfig struct {
	// Enabled is the master switch. When false the watcher stays stopped and
	// the coordinator ignores requests.
	Enabled bool `toml:"enabled" yaml:"enabled" json:"enabled"`

	// RestrictToInternal disables the ambient focus watcher. Only the tool's
	// own raise commands produce highlights.
	RestrictToInternal bool `toml:"restrict_to_internal" yaml:"restrict_to_internal" json:"restrict_to_internal"`

	UseCustomColor bool    `toml:"use_custom_color" yaml:"use_custom_color" json:"use_custom_color"`
	CustomColor    string  `toml:"custom_color"     yaml:"custom_color"     json:"custom_color"`
	BorderWidth    float64 `toml:"border_width"     yaml:"border_width"     json:"border_width"`
	CornerRadius   float64 `toml:"corner_radius"    yaml:"corner_radius"    json:"corner_radius"`
}

// TimingConfig holds the delays of the highlight timeline. The defaults were
// tuned by eye against the window-raise animation and carry no stronger
// guarantee than that.
type TimingConfig struct {
	SettleDelay     Duration `toml:"settle_delay"     yaml:"settle_delay"     json:"settle_delay"`
	ShowDelay       Duration `toml:"show_delay"       yaml:"show_delay"       json:"show_delay"`
	VisibleDuration Duration `toml:"visible_duration" yaml:"visible_duration" json:"visible_duration"`
}

// LoggingConfig configures the slog logger.
type LoggingConfig struct {
	Level  string `toml:"level"  yaml:"level"  json:"level"`
	Format string `toml:"format" yaml:"format" json:"format"`
}

// WatcherWanted reports whether the ambient focus watcher should run.
func (c Config) WatcherWanted() bool {
	return c.Highlight.Enabled && !c.Highlight.RestrictToInternal
}

// Duration is a time.Duration that reads and writes as "150ms".
type Duration struct {
	time.Duration
}

// D wraps a time.Duration.
func D(d time.Duration) Duration { return Duration{d} }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Dir returns the configuration directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "focus-border")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "focus-border"
	}
	return filepath.Join(home, ".config", "focus-border")
}

// Path returns the default configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// ApplyEnvOverrides applies FOCUS_BORDER_* environment variables.
// Unparseable booleans are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v, ok := envBool("FOCUS_BORDER_ENABLED"); ok {
		c.Highlight.Enabled = v
	}
	if v, ok := envBool("FOCUS_BORDER_RESTRICT"); ok {
		c.Highlight.RestrictToInternal = v
	}
	if v := os.Getenv("FOCUS_BORDER_COLOR"); v != "" {
		c.Highlight.UseCustomColor = true
		c.Highlight.CustomColor = v
	}
	if v := os.Getenv("FOCUS_BORDER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
