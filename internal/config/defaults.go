package config

import "time"

// Defaults for the highlight timeline and border.
const (
	DefaultSettleDelay     = 150 * time.Millisecond
	DefaultShowDelay       = 100 * time.Millisecond
	DefaultVisibleDuration = 300 * time.Millisecond
	DefaultBorderWidth     = 3.0
	DefaultCornerRadius    = 10.0
	DefaultCustomColor     = "#FF9500"
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Highlight: HighlightConfig{
			Enabled:            true,
			RestrictToInternal: false,
			UseCustomColor:     false,
			CustomColor:        DefaultCustomColor,
			BorderWidth:        DefaultBorderWidth,
			CornerRadius:       DefaultCornerRadius,
		},
		Timing: TimingConfig{
			SettleDelay:     D(DefaultSettleDelay),
			ShowDelay:       D(DefaultShowDelay),
			VisibleDuration: D(DefaultVisibleDuration),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
