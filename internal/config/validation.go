package config

import (
	"fmt"
	"strings"

	"github.com/mj1618/focus-border/internal/model"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks c and returns ValidationErrors when anything is wrong.
func (c Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	h := c.Highlight
	if h.BorderWidth <= 0 {
		add("highlight.border_width", "must be positive, got %g", h.BorderWidth)
	}
	if h.CornerRadius < 0 {
		add("highlight.corner_radius", "must not be negative, got %g", h.CornerRadius)
	}
	if h.UseCustomColor || h.CustomColor != "" {
		if _, err := model.ParseColor(h.CustomColor); err != nil {
			add("highlight.custom_color", "%v", err)
		}
	}

	t := c.Timing
	for _, d := range []struct {
		field string
		value Duration
	}{
		{"timing.settle_delay", t.SettleDelay},
		{"timing.show_delay", t.ShowDelay},
		{"timing.visible_duration", t.VisibleDuration},
	} {
		if d.value.Duration <= 0 {
			add(d.field, "must be positive, got %s", d.value.Duration)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "unknown level %q (expected debug, info, warn, or error)", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		add("logging.format", "unknown format %q (expected text or json)", c.Logging.Format)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Style resolves the border style. accent is the platform accent color, if
// the platform reported one.
func (c Config) Style(accent *model.Color) model.Style {
	color := model.SystemBlue
	if accent != nil {
		color = *accent
	}
	if c.Highlight.UseCustomColor {
		if custom, err := model.ParseColor(c.Highlight.CustomColor); err == nil {
			color = custom
		}
	}
	return model.Style{
		BorderWidth:  c.Highlight.BorderWidth,
		CornerRadius: c.Highlight.CornerRadius,
		Color:        color,
	}
}
