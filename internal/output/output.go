// Package output prints command results as YAML or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where results are written.
var Stdout io.Writer = os.Stdout

// ParseFormat accepts "yaml" and "json". The empty string is YAML.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// HighlightResult is the output of highlight and focus.
type HighlightResult struct {
	OK     bool            `yaml:"ok"               json:"ok"`
	Action string          `yaml:"action"           json:"action"`
	Window model.WindowRef `yaml:"window"           json:"window"`
	Title  string          `yaml:"title,omitempty"  json:"title,omitempty"`
	Shown  bool            `yaml:"shown"            json:"shown"`
}

// DisplaysResult is the output of displays.
type DisplaysResult struct {
	Displays []geometry.Display `yaml:"displays" json:"displays"`
}

// PreviewResult is the output of preview.
type PreviewResult struct {
	OK     bool          `yaml:"ok"     json:"ok"`
	File   string        `yaml:"file"   json:"file"`
	Frame  geometry.Rect `yaml:"frame"  json:"frame"`
	Color  string        `yaml:"color"  json:"color"`
	Width  int           `yaml:"width"  json:"width"`
	Height int           `yaml:"height" json:"height"`
}

// Print serializes v to Stdout in the current output format.
func Print(v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to Stdout as JSON.
// If pretty is true, uses indentation; otherwise single-line.
func PrintJSON(v interface{}, pretty bool) error {
	return WriteJSON(Stdout, v, pretty)
}

// WriteJSON is PrintJSON for an arbitrary writer.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v to Stdout as YAML.
func PrintYAML(v interface{}) error {
	return WriteYAML(Stdout, v)
}

// WriteYAML is PrintYAML for an arbitrary writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
