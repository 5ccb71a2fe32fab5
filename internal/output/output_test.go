package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/model"
	"gopkg.in/yaml.v3"
)

func capture(t *testing.T, format Format, pretty bool, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	oldOut, oldFormat, oldPretty := Stdout, OutputFormat, PrettyOutput
	Stdout, OutputFormat, PrettyOutput = &buf, format, pretty
	defer func() { Stdout, OutputFormat, PrettyOutput = oldOut, oldFormat, oldPretty }()

	if err := Print(v); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	result := HighlightResult{
		OK:     true,
		Action: "highlight",
		Window: model.WindowRef{ID: 42, PID: 1234},
		Title:  "main.go",
		Shown:  true,
	}

	out := capture(t, FormatYAML, false, result)

	if strings.Count(out, "\n") <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["action"] != "highlight" {
		t.Errorf("action: got %v, want highlight", decoded["action"])
	}
	win, ok := decoded["window"].(map[string]interface{})
	if !ok || win["id"] != 42 || win["pid"] != 1234 {
		t.Errorf("window: got %v", decoded["window"])
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	result := DisplaysResult{Displays: []geometry.Display{
		{ID: 1, Frame: geometry.Rect{Width: 1920, Height: 1080}, Primary: true},
		{ID: 2, Frame: geometry.Rect{X: 1920, Width: 1280, Height: 1024}},
	}}

	out := capture(t, FormatJSON, false, result)

	if strings.Count(out, "\n") != 1 {
		t.Errorf("compact JSON should be one line, got:\n%s", out)
	}
	var decoded DisplaysResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Displays) != 2 || decoded.Displays[1].Frame.X != 1920 {
		t.Errorf("displays: got %+v", decoded.Displays)
	}
}

func TestPrintJSON_Pretty(t *testing.T) {
	out := capture(t, FormatJSON, true, PreviewResult{OK: true, File: "a.png"})
	if !strings.Contains(out, "\n  \"file\": \"a.png\"") {
		t.Errorf("pretty JSON should be indented, got:\n%s", out)
	}
}

func TestHighlightResult_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(HighlightResult{OK: true, Action: "focus"})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["title"]; ok {
		t.Error("empty title should be omitted")
	}
	if _, ok := m["shown"]; !ok {
		t.Error("shown should always be present")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"agent", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
