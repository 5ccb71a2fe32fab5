package cmd

import (
	"testing"

	"github.com/mj1618/focus-border/internal/model"
)

func TestListCommand_Flags(t *testing.T) {
	flags := listCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"apps", "bool"},
		{"pid", "int"},
		{"app", "string"},
		{"pretty", "bool"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestFilterWindows(t *testing.T) {
	windows := []model.Window{
		{App: "Safari", Ref: model.WindowRef{ID: 1, PID: 10}},
		{App: "Safari", Ref: model.WindowRef{ID: 2, PID: 10}},
		{App: "Terminal", Ref: model.WindowRef{ID: 3, PID: 20}},
	}

	if got := filterWindows(windows, 0, ""); len(got) != 3 {
		t.Errorf("no filter: got %d windows, want 3", len(got))
	}
	if got := filterWindows(windows, 20, ""); len(got) != 1 || got[0].App != "Terminal" {
		t.Errorf("pid filter: got %+v", got)
	}
	if got := filterWindows(windows, 0, "Safari"); len(got) != 2 {
		t.Errorf("app filter: got %d windows, want 2", len(got))
	}
	if got := filterWindows(windows, 99, ""); got == nil || len(got) != 0 {
		t.Errorf("no match should be an empty, non-nil slice: got %#v", got)
	}

	apps := uniqueApps(windows)
	if len(apps) != 2 || apps[0].App != "Safari" || apps[1].PID != 20 {
		t.Errorf("uniqueApps: got %+v", apps)
	}
}
