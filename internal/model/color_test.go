package model

import "testing"

func TestParseColor_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#007AFF", Color{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}},
		{"ff9500", Color{R: 0xFF, G: 0x95, B: 0x00, A: 0xFF}},
		{"#11223344", Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
		{"  #000000  ", Color{A: 0xFF}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.input)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, s := range []string{"", "#fff", "#12345", "#gggggg", "#1122334455"} {
		if _, err := ParseColor(s); err == nil {
			t.Errorf("ParseColor(%q) should fail", s)
		}
	}
}

func TestColor_Hex(t *testing.T) {
	if got := SystemBlue.Hex(); got != "#007affff" {
		t.Errorf("got %s, want #007affff", got)
	}
}

func TestWindowRef_Equality(t *testing.T) {
	a := WindowRef{ID: 42, PID: 100}
	if a != (WindowRef{ID: 42, PID: 100}) {
		t.Error("identical refs should be equal")
	}
	if a == (WindowRef{ID: 42, PID: 101}) {
		t.Error("refs with different PIDs should differ")
	}
	if !(WindowRef{}).IsZero() || a.IsZero() {
		t.Error("IsZero mismatch")
	}
}
