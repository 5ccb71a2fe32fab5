package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/focus-border/internal/app"
	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/geometry"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform/fake"
	"github.com/mj1618/focus-border/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T) (*Server, *fake.Platform, *render.Recorder) {
	t.Helper()
	cfg := config.Default()
	cfg.Timing.ShowDelay = config.D(2 * time.Millisecond)
	cfg.Timing.VisibleDuration = config.D(50 * time.Millisecond)

	p := fake.New()
	p.AddWindow(model.WindowRef{ID: 7, PID: 70}, "Inbox", geometry.Rect{X: 10, Y: 10, Width: 300, Height: 200})
	p.AddWindow(model.WindowRef{ID: 8, PID: 80}, "Notes", geometry.Rect{X: 400, Y: 10, Width: 300, Height: 200})
	rec := render.NewRecorder("", nil)

	a, err := app.New(app.Options{
		Provider: p.Provider(rec),
		Config:   config.NewStatic(cfg),
		Log:      logging.Discard(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return New(a, logging.Discard()), p, rec
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestHandleHighlight(t *testing.T) {
	s, _, rec := newTestServer(t)

	res, err := s.handleHighlight(context.Background(), call(map[string]interface{}{
		"window-id": float64(7),
		"wait":      true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, "highlight", out["action"])
	assert.Equal(t, "Inbox", out["title"])
	assert.Equal(t, true, out["shown"])

	require.Len(t, rec.Shots(), 1)
	assert.Zero(t, rec.Visible(), "wait returns after the hide")
}

func TestHandleHighlightReportsUndrawnOverlay(t *testing.T) {
	s, _, rec := newTestServer(t)
	rec.Fail = errors.New("no window server")

	res, err := s.handleHighlight(context.Background(), call(map[string]interface{}{
		"window-id": float64(7),
		"wait":      true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, false, out["shown"])
	assert.Empty(t, rec.Shots())
}

func TestHandleHighlightRaise(t *testing.T) {
	s, p, _ := newTestServer(t)

	res, err := s.handleHighlight(context.Background(), call(map[string]interface{}{
		"window-id": float64(8),
		"pid":       float64(80),
		"raise":     true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), "action: focus")
	assert.Equal(t, []model.WindowRef{{ID: 8, PID: 80}}, p.Raised())
}

func TestHandleHighlightErrors(t *testing.T) {
	s, _, rec := newTestServer(t)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing id", map[string]interface{}{}, "window-id is required"},
		{"unknown id", map[string]interface{}{"window-id": float64(99)}, "no longer available"},
		{"pid mismatch", map[string]interface{}{"window-id": float64(7), "pid": float64(80)}, "no longer available"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleHighlight(context.Background(), call(tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), tt.want)
		})
	}
	assert.Empty(t, rec.Shots())
}

func TestHandleStatus(t *testing.T) {
	s, _, _ := newTestServer(t)

	res, err := s.handleStatus(context.Background(), call(nil))
	require.NoError(t, err)
	out := text(t, res)
	assert.Contains(t, out, "platform: fake")
	assert.Contains(t, out, "state: idle")
	assert.Contains(t, out, "state: stopped")
}

func TestHandleDisplaysAndWindows(t *testing.T) {
	s, _, _ := newTestServer(t)

	res, err := s.handleDisplays(context.Background(), call(nil))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "width: 1920")

	res, err = s.handleWindows(context.Background(), call(map[string]interface{}{"pid": float64(80)}))
	require.NoError(t, err)
	var windows []model.Window
	require.NoError(t, yaml.Unmarshal([]byte(text(t, res)), &windows))
	require.Len(t, windows, 1)
	assert.Equal(t, "Notes", windows[0].Title)
}

func TestParams(t *testing.T) {
	params := map[string]interface{}{"s": "x", "f": float64(3), "i": 4, "b": true}
	assert.Equal(t, 3, intParam(params, "f", 0))
	assert.Equal(t, 4, intParam(params, "i", 0))
	assert.Equal(t, 9, intParam(params, "s", 9))
	assert.True(t, boolParam(params, "b", false))
	assert.False(t, boolParam(params, "missing", false))
}
