package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_SubscribeAndUnsubscribe(t *testing.T) {
	s := NewStatic(Default())

	var seen []bool
	sub := s.Subscribe(func(c Config) { seen = append(seen, c.Highlight.Enabled) })

	s.Update(func(c *Config) { c.Highlight.Enabled = false })
	assert.Equal(t, []bool{false}, seen)
	assert.False(t, s.Current().Highlight.Enabled)

	sub.Unsubscribe()
	sub.Unsubscribe()
	s.Update(func(c *Config) { c.Highlight.Enabled = true })
	assert.Len(t, seen, 1, "unsubscribed callback must not run")
}

func TestStatic_NotifiesInSubscriptionOrder(t *testing.T) {
	s := NewStatic(Default())
	var order []int
	for i := 1; i <= 3; i++ {
		i := i
		s.Subscribe(func(Config) { order = append(order, i) })
	}
	s.Set(Default())
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestLoader_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[highlight]\nenabled = true\n"), 0o644))

	l := NewLoader(path, nil)
	cfg, err := l.Load()
	require.NoError(t, err)
	require.True(t, cfg.Highlight.Enabled)

	changed := make(chan Config, 4)
	l.Subscribe(func(c Config) { changed <- c })

	require.NoError(t, l.Watch(context.Background()))
	defer l.Close()

	require.NoError(t, os.WriteFile(path, []byte("[highlight]\nenabled = false\n"), 0o644))

	select {
	case c := <-changed:
		assert.False(t, c.Highlight.Enabled)
		assert.False(t, l.Current().Highlight.Enabled)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestLoader_KeepsPreviousOnInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[timing]\nshow_delay = \"40ms\"\n"), 0o644))

	l := NewLoader(path, nil)
	_, err := l.Load()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[timing]\nshow_delay = \"-1s\"\n"), 0o644))
	l.reload()

	assert.Equal(t, 40*time.Millisecond, l.Current().Timing.ShowDelay.Duration)
}

func TestLoader_DefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	l := NewLoader("", nil)
	assert.Equal(t, "/tmp/xdg/focus-border/config.toml", l.Path())
}
