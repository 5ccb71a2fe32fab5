package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/focus-border/internal/app"
	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/mj1618/focus-border/internal/render"
)

// loadConfig reads the effective configuration once.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newApp builds an App on the native provider. A non-empty headless dir
// replaces the native overlay with PNG output.
func newApp(cfg config.Provider, watch bool, headless string) (*app.App, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if headless != "" {
		provider.Overlay = render.NewRecorder(headless, provider.Displays)
	}
	return app.New(app.Options{
		Provider: provider,
		Config:   cfg,
		Log:      logger,
		Watch:    watch,
	})
}

// runApp serves a's loop in the background and hands the calling goroutine
// (the main thread) to the platform's native event loop. fn runs once
// everything is up; when it returns, everything is shut down.
func runApp(ctx context.Context, a *app.App, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() { loopErr <- a.Run(ctx) }()

	fnErr := make(chan error, 1)
	go func() {
		defer cancel()
		fnErr <- fn(ctx)
	}()

	mainErr := platform.RunMain(ctx)
	err := <-fnErr
	if lerr := <-loopErr; err == nil {
		err = lerr
	}
	if err == nil {
		err = mainErr
	}
	if a.Provider.Close != nil {
		if cerr := a.Provider.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// windowFromFlags resolves --window-id/--pid to a window.
func windowFromFlags(a *app.App, id, pid int) (model.Window, error) {
	if id <= 0 {
		return model.Window{}, fmt.Errorf("specify --window-id")
	}
	return a.ResolveWindow(uint32(id), pid)
}
