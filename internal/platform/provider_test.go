package platform

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	// Temporarily clear the provider func to simulate unsupported platform
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewProvider_UsesRegisteredFunc(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	NewProviderFunc = func() (*Provider, error) { return &Provider{Name: "test"}, nil }
	p, err := NewProvider()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "test" {
		t.Errorf("name = %q, want test", p.Name)
	}

	NewProviderFunc = func() (*Provider, error) { return nil, ErrPermission }
	if _, err := NewProvider(); !errors.Is(err, ErrPermission) {
		t.Errorf("got %v, want ErrPermission", err)
	}
}

func TestRunMain_WaitsForContext(t *testing.T) {
	orig := RunMainFunc
	RunMainFunc = nil
	defer func() { RunMainFunc = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := RunMain(ctx); err != nil {
		t.Errorf("RunMain: %v", err)
	}
}

func TestRunMain_DelegatesToBackend(t *testing.T) {
	orig := RunMainFunc
	defer func() { RunMainFunc = orig }()

	called := false
	RunMainFunc = func(ctx context.Context) error {
		called = true
		return nil
	}
	RunMain(context.Background())
	if !called {
		t.Error("backend main loop was not used")
	}
}
