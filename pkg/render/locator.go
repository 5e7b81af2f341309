package render

import (
	"fmt"
	"os"
	"os/exec"
)

// BrowserLocator resolves the path to a browser binary. Resolution happens
// once at process start; the renderer never re-probes per request.
type BrowserLocator interface {
	Locate() (string, error)
}

// NewLocator selects a locator implementation from the config mode.
func NewLocator(cfg *Config) (BrowserLocator, error) {
	switch cfg.Mode {
	case ModeStatic:
		return &StaticLocator{Path: cfg.BinaryPath}, nil
	case ModeLocal:
		return &SearchLocator{Names: defaultBrowserNames, Paths: defaultBrowserPaths}, nil
	default:
		return nil, fmt.Errorf("unknown locator mode: %s", cfg.Mode)
	}
}

// StaticLocator returns a fixed binary path, for deployments that package
// the browser alongside the service.
type StaticLocator struct {
	Path string
}

// Locate verifies the configured path exists and returns it.
func (l *StaticLocator) Locate() (string, error) {
	if l.Path == "" {
		return "", ErrBrowserNotFound
	}
	if _, err := os.Stat(l.Path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrBrowserNotFound, l.Path)
	}
	return l.Path, nil
}

var defaultBrowserNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

var defaultBrowserPaths = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// SearchLocator probes PATH entries and well-known install locations.
type SearchLocator struct {
	Names []string
	Paths []string
}

// Locate returns the first binary found, preferring PATH lookups over
// absolute locations.
func (l *SearchLocator) Locate() (string, error) {
	for _, name := range l.Names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	for _, path := range l.Paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrBrowserNotFound
}
