package infrastructure_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brandforge/giftguide/internal/config"
	"github.com/brandforge/giftguide/internal/infrastructure"
	"github.com/brandforge/giftguide/pkg/database"
	"github.com/brandforge/giftguide/pkg/delivery"
	"github.com/brandforge/giftguide/pkg/render"
	"github.com/brandforge/giftguide/pkg/storage"
)

// Well-formed development-storage connection string; parsed locally, never dialed.
const testConnectionString = "DefaultEndpointsProtocol=https;AccountName=devstoreaccount1;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;EndpointSuffix=core.windows.net"

func fakeBrowser(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "headless-shell")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("write fake browser: %v", err)
	}
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Database: database.Config{
			Host: "localhost",
			Port: 5432,
			Name: "giftguide",
			User: "giftguide",
		},
		Storage: storage.Config{
			ContainerName:    "guides",
			ConnectionString: testConnectionString,
		},
		Render: render.Config{
			Mode:        render.ModeStatic,
			BinaryPath:  fakeBrowser(t),
			PaperWidth:  8.5,
			PaperHeight: 11,
			Timeout:     "30s",
			MaxSessions: 2,
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("assembles all systems", func(t *testing.T) {
		infra, err := infrastructure.New(testConfig(t))
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		if infra.Lifecycle == nil || infra.Logger == nil {
			t.Error("lifecycle or logger missing")
		}
		if infra.Database == nil {
			t.Error("database system missing")
		}
		if infra.Storage == nil {
			t.Error("storage system missing")
		}
		if infra.Renderer == nil {
			t.Error("render system missing")
		}
	})

	t.Run("dispatcher nil when delivery unconfigured", func(t *testing.T) {
		infra, err := infrastructure.New(testConfig(t))
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		if infra.Dispatcher != nil {
			t.Error("dispatcher present without delivery config")
		}
	})

	t.Run("dispatcher present when delivery configured", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Delivery = delivery.Config{
			Host:    "smtp.example.com",
			Port:    587,
			From:    "guides@example.com",
			Timeout: "15s",
		}

		infra, err := infrastructure.New(cfg)
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		if infra.Dispatcher == nil {
			t.Error("dispatcher missing despite delivery config")
		}
	})

	t.Run("missing browser binary fails startup", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Render.BinaryPath = filepath.Join(t.TempDir(), "no-such-browser")

		if _, err := infrastructure.New(cfg); err == nil {
			t.Fatal("New succeeded with missing browser binary")
		} else if !strings.Contains(err.Error(), "renderer init failed") {
			t.Errorf("error = %v, want renderer init failure", err)
		}
	})

	t.Run("unknown locator mode fails startup", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Render.Mode = "remote"

		if _, err := infrastructure.New(cfg); err == nil {
			t.Fatal("New succeeded with unknown locator mode")
		} else if !strings.Contains(err.Error(), "unknown locator mode") {
			t.Errorf("error = %v, want unknown locator mode", err)
		}
	})
}
