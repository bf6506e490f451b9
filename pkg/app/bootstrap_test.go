package app

import (
	"os"
	"testing"

	"golang.org/x/text/language"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/embedded"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

func TestBootstrap(t *testing.T) {
	if _, err := os.Stat("../../data/strings"); err != nil {
		t.Skipf("Skipping test: data not found: %v", err)
	}
	embedded.Init(os.DirFS("../.."))
	t.Cleanup(func() { embedded.Init(nil) })

	cfg, backend, err := Bootstrap(config.AppConfig{
		Verbose:        true,
		Player:         "p1",
		SaveBackend:    config.SaveBackendMemory,
		LocationPolicy: "strict",
		Lang:           "pt-BR",
	})
	if err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	defer backend.Close()

	if cfg.PlayerID != "p1" || cfg.Store == nil {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Session.LocationPolicy != tutorial.LocationStrict {
		t.Errorf("LocationPolicy = %s", cfg.Session.LocationPolicy)
	}
	if len(cfg.Session.Steps) != 9 {
		t.Errorf("Expected 9 catalog steps, got %d", len(cfg.Session.Steps))
	}
	if cfg.Strings == nil || cfg.Strings.Language() != language.BrazilianPortuguese {
		t.Errorf("Expected pt-BR strings, got %v", cfg.Strings)
	}
	if got := cfg.Settings.GetSettings().Language; got != "pt-BR" {
		t.Errorf("Settings language = %q", got)
	}
}

func TestBootstrapRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AppConfig
	}{
		{"backend", config.AppConfig{SaveBackend: "redis"}},
		{"policy", config.AppConfig{SaveBackend: config.SaveBackendMemory, LocationPolicy: "loose"}},
		{"catalog", config.AppConfig{SaveBackend: config.SaveBackendMemory, CatalogPath: "/nonexistent/catalog.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Bootstrap(tt.cfg); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
