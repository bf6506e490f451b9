package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/decker502/nutriquest/pkg/config"
	"github.com/decker502/nutriquest/pkg/game"
	"github.com/decker502/nutriquest/pkg/tutorial"
)

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

// TestOpenBackends 各后端都能保存并读回存档
func TestOpenBackends(t *testing.T) {
	tests := []struct {
		name    string
		backend string
	}{
		{"memory", config.SaveBackendMemory},
		{"sqlite", config.SaveBackendSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Open(tt.backend, filepath.Join(t.TempDir(), "saves.db"))
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer b.Close()

			if b.Name != tt.backend {
				t.Errorf("Name = %q, want %q", b.Name, tt.backend)
			}

			ctx := context.Background()
			save := &game.PlayerSave{PlayerID: "p", Coins: 7, Tutorial: tutorial.Progress{State: "inactive"}}
			if err := b.Store.Save(ctx, save); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := b.Store.Load(ctx, "p")
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got.Coins != 7 {
				t.Errorf("Coins = %d, want 7", got.Coins)
			}
		})
	}
}

func TestBackendLastPlayer(t *testing.T) {
	mem, err := Open(config.SaveBackendMemory, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := mem.LastPlayer(); got != "" {
		t.Errorf("memory LastPlayer = %q, want empty", got)
	}

	db, err := OpenFromConfig(config.AppConfig{SaveBackend: config.SaveBackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Store.Save(context.Background(), &game.PlayerSave{PlayerID: "zed", Tutorial: tutorial.Progress{State: "inactive"}}); err != nil {
		t.Fatal(err)
	}
	if got := db.LastPlayer(); got != "zed" {
		t.Errorf("sqlite LastPlayer = %q, want zed", got)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
