package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/decker502/nutriquest/pkg/config"
)

// TestParseFlagsOverridesEnv 命令行参数覆盖环境变量
func TestParseFlagsOverridesEnv(t *testing.T) {
	t.Setenv("NUTRIQUEST_SAVE_BACKEND", "memory")
	t.Setenv("NUTRIQUEST_LANG", "pt-BR")

	cfg, err := parseFlags([]string{"--backend", "sqlite", "--sqlite-path", "x.db", "--location-policy", "strict"})
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if cfg.SaveBackend != config.SaveBackendSQLite || cfg.SQLitePath != "x.db" {
		t.Errorf("Flags did not override env: %+v", cfg)
	}
	if cfg.Lang != "pt-BR" || cfg.LocationPolicy != "strict" {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestParseFlagsInvalid(t *testing.T) {
	if _, err := parseFlags([]string{"--backend", "redis"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
	if _, err := parseFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

func TestRunExitCodes(t *testing.T) {
	if got := run([]string{"--backend", "redis"}); got != 2 {
		t.Errorf("run with bad flags = %d, want 2", got)
	}
	if got := run([]string{"--backend", "memory", "--location-policy", "sideways"}); got != 2 {
		t.Errorf("run with bad policy = %d, want 2", got)
	}
}

// TestRunClosesBackendOnInitFailure 游戏初始化失败时仍关闭 sqlite 存档
func TestRunClosesBackendOnInitFailure(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	dbPath := filepath.Join(t.TempDir(), "saves.db")
	if got := run([]string{"--backend", "sqlite", "--sqlite-path", dbPath, "--player", "../bad"}); got != 1 {
		t.Fatalf("run = %d, want 1", got)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Expected database file: %v", err)
	}
	// WAL 文件只在最后一个连接关闭时被清理
	if _, err := os.Stat(dbPath + "-wal"); !os.IsNotExist(err) {
		t.Errorf("Expected %s-wal to be removed after close, stat err = %v", dbPath, err)
	}
}
