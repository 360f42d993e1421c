package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workflow.DefaultWIPLimit != 5 {
		t.Errorf("Expected default WIP limit 5, got %d", cfg.Workflow.DefaultWIPLimit)
	}
	if cfg.Database.Path != "" {
		t.Errorf("Expected empty database path default, got %q", cfg.Database.Path)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		Database: DatabaseConfig{Path: "/tmp/test-flowboard.db"},
		Workflow: WorkflowConfig{DefaultWIPLimit: 8},
		Daemon:   DaemonConfig{SocketPath: "/tmp/test-daemon.sock"},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Database.Path != "/tmp/test-flowboard.db" {
		t.Errorf("Expected saved database path, got %q", loaded.Database.Path)
	}
	if loaded.Workflow.DefaultWIPLimit != 8 {
		t.Errorf("Expected WIP limit 8, got %d", loaded.Workflow.DefaultWIPLimit)
	}
	if loaded.Daemon.SocketPath != "/tmp/test-daemon.sock" {
		t.Errorf("Expected saved socket path, got %q", loaded.Daemon.SocketPath)
	}
}

func TestLoadFillsMissingValues(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	configDir := filepath.Join(configHome, "flowboard")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	partial := []byte("database:\n  path: /tmp/partial.db\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), partial, 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/partial.db" {
		t.Errorf("Expected database path from file, got %q", cfg.Database.Path)
	}
	if cfg.Workflow.DefaultWIPLimit != 5 {
		t.Errorf("Expected defaulted WIP limit 5, got %d", cfg.Workflow.DefaultWIPLimit)
	}
}

func TestSocketPathDefault(t *testing.T) {
	cfg := defaultConfig()
	path, err := cfg.SocketPath()
	if err != nil {
		t.Fatalf("SocketPath failed: %v", err)
	}
	if filepath.Base(path) != "daemon.sock" {
		t.Errorf("Expected default socket name daemon.sock, got %q", path)
	}

	cfg.Daemon.SocketPath = "/run/custom.sock"
	path, err = cfg.SocketPath()
	if err != nil {
		t.Fatalf("SocketPath failed: %v", err)
	}
	if path != "/run/custom.sock" {
		t.Errorf("Expected configured socket path, got %q", path)
	}
}
