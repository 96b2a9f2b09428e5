package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := filepath.Join(dir, "config.json")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.MaxDebateRounds = 3
	cfg.MaxRiskDiscussRounds = 2

	data, _ := json.Marshal(cfg)
	if err := mgr.UpdateFromJSON(string(data)); err != nil {
		t.Fatalf("UpdateFromJSON: %v", err)
	}

	updated := mgr.Get()
	if updated.MaxDebateRounds != 3 || updated.MaxRiskDiscussRounds != 2 {
		t.Fatalf("rounds = %d/%d, want 3/2", updated.MaxDebateRounds, updated.MaxRiskDiscussRounds)
	}
}

func TestManagerRejectsInvalidRounds(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.MaxDebateRounds = 0
	if err := mgr.Update(cfg); err == nil {
		t.Fatalf("expected validation error for zero debate rounds")
	}
}

func TestManagerWatchReloads(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		reloaded <- cfg
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := mgr.Get()
	cfg.MaxDebateRounds = 5
	if err := writeConfigFile(mgr.Path(), cfg); err != nil {
		t.Fatalf("writeConfigFile: %v", err)
	}

	select {
	case got := <-reloaded:
		if got.MaxDebateRounds != 5 {
			t.Fatalf("reloaded rounds = %d, want 5", got.MaxDebateRounds)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not fire on config change")
	}
}

func TestDefaultConfigRoundsArePositive(t *testing.T) {
	cfg := DefaultConfigWithRoot(t.TempDir())
	if cfg.MaxDebateRounds < 1 || cfg.MaxRiskDiscussRounds < 1 {
		t.Fatalf("default rounds = %d/%d", cfg.MaxDebateRounds, cfg.MaxRiskDiscussRounds)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
