package config

import (
	"path/filepath"
	"testing"
)

func TestGetConfigPath(t *testing.T) {
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	path := m.GetConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("config file = %s, want config.json", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "promptlab" {
		t.Errorf("config dir = %s, want promptlab", filepath.Dir(path))
	}
}

func TestLoad_NotExists(t *testing.T) {
	// Point the manager at an empty directory; Load must return defaults.
	m := &Manager{configDir: t.TempDir()}

	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.PromptsDir != "" || cfg.Verbose {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := &Manager{configDir: t.TempDir()}

	cfg := &Config{PromptsDir: "/srv/prompts", DefaultAuthor: "team-a", Verbose: true}
	if err := m.Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !m.Exists() {
		t.Error("Exists should be true after Save")
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.PromptsDir != cfg.PromptsDir || loaded.DefaultAuthor != cfg.DefaultAuthor || loaded.Verbose != cfg.Verbose {
		t.Errorf("Loaded config %+v, want %+v", loaded, cfg)
	}
}
