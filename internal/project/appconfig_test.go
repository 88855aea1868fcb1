package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/cutlist/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultLengthIncrease = 10
	cfg.DefaultStdThicknesses = "6;12;18"
	cfg.Language = "fr"
	cfg.LogFormat = "json"
	cfg.DefaultPreset = "MDF"
	cfg.RecentScenes = []string{"/tmp/kitchen.json", "/tmp/shed.yaml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultLengthIncrease != 10 {
		t.Errorf("expected DefaultLengthIncrease=10, got %f", loaded.DefaultLengthIncrease)
	}
	if loaded.DefaultStdThicknesses != "6;12;18" {
		t.Errorf("expected DefaultStdThicknesses=6;12;18, got %s", loaded.DefaultStdThicknesses)
	}
	if loaded.Language != "fr" || loaded.LogFormat != "json" || loaded.DefaultPreset != "MDF" {
		t.Errorf("unexpected preferences: %+v", loaded)
	}
	if len(loaded.RecentScenes) != 2 {
		t.Errorf("expected 2 recent scenes, got %d", len(loaded.RecentScenes))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultStdThicknesses != defaults.DefaultStdThicknesses {
		t.Errorf("expected default thicknesses %s, got %s", defaults.DefaultStdThicknesses, cfg.DefaultStdThicknesses)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"language":"fr"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Language != "fr" {
		t.Errorf("expected language fr, got %s", cfg.Language)
	}
	if cfg.DefaultStdThicknesses != model.DefaultStdThicknesses {
		t.Errorf("expected default thicknesses, got %s", cfg.DefaultStdThicknesses)
	}
	if !cfg.DefaultPieceNumberLetter {
		t.Error("expected letter numbering by default")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentScenes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"default_std_thicknesses":"18","recent_scenes":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentScenes == nil {
		t.Error("RecentScenes should not be nil after loading")
	}
}

func TestDefaultPaths(t *testing.T) {
	if filepath.Base(DefaultConfigDir()) != ".cutlist" {
		t.Errorf("unexpected config dir %s", DefaultConfigDir())
	}
	if filepath.Dir(DefaultConfigPath()) != DefaultConfigDir() || filepath.Dir(DefaultPresetsPath()) != DefaultConfigDir() {
		t.Error("config and presets should live in the config dir")
	}
}
