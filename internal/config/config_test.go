package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// =============================================================================
// GetDefault Tests
// =============================================================================

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()

	if cfg == nil {
		t.Fatal("GetDefault returned nil")
	}
	if cfg.DryRun {
		t.Error("expected DryRun to be disabled by default")
	}
	if cfg.Output != "summary" {
		t.Errorf("expected Output 'summary', got %q", cfg.Output)
	}
	if !cfg.Color {
		t.Error("expected Color to be enabled by default")
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected LogLevel 'warn', got %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

// =============================================================================
// Load / Save Tests
// =============================================================================

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(*cfg, *GetDefault()) {
		t.Errorf("Load of missing file = %+v, want defaults", cfg)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("dry_run: true\noutput: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.DryRun {
		t.Error("expected DryRun from file")
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want json", cfg.Output)
	}
	if !cfg.Color {
		t.Error("Color default lost when absent from file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("dry_run: [unterminated\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output: xml\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := GetDefault()
	cfg.Verbose = true
	cfg.Output = "table"
	cfg.LogFile = "/var/log/organize.log"

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(*loaded, *cfg) {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

// =============================================================================
// Validate Tests
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"uppercase output", func(c *Config) { c.Output = "JSON" }, false},
		{"yml alias", func(c *Config) { c.Output = "yml" }, false},
		{"unknown output", func(c *Config) { c.Output = "xml" }, true},
		{"empty output", func(c *Config) { c.Output = "" }, true},
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, false},
		{"empty level", func(c *Config) { c.LogLevel = "" }, false},
		{"unknown level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"absolute log file", func(c *Config) { c.LogFile = "/tmp/organize.log" }, false},
		{"relative log file", func(c *Config) { c.LogFile = "organize.log" }, true},
		{"absolute protected path", func(c *Config) { c.ProtectedPaths = []string{"/srv/media"} }, false},
		{"relative protected path", func(c *Config) { c.ProtectedPaths = []string{"media"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveLogLevel(t *testing.T) {
	cfg := GetDefault()
	if got := cfg.EffectiveLogLevel(); got != "warn" {
		t.Errorf("EffectiveLogLevel() = %q, want warn", got)
	}

	cfg.LogLevel = "INFO"
	if got := cfg.EffectiveLogLevel(); got != "info" {
		t.Errorf("EffectiveLogLevel() = %q, want info", got)
	}

	cfg.Verbose = true
	if got := cfg.EffectiveLogLevel(); got != "debug" {
		t.Errorf("EffectiveLogLevel() with Verbose = %q, want debug", got)
	}

	cfg = &Config{}
	if got := cfg.EffectiveLogLevel(); got != "warn" {
		t.Errorf("EffectiveLogLevel() on zero config = %q, want warn", got)
	}
}

// =============================================================================
// Path Tests
// =============================================================================

func TestGetConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	want := filepath.Join(home, ".config", "folder-organizer", "config.yaml")
	if path != want {
		t.Errorf("GetConfigPath() = %q, want %q", path, want)
	}
}

func TestEnsureConfigExists(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := EnsureConfigExists()
	if err != nil {
		t.Fatalf("EnsureConfigExists failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Existing file must not be overwritten
	if err := os.WriteFile(path, []byte("output: yaml\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureConfigExists(); err != nil {
		t.Fatalf("second EnsureConfigExists failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output != "yaml" {
		t.Errorf("existing config overwritten, Output = %q", cfg.Output)
	}
}

func TestLoadYMLAliasAndProtectedPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "output: yml\nprotected_paths:\n  - /srv/media\n  - /home/shared\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output != "yml" {
		t.Errorf("Output = %q, want yml", cfg.Output)
	}
	if len(cfg.ProtectedPaths) != 2 || cfg.ProtectedPaths[0] != "/srv/media" {
		t.Errorf("ProtectedPaths = %v", cfg.ProtectedPaths)
	}
}
