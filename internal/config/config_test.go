package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Style.FontFamily != "Arial" {
		t.Errorf("Expected default font family Arial, got %s", cfg.Style.FontFamily)
	}
	if cfg.Encode.CRF != 23 {
		t.Errorf("Expected default CRF 23, got %d", cfg.Encode.CRF)
	}
	if cfg.Encode.Preset != "veryfast" {
		t.Errorf("Expected default preset veryfast, got %s", cfg.Encode.Preset)
	}
	if !cfg.Style.Shadow {
		t.Error("Expected shadow enabled by default")
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("Load() should create the config file: %v", err)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	cfg.Style.FontSize = 48
	cfg.Style.Bold = true
	cfg.Encode.CRF = 18
	cfg.CSVMappings["/subs/a.csv"] = CSVMapping{
		StartCol: "start_time", EndCol: "end_time", TextCol: "text",
		TimeUnit: "frames", FPS: 24,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if reloaded.Style.FontSize != 48 {
		t.Errorf("Expected font size 48 after reload, got %d", reloaded.Style.FontSize)
	}
	if !reloaded.Style.Bold {
		t.Error("Expected bold true after reload")
	}
	if reloaded.Encode.CRF != 18 {
		t.Errorf("Expected CRF 18 after reload, got %d", reloaded.Encode.CRF)
	}
	m, ok := reloaded.CSVMappings["/subs/a.csv"]
	if !ok {
		t.Fatal("Expected CSV mapping to survive reload")
	}
	if m.TimeUnit != "frames" || m.FPS != 24 {
		t.Errorf("Unexpected mapping after reload: %+v", m)
	}
}

func TestLoad_CorruptFileRegenerated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("style = {{{not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with corrupt file should recover, got error: %v", err)
	}
	if cfg.Encode.Preset != "veryfast" {
		t.Errorf("Expected defaults after recovery, got preset %s", cfg.Encode.Preset)
	}

	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("Corrupt file should be kept as .bak: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read regenerated config: %v", err)
	}
	if !strings.Contains(string(data), "font_family") {
		t.Error("Regenerated config should contain defaults")
	}
}

func TestClone_DoesNotShareMappings(t *testing.T) {
	cfg := Default()
	cfg.CSVMappings["x.csv"] = CSVMapping{TextCol: "text"}

	clone := cfg.Clone()
	clone.Style.FontSize = 64
	clone.CSVMappings["y.csv"] = CSVMapping{TextCol: "caption"}

	if cfg.Style.FontSize == 64 {
		t.Error("Clone() must not alias style values")
	}
	if _, ok := cfg.CSVMappings["y.csv"]; ok {
		t.Error("Clone() must not alias the mappings map")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad font color", func(c *Config) { c.Style.FontColor = "ffffff" }, true},
		{"short hex", func(c *Config) { c.Style.FontColor = "#fff" }, true},
		{"bad outline color", func(c *Config) { c.Style.OutlineColor = "#zzzzzz" }, true},
		{"zero font size", func(c *Config) { c.Style.FontSize = 0 }, true},
		{"negative outline", func(c *Config) { c.Style.OutlineWidth = -1 }, true},
		{"crf too high", func(c *Config) { c.Encode.CRF = 52 }, true},
		{"crf lower bound", func(c *Config) { c.Encode.CRF = 0 }, false},
		{"unknown preset", func(c *Config) { c.Encode.Preset = "turbo" }, true},
		{"zero fps", func(c *Config) { c.Output.FPS = 0 }, true},
	}

	for _, test := range tests {
		cfg := Default()
		test.mutate(cfg)
		err := cfg.Validate()
		if test.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", test.name)
		}
		if !test.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

func TestValidHexColor(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"#ffffff", true},
		{"#FFCC00", true},
		{"#000000", true},
		{"ffffff", false},
		{"#fff", false},
		{"#gggggg", false},
		{"", false},
	}

	for _, test := range tests {
		if result := ValidHexColor(test.input); result != test.expected {
			t.Errorf("ValidHexColor(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}
