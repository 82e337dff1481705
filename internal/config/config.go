package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppDirName is the directory under the user config dir holding config and logs
const AppDirName = "subburn"

// ConfigFileName is the persisted settings file name
const ConfigFileName = "config.toml"

// Style contains the default subtitle styling applied to burns.
type Style struct {
	FontFamily   string `toml:"font_family"`
	FontSize     int    `toml:"font_size"`
	FontColor    string `toml:"font_color"`
	OutlineColor string `toml:"outline_color"`
	OutlineWidth int    `toml:"outline_width"`
	Bold         bool   `toml:"bold"`
	Shadow       bool   `toml:"shadow"`
	MarginV      int    `toml:"margin_v"`
}

// Encode contains encoder controls passed to ffmpeg.
type Encode struct {
	CRF       int    `toml:"crf"`
	Preset    string `toml:"preset"`
	CodecCopy bool   `toml:"codec_copy"`
}

// Output contains output location and timing defaults.
type Output struct {
	Dir string  `toml:"dir"` // empty means <video dir>/output
	FPS float64 `toml:"fps"` // used for frame-based CSV timings
}

// UI contains interface preferences.
type UI struct {
	Language string `toml:"language"` // "en", "ja" or "system"
}

// CSVMapping describes how to read subtitle cues from one CSV file.
type CSVMapping struct {
	StartCol string  `toml:"start_col"`
	EndCol   string  `toml:"end_col"`
	TextCol  string  `toml:"text_col"`
	TimeUnit string  `toml:"time_unit"` // "seconds" or "frames"
	FPS      float64 `toml:"fps"`
}

// Config is the persisted application configuration shared by the GUI and CLI.
type Config struct {
	Style       Style                 `toml:"style"`
	Encode      Encode                `toml:"encode"`
	Output      Output                `toml:"output"`
	UI          UI                    `toml:"ui"`
	CSVMappings map[string]CSVMapping `toml:"csv_mappings"`

	path string
}

// Default returns the built-in configuration values.
func Default() *Config {
	return &Config{
		Style: Style{
			FontFamily:   "Arial",
			FontSize:     32,
			FontColor:    "#ffffff",
			OutlineColor: "#000000",
			OutlineWidth: 2,
			Bold:         false,
			Shadow:       true,
			MarginV:      10,
		},
		Encode: Encode{
			CRF:       23,
			Preset:    "veryfast",
			CodecCopy: true,
		},
		Output: Output{
			Dir: "",
			FPS: 30,
		},
		UI: UI{
			Language: "system",
		},
		CSVMappings: map[string]CSVMapping{},
	}
}

// DefaultPath returns the standard config file location for the current user.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, AppDirName, ConfigFileName), nil
}

// Load reads the configuration from path, creating it with defaults when
// missing. A file that fails to parse is renamed to <path>.bak and replaced
// with defaults so a corrupt config never blocks startup. An empty path uses
// DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		backup := path + ".bak"
		if renameErr := os.Rename(path, backup); renameErr != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg = Default()
		cfg.path = path
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("regenerate config after parse failure: %w", saveErr)
		}
		return cfg, nil
	}
	if cfg.CSVMappings == nil {
		cfg.CSVMappings = map[string]CSVMapping{}
	}

	return cfg, nil
}

// Path returns the file this configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its path atomically (temp file + rename).
func (c *Config) Save() error {
	if c.path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = p
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Clone returns a deep copy for per-run overrides that must not touch the
// persisted file.
func (c *Config) Clone() *Config {
	clone := *c
	clone.CSVMappings = make(map[string]CSVMapping, len(c.CSVMappings))
	for k, v := range c.CSVMappings {
		clone.CSVMappings[k] = v
	}
	return &clone
}
