package config

import (
	"fmt"
	"regexp"
)

// hexColorRe matches the only accepted color syntax, #rrggbb.
var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// x264Presets lists the encoder preset names ffmpeg accepts for libx264.
var x264Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

// CRF bounds accepted by libx264.
const (
	MinCRF = 0
	MaxCRF = 51
)

// ValidHexColor reports whether s is a #rrggbb color.
func ValidHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// ValidPreset reports whether name is a known x264 preset.
func ValidPreset(name string) bool {
	for _, p := range x264Presets {
		if p == name {
			return true
		}
	}
	return false
}

// PresetOptions returns the accepted x264 preset names for UI selection.
func PresetOptions() []string {
	out := make([]string, len(x264Presets))
	copy(out, x264Presets)
	return out
}

// Validate checks the configuration for values the ffmpeg command builder
// cannot represent. The first problem found is returned.
func (c *Config) Validate() error {
	if !ValidHexColor(c.Style.FontColor) {
		return fmt.Errorf("invalid font color %q: expected #rrggbb", c.Style.FontColor)
	}
	if !ValidHexColor(c.Style.OutlineColor) {
		return fmt.Errorf("invalid outline color %q: expected #rrggbb", c.Style.OutlineColor)
	}
	if c.Style.FontSize <= 0 {
		return fmt.Errorf("invalid font size %d: must be positive", c.Style.FontSize)
	}
	if c.Style.OutlineWidth < 0 {
		return fmt.Errorf("invalid outline width %d: must be zero or positive", c.Style.OutlineWidth)
	}
	if c.Encode.CRF < MinCRF || c.Encode.CRF > MaxCRF {
		return fmt.Errorf("invalid crf %d: must be between %d and %d", c.Encode.CRF, MinCRF, MaxCRF)
	}
	if !ValidPreset(c.Encode.Preset) {
		return fmt.Errorf("invalid preset %q", c.Encode.Preset)
	}
	if c.Output.FPS <= 0 {
		return fmt.Errorf("invalid fps %v: must be positive", c.Output.FPS)
	}
	return nil
}
