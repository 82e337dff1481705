package ffmpeg

import (
	"fmt"
	"strings"

	"github.com/subburn/subburn/internal/config"
)

// ASSColor converts a #rrggbb hex color to the libass &H00BBGGRR form used
// inside force_style and ASS style lines.
func ASSColor(hex string) (string, error) {
	if !config.ValidHexColor(hex) {
		return "", fmt.Errorf("invalid hex color %q: expected #rrggbb", hex)
	}
	c := strings.TrimPrefix(hex, "#")
	r, g, b := c[0:2], c[2:4], c[4:6]
	return fmt.Sprintf("&H00%s%s%s", strings.ToUpper(b), strings.ToUpper(g), strings.ToUpper(r)), nil
}

// ForceStyle renders the style configuration as a libass force_style string
// for the subtitles filter. Shadow is always emitted so a disabled shadow
// overrides whatever the subtitle file declares.
func ForceStyle(style config.Style) (string, error) {
	var parts []string

	if style.FontFamily != "" {
		parts = append(parts, "FontName="+style.FontFamily)
	}
	if style.FontSize > 0 {
		parts = append(parts, fmt.Sprintf("FontSize=%d", style.FontSize))
	}
	if style.FontColor != "" {
		v, err := ASSColor(style.FontColor)
		if err != nil {
			return "", err
		}
		parts = append(parts, "PrimaryColour="+v)
	}
	if style.OutlineColor != "" {
		v, err := ASSColor(style.OutlineColor)
		if err != nil {
			return "", err
		}
		parts = append(parts, "OutlineColour="+v)
	}
	parts = append(parts, fmt.Sprintf("Outline=%d", style.OutlineWidth))
	if style.Bold {
		parts = append(parts, "Bold=1")
	}
	if style.Shadow {
		parts = append(parts, "Shadow=1")
	} else {
		parts = append(parts, "Shadow=0")
	}
	if style.MarginV > 0 {
		parts = append(parts, fmt.Sprintf("MarginV=%d", style.MarginV))
	}

	return strings.Join(parts, ","), nil
}
