package subtitle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/ffmpeg"
	"github.com/subburn/subburn/internal/model"
)

// Shadow depth written into the generated style when shadow is enabled.
const assShadowDepth = 3

const assScriptInfo = `[Script Info]
ScriptType: v4.00+
Collisions: Normal
PlayResX: 1920
PlayResY: 1080
Timer: 100.0000

`

const assStylesFormat = `[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
`

const assEventsFormat = `[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// WriteASS renders a complete ASS script carrying one Default style derived
// from the configuration, followed by the given cues. Cues parsed from CSV go
// through here so ffmpeg can burn them like any other subtitle file.
func WriteASS(w io.Writer, lines []model.Line, style config.Style) error {
	primary, err := ffmpeg.ASSColor(style.FontColor)
	if err != nil {
		return fmt.Errorf("font color: %w", err)
	}
	outline, err := ffmpeg.ASSColor(style.OutlineColor)
	if err != nil {
		return fmt.Errorf("outline color: %w", err)
	}

	bold := 0
	if style.Bold {
		bold = -1
	}
	shadow := 0
	if style.Shadow {
		shadow = assShadowDepth
	}

	if _, err := io.WriteString(w, assScriptInfo); err != nil {
		return err
	}
	if _, err := io.WriteString(w, assStylesFormat); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "Style: Default,%s,%d,%s,&H000000FF,%s,&H64000000,%d,0,0,0,100,100,0,0,1,%d,%d,2,10,10,%d,1\n\n",
		style.FontFamily, style.FontSize, primary, outline, bold, style.OutlineWidth, shadow, style.MarginV)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, assEventsFormat); err != nil {
		return err
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line.ASSDialogue()); err != nil {
			return err
		}
	}
	return nil
}

// WriteTempASS writes the cues to a generated ASS file under the system temp
// dir and returns its path. The caller removes the file when the burn ends.
func WriteTempASS(lines []model.Line, style config.Style) (string, error) {
	f, err := os.CreateTemp("", "subburn-*.ass")
	if err != nil {
		return "", fmt.Errorf("create temp subtitle file: %w", err)
	}
	defer f.Close()

	if err := WriteASS(f, lines, style); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return filepath.Clean(f.Name()), nil
}
