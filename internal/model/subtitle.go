package model

import (
	"fmt"
	"time"
)

// Line represents a single subtitle cue. Text uses the ASS line break
// sequence \N for multi-line cues.
type Line struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Duration returns the display duration of the cue
func (l Line) Duration() time.Duration {
	return l.End - l.Start
}

// ASSDialogue renders the cue as an ASS events line using the Default style
func (l Line) ASSDialogue() string {
	return fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s",
		ASSTimestamp(l.Start), ASSTimestamp(l.End), l.Text)
}

// ASSTimestamp formats a duration as H:MM:SS.CC (centisecond precision)
func ASSTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d / time.Second
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	centis := (d % time.Second) / (10 * time.Millisecond)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
