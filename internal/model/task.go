package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// BurnTask represents a single subtitle burn-in job
type BurnTask struct {
	ID           string
	VideoPath    string
	SubtitlePath string
	OutputPath   string
	Status       TaskStatus
	Progress     float64 // 0.0 to 1.0
	Percent      int     // 0 to 100
	Speed        string  // ffmpeg speed text (e.g., "15.9x")
	DurationSec  float64 // input video duration, 0 if unknown
	LastError    string  // last error message if any
	StartedAt    time.Time
	FinishedAt   time.Time
}

// GetDisplayTitle returns the video file name without its extension,
// falling back to the full path when it cannot be split
func (bt *BurnTask) GetDisplayTitle() string {
	if bt.VideoPath == "" {
		return ""
	}
	name := filepath.Base(bt.VideoPath)
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// GetElapsedString returns elapsed wall time as mm:ss or hh:mm:ss,
// or "—" when the task has not started
func (bt *BurnTask) GetElapsedString() string {
	if bt.StartedAt.IsZero() {
		return "—"
	}
	end := bt.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	total := int(end.Sub(bt.StartedAt).Seconds())
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
