package ffmpeg

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/subburn/subburn/internal/config"
)

// FFmpeg invocation constants
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	// Encoder settings for the burn path
	VideoCodec = "libx264"
	AudioCodec = "aac"

	// Progress reporting
	ProgressPipeTarget = "pipe:2"

	// Output naming
	OutputSuffix     = "_sub"
	DefaultOutputDir = "output"
)

// Job describes one ffmpeg invocation to burn subtitles onto a video.
type Job struct {
	VideoPath    string
	SubtitlePath string // empty means no filter; plain remux/copy
	OutputPath   string
	Style        config.Style
	Encode       config.Encode
}

// BuildArgs constructs the ffmpeg argument list for a job. The binary name
// itself is not included.
func BuildArgs(job Job) ([]string, error) {
	if job.VideoPath == "" || job.OutputPath == "" {
		return nil, fmt.Errorf("video path and output path are required")
	}

	args := []string{"-y", "-i", job.VideoPath}

	filtered := job.SubtitlePath != ""
	if filtered {
		expr, err := SubtitlesFilter(job.SubtitlePath, job.Style)
		if err != nil {
			return nil, err
		}
		args = append(args, "-vf", expr)
	}

	// Stream copy is only valid when no filter touches the frames.
	if job.Encode.CodecCopy && !filtered {
		args = append(args, "-c:v", "copy", "-c:a", "copy")
	} else {
		// CRF 0 is valid (lossless); only a negative value means unset.
		crf := job.Encode.CRF
		if crf < 0 {
			crf = config.Default().Encode.CRF
		}
		preset := job.Encode.Preset
		if preset == "" {
			preset = config.Default().Encode.Preset
		}
		args = append(args,
			"-c:v", VideoCodec,
			"-crf", strconv.Itoa(crf),
			"-preset", preset,
			"-c:a", AudioCodec,
		)
	}

	args = append(args, "-progress", ProgressPipeTarget, "-nostats")
	args = append(args, job.OutputPath)
	return args, nil
}

// SubtitlesFilter builds the subtitles filter expression for one file,
// embedding the style as a force_style option.
func SubtitlesFilter(subtitlePath string, style config.Style) (string, error) {
	forceStyle, err := ForceStyle(style)
	if err != nil {
		return "", err
	}
	escaped := EscapeFilterPath(subtitlePath)
	if forceStyle == "" {
		return fmt.Sprintf("subtitles='%s'", escaped), nil
	}
	return fmt.Sprintf("subtitles='%s':force_style='%s'", escaped, forceStyle), nil
}

// EscapeFilterPath escapes a file path for use inside an ffmpeg filter
// expression. Backslashes become forward slashes first so Windows paths
// survive, then the filter metacharacters are escaped.
func EscapeFilterPath(path string) string {
	p := filepath.ToSlash(path)
	p = strings.ReplaceAll(p, `\`, `\\`)
	return strings.ReplaceAll(p, ":", `\:`)
}

// DefaultOutputPath derives the output file location for a video. With a
// configured directory the file lands there; otherwise it goes to an
// "output" directory next to the video (matching the GUI default). The name
// is always <stem>_sub<ext>.
func DefaultOutputPath(videoPath, outputDir string) string {
	base := filepath.Base(videoPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := stem + OutputSuffix + ext

	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(videoPath), DefaultOutputDir, name)
}

// SiblingOutputPath derives <stem>_sub<ext> directly next to the video. The
// CLI uses this when no output flag and no configured directory are present.
func SiblingOutputPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + OutputSuffix + ext
}
