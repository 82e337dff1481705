package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/subburn/subburn/internal/model"
)

// Supported subtitle file extensions
const (
	ExtSRT = ".srt"
	ExtASS = ".ass"
	ExtSSA = ".ssa"
	ExtCSV = ".csv"
)

// ParseError reports a syntax problem in a subtitle file.
type ParseError struct {
	Path   string
	Line   int    // 1-based, 0 when unknown
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

// IsSupportedExt reports whether path has a subtitle extension this package
// can parse.
func IsSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtSRT, ExtASS, ExtSSA, ExtCSV:
		return true
	}
	return false
}

// ParseFile reads a subtitle file and returns its cues. The format is chosen
// by extension; csvOpts is only consulted for CSV input and may be nil to use
// header auto-detection.
func ParseFile(path string, csvOpts *CSVOptions) ([]model.Line, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtSRT:
		return ParseSRTFile(path)
	case ExtASS, ExtSSA:
		return ParseASSFile(path)
	case ExtCSV:
		return ParseCSVFile(path, csvOpts)
	default:
		return nil, fmt.Errorf("unsupported subtitle format %q (expected .srt, .ass, .ssa or .csv)", filepath.Ext(path))
	}
}
