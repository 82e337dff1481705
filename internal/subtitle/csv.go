package subtitle

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/subburn/subburn/internal/model"
)

// Time unit names accepted in CSV mappings
const (
	TimeUnitSeconds = "seconds"
	TimeUnitFrames  = "frames"
)

// DefaultCueDuration is used when a CSV row has no usable end time.
const DefaultCueDuration = 3 * time.Second

// DefaultCSVFPS converts frame counts to seconds when the mapping does not
// specify a rate.
const DefaultCSVFPS = 30.0

// Header names recognized during auto-detection.
const (
	headerStart = "start_time"
	headerEnd   = "end_time"
	headerText  = "text"
)

// CSVOptions tells the CSV parser which columns hold cue data. Columns are
// header names, or decimal strings for positional access. A nil options
// value triggers header auto-detection with positional fallback.
type CSVOptions struct {
	StartCol string
	EndCol   string // empty means no end column; cues default to 3 seconds
	TextCol  string
	TimeUnit string  // "seconds" (default) or "frames"
	FPS      float64 // frames-per-second for frame timings
}

// ParseCSVFile parses subtitle cues out of a CSV file using the supplied
// column mapping.
func ParseCSVFile(path string, opts *CSVOptions) ([]model.Line, error) {
	content, err := readFileUTF8(path)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	if len(records) == 0 {
		return nil, nil
	}

	if opts == nil {
		opts = &CSVOptions{}
	}
	opts = fillCSVOptions(opts, records[0])

	startIdx, hasHeader, err := resolveColumn(records[0], opts.StartCol)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	textIdx, textHeader, err := resolveColumn(records[0], opts.TextCol)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: err.Error()}
	}
	hasHeader = hasHeader || textHeader

	endIdx := -1
	if opts.EndCol != "" {
		idx, endHeader, err := resolveColumn(records[0], opts.EndCol)
		if err == nil {
			endIdx = idx
			hasHeader = hasHeader || endHeader
		}
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultCSVFPS
	}

	rows := records
	if hasHeader {
		rows = records[1:]
	}

	var lines []model.Line
	for i, row := range rows {
		if startIdx >= len(row) || textIdx >= len(row) {
			return nil, &ParseError{Path: path, Line: rowNumber(i, hasHeader), Reason: fmt.Sprintf("row has %d columns", len(row))}
		}

		start, err := csvTime(row[startIdx], opts.TimeUnit, fps)
		if err != nil {
			return nil, &ParseError{Path: path, Line: rowNumber(i, hasHeader), Reason: err.Error()}
		}

		end := time.Duration(-1)
		if endIdx >= 0 && endIdx < len(row) {
			if v, err := csvTime(row[endIdx], opts.TimeUnit, fps); err == nil {
				end = v
			}
		}
		if end <= start {
			end = start + DefaultCueDuration
		}

		lines = append(lines, model.Line{Start: start, End: end, Text: row[textIdx]})
	}
	return lines, nil
}

// fillCSVOptions completes a partial mapping from well-known header names,
// falling back to the first three columns in start, end, text order. The
// input is not modified.
func fillCSVOptions(opts *CSVOptions, header []string) *CSVOptions {
	guessed := &CSVOptions{StartCol: "0", EndCol: "1", TextCol: "2", TimeUnit: TimeUnitSeconds}
	for _, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case headerStart:
			guessed.StartCol = headerStart
		case headerEnd:
			guessed.EndCol = headerEnd
		case headerText:
			guessed.TextCol = headerText
		}
	}

	merged := *opts
	if merged.StartCol == "" {
		merged.StartCol = guessed.StartCol
	}
	if merged.EndCol == "" {
		merged.EndCol = guessed.EndCol
	}
	if merged.TextCol == "" {
		merged.TextCol = guessed.TextCol
	}
	if merged.TimeUnit == "" {
		merged.TimeUnit = guessed.TimeUnit
	}
	return &merged
}

// resolveColumn maps a column spec to an index. Named columns are looked up
// in the header row; the second return reports whether the lookup consumed a
// header.
func resolveColumn(header []string, col string) (int, bool, error) {
	if col == "" {
		return 0, false, fmt.Errorf("column not specified")
	}
	if idx, err := strconv.Atoi(col); err == nil {
		if idx < 0 {
			return 0, false, fmt.Errorf("invalid column index %d", idx)
		}
		return idx, false, nil
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), col) {
			return i, true, nil
		}
	}
	return 0, false, fmt.Errorf("column %q not found in header", col)
}

func csvTime(value, unit string, fps float64) (time.Duration, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time value %q", value)
	}
	if unit == TimeUnitFrames {
		v /= fps
	}
	return time.Duration(v * float64(time.Second)), nil
}

func rowNumber(i int, hasHeader bool) int {
	if hasHeader {
		return i + 2
	}
	return i + 1
}
