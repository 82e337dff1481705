package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/subburn/subburn/internal/model"
)

const srtArrow = "-->"

// ParseSRTFile parses a SubRip file into cues. Literal newlines inside a cue
// become the ASS \N sequence so the text survives the trip into a filter
// expression.
func ParseSRTFile(path string) ([]model.Line, error) {
	content, err := readFileUTF8(path)
	if err != nil {
		return nil, err
	}
	return parseSRT(path, content)
}

func parseSRT(path, content string) ([]model.Line, error) {
	content = strings.TrimSpace(normalizeNewlines(content))
	if content == "" {
		return nil, nil
	}

	var lines []model.Line
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		rows := strings.Split(block, "\n")
		// Optional numeric index row before the timing row.
		if len(rows) > 1 && isSRTIndex(rows[0]) {
			rows = rows[1:]
		}
		if !strings.Contains(rows[0], srtArrow) {
			return nil, &ParseError{Path: path, Reason: fmt.Sprintf("expected timing row, got %q", rows[0])}
		}

		parts := strings.SplitN(rows[0], srtArrow, 2)
		start, err := ParseSRTTimestamp(parts[0])
		if err != nil {
			return nil, &ParseError{Path: path, Reason: err.Error()}
		}
		// Timing rows may carry position hints after the end timestamp.
		endText := strings.TrimSpace(parts[1])
		if idx := strings.IndexByte(endText, ' '); idx > 0 {
			endText = endText[:idx]
		}
		end, err := ParseSRTTimestamp(endText)
		if err != nil {
			return nil, &ParseError{Path: path, Reason: err.Error()}
		}

		text := strings.Join(rows[1:], `\N`)
		lines = append(lines, model.Line{Start: start, End: end, Text: text})
	}
	return lines, nil
}

func isSRTIndex(row string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(row))
	return err == nil
}

// ParseSRTTimestamp parses HH:MM:SS,mmm into a duration. A period before the
// milliseconds is tolerated since many tools emit it.
func ParseSRTTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")

	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}
