package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/subburn/subburn/internal/model"
)

// Number of comma-separated fields before the text in a Dialogue line.
const assDialogueFields = 10

// ParseASSFile parses an Advanced SubStation Alpha (or SSA) file, returning
// the dialogue cues with their original \N line breaks.
func ParseASSFile(path string) ([]model.Line, error) {
	content, err := readFileUTF8(path)
	if err != nil {
		return nil, err
	}
	return parseASS(path, content)
}

func parseASS(path, content string) ([]model.Line, error) {
	var lines []model.Line
	inEvents := false

	for i, row := range strings.Split(normalizeNewlines(content), "\n") {
		row = strings.TrimSpace(row)
		switch {
		case row == "":
			continue
		case strings.HasPrefix(row, "["):
			inEvents = strings.EqualFold(row, "[Events]")
			continue
		case !inEvents, !strings.HasPrefix(row, "Dialogue:"):
			continue
		}

		body := strings.TrimSpace(strings.TrimPrefix(row, "Dialogue:"))
		// The text field is last and may itself contain commas.
		fields := strings.SplitN(body, ",", assDialogueFields)
		if len(fields) < assDialogueFields {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: fmt.Sprintf("dialogue row has %d fields, expected %d", len(fields), assDialogueFields)}
		}

		start, err := ParseASSTimestamp(fields[1])
		if err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: err.Error()}
		}
		end, err := ParseASSTimestamp(fields[2])
		if err != nil {
			return nil, &ParseError{Path: path, Line: i + 1, Reason: err.Error()}
		}

		lines = append(lines, model.Line{Start: start, End: end, Text: fields[9]})
	}
	return lines, nil
}

// ParseASSTimestamp parses H:MM:SS.CC into a duration.
func ParseASSTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	hms := strings.Split(value, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	secParts := strings.SplitN(hms[2], ".", 2)
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(secParts[0])
	if errH != nil || errM != nil || errS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}

	var centis int
	if len(secParts) == 2 {
		c, err := strconv.Atoi(secParts[1])
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		centis = c
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(centis)*10*time.Millisecond, nil
}
