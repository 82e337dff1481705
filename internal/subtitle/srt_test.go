package subtitle

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseSRTFile(t *testing.T) {
	content := "1\n" +
		"00:00:01,000 --> 00:00:03,500\n" +
		"Hello world\n" +
		"\n" +
		"2\n" +
		"00:00:04,200 --> 00:00:06,000\n" +
		"Second line\n" +
		"wraps here\n"

	path := writeTempFile(t, "basic.srt", content)
	lines, err := ParseSRTFile(path)
	if err != nil {
		t.Fatalf("ParseSRTFile() error: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("Expected 2 cues, got %d", len(lines))
	}
	if lines[0].Start != 1*time.Second {
		t.Errorf("First cue start = %v, expected 1s", lines[0].Start)
	}
	if lines[0].End != 3500*time.Millisecond {
		t.Errorf("First cue end = %v, expected 3.5s", lines[0].End)
	}
	if lines[0].Text != "Hello world" {
		t.Errorf("First cue text = %q", lines[0].Text)
	}
	if lines[1].Text != `Second line\Nwraps here` {
		t.Errorf("Multi-line cue should join with \\N, got %q", lines[1].Text)
	}
}

func TestParseSRTFile_CRLFAndPeriodSeparator(t *testing.T) {
	content := "1\r\n00:00:00.500 --> 00:00:02.000\r\nPeriod separators\r\n"

	path := writeTempFile(t, "crlf.srt", content)
	lines, err := ParseSRTFile(path)
	if err != nil {
		t.Fatalf("ParseSRTFile() error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected 1 cue, got %d", len(lines))
	}
	if lines[0].Start != 500*time.Millisecond {
		t.Errorf("Start = %v, expected 500ms", lines[0].Start)
	}
}

func TestParseSRTFile_Empty(t *testing.T) {
	path := writeTempFile(t, "empty.srt", "\n\n")
	lines, err := ParseSRTFile(path)
	if err != nil {
		t.Fatalf("ParseSRTFile() error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected no cues from empty file, got %d", len(lines))
	}
}

func TestParseSRTFile_Malformed(t *testing.T) {
	path := writeTempFile(t, "bad.srt", "1\nnot a timing row\ntext\n")
	if _, err := ParseSRTFile(path); err == nil {
		t.Error("ParseSRTFile() with malformed timing should fail")
	}
}

func TestParseSRTTimestamp(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"00:00:01,000", 1 * time.Second, false},
		{"00:01:30,250", 90*time.Second + 250*time.Millisecond, false},
		{"01:00:00,000", time.Hour, false},
		{"00:00:02.500", 2500 * time.Millisecond, false},
		{"", 0, true},
		{"00:00", 0, true},
		{"aa:bb:cc,ddd", 0, true},
	}

	for _, test := range tests {
		result, err := ParseSRTTimestamp(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseSRTTimestamp(%q) expected error", test.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSRTTimestamp(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseSRTTimestamp(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}
