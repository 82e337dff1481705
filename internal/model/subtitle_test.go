package model

import (
	"testing"
	"time"
)

func TestASSTimestamp(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00:00.00"},
		{1500 * time.Millisecond, "0:00:01.50"},
		{90 * time.Second, "0:01:30.00"},
		{3600*time.Second + 120*time.Second + 3*time.Second + 450*time.Millisecond, "1:02:03.45"},
		{-5 * time.Second, "0:00:00.00"},
	}

	for _, test := range tests {
		if result := ASSTimestamp(test.d); result != test.expected {
			t.Errorf("ASSTimestamp(%v) = %s, expected %s", test.d, result, test.expected)
		}
	}
}

func TestLine_ASSDialogue(t *testing.T) {
	line := Line{
		Start: 1 * time.Second,
		End:   3500 * time.Millisecond,
		Text:  "Hello\\Nworld",
	}

	expected := "Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,Hello\\Nworld"
	if result := line.ASSDialogue(); result != expected {
		t.Errorf("ASSDialogue() = %q, expected %q", result, expected)
	}
}

func TestLine_Duration(t *testing.T) {
	line := Line{Start: 2 * time.Second, End: 5 * time.Second}
	if d := line.Duration(); d != 3*time.Second {
		t.Errorf("Duration() = %v, expected 3s", d)
	}
}
