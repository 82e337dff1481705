package model

import (
	"testing"
	"time"
)

func TestBurnTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		videoPath string
		expected  string
	}{
		{"/videos/lecture.mp4", "lecture"},
		{"/videos/my talk.final.mkv", "my talk.final"},
		{"clip.mov", "clip"},
		{"", ""},
	}

	for _, test := range tests {
		task := &BurnTask{VideoPath: test.videoPath}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with VideoPath=%q = %q, expected %q",
				test.videoPath, result, test.expected)
		}
	}
}

func TestBurnTask_GetElapsedString(t *testing.T) {
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		started  time.Time
		finished time.Time
		expected string
	}{
		{"not started", time.Time{}, time.Time{}, "—"},
		{"thirty seconds", start, start.Add(30 * time.Second), "00:30"},
		{"ninety seconds", start, start.Add(90 * time.Second), "01:30"},
		{"over an hour", start, start.Add(3661 * time.Second), "01:01:01"},
	}

	for _, test := range tests {
		task := &BurnTask{StartedAt: test.started, FinishedAt: test.finished}
		result := task.GetElapsedString()
		if result != test.expected {
			t.Errorf("%s: GetElapsedString() = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestBurnTask_Creation(t *testing.T) {
	now := time.Now()
	task := &BurnTask{
		ID:           "burn-123",
		VideoPath:    "/videos/talk.mp4",
		SubtitlePath: "/subs/talk.srt",
		Status:       TaskStatusPending,
		StartedAt:    now,
	}

	if task.ID != "burn-123" {
		t.Errorf("Expected ID burn-123, got %s", task.ID)
	}
	if task.Status != TaskStatusPending {
		t.Errorf("Expected status Pending, got %s", task.Status)
	}
	if task.Progress != 0 {
		t.Errorf("Expected zero progress, got %f", task.Progress)
	}
}
