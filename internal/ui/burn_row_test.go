package ui

import (
	"testing"

	"github.com/subburn/subburn/internal/model"
)

func TestProgressText(t *testing.T) {
	tests := []struct {
		name string
		task model.BurnTask
		want string
	}{
		{
			name: "completed shows nothing",
			task: model.BurnTask{Status: model.TaskStatusCompleted, Percent: 100},
			want: "",
		},
		{
			name: "percent shown directly",
			task: model.BurnTask{Status: model.TaskStatusEncoding, Percent: 42},
			want: "42%",
		},
		{
			name: "fractional progress rounds",
			task: model.BurnTask{Status: model.TaskStatusEncoding, Progress: 0.334},
			want: "33%",
		},
		{
			name: "tiny progress shows at least one percent",
			task: model.BurnTask{Status: model.TaskStatusEncoding, Progress: 0.001},
			want: "1%",
		},
		{
			name: "no progress shows zero",
			task: model.BurnTask{Status: model.TaskStatusPending},
			want: "0%",
		},
		{
			name: "over-reported percent clamps",
			task: model.BurnTask{Status: model.TaskStatusEncoding, Percent: 140},
			want: "100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := progressText(&tt.task); got != tt.want {
				t.Errorf("progressText() = %q, want %q", got, tt.want)
			}
		})
	}
}
