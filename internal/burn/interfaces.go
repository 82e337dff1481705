package burn

import (
	"github.com/subburn/subburn/internal/model"
)

// Burner defines the interface for the subtitle burn service.
type Burner interface {
	SetUpdateCallback(func(*model.BurnTask))
	StartBurn(videoPath, subtitlePath string, opts Options) (*model.BurnTask, error)
	StopBurn(taskID string) error
	GetTask(taskID string) (*model.BurnTask, bool)
	GetAllTasks() []*model.BurnTask
}
