// Package burn runs ffmpeg subtitle burn-in jobs and tracks their progress.
package burn

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/ffmpeg"
	"github.com/subburn/subburn/internal/logging"
	"github.com/subburn/subburn/internal/model"
	"github.com/subburn/subburn/internal/subtitle"
)

// Progress and identity constants
const (
	ProgressTimePrefix  = "out_time_us="
	ProgressSpeedPrefix = "speed="
	TaskIDPrefix        = "burn-"

	// How many trailing stderr lines are kept for error reporting
	stderrTailLines = 20

	stopPollInterval = 100 * time.Millisecond
)

// Options carries the per-run settings for one burn. Style and Encode are
// snapshots of the effective configuration; callers apply overrides to a
// clone before passing them here, so the stored configuration is never
// touched.
type Options struct {
	Style      config.Style
	Encode     config.Encode
	OutputPath string // empty means derive from the video path
	OutputDir  string // configured output directory used for derivation
	CSV        *subtitle.CSVOptions
}

// Service runs burn tasks against the local ffmpeg binary.
type Service struct {
	logger     *slog.Logger
	tasks      map[string]*model.BurnTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.BurnTask) // callback for UI updates
}

// NewService creates a new burn service.
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		logger: logger,
		tasks:  make(map[string]*model.BurnTask),
	}
}

// SetUpdateCallback sets the callback function for task updates.
func (s *Service) SetUpdateCallback(callback func(*model.BurnTask)) {
	s.onUpdate = callback
}

// StartBurn validates the inputs, registers a task and launches the burn in
// the background.
func (s *Service) StartBurn(videoPath, subtitlePath string, opts Options) (*model.BurnTask, error) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	for _, task := range s.tasks {
		if task.VideoPath == videoPath && task.Status.IsActive() {
			return nil, fmt.Errorf("burn already in progress for file: %s", videoPath)
		}
	}

	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video file does not exist: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); err != nil {
		return nil, fmt.Errorf("subtitle file does not exist: %s", subtitlePath)
	}
	if !subtitle.IsSupportedExt(subtitlePath) {
		return nil, fmt.Errorf("unsupported subtitle format: %s", filepath.Ext(subtitlePath))
	}

	// Fail early on a broken style instead of deep inside ffmpeg.
	if _, err := ffmpeg.ForceStyle(opts.Style); err != nil {
		return nil, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = ffmpeg.DefaultOutputPath(videoPath, opts.OutputDir)
	}

	task := &model.BurnTask{
		ID:           generateTaskID(),
		VideoPath:    videoPath,
		SubtitlePath: subtitlePath,
		OutputPath:   outputPath,
		Status:       model.TaskStatusPending,
		StartedAt:    time.Now(),
	}
	s.tasks[task.ID] = task

	go s.runBurn(task, opts)

	return task, nil
}

// StopBurn requests cancellation of a running burn task.
func (s *Service) StopBurn(taskID string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[taskID]
	if !exists {
		return fmt.Errorf("burn task not found: %s", taskID)
	}
	if !task.Status.IsActive() {
		return fmt.Errorf("burn task is not active: %s", task.Status)
	}

	task.Status = model.TaskStatusStopping
	s.notifyUpdate(task)
	return nil
}

// GetTask returns a burn task by ID.
func (s *Service) GetTask(taskID string) (*model.BurnTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	return task, exists
}

// GetAllTasks returns all tasks ordered by start time, oldest first.
func (s *Service) GetAllTasks() []*model.BurnTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.BurnTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task)
	}
	// UUIDv7 IDs sort chronologically
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// runBurn performs the actual burn: subtitle preparation, ffmpeg execution
// and progress relay.
func (s *Service) runBurn(task *model.BurnTask, opts Options) {
	if !s.markStarting(task) {
		return
	}

	filterPath, cleanup, err := s.prepareSubtitle(task.SubtitlePath, opts)
	if err != nil {
		s.setTaskError(task, err)
		return
	}
	if cleanup != nil {
		defer cleanup()
	}

	if err := os.MkdirAll(filepath.Dir(task.OutputPath), 0o755); err != nil {
		s.setTaskError(task, fmt.Errorf("create output directory: %w", err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	duration, err := ffmpeg.ProbeDuration(ctx, task.VideoPath)
	if err != nil {
		s.logger.Error("ffprobe failed", "video", task.VideoPath, "error", err)
		s.setTaskError(task, err)
		return
	}
	s.tasksMutex.Lock()
	task.DurationSec = duration
	s.tasksMutex.Unlock()

	// Monitor for stop requests
	go func() {
		for {
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() {
				return
			}
			time.Sleep(stopPollInterval)
		}
	}()

	s.setStatus(task, model.TaskStatusEncoding)

	args, err := ffmpeg.BuildArgs(ffmpeg.Job{
		VideoPath:    task.VideoPath,
		SubtitlePath: filterPath,
		OutputPath:   task.OutputPath,
		Style:        opts.Style,
		Encode:       opts.Encode,
	})
	if err != nil {
		s.setTaskError(task, err)
		return
	}

	s.logger.Info("starting ffmpeg", "task", task.ID, "output", task.OutputPath)
	cmd := exec.CommandContext(ctx, ffmpeg.FFmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.setTaskError(task, fmt.Errorf("failed to create stderr pipe: %w", err))
		return
	}

	if err := cmd.Start(); err != nil {
		s.setTaskError(task, fmt.Errorf("failed to start ffmpeg: %w", err))
		return
	}

	tail := newTailBuffer(stderrTailLines)
	monitorDone := make(chan struct{})
	go func() {
		defer close(monitorDone)
		s.monitorProgress(stderr, task, duration, tail)
	}()

	err = cmd.Wait()
	<-monitorDone

	s.tasksMutex.Lock()
	if ctx.Err() == context.Canceled {
		task.Status = model.TaskStatusStopped
		os.Remove(task.OutputPath)
	} else if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = ffmpegError(err, tail.Lines())
		os.Remove(task.OutputPath)
	} else {
		task.Status = model.TaskStatusCompleted
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.logger.Info("burn finished", "task", task.ID, "status", task.Status)
	s.notifyUpdate(task)
}

// prepareSubtitle returns the path to hand to the subtitles filter. CSV input
// is converted to a generated ASS file in the temp dir; the returned cleanup
// removes it.
func (s *Service) prepareSubtitle(path string, opts Options) (string, func(), error) {
	lines, err := subtitle.ParseFile(path, opts.CSV)
	if err != nil {
		return "", nil, err
	}
	if len(lines) == 0 {
		return "", nil, fmt.Errorf("no subtitle cues found in %s", path)
	}

	// SRT/ASS go to the filter as-is; the parse above is a syntax check.
	if strings.ToLower(filepath.Ext(path)) != subtitle.ExtCSV {
		return path, nil, nil
	}

	assPath, err := subtitle.WriteTempASS(lines, opts.Style)
	if err != nil {
		return "", nil, err
	}
	s.logger.Debug("wrote generated subtitle file", "source", path, "ass", assPath)
	return assPath, func() { os.Remove(assPath) }, nil
}

// monitorProgress scans ffmpeg stderr for progress keys while keeping a tail
// of the remaining lines for error reporting.
func (s *Service) monitorProgress(stderr io.ReadCloser, task *model.BurnTask, totalDuration float64, tail *tailBuffer) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, ProgressTimePrefix):
			timeStr := strings.TrimPrefix(line, ProgressTimePrefix)
			timeMicroseconds, err := strconv.ParseInt(timeStr, 10, 64)
			if err != nil {
				continue
			}
			if totalDuration <= 0 {
				continue
			}

			progress := float64(timeMicroseconds) / 1000000.0 / totalDuration
			if progress > 1.0 {
				progress = 1.0
			}

			s.tasksMutex.Lock()
			task.Progress = progress
			task.Percent = int(progress * 100)
			s.tasksMutex.Unlock()

			s.notifyUpdate(task)
		case strings.HasPrefix(line, ProgressSpeedPrefix):
			s.tasksMutex.Lock()
			task.Speed = strings.TrimPrefix(line, ProgressSpeedPrefix)
			s.tasksMutex.Unlock()
		case line != "" && !strings.Contains(line, "="):
			// Non key=value lines are ffmpeg's own log output
			tail.Add(line)
		}
	}
}

// markStarting moves a task from Pending to Starting. A stop requested while
// the task was still Pending wins: the task ends as Stopped and the burn
// never launches.
func (s *Service) markStarting(task *model.BurnTask) bool {
	s.tasksMutex.Lock()
	if task.Status == model.TaskStatusStopping {
		task.Status = model.TaskStatusStopped
		task.FinishedAt = time.Now()
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
		return false
	}
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
	return true
}

// setStatus updates the task status under lock and notifies listeners.
func (s *Service) setStatus(task *model.BurnTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// setTaskError sets an error state for a task.
func (s *Service) setTaskError(task *model.BurnTask, err error) {
	s.logger.Error("burn failed", "task", task.ID, "error", err)

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set.
func (s *Service) notifyUpdate(task *model.BurnTask) {
	if s.onUpdate != nil {
		s.onUpdate(task)
	}
}

// ffmpegError folds the stderr tail into the process exit error so the UI
// can show what ffmpeg actually complained about.
func ffmpegError(err error, tail []string) string {
	if len(tail) == 0 {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s", err.Error(), strings.Join(tail, " | "))
}

// generateTaskID generates a unique task ID using UUID v7 for better
// uniqueness and time ordering.
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}

// tailBuffer keeps the last N lines added to it.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func newTailBuffer(limit int) *tailBuffer {
	return &tailBuffer{limit: limit}
}

func (t *tailBuffer) Add(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *tailBuffer) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
