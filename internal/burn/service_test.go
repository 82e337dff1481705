package burn

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/model"
)

func defaultOptions() Options {
	cfg := config.Default()
	return Options{Style: cfg.Style, Encode: cfg.Encode}
}

func createTempMedia(t *testing.T) (videoPath, subtitlePath string) {
	t.Helper()
	dir := t.TempDir()

	videoPath = filepath.Join(dir, "movie.mp4")
	if err := os.WriteFile(videoPath, []byte("not really a video"), 0o644); err != nil {
		t.Fatalf("Failed to create temp video: %v", err)
	}

	subtitlePath = filepath.Join(dir, "movie.srt")
	srt := "1\n00:00:01,000 --> 00:00:02,000\nHello\n"
	if err := os.WriteFile(subtitlePath, []byte(srt), 0o644); err != nil {
		t.Fatalf("Failed to create temp subtitle: %v", err)
	}
	return videoPath, subtitlePath
}

func TestNewService(t *testing.T) {
	service := NewService(nil)

	if len(service.tasks) != 0 {
		t.Errorf("Expected empty tasks map, got %d items", len(service.tasks))
	}
	if service.logger == nil {
		t.Error("Expected fallback logger, got nil")
	}
}

func TestStartBurn_NonExistentVideo(t *testing.T) {
	service := NewService(nil)
	_, subtitlePath := createTempMedia(t)

	_, err := service.StartBurn("/path/to/nonexistent/file.mp4", subtitlePath, defaultOptions())
	if err == nil {
		t.Error("Expected error for non-existent video, got nil")
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("Expected 'does not exist' error, got: %v", err)
	}
}

func TestStartBurn_NonExistentSubtitle(t *testing.T) {
	service := NewService(nil)
	videoPath, _ := createTempMedia(t)

	_, err := service.StartBurn(videoPath, "/path/to/nonexistent/subs.srt", defaultOptions())
	if err == nil {
		t.Error("Expected error for non-existent subtitle, got nil")
	}
}

func TestStartBurn_UnsupportedSubtitleExt(t *testing.T) {
	service := NewService(nil)
	videoPath, _ := createTempMedia(t)

	vtt := filepath.Join(t.TempDir(), "subs.vtt")
	if err := os.WriteFile(vtt, []byte("WEBVTT\n"), 0o644); err != nil {
		t.Fatalf("Failed to create temp subtitle: %v", err)
	}

	_, err := service.StartBurn(videoPath, vtt, defaultOptions())
	if err == nil {
		t.Error("Expected error for unsupported subtitle format, got nil")
	}
}

func TestStartBurn_InvalidStyle(t *testing.T) {
	service := NewService(nil)
	videoPath, subtitlePath := createTempMedia(t)

	opts := defaultOptions()
	opts.Style.FontColor = "white"

	_, err := service.StartBurn(videoPath, subtitlePath, opts)
	if err == nil {
		t.Error("Expected error for invalid font color, got nil")
	}
}

func TestStartBurn_RegistersTask(t *testing.T) {
	service := NewService(nil)
	videoPath, subtitlePath := createTempMedia(t)

	task, err := service.StartBurn(videoPath, subtitlePath, defaultOptions())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if task == nil {
		t.Fatal("Expected task to be created, got nil")
	}

	if task.VideoPath != videoPath {
		t.Errorf("Expected VideoPath %s, got %s", videoPath, task.VideoPath)
	}
	expectedOutput := filepath.Join(filepath.Dir(videoPath), "output", "movie_sub.mp4")
	if task.OutputPath != expectedOutput {
		t.Errorf("Expected OutputPath %s, got %s", expectedOutput, task.OutputPath)
	}

	retrieved, exists := service.GetTask(task.ID)
	if !exists {
		t.Error("Task should exist in service")
	}
	if retrieved.ID != task.ID {
		t.Errorf("Retrieved task ID should be %s, got %s", task.ID, retrieved.ID)
	}

	// The fake video fails probing; wait for the background run to settle.
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		got, _ := service.GetTask(task.ID)
		service.tasksMutex.RLock()
		finished := got.Status.IsFinished()
		service.tasksMutex.RUnlock()
		if finished {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("Task never reached a finished status")
}

func TestStartBurn_ExplicitOutputPath(t *testing.T) {
	service := NewService(nil)
	videoPath, subtitlePath := createTempMedia(t)

	opts := defaultOptions()
	opts.OutputPath = filepath.Join(t.TempDir(), "custom.mp4")

	task, err := service.StartBurn(videoPath, subtitlePath, opts)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if task.OutputPath != opts.OutputPath {
		t.Errorf("Expected OutputPath %s, got %s", opts.OutputPath, task.OutputPath)
	}
}

func TestStartBurn_DuplicateTask(t *testing.T) {
	service := NewService(nil)
	videoPath, subtitlePath := createTempMedia(t)

	task1, err := service.StartBurn(videoPath, subtitlePath, defaultOptions())
	if err != nil {
		t.Fatalf("Expected no error for first burn, got: %v", err)
	}

	service.tasksMutex.Lock()
	task1.Status = model.TaskStatusEncoding
	service.tasksMutex.Unlock()

	_, err = service.StartBurn(videoPath, subtitlePath, defaultOptions())
	if err == nil {
		t.Error("Expected error for duplicate burn, got nil")
	}
	if !strings.Contains(err.Error(), "already in progress") {
		t.Errorf("Expected 'already in progress' error, got: %v", err)
	}
}

func TestStopBurn_UnknownTask(t *testing.T) {
	service := NewService(nil)

	if err := service.StopBurn("burn-missing"); err == nil {
		t.Error("Expected error for unknown task, got nil")
	}
}

func TestStopBurn_InactiveTask(t *testing.T) {
	service := NewService(nil)
	task := &model.BurnTask{ID: "burn-done", Status: model.TaskStatusCompleted}
	service.tasks[task.ID] = task

	if err := service.StopBurn(task.ID); err == nil {
		t.Error("Expected error for inactive task, got nil")
	}
}

func TestStopBurn_MarksStopping(t *testing.T) {
	service := NewService(nil)
	task := &model.BurnTask{ID: "burn-active", Status: model.TaskStatusEncoding}
	service.tasks[task.ID] = task

	var updated *model.BurnTask
	service.SetUpdateCallback(func(t *model.BurnTask) { updated = t })

	if err := service.StopBurn(task.ID); err != nil {
		t.Fatalf("StopBurn() error: %v", err)
	}
	if task.Status != model.TaskStatusStopping {
		t.Errorf("Expected status Stopping, got %s", task.Status)
	}
	if updated != task {
		t.Error("Expected update callback with the stopped task")
	}
}

func TestStopBurn_PendingTask(t *testing.T) {
	service := NewService(nil)
	task := &model.BurnTask{ID: "burn-queued", Status: model.TaskStatusPending}
	service.tasks[task.ID] = task

	if err := service.StopBurn(task.ID); err != nil {
		t.Fatalf("StopBurn() on a pending task error: %v", err)
	}
	if task.Status != model.TaskStatusStopping {
		t.Errorf("Expected status Stopping, got %s", task.Status)
	}

	// The launch must honor the stop instead of overwriting it.
	if service.markStarting(task) {
		t.Error("markStarting() should refuse a task already asked to stop")
	}
	if task.Status != model.TaskStatusStopped {
		t.Errorf("Expected status Stopped, got %s", task.Status)
	}
	if task.FinishedAt.IsZero() {
		t.Error("Expected FinishedAt to be set")
	}
}

func TestStartBurn_DuplicateWhilePending(t *testing.T) {
	service := NewService(nil)
	videoPath, subtitlePath := createTempMedia(t)
	service.tasks["burn-queued"] = &model.BurnTask{
		ID:        "burn-queued",
		VideoPath: videoPath,
		Status:    model.TaskStatusPending,
	}

	if _, err := service.StartBurn(videoPath, subtitlePath, defaultOptions()); err == nil {
		t.Error("Expected error for video with a pending burn, got nil")
	}
}

func TestGetAllTasks_Ordered(t *testing.T) {
	service := NewService(nil)
	service.tasks["burn-b"] = &model.BurnTask{ID: "burn-b"}
	service.tasks["burn-a"] = &model.BurnTask{ID: "burn-a"}
	service.tasks["burn-c"] = &model.BurnTask{ID: "burn-c"}

	tasks := service.GetAllTasks()
	if len(tasks) != 3 {
		t.Fatalf("Expected 3 tasks, got %d", len(tasks))
	}
	for i, expected := range []string{"burn-a", "burn-b", "burn-c"} {
		if tasks[i].ID != expected {
			t.Errorf("Task %d: expected %s, got %s", i, expected, tasks[i].ID)
		}
	}
}

func TestUpdateCallback(t *testing.T) {
	service := NewService(nil)

	updateCalled := false
	var updatedTask *model.BurnTask
	service.SetUpdateCallback(func(task *model.BurnTask) {
		updateCalled = true
		updatedTask = task
	})

	task := &model.BurnTask{
		ID:         "test-id",
		VideoPath:  "/test/input.mp4",
		OutputPath: "/test/output.mp4",
		Status:     model.TaskStatusEncoding,
	}
	service.notifyUpdate(task)

	if !updateCalled {
		t.Error("Expected update callback to be called")
	}
	if updatedTask != task {
		t.Error("Expected updated task to be the same as input task")
	}
}

func TestPrepareSubtitle_PassThrough(t *testing.T) {
	service := NewService(nil)
	_, subtitlePath := createTempMedia(t)

	path, cleanup, err := service.prepareSubtitle(subtitlePath, defaultOptions())
	if err != nil {
		t.Fatalf("prepareSubtitle() error: %v", err)
	}
	if path != subtitlePath {
		t.Errorf("Expected pass-through path %s, got %s", subtitlePath, path)
	}
	if cleanup != nil {
		t.Error("Expected no cleanup for pass-through subtitle")
	}
}

func TestPrepareSubtitle_CSVConversion(t *testing.T) {
	service := NewService(nil)

	csvPath := filepath.Join(t.TempDir(), "cues.csv")
	content := "start_time,end_time,text\n1.0,2.0,Hello\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create temp CSV: %v", err)
	}

	path, cleanup, err := service.prepareSubtitle(csvPath, defaultOptions())
	if err != nil {
		t.Fatalf("prepareSubtitle() error: %v", err)
	}
	if filepath.Ext(path) != ".ass" {
		t.Errorf("Expected generated .ass file, got %s", path)
	}
	if cleanup == nil {
		t.Fatal("Expected cleanup function for generated subtitle")
	}

	cleanup()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Cleanup should remove the generated file, stat err: %v", err)
	}
}

func TestPrepareSubtitle_EmptyCSV(t *testing.T) {
	service := NewService(nil)

	csvPath := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(csvPath, []byte("start_time,end_time,text\n"), 0o644); err != nil {
		t.Fatalf("Failed to create temp CSV: %v", err)
	}

	if _, _, err := service.prepareSubtitle(csvPath, defaultOptions()); err == nil {
		t.Error("Expected error for CSV without cues, got nil")
	}
}

func TestFFmpegError(t *testing.T) {
	base := errors.New("exit status 1")

	if result := ffmpegError(base, nil); result != "exit status 1" {
		t.Errorf("ffmpegError() without tail = %q", result)
	}

	result := ffmpegError(base, []string{"No such filter: 'subtitle'", "Error opening filters"})
	if !strings.Contains(result, "exit status 1") || !strings.Contains(result, "No such filter") {
		t.Errorf("ffmpegError() with tail = %q", result)
	}
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	time.Sleep(1 * time.Millisecond)
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}
	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got: %s", TaskIDPrefix, id1)
	}
}

func TestTailBuffer(t *testing.T) {
	tail := newTailBuffer(3)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		tail.Add(line)
	}

	lines := tail.Lines()
	if len(lines) != 3 {
		t.Fatalf("Expected 3 retained lines, got %d", len(lines))
	}
	if lines[0] != "c" || lines[2] != "e" {
		t.Errorf("Expected last three lines [c d e], got %v", lines)
	}
}
