package ui

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/subburn/subburn/internal/burn"
	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/model"
	"github.com/subburn/subburn/internal/platform"
	"github.com/subburn/subburn/internal/subtitle"
)

// Video file extensions accepted by the pickers and drop handler
var videoExtensions = []string{".mp4", ".mkv", ".mov", ".avi", ".webm"}

// Subtitle file extensions accepted by the pickers and drop handler
var subtitleExtensions = []string{subtitle.ExtSRT, subtitle.ExtASS, subtitle.ExtSSA, subtitle.ExtCSV}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	cfg          *config.Config
	burnSvc      burn.Burner
	localization *Localization
	logger       *slog.Logger

	// File selection
	videoEntry    *widget.Entry
	subtitleEntry *widget.Entry
	mappingBtn    *widget.Button
	burnBtn       *widget.Button

	// Panels
	stylePanel *StylePanel
	preview    *Preview

	// Task list
	taskList *widget.List
	tasks    []*model.BurnTask

	// Active CSV mapping for the selected subtitle file
	csvOpts *subtitle.CSVOptions

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, cfg *config.Config, burnSvc burn.Burner, logger *slog.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(cfg.UI.Language)

	ui := &RootUI{
		window:       window,
		cfg:          cfg,
		burnSvc:      burnSvc,
		localization: localization,
		logger:       logger,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	// Feed service updates into the task list
	ui.burnSvc.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// File pickers
	ui.videoEntry = widget.NewEntry()
	ui.videoEntry.SetPlaceHolder(ui.localization.GetText(KeySelectVideo))
	videoBrowseBtn := widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseVideo)
	videoRow := container.NewBorder(nil, nil, widget.NewLabel(IconFile), videoBrowseBtn, ui.videoEntry)

	ui.subtitleEntry = widget.NewEntry()
	ui.subtitleEntry.SetPlaceHolder(ui.localization.GetText(KeySelectSubtitle))
	ui.subtitleEntry.OnChanged = ui.onSubtitleChanged
	subtitleBrowseBtn := widget.NewButton(ui.localization.GetText(KeyBrowse), ui.onBrowseSubtitle)
	ui.mappingBtn = widget.NewButton(ui.localization.GetText(KeyCSVMapping), ui.onShowCSVMapping)
	ui.mappingBtn.Hide()
	subtitleRow := container.NewBorder(nil, nil, widget.NewLabel(IconFile),
		container.NewHBox(ui.mappingBtn, subtitleBrowseBtn), ui.subtitleEntry)

	// Burn button
	ui.burnBtn = widget.NewButton(ui.localization.GetText(KeyBurn), ui.onBurnClick)
	ui.burnBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Notification panel under the pickers (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationContainer = container.NewHBox(container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	topPanel := container.NewVBox(
		videoRow,
		subtitleRow,
		container.NewBorder(nil, nil, settingsBtn, ui.burnBtn),
		ui.notificationContainer,
	)

	// Style overrides on the left, subtitle preview on the right
	ui.stylePanel = NewStylePanel(ui.localization, ui.cfg)
	ui.preview = NewPreview(ui.localization)
	middle := container.NewHSplit(
		container.NewVScroll(ui.stylePanel.Container()),
		ui.preview.Container(),
	)
	middle.SetOffset(0.42)

	// Burn task list
	ui.taskList = widget.NewList(
		func() int { return len(ui.tasks) },
		func() fyne.CanvasObject { return ui.createTaskItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateTaskItem(id, obj) },
	)

	bottom := container.NewVSplit(middle, ui.taskList)
	bottom.SetOffset(0.65)

	content := container.NewBorder(
		topPanel, // top
		nil,      // bottom
		nil,      // left
		nil,      // right
		bottom,   // center
	)
	ui.window.SetContent(content)

	// Drag and drop: route files to the matching picker by extension
	ui.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		for _, uri := range uris {
			ui.handleDroppedFile(uri.Path())
		}
	})
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(IconLanguage + " " + ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)

	ui.cfg.UI.Language = langCode
	if err := ui.cfg.Save(); err != nil {
		ui.logger.Error("failed to save language", "error", err)
	}

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.videoEntry.SetPlaceHolder(ui.localization.GetText(KeySelectVideo))
	ui.subtitleEntry.SetPlaceHolder(ui.localization.GetText(KeySelectSubtitle))
	ui.burnBtn.SetText(ui.localization.GetText(KeyBurn))
	ui.mappingBtn.SetText(ui.localization.GetText(KeyCSVMapping))
	ui.taskList.Refresh()
}

// onBrowseVideo opens the video file picker
func (ui *RootUI) onBrowseVideo() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		ui.videoEntry.SetText(reader.URI().Path())
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(videoExtensions))
	d.Show()
}

// onBrowseSubtitle opens the subtitle file picker
func (ui *RootUI) onBrowseSubtitle() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		ui.subtitleEntry.SetText(reader.URI().Path())
	}, ui.window)
	d.SetFilter(storage.NewExtensionFileFilter(subtitleExtensions))
	d.Show()
}

// handleDroppedFile routes a dropped file into the matching entry
func (ui *RootUI) handleDroppedFile(path string) {
	ext := strings.ToLower(filepath.Ext(path))

	for _, v := range videoExtensions {
		if ext == v {
			ui.videoEntry.SetText(path)
			return
		}
	}
	if subtitle.IsSupportedExt(path) {
		ui.subtitleEntry.SetText(path)
		return
	}

	ui.showNotification(ui.localization.GetText(KeyUnsupportedFile) + ": " + filepath.Base(path))
}

// onSubtitleChanged reacts to a newly selected subtitle file: shows the CSV
// mapping button for CSV input and refreshes the preview.
func (ui *RootUI) onSubtitleChanged(path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		ui.mappingBtn.Hide()
		ui.preview.Clear()
		return
	}

	isCSV := strings.ToLower(filepath.Ext(path)) == subtitle.ExtCSV
	if isCSV {
		ui.mappingBtn.Show()
		ui.csvOpts = ui.storedCSVOptions(path)
	} else {
		ui.mappingBtn.Hide()
		ui.csvOpts = nil
	}

	ui.refreshPreview(path)
}

// storedCSVOptions returns the persisted mapping for a CSV file, or nil for
// header auto-detection.
func (ui *RootUI) storedCSVOptions(path string) *subtitle.CSVOptions {
	mapping, ok := ui.cfg.CSVMappings[filepath.Base(path)]
	if !ok {
		return nil
	}
	return &subtitle.CSVOptions{
		StartCol: mapping.StartCol,
		EndCol:   mapping.EndCol,
		TextCol:  mapping.TextCol,
		TimeUnit: mapping.TimeUnit,
		FPS:      mapping.FPS,
	}
}

// refreshPreview re-parses the subtitle file into the preview panel
func (ui *RootUI) refreshPreview(path string) {
	if _, err := ui.preview.ShowFile(path, ui.csvOpts); err != nil {
		ui.logger.Warn("subtitle preview failed", "path", path, "error", err)
		ui.showNotification(err.Error())
		return
	}
	ui.hideNotification()
}

// onShowCSVMapping opens the CSV column mapping dialog
func (ui *RootUI) onShowCSVMapping() {
	path := strings.TrimSpace(ui.subtitleEntry.Text)
	if path == "" {
		return
	}
	ShowCSVMappingDialog(ui.window, ui.localization, ui.cfg, path, func(opts *subtitle.CSVOptions) {
		ui.csvOpts = opts
		ui.refreshPreview(path)
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.cfg, ui.localization, func() {
		// Re-seed the per-run panel from the saved defaults
		ui.stylePanel.Load(ui.cfg)
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// onBurnClick handles the burn button click
func (ui *RootUI) onBurnClick() {
	videoPath := strings.TrimSpace(ui.videoEntry.Text)
	if videoPath == "" {
		ui.showNotification(ui.localization.GetText(KeySelectVideo))
		return
	}
	subtitlePath := strings.TrimSpace(ui.subtitleEntry.Text)
	if subtitlePath == "" {
		ui.showNotification(ui.localization.GetText(KeySelectSubtitle))
		return
	}

	// Per-run overrides live on a clone; the persisted config is untouched
	run := ui.cfg.Clone()
	if err := ui.stylePanel.Apply(run); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	task, err := ui.burnSvc.StartBurn(videoPath, subtitlePath, burn.Options{
		Style:     run.Style,
		Encode:    run.Encode,
		OutputDir: run.Output.Dir,
		CSV:       ui.csvOpts,
	})
	if err != nil {
		if strings.Contains(err.Error(), "already in progress") {
			ui.showNotification(ui.localization.GetText(KeyAlreadyRunning))
		} else {
			dialog.ShowError(err, ui.window)
		}
		return
	}

	ui.logger.Info("burn started", "task", task.ID, "video", videoPath, "subtitle", subtitlePath)
	ui.showNotification(ui.localization.GetText(KeyBurnStarted))

	ui.refreshTasks()
	ui.taskList.Refresh()
}

// showNotification displays a message in the notification panel
func (ui *RootUI) showNotification(message string) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationContainer.Hide()
	})
}

// createTaskItem creates a new task item widget
func (ui *RootUI) createTaskItem() fyne.CanvasObject {
	row := NewBurnRow(nil, ui.localization)
	row.SetCallbacks(ui.onStopTask, ui.onRevealFile, ui.onOpenFile)
	return row
}

// updateTaskItem updates a task item with current data
func (ui *RootUI) updateTaskItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.tasks) {
		return
	}
	task := ui.tasks[id]
	if task == nil {
		return
	}

	if row, ok := item.(*BurnRow); ok {
		row.SetCallbacks(ui.onStopTask, ui.onRevealFile, ui.onOpenFile)
		row.UpdateTask(task)
	}
}

// refreshTasks re-reads the task snapshot from the service
func (ui *RootUI) refreshTasks() {
	ui.tasks = ui.burnSvc.GetAllTasks()
}

// onStopTask handles the stop button click on a row
func (ui *RootUI) onStopTask(taskID string) {
	ui.showNotification(ui.localization.GetText(KeyStoppingBurn))
	if err := ui.burnSvc.StopBurn(taskID); err != nil {
		ui.logger.Error("failed to stop burn", "task", taskID, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorStopping) + ": " + err.Error())
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Error("failed to reveal file", "path", filePath, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// onOpenFile handles opening an output file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		return
	}
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Error("failed to open file", "path", filePath, "error", err)
		ui.showNotification(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
	}
}

// debouncedUIUpdate prevents excessive UI updates by limiting frequency
func (ui *RootUI) debouncedUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

// onTaskUpdate handles task updates from the burn service
func (ui *RootUI) onTaskUpdate(task *model.BurnTask) {
	finished := task.Status.IsFinished()

	// Progress callbacks arrive very frequently; coalesce refreshes but never
	// skip terminal updates.
	if !finished && !ui.debouncedUIUpdate() {
		return
	}

	ui.refreshTasks()

	fyne.Do(func() {
		ui.taskList.Refresh()
	})

	switch task.Status {
	case model.TaskStatusCompleted:
		ui.sendCompletionNotification(task)
		ui.hideNotification()
	case model.TaskStatusError:
		fyne.Do(func() {
			dialog.ShowError(errors.New(task.LastError), ui.window)
		})
	}
}

// sendCompletionNotification sends a system notification and an in-app toast
func (ui *RootUI) sendCompletionNotification(task *model.BurnTask) {
	title := ui.localization.GetText(KeyBurnCompleted)
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   title,
		Content: task.GetDisplayTitle(),
	})

	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast notification with action buttons
func (ui *RootUI) showToastNotification(task *model.BurnTask) {
	fyne.Do(func() {
		titleLabel := widget.NewLabel(ui.localization.GetText(KeyBurnCompleted))
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}

		messageLabel := widget.NewLabel(task.GetDisplayTitle())
		messageLabel.Truncation = fyne.TextTruncateEllipsis

		revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
			ui.onRevealFile(task.OutputPath)
		})
		revealBtn.Importance = widget.HighImportance

		openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
			ui.onOpenFile(task.OutputPath)
		})
		openBtn.Importance = widget.MediumImportance

		var toastPopup *widget.PopUp
		closeBtn := widget.NewButton(IconClose, func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
		closeBtn.Importance = widget.LowImportance

		header := container.NewBorder(nil, nil, titleLabel, closeBtn)
		actions := container.NewHBox(revealBtn, openBtn)
		content := container.NewVBox(header, messageLabel, actions)

		toastPopup = widget.NewPopUp(content, ui.window.Canvas())

		canvasSize := ui.window.Canvas().Size()
		toastSize := fyne.NewSize(ToastWidth, ToastHeight)
		toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

		toastPopup.Resize(toastSize)
		toastPopup.Move(toastPos)
		toastPopup.Show()

		go func() {
			time.Sleep(ToastAutoHide)
			fyne.Do(func() {
				toastPopup.Hide()
			})
		}()
	})
}
