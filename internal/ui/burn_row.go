package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/subburn/subburn/internal/model"
)

// Progress calculation constants
const (
	MaxProgressPercent  = 100
	MinProgressPercent  = 1
	RoundingCoefficient = 0.5
)

// BurnRow represents a compact burn task row widget
type BurnRow struct {
	widget.BaseWidget

	task         *model.BurnTask
	localization *Localization

	// UI components
	titleLabel    *widget.Label
	statusLabel   *widget.Label
	progressLabel *widget.Label
	speedLabel    *widget.Label

	// Action buttons
	stopBtn   *widget.Button
	revealBtn *widget.Button // reveal in file manager
	playBtn   *widget.Button // open file with default app (player)
	copyBtn   *widget.Button // copy output path to clipboard

	// Callbacks
	onStop   func(taskID string)
	onReveal func(filePath string)
	onOpen   func(filePath string)
}

// NewBurnRow creates a new burn row widget
func NewBurnRow(task *model.BurnTask, localization *Localization) *BurnRow {
	if task == nil {
		task = &model.BurnTask{
			ID:     "placeholder",
			Status: model.TaskStatusPending,
		}
	}

	br := &BurnRow{
		task:         task,
		localization: localization,
	}
	br.ExtendBaseWidget(br)
	br.createUI()
	br.updateFromTask()
	return br
}

// SetCallbacks sets the action callbacks
func (br *BurnRow) SetCallbacks(
	onStop func(taskID string),
	onReveal func(filePath string),
	onOpen func(filePath string),
) {
	br.onStop = onStop
	br.onReveal = onReveal
	br.onOpen = onOpen
}

// UpdateTask updates the row with new task data
func (br *BurnRow) UpdateTask(task *model.BurnTask) {
	if task == nil {
		return
	}
	br.task = task
	br.updateFromTask()
	br.Refresh()
}

// createUI creates the UI components
func (br *BurnRow) createUI() {
	br.titleLabel = widget.NewLabel("")
	br.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	br.titleLabel.Wrapping = fyne.TextWrapWord
	br.titleLabel.Truncation = fyne.TextTruncateEllipsis
	br.titleLabel.Alignment = fyne.TextAlignLeading

	br.statusLabel = widget.NewLabel("")
	br.statusLabel.Alignment = fyne.TextAlignTrailing
	br.progressLabel = widget.NewLabel("")
	br.progressLabel.Alignment = fyne.TextAlignTrailing
	br.speedLabel = widget.NewLabel("")
	br.speedLabel.Alignment = fyne.TextAlignLeading
	br.speedLabel.TextStyle = fyne.TextStyle{Monospace: true}

	br.stopBtn = widget.NewButton(br.localization.GetText(KeyStop), func() {
		if br.onStop != nil {
			br.onStop(br.task.ID)
		}
	})
	br.stopBtn.Importance = widget.MediumImportance

	br.revealBtn = widget.NewButton(br.localization.GetText(KeyReveal), func() {
		currentTask := br.task
		if currentTask.OutputPath == "" {
			widget.ShowPopUp(widget.NewLabel("File path not available yet"), fyne.CurrentApp().Driver().CanvasForObject(br.revealBtn))
			return
		}
		if br.onReveal != nil {
			br.onReveal(currentTask.OutputPath)
		}
	})
	br.revealBtn.Importance = widget.MediumImportance

	br.playBtn = widget.NewButton(br.localization.GetText(KeyOpen), func() {
		currentTask := br.task
		if currentTask.OutputPath == "" {
			widget.ShowPopUp(widget.NewLabel("File path not available yet"), fyne.CurrentApp().Driver().CanvasForObject(br.playBtn))
			return
		}
		if br.onOpen != nil {
			br.onOpen(currentTask.OutputPath)
		}
	})
	br.playBtn.Importance = widget.MediumImportance

	br.copyBtn = widget.NewButton(br.localization.GetText(KeyCopyPath), func() {
		if br.task.OutputPath != "" {
			fyne.CurrentApp().Clipboard().SetContent(br.task.OutputPath)
		}
	})
	br.copyBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (br *BurnRow) updateFromTask() {
	if br.task == nil {
		return
	}

	titleText := br.task.GetDisplayTitle()
	titleText = strings.TrimSpace(strings.ReplaceAll(titleText, "\n", " "))
	br.titleLabel.SetText(titleText)

	// Update status label color and text
	switch br.task.Status {
	case model.TaskStatusError:
		br.statusLabel.Importance = widget.DangerImportance
		br.statusLabel.SetText(IconError + " " + br.task.Status.String())
	case model.TaskStatusCompleted:
		br.statusLabel.Importance = widget.SuccessImportance
		br.statusLabel.SetText(br.task.Status.String())
	case model.TaskStatusEncoding:
		br.statusLabel.Importance = widget.HighImportance
		br.statusLabel.SetText(IconPlay + " " + br.task.Status.String())
	case model.TaskStatusPending:
		br.statusLabel.Importance = widget.MediumImportance
		br.statusLabel.SetText("⏳ " + br.task.Status.String())
	case model.TaskStatusStopped:
		br.statusLabel.Importance = widget.MediumImportance
		br.statusLabel.SetText(IconStop + " " + br.task.Status.String())
	default:
		br.statusLabel.Importance = widget.MediumImportance
		br.statusLabel.SetText(br.task.Status.String())
	}

	br.progressLabel.SetText(progressText(br.task))

	// Speed text while encoding, error hint otherwise
	speedText := ""
	switch br.task.Status {
	case model.TaskStatusEncoding:
		if br.task.Speed != "" {
			speedText = br.task.Speed
		} else {
			speedText = DashPlaceholder
		}
	case model.TaskStatusError:
		speedText = "Error"
	}
	br.speedLabel.SetText(speedText)

	br.updateButtons()
}

// progressText formats the percent label with fallbacks for fractional
// progress so an active burn never shows a stuck 0%.
func progressText(task *model.BurnTask) string {
	if task.Status == model.TaskStatusCompleted {
		return ""
	}

	effectivePercent := task.Percent
	if effectivePercent <= 0 && task.Progress > 0 {
		effectivePercent = int(task.Progress*MaxProgressPercent + RoundingCoefficient)
		if effectivePercent == 0 {
			effectivePercent = MinProgressPercent
		}
	}
	if effectivePercent < 0 {
		effectivePercent = 0
	}
	if effectivePercent > MaxProgressPercent {
		effectivePercent = MaxProgressPercent
	}
	return fmt.Sprintf(ProgressLabelFormat, effectivePercent)
}

// updateButtons updates button states based on task status
func (br *BurnRow) updateButtons() {
	if br.task == nil {
		return
	}

	if br.task.Status.IsActive() {
		br.stopBtn.Enable()
	} else {
		br.stopBtn.Disable()
	}

	// Reveal/Open only make sense once the output file exists
	if br.task.Status == model.TaskStatusCompleted && br.task.OutputPath != "" {
		br.revealBtn.Enable()
		br.playBtn.Enable()
		br.copyBtn.Enable()
	} else {
		br.revealBtn.Disable()
		br.playBtn.Disable()
		br.copyBtn.Disable()
	}
}

// CreateRenderer creates the widget renderer
func (br *BurnRow) CreateRenderer() fyne.WidgetRenderer {
	return &burnRowRenderer{burnRow: br}
}

// burnRowRenderer renders the burn row widget
type burnRowRenderer struct {
	burnRow *BurnRow
	layout  *fyne.Container
}

// Layout arranges the components
func (r *burnRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if r.layout != nil {
		if size.Width < RowMinWidth {
			size.Width = RowMinWidth
		}
		if size.Height < RowMinHeight {
			size.Height = RowMinHeight
		}
		r.layout.Resize(size)
	}
}

// MinSize returns the minimum size
func (r *burnRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *burnRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	if r.burnRow.task != nil {
		r.burnRow.progressLabel.SetText(progressText(r.burnRow.task))
	}
	if r.layout != nil {
		r.layout.Refresh()
	}
}

// Objects returns the container objects
func (r *burnRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *burnRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *burnRowRenderer) createLayout() {
	br := r.burnRow

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	// Order: status (row1), speed then percent (row2)
	rightSide := container.NewVBox(
		fixedWidth(StatusLabelWidth, br.statusLabel),
		container.NewHBox(
			fixedWidth(SpeedLabelWidth, br.speedLabel),
			fixedWidth(PercentLabelWidth, br.progressLabel),
		),
	)

	actionRow := container.NewHBox(
		br.stopBtn,
		br.revealBtn,
		br.playBtn,
		br.copyBtn,
	)

	separator := widget.NewSeparator()

	// Buttons pinned to the right edge, compact info next to them, title
	// taking the remaining width with wrapping.
	rightCluster := container.NewBorder(nil, nil, nil, actionRow, rightSide)
	mainContent := container.NewBorder(nil, nil, nil, rightCluster, br.titleLabel)

	r.layout = container.NewVBox(
		mainContent,
		separator,
	)

	r.layout.Resize(fyne.NewSize(RowMinWidth, RowDefaultH))
	r.layout.Refresh()
}
