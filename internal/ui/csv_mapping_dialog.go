package ui

import (
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/subburn/subburn/internal/config"
	"github.com/subburn/subburn/internal/subtitle"
)

// CSVMappingDialog edits the column mapping for one CSV subtitle file. A
// confirmed mapping is stored in the configuration keyed by file name so the
// same file maps automatically next time.
type CSVMappingDialog struct {
	window       fyne.Window
	localization *Localization
	cfg          *config.Config
	csvPath      string
	onApply      func(*subtitle.CSVOptions)

	startEntry     *widget.Entry
	endEntry       *widget.Entry
	textEntry      *widget.Entry
	timeUnitSelect *widget.Select
	fpsEntry       *widget.Entry

	dialog *dialog.ConfirmDialog
}

// ShowCSVMappingDialog opens the mapping dialog for a CSV file. onApply
// receives the confirmed options.
func ShowCSVMappingDialog(window fyne.Window, localization *Localization, cfg *config.Config, csvPath string, onApply func(*subtitle.CSVOptions)) {
	d := &CSVMappingDialog{
		window:       window,
		localization: localization,
		cfg:          cfg,
		csvPath:      csvPath,
		onApply:      onApply,
	}
	d.createUI()
	d.loadCurrent()
	d.dialog.Show()
}

// createUI creates the dialog components
func (d *CSVMappingDialog) createUI() {
	loc := d.localization

	d.startEntry = widget.NewEntry()
	d.startEntry.SetPlaceHolder("start_time or column index")
	d.endEntry = widget.NewEntry()
	d.endEntry.SetPlaceHolder("end_time (optional)")
	d.textEntry = widget.NewEntry()
	d.textEntry.SetPlaceHolder("text or column index")
	d.timeUnitSelect = widget.NewSelect([]string{subtitle.TimeUnitSeconds, subtitle.TimeUnitFrames}, nil)
	d.fpsEntry = widget.NewEntry()
	d.fpsEntry.SetPlaceHolder("30")

	form := container.NewVBox(
		widget.NewLabel(filepath.Base(d.csvPath)),
		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyStartColumn)+":"),
		d.startEntry,

		widget.NewLabel(loc.GetText(KeyEndColumn)+":"),
		d.endEntry,

		widget.NewLabel(loc.GetText(KeyTextColumn)+":"),
		d.textEntry,

		container.NewGridWithColumns(2,
			container.NewVBox(widget.NewLabel(loc.GetText(KeyTimeUnit)+":"), d.timeUnitSelect),
			container.NewVBox(widget.NewLabel(loc.GetText(KeyFrameRate)+":"), d.fpsEntry),
		),
	)

	d.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeyCSVMapping),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		d.onConfirm,
		d.window,
	)
	d.dialog.Resize(fyne.NewSize(MappingDialogWidth, MappingDialogHeight))
}

// loadCurrent fills the dialog from any stored mapping
func (d *CSVMappingDialog) loadCurrent() {
	mapping, ok := d.cfg.CSVMappings[filepath.Base(d.csvPath)]
	if !ok {
		d.timeUnitSelect.SetSelected(subtitle.TimeUnitSeconds)
		d.fpsEntry.SetText(strconv.FormatFloat(d.cfg.Output.FPS, 'f', -1, 64))
		return
	}

	d.startEntry.SetText(mapping.StartCol)
	d.endEntry.SetText(mapping.EndCol)
	d.textEntry.SetText(mapping.TextCol)
	d.timeUnitSelect.SetSelected(mapping.TimeUnit)
	d.fpsEntry.SetText(strconv.FormatFloat(mapping.FPS, 'f', -1, 64))
}

// onConfirm stores the mapping and reports the options
func (d *CSVMappingDialog) onConfirm(confirmed bool) {
	if !confirmed {
		return
	}

	fps, err := strconv.ParseFloat(d.fpsEntry.Text, 64)
	if err != nil || fps <= 0 {
		fps = d.cfg.Output.FPS
	}
	timeUnit := d.timeUnitSelect.Selected
	if timeUnit == "" {
		timeUnit = subtitle.TimeUnitSeconds
	}

	mapping := config.CSVMapping{
		StartCol: d.startEntry.Text,
		EndCol:   d.endEntry.Text,
		TextCol:  d.textEntry.Text,
		TimeUnit: timeUnit,
		FPS:      fps,
	}
	d.cfg.CSVMappings[filepath.Base(d.csvPath)] = mapping
	if err := d.cfg.Save(); err != nil {
		dialog.ShowError(err, d.window)
	}

	if d.onApply != nil {
		d.onApply(&subtitle.CSVOptions{
			StartCol: mapping.StartCol,
			EndCol:   mapping.EndCol,
			TextCol:  mapping.TextCol,
			TimeUnit: mapping.TimeUnit,
			FPS:      mapping.FPS,
		})
	}
}
