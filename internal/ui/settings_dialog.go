package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/subburn/subburn/internal/config"
)

// SettingsDialog edits the persisted defaults: style, encoder controls,
// output directory and interface language.
type SettingsDialog struct {
	cfg          *config.Config
	window       fyne.Window
	localization *Localization
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	outputDirEntry *widget.Entry
	fpsEntry       *widget.Entry
	stylePanel     *StylePanel
	languageSelect *widget.Select
}

// ShowSettingsDialog displays the settings dialog. onSaved runs after a
// successful save.
func ShowSettingsDialog(window fyne.Window, cfg *config.Config, localization *Localization, onSaved func()) {
	sd := &SettingsDialog{
		cfg:          cfg,
		window:       window,
		localization: localization,
		onSaved:      onSaved,
	}
	sd.createUI()
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	sd.outputDirEntry = widget.NewEntry()
	sd.outputDirEntry.SetPlaceHolder("Empty: \"output\" next to each video")
	browseDirBtn := widget.NewButton(IconFolder+" "+loc.GetText(KeyBrowse), sd.onBrowseDirectory)
	outputDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.outputDirEntry)

	sd.fpsEntry = widget.NewEntry()
	sd.fpsEntry.SetPlaceHolder("30")

	sd.stylePanel = NewStylePanel(loc, sd.cfg)

	languageOptions := []string{}
	for code := range loc.GetAvailableLanguages() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyOutputDirectory)+":"),
		outputDirRow,

		widget.NewLabel(loc.GetText(KeyFrameRate)+":"),
		sd.fpsEntry,

		widget.NewSeparator(),
		sd.stylePanel.Container(),

		widget.NewSeparator(),
		widget.NewLabel(loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.outputDirEntry.SetText(sd.cfg.Output.Dir)
	sd.fpsEntry.SetText(strconv.FormatFloat(sd.cfg.Output.FPS, 'f', -1, 64))
	sd.stylePanel.Load(sd.cfg)
	sd.languageSelect.SetSelected(sd.localization.GetCurrentLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.outputDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	sd.cfg.Output.Dir = sd.outputDirEntry.Text
	if fps, err := strconv.ParseFloat(sd.fpsEntry.Text, 64); err == nil && fps > 0 {
		sd.cfg.Output.FPS = fps
	}

	// Unlike per-burn overrides, saving here is the point: the panel values
	// become the new persisted defaults.
	if err := sd.stylePanel.Apply(sd.cfg); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}

	if sd.languageSelect.Selected != "" {
		sd.cfg.UI.Language = sd.languageSelect.Selected
		sd.localization.SetLanguage(sd.languageSelect.Selected)
	}

	if err := sd.cfg.Save(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}

	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
	if sd.onSaved != nil {
		sd.onSaved()
	}
}
