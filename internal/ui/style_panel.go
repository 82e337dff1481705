package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/subburn/subburn/internal/config"
)

// StylePanel edits the per-run subtitle style and encoder overrides. Values
// start from the persisted defaults; applying them never writes the config
// file.
type StylePanel struct {
	localization *Localization

	fontFamilyEntry   *widget.Entry
	fontSizeEntry     *widget.Entry
	fontColorEntry    *widget.Entry
	outlineColorEntry *widget.Entry
	outlineWidthEntry *widget.Entry
	boldCheck         *widget.Check
	shadowCheck       *widget.Check

	copyCheck    *widget.Check
	crfEntry     *widget.Entry
	presetSelect *widget.Select

	content fyne.CanvasObject
}

// NewStylePanel creates the panel populated from the given configuration.
func NewStylePanel(localization *Localization, cfg *config.Config) *StylePanel {
	sp := &StylePanel{localization: localization}
	sp.createUI()
	sp.Load(cfg)
	return sp
}

// createUI creates the panel components
func (sp *StylePanel) createUI() {
	loc := sp.localization

	sp.fontFamilyEntry = widget.NewEntry()
	sp.fontSizeEntry = widget.NewEntry()
	sp.fontColorEntry = widget.NewEntry()
	sp.fontColorEntry.SetPlaceHolder("#ffffff")
	sp.outlineColorEntry = widget.NewEntry()
	sp.outlineColorEntry.SetPlaceHolder("#000000")
	sp.outlineWidthEntry = widget.NewEntry()
	sp.boldCheck = widget.NewCheck(loc.GetText(KeyBold), nil)
	sp.shadowCheck = widget.NewCheck(loc.GetText(KeyShadow), nil)

	sp.copyCheck = widget.NewCheck(loc.GetText(KeyCodecCopy), nil)
	sp.crfEntry = widget.NewEntry()
	sp.crfEntry.SetPlaceHolder("0-51")
	sp.presetSelect = widget.NewSelect(config.PresetOptions(), nil)

	sp.content = container.NewVBox(
		widget.NewLabel(loc.GetText(KeyStyle)),
		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyFontFamily)+":"),
		sp.fontFamilyEntry,

		container.NewGridWithColumns(2,
			container.NewVBox(widget.NewLabel(loc.GetText(KeyFontSize)+":"), sp.fontSizeEntry),
			container.NewVBox(widget.NewLabel(loc.GetText(KeyOutlineWidth)+":"), sp.outlineWidthEntry),
		),
		container.NewGridWithColumns(2,
			container.NewVBox(widget.NewLabel(loc.GetText(KeyFontColor)+":"), sp.fontColorEntry),
			container.NewVBox(widget.NewLabel(loc.GetText(KeyOutlineColor)+":"), sp.outlineColorEntry),
		),
		container.NewHBox(sp.boldCheck, sp.shadowCheck),

		widget.NewSeparator(),
		sp.copyCheck,
		container.NewGridWithColumns(2,
			container.NewVBox(widget.NewLabel(loc.GetText(KeyCRF)+":"), sp.crfEntry),
			container.NewVBox(widget.NewLabel(loc.GetText(KeyPreset)+":"), sp.presetSelect),
		),
	)
}

// Load fills the panel from a configuration
func (sp *StylePanel) Load(cfg *config.Config) {
	sp.fontFamilyEntry.SetText(cfg.Style.FontFamily)
	sp.fontSizeEntry.SetText(strconv.Itoa(cfg.Style.FontSize))
	sp.fontColorEntry.SetText(cfg.Style.FontColor)
	sp.outlineColorEntry.SetText(cfg.Style.OutlineColor)
	sp.outlineWidthEntry.SetText(strconv.Itoa(cfg.Style.OutlineWidth))
	sp.boldCheck.SetChecked(cfg.Style.Bold)
	sp.shadowCheck.SetChecked(cfg.Style.Shadow)

	sp.copyCheck.SetChecked(cfg.Encode.CodecCopy)
	sp.crfEntry.SetText(strconv.Itoa(cfg.Encode.CRF))
	sp.presetSelect.SetSelected(cfg.Encode.Preset)
}

// Apply writes the panel values onto the run configuration and validates the
// result. The destination is expected to be a clone of the persisted config.
func (sp *StylePanel) Apply(run *config.Config) error {
	run.Style.FontFamily = sp.fontFamilyEntry.Text
	run.Style.FontColor = sp.fontColorEntry.Text
	run.Style.OutlineColor = sp.outlineColorEntry.Text
	run.Style.Bold = sp.boldCheck.Checked
	run.Style.Shadow = sp.shadowCheck.Checked

	size, err := strconv.Atoi(sp.fontSizeEntry.Text)
	if err != nil {
		return fmt.Errorf("font size must be a number")
	}
	run.Style.FontSize = size

	width, err := strconv.Atoi(sp.outlineWidthEntry.Text)
	if err != nil {
		return fmt.Errorf("outline width must be a number")
	}
	run.Style.OutlineWidth = width

	run.Encode.CodecCopy = sp.copyCheck.Checked
	crf, err := strconv.Atoi(sp.crfEntry.Text)
	if err != nil {
		return fmt.Errorf("CRF must be a number")
	}
	run.Encode.CRF = crf
	if sp.presetSelect.Selected != "" {
		run.Encode.Preset = sp.presetSelect.Selected
	}

	return run.Validate()
}

// Container returns the panel's root canvas object
func (sp *StylePanel) Container() fyne.CanvasObject {
	return sp.content
}
