package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/subburn/subburn/internal/model"
	"github.com/subburn/subburn/internal/subtitle"
)

// Preview shows the parsed cues of the selected subtitle file so the user
// can confirm the file (and, for CSV, the column mapping) reads correctly
// before burning.
type Preview struct {
	lines []model.Line

	headerLabel *widget.Label
	list        *widget.List
	content     fyne.CanvasObject
}

// NewPreview creates an empty preview panel
func NewPreview(localization *Localization) *Preview {
	p := &Preview{}

	p.headerLabel = widget.NewLabel(localization.GetText(KeyPreview))
	p.headerLabel.TextStyle = fyne.TextStyle{Bold: true}

	p.list = widget.NewList(
		func() int { return len(p.lines) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.TextStyle = fyne.TextStyle{Monospace: true}
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(p.lines) {
				return
			}
			line := p.lines[id]
			text := strings.ReplaceAll(line.Text, `\N`, " ")
			obj.(*widget.Label).SetText(fmt.Sprintf("%s → %s  %s",
				model.ASSTimestamp(line.Start), model.ASSTimestamp(line.End), text))
		},
	)

	p.content = container.NewBorder(p.headerLabel, nil, nil, nil, p.list)
	return p
}

// ShowFile parses the subtitle file and fills the preview. The cue count is
// returned so callers can report it; parse failures clear the panel.
func (p *Preview) ShowFile(path string, csvOpts *subtitle.CSVOptions) (int, error) {
	lines, err := subtitle.ParseFile(path, csvOpts)
	if err != nil {
		p.Clear()
		return 0, err
	}

	if len(lines) > PreviewMaxLines {
		lines = lines[:PreviewMaxLines]
	}
	p.lines = lines
	p.list.Refresh()
	return len(lines), nil
}

// Clear empties the preview panel
func (p *Preview) Clear() {
	p.lines = nil
	p.list.Refresh()
}

// Container returns the panel's root canvas object
func (p *Preview) Container() fyne.CanvasObject {
	return p.content
}
