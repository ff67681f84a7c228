package components

import (
	apptheme "taskpad/internal/views/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
)

const HeaderTitle = "My To-Do List"

// Header shows the title, task progress and the live clock
type Header struct {
	container *fyne.Container
	title     *canvas.Text
	progress  *ProgressBar
	clock     *Clock
}

// NewHeader assembles the header around an existing progress bar and clock
func NewHeader(progress *ProgressBar, clock *Clock) *Header {
	h := &Header{progress: progress, clock: clock}
	h.title = canvas.NewText(HeaderTitle, apptheme.Light.Primary)
	h.title.TextStyle = fyne.TextStyle{Bold: true}
	h.title.TextSize = theme.TextSize() * 2
	h.title.Alignment = fyne.TextAlignCenter

	h.container = container.NewVBox(
		h.title,
		progress.GetContainer(),
		clock.Label(),
	)
	return h
}

// ApplyPalette recolours the parts of the header drawn with canvas objects
func (h *Header) ApplyPalette(p apptheme.Palette) {
	h.title.Color = p.Primary
	h.title.Refresh()
}

func (h *Header) Title() *canvas.Text { return h.title }

// GetContainer returns the header container
func (h *Header) GetContainer() *fyne.Container {
	return h.container
}
