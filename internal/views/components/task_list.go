package components

import (
	"fmt"
	"image/color"

	"taskpad/internal/models"
	apptheme "taskpad/internal/views/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	EmptyTitle    = "No tasks yet!"
	EmptySubtitle = "Add your first task above to get started"
)

// TaskRow is one rendered task. Rows are rebuilt on every render and must
// not be kept past the next one.
type TaskRow struct {
	ID           string
	Number       int
	Text         *canvas.Text
	Struck       bool
	Check        *widget.Check
	EditButton   *widget.Button
	DeleteButton *widget.Button
}

// TaskList renders the store as numbered rows, or a placeholder when empty
type TaskList struct {
	container *fyne.Container
	scroll    *container.Scroll
	rows      []*TaskRow
	empty     bool

	toggleHandler func(string)
	editHandler   func(string)
	deleteHandler func(string)
}

// NewTaskList creates an empty task list component
func NewTaskList() *TaskList {
	tl := &TaskList{}
	tl.container = container.NewVBox()
	tl.scroll = container.NewVScroll(tl.container)
	return tl
}

func (tl *TaskList) SetToggleHandler(handler func(string)) { tl.toggleHandler = handler }

func (tl *TaskList) SetEditHandler(handler func(string)) { tl.editHandler = handler }

func (tl *TaskList) SetDeleteHandler(handler func(string)) { tl.deleteHandler = handler }

// Render rebuilds every row from tasks using the colours of palette.
func (tl *TaskList) Render(tasks []models.Task, palette apptheme.Palette) {
	tl.rows = make([]*TaskRow, 0, len(tasks))
	objects := make([]fyne.CanvasObject, 0, len(tasks))

	if len(tasks) == 0 {
		tl.empty = true
		objects = append(objects, emptyState(palette))
	} else {
		tl.empty = false
		for i, task := range tasks {
			row := tl.newRow(i+1, task, palette)
			tl.rows = append(tl.rows, row)
			objects = append(objects, tl.card(row, palette))
		}
	}

	tl.container.Objects = objects
	tl.container.Refresh()
}

func (tl *TaskList) newRow(number int, task models.Task, palette apptheme.Palette) *TaskRow {
	id := task.ID
	row := &TaskRow{ID: id, Number: number, Struck: task.Done}

	row.Check = widget.NewCheck("", nil)
	row.Check.Checked = task.Done
	row.Check.OnChanged = func(bool) {
		if tl.toggleHandler != nil {
			tl.toggleHandler(id)
		}
	}

	textColor := color.Color(palette.Foreground)
	if task.Done {
		textColor = palette.Completed
	}
	row.Text = canvas.NewText(task.Text, textColor)
	row.Text.TextSize = theme.TextSize()

	row.EditButton = widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		if tl.editHandler != nil {
			tl.editHandler(id)
		}
	})
	row.DeleteButton = widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		if tl.deleteHandler != nil {
			tl.deleteHandler(id)
		}
	})
	row.DeleteButton.Importance = widget.DangerImportance
	return row
}

func (tl *TaskList) card(row *TaskRow, palette apptheme.Palette) fyne.CanvasObject {
	number := canvas.NewText(fmt.Sprintf("%d.", row.Number), palette.Muted)
	number.TextStyle = fyne.TextStyle{Bold: true}

	var text fyne.CanvasObject = row.Text
	if row.Struck {
		text = strikethrough(row.Text, palette.Completed)
	}

	content := container.NewBorder(
		nil, nil,
		container.NewHBox(number, row.Check),
		container.NewHBox(row.EditButton, row.DeleteButton),
		text,
	)

	background := canvas.NewRectangle(palette.Surface)
	background.CornerRadius = theme.InputRadiusSize()
	background.StrokeColor = palette.Border
	background.StrokeWidth = 1
	return container.NewStack(background, container.NewPadded(content))
}

// strikethrough draws a line through the middle of txt.
func strikethrough(txt *canvas.Text, col color.Color) fyne.CanvasObject {
	line := canvas.NewRectangle(col)
	line.SetMinSize(fyne.NewSize(txt.MinSize().Width, 2))
	lineBox := container.NewVBox(layout.NewSpacer(), container.NewHBox(line), layout.NewSpacer())
	return container.NewStack(container.NewVBox(layout.NewSpacer(), txt, layout.NewSpacer()), lineBox)
}

func emptyState(palette apptheme.Palette) fyne.CanvasObject {
	title := canvas.NewText(EmptyTitle, palette.Completed)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = theme.TextSize() * 1.3
	title.Alignment = fyne.TextAlignCenter

	subtitle := canvas.NewText(EmptySubtitle, palette.Completed)
	subtitle.Alignment = fyne.TextAlignCenter

	return container.NewPadded(container.NewVBox(title, subtitle))
}

// Rows returns the rows of the latest render in display order.
func (tl *TaskList) Rows() []*TaskRow {
	return tl.rows
}

// ShowsPlaceholder reports whether the latest render was the empty state.
func (tl *TaskList) ShowsPlaceholder() bool {
	return tl.empty
}

// GetContainer returns the scrollable list
func (tl *TaskList) GetContainer() fyne.CanvasObject {
	return tl.scroll
}
