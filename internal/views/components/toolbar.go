package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// InputPlaceholder is shown in the task entry while it is empty.
const InputPlaceholder = "Enter a new task..."

// Toolbar holds the new-task entry, the add button and the theme toggle
type Toolbar struct {
	container   *fyne.Container
	entry       *widget.Entry
	addButton   *widget.Button
	themeButton *widget.Button

	// Event handlers
	addHandler   func(string)
	themeHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	toolbar.setupEventHandlers()
	return toolbar
}

// createComponents initializes all toolbar components
func (t *Toolbar) createComponents() {
	t.entry = widget.NewEntry()
	t.entry.SetPlaceHolder(InputPlaceholder)

	t.addButton = widget.NewButtonWithIcon("Add Task", theme.ContentAddIcon(), nil)
	t.addButton.Importance = widget.HighImportance

	t.themeButton = widget.NewButton("Dark Mode", nil)
	t.themeButton.Importance = widget.MediumImportance
}

// buildLayout constructs the toolbar layout
func (t *Toolbar) buildLayout() {
	t.container = container.NewBorder(
		nil, nil,
		nil,
		container.NewHBox(t.addButton, widget.NewSeparator(), t.themeButton),
		t.entry,
	)
}

// setupEventHandlers connects widget callbacks to the registered handlers
func (t *Toolbar) setupEventHandlers() {
	submit := func() {
		if t.addHandler != nil {
			t.addHandler(t.entry.Text)
		}
	}
	t.entry.OnSubmitted = func(string) { submit() }
	t.addButton.OnTapped = submit

	t.themeButton.OnTapped = func() {
		if t.themeHandler != nil {
			t.themeHandler()
		}
	}
}

// SetAddHandler sets the handler receiving the raw entry text
func (t *Toolbar) SetAddHandler(handler func(string)) {
	t.addHandler = handler
}

// SetThemeToggleHandler sets the handler for the theme button
func (t *Toolbar) SetThemeToggleHandler(handler func()) {
	t.themeHandler = handler
}

// SetThemeLabel updates the caption of the theme button
func (t *Toolbar) SetThemeLabel(label string) {
	t.themeButton.SetText(label)
}

// ClearInput empties the entry so the placeholder shows again
func (t *Toolbar) ClearInput() {
	t.entry.SetText("")
}

func (t *Toolbar) Entry() *widget.Entry { return t.entry }

func (t *Toolbar) AddButton() *widget.Button { return t.addButton }

func (t *Toolbar) ThemeButton() *widget.Button { return t.themeButton }

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
