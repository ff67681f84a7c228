package views

import (
	"fmt"
	"strings"
	"time"

	"taskpad/internal/models"
	"taskpad/internal/views/components"
	apptheme "taskpad/internal/views/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	DeleteDialogTitle = "Confirm Delete"
	EditDialogTitle   = "Edit Task"
	QuitDialogTitle   = "Quit Without Saving"
)

// MainView represents the main application view using MVC pattern.
// Every method must be called on the UI thread.
type MainView struct {
	// UI Components
	window        fyne.Window
	mainContainer *fyne.Container
	header        *components.Header
	toolbar       *components.Toolbar
	taskList      *components.TaskList
	progressBar   *components.ProgressBar
	statusBar     *components.StatusBar
	clock         *components.Clock

	// palette is the single current palette; every render reads it
	palette   apptheme.Palette
	lastTasks []models.Task

	// Event handlers - connected to controller
	addHandler         func(string)
	toggleHandler      func(string)
	editHandler        func(string)
	deleteHandler      func(string)
	themeToggleHandler func()
	quitHandler        func()
}

// NewMainView creates the main view and installs it as the window content
func NewMainView(window fyne.Window, palette apptheme.Palette, clockInterval time.Duration) *MainView {
	view := &MainView{
		window:  window,
		palette: palette,
	}

	view.initializeComponents(clockInterval)
	view.buildLayout()
	view.setupEventHandlers()
	view.ApplyPalette(palette)

	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents(clockInterval time.Duration) {
	mv.toolbar = components.NewToolbar()
	mv.taskList = components.NewTaskList()
	mv.progressBar = components.NewProgressBar()
	mv.statusBar = components.NewStatusBar()
	mv.clock = components.NewClock(clockInterval, nil)
	mv.header = components.NewHeader(mv.progressBar, mv.clock)
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	topArea := container.NewVBox(
		mv.header.GetContainer(),
		mv.toolbar.GetContainer(),
		widget.NewSeparator(),
	)

	mv.mainContainer = container.NewBorder(
		topArea,
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.taskList.GetContainer(),
	)

	mv.window.SetContent(container.NewPadded(mv.mainContainer))
}

// setupEventHandlers connects internal component events
func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetAddHandler(func(text string) {
		if mv.addHandler != nil {
			mv.addHandler(text)
		}
	})
	mv.toolbar.SetThemeToggleHandler(mv.toggleTheme)

	mv.taskList.SetToggleHandler(func(id string) {
		if mv.toggleHandler != nil {
			mv.toggleHandler(id)
		}
	})
	mv.taskList.SetEditHandler(func(id string) {
		if mv.editHandler != nil {
			mv.editHandler(id)
		}
	})
	mv.taskList.SetDeleteHandler(func(id string) {
		if mv.deleteHandler != nil {
			mv.deleteHandler(id)
		}
	})
}

func (mv *MainView) toggleTheme() {
	if mv.themeToggleHandler != nil {
		mv.themeToggleHandler()
	}
}

// Event handler setters - called by controller

// SetAddHandler sets the handler receiving the raw text of a new task
func (mv *MainView) SetAddHandler(handler func(string)) {
	mv.addHandler = handler
}

// SetToggleHandler sets the handler for completion checkbox changes
func (mv *MainView) SetToggleHandler(handler func(string)) {
	mv.toggleHandler = handler
}

// SetEditHandler sets the handler for row edit buttons
func (mv *MainView) SetEditHandler(handler func(string)) {
	mv.editHandler = handler
}

// SetDeleteHandler sets the handler for row delete buttons
func (mv *MainView) SetDeleteHandler(handler func(string)) {
	mv.deleteHandler = handler
}

// SetThemeToggleHandler sets the handler for the theme button and menu item
func (mv *MainView) SetThemeToggleHandler(handler func()) {
	mv.themeToggleHandler = handler
}

func (mv *MainView) SetQuitHandler(handler func()) {
	mv.quitHandler = handler
}

// SetMainMenu installs the File and View menus on the window
func (mv *MainView) SetMainMenu() {
	quit := fyne.NewMenuItem("Quit", func() {
		if mv.quitHandler != nil {
			mv.quitHandler()
		}
	})
	quit.IsQuit = true

	fileMenu := fyne.NewMenu("File", quit)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Theme", mv.toggleTheme),
	)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu))
}

// Render shows tasks and their statistics with the current palette
func (mv *MainView) Render(tasks []models.Task, stats models.Stats) {
	mv.lastTasks = tasks
	mv.progressBar.SetStats(stats)
	mv.taskList.Render(tasks, mv.palette)
}

// ApplyPalette switches the current palette and redraws everything with it
func (mv *MainView) ApplyPalette(p apptheme.Palette) {
	mv.palette = p
	if app := fyne.CurrentApp(); app != nil {
		app.Settings().SetTheme(apptheme.New(p))
	}
	mv.toolbar.SetThemeLabel(p.ToggleLabel())
	mv.header.ApplyPalette(p)
	mv.taskList.Render(mv.lastTasks, p)
}

// Palette returns the palette currently in use
func (mv *MainView) Palette() apptheme.Palette {
	return mv.palette
}

// ClearInput empties the task entry and gives it focus again
func (mv *MainView) ClearInput() {
	mv.toolbar.ClearInput()
	if c := mv.window.Canvas(); c != nil {
		c.Focus(mv.toolbar.Entry())
	}
}

// SetDataPath shows where tasks are stored
func (mv *MainView) SetDataPath(path string) {
	mv.statusBar.SetDataPath(path)
}

// SetSaveStatus shows the outcome of the most recent save
func (mv *MainView) SetSaveStatus(saved time.Time, err error) {
	mv.statusBar.SetSaveResult(saved, err)
}

// ConfirmDelete asks before a task is removed
func (mv *MainView) ConfirmDelete(text string, callback func(bool)) {
	message := fmt.Sprintf("Are you sure you want to delete this task?\n%q", text)
	dialog.ShowConfirm(DeleteDialogTitle, message, callback, mv.window)
}

// PromptEdit opens a form pre-filled with current. callback only runs when
// the user confirms.
func (mv *MainView) PromptEdit(current string, callback func(string)) {
	entry := widget.NewEntry()
	entry.SetText(current)

	items := []*widget.FormItem{
		widget.NewFormItem("Task", entry),
	}
	form := dialog.NewForm(EditDialogTitle, "Save", "Cancel", items, func(confirmed bool) {
		if confirmed {
			callback(strings.TrimSpace(entry.Text))
		}
	}, mv.window)
	form.Resize(fyne.NewSize(420, form.MinSize().Height))
	form.Show()
	mv.window.Canvas().Focus(entry)
}

// ConfirmQuit asks whether to close although the last save failed
func (mv *MainView) ConfirmQuit(message string, callback func(bool)) {
	dialog.ShowConfirm(QuitDialogTitle, message, callback, mv.window)
}

// ShowError displays an error dialog. An empty title uses Fyne's default
// error dialog.
func (mv *MainView) ShowError(title string, err error) {
	if title == "" {
		dialog.ShowError(err, mv.window)
		return
	}
	message := widget.NewLabel(err.Error())
	message.Wrapping = fyne.TextWrapWord
	dialog.ShowCustom(title, "OK", message, mv.window)
}

// ShowWarning displays an informational dialog
func (mv *MainView) ShowWarning(title, message string) {
	dialog.ShowInformation(title, message, mv.window)
}

// Clock returns the header clock so the caller can drive its lifecycle
func (mv *MainView) Clock() *components.Clock {
	return mv.clock
}

func (mv *MainView) GetToolbar() *components.Toolbar { return mv.toolbar }

func (mv *MainView) GetTaskList() *components.TaskList { return mv.taskList }

func (mv *MainView) GetProgressBar() *components.ProgressBar { return mv.progressBar }

func (mv *MainView) GetStatusBar() *components.StatusBar { return mv.statusBar }

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}
