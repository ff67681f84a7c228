package controllers

import (
	"errors"
	"fmt"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/logger"
	"taskpad/internal/models"
	"taskpad/internal/persistence"
	"taskpad/internal/services"
	apptheme "taskpad/internal/views/theme"
)

const (
	// ThemePreferenceKey is the app preference holding the chosen palette name.
	ThemePreferenceKey = "theme"

	LoadErrorTitle   = "Load Error"
	LoadErrorMessage = "Error loading saved tasks. Starting with empty list."
	SaveErrorTitle   = "Save Error"

	QuitUnsavedMessage = "Your tasks could not be saved. Quit anyway and lose the changes?"
)

// View is what the controller needs from the main window
type View interface {
	SetAddHandler(func(string))
	SetToggleHandler(func(string))
	SetEditHandler(func(string))
	SetDeleteHandler(func(string))
	SetThemeToggleHandler(func())

	Render(tasks []models.Task, stats models.Stats)
	ApplyPalette(p apptheme.Palette)
	Palette() apptheme.Palette
	ClearInput()
	SetDataPath(path string)
	SetSaveStatus(saved time.Time, err error)

	ConfirmDelete(text string, callback func(bool))
	ConfirmQuit(message string, callback func(bool))
	PromptEdit(current string, callback func(string))
	ShowError(title string, err error)
	ShowWarning(title, message string)
}

// Preferences is the subset of fyne.Preferences used to remember the theme
type Preferences interface {
	StringWithFallback(key, fallback string) string
	SetString(key, value string)
}

// MainController orchestrates the application using MVC pattern
type MainController struct {
	service *services.TaskService
	prefs   Preferences
	config  config.Config
	logger  logger.Logger

	mainView View
}

// NewMainController creates a new main controller. prefs may be nil.
func NewMainController(service *services.TaskService, prefs Preferences, cfg config.Config, log logger.Logger) *MainController {
	if log == nil {
		log = logger.NewNop()
	}
	return &MainController{
		service: service,
		prefs:   prefs,
		config:  cfg,
		logger:  log,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

// Start applies the initial theme and renders the store. From here on every
// store change redraws the view.
func (mc *MainController) Start() {
	mc.service.Store().OnChange(mc.refresh)

	mc.mainView.ApplyPalette(mc.initialPalette())
	mc.mainView.SetDataPath(mc.service.DataPath())
	mc.mainView.SetSaveStatus(mc.service.LastSave())
	mc.refresh()
}

// ReportLoadError tells the user the saved tasks could not be read
func (mc *MainController) ReportLoadError(err error) {
	if err == nil {
		return
	}
	mc.logger.Error("MainController", err, map[string]interface{}{
		"path": mc.service.DataPath(),
	})

	var loadErr *persistence.LoadError
	if errors.As(err, &loadErr) {
		mc.mainView.ShowWarning(LoadErrorTitle, LoadErrorMessage)
		return
	}
	mc.mainView.ShowError(LoadErrorTitle, err)
}

// RequestClose saves unsaved changes and then calls quit. When the save
// fails the user is told and decides whether to quit anyway; declining keeps
// the window open with the tasks still in memory.
func (mc *MainController) RequestClose(quit func()) {
	err := mc.service.FlushPending()
	mc.mainView.SetSaveStatus(mc.service.LastSave())
	if err == nil {
		quit()
		return
	}

	mc.handleError(SaveErrorTitle, fmt.Errorf("error saving tasks: %w", err))
	mc.mainView.ConfirmQuit(QuitUnsavedMessage, func(confirmed bool) {
		if confirmed {
			mc.logger.Warning("MainController", "quitting with unsaved tasks", map[string]interface{}{
				"path": mc.service.DataPath(),
			})
			quit()
		}
	})
}

// AddTask handles the add button and the entry's submit key
func (mc *MainController) AddTask(text string) {
	changed, err := mc.service.Add(text)
	if changed {
		mc.mainView.ClearInput()
	}
	mc.reportSave(err)
}

// ToggleTask flips completion of the task with id
func (mc *MainController) ToggleTask(id string) {
	_, err := mc.service.Toggle(id)
	mc.reportSave(err)
}

// EditTask prompts for new text and applies it when the user confirms
func (mc *MainController) EditTask(id string) {
	task, ok := mc.service.Store().Get(id)
	if !ok {
		return
	}

	mc.mainView.PromptEdit(task.Text, func(text string) {
		_, err := mc.service.Edit(id, text)
		mc.reportSave(err)
	})
}

// DeleteTask removes the task with id, asking first when configured to
func (mc *MainController) DeleteTask(id string) {
	task, ok := mc.service.Store().Get(id)
	if !ok {
		return
	}

	remove := func() {
		_, err := mc.service.Delete(id)
		mc.reportSave(err)
	}

	if !mc.config.ConfirmDelete {
		remove()
		return
	}
	mc.mainView.ConfirmDelete(task.Text, func(confirmed bool) {
		if confirmed {
			remove()
		}
	})
}

// ToggleTheme swaps to the other palette and remembers the choice
func (mc *MainController) ToggleTheme() {
	next := mc.mainView.Palette().Other()
	mc.mainView.ApplyPalette(next)

	if mc.prefs != nil {
		mc.prefs.SetString(ThemePreferenceKey, next.Name)
	}
	mc.logger.Debug("MainController", "theme changed", map[string]interface{}{
		"theme": next.Name,
	})
}

func (mc *MainController) initialPalette() apptheme.Palette {
	name := mc.config.Theme
	if mc.prefs != nil {
		name = mc.prefs.StringWithFallback(ThemePreferenceKey, name)
	}
	return apptheme.ByName(name)
}

func (mc *MainController) refresh() {
	store := mc.service.Store()
	mc.mainView.Render(store.Tasks(), store.Stats())
}

func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetAddHandler(mc.AddTask)
	mc.mainView.SetToggleHandler(mc.ToggleTask)
	mc.mainView.SetEditHandler(mc.EditTask)
	mc.mainView.SetDeleteHandler(mc.DeleteTask)
	mc.mainView.SetThemeToggleHandler(mc.ToggleTheme)
}

// reportSave updates the status bar and surfaces a failed save
func (mc *MainController) reportSave(err error) {
	mc.mainView.SetSaveStatus(mc.service.LastSave())
	if err == nil {
		return
	}
	mc.handleError(SaveErrorTitle, fmt.Errorf("error saving tasks: %w", err))
}

func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error("MainController", err, map[string]interface{}{
		"title": title,
	})
	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
	}
}
