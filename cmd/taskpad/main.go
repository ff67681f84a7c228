package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"taskpad/internal/config"
	"taskpad/internal/controllers"
	"taskpad/internal/logger"
	"taskpad/internal/models"
	"taskpad/internal/persistence"
	"taskpad/internal/services"
	"taskpad/internal/shutdown"
	"taskpad/internal/views"
	apptheme "taskpad/internal/views/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Taskpad"
	AppID      = "io.taskpad.desktop"
	AppVersion = "1.0.0"

	shutdownTimeout = 5 * time.Second
)

// Application wires the task list window together
type Application struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  config.Config

	// MVC Components
	controller *controllers.MainController
	view       *views.MainView
	service    *services.TaskService

	shutdown *shutdown.Manager
	loadErr  error
}

func main() {
	cfg, warnings := config.Load()

	application, err := NewApplication(cfg, warnings)
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()
}

func newLogger(cfg config.Config) logger.Logger {
	if cfg.JSONLogs {
		return logger.NewJSONLogger(cfg.LogLevel)
	}
	return logger.NewConsoleLogger(cfg.LogLevel)
}

// NewApplication creates and initializes the application using dependency injection
func NewApplication(cfg config.Config, configWarnings []string) (*Application, error) {
	appLogger := newLogger(cfg)
	for _, w := range configWarnings {
		appLogger.Warning("Application", w, nil)
	}

	gateway, err := persistence.Open(cfg.DataFile)
	if err != nil {
		return nil, fmt.Errorf("open task storage: %w", err)
	}

	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(700, 800))
	window.SetMaster()
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":     AppVersion,
		"data_file":   gateway.Path(),
		"save_policy": string(cfg.SavePolicy),
		"log_level":   cfg.LogLevel.String(),
	})

	// Initialize model and service
	store := models.NewTaskStore()
	service := services.NewTaskService(store, gateway, cfg.SavePolicy, appLogger)
	loadErr := service.Load()

	// Initialize MVC components
	mainView := views.NewMainView(window, apptheme.ByName(cfg.Theme), cfg.ClockInterval)
	mainController := controllers.NewMainController(service, fyneApp.Preferences(), cfg, appLogger)
	mainController.SetMainView(mainView)
	mainController.Start()

	manager := shutdown.NewManager(appLogger, shutdownTimeout)
	manager.Register("tasks", service)
	manager.Register("clock", mainView.Clock())

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: mainController,
		view:       mainView,
		service:    service,
		shutdown:   manager,
		loadErr:    loadErr,
	}

	application.setupWindowEvents()
	return application, nil
}

// Run shows the window and blocks until the application quits
func (app *Application) Run() {
	app.view.Show()

	if app.loadErr != nil {
		var loadErr *persistence.LoadError
		if !errors.As(app.loadErr, &loadErr) {
			app.logger.Warning("Application", "unexpected load failure", map[string]interface{}{
				"error": app.loadErr.Error(),
			})
		}
		app.controller.ReportLoadError(app.loadErr)
	}

	app.view.Clock().Start(app.shutdown.Context())
	app.shutdown.Listen(func() {
		fyne.Do(app.fyneApp.Quit)
	})

	app.fyneApp.Run()

	// Run returns once the event loop stops; make sure the final save happened.
	app.shutdown.Shutdown()
	app.logger.Info("Application", "terminated", nil)
}

// setupWindowEvents routes every way of closing through the final save and
// the shutdown manager
func (app *Application) setupWindowEvents() {
	closeWindow := func() {
		app.logger.Info("Application", "window close requested", nil)
		app.controller.RequestClose(func() {
			app.shutdown.Shutdown()
			app.window.Close()
		})
	}

	app.window.SetCloseIntercept(closeWindow)
	app.view.SetQuitHandler(closeWindow)
	app.view.SetMainMenu()
}
