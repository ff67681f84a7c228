package views

import (
	"errors"
	"testing"
	"time"

	"taskpad/internal/models"
	apptheme "taskpad/internal/views/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, p apptheme.Palette) (*MainView, fyne.Window) {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("Taskpad")
	t.Cleanup(w.Close)
	return NewMainView(w, p, time.Second), w
}

func TestRenderShowsPlaceholderAndRows(t *testing.T) {
	mv, _ := newTestView(t, apptheme.Light)
	mv.Render(nil, models.Stats{})
	assert.True(t, mv.GetTaskList().ShowsPlaceholder())
	assert.Equal(t, "No tasks", mv.GetProgressBar().GetBarText())

	tasks := []models.Task{models.NewTask("A", true), models.NewTask("B", false)}
	mv.Render(tasks, models.ComputeStats(tasks))
	assert.False(t, mv.GetTaskList().ShowsPlaceholder())
	assert.Len(t, mv.GetTaskList().Rows(), 2)
	assert.Equal(t, "1/2 completed (50%)", mv.GetProgressBar().GetBarText())
	assert.Equal(t, "1 of 2 tasks completed", mv.GetProgressBar().GetSummary())
}

func TestApplyPaletteRerendersWithNewColours(t *testing.T) {
	mv, _ := newTestView(t, apptheme.Light)
	assert.Equal(t, "Dark Mode", mv.GetToolbar().ThemeButton().Text)

	tasks := []models.Task{models.NewTask("A", false)}
	mv.Render(tasks, models.ComputeStats(tasks))
	mv.ApplyPalette(apptheme.Dark)

	assert.Equal(t, apptheme.Dark.Name, mv.Palette().Name)
	assert.Equal(t, "Light Mode", mv.GetToolbar().ThemeButton().Text)
	assert.Equal(t, apptheme.Dark.Foreground, mv.GetTaskList().Rows()[0].Text.Color)

	current, ok := fyne.CurrentApp().Settings().Theme().(apptheme.Theme)
	require.True(t, ok)
	assert.Equal(t, apptheme.Dark.Name, current.Palette().Name)
}

func TestViewForwardsEvents(t *testing.T) {
	mv, _ := newTestView(t, apptheme.Light)
	var added, toggled, edited, deleted []string
	themeTaps := 0
	mv.SetAddHandler(func(text string) { added = append(added, text) })
	mv.SetToggleHandler(func(id string) { toggled = append(toggled, id) })
	mv.SetEditHandler(func(id string) { edited = append(edited, id) })
	mv.SetDeleteHandler(func(id string) { deleted = append(deleted, id) })
	mv.SetThemeToggleHandler(func() { themeTaps++ })

	tasks := []models.Task{models.NewTask("A", false)}
	mv.Render(tasks, models.ComputeStats(tasks))

	test.Type(mv.GetToolbar().Entry(), "Buy milk")
	test.Tap(mv.GetToolbar().AddButton())
	test.Tap(mv.GetToolbar().ThemeButton())
	row := mv.GetTaskList().Rows()[0]
	test.Tap(row.Check)
	test.Tap(row.EditButton)
	test.Tap(row.DeleteButton)

	assert.Equal(t, []string{"Buy milk"}, added)
	assert.Equal(t, 1, themeTaps)
	assert.Equal(t, []string{tasks[0].ID}, toggled)
	assert.Equal(t, []string{tasks[0].ID}, edited)
	assert.Equal(t, []string{tasks[0].ID}, deleted)
}

func TestClearInputEmptiesEntry(t *testing.T) {
	mv, _ := newTestView(t, apptheme.Light)
	test.Type(mv.GetToolbar().Entry(), "draft")
	mv.ClearInput()
	assert.Empty(t, mv.GetToolbar().Entry().Text)
}

func TestDialogsOpenAsOverlays(t *testing.T) {
	mv, w := newTestView(t, apptheme.Light)
	assert.Nil(t, w.Canvas().Overlays().Top())

	mv.ConfirmDelete("A", func(bool) {})
	assert.NotNil(t, w.Canvas().Overlays().Top())
}

func TestEditDialogOpens(t *testing.T) {
	mv, w := newTestView(t, apptheme.Light)
	mv.PromptEdit("A", func(string) {})
	assert.NotNil(t, w.Canvas().Overlays().Top())
}

func TestStatusBarUpdates(t *testing.T) {
	mv, _ := newTestView(t, apptheme.Light)
	mv.SetDataPath("tasks.dat")
	mv.SetSaveStatus(time.Date(2024, 1, 1, 8, 30, 0, 0, time.Local), nil)
	assert.Equal(t, "Saved 08:30:00", mv.GetStatusBar().GetSaveStatus())
}

func TestErrorAndQuitDialogsOpen(t *testing.T) {
	mv, w := newTestView(t, apptheme.Light)
	mv.ShowError("Save Error", errors.New("disk full"))
	assert.Len(t, w.Canvas().Overlays().List(), 1)

	mv.ConfirmQuit("quit?", func(bool) {})
	assert.Len(t, w.Canvas().Overlays().List(), 2)
}
