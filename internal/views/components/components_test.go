package components

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"taskpad/internal/models"
	apptheme "taskpad/internal/views/theme"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []models.Task {
	return []models.Task{
		models.NewTask("Buy milk", false),
		models.NewTask("Walk dog", true),
	}
}

func TestTaskListShowsPlaceholderWhenEmpty(t *testing.T) {
	test.NewTempApp(t)
	tl := NewTaskList()

	tl.Render(nil, apptheme.Light)
	assert.True(t, tl.ShowsPlaceholder())
	assert.Empty(t, tl.Rows())

	tl.Render(sampleTasks(), apptheme.Light)
	assert.False(t, tl.ShowsPlaceholder())

	tl.Render([]models.Task{}, apptheme.Dark)
	assert.True(t, tl.ShowsPlaceholder())
}

func TestTaskListRendersRowsInOrder(t *testing.T) {
	test.NewTempApp(t)
	tl := NewTaskList()
	tasks := sampleTasks()

	tl.Render(tasks, apptheme.Light)
	rows := tl.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "Buy milk", rows[0].Text.Text)
	assert.False(t, rows[0].Struck)
	assert.False(t, rows[0].Check.Checked)
	assert.Equal(t, apptheme.Light.Foreground, rows[0].Text.Color)

	assert.Equal(t, 2, rows[1].Number)
	assert.Equal(t, "Walk dog", rows[1].Text.Text)
	assert.True(t, rows[1].Struck)
	assert.True(t, rows[1].Check.Checked)
	assert.Equal(t, apptheme.Light.Completed, rows[1].Text.Color)
}

func TestTaskListUsesPaletteOfEachRender(t *testing.T) {
	test.NewTempApp(t)
	tl := NewTaskList()
	tasks := sampleTasks()

	tl.Render(tasks, apptheme.Light)
	tl.Render(tasks, apptheme.Dark)
	assert.Equal(t, apptheme.Dark.Foreground, tl.Rows()[0].Text.Color)
	assert.Equal(t, apptheme.Dark.Completed, tl.Rows()[1].Text.Color)
}

func TestTaskListRenderDoesNotFireToggle(t *testing.T) {
	test.NewTempApp(t)
	tl := NewTaskList()
	fired := 0
	tl.SetToggleHandler(func(string) { fired++ })

	tl.Render(sampleTasks(), apptheme.Light)
	assert.Zero(t, fired)
}

func TestTaskListRowHandlersReceiveTaskID(t *testing.T) {
	test.NewTempApp(t)
	tl := NewTaskList()
	tasks := sampleTasks()

	var toggled, edited, deleted []string
	tl.SetToggleHandler(func(id string) { toggled = append(toggled, id) })
	tl.SetEditHandler(func(id string) { edited = append(edited, id) })
	tl.SetDeleteHandler(func(id string) { deleted = append(deleted, id) })
	tl.Render(tasks, apptheme.Light)

	rows := tl.Rows()
	test.Tap(rows[0].Check)
	test.Tap(rows[1].EditButton)
	test.Tap(rows[0].DeleteButton)

	assert.Equal(t, []string{tasks[0].ID}, toggled)
	assert.Equal(t, []string{tasks[1].ID}, edited)
	assert.Equal(t, []string{tasks[0].ID}, deleted)
}

func TestSummaries(t *testing.T) {
	cases := []struct {
		stats   models.Stats
		bar     string
		summary string
	}{
		{models.Stats{}, "No tasks", "No tasks yet"},
		{models.Stats{Completed: 0, Total: 3, Percent: 0}, "0/3 completed (0%)", "0 of 3 tasks completed"},
		{models.Stats{Completed: 1, Total: 3, Percent: 33}, "1/3 completed (33%)", "1 of 3 tasks completed"},
		{models.Stats{Completed: 2, Total: 2, Percent: 100}, "2/2 completed (100%)", "2 of 2 tasks completed"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.bar, ProgressSummary(tc.stats))
		assert.Equal(t, tc.summary, CompletedSummary(tc.stats))
	}
}

func TestProgressBarSetStats(t *testing.T) {
	test.NewTempApp(t)
	pb := NewProgressBar()
	assert.Equal(t, "No tasks", pb.GetBarText())
	assert.Equal(t, "No tasks yet", pb.GetSummary())

	pb.SetStats(models.Stats{Completed: 1, Total: 4, Percent: 25})
	assert.InDelta(t, 0.25, pb.GetProgress(), 1e-9)
	assert.Equal(t, "1/4 completed (25%)", pb.GetBarText())
	assert.Equal(t, "1 of 4 tasks completed", pb.GetSummary())

	pb.SetStats(models.Stats{})
	assert.Zero(t, pb.GetProgress())
	assert.Equal(t, "No tasks", pb.GetBarText())
}

func TestStatusBarSaveResult(t *testing.T) {
	test.NewTempApp(t)
	sb := NewStatusBar()
	assert.Equal(t, "Not saved yet", sb.GetSaveStatus())

	saved := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	sb.SetSaveResult(saved, nil)
	assert.Equal(t, "Saved 14:05:07", sb.GetSaveStatus())

	sb.SetSaveResult(saved, errors.New("disk full"))
	assert.Equal(t, "Save failed", sb.GetSaveStatus())

	sb.SetDataPath("/tmp/tasks.dat")
	assert.Equal(t, "File: /tmp/tasks.dat", sb.pathLabel.Text)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "Saturday, March 9, 2024 - 02:05:07 PM", FormatTimestamp(ts))

	morning := time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "Wednesday, December 25, 2024 - 09:00:00 AM", FormatTimestamp(morning))
}

type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(time.Second)
	return f.t
}

func (f *fakeNow) Last() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func TestClockTickAndLifecycle(t *testing.T) {
	test.NewTempApp(t)
	now := &fakeNow{t: time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)}
	clock := NewClock(5*time.Millisecond, now.Now)

	assert.Equal(t, "Saturday, March 9, 2024 - 02:05:01 PM", clock.Label().Text)
	clock.Tick()
	assert.Equal(t, "Saturday, March 9, 2024 - 02:05:02 PM", clock.Label().Text)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	clock.Start(ctx)
	clock.Start(ctx)
	assert.True(t, clock.Running())

	start := now.Last()
	assert.Eventually(t, func() bool {
		return now.Last().After(start)
	}, time.Second, 5*time.Millisecond)

	clock.Stop()
	assert.False(t, clock.Running())
	clock.Shutdown()
}

func TestToolbarSubmitsRawText(t *testing.T) {
	test.NewTempApp(t)
	tb := NewToolbar()
	var got []string
	tb.SetAddHandler(func(text string) { got = append(got, text) })

	test.Type(tb.Entry(), "  Buy milk ")
	test.Tap(tb.AddButton())
	require.Equal(t, []string{"  Buy milk "}, got)

	tb.ClearInput()
	assert.Empty(t, tb.Entry().Text)
	assert.Equal(t, InputPlaceholder, tb.Entry().PlaceHolder)

	test.Type(tb.Entry(), "Walk dog")
	tb.Entry().TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, []string{"  Buy milk ", "Walk dog"}, got)
}

func TestToolbarThemeButton(t *testing.T) {
	test.NewTempApp(t)
	tb := NewToolbar()
	taps := 0
	tb.SetThemeToggleHandler(func() { taps++ })

	assert.Equal(t, "Dark Mode", tb.ThemeButton().Text)
	test.Tap(tb.ThemeButton())
	assert.Equal(t, 1, taps)

	tb.SetThemeLabel("Light Mode")
	assert.Equal(t, "Light Mode", tb.ThemeButton().Text)
}

func TestHeaderFollowsPalette(t *testing.T) {
	test.NewTempApp(t)
	h := NewHeader(NewProgressBar(), NewClock(time.Second, nil))
	assert.Equal(t, HeaderTitle, h.Title().Text)

	h.ApplyPalette(apptheme.Dark)
	assert.Equal(t, apptheme.Dark.Primary, h.Title().Color)
}
