package components

import (
	"fmt"
	"time"

	"taskpad/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar shows where tasks are stored and how the last save went
type StatusBar struct {
	container *fyne.Container
	pathLabel *widget.Label
	saveLabel *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components
func (sb *StatusBar) createComponents() {
	sb.pathLabel = widget.NewLabel("File: --")
	sb.saveLabel = widget.NewLabel("Not saved yet")
}

// buildLayout constructs the status bar layout
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.pathLabel,
		widget.NewSeparator(),
		sb.saveLabel,
	)
}

// SetDataPath updates the snapshot location display
func (sb *StatusBar) SetDataPath(path string) {
	sb.pathLabel.SetText("File: " + path)
}

// SetSaveResult reports the outcome of the most recent save attempt
func (sb *StatusBar) SetSaveResult(saved time.Time, err error) {
	switch {
	case err != nil:
		sb.saveLabel.SetText("Save failed")
	case saved.IsZero():
		sb.saveLabel.SetText("Not saved yet")
	default:
		sb.saveLabel.SetText("Saved " + saved.Format("15:04:05"))
	}
}

// GetSaveStatus returns the current save message
func (sb *StatusBar) GetSaveStatus() string {
	return sb.saveLabel.Text
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// ProgressSummary renders the text shown on the progress bar.
func ProgressSummary(s models.Stats) string {
	if s.Empty() {
		return "No tasks"
	}
	return fmt.Sprintf("%d/%d completed (%d%%)", s.Completed, s.Total, s.Percent)
}

// CompletedSummary renders the "N of M" line under the progress bar.
func CompletedSummary(s models.Stats) string {
	if s.Empty() {
		return "No tasks yet"
	}
	return fmt.Sprintf("%d of %d tasks completed", s.Completed, s.Total)
}

// ProgressBar displays completion of the task list
type ProgressBar struct {
	container    *fyne.Container
	progressBar  *widget.ProgressBar
	summaryLabel *widget.Label
	stats        models.Stats
}

// NewProgressBar creates a new progress bar component
func NewProgressBar() *ProgressBar {
	pb := &ProgressBar{}
	pb.createComponents()
	pb.buildLayout()
	return pb
}

// createComponents initializes progress bar components
func (pb *ProgressBar) createComponents() {
	pb.progressBar = widget.NewProgressBar()
	pb.progressBar.TextFormatter = func() string {
		return ProgressSummary(pb.stats)
	}
	pb.summaryLabel = widget.NewLabel(CompletedSummary(pb.stats))
	pb.summaryLabel.Alignment = fyne.TextAlignCenter
}

// buildLayout constructs the progress bar layout
func (pb *ProgressBar) buildLayout() {
	pb.container = container.NewVBox(
		pb.progressBar,
		pb.summaryLabel,
	)
}

// SetStats updates bar and label from completion statistics
func (pb *ProgressBar) SetStats(s models.Stats) {
	pb.stats = s
	pb.summaryLabel.SetText(CompletedSummary(s))
	pb.progressBar.SetValue(float64(s.Percent) / 100)
}

// GetProgress returns the current bar value in [0, 1]
func (pb *ProgressBar) GetProgress() float64 {
	return pb.progressBar.Value
}

func (pb *ProgressBar) GetBarText() string {
	return ProgressSummary(pb.stats)
}

func (pb *ProgressBar) GetSummary() string {
	return pb.summaryLabel.Text
}

// GetContainer returns the progress bar container
func (pb *ProgressBar) GetContainer() *fyne.Container {
	return pb.container
}
