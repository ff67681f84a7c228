package components

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ClockLayout is the timestamp format, e.g. "Monday, January 2, 2006 - 03:04:05 PM".
const ClockLayout = "Monday, January 2, 2006 - 03:04:05 PM"

// FormatTimestamp renders t the way the clock label shows it.
func FormatTimestamp(t time.Time) string {
	return t.Format(ClockLayout)
}

// Clock is a label that shows the current time, refreshed on a fixed
// interval by a background ticker. It never touches task data.
type Clock struct {
	label    *widget.Label
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewClock creates a stopped clock. now may be nil to use time.Now.
func NewClock(interval time.Duration, now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	c := &Clock{
		label:    widget.NewLabel(""),
		interval: interval,
		now:      now,
	}
	c.label.Alignment = fyne.TextAlignCenter
	c.Tick()
	return c
}

// Tick sets the label to the current time. Call on the UI thread.
func (c *Clock) Tick() {
	c.label.SetText(FormatTimestamp(c.now()))
}

// Start launches the ticker goroutine; it stops when ctx is cancelled or
// Stop is called. Starting a running clock is a no-op.
func (c *Clock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				fyne.Do(c.Tick)
			case <-ctx.Done():
				return
			}
		}
	}(c.done)
}

// Stop halts the ticker and waits for its goroutine to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Clock) Shutdown() { c.Stop() }

func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

func (c *Clock) Label() *widget.Label { return c.label }
