package bar

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"
)

const defaultBarWidth = 50

// Loader is a self-contained linear progress line for batch work outside
// test reporting (downloads, migrations). Every Update, Increment, and
// Finish call repaints the current line in place.
//
// Loader is not safe for concurrent use; callers report progress from a
// single goroutine.
type Loader struct {
	w        io.Writer
	total    int
	current  int
	barWidth int
	desc     string
	start    time.Time
	finished bool

	pctColor   *color.Color
	countColor *color.Color
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithBarWidth sets the width of the bar between the brackets.
func WithBarWidth(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.barWidth = n
		}
	}
}

// NewLoader creates a loader for total units of work writing to w.
func NewLoader(w io.Writer, total int, opts ...LoaderOption) *Loader {
	l := &Loader{
		w:          w,
		total:      total,
		barWidth:   defaultBarWidth,
		start:      time.Now(),
		pctColor:   color.New(color.FgCyan),
		countColor: color.New(color.FgHiWhite),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Update sets the current position and repaints. An optional description is
// shown after the counter.
func (l *Loader) Update(current int, description ...string) {
	if current < 0 {
		current = 0
	}
	if current > l.total {
		current = l.total
	}
	l.current = current
	if len(description) > 0 {
		l.desc = description[0]
	}
	l.repaint()
}

// Increment advances the position by one and repaints.
func (l *Loader) Increment(description ...string) {
	l.Update(l.current+1, description...)
}

// Finish completes the bar and terminates the line. Repeated calls repaint
// but only emit the trailing newline once.
func (l *Loader) Finish(description ...string) {
	l.current = l.total
	if len(description) > 0 {
		l.desc = description[0]
	}
	l.repaint()
	if !l.finished {
		l.finished = true
		fmt.Fprintln(l.w)
	}
}

// Percentage returns the whole-number completion percentage.
func (l *Loader) Percentage() int {
	return Percentage(l.current, l.total)
}

// ElapsedTime returns the time since the loader was created.
func (l *Loader) ElapsedTime() time.Duration {
	return time.Since(l.start)
}

// EstimatedTimeRemaining projects the remaining time from the average rate
// so far. It reports false until any progress has been made.
func (l *Loader) EstimatedTimeRemaining() (time.Duration, bool) {
	if l.current <= 0 {
		return 0, false
	}
	elapsed := l.ElapsedTime().Seconds()
	rate := float64(l.current) / elapsed
	if rate <= 0 {
		return 0, false
	}
	remaining := float64(l.total-l.current) / rate
	return time.Duration(remaining * float64(time.Second)), true
}

// repaint redraws the current line in place.
func (l *Loader) repaint() {
	line := fmt.Sprintf("%s %s %s",
		Build(l.current, l.total, l.barWidth),
		l.pctColor.Sprintf("%d%%", l.Percentage()),
		l.countColor.Sprintf("%d/%d", l.current, l.total))
	if l.desc != "" {
		line += "  " + l.desc
	}
	fmt.Fprint(l.w, "\r\x1b[K"+line)
}

// FormatDuration renders a duration as whole seconds, minutes, or hours:
// "45s", "3m", "2h". Zero and negative durations render as "0s".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	secs := d.Seconds()
	switch {
	case secs < 60:
		return fmt.Sprintf("%ds", int(math.Round(secs)))
	case secs < 3600:
		return fmt.Sprintf("%dm", int(math.Round(secs/60)))
	default:
		return fmt.Sprintf("%dh", int(math.Round(secs/3600)))
	}
}
