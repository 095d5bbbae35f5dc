package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/kwade/glint/bar"
	"github.com/kwade/glint/results"
	"github.com/kwade/glint/term"
)

// Linear is the non-animated formatter variant: a single bracketed
// progress bar repainted in place on every event, with the same summary
// and failure reporting as the grouped variant.
//
// The linear variant runs no background task, so lifecycle calls need no
// locking.
type Linear struct {
	reporter

	width    int
	start    time.Time
	finished bool
}

// LinearOption configures a Linear formatter.
type LinearOption func(*Linear)

// WithLinearWidth overrides the detected terminal width.
func WithLinearWidth(w int) LinearOption {
	return func(l *Linear) {
		if w > 0 {
			l.width = w
		}
	}
}

// WithLinearColor disables styling when false.
func WithLinearColor(enabled bool) LinearOption {
	return func(l *Linear) {
		if !enabled {
			l.st = plainStyles()
		}
	}
}

// NewLinear creates a linear formatter writing to w.
func NewLinear(w io.Writer, opts ...LinearOption) *Linear {
	l := &Linear{
		reporter: reporter{
			w:     w,
			st:    newStyles(),
			store: results.NewStore(),
		},
		width: term.Width(w),
		start: time.Now(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RunStarted fixes the total and emits the leading blank line.
func (l *Linear) RunStarted(total int) {
	l.store.SetTotal(total)
	fmt.Fprintln(l.w)
}

// ItemStarted records the new item and repaints the bar.
func (l *Linear) ItemStarted(group, label string, loc results.Location) {
	l.store.StartItem(normalizeGroup(group), label, loc)
	l.repaint()
}

// ItemPassed records a pass and repaints.
func (l *Linear) ItemPassed(group string) {
	l.store.RecordPassed(normalizeGroup(group))
	l.repaint()
}

// ItemFailed records a failure and repaints.
func (l *Linear) ItemFailed(group string, detail results.ErrorDetail) {
	l.store.RecordFailed(normalizeGroup(group), detail)
	l.repaint()
}

// ItemPending records a pending item and repaints.
func (l *Linear) ItemPending(group string) {
	l.store.RecordPending(normalizeGroup(group))
	l.repaint()
}

// RunFinished terminates the bar line and prints the summary. Repeated
// calls are no-ops.
func (l *Linear) RunFinished(sum results.Summary) {
	if l.finished {
		return
	}
	l.finished = true
	l.repaint()
	fmt.Fprintln(l.w)
	l.printSummary(sum)
}

// DumpFailures prints the per-failure detail blocks.
func (l *Linear) DumpFailures() {
	l.printFailures()
}

// Finish closes out the run when the stream ended without a run-finished
// event. Idempotent.
func (l *Linear) Finish() {
	if l.finished {
		return
	}
	sum := l.store.Totals()
	sum.Duration = time.Since(l.start).Seconds()
	l.RunFinished(sum)
	l.DumpFailures()
}

// HasFailures reports whether any failure was recorded.
func (l *Linear) HasFailures() bool {
	return len(l.store.Failures()) > 0
}

// repaint overwrites the current line with the bar and progress counter.
func (l *Linear) repaint() {
	c := l.store.Counters()
	right := l.st.fraction.Render(fmt.Sprintf("%d%% %d/%d", bar.Percentage(c.Index, c.Total), c.Index, c.Total))
	barWidth := l.width - term.VisualLen(right) - 3
	if barWidth < 10 {
		barWidth = 10
	}
	fmt.Fprint(l.w, "\r\x1b[K"+bar.Build(c.Index, c.Total, barWidth)+" "+right)
}
