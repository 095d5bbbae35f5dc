package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/kwade/glint/bar"
	"github.com/kwade/glint/results"
	"github.com/kwade/glint/term"
)

// minPad is the smallest gap kept between the left and right parts of a
// rendered line.
const minPad = 1

// Grouped is the animated formatter: one line per group, overwritten in
// place while the group runs and terminated with a status icon when the
// group transitions or the run ends.
//
// One mutex guards both the store and the output stream. Event handlers
// and the animator's repaints each take it for the duration of their work,
// so exactly one of them writes to the terminal at any instant.
type Grouped struct {
	mu sync.Mutex
	reporter

	width    int
	tick     time.Duration
	sp       spinner.Spinner
	anim     *animator
	frame    string
	start    time.Time
	finished bool
}

// GroupedOption configures a Grouped formatter.
type GroupedOption func(*Grouped)

// WithWidth overrides the detected terminal width.
func WithWidth(w int) GroupedOption {
	return func(g *Grouped) {
		if w > 0 {
			g.width = w
		}
	}
}

// WithTick overrides the animation repaint interval.
func WithTick(d time.Duration) GroupedOption {
	return func(g *Grouped) {
		if d > 0 {
			g.tick = d
		}
	}
}

// WithSpinner selects the spinner frame sequence.
func WithSpinner(sp spinner.Spinner) GroupedOption {
	return func(g *Grouped) {
		g.sp = sp
	}
}

// WithColor disables styling when false.
func WithColor(enabled bool) GroupedOption {
	return func(g *Grouped) {
		if !enabled {
			g.st = plainStyles()
		}
	}
}

// NewGrouped creates an animated grouped formatter writing to w.
func NewGrouped(w io.Writer, opts ...GroupedOption) *Grouped {
	g := &Grouped{
		reporter: reporter{
			w:     w,
			st:    newStyles(),
			store: results.NewStore(),
		},
		width: term.Width(w),
		tick:  defaultTick,
		sp:    spinner.MiniDot,
		start: time.Now(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.anim = newAnimator(g.tick, g.sp, g.repaintTick)
	if len(g.sp.Frames) > 0 {
		g.frame = g.sp.Frames[0]
	}
	return g
}

// RunStarted fixes the total and emits the leading blank line.
func (g *Grouped) RunStarted(total int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.SetTotal(total)
	fmt.Fprintln(g.w)
}

// ItemStarted finalizes the previously active group if the item belongs to
// a different one, records the new item, and starts the animator if idle.
func (g *Grouped) ItemStarted(group, label string, loc results.Location) {
	group = normalizeGroup(group)

	g.mu.Lock()
	defer g.mu.Unlock()
	if active, ok := g.store.ActiveGroup(); ok && active.ID != group {
		g.finalizeLocked(active.ID)
	}
	gs := g.store.StartItem(group, label, loc)
	g.paintLocked(gs, g.frame)
	g.anim.Start()
}

// ItemPassed records a pass for the group's current item.
func (g *Grouped) ItemPassed(group string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	group = normalizeGroup(group)
	g.store.RecordPassed(group)
	g.repaintActiveLocked()
}

// ItemFailed records a failure and captures its detail for the final dump.
func (g *Grouped) ItemFailed(group string, detail results.ErrorDetail) {
	g.mu.Lock()
	defer g.mu.Unlock()
	group = normalizeGroup(group)
	g.store.RecordFailed(group, detail)
	g.repaintActiveLocked()
}

// ItemPending records a pending item.
func (g *Grouped) ItemPending(group string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	group = normalizeGroup(group)
	g.store.RecordPending(group)
	g.repaintActiveLocked()
}

// RunFinished finalizes the last active group, joins the animator, and
// prints the summary. Repeated calls are no-ops.
func (g *Grouped) RunFinished(sum results.Summary) {
	g.mu.Lock()
	if g.finished {
		g.mu.Unlock()
		return
	}
	g.finished = true
	if active, ok := g.store.ActiveGroup(); ok {
		g.finalizeLocked(active.ID)
	}
	g.mu.Unlock()

	// Join the animator outside the lock: an in-flight tick needs the lock
	// to exit its repaint.
	g.anim.Stop()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.printSummary(sum)
}

// DumpFailures prints the per-failure detail blocks.
func (g *Grouped) DumpFailures() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.printFailures()
}

// Finish closes out the run when the event stream ended without a
// run-finished event, deriving the totals from the store.
func (g *Grouped) Finish() {
	g.mu.Lock()
	if g.finished {
		g.mu.Unlock()
		return
	}
	sum := g.store.Totals()
	sum.Duration = time.Since(g.start).Seconds()
	g.mu.Unlock()

	g.RunFinished(sum)
	g.DumpFailures()
}

// HasFailures reports whether any failure was recorded.
func (g *Grouped) HasFailures() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.store.Failures()) > 0
}

// repaintTick is the animator callback: repaint the active group's line
// with the next spinner frame. Ticks with no active group paint nothing
// and do not advance the frame.
func (g *Grouped) repaintTick(frame string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.finished {
		return false
	}
	gs, ok := g.store.ActiveGroup()
	if !ok {
		return false
	}
	g.frame = frame
	g.paintLocked(gs, frame)
	return true
}

// repaintActiveLocked refreshes the in-progress line after a foreground
// state change, using the current spinner frame.
func (g *Grouped) repaintActiveLocked() {
	if gs, ok := g.store.ActiveGroup(); ok {
		g.paintLocked(gs, g.frame)
	}
}

// paintLocked overwrites the current line with the group's in-progress
// state. Callers hold the lock.
func (g *Grouped) paintLocked(gs *results.GroupState, frame string) {
	right := g.st.fraction.Render(g.fractionLocked())
	left := frame + " " + g.st.group.Render(gs.ID)
	if gs.CurrentLabel != "" {
		left += " --> " + g.st.label.Render(gs.CurrentLabel)
	}
	left = term.EnsureReset(term.Truncate(left, g.width-term.VisualLen(right)-minPad))
	fmt.Fprint(g.w, "\r\x1b[K"+term.Justify(left, right, g.width, minPad))
}

// finalizeLocked renders a group's terminated line. A second finalize of
// the same group writes nothing.
func (g *Grouped) finalizeLocked(group string) {
	gs := g.store.Finalize(group)
	if gs == nil {
		return
	}
	icon, style := g.st.forStatus(gs.Status)
	left := style.Render(icon + " " + gs.ID)
	right := g.st.fraction.Render(g.fractionLocked())
	fmt.Fprint(g.w, "\r\x1b[K"+term.Justify(left, right, g.width, minPad)+"\n")
}

// fractionLocked renders the run-wide progress fraction "[p% i/n]".
func (g *Grouped) fractionLocked() string {
	c := g.store.Counters()
	return fmt.Sprintf("[%d%% %d/%d]", bar.Percentage(c.Index, c.Total), c.Index, c.Total)
}
