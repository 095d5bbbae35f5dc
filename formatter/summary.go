package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kwade/glint/bar"
	"github.com/kwade/glint/results"
)

// maxBacktraceLines bounds the stack frames shown per failure block.
const maxBacktraceLines = 3

// reporter renders the end-of-run sections shared by both formatter
// variants: the aggregate counts line, the pending block, and the failure
// detail blocks.
type reporter struct {
	w     io.Writer
	st    styles
	store *results.Store
}

// printSummary writes the counts line, the duration, and the pending block.
func (r *reporter) printSummary(sum results.Summary) {
	fmt.Fprintln(r.w)

	passed := sum.Examples - sum.Failures - sum.Pending
	if passed < 0 {
		passed = 0
	}
	parts := []string{r.st.label.Render(fmt.Sprintf("%d examples", sum.Examples))}
	if sum.Failures > 0 {
		parts = append(parts, r.st.fail.Render(fmt.Sprintf("%d failures", sum.Failures)))
	}
	if sum.Pending > 0 {
		parts = append(parts, r.st.pend.Render(fmt.Sprintf("%d pending", sum.Pending)))
	}
	parts = append(parts, r.st.pass.Render(fmt.Sprintf("%d passed", passed)))
	fmt.Fprintln(r.w, strings.Join(parts, ", "))

	dur := time.Duration(sum.Duration * float64(time.Second))
	fmt.Fprintf(r.w, "Finished in %s\n", bar.FormatDuration(dur))

	if pending := r.store.Pending(); len(pending) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.st.pend.Render("Pending Examples:"))
		for _, p := range pending {
			fmt.Fprintf(r.w, "  %s\n", r.st.pend.Render(iconPending+" "+p.Label))
			fmt.Fprintf(r.w, "    %s\n", p.Loc)
		}
	}
}

// printFailures writes one detail block per captured failure, in arrival
// order. Nothing is written when the run had no failures.
func (r *reporter) printFailures() {
	failures := r.store.Failures()
	if len(failures) == 0 {
		return
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.st.fail.Render("Failures:"))
	for i, f := range failures {
		fmt.Fprintln(r.w)
		fmt.Fprintf(r.w, "  %s\n", r.st.fail.Render(fmt.Sprintf("%d) %s", i+1, f.Label)))
		fmt.Fprintf(r.w, "     %s\n", r.st.fail.Render(f.Type+": "+f.Message))
		frames := f.Backtrace
		if len(frames) > maxBacktraceLines {
			frames = frames[:maxBacktraceLines]
		}
		for _, frame := range frames {
			fmt.Fprintf(r.w, "       %s\n", r.st.fail.Render(frame))
		}
		fmt.Fprintf(r.w, "     %s\n", r.st.fail.Render(f.Loc.String()))
	}
}
