// Package formatter renders live progress for a run of discrete work items
// organized into named groups. Two variants share one lifecycle surface:
// Grouped animates one line per group, Linear repaints a single progress
// bar.
package formatter

import (
	"github.com/kwade/glint/event"
	"github.com/kwade/glint/results"
)

// unknownGroup stands in for events that arrive without a group identifier.
const unknownGroup = "(unknown)"

// Formatter is the lifecycle callback surface consumed from the work
// runner. Calls arrive serially on one goroutine, in the order the runner
// issues them.
type Formatter interface {
	// RunStarted fixes the total item count and opens the display.
	RunStarted(total int)
	// ItemStarted reports that an item began executing in the given group.
	ItemStarted(group, label string, loc results.Location)
	// ItemPassed, ItemFailed, and ItemPending report the outcome of the
	// group's currently executing item.
	ItemPassed(group string)
	ItemFailed(group string, detail results.ErrorDetail)
	ItemPending(group string)
	// RunFinished closes out the display and prints the summary.
	RunFinished(sum results.Summary)
	// DumpFailures prints the per-failure detail blocks, if any.
	DumpFailures()
	// Finish closes out the run if no run-finished event ever arrived.
	// Idempotent.
	Finish()
	// HasFailures reports whether any failure was recorded.
	HasFailures() bool
}

// Dispatch routes a wire event to the matching lifecycle callback.
func Dispatch(f Formatter, ev event.LifecycleEvent) {
	switch ev.Action {
	case event.ActionRunStart:
		f.RunStarted(ev.Total)
	case event.ActionItemStart:
		f.ItemStarted(ev.Group, ev.Label, results.Location{File: ev.File, Line: ev.Line})
	case event.ActionPass:
		f.ItemPassed(ev.Group)
	case event.ActionFail:
		var detail results.ErrorDetail
		if ev.Error != nil {
			detail = results.ErrorDetail{
				Type:      ev.Error.Type,
				Message:   ev.Error.Message,
				Backtrace: ev.Error.Backtrace,
			}
		}
		f.ItemFailed(ev.Group, detail)
	case event.ActionPending:
		f.ItemPending(ev.Group)
	case event.ActionRunEnd:
		f.RunFinished(results.Summary{
			Examples: ev.Examples,
			Failures: ev.Failures,
			Pending:  ev.Pending,
			Duration: ev.Elapsed,
		})
		f.DumpFailures()
	}
}

func normalizeGroup(group string) string {
	if group == "" {
		return unknownGroup
	}
	return group
}
