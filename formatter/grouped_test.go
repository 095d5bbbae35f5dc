package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwade/glint/results"
	"github.com/kwade/glint/term"
)

// quietGrouped returns a grouped formatter whose animator effectively never
// ticks, so output comes only from the foreground event handlers.
func quietGrouped(buf *bytes.Buffer) *Grouped {
	return NewGrouped(buf, WithColor(false), WithWidth(80), WithTick(time.Hour))
}

func TestGroupedSinglePassingGroup(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(3)
	for i, label := range []string{"adds", "subtracts", "multiplies"} {
		g.ItemStarted("spec/calc_spec.rb", label, results.Location{File: "spec/calc_spec.rb", Line: 10 + i})
		g.ItemPassed("spec/calc_spec.rb")
	}
	g.RunFinished(results.Summary{Examples: 3, Duration: 1.5})
	g.DumpFailures()

	out := buf.String()
	assert.Contains(t, out, "✔ spec/calc_spec.rb")
	assert.Contains(t, out, "[100% 3/3]")
	assert.Contains(t, out, "3 examples, 3 passed")
	assert.Contains(t, out, "Finished in 2s")
	assert.NotContains(t, out, "Failures:")
	assert.NotContains(t, out, "Pending Examples")
	assert.False(t, g.HasFailures())
}

func TestGroupedFailureWinsGroupStatus(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(2)
	g.ItemStarted("spec/pump_spec.rb", "primes", results.Location{File: "spec/pump_spec.rb", Line: 4})
	g.ItemPassed("spec/pump_spec.rb")
	g.ItemStarted("spec/pump_spec.rb", "drains the well", results.Location{File: "spec/pump_spec.rb", Line: 9})
	g.ItemFailed("spec/pump_spec.rb", results.ErrorDetail{
		Type:      "RuntimeError",
		Message:   "well is dry",
		Backtrace: []string{"frame-1", "frame-2", "frame-3", "frame-4", "frame-5"},
	})
	g.RunFinished(results.Summary{Examples: 2, Failures: 1, Duration: 0.2})
	g.DumpFailures()

	out := buf.String()
	assert.Contains(t, out, "✗ spec/pump_spec.rb")
	assert.Contains(t, out, "2 examples, 1 failures, 1 passed")
	assert.Contains(t, out, "Failures:")
	assert.Contains(t, out, "1) drains the well")
	assert.Contains(t, out, "RuntimeError: well is dry")
	assert.Contains(t, out, "./spec/pump_spec.rb:9")
	// Only the first three stack frames are shown.
	assert.Contains(t, out, "frame-3")
	assert.NotContains(t, out, "frame-4")
	assert.True(t, g.HasFailures())
}

func TestGroupedPendingReport(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(2)
	g.ItemStarted("spec/wip_spec.rb", "will exist someday", results.Location{File: "spec/wip_spec.rb", Line: 7})
	g.ItemPending("spec/wip_spec.rb")
	g.ItemStarted("spec/wip_spec.rb", "works", results.Location{File: "spec/wip_spec.rb", Line: 12})
	g.ItemPassed("spec/wip_spec.rb")
	g.RunFinished(results.Summary{Examples: 2, Pending: 1, Duration: 0.1})
	g.DumpFailures()

	out := buf.String()
	assert.Contains(t, out, "⊘ spec/wip_spec.rb")
	assert.Contains(t, out, "2 examples, 1 pending, 1 passed")
	assert.Contains(t, out, "Pending Examples:")
	assert.Contains(t, out, "will exist someday")
	assert.Contains(t, out, "./spec/wip_spec.rb:7")
	assert.NotContains(t, out, "Failures:")
}

func TestGroupedTransitionFinalizesPreviousGroup(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(2)
	g.ItemStarted("spec/a_spec.rb", "one", results.Location{File: "spec/a_spec.rb", Line: 1})
	g.ItemPassed("spec/a_spec.rb")
	g.ItemStarted("spec/b_spec.rb", "two", results.Location{File: "spec/b_spec.rb", Line: 1})

	out := buf.String()
	finalized := strings.Index(out, "✔ spec/a_spec.rb")
	started := strings.Index(out, "spec/b_spec.rb")
	require.GreaterOrEqual(t, finalized, 0)
	require.GreaterOrEqual(t, started, 0)
	assert.Less(t, finalized, started, "group A must be finalized before any output for group B")

	// The finalized line is newline-terminated; the in-progress line is not.
	assert.Contains(t, out, "✔ spec/a_spec.rb")
	g.RunFinished(results.Summary{Examples: 2})
}

func TestGroupedRunFinishedIdempotent(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(1)
	g.ItemStarted("spec/a_spec.rb", "one", results.Location{File: "spec/a_spec.rb", Line: 1})
	g.ItemPassed("spec/a_spec.rb")
	g.RunFinished(results.Summary{Examples: 1})
	g.RunFinished(results.Summary{Examples: 1})
	g.Finish()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "✔ spec/a_spec.rb"), "no duplicate finalization lines")
	assert.Equal(t, 1, strings.Count(out, "1 examples"), "no duplicate summaries")
}

func TestGroupedFinishDerivesSummary(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(2)
	g.ItemStarted("spec/a_spec.rb", "one", results.Location{File: "spec/a_spec.rb", Line: 1})
	g.ItemFailed("spec/a_spec.rb", results.ErrorDetail{Type: "E", Message: "nope"})
	// Stream ends without a run-finished event.
	g.Finish()

	out := buf.String()
	assert.Contains(t, out, "1 examples, 1 failures")
	assert.Contains(t, out, "E: nope")
}

func TestGroupedMissingGroupGetsPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	g := quietGrouped(&buf)

	g.RunStarted(1)
	g.ItemStarted("", "orphan", results.Location{})
	g.ItemPassed("")
	g.RunFinished(results.Summary{Examples: 1})

	assert.Contains(t, buf.String(), "✔ (unknown)")
}

func TestGroupedAnimatesActiveGroup(t *testing.T) {
	buf := &syncBuffer{}
	g := NewGrouped(buf, WithColor(false), WithWidth(60), WithTick(5*time.Millisecond))

	g.RunStarted(1)
	g.ItemStarted("spec/slow_spec.rb", "crunches", results.Location{File: "spec/slow_spec.rb", Line: 3})
	time.Sleep(60 * time.Millisecond)

	out := buf.String()
	assert.Greater(t, strings.Count(out, "\r"), 1, "animator should repaint between events")
	assert.Contains(t, out, "spec/slow_spec.rb --> crunches")

	g.RunFinished(results.Summary{Examples: 1})
	n := buf.Len()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, buf.Len(), "no output may appear after RunFinished returns")
}

func TestGroupedTruncatesLongLabels(t *testing.T) {
	var buf bytes.Buffer
	g := NewGrouped(&buf, WithColor(false), WithWidth(40), WithTick(time.Hour))

	g.RunStarted(1)
	g.ItemStarted("spec/long_spec.rb", strings.Repeat("very long description ", 10),
		results.Location{File: "spec/long_spec.rb", Line: 1})

	// Every repainted line must fit the configured width.
	for _, line := range strings.Split(buf.String(), "\r") {
		line = strings.TrimSuffix(strings.TrimPrefix(line, "\x1b[K"), "\n")
		if line == "" {
			continue
		}
		assert.LessOrEqual(t, term.VisualLen(line), 40, "line %q", line)
	}
	g.RunFinished(results.Summary{Examples: 1})
}
