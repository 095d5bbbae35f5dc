package results

import (
	"fmt"
)

// Status is the displayed state of a group.
type Status string

const (
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// Location is a source position attached to an item.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return fmt.Sprintf("./%s:%d", l.File, l.Line)
}

// ErrorDetail describes the exception captured from a failed item.
type ErrorDetail struct {
	Type      string
	Message   string
	Backtrace []string
}

// GroupState aggregates item results for one group (typically one source
// file). It is created on the group's first event, mutated by every
// subsequent event, and frozen once finalized.
type GroupState struct {
	ID      string
	Passed  int
	Failed  int
	Pending int

	// CurrentLabel is the description of the item presently executing in
	// this group, empty between items.
	CurrentLabel string
	CurrentLoc   Location

	Finalized bool
	Status    Status
}

// Derive computes the group's display status from its counters. Any failure
// wins; otherwise any pending item marks the group pending.
func (g *GroupState) Derive() Status {
	switch {
	case g.Failed > 0:
		return StatusFailed
	case g.Pending > 0:
		return StatusPending
	default:
		return StatusPassed
	}
}

// Counters tracks run-wide progress. Index is the 1-based count of items
// started so far; Total is fixed at run start.
type Counters struct {
	Index int
	Total int
}

// FailureRecord is captured when an item fails, in arrival order, and is
// never mutated afterwards.
type FailureRecord struct {
	Group     string
	Label     string
	Loc       Location
	Type      string
	Message   string
	Backtrace []string
}

// PendingRecord is captured when an item is marked pending.
type PendingRecord struct {
	Group string
	Label string
	Loc   Location
}

// Summary holds the end-of-run totals reported by the work runner.
type Summary struct {
	Examples int
	Failures int
	Pending  int
	Duration float64 // seconds
}
