package results

// maxBacktraceFrames bounds the stack capture on a failure record.
const maxBacktraceFrames = 10

// Store is the single source of truth for what the formatters render: one
// GroupState per group encountered, the run counters, and the failure and
// pending records in arrival order.
//
// Store itself performs no locking. The owning formatter serializes every
// access (its own event handlers and the animation driver's repaints)
// behind one mutex, which is also what keeps foreground and background
// terminal writes from interleaving.
type Store struct {
	groups   map[string]*GroupState
	active   string
	counters Counters
	failures []FailureRecord
	pending  []PendingRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		groups: make(map[string]*GroupState),
	}
}

// SetTotal fixes the run's total item count.
func (s *Store) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	s.counters.Total = total
}

// StartItem records that an item began executing in the given group,
// creating the group on first reference, and advances the run counter.
func (s *Store) StartItem(group, label string, loc Location) *GroupState {
	g, ok := s.groups[group]
	if !ok {
		g = &GroupState{ID: group, Status: StatusRunning}
		s.groups[group] = g
	}
	g.CurrentLabel = label
	g.CurrentLoc = loc
	s.active = group
	s.counters.Index++
	return g
}

// RecordPassed counts a pass for the group and clears its current item.
func (s *Store) RecordPassed(group string) {
	g, ok := s.groups[group]
	if !ok {
		return
	}
	g.Passed++
	g.CurrentLabel = ""
}

// RecordFailed counts a failure for the group, captures a FailureRecord
// from the currently executing item, and clears the current item.
func (s *Store) RecordFailed(group string, detail ErrorDetail) {
	g, ok := s.groups[group]
	if !ok {
		return
	}
	g.Failed++
	backtrace := detail.Backtrace
	if len(backtrace) > maxBacktraceFrames {
		backtrace = backtrace[:maxBacktraceFrames]
	}
	s.failures = append(s.failures, FailureRecord{
		Group:     group,
		Label:     g.CurrentLabel,
		Loc:       g.CurrentLoc,
		Type:      detail.Type,
		Message:   detail.Message,
		Backtrace: backtrace,
	})
	g.CurrentLabel = ""
}

// RecordPending counts a pending item for the group, captures a
// PendingRecord, and clears the current item.
func (s *Store) RecordPending(group string) {
	g, ok := s.groups[group]
	if !ok {
		return
	}
	g.Pending++
	s.pending = append(s.pending, PendingRecord{
		Group: group,
		Label: g.CurrentLabel,
		Loc:   g.CurrentLoc,
	})
	g.CurrentLabel = ""
}

// Finalize freezes the group's status and marks it rendered-final. It is
// idempotent: finalizing an already-finalized group returns nil so the
// caller emits no second line.
func (s *Store) Finalize(group string) *GroupState {
	g, ok := s.groups[group]
	if !ok || g.Finalized {
		return nil
	}
	g.Finalized = true
	g.Status = g.Derive()
	if s.active == group {
		s.active = ""
	}
	return g
}

// ActiveGroup returns the group currently receiving events: the most
// recently started group that has not been finalized.
func (s *Store) ActiveGroup() (*GroupState, bool) {
	if s.active == "" {
		return nil, false
	}
	g, ok := s.groups[s.active]
	if !ok || g.Finalized {
		return nil, false
	}
	return g, true
}

// Group returns the state for the given group identifier.
func (s *Store) Group(id string) (*GroupState, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// Counters returns the run-wide progress counters.
func (s *Store) Counters() Counters {
	return s.counters
}

// Failures returns the captured failure records in arrival order.
func (s *Store) Failures() []FailureRecord {
	return s.failures
}

// Pending returns the captured pending records in arrival order.
func (s *Store) Pending() []PendingRecord {
	return s.pending
}

// Totals derives a run summary from the recorded state, used when the
// stream ends without an explicit run-finished event.
func (s *Store) Totals() Summary {
	return Summary{
		Examples: s.counters.Index,
		Failures: len(s.failures),
		Pending:  len(s.pending),
	}
}
