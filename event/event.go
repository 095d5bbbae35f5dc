package event

import (
	"encoding/json"
)

// Action values carried by a LifecycleEvent.
const (
	ActionRunStart  = "start"   // run began; Total holds the item count
	ActionItemStart = "item"    // an item started executing
	ActionPass      = "pass"    // the current item passed
	ActionFail      = "fail"    // the current item failed; Error holds detail
	ActionPending   = "pending" // the current item is pending
	ActionRunEnd    = "end"     // run finished; totals and Elapsed are set
)

// ErrorDetail describes the exception raised by a failed item.
type ErrorDetail struct {
	Type      string   `json:"Type"`
	Message   string   `json:"Message"`
	Backtrace []string `json:"Backtrace,omitempty"`
}

// LifecycleEvent represents a single event from the work runner's
// newline-delimited JSON stream.
type LifecycleEvent struct {
	Action   string       `json:"Action"`
	Group    string       `json:"Group,omitempty"`
	Label    string       `json:"Label,omitempty"`
	File     string       `json:"File,omitempty"`
	Line     int          `json:"Line,omitempty"`
	Total    int          `json:"Total,omitempty"`
	Examples int          `json:"Examples,omitempty"`
	Failures int          `json:"Failures,omitempty"`
	Pending  int          `json:"Pending,omitempty"`
	Elapsed  float64      `json:"Elapsed,omitempty"`
	Error    *ErrorDetail `json:"Error,omitempty"`
}

// ParseEvent parses a single line of JSON from the runner's event stream
func ParseEvent(line []byte) (LifecycleEvent, error) {
	var ev LifecycleEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return ev, err
	}
	return ev, nil
}
