package formatter

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// defaultTick is the repaint interval while a group is running.
const defaultTick = 80 * time.Millisecond

// animator periodically repaints the active group's in-progress line while
// a run is underway. It never originates state changes; each tick hands the
// next spinner frame to the owning formatter's repaint callback, which
// takes the shared lock before touching the store or the output stream.
// The callback reports whether it painted, and the frame only advances on
// ticks that did.
type animator struct {
	interval time.Duration
	frames   []string
	repaint  func(frame string) bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func newAnimator(interval time.Duration, sp spinner.Spinner, repaint func(string) bool) *animator {
	if interval <= 0 {
		interval = defaultTick
	}
	frames := sp.Frames
	if len(frames) == 0 {
		frames = spinner.MiniDot.Frames
	}
	return &animator{
		interval: interval,
		frames:   frames,
		repaint:  repaint,
	}
}

// Start launches the tick loop. Starting an already-running animator is a
// no-op, so there is never more than one loop.
func (a *animator) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop(a.stop, a.done)
}

func (a *animator) loop(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	i := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if a.repaint(a.frames[i%len(a.frames)]) {
				i++
			}
		}
	}
}

// Stop halts the loop and blocks until it has observably exited, so no
// repaint can race with summary output. Callers must not hold the
// formatter lock here: an in-flight tick may be waiting on it.
func (a *animator) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	stop, done := a.stop, a.done
	a.running = false
	a.mu.Unlock()

	close(stop)
	<-done
}
