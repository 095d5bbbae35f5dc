package bar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kwade/glint/term"
)

func TestLoaderUpdateRepaintsInPlace(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(&buf, 20, WithBarWidth(10))

	l.Update(10, "halfway")
	out := term.Strip(buf.String())
	assert.True(t, strings.HasPrefix(out, "\r"))
	assert.Contains(t, out, "[====>     ]")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "10/20")
	assert.Contains(t, out, "halfway")

	l.Increment()
	out = term.Strip(buf.String())
	assert.Contains(t, out, "55%")
	assert.Contains(t, out, "11/20")
	assert.Equal(t, 55, l.Percentage())
}

func TestLoaderFinishEmitsSingleNewline(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(&buf, 4, WithBarWidth(8))

	l.Finish("done")
	l.Finish()

	out := term.Strip(buf.String())
	assert.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "4/4")
	assert.Contains(t, out, "done")
}

func TestLoaderUpdateClamps(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(&buf, 5)

	l.Update(99)
	assert.Equal(t, 100, l.Percentage())
	l.Update(-3)
	assert.Equal(t, 0, l.Percentage())
}

func TestLoaderEstimatedTimeRemaining(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoader(&buf, 100)

	// No progress yet: no estimate.
	_, ok := l.EstimatedTimeRemaining()
	assert.False(t, ok)

	l.current = 50
	l.start = time.Now().Add(-10 * time.Second)
	eta, ok := l.EstimatedTimeRemaining()
	require.True(t, ok)
	assert.InDelta(t, 10, eta.Seconds(), 1.0)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"negative", -5 * time.Second, "0s"},
		{"seconds", 45 * time.Second, "45s"},
		{"just under a minute", 59*time.Second + 400*time.Millisecond, "59s"},
		{"one minute", 60 * time.Second, "1m"},
		{"rounds minutes", 90 * time.Second, "2m"},
		{"just under an hour", 3599 * time.Second, "60m"},
		{"one hour", 3600 * time.Second, "1h"},
		{"rounds hours", 5400 * time.Second, "2h"},
		{"many hours", 7200 * time.Second, "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}
