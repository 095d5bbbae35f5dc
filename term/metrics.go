// Package term measures the output terminal and lays out rendered lines.
package term

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	xterm "golang.org/x/term"
)

// DefaultWidth is used whenever the output is not an interactive terminal
// or its size cannot be determined.
const DefaultWidth = 120

// Width returns the column count of w. It only queries the terminal when w
// is a real interactive TTY; any failure degrades to DefaultWidth and is
// never surfaced to the caller.
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return DefaultWidth
	}
	cols, _, err := xterm.GetSize(int(fd))
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}
