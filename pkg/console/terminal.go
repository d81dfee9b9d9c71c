package console

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWindow returns how many instruction lines fit in the terminal
// attached to f, leaving reserved lines for the other panels. It returns 0
// (no limit) when f is not a terminal.
func TerminalWindow(f *os.File, reserved int) int {
	if !IsTerminal(f) {
		return 0
	}

	_, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}

	if window := height - reserved; window > 0 {
		return window
	}

	return 1
}
