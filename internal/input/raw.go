package input

import (
	"golang.org/x/term"
)

// RawMode is the scoped raw-terminal acquisition: key events are only
// decodable between Enter and Restore, and Restore must run on every exit
// path or the shell is left without echo and line editing.
type RawMode struct {
	fd   int
	prev *term.State
}

// EnterRaw switches the terminal on fd into raw mode.
func EnterRaw(fd int) (*RawMode, error) {
	prev, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawMode{fd: fd, prev: prev}, nil
}

// Restore puts the terminal back into its previous mode. Safe to call more
// than once.
func (m *RawMode) Restore() error {
	if m == nil || m.prev == nil {
		return nil
	}
	err := term.Restore(m.fd, m.prev)
	m.prev = nil
	return err
}

// Width returns the terminal column count for fd, defaulting to 80 when the
// size cannot be queried (pipes, tests).
func Width(fd int) int {
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
