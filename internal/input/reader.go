package input

import (
	"bufio"
	"io"
)

// Key identifies a decoded key event.
type Key uint8

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyCtrlC
	KeyCtrlN
	KeyCtrlP
)

// Event is one discrete key event. Rune is set only for KeyRune.
type Event struct {
	Key  Key
	Rune rune
}

// Reader decodes raw terminal bytes into key events. It expects the
// terminal to be in raw mode so escape sequences arrive as a single burst.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps an input stream, normally os.Stdin.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next blocks for the next key event. End of input surfaces as io.EOF.
func (r *Reader) Next() (Event, error) {
	for {
		b, err := r.r.ReadByte()
		if err != nil {
			return Event{}, err
		}

		switch b {
		case 0x03:
			return Event{Key: KeyCtrlC}, nil
		case 0x0e:
			return Event{Key: KeyCtrlN}, nil
		case 0x10:
			return Event{Key: KeyCtrlP}, nil
		case '\r', '\n':
			return Event{Key: KeyEnter}, nil
		case 0x7f, 0x08:
			return Event{Key: KeyBackspace}, nil
		case 0x1b:
			return r.readEscape()
		}

		if b >= 0x20 && b < 0x7f {
			return Event{Key: KeyRune, Rune: rune(b)}, nil
		}
		// Unhandled control or multi-byte input: drop and keep reading.
	}
}

// readEscape distinguishes a lone Escape press from a CSI sequence. In raw
// mode (VMIN=1, VTIME=0) a sequence's remaining bytes are already buffered
// when the introducer is read; an empty buffer means the key was Escape.
func (r *Reader) readEscape() (Event, error) {
	if r.r.Buffered() == 0 {
		return Event{Key: KeyEscape}, nil
	}
	b, err := r.r.ReadByte()
	if err != nil {
		return Event{Key: KeyEscape}, nil
	}
	if b != '[' {
		return Event{Key: KeyEscape}, nil
	}
	final, err := r.r.ReadByte()
	if err != nil {
		return Event{Key: KeyEscape}, nil
	}
	switch final {
	case 'A':
		return Event{Key: KeyUp}, nil
	case 'B':
		return Event{Key: KeyDown}, nil
	case 'C':
		return Event{Key: KeyRight}, nil
	case 'D':
		return Event{Key: KeyLeft}, nil
	}
	return Event{Key: KeyEscape}, nil
}
