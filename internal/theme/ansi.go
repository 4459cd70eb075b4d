package theme

import (
	"fmt"
	"strings"
)

// Raw escape sequences the render pipeline manages itself. Foreground
// styling always goes through Styler; only screen and background control
// is emitted directly.
const (
	Reset        = "\x1b[0m"
	ClearScreen  = "\x1b[2J\x1b[H"
	AltScreenOn  = "\x1b[?1049h"
	AltScreenOff = "\x1b[?1049l"
)

// Background returns the 256-color background escape for color (0-255).
func Background(color int) string {
	return fmt.Sprintf("\x1b[48;5;%dm", color)
}

// VisibleWidth counts the printable codepoints of s, skipping ANSI escape
// sequences (ESC through the terminating 'm') and UTF-8 continuation bytes.
// Padding math must use this, not len, once styling inflates byte length.
func VisibleWidth(s string) int {
	width := 0
	inEscape := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 0x1b:
			inEscape = true
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c&0xC0 != 0x80:
			width++
		}
	}
	return width
}

// ApplyPersistentBG prefixes s with the background escape for color and
// re-asserts it after every embedded reset, so a reset anywhere in the line
// cannot drop the background for the remainder. A negative color returns s
// unchanged.
func ApplyPersistentBG(s string, color int) string {
	if color < 0 {
		return s
	}
	bg := Background(color)
	return bg + strings.ReplaceAll(s, Reset, Reset+bg)
}
