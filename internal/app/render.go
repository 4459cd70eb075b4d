package app

import (
	"fmt"
	"strings"
	"time"

	"lis/internal/theme"
	"lis/internal/tree"
)

// renderFrame produces one full frame: screen clear (preceded by the
// background escape in alt-screen mode so cleared cells inherit it), the
// header block, then one line per visible entry. Lines end with CRLF since
// raw mode disables automatic carriage return.
func renderFrame(st *tree.State, sty *theme.Styler, width int) string {
	var b strings.Builder

	if st.Opts.AltScreen && st.Opts.BGColor >= 0 {
		b.WriteString(theme.Background(st.Opts.BGColor))
	}
	b.WriteString(theme.ClearScreen)

	if st.Opts.ShowHeader {
		b.WriteString("lis - interactive tree file browser\r\n")
		fmt.Fprintf(&b, "root: %s  [sort: %s]", st.Root, st.Sort)
		if len(st.Selected) > 0 {
			fmt.Fprintf(&b, "  [%d selected]", len(st.Selected))
		}
		if n := len(st.Clipboard.Paths); n > 0 {
			mode := "copied"
			if st.Clipboard.Cut {
				mode = "cut"
			}
			fmt.Fprintf(&b, "  [%d %s]", n, mode)
		}
		b.WriteString("\r\n")
		b.WriteString("j/k:move l/h/enter:open/close space:mark .:hidden s:sort c:cd\r\n")
		b.WriteString("y:copy d:cut p:paste D:delete r:rename n:file N:dir o:open q:quit\r\n")
		if st.Message != "" {
			b.WriteString(renderMessage(st, sty))
			b.WriteString("\r\n")
		}
		b.WriteString("\r\n")
	} else if st.Message != "" {
		b.WriteString(renderMessage(st, sty))
		b.WriteString("\r\n")
	}

	for i := range st.Visible {
		b.WriteString(renderLine(st, sty, &st.Visible[i], i == st.Cursor, width))
	}

	return b.String()
}

func renderMessage(st *tree.State, sty *theme.Styler) string {
	msg := sty.Paint(st.Message, theme.ColorMessage, false)
	if st.Opts.AltScreen && st.Opts.BGColor >= 0 {
		msg = theme.ApplyPersistentBG(msg, st.Opts.BGColor)
	}
	return msg
}

// renderLine assembles one entry line column by column: cursor marker, mark,
// indentation connectors, git glyph, icon, name, then the optional size and
// time columns.
func renderLine(st *tree.State, sty *theme.Styler, e *tree.Entry, isCursor bool, width int) string {
	var line strings.Builder

	if isCursor {
		line.WriteString(sty.Paint("> ", theme.ColorCursor, true))
	} else {
		line.WriteString("  ")
	}

	if st.Opts.ShowMarks {
		switch {
		case e.Selected:
			line.WriteString(sty.Paint(theme.MarkSelected, theme.ColorSelected, false))
		case e.ReadOnly:
			line.WriteString(sty.Paint(theme.MarkReadOnly, theme.ColorReadOnly, false))
		default:
			line.WriteString(" ")
		}
		line.WriteString(" ")
	}

	if e.Depth > 0 {
		// Deep trees can be capped: connectors are truncated from the
		// front so the entry's own corner glyph always stays visible.
		start := 0
		if st.Opts.MaxDepth >= 0 && len(e.AncestorHasMore) > st.Opts.MaxDepth {
			start = len(e.AncestorHasMore) - st.Opts.MaxDepth
		}
		for _, more := range e.AncestorHasMore[start:] {
			if more {
				line.WriteString(theme.IndentPipe)
			} else {
				line.WriteString(theme.IndentSpace)
			}
		}
		if e.IsLast {
			line.WriteString(theme.IndentLast)
		} else {
			line.WriteString(theme.IndentBranch)
		}
	}

	if st.Opts.ShowGit {
		line.WriteString(sty.PaintGit(e.Git))
		line.WriteString(" ")
	}

	iconColor := theme.ColorDirIcon
	if !e.Kind.IsDir() {
		iconColor = theme.FileIconColor(e.Name)
	}
	line.WriteString(sty.Paint(e.Icon, iconColor, false))
	line.WriteString(" ")

	nameColor := theme.ColorFileName
	switch {
	case e.Kind.IsDir():
		nameColor = theme.ColorDirName
	case e.Selected:
		nameColor = theme.ColorSelected
	}
	line.WriteString(sty.Paint(e.Name, nameColor, isCursor))
	if e.Kind.IsDir() {
		line.WriteString("/")
	}

	if st.Opts.ShowSize && !e.Kind.IsDir() {
		line.WriteString("  ")
		line.WriteString(sty.Paint(formatSize(e.Size), theme.ColorMeta, false))
	}

	if st.Opts.ShowTime && !e.ModTime.IsZero() {
		line.WriteString("  ")
		line.WriteString(sty.Paint(formatTime(e.ModTime), theme.ColorMeta, false))
	}

	lineBG := -1
	switch {
	case isCursor && st.Opts.AltScreen && st.Opts.SelBGColor >= 0:
		lineBG = st.Opts.SelBGColor
	case st.Opts.AltScreen && st.Opts.BGColor >= 0:
		lineBG = st.Opts.BGColor
	}

	text := line.String()
	if lineBG < 0 {
		return text + "\r\n"
	}

	styled := theme.ApplyPersistentBG(text, lineBG)
	pad := width - theme.VisibleWidth(text)
	if pad < 0 {
		pad = 0
	}
	out := styled + strings.Repeat(" ", pad) + theme.Reset
	if st.Opts.BGColor >= 0 {
		// Back to the ambient terminal background for whatever follows.
		out += theme.Background(st.Opts.BGColor)
	}
	return out + "\r\n"
}

// formatSize renders a byte count with binary prefixes, one decimal place
// above the base unit.
func formatSize(bytes int64) string {
	units := [...]string{"B", "K", "M", "G", "T"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d%s", bytes, units[0])
	}
	return fmt.Sprintf("%.1f%s", size, units[unit])
}

// formatTime is locale-independent: Go's reference layout always renders
// English month abbreviations.
func formatTime(t time.Time) string {
	return t.Format("Jan 02 15:04")
}
