package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"lis/internal/git"
	"lis/internal/input"
	"lis/internal/theme"
	"lis/internal/tree"
)

// Session is the interaction state machine: one blocking event loop that
// owns the tree state for its whole lifetime. Every key event runs as
// mutate, rebuild, render, in that order, with no background work.
type Session struct {
	st    *tree.State
	sty   *theme.Styler
	keys  *input.Reader
	out   io.Writer
	log   *logrus.Logger
	width func() int
}

// NewSession wires a session over the given input stream and output writer.
// A nil logger discards diagnostics.
func NewSession(st *tree.State, in io.Reader, out io.Writer, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Session{
		st:    st,
		sty:   theme.NewStyler(out, st.Opts.UseANSI),
		keys:  input.NewReader(in),
		out:   out,
		log:   log,
		width: func() int { return input.Width(int(os.Stdout.Fd())) },
	}
}

// Run drives the session until the user quits or opens a file. The returned
// path is empty when no file was selected; a read failure is the only error
// path. The alternate screen, when enabled, is exited on every return.
func (s *Session) Run() (string, error) {
	if s.st.Opts.AltScreen {
		fmt.Fprint(s.out, theme.AltScreenOn)
		defer fmt.Fprint(s.out, theme.AltScreenOff)
	}

	s.log.WithFields(logrus.Fields{
		"root": s.st.Root,
		"sort": s.st.Sort.String(),
	}).Debug("session start")

	s.refreshGit()
	tree.Rebuild(s.st)
	s.resolveHighlight()
	s.render()

	for {
		ev, err := s.keys.Next()
		if err != nil {
			return "", fmt.Errorf("read key: %w", err)
		}

		s.st.Message = ""

		quit, selected := s.dispatch(ev)
		if quit {
			return selected, nil
		}

		s.render()
	}
}

// dispatch maps one key event to its action. The second return is the file
// the user opened with Enter, if any.
func (s *Session) dispatch(ev input.Event) (quit bool, selected string) {
	st := s.st

	switch ev.Key {
	case input.KeyUp, input.KeyCtrlP:
		s.moveCursor(-1)
	case input.KeyDown, input.KeyCtrlN:
		s.moveCursor(1)
	case input.KeyLeft:
		s.collapseOrParent()
	case input.KeyRight:
		s.expandCursor()
	case input.KeyEnter:
		e := st.CursorEntry()
		if e == nil {
			break
		}
		if e.Kind.IsDir() {
			s.expandCursor()
		} else {
			return true, e.Path
		}
	case input.KeyBackspace:
		s.rootToParent()
	case input.KeyEscape, input.KeyCtrlC:
		return true, ""
	case input.KeyRune:
		return s.dispatchRune(ev.Rune)
	}
	return false, ""
}

func (s *Session) dispatchRune(r rune) (quit bool, selected string) {
	st := s.st

	switch r {
	case 'q', 'Q':
		return true, ""
	case 'j', 'J':
		s.moveCursor(1)
	case 'k', 'K':
		s.moveCursor(-1)
	case 'g':
		st.Cursor = 0
	case 'G':
		if len(st.Visible) > 0 {
			st.Cursor = len(st.Visible) - 1
		}
	case 'h', 'H':
		s.collapseOrParent()
	case 'l', 'L':
		s.expandCursor()
	case '.':
		st.Opts.ShowHidden = !st.Opts.ShowHidden
		tree.Rebuild(st)
	case ' ':
		st.ToggleSelect()
		s.moveCursor(1)
	case 'a':
		st.SelectAll()
	case 'A':
		st.ClearSelection()
	case 'y':
		s.loadClipboard(false)
	case 'd':
		s.loadClipboard(true)
	case 'p':
		s.paste()
	case 'D':
		s.deleteSelection()
	case 's':
		st.Sort = st.Sort.Next()
		tree.Rebuild(st)
	case 'S':
		st.Opts.ShowSize = !st.Opts.ShowSize
	case 't':
		st.Opts.ShowTime = !st.Opts.ShowTime
	case 'o':
		s.openSystem()
	case 'Y':
		s.yankPath()
	case 'R':
		s.refreshGit()
		tree.Rebuild(st)
		st.Message = "Refreshed"
	case '-':
		s.rootToParent()
	case 'r':
		s.rename()
	case 'n':
		s.createNew(false)
	case 'N':
		s.createNew(true)
	case 'c':
		s.enterDirectory()
	}
	return false, ""
}

func (s *Session) moveCursor(delta int) {
	c := s.st.Cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= len(s.st.Visible) {
		c = len(s.st.Visible) - 1
	}
	if c < 0 {
		c = 0
	}
	s.st.Cursor = c
}

// collapseOrParent collapses an expanded non-root directory, relocating the
// cursor by path since indices shift; on anything else it jumps to the
// parent entry.
func (s *Session) collapseOrParent() {
	st := s.st
	e := st.CursorEntry()
	if e == nil {
		return
	}
	path := e.Path

	if e.Kind.IsDir() && e.Expanded && e.Depth != 0 {
		e.Expanded = false
		if e.Kind == tree.KindDir {
			e.Icon = theme.IconFolderClosed
		}
		tree.Rebuild(st)
		if i := tree.IndexOf(st, path); i >= 0 {
			st.Cursor = i
		}
		return
	}

	if e.Depth > 0 {
		if i := tree.IndexOf(st, filepath.Dir(path)); i >= 0 {
			st.Cursor = i
		}
	}
}

func (s *Session) expandCursor() {
	st := s.st
	e := st.CursorEntry()
	if e == nil || !e.Kind.IsDir() {
		return
	}
	path := e.Path

	e.Expanded = true
	if e.Kind == tree.KindDir {
		e.Icon = theme.IconFolderOpen
	}
	tree.Rebuild(st)
	if i := tree.IndexOf(st, path); i >= 0 {
		st.Cursor = i
	}
}

func (s *Session) rootToParent() {
	st := s.st
	parent := filepath.Dir(st.Root)
	if parent == st.Root {
		return
	}
	st.Root = parent
	st.Cursor = 0
	s.refreshGit()
	tree.Rebuild(st)
}

func (s *Session) enterDirectory() {
	st := s.st
	e := st.CursorEntry()
	if e == nil || !e.Kind.IsDir() {
		return
	}
	st.Root = e.Path
	st.Cursor = 0
	s.refreshGit()
	tree.Rebuild(st)
}

// refreshGit rebuilds the canonical-path status map wholesale. No
// repository means an empty map; a failing git invocation degrades the
// same way.
func (s *Session) refreshGit() {
	st := s.st
	st.GitRoot = git.FindRoot(st.Root)
	st.GitStatus = make(map[string]git.Kind)
	if st.GitRoot == "" {
		return
	}
	files, err := git.Status(context.Background(), st.GitRoot)
	if err != nil {
		s.log.WithError(err).Debug("git status failed")
		return
	}
	for rel, k := range files {
		st.GitStatus[tree.Canonical(filepath.Join(st.GitRoot, rel))] = k
	}
}

// resolveHighlight expands every ancestor of the startup highlight target,
// rebuilding after each so the target becomes visible, then parks the
// cursor on it.
func (s *Session) resolveHighlight() {
	st := s.st
	if st.HighlightTarget == "" {
		return
	}
	target := tree.Canonical(st.HighlightTarget)

	rel, err := filepath.Rel(st.Root, target)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}

	cur := st.Root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		cur = filepath.Join(cur, part)
		if tree.Canonical(cur) == target {
			break
		}
		info, err := os.Stat(cur)
		if err != nil || !info.IsDir() {
			continue
		}
		if i := tree.IndexOf(st, cur); i >= 0 {
			e := &st.Visible[i]
			if e.Kind.IsDir() && !e.Expanded {
				e.Expanded = true
				if e.Kind == tree.KindDir {
					e.Icon = theme.IconFolderOpen
				}
				tree.Rebuild(st)
			}
		}
	}

	if i := tree.IndexOf(st, target); i >= 0 {
		st.Cursor = i
	}
}

// readLine is the line-input sub-loop used by rename and create. Printable
// characters echo as typed, backspace erases the cell, Enter submits and
// Escape or Ctrl-C cancels with an empty result.
func (s *Session) readLine(prompt string) string {
	fmt.Fprint(s.out, prompt)
	var buf []byte
	for {
		ev, err := s.keys.Next()
		if err != nil {
			break
		}
		switch ev.Key {
		case input.KeyEnter:
			fmt.Fprint(s.out, "\r\n")
			return string(buf)
		case input.KeyEscape, input.KeyCtrlC:
			fmt.Fprint(s.out, "\r\n")
			return ""
		case input.KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Fprint(s.out, "\b \b")
			}
		case input.KeyRune:
			buf = append(buf, byte(ev.Rune))
			fmt.Fprintf(s.out, "%c", ev.Rune)
		}
	}
	return string(buf)
}

func (s *Session) render() {
	fmt.Fprint(s.out, renderFrame(s.st, s.sty, s.width()))
}
