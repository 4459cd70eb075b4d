package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/atotto/clipboard"
	cp "github.com/otiai10/copy"

	"lis/internal/tree"
)

// loadClipboard stages the current selection, or the cursor entry when
// nothing is selected, for a later paste.
func (s *Session) loadClipboard(cut bool) {
	st := s.st
	paths := st.SelectionOrCursor()
	st.Clipboard = tree.Clipboard{Paths: paths, Cut: cut}

	verb := "copied"
	if cut {
		verb = "cut"
	}
	st.Message = fmt.Sprintf("%d file(s) %s", len(paths), verb)
}

// paste lands clipboard items in the cursor directory (or the cursor
// entry's parent). Copy duplicates recursively, cut moves. A failing item
// surfaces as the message but never aborts the rest of the batch; a cut
// clears the clipboard and selection once all items were attempted.
func (s *Session) paste() {
	st := s.st
	if len(st.Clipboard.Paths) == 0 {
		st.Message = "Nothing to paste"
		return
	}

	destDir := st.Root
	if e := st.CursorEntry(); e != nil {
		if e.Kind.IsDir() {
			destDir = e.Path
		} else {
			destDir = filepath.Dir(e.Path)
		}
	}

	success := 0
	for _, src := range st.Clipboard.Paths {
		dest := filepath.Join(destDir, filepath.Base(src))
		var err error
		if st.Clipboard.Cut {
			err = os.Rename(src, dest)
		} else {
			err = cp.Copy(src, dest)
		}
		if err != nil {
			st.Message = "Error: " + err.Error()
			s.log.WithError(err).WithField("src", src).Warn("paste item failed")
			continue
		}
		success++
	}

	if st.Clipboard.Cut {
		st.Clipboard = tree.Clipboard{}
		st.ClearSelection()
	}

	st.Message = fmt.Sprintf("%d file(s) pasted", success)
	s.refreshGit()
	tree.Rebuild(st)
}

// deleteSelection recursively removes the selection, or the cursor entry.
func (s *Session) deleteSelection() {
	st := s.st
	paths := st.SelectionOrCursor()
	if len(paths) == 0 {
		return
	}

	success := 0
	for _, p := range paths {
		if err := os.RemoveAll(p); err != nil {
			st.Message = "Error: " + err.Error()
			s.log.WithError(err).WithField("path", p).Warn("delete failed")
			continue
		}
		success++
	}

	st.ClearSelection()
	st.Message = fmt.Sprintf("%d file(s) deleted", success)
	s.refreshGit()
	tree.Rebuild(st)
}

// rename prompts for a new name for the cursor entry. The synthetic root
// entry is refused outright, before anything touches the disk.
func (s *Session) rename() {
	st := s.st
	e := st.CursorEntry()
	if e == nil {
		return
	}
	if e.Depth == 0 {
		st.Message = "Cannot rename root"
		return
	}
	oldPath := e.Path

	newName := s.readLine("Rename to: ")
	if newName == "" {
		st.Message = "Rename cancelled"
		return
	}

	newPath := filepath.Join(filepath.Dir(oldPath), newName)
	if err := os.Rename(oldPath, newPath); err != nil {
		st.Message = "Error: " + err.Error()
		return
	}

	st.Message = "Renamed to: " + newName
	s.refreshGit()
	tree.Rebuild(st)
}

// createNew prompts for a name and creates an empty file or a directory
// tree under the cursor directory (or the cursor entry's parent).
func (s *Session) createNew(isDir bool) {
	st := s.st

	parentDir := st.Root
	if e := st.CursorEntry(); e != nil {
		if e.Kind.IsDir() {
			parentDir = e.Path
		} else {
			parentDir = filepath.Dir(e.Path)
		}
	}

	prompt := "New file: "
	if isDir {
		prompt = "New directory: "
	}
	name := s.readLine(prompt)
	if name == "" {
		st.Message = "Create cancelled"
		return
	}

	newPath := filepath.Join(parentDir, name)
	if isDir {
		if err := os.MkdirAll(newPath, 0o755); err != nil {
			st.Message = "Error: " + err.Error()
			return
		}
		st.Message = "Created directory: " + name
	} else {
		f, err := os.Create(newPath)
		if err != nil {
			st.Message = "Error: " + err.Error()
			return
		}
		f.Close()
		st.Message = "Created file: " + name
	}

	s.refreshGit()
	tree.Rebuild(st)
}

// openSystem hands the cursor entry to the OS opener, fire-and-forget.
func (s *Session) openSystem() {
	st := s.st
	e := st.CursorEntry()
	if e == nil {
		return
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", e.Path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", e.Path)
	default:
		cmd = exec.Command("xdg-open", e.Path)
	}
	if err := cmd.Start(); err != nil {
		st.Message = "Error: " + err.Error()
		return
	}

	st.Message = "Opened: " + e.Path
}

// yankPath copies the cursor entry's path to the system clipboard.
func (s *Session) yankPath() {
	st := s.st
	e := st.CursorEntry()
	if e == nil {
		return
	}
	if err := clipboard.WriteAll(e.Path); err != nil {
		st.Message = "Error: " + err.Error()
		return
	}
	st.Message = "Yanked: " + e.Path
}
