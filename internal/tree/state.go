package tree

import (
	"path/filepath"
	"sort"

	"lis/internal/config"
	"lis/internal/git"
)

// Clipboard holds paths staged for paste. Cut pastes move, copy pastes
// duplicate.
type Clipboard struct {
	Paths []string
	Cut   bool
}

// State is the whole interactive session: the browser owns exactly one and
// mutates it in place for every key event. Visible is rebuilt wholesale on
// any structural change; Selected, Clipboard and GitStatus survive rebuilds
// because they are keyed by canonical path rather than index.
type State struct {
	Root    string
	Visible []Entry
	Cursor  int

	Opts *config.Options
	Sort SortMode

	Selected  map[string]struct{}
	Clipboard Clipboard

	GitRoot   string
	GitStatus map[string]git.Kind

	Message string

	// HighlightTarget is the optional startup path whose ancestors get
	// expanded so the cursor can land on it.
	HighlightTarget string
}

// NewState builds a session rooted at root with the given options.
func NewState(root string, opts *config.Options) *State {
	return &State{
		Root:      root,
		Opts:      opts,
		Sort:      SortModeFromName(opts.Sort),
		Selected:  make(map[string]struct{}),
		GitStatus: make(map[string]git.Kind),
	}
}

// Canonical normalizes a path into the stable identity used for the
// selection set, clipboard, git lookups and cursor relocation. Symlinks are
// resolved when the path exists; otherwise the cleaned absolute path is
// used so keys stay comparable for not-yet-created files.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}

// CursorEntry returns the entry under the cursor, or nil when the visible
// list is empty.
func (s *State) CursorEntry() *Entry {
	if s.Cursor < 0 || s.Cursor >= len(s.Visible) {
		return nil
	}
	return &s.Visible[s.Cursor]
}

// IsSelected reports selection membership by canonical path.
func (s *State) IsSelected(path string) bool {
	_, ok := s.Selected[Canonical(path)]
	return ok
}

// ToggleSelect flips selection of the cursor entry.
func (s *State) ToggleSelect() {
	e := s.CursorEntry()
	if e == nil {
		return
	}
	canon := Canonical(e.Path)
	if _, ok := s.Selected[canon]; ok {
		delete(s.Selected, canon)
		e.Selected = false
	} else {
		s.Selected[canon] = struct{}{}
		e.Selected = true
	}
}

// SelectAll marks every visible entry.
func (s *State) SelectAll() {
	for i := range s.Visible {
		s.Selected[Canonical(s.Visible[i].Path)] = struct{}{}
		s.Visible[i].Selected = true
	}
}

// ClearSelection empties the selection set.
func (s *State) ClearSelection() {
	s.Selected = make(map[string]struct{})
	for i := range s.Visible {
		s.Visible[i].Selected = false
	}
}

// SelectionOrCursor returns the selected paths, or the cursor entry's path
// when nothing is selected. The clipboard and delete both operate on this.
func (s *State) SelectionOrCursor() []string {
	if len(s.Selected) == 0 {
		if e := s.CursorEntry(); e != nil {
			return []string{e.Path}
		}
		return nil
	}
	paths := make([]string, 0, len(s.Selected))
	for p := range s.Selected {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
