package tree

import (
	"path/filepath"
	"slices"

	"lis/internal/theme"
)

// Rebuild recomputes the visible list from scratch: directory contents can
// change underneath the program, so expansion state is remembered by
// canonical path and the whole tree is re-derived from disk rather than
// patched in place. The cursor is clamped afterwards.
func Rebuild(s *State) {
	expanded := make(map[string]struct{})
	for i := range s.Visible {
		e := &s.Visible[i]
		if e.Kind.IsDir() && e.Expanded {
			expanded[Canonical(e.Path)] = struct{}{}
		}
	}

	rootName := filepath.Base(s.Root)
	if rootName == "" {
		rootName = s.Root
	}
	s.Visible = []Entry{{
		Name:     rootName,
		Path:     s.Root,
		Kind:     KindDir,
		Depth:    0,
		IsLast:   true,
		Expanded: true,
		Icon:     theme.IconFolderOpen,
		Selected: s.IsSelected(s.Root),
	}}

	// The visible list doubles as the work queue: children are inserted
	// right after their parent, so an expanded directory's subtree is
	// fully processed before a later sibling.
	for i := 0; i < len(s.Visible); i++ {
		parent := s.Visible[i]
		if !parent.Kind.IsDir() || !parent.Expanded {
			continue
		}

		children, err := ListDir(parent.Path, parent.Depth+1, s)
		if err != nil {
			continue
		}

		for idx := range children {
			c := &children[idx]
			c.IsLast = idx == len(children)-1
			c.AncestorHasMore = slices.Clone(parent.AncestorHasMore)
			if parent.Depth > 0 {
				c.AncestorHasMore = append(c.AncestorHasMore, !parent.IsLast)
			}
			if c.Kind.IsDir() {
				_, c.Expanded = expanded[Canonical(c.Path)]
				if c.Kind == KindDir {
					if c.Expanded {
						c.Icon = theme.IconFolderOpen
					} else {
						c.Icon = theme.IconFolderClosed
					}
				}
			}
		}

		s.Visible = slices.Insert(s.Visible, i+1, children...)
	}

	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Visible) {
		s.Cursor = len(s.Visible) - 1
		if s.Cursor < 0 {
			s.Cursor = 0
		}
	}
}

// IndexOf locates an entry by canonical path after a rebuild has shifted
// indices, returning -1 when the path is no longer visible.
func IndexOf(s *State, path string) int {
	canon := Canonical(path)
	for i := range s.Visible {
		if Canonical(s.Visible[i].Path) == canon {
			return i
		}
	}
	return -1
}
