package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"lis/internal/git"
	"lis/internal/theme"
)

// ListDir reads one directory and returns its immediate children as entries
// at the given depth: hidden and ignored names filtered, kinds classified
// (symlinks by their target), metadata attached best-effort, directories
// grouped before files and each group ordered by the active sort mode.
// A read failure aborts only this directory; callers treat the error as
// "no children".
func ListDir(dir string, depth int, s *State) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []Entry
	for _, d := range dirents {
		name := d.Name()
		hidden := strings.HasPrefix(name, ".")
		if hidden && !s.Opts.ShowHidden {
			continue
		}
		if s.Opts.Ignored(name) {
			continue
		}

		path := filepath.Join(dir, name)
		e := Entry{
			Name:     name,
			Path:     path,
			Depth:    depth,
			Hidden:   hidden,
			Selected: s.IsSelected(path),
			Ext:      extension(name),
		}

		if k, ok := s.GitStatus[Canonical(path)]; ok {
			e.Git = k
		} else {
			e.Git = git.None
		}

		// Metadata is best-effort: a failed stat leaves zero values.
		if info, err := os.Stat(path); err == nil {
			e.ReadOnly = info.Mode().Perm()&0o200 == 0
			if info.Mode().IsRegular() {
				e.Size = info.Size()
			}
			e.ModTime = info.ModTime()
		}

		symlink := d.Type()&os.ModeSymlink != 0
		switch {
		case symlink:
			// Classify by resolved target; a broken link degrades to a
			// file with the symlink glyph.
			target, err := os.Stat(path)
			switch {
			case err == nil && target.IsDir():
				e.Kind = KindSymlinkDir
				e.Icon = theme.IconFolderSymlink
			case err == nil:
				e.Kind = KindSymlinkFile
				e.Icon = fileIcon(s, e.Name, true)
			default:
				e.Kind = KindSymlinkFile
				e.Icon = theme.IconFileSymlink
				if s.Opts.GenericIcons {
					e.Icon = theme.IconFileDefault
				}
			}
		case d.IsDir():
			e.Kind = KindDir
			e.Icon = theme.IconFolderClosed
		default:
			e.Kind = KindFile
			e.Icon = fileIcon(s, e.Name, false)
		}

		if e.Kind.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}

	less := func(group []Entry) func(i, j int) bool {
		return func(i, j int) bool { return s.Sort.less(&group[i], &group[j]) }
	}
	sort.SliceStable(dirs, less(dirs))
	sort.SliceStable(files, less(files))

	return append(dirs, files...), nil
}

func fileIcon(s *State, name string, symlink bool) string {
	if s.Opts.GenericIcons {
		return theme.IconFileDefault
	}
	return theme.FileIcon(name, symlink)
}

// extension is the substring after the last dot, empty when there is none.
func extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return ""
}
