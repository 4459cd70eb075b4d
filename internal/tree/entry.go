package tree

import (
	"time"

	"lis/internal/git"
)

// Kind tells directories from files, with symlinks classified by what they
// resolve to.
type Kind uint8

const (
	KindDir Kind = iota
	KindFile
	KindSymlinkDir
	KindSymlinkFile
)

// IsDir reports whether the entry behaves as a directory (expandable,
// grouped before files, trailing slash).
func (k Kind) IsDir() bool {
	return k == KindDir || k == KindSymlinkDir
}

// Entry is one filesystem node as currently displayed. Path is the stable
// key: selection, clipboard, git status and cursor relocation all look
// entries up by canonical path, never by index.
type Entry struct {
	Name     string
	Path     string
	Kind     Kind
	Git      git.Kind
	Hidden   bool
	ReadOnly bool
	Selected bool

	Depth  int
	IsLast bool
	// AncestorHasMore holds one flag per ancestor level above the parent:
	// true when that ancestor still has siblings below it, which draws a
	// pipe instead of blank space at that indent level. Its length is
	// Depth-1 for every entry below the root.
	AncestorHasMore []bool

	Expanded bool
	Icon     string

	Size    int64
	ModTime time.Time
	Ext     string
}

// SortMode selects the sibling ordering inside the dirs-first groups.
type SortMode uint8

const (
	SortName SortMode = iota
	SortExtension
	SortSize
	SortTime
	SortNameRev
	SortExtensionRev
	SortSizeRev
	SortTimeRev

	sortModeCount = 8
)

// Next cycles to the following sort mode.
func (m SortMode) Next() SortMode {
	return (m + 1) % sortModeCount
}

// String returns the name shown in the header.
func (m SortMode) String() string {
	switch m {
	case SortName:
		return "name"
	case SortNameRev:
		return "name-rev"
	case SortExtension:
		return "ext"
	case SortExtensionRev:
		return "ext-rev"
	case SortSize:
		return "size"
	case SortSizeRev:
		return "size-rev"
	case SortTime:
		return "time"
	case SortTimeRev:
		return "time-rev"
	default:
		return "name"
	}
}

// SortModeFromName parses a config sort name, defaulting to SortName.
func SortModeFromName(name string) SortMode {
	for m := SortMode(0); m < sortModeCount; m++ {
		if m.String() == name {
			return m
		}
	}
	return SortName
}

// less orders two siblings within the same group under this mode. Ties on
// the chosen field fall back to name so the order stays deterministic.
func (m SortMode) less(a, b *Entry) bool {
	switch m {
	case SortName:
		return a.Name < b.Name
	case SortNameRev:
		return a.Name > b.Name
	case SortExtension:
		if a.Ext != b.Ext {
			return a.Ext < b.Ext
		}
	case SortExtensionRev:
		if a.Ext != b.Ext {
			return a.Ext > b.Ext
		}
	case SortSize:
		if a.Size != b.Size {
			return a.Size < b.Size
		}
	case SortSizeRev:
		if a.Size != b.Size {
			return a.Size > b.Size
		}
	case SortTime:
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.Before(b.ModTime)
		}
	case SortTimeRev:
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
	}
	return a.Name < b.Name
}
