package git

// Kind classifies an entry's version-control state as shown in the git
// column. Classification collapses git's two-character porcelain codes
// into the single state that matters for display.
type Kind uint8

const (
	Untracked Kind = iota
	Modified
	Staged
	Renamed
	Ignored
	Unmerged
	Deleted
	Unknown
	None
)

// String returns a short lowercase name, mostly for logging.
func (k Kind) String() string {
	switch k {
	case Untracked:
		return "untracked"
	case Modified:
		return "modified"
	case Staged:
		return "staged"
	case Renamed:
		return "renamed"
	case Ignored:
		return "ignored"
	case Unmerged:
		return "unmerged"
	case Deleted:
		return "deleted"
	case Unknown:
		return "unknown"
	default:
		return "none"
	}
}

// Classify maps a porcelain v1 status code pair (index, worktree) to a Kind.
func Classify(x, y byte) Kind {
	switch {
	case x == '?' && y == '?':
		return Untracked
	case x == '!' && y == '!':
		return Ignored
	case x == ' ' && y == 'M':
		return Modified
	case x == 'M' || x == 'A' || x == 'C':
		return Staged
	case x == 'R':
		return Renamed
	case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
		return Unmerged
	case x == 'D' || y == 'D':
		return Deleted
	case x == ' ' && y == ' ':
		return None
	default:
		return Unknown
	}
}
