package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"lis/internal/git"
)

// Palette used across the UI.
const (
	ColorCursor    = "#FFFFFF"
	ColorSelected  = "#b8bb26"
	ColorReadOnly  = "#fb4934"
	ColorDirIcon   = "#00afaf"
	ColorDirName   = "#689FB6"
	ColorFileName  = "#F09F17"
	ColorMeta      = "#928374"
	ColorMessage   = "#fabd2f"
	ColorGitWarn   = "#fabd2f"
	ColorGitStaged = "#b8bb26"
	ColorGitBad    = "#fb4934"
	ColorGitMuted  = "#928374"
)

// Styler is the styled-text builder: it wraps raw text in foreground color
// and bold escape sequences. When disabled it passes text through untouched,
// which keeps rendering deterministic with ANSI off.
type Styler struct {
	enabled bool
	r       *lipgloss.Renderer
}

// NewStyler builds a Styler writing escape sequences suitable for w. The
// color profile is pinned to TrueColor: the hex palette above is emitted
// as-is instead of being downgraded by terminal detection.
func NewStyler(w io.Writer, enabled bool) *Styler {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	return &Styler{enabled: enabled, r: r}
}

// Enabled reports whether ANSI styling is on.
func (s *Styler) Enabled() bool { return s.enabled }

// Paint wraps text in the escape sequences for the given hex foreground
// color, optionally bold.
func (s *Styler) Paint(text, hex string, bold bool) string {
	if !s.enabled {
		return text
	}
	st := s.r.NewStyle().Foreground(lipgloss.Color(hex))
	if bold {
		st = st.Bold(true)
	}
	return st.Render(text)
}

// GitGlyph returns the git column glyph for a classification.
func GitGlyph(k git.Kind) string {
	switch k {
	case git.Untracked:
		return "✭"
	case git.Modified:
		return "✹"
	case git.Staged:
		return "✚"
	case git.Renamed:
		return "➜"
	case git.Ignored:
		return "☒"
	case git.Unmerged:
		return "═"
	case git.Deleted:
		return "✖"
	case git.Unknown:
		return "?"
	default:
		return " "
	}
}

// GitColor returns the glyph color for a classification.
func GitColor(k git.Kind) string {
	switch k {
	case git.Modified, git.Renamed:
		return ColorGitWarn
	case git.Staged:
		return ColorGitStaged
	case git.Unmerged, git.Deleted:
		return ColorGitBad
	default:
		return ColorGitMuted
	}
}

// PaintGit renders the styled git column glyph.
func (s *Styler) PaintGit(k git.Kind) string {
	if k == git.None {
		return " "
	}
	return s.Paint(GitGlyph(k), GitColor(k), false)
}
