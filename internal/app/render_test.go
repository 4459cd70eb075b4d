package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lis/internal/config"
	"lis/internal/theme"
	"lis/internal/tree"
)

func plainOpts(mutate func(*config.Options)) *config.Options {
	opts := config.Defaults()
	opts.UseANSI = false
	if mutate != nil {
		mutate(&opts)
	}
	return &opts
}

// sampleState builds root/{dir1/file1.txt, file2.txt} and flattens it.
func sampleState(t *testing.T, opts *config.Options) *tree.State {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dir1", "file1.txt"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "file2.txt"), make([]byte, 20), 0o644))

	st := tree.NewState(root, opts)
	tree.Rebuild(st)
	return st
}

func frameLines(st *tree.State, width int) []string {
	sty := theme.NewStyler(nil, st.Opts.UseANSI)
	frame := renderFrame(st, sty, width)
	frame = strings.TrimPrefix(frame, theme.ClearScreen)
	return strings.Split(strings.TrimSuffix(frame, "\r\n"), "\r\n")
}

func TestRenderFrameHeader(t *testing.T) {
	st := sampleState(t, plainOpts(nil))
	lines := frameLines(st, 80)

	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "lis - interactive tree file browser", lines[0])
	assert.Equal(t, "root: "+st.Root+"  [sort: name]", lines[1])
	assert.Contains(t, lines[2], "j/k:move")
	assert.Contains(t, lines[3], "D:delete")
	assert.Equal(t, "", lines[4])
}

func TestRenderFrameHeaderCounts(t *testing.T) {
	st := sampleState(t, plainOpts(nil))
	st.Cursor = 2
	st.ToggleSelect()
	st.Clipboard = tree.Clipboard{Paths: st.SelectionOrCursor(), Cut: true}

	lines := frameLines(st, 80)
	assert.Contains(t, lines[1], "[1 selected]")
	assert.Contains(t, lines[1], "[1 cut]")

	st.Clipboard.Cut = false
	lines = frameLines(st, 80)
	assert.Contains(t, lines[1], "[1 copied]")
}

func TestRenderFrameMessage(t *testing.T) {
	st := sampleState(t, plainOpts(nil))
	st.Message = "Refreshed"
	lines := frameLines(st, 80)
	assert.Equal(t, "Refreshed", lines[4])

	st.Opts.ShowHeader = false
	lines = frameLines(st, 80)
	assert.Equal(t, "Refreshed", lines[0])
}

func TestRenderFrameCompact(t *testing.T) {
	st := sampleState(t, plainOpts(func(o *config.Options) { o.ShowHeader = false }))
	lines := frameLines(st, 80)

	// No header: entry lines only, root first with the cursor marker.
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "> "))
	assert.Contains(t, lines[0], filepath.Base(st.Root)+"/")
}

func TestRenderLineConnectors(t *testing.T) {
	st := sampleState(t, plainOpts(func(o *config.Options) { o.ShowHeader = false }))
	st.Visible[1].Expanded = true
	tree.Rebuild(st)
	lines := frameLines(st, 80)
	require.Len(t, lines, 4)

	assert.Contains(t, lines[1], theme.IndentBranch+theme.IconFolderOpen+" dir1/")
	// file1 sits under dir1, which still has a sibling below: pipe then
	// corner.
	assert.Contains(t, lines[2], theme.IndentPipe+theme.IndentLast)
	assert.Contains(t, lines[2], "file1.txt")
	assert.Contains(t, lines[3], theme.IndentLast)
	assert.Contains(t, lines[3], "file2.txt")
}

func TestRenderLineMarks(t *testing.T) {
	st := sampleState(t, plainOpts(func(o *config.Options) { o.ShowHeader = false }))
	st.Cursor = 2
	st.ToggleSelect()
	lines := frameLines(st, 80)
	assert.True(t, strings.HasPrefix(lines[2], "> "+theme.MarkSelected+" "))

	st.Opts.ShowMarks = false
	lines = frameLines(st, 80)
	assert.False(t, strings.Contains(lines[2], theme.MarkSelected))
}

func TestRenderLineSizeAndTime(t *testing.T) {
	st := sampleState(t, plainOpts(func(o *config.Options) {
		o.ShowHeader = false
		o.ShowSize = true
	}))
	mod := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(filepath.Join(st.Root, "file2.txt"), mod, mod))
	tree.Rebuild(st)

	lines := frameLines(st, 80)
	assert.Contains(t, lines[2], "file2.txt  20B")
	assert.NotContains(t, lines[1], "  0B") // directories have no size column

	st.Opts.ShowTime = true
	lines = frameLines(st, 80)
	assert.Contains(t, lines[2], "Mar 05 14:30")
}

func TestRenderLinePersistentBackground(t *testing.T) {
	st := sampleState(t, plainOpts(func(o *config.Options) {
		o.ShowHeader = false
		o.AltScreen = true
		o.BGColor = 235
	}))
	sty := theme.NewStyler(nil, false)
	frame := renderFrame(st, sty, 40)

	bg := theme.Background(235)
	assert.True(t, strings.HasPrefix(frame, bg+theme.ClearScreen))

	lines := strings.Split(strings.TrimSuffix(frame, "\r\n"), "\r\n")
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, bg))
		// Padded to the full width, then reset and ambient bg restored.
		assert.Equal(t, 40, theme.VisibleWidth(line))
		assert.True(t, strings.HasSuffix(line, theme.Reset+bg))
	}
}

func TestRenderLineSelectionBackground(t *testing.T) {
	st := sampleState(t, plainOpts(func(o *config.Options) {
		o.ShowHeader = false
		o.AltScreen = true
		o.SelBGColor = 24
	}))
	sty := theme.NewStyler(nil, false)
	frame := renderFrame(st, sty, 40)
	frame = strings.TrimPrefix(frame, theme.ClearScreen)

	lines := strings.Split(strings.TrimSuffix(frame, "\r\n"), "\r\n")
	assert.True(t, strings.HasPrefix(lines[0], theme.Background(24)))
	// Only the cursor row gets the selection background.
	assert.False(t, strings.Contains(lines[1], theme.Background(24)))
}

func TestRenderLineDepthCap(t *testing.T) {
	opts := plainOpts(func(o *config.Options) {
		o.ShowHeader = false
		o.MaxDepth = 1
	})
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0o755))

	st := tree.NewState(root, opts)
	tree.Rebuild(st)
	for i := 1; i < 3; i++ {
		st.Visible[i].Expanded = true
		tree.Rebuild(st)
	}
	capped := frameLines(st, 80)
	require.Len(t, capped, 4)

	st.Opts.MaxDepth = -1
	full := frameLines(st, 80)

	// Depth 3 keeps at most one ancestor connector before its corner glyph,
	// so the capped line is narrower than the uncapped one.
	assert.Contains(t, capped[3], theme.IndentLast+theme.IconFolderClosed)
	assert.Less(t,
		theme.VisibleWidth(capped[3]),
		theme.VisibleWidth(full[3]))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0B", formatSize(0))
	assert.Equal(t, "512B", formatSize(512))
	assert.Equal(t, "1023B", formatSize(1023))
	assert.Equal(t, "1.0K", formatSize(1024))
	assert.Equal(t, "1.5K", formatSize(1536))
	assert.Equal(t, "1.0M", formatSize(1<<20))
	assert.Equal(t, "2.0G", formatSize(2<<30))
	assert.Equal(t, "1.0T", formatSize(1<<40))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "Jan 02 03:04", formatTime(ts))
}
