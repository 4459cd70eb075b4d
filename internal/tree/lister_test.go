package tree

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lis/internal/config"
	"lis/internal/git"
)

func newTestState(t *testing.T, root string, mutate func(*config.Options)) *State {
	t.Helper()
	opts := config.Defaults()
	if mutate != nil {
		mutate(&opts)
	}
	require.NoError(t, opts.CompilePatterns())
	return NewState(root, &opts)
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestListDirGroupsAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), 1)
	writeFile(t, filepath.Join(dir, "a.txt"), 1)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "zdir"), 0o755))

	s := newTestState(t, dir, nil)
	entries, err := ListDir(dir, 1, s)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, "zdir", entries[0].Name)
	assert.Equal(t, KindDir, entries[0].Kind)
	assert.Equal(t, "a.txt", entries[1].Name)
	assert.Equal(t, "b.txt", entries[2].Name)
	for _, e := range entries {
		assert.Equal(t, 1, e.Depth)
	}
}

func TestListDirHiddenFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".hidden"), 1)
	writeFile(t, filepath.Join(dir, "shown"), 1)

	s := newTestState(t, dir, nil)
	entries, err := ListDir(dir, 1, s)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0].Name)

	s.Opts.ShowHidden = true
	entries, err = ListDir(dir, 1, s)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ".hidden", entries[0].Name)
	assert.True(t, entries[0].Hidden)
}

func TestListDirIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.go"), 1)
	writeFile(t, filepath.Join(dir, "drop.o"), 1)

	s := newTestState(t, dir, func(o *config.Options) {
		o.IgnorePatterns = []string{"*.o"}
	})
	entries, err := ListDir(dir, 1, s)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.go", entries[0].Name)
}

func TestListDirGitStatus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tracked.go"), 1)
	writeFile(t, filepath.Join(dir, "new.go"), 1)

	s := newTestState(t, dir, nil)
	s.GitStatus[Canonical(filepath.Join(dir, "tracked.go"))] = git.Modified

	entries, err := ListDir(dir, 1, s)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, git.None, entries[0].Git)
	assert.Equal(t, git.Modified, entries[1].Git)
}

func TestListDirMissing(t *testing.T) {
	s := newTestState(t, t.TempDir(), nil)
	_, err := ListDir(filepath.Join(s.Root, "gone"), 1, s)
	assert.Error(t, err)
}

func TestListDirSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "target"), 0o755))
	writeFile(t, filepath.Join(dir, "file"), 1)
	require.NoError(t, os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "dlink")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "file"), filepath.Join(dir, "flink")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), filepath.Join(dir, "broken")))

	s := newTestState(t, dir, nil)
	entries, err := ListDir(dir, 1, s)
	require.NoError(t, err)

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	assert.Equal(t, KindSymlinkDir, byName["dlink"].Kind)
	assert.Equal(t, KindSymlinkFile, byName["flink"].Kind)
	assert.Equal(t, KindSymlinkFile, byName["broken"].Kind)
	// Symlinked dirs group with the real one.
	assert.Equal(t, "dlink", entries[0].Name)
	assert.Equal(t, "target", entries[1].Name)
}

func TestSortModes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "small.zz"), 1)
	writeFile(t, filepath.Join(dir, "big.aa"), 100)
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "big.aa"), old, old))

	s := newTestState(t, dir, nil)

	names := func(mode SortMode) []string {
		s.Sort = mode
		entries, err := ListDir(dir, 1, s)
		require.NoError(t, err)
		out := make([]string, len(entries))
		for i, e := range entries {
			out[i] = e.Name
		}
		return out
	}

	assert.Equal(t, []string{"big.aa", "small.zz"}, names(SortName))
	assert.Equal(t, []string{"small.zz", "big.aa"}, names(SortNameRev))
	assert.Equal(t, []string{"big.aa", "small.zz"}, names(SortExtension))
	assert.Equal(t, []string{"small.zz", "big.aa"}, names(SortSize))
	assert.Equal(t, []string{"big.aa", "small.zz"}, names(SortSizeRev))
	assert.Equal(t, []string{"big.aa", "small.zz"}, names(SortTime))
	assert.Equal(t, []string{"small.zz", "big.aa"}, names(SortTimeRev))
}

func TestSortModeCycle(t *testing.T) {
	m := SortName
	seen := make(map[SortMode]bool)
	for i := 0; i < int(sortModeCount); i++ {
		assert.False(t, seen[m])
		seen[m] = true
		m = m.Next()
	}
	assert.Equal(t, SortName, m)
}

func TestSortModeFromName(t *testing.T) {
	assert.Equal(t, SortSize, SortModeFromName("size"))
	assert.Equal(t, SortTimeRev, SortModeFromName("time-rev"))
	assert.Equal(t, SortName, SortModeFromName("bogus"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "go", extension("main.go"))
	assert.Equal(t, "ts", extension("index.d.ts"))
	assert.Equal(t, "", extension("Makefile"))
	assert.Equal(t, "gitignore", extension(".gitignore"))
}
