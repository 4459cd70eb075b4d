package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := Defaults()

	assert.False(t, o.ShowHidden)
	assert.True(t, o.ShowMarks)
	assert.True(t, o.ShowHeader)
	assert.True(t, o.UseANSI)
	assert.Equal(t, -1, o.MaxDepth)
	assert.Equal(t, -1, o.BGColor)
	assert.Equal(t, -1, o.SelBGColor)
	assert.Equal(t, "name", o.Sort)
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		o, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), o)
	})

	t.Run("empty path returns defaults", func(t *testing.T) {
		o, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Defaults(), o)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, os.WriteFile(path, []byte(`
[display]
show_hidden = true
show_git = true
alt_screen = true
max_depth = 3
background = 235
sort = size

[filter]
ignore = node_modules, *.o
`), 0o644))

		o, err := Load(path)
		require.NoError(t, err)

		assert.True(t, o.ShowHidden)
		assert.True(t, o.ShowGit)
		assert.True(t, o.AltScreen)
		assert.Equal(t, 3, o.MaxDepth)
		assert.Equal(t, 235, o.BGColor)
		assert.Equal(t, "size", o.Sort)
		assert.Equal(t, []string{"node_modules", "*.o"}, o.IgnorePatterns)

		assert.True(t, o.Ignored("node_modules"))
		assert.True(t, o.Ignored("main.o"))
		assert.False(t, o.Ignored("main.go"))
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, os.WriteFile(path, []byte("[display\nbroken"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad ignore pattern errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, os.WriteFile(path, []byte("[filter]\nignore = [\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestIgnoredWithoutPatterns(t *testing.T) {
	o := Defaults()
	assert.False(t, o.Ignored("anything"))
}
