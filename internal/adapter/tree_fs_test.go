package adapter

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gext.dev/pkg/gext/internal/model"
)

func memTree(t *testing.T) (*LocalTreeFS, afero.Fs, afero.Fs) {
	t.Helper()

	source := afero.NewMemMapFs()
	build := afero.NewMemMapFs()

	return NewTreeFS(source, build), source, build
}

func writeFs(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestLocalTreeFS_Existence(t *testing.T) {
	tree, source, build := memTree(t)

	writeFs(t, source, "extension.js", "// entry\n")
	writeFs(t, build, "generated/config.js", "// generated\n")
	require.NoError(t, source.MkdirAll("schemas", 0o755))

	assert.True(t, tree.InSource("extension.js"))
	assert.False(t, tree.InBuild("extension.js"))

	assert.True(t, tree.InBuild("generated/config.js"))
	assert.False(t, tree.InSource("generated/config.js"))

	assert.False(t, tree.InSource("missing.js"))

	// Directories are not installable files.
	assert.False(t, tree.InSource("schemas"))
}

func TestLocalTreeFS_ReadFile(t *testing.T) {
	t.Run("reads from whichever tree has the file", func(t *testing.T) {
		tree, source, build := memTree(t)
		writeFs(t, source, "a.js", "from source")
		writeFs(t, build, "b.js", "from build")

		data, err := tree.ReadFile("a.js")
		require.NoError(t, err)
		assert.Equal(t, "from source", string(data))

		data, err = tree.ReadFile("b.js")
		require.NoError(t, err)
		assert.Equal(t, "from build", string(data))
	})

	t.Run("source wins when both trees have the file", func(t *testing.T) {
		tree, source, build := memTree(t)
		writeFs(t, source, "a.js", "from source")
		writeFs(t, build, "a.js", "from build")

		data, err := tree.ReadFile("a.js")
		require.NoError(t, err)
		assert.Equal(t, "from source", string(data))
	})

	t.Run("missing file reports ErrNotExist", func(t *testing.T) {
		tree, _, _ := memTree(t)

		_, err := tree.ReadFile("nope.js")
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewLocalTreeFS_NoBuildDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/extension.js", []byte("// entry\n"), 0o644))

	tree := NewLocalTreeFS(m.Path(dir), "")

	assert.True(t, tree.InSource("extension.js"))
	assert.False(t, tree.InBuild("extension.js"))
}
