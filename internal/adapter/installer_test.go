package adapter

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gext.dev/pkg/gext/internal/model"
)

func TestLocalInstaller_Install(t *testing.T) {
	tree, source, build := memTree(t)
	writeFs(t, source, "metadata.json", `{"uuid":"foo@bar"}`)
	writeFs(t, source, "ui/panel.js", "// panel\n")
	writeFs(t, build, "generated.js", "// generated\n")

	target := afero.NewMemMapFs()
	installer := NewLocalInstaller(target)

	files := []m.PlannedFile{
		{Path: "metadata.json", Provenance: m.ProvenanceSource},
		{Path: "ui/panel.js", Provenance: m.ProvenanceSource},
		{Path: "generated.js", Provenance: m.ProvenanceBuild},
	}

	require.NoError(t, installer.Install(tree, files, "root/foo@bar"))

	for path, want := range map[string]string{
		"root/foo@bar/metadata.json": `{"uuid":"foo@bar"}`,
		"root/foo@bar/ui/panel.js":   "// panel\n",
		"root/foo@bar/generated.js":  "// generated\n",
	} {
		data, err := afero.ReadFile(target, path)
		require.NoError(t, err, path)
		assert.Equal(t, want, string(data), path)
	}
}

func TestLocalInstaller_InstallUnreadableFile(t *testing.T) {
	tree, _, _ := memTree(t)
	installer := NewLocalInstaller(afero.NewMemMapFs())

	err := installer.Install(tree, []m.PlannedFile{{Path: "ghost.js"}}, "root/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.js")
}

func TestLocalInstaller_Remove(t *testing.T) {
	target := afero.NewMemMapFs()
	writeFs(t, target, "root/foo@bar/extension.js", "// entry\n")

	installer := NewLocalInstaller(target)
	require.NoError(t, installer.Remove("root/foo@bar"))

	exists, err := afero.Exists(target, "root/foo@bar/extension.js")
	require.NoError(t, err)
	assert.False(t, exists)
}
