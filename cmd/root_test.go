package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gext.dev/pkg/gext/internal/model"
)

func TestParseDirs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []m.Path
	}{
		{"empty defaults to cwd", []string{}, []m.Path{"."}},
		{"single", []string{"./ext"}, []m.Path{"./ext"}},
		{"multiple", []string{"one", "two"}, []m.Path{"one", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDirs(tt.args))
		})
	}
}

func TestBundlesFor(t *testing.T) {
	t.Cleanup(func() {
		viper.Set(buildDirConfigKey, "")
		viper.Set(scanPatternKey, "")
	})

	viper.Set(buildDirConfigKey, "build/out")
	viper.Set(scanPatternKey, `custom (?P<import>\w+)`)

	bundles := bundlesFor([]m.Path{"one", "two"}, "my@uuid", []string{"extra.js"}, []string{"org.example.gschema.xml"})
	require.Len(t, bundles, 2)

	for i, dir := range []m.Path{"one", "two"} {
		assert.Equal(t, dir, bundles[i].Dir)
		assert.Equal(t, m.Path("build/out"), bundles[i].BuildDir)
		assert.Equal(t, "my@uuid", bundles[i].UUID)
		assert.Equal(t, []m.Path{"extra.js"}, bundles[i].Sources)
		assert.Equal(t, []string{"org.example.gschema.xml"}, bundles[i].Schemas)
		assert.Equal(t, `custom (?P<import>\w+)`, bundles[i].IncludePattern)
	}
}

func TestBaseRootCmd(t *testing.T) {
	cmd := baseRootCmd()
	assert.Equal(t, "gext", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := baseRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
}

func TestInit(t *testing.T) {
	// Test that init() created all the shared dependencies.
	assert.NotNil(t, ui)
	assert.NotNil(t, installer)
	assert.NotNil(t, compiler)
	assert.NotNil(t, manifests)
	assert.NotNil(t, treeFactory)
	assert.NotNil(t, workflow)
}
