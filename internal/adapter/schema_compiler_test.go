package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRun struct {
	name string
	args []string
}

func fakeRunner(record *[]recordedRun, err error) CommandRunner {
	return func(_ context.Context, name string, args ...string) (string, error) {
		*record = append(*record, recordedRun{name: name, args: args})
		if err != nil {
			return "schema error output", err
		}

		return "", nil
	}
}

func TestGlibSchemaCompiler_Compile(t *testing.T) {
	t.Run("stages schemas and invokes the compiler", func(t *testing.T) {
		tree, source, _ := memTree(t)
		writeFs(t, source, "schemas/org.example.foo.gschema.xml", "<schemalist/>")
		writeFs(t, source, "org.example.extra.gschema.xml", "<schemalist/>")

		target := afero.NewMemMapFs()

		var runs []recordedRun
		compiler := NewGlibSchemaCompiler(target, fakeRunner(&runs, nil))

		err := compiler.Compile(context.Background(), tree,
			[]string{"org.example.foo.gschema.xml", "org.example.extra.gschema.xml"},
			"root/foo@bar")
		require.NoError(t, err)

		// Both the schemas/ copy and the bundle-root copy land in the
		// install's schemas dir.
		for _, name := range []string{"org.example.foo.gschema.xml", "org.example.extra.gschema.xml"} {
			data, err := afero.ReadFile(target, "root/foo@bar/schemas/"+name)
			require.NoError(t, err, name)
			assert.Equal(t, "<schemalist/>", string(data))
		}

		require.Len(t, runs, 1)
		assert.Equal(t, "glib-compile-schemas", runs[0].name)
		assert.Equal(t, []string{"root/foo@bar/schemas"}, runs[0].args)
	})

	t.Run("does nothing without schemas", func(t *testing.T) {
		tree, _, _ := memTree(t)

		var runs []recordedRun
		compiler := NewGlibSchemaCompiler(afero.NewMemMapFs(), fakeRunner(&runs, nil))

		require.NoError(t, compiler.Compile(context.Background(), tree, nil, "root/x"))
		assert.Empty(t, runs)
	})

	t.Run("missing schema source fails before compiling", func(t *testing.T) {
		tree, _, _ := memTree(t)

		var runs []recordedRun
		compiler := NewGlibSchemaCompiler(afero.NewMemMapFs(), fakeRunner(&runs, nil))

		err := compiler.Compile(context.Background(), tree, []string{"org.example.missing.gschema.xml"}, "root/x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "org.example.missing.gschema.xml")
		assert.Empty(t, runs)
	})

	t.Run("compiler failure surfaces its output", func(t *testing.T) {
		tree, source, _ := memTree(t)
		writeFs(t, source, "schemas/org.example.foo.gschema.xml", "<schemalist/>")

		var runs []recordedRun
		compiler := NewGlibSchemaCompiler(afero.NewMemMapFs(), fakeRunner(&runs, errors.New("exit status 1")))

		err := compiler.Compile(context.Background(), tree, []string{"org.example.foo.gschema.xml"}, "root/x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema error output")
	})
}
