package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path"
	"time"

	"github.com/spf13/afero"

	m "gext.dev/pkg/gext/internal/model"
)

// SchemaCompiler stages GSettings schema sources under the install
// directory and triggers their compilation.
type SchemaCompiler interface {
	// Compile copies the named schema files from tree into <dest>/schemas
	// and runs the schema compiler over that directory.
	Compile(ctx context.Context, tree TreeFS, schemas []string, dest m.Path) error
}

// CommandRunner runs an external command and returns its combined output.
// Split out so compiler tests don't need glib installed.
type CommandRunner func(ctx context.Context, name string, args ...string) (string, error)

// GlibSchemaCompiler implements SchemaCompiler using glib-compile-schemas.
type GlibSchemaCompiler struct {
	target  afero.Fs
	run     CommandRunner
	timeout time.Duration
}

// NewGlibSchemaCompiler constructs a compiler with a default 30s timeout.
// A nil runner uses os/exec.
func NewGlibSchemaCompiler(target afero.Fs, run CommandRunner) *GlibSchemaCompiler {
	if run == nil {
		run = execRunner
	}

	return &GlibSchemaCompiler{
		target:  target,
		run:     run,
		timeout: 30 * time.Second,
	}
}

// Compile implements SchemaCompiler.
func (c *GlibSchemaCompiler) Compile(ctx context.Context, tree TreeFS, schemas []string, dest m.Path) error {
	if len(schemas) == 0 {
		return nil
	}

	schemaDir := path.Join(string(dest), m.SchemaDir)
	if err := c.target.MkdirAll(schemaDir, dirPerm); err != nil {
		return fmt.Errorf("schema dir %s: %w", schemaDir, err)
	}

	for _, name := range schemas {
		data, err := readSchema(tree, name)
		if err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}

		if err := afero.WriteFile(c.target, path.Join(schemaDir, name), data, filePerm); err != nil {
			return fmt.Errorf("schema %s: %w", name, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	output, err := c.run(ctx, "glib-compile-schemas", schemaDir)
	if err != nil {
		return fmt.Errorf("glib-compile-schemas %s: %w\n%s", schemaDir, err, output)
	}

	return nil
}

// readSchema looks for the schema source in the conventional schemas/
// subdirectory first, then at the bundle root.
func readSchema(tree TreeFS, name string) ([]byte, error) {
	nested := m.Path(path.Join(m.SchemaDir, name))
	if tree.InSource(nested) || tree.InBuild(nested) {
		return tree.ReadFile(nested)
	}

	return tree.ReadFile(m.Path(name))
}

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	return stdout.String() + stderr.String(), err
}
