// Package adapter contains filesystem and tooling adapters for the gext CLI.
package adapter

import (
	"fmt"
	"os"

	"github.com/spf13/afero"

	m "gext.dev/pkg/gext/internal/model"
)

// TreeFS resolves bundle-relative paths against the two roots a build
// distinguishes: the source tree (files checked into the project) and the
// build tree (files produced during the build). It intentionally hides
// direct `os` access so planning and scanning can be tested without
// touching the disk.
type TreeFS interface {
	// InSource reports whether the path names a regular file in the
	// source tree.
	InSource(p m.Path) bool

	// InBuild reports whether the path names a regular file in the build
	// tree.
	InBuild(p m.Path) bool

	// ReadFile returns the file's content. When the path exists in both
	// trees the source copy wins, so discovery stays deterministic even
	// while the ambiguity is being reported elsewhere.
	ReadFile(p m.Path) ([]byte, error)
}

// LocalTreeFS is the afero-backed TreeFS implementation.
type LocalTreeFS struct {
	source afero.Fs
	build  afero.Fs
}

// NewTreeFS wires a TreeFS over two filesystems.
func NewTreeFS(source, build afero.Fs) *LocalTreeFS {
	return &LocalTreeFS{source: source, build: build}
}

// NewLocalTreeFS roots a TreeFS at two on-disk directories. An empty
// buildDir means the bundle has no build tree; every InBuild check is then
// false.
func NewLocalTreeFS(sourceDir, buildDir m.Path) *LocalTreeFS {
	base := afero.NewOsFs()

	build := afero.Fs(afero.NewMemMapFs())
	if buildDir != "" {
		build = afero.NewBasePathFs(base, string(buildDir))
	}

	return NewTreeFS(afero.NewBasePathFs(base, string(sourceDir)), build)
}

// InSource implements TreeFS.
func (t *LocalTreeFS) InSource(p m.Path) bool {
	return regularFile(t.source, p)
}

// InBuild implements TreeFS.
func (t *LocalTreeFS) InBuild(p m.Path) bool {
	return regularFile(t.build, p)
}

// ReadFile implements TreeFS.
func (t *LocalTreeFS) ReadFile(p m.Path) ([]byte, error) {
	if t.InSource(p) {
		return afero.ReadFile(t.source, string(p))
	}

	if t.InBuild(p) {
		return afero.ReadFile(t.build, string(p))
	}

	return nil, fmt.Errorf("%s: %w", p, os.ErrNotExist)
}

func regularFile(fs afero.Fs, p m.Path) bool {
	info, err := fs.Stat(string(p))

	return err == nil && info.Mode().IsRegular()
}
