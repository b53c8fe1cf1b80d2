package adapter

import (
	"fmt"
	"path"

	"github.com/spf13/afero"

	m "gext.dev/pkg/gext/internal/model"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Installer copies a resolved file set into an install directory,
// preserving each file's bundle-relative path, and removes installed
// bundles again.
type Installer interface {
	// Install copies every file from tree into dest, creating
	// intermediate directories as needed.
	Install(tree TreeFS, files []m.PlannedFile, dest m.Path) error

	// Remove deletes an install directory and everything beneath it.
	Remove(dest m.Path) error
}

// LocalInstaller implements Installer against a target filesystem (the
// real disk in production, a memory fs in tests).
type LocalInstaller struct {
	target afero.Fs
}

// NewLocalInstaller constructs an installer writing to target.
func NewLocalInstaller(target afero.Fs) *LocalInstaller {
	return &LocalInstaller{target: target}
}

// Install implements Installer.
func (i *LocalInstaller) Install(tree TreeFS, files []m.PlannedFile, dest m.Path) error {
	for _, f := range files {
		data, err := tree.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("install %s: %w", f.Path, err)
		}

		target := path.Join(string(dest), string(f.Path))
		if err := i.target.MkdirAll(path.Dir(target), dirPerm); err != nil {
			return fmt.Errorf("install %s: %w", f.Path, err)
		}

		if err := afero.WriteFile(i.target, target, data, filePerm); err != nil {
			return fmt.Errorf("install %s: %w", f.Path, err)
		}
	}

	return nil
}

// Remove implements Installer.
func (i *LocalInstaller) Remove(dest m.Path) error {
	return i.target.RemoveAll(string(dest))
}
