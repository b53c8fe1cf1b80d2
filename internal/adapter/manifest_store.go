package adapter

import (
	"fmt"
	"path"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	m "gext.dev/pkg/gext/internal/model"
)

// ManifestFile is the name of the install record written inside each
// installed bundle directory.
const ManifestFile = "manifest.gext.yaml"

// ManifestStore persists install manifests so bundles can be removed
// without guessing what was written.
type ManifestStore interface {
	Save(dir m.Path, manifest m.Manifest) error
	Load(dir m.Path) (m.Manifest, error)
}

// YAMLManifestStore implements ManifestStore with a YAML file.
type YAMLManifestStore struct {
	fs afero.Fs
}

// NewYAMLManifestStore constructs a store writing to fs.
func NewYAMLManifestStore(fs afero.Fs) *YAMLManifestStore {
	return &YAMLManifestStore{fs: fs}
}

// Save implements ManifestStore.
func (s *YAMLManifestStore) Save(dir m.Path, manifest m.Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := s.fs.MkdirAll(string(dir), dirPerm); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	if err := afero.WriteFile(s.fs, path.Join(string(dir), ManifestFile), data, filePerm); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	return nil
}

// Load implements ManifestStore.
func (s *YAMLManifestStore) Load(dir m.Path) (m.Manifest, error) {
	data, err := afero.ReadFile(s.fs, path.Join(string(dir), ManifestFile))
	if err != nil {
		return m.Manifest{}, fmt.Errorf("load manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}

	return manifest, nil
}
