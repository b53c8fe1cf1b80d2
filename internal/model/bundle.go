// Package model defines the value types shared by the gext pipeline.
package model

import "time"

// Provenance classifies where a resolved file lives. The numeric values
// form the partition category: inSource + 2*inBuild.
type Provenance int

// Provenance categories.
const (
	// ProvenanceNone means the file exists in neither tree; installing it
	// is impossible.
	ProvenanceNone Provenance = iota
	// ProvenanceSource means the file is checked into the project.
	ProvenanceSource
	// ProvenanceBuild means the file is produced into the build tree.
	ProvenanceBuild
	// ProvenanceBoth means the file exists in both trees, which makes its
	// origin ambiguous (usually a stale build artifact).
	ProvenanceBoth

	// ProvenanceCategories is the partition category count.
	ProvenanceCategories
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceNone:
		return "missing"
	case ProvenanceSource:
		return "source"
	case ProvenanceBuild:
		return "build"
	case ProvenanceBoth:
		return "ambiguous"
	}

	return "unknown"
}

// Bundle describes one extension target as configured by the user. Zero
// values mean "not set": UUID falls back to metadata.json, IncludePattern
// to the tool default.
type Bundle struct {
	// Dir is the extension project directory (the source tree root for
	// this bundle).
	Dir Path

	// BuildDir is the build-output root for this bundle; empty when no
	// build step produces files for it.
	BuildDir Path

	// UUID overrides the uuid from metadata.json when non-empty.
	UUID string

	// Sources lists extra files to install and scan beyond the standard
	// roots.
	Sources []Path

	// Schemas lists extra GSettings schema file names beyond the one
	// derived from metadata's settings-schema.
	Schemas []string

	// IncludePattern overrides the import-statement pattern for this
	// bundle.
	IncludePattern string
}

// PlannedFile is one resolved file together with its provenance category.
type PlannedFile struct {
	Path       Path
	Provenance Provenance
}

// InstallPlan is the fully resolved outcome of planning one bundle: the
// file set to copy and the schemas to compile, plus where everything goes.
type InstallPlan struct {
	UUID    string
	Dest    Path
	Files   []PlannedFile
	Schemas []string
}

// Manifest records what an install wrote, so the bundle can be removed
// again without guessing.
type Manifest struct {
	UUID        string    `yaml:"uuid"`
	InstalledAt time.Time `yaml:"installed_at"`
	Files       []Path    `yaml:"files"`
	Schemas     []string  `yaml:"schemas,omitempty"`
}
