package domain

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	m "gext.dev/pkg/gext/internal/model"
)

// ErrMissingUUID means a bundle declared no uuid and its metadata.json
// carries none either. Nothing can be installed without one.
var ErrMissingUUID = errors.New("missing uuid: not declared and not present in metadata.json")

// ErrMissingEntry means the mandatory entry-point script was found in
// neither tree.
var ErrMissingEntry = errors.New("entry script not found")

// ProvenanceError reports every resolved file whose location makes
// installation impossible (present in neither tree) or ambiguous (present
// in both trees, usually a stale build artifact shadowing a source file).
// It is raised before any file operation.
type ProvenanceError struct {
	Missing   []m.Path
	Ambiguous []m.Path
}

// Error enumerates all offending files.
func (e *ProvenanceError) Error() string {
	var result *multierror.Error

	for _, p := range e.Missing {
		result = multierror.Append(result, fmt.Errorf("%s: found in neither source nor build tree", p))
	}

	for _, p := range e.Ambiguous {
		result = multierror.Append(result, fmt.Errorf("%s: found in both source and build tree", p))
	}

	return result.Error()
}
