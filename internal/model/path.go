package model

import (
	"path"
	"strings"
)

// Path represents a file location relative to an extension bundle root,
// slash-separated. Two Paths naming the same file compare equal, so Path
// works as a map key for visited sets.
type Path string

// String returns the path as a plain string.
func (p Path) String() string {
	return string(p)
}

// Clean normalizes the path (removes "./", collapses separators).
func (p Path) Clean() Path {
	return Path(path.Clean(string(p)))
}

// Join appends further elements to the path.
func (p Path) Join(elem ...string) Path {
	return Path(path.Join(append([]string{string(p)}, elem...)...))
}

// ScriptExt is the extension appended to import identifiers when mapping
// them back to files.
const ScriptExt = ".js"

// PathFromImport converts a dotted import identifier such as "ui.panel"
// into the script path it refers to, "ui/panel.js".
func PathFromImport(identifier string) Path {
	return Path(strings.ReplaceAll(identifier, ".", "/") + ScriptExt)
}
