package model

import (
	"encoding/json"
	"fmt"
)

// Well-known file names inside an extension bundle.
const (
	MetadataFile = "metadata.json"
	EntryFile    = "extension.js"
	PrefsFile    = "prefs.js"
	SchemaDir    = "schemas"
)

// SchemaFileSuffix is appended to a settings-schema id to form the XML
// schema source file name.
const SchemaFileSuffix = ".gschema.xml"

// Metadata is the parsed content of an extension's metadata.json. Only the
// fields the installer acts on are modeled; the file itself is installed
// verbatim.
type Metadata struct {
	UUID           string `json:"uuid"`
	SettingsSchema string `json:"settings-schema"`
}

// ParseMetadata decodes a metadata.json payload.
func ParseMetadata(data []byte) (Metadata, error) {
	var md Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return Metadata{}, fmt.Errorf("invalid %s: %w", MetadataFile, err)
	}

	return md, nil
}

// SchemaFile returns the schema source file implied by the settings-schema
// field, or "" when none is declared.
func (md Metadata) SchemaFile() string {
	if md.SettingsSchema == "" {
		return ""
	}

	return md.SettingsSchema + SchemaFileSuffix
}
