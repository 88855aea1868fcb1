// Package importer builds scene snapshots from files: JSON and YAML scene
// documents, CSV and Excel part listings, and DXF meshes.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/scene"
)

// ErrDefinitionCycle is returned when a definition contains an instance of itself,
// directly or through other definitions.
var ErrDefinitionCycle = errors.New("definition cycle")

// ErrUnsupportedFormat is returned by Import for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported scene format")

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Snapshot *scene.Snapshot
	Errors   []string
	Warnings []string
}

// Import reads the scene file at path, choosing the reader from its extension.
// unit is the length unit of listings and DXF files, which carry none of their own;
// scene documents declare theirs.
//
// Problems that abort the whole import are returned as an error. Rows or
// entities that could not be read are reported in the result's Errors and Warnings.
func Import(path string, unit model.LengthUnit) (ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		snap, err := LoadDocument(path, FormatJSON)
		return ImportResult{Snapshot: snap}, err
	case ".yaml", ".yml":
		snap, err := LoadDocument(path, FormatYAML)
		return ImportResult{Snapshot: snap}, err
	case ".csv", ".txt":
		return checked(ImportCSV(path, unit))
	case ".xlsx", ".xlsm":
		return checked(ImportExcel(path, unit))
	case ".dxf":
		return checked(ImportDXF(path, unit))
	default:
		return ImportResult{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// checked turns a result without a snapshot into an error.
func checked(r ImportResult) (ImportResult, error) {
	if r.Snapshot == nil {
		return r, fmt.Errorf("import failed: %s", strings.Join(r.Errors, "; "))
	}
	return r, nil
}

// newInstanceID returns a short random id for entities that do not carry one.
func newInstanceID() string {
	return uuid.New().String()[:8]
}

// materialNamed returns the material with the given name, or nil for an empty name.
func materialNamed(name, color string) *scene.Material {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return &scene.Material{Name: name, Color: color}
}
