// Package parser loads notebook documents from disk.
package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

// SupportedVersion is the only nbformat major version accepted.
const SupportedVersion = 4

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedVersion indicates a notebook major version other than 4.
	ErrUnsupportedVersion = errors.New("unsupported nbformat version")
	// ErrInvalidNotebook indicates malformed JSON or a schema violation.
	ErrInvalidNotebook = errors.New("invalid notebook")
)

// Load reads and parses the notebook at path.
func Load(path string) (*models.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes notebook JSON, checks its version and validates it against
// the nbformat v4 schema.
func Parse(data []byte) (*models.Notebook, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotebook, err)
	}

	raw, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is %T, not an object", ErrInvalidNotebook, doc)
	}

	version, err := majorVersion(raw)
	if err != nil {
		return nil, err
	}
	if version != SupportedVersion {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, version, SupportedVersion)
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	nb, err := models.NotebookFromMap(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotebook, err)
	}
	return nb, nil
}

// majorVersion reads the nbformat field.
func majorVersion(raw map[string]any) (int, error) {
	v, ok := raw["nbformat"]
	if !ok {
		return 0, fmt.Errorf("%w: missing nbformat", ErrInvalidNotebook)
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: nbformat is %T, not a number", ErrInvalidNotebook, v)
	}
	i, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: nbformat %v is not an integer", ErrInvalidNotebook, v)
	}
	return int(i), nil
}
