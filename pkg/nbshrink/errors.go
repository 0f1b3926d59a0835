package nbshrink

import (
	"errors"
	"fmt"

	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/parser"
)

var (
	// ErrFileNotFound indicates the input notebook does not exist.
	ErrFileNotFound = parser.ErrFileNotFound
	// ErrUnsupportedVersion indicates a notebook that is not nbformat 4.
	ErrUnsupportedVersion = parser.ErrUnsupportedVersion
	// ErrInvalidNotebook indicates malformed notebook JSON.
	ErrInvalidNotebook = parser.ErrInvalidNotebook
	// ErrInvalidOptions indicates a configuration that cannot run.
	ErrInvalidOptions = errors.New("invalid options")
)

// ParseError reports a notebook that could not be loaded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to load notebook %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DecodeError reports an embedded image that could not be decoded.
type DecodeError struct {
	// Cell is the index of the code cell in the input notebook.
	Cell int
	// MIME is the data bundle key the payload was read from.
	MIME string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s output of cell %d: %v", e.MIME, e.Cell, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// WriteError reports a filesystem failure.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
