package parser

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "nbformat.v4.schema.json"

//go:embed nbformat.v4.schema.json
var schemaJSON []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse notebook schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add notebook schema: %w", err)
	}

	return c.Compile(schemaURL)
})

// Validate checks a decoded notebook document against the nbformat v4
// schema. doc must come from jsonschema.UnmarshalJSON or an equivalent
// decoder that keeps numbers as json.Number.
func Validate(doc any) error {
	sch, err := compileSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNotebook, err)
	}
	return nil
}
