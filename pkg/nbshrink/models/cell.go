package models

import "fmt"

// CellType is the cell_type of a notebook cell.
type CellType string

const (
	// CellCode is an executable cell carrying outputs.
	CellCode CellType = "code"
	// CellMarkdown is a narrative cell.
	CellMarkdown CellType = "markdown"
	// CellRaw is an unrendered cell.
	CellRaw CellType = "raw"
)

// Cell represents one notebook cell.
type Cell struct {
	// Type is the cell_type.
	Type CellType
	// ID is the cell id (nbformat 4.5+). Empty when absent.
	ID string
	// Source is the cell text.
	Source MultilineString
	// Outputs holds code cell outputs. Ignored for other cell types.
	Outputs []Output
	// Fields holds every other key of the cell object (metadata,
	// execution_count, attachments, ...).
	Fields map[string]any
}

// NewMarkdownCell creates a markdown cell with empty metadata. The id is
// omitted when empty.
func NewMarkdownCell(source, id string) *Cell {
	return &Cell{
		Type:   CellMarkdown,
		ID:     id,
		Source: MultilineString(source),
		Fields: map[string]any{"metadata": map[string]any{}},
	}
}

// CellFromMap builds a Cell from a decoded JSON object.
func CellFromMap(m map[string]any) (*Cell, error) {
	c := &Cell{Fields: make(map[string]any, len(m))}
	for k, v := range m {
		switch k {
		case "cell_type":
			t, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("cell_type: expected string, got %T", v)
			}
			c.Type = CellType(t)
		case "id":
			id, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("id: expected string, got %T", v)
			}
			c.ID = id
		case "source":
			src, err := ParseMultilineString(v)
			if err != nil {
				return nil, fmt.Errorf("source: %w", err)
			}
			c.Source = src
		case "outputs":
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("outputs: expected list, got %T", v)
			}
			c.Outputs = make([]Output, 0, len(list))
			for i, item := range list {
				out, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("outputs[%d]: expected object, got %T", i, item)
				}
				c.Outputs = append(c.Outputs, Output(out))
			}
		default:
			c.Fields[k] = v
		}
	}
	if c.Type == "" {
		return nil, fmt.Errorf("missing cell_type")
	}
	return c, nil
}

// MarshalJSON writes the cell with keys in sorted order.
func (c *Cell) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Fields)+4)
	for k, v := range c.Fields {
		m[k] = v
	}
	m["cell_type"] = string(c.Type)
	m["source"] = c.Source
	if c.ID != "" {
		m["id"] = c.ID
	}
	if c.Type == CellCode || c.Outputs != nil {
		outputs := c.Outputs
		if outputs == nil {
			outputs = []Output{}
		}
		m["outputs"] = outputs
	}
	return marshalRaw(m)
}

// UnmarshalJSON decodes a cell object.
func (c *Cell) UnmarshalJSON(data []byte) error {
	m, err := decodeMap(data)
	if err != nil {
		return err
	}
	parsed, err := CellFromMap(m)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// HasOutputs reports whether the cell is a code cell with at least one output.
func (c *Cell) HasOutputs() bool {
	return c.Type == CellCode && len(c.Outputs) > 0
}
