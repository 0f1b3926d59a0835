package models

import "fmt"

// Notebook represents an nbformat v4 document.
type Notebook struct {
	// Cells is the ordered cell sequence.
	Cells []*Cell
	// Metadata is the notebook-level metadata, preserved as decoded.
	Metadata map[string]any
	// NBFormat is the major format version.
	NBFormat int
	// NBFormatMinor is the minor format version.
	NBFormatMinor int
	// Extra holds any other top-level keys.
	Extra map[string]any
}

// NotebookFromMap builds a Notebook from a decoded JSON object.
func NotebookFromMap(m map[string]any) (*Notebook, error) {
	nb := &Notebook{Extra: make(map[string]any)}
	for k, v := range m {
		switch k {
		case "cells":
			list, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("cells: expected list, got %T", v)
			}
			nb.Cells = make([]*Cell, 0, len(list))
			for i, item := range list {
				obj, ok := item.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("cells[%d]: expected object, got %T", i, item)
				}
				cell, err := CellFromMap(obj)
				if err != nil {
					return nil, fmt.Errorf("cells[%d]: %w", i, err)
				}
				nb.Cells = append(nb.Cells, cell)
			}
		case "metadata":
			md, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("metadata: expected object, got %T", v)
			}
			nb.Metadata = md
		case "nbformat":
			n, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("nbformat: expected integer, got %v", v)
			}
			nb.NBFormat = n
		case "nbformat_minor":
			n, ok := toInt(v)
			if !ok {
				return nil, fmt.Errorf("nbformat_minor: expected integer, got %v", v)
			}
			nb.NBFormatMinor = n
		default:
			nb.Extra[k] = v
		}
	}
	return nb, nil
}

// MarshalJSON writes the notebook with keys in sorted order.
func (nb *Notebook) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(nb.Extra)+4)
	for k, v := range nb.Extra {
		m[k] = v
	}
	cells := nb.Cells
	if cells == nil {
		cells = []*Cell{}
	}
	metadata := nb.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	m["cells"] = cells
	m["metadata"] = metadata
	m["nbformat"] = nb.NBFormat
	m["nbformat_minor"] = nb.NBFormatMinor
	return marshalRaw(m)
}

// UnmarshalJSON decodes a notebook object.
func (nb *Notebook) UnmarshalJSON(data []byte) error {
	m, err := decodeMap(data)
	if err != nil {
		return err
	}
	parsed, err := NotebookFromMap(m)
	if err != nil {
		return err
	}
	*nb = *parsed
	return nil
}

// CountType returns the number of cells of the given type.
func (nb *Notebook) CountType(t CellType) int {
	n := 0
	for _, c := range nb.Cells {
		if c.Type == t {
			n++
		}
	}
	return n
}
