// Package output serializes notebooks the way the Jupyter writer does.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

// Indent is the per-level indentation used by the Jupyter writer.
const Indent = " "

// ToJSON serializes the notebook with sorted keys, one-space indentation,
// unescaped HTML characters and a trailing newline. U+2028 and U+2029,
// which encoding/json always escapes, are written raw as Jupyter does.
func ToJSON(nb *models.Notebook) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(nb); err != nil {
		return nil, fmt.Errorf("failed to encode notebook: %w", err)
	}
	return unescapeLineSeparators(buf.Bytes()), nil
}

// unescapeLineSeparators replaces the \u2028 and \u2029 escapes in encoded
// JSON with the raw runes. Escapes are consumed pairwise, so an escaped
// backslash followed by the text u2028 stays as written.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}
		if data[i+1] != 'u' {
			// Any other escape pair, including \\, is copied whole.
			out = append(out, c, data[i+1])
			i++
			continue
		}
		switch {
		case bytes.HasPrefix(data[i:], []byte(`\u2028`)):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(data[i:], []byte(`\u2029`)):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, c)
		}
	}
	return out
}

// WriteFile serializes the notebook to path and returns the size of the
// file on disk.
func WriteFile(path string, nb *models.Notebook) (int64, error) {
	data, err := ToJSON(nb)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
