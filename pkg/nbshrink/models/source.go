package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MultilineString is a notebook text field. On disk it is either a single
// string or a list of lines; in memory it is always the joined text.
type MultilineString string

// ParseMultilineString accepts a decoded JSON string or array of strings.
func ParseMultilineString(v any) (MultilineString, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return MultilineString(s), nil
	case []string:
		return MultilineString(strings.Join(s, "")), nil
	case []any:
		var b strings.Builder
		for i, line := range s {
			str, ok := line.(string)
			if !ok {
				return "", fmt.Errorf("line %d: expected string, got %T", i, line)
			}
			b.WriteString(str)
		}
		return MultilineString(b.String()), nil
	}
	return "", fmt.Errorf("expected string or list of strings, got %T", v)
}

// Lines splits the text after every newline, keeping the line endings.
// An empty string yields an empty, non-nil slice.
func (s MultilineString) Lines() []string {
	lines := []string{}
	rest := string(s)
	for rest != "" {
		i := strings.IndexByte(rest, '\n')
		if i < 0 {
			lines = append(lines, rest)
			break
		}
		lines = append(lines, rest[:i+1])
		rest = rest[i+1:]
	}
	return lines
}

// MarshalJSON writes the text as a list of lines.
func (s MultilineString) MarshalJSON() ([]byte, error) {
	return marshalRaw(s.Lines())
}

// UnmarshalJSON accepts either a string or a list of strings.
func (s *MultilineString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseMultilineString(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
