package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

func sampleNotebook() *models.Notebook {
	return &models.Notebook{
		NBFormat:      4,
		NBFormatMinor: 4,
		Metadata:      map[string]any{"language_info": map[string]any{"name": "python"}},
		Cells: []*models.Cell{
			{
				Type:   models.CellCode,
				Source: "a < b && c > d\nprint(a)",
				Fields: map[string]any{"metadata": map[string]any{}, "execution_count": nil},
			},
			models.NewMarkdownCell("![output image](notebook_images/img_0.jpg)", ""),
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleNotebook())
	require.NoError(t, err)

	expected := `{
 "cells": [
  {
   "cell_type": "code",
   "execution_count": null,
   "metadata": {},
   "outputs": [],
   "source": [
    "a < b && c > d\n",
    "print(a)"
   ]
  },
  {
   "cell_type": "markdown",
   "metadata": {},
   "source": [
    "![output image](notebook_images/img_0.jpg)"
   ]
  }
 ],
 "metadata": {
  "language_info": {
   "name": "python"
  }
 },
 "nbformat": 4,
 "nbformat_minor": 4
}
`
	assert.Equal(t, expected, string(data))
}

func TestToJSONKeepsUnicode(t *testing.T) {
	nb := sampleNotebook()
	nb.Cells[1].Source = "Größe ✓"

	data, err := ToJSON(nb)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Größe ✓")
}

func TestToJSONLineSeparators(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"line separator", "a\u2028b", `"a` + "\u2028" + `b"`},
		{"paragraph separator", "a\u2029b", `"a` + "\u2029" + `b"`},
		{"literal escape text", `a\u2028b`, `"a\\u2028b"`},
		{"other escapes", "tab\there \u00e9\u0001", `"tab\there é\u0001"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb := sampleNotebook()
			nb.Cells[1].Source = models.MultilineString(tt.source)

			data, err := ToJSON(nb)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)

			var back models.Notebook
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.source, string(back.Cells[1].Source))
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ipynb")

	size, err := WriteFile(path, sampleNotebook())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), size)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.ipynb")

	_, err := WriteFile(path, sampleNotebook())
	assert.Error(t, err)
}
