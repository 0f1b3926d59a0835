package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

const validNotebook = `{
 "cells": [
  {
   "cell_type": "markdown",
   "id": "intro",
   "metadata": {},
   "source": ["# Transforms\n"]
  },
  {
   "cell_type": "code",
   "execution_count": 1,
   "id": "plot-1",
   "metadata": {},
   "outputs": [
    {
     "output_type": "stream",
     "name": "stdout",
     "text": ["ok\n"]
    },
    {
     "output_type": "display_data",
     "data": {"image/png": "iVBORw0KGgo=", "text/plain": ["<Figure>"]},
     "metadata": {}
    }
   ],
   "source": "plt.show()"
  }
 ],
 "metadata": {"kernelspec": {"display_name": "Python 3", "name": "python3"}},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func TestParse(t *testing.T) {
	nb, err := Parse([]byte(validNotebook))
	require.NoError(t, err)

	assert.Equal(t, 4, nb.NBFormat)
	assert.Equal(t, 5, nb.NBFormatMinor)
	require.Len(t, nb.Cells, 2)
	assert.Equal(t, models.CellMarkdown, nb.Cells[0].Type)
	assert.Equal(t, "intro", nb.Cells[0].ID)

	code := nb.Cells[1]
	assert.Equal(t, models.CellCode, code.Type)
	require.Len(t, code.Outputs, 2)
	assert.Equal(t, models.OutputDisplayData, code.Outputs[1].OutputType())
	assert.Contains(t, nb.Metadata, "kernelspec")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{
			name:     "malformed json",
			input:    `{"cells": [`,
			expected: ErrInvalidNotebook,
		},
		{
			name:     "top-level array",
			input:    `[]`,
			expected: ErrInvalidNotebook,
		},
		{
			name:     "missing nbformat",
			input:    `{"cells": [], "metadata": {}, "nbformat_minor": 0}`,
			expected: ErrInvalidNotebook,
		},
		{
			name:     "version 3",
			input:    `{"worksheets": [], "metadata": {}, "nbformat": 3, "nbformat_minor": 0}`,
			expected: ErrUnsupportedVersion,
		},
		{
			name:     "code cell without outputs",
			input:    `{"cells": [{"cell_type": "code", "execution_count": null, "metadata": {}, "source": ""}], "metadata": {}, "nbformat": 4, "nbformat_minor": 4}`,
			expected: ErrInvalidNotebook,
		},
		{
			name:     "unknown cell type",
			input:    `{"cells": [{"cell_type": "heading", "metadata": {}, "source": ""}], "metadata": {}, "nbformat": 4, "nbformat_minor": 4}`,
			expected: ErrInvalidNotebook,
		},
		{
			name:     "display data without data",
			input:    `{"cells": [{"cell_type": "code", "execution_count": null, "metadata": {}, "outputs": [{"output_type": "display_data", "metadata": {}}], "source": ""}], "metadata": {}, "nbformat": 4, "nbformat_minor": 4}`,
			expected: ErrInvalidNotebook,
		},
		{
			name:     "image payload not a string",
			input:    `{"cells": [{"cell_type": "code", "execution_count": null, "metadata": {}, "outputs": [{"output_type": "display_data", "data": {"image/png": 12}, "metadata": {}}], "source": ""}], "metadata": {}, "nbformat": 4, "nbformat_minor": 4}`,
			expected: ErrInvalidNotebook,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nb, err := Parse([]byte(tt.input))
			assert.Nil(t, nb)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(validNotebook), 0644))

	nb, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, nb.Cells, 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.ipynb"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestSchemaCompiles(t *testing.T) {
	sch, err := compileSchema()
	require.NoError(t, err)
	assert.NotNil(t, sch)
}
