package nbshrink

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

func testImage(w, h int, seed int64) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(x * 255 / w),
				B: uint8(y * 255 / h),
				A: uint8(128 + rng.Intn(128)),
			})
		}
	}
	return img
}

func pngPayload(t *testing.T, seed int64) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage(48, 32, seed)))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func jpegPayload(t *testing.T, seed int64) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, testImage(48, 32, seed), &jpeg.Options{Quality: 90}))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func displayData(mime, payload string) map[string]any {
	return map[string]any{
		"output_type": "display_data",
		"data": map[string]any{
			mime:         payload,
			"text/plain": []any{"<Figure size 640x480 with 1 Axes>"},
		},
		"metadata": map[string]any{},
	}
}

func streamOutput(text string) map[string]any {
	return map[string]any{"output_type": "stream", "name": "stdout", "text": []any{text}}
}

func codeCell(source string, outputs ...map[string]any) map[string]any {
	list := make([]any, 0, len(outputs))
	for _, o := range outputs {
		list = append(list, o)
	}
	return map[string]any{
		"cell_type":       "code",
		"execution_count": nil,
		"metadata":        map[string]any{},
		"outputs":         list,
		"source":          source,
	}
}

func markdownCell(source string) map[string]any {
	return map[string]any{"cell_type": "markdown", "metadata": map[string]any{}, "source": source}
}

func notebookMap(minor int, cells ...map[string]any) map[string]any {
	list := make([]any, 0, len(cells))
	for _, c := range cells {
		list = append(list, c)
	}
	return map[string]any{
		"cells":          list,
		"metadata":       map[string]any{"kernelspec": map[string]any{"name": "python3"}},
		"nbformat":       4,
		"nbformat_minor": minor,
	}
}

func newNotebook(t *testing.T, minor int, cells ...map[string]any) *models.Notebook {
	t.Helper()
	nb, err := models.NotebookFromMap(notebookMap(minor, cells...))
	require.NoError(t, err)
	return nb
}

func writeNotebook(t *testing.T, path string, minor int, cells ...map[string]any) {
	t.Helper()
	data, err := json.Marshal(notebookMap(minor, cells...))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// testOptions lays out a run under a temp dir:
// in.ipynb, out/compressed.ipynb and images/.
func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "out"), 0755))

	opts := DefaultOptions()
	opts.InputPath = filepath.Join(dir, "in.ipynb")
	opts.OutputPath = filepath.Join(dir, "out", "compressed.ipynb")
	opts.ImageDir = filepath.Join(dir, "images")
	return opts
}

func cellsJSON(t *testing.T, cells []*models.Cell) string {
	t.Helper()
	data, err := json.Marshal(cells)
	require.NoError(t, err)
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
