package nbshrink

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/images"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

// imageMIMETypes lists the qualifying image types in preference order.
func imageMIMETypes() []string {
	return []string{"image/png", "image/jpeg"}
}

// ImageRecord describes one extracted image.
type ImageRecord struct {
	// Index is the counter value used in the file name.
	Index int
	// Path is the image file location.
	Path string
	// Link is the path written into the markdown reference.
	Link string
	// Cell is the index of the originating code cell in the input notebook.
	Cell int
	// SourceMIME is the data bundle key the image came from.
	SourceMIME string
	// DetectedMIME is the sniffed content type of the decoded payload.
	DetectedMIME string
	// OriginalBytes is the decoded payload size.
	OriginalBytes int
	// CompressedBytes is the JPEG file size.
	CompressedBytes int
	Width           int
	Height          int
	// Trimmed is set when the size budget removed the image reference.
	Trimmed bool
}

// Session holds the state of a single conversion run: the image counter,
// the removable pairs and the images written so far.
type Session struct {
	opts   Options
	logger *slog.Logger
	newID  func() string
	next   int
	pairs  []models.ReplacementRecord
	images []*ImageRecord
	passes []int64
}

// NewSession creates a session for opts.
func NewSession(opts Options) *Session {
	return &Session{
		opts:   opts,
		logger: opts.logger(),
		newID:  newCellID,
	}
}

// Images returns the records of every image extracted so far, in counter
// order, trimmed ones included.
func (s *Session) Images() []*ImageRecord {
	return s.images
}

// Pairs returns the removable pairs still present in the notebook.
func (s *Session) Pairs() []models.ReplacementRecord {
	return s.pairs
}

// Passes returns the serialized size of every write, in order.
func (s *Session) Passes() []int64 {
	return s.passes
}

// newCellID mimics the Jupyter id format: 8 lowercase hex characters.
func newCellID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// imageLink returns path relative to the output notebook directory with
// forward slashes, so it resolves from the notebook location.
func (s *Session) imageLink(path string) (string, error) {
	base, err := filepath.Abs(filepath.Dir(s.opts.OutputPath))
	if err != nil {
		return "", err
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (s *Session) ensureImageDir() error {
	if err := os.MkdirAll(s.opts.ImageDir, 0755); err != nil {
		return &WriteError{Path: s.opts.ImageDir, Err: err}
	}
	return nil
}

func (s *Session) imagePath(n int) string {
	return filepath.Join(s.opts.ImageDir, fmt.Sprintf("img_%d.%s", n, images.Ext))
}
