// Package images re-encodes embedded notebook images as small JPEG files.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Ext is the file extension of every re-encoded image.
const Ext = "jpg"

// ErrInvalidPayload indicates the base64 payload could not be decoded.
var ErrInvalidPayload = errors.New("invalid base64 payload")

// Params controls re-encoding.
type Params struct {
	// Quality is the JPEG quality, 1 to 100.
	Quality int
	// MaxDimension caps the longest side in pixels. Zero disables scaling.
	MaxDimension int
}

// Result is a re-encoded image.
type Result struct {
	// Data holds the JPEG bytes.
	Data []byte
	// SourceMIME is the detected content type of the decoded payload.
	SourceMIME string
	// OriginalBytes is the size of the decoded payload.
	OriginalBytes int
	// Width and Height are the dimensions of the written JPEG.
	Width  int
	Height int
}

// Recompress decodes a base64 image payload, flattens it to opaque RGB and
// encodes it as JPEG.
func Recompress(payload string, params Params) (*Result, error) {
	raw, err := DecodePayload(payload)
	if err != nil {
		return nil, err
	}

	mt := mimetype.Detect(raw)
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mt.String(), err)
	}

	rgb := Downscale(ToRGB(img), params.MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: params.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	b := rgb.Bounds()
	return &Result{
		Data:          buf.Bytes(),
		SourceMIME:    mt.String(),
		OriginalBytes: len(raw),
		Width:         b.Dx(),
		Height:        b.Dy(),
	}, nil
}

// DecodePayload decodes standard base64, ignoring embedded whitespace.
func DecodePayload(payload string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, payload)
	if clean == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}

	raw, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return raw, nil
}
