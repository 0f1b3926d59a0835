package nbshrink

import (
	"fmt"
	"os"

	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/images"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
)

// Extract rewrites nb.Cells, moving the first qualifying image output of
// each code cell into the image directory and inserting a markdown cell
// that links to it right after the code cell. Other cells pass through
// unchanged.
func (s *Session) Extract(nb *models.Notebook) error {
	if err := s.ensureImageDir(); err != nil {
		return err
	}

	cells := make([]*models.Cell, 0, len(nb.Cells))
	for i, cell := range nb.Cells {
		pos, mime, ok := findImageOutput(cell)
		if !ok {
			cells = append(cells, cell)
			continue
		}

		rec, err := s.storeImage(i, cell.Outputs[pos], mime)
		if err != nil {
			return err
		}

		if s.opts.ClearAllOutputs {
			cell.Outputs = []models.Output{}
		} else {
			cell.Outputs = removeOutput(cell.Outputs, pos)
		}

		id := ""
		if nb.NBFormatMinor >= 5 {
			id = s.newID()
		}
		ref := models.NewMarkdownCell(fmt.Sprintf("![output image](%s)", rec.Link), id)

		cells = append(cells, cell, ref)
		s.pairs = append(s.pairs, models.ReplacementRecord{Index: len(cells) - 2, Image: rec.Index})

		s.logger.Info("extracted image",
			"cell", i,
			"file", rec.Path,
			"mime", mime,
			"original_bytes", rec.OriginalBytes,
			"jpeg_bytes", rec.CompressedBytes)
	}

	nb.Cells = cells
	return nil
}

// findImageOutput returns the position and MIME type of the first
// display_data output carrying a qualifying image.
func findImageOutput(cell *models.Cell) (int, string, bool) {
	if !cell.HasOutputs() {
		return 0, "", false
	}
	for i, out := range cell.Outputs {
		if out.OutputType() != models.OutputDisplayData {
			continue
		}
		if mime, ok := out.FirstMIME(imageMIMETypes()...); ok {
			return i, mime, true
		}
	}
	return 0, "", false
}

// removeOutput returns a copy of outputs without the element at pos.
func removeOutput(outputs []models.Output, pos int) []models.Output {
	kept := make([]models.Output, 0, len(outputs)-1)
	kept = append(kept, outputs[:pos]...)
	return append(kept, outputs[pos+1:]...)
}

// storeImage re-encodes one payload and writes it under the next counter
// value.
func (s *Session) storeImage(cell int, out models.Output, mime string) (*ImageRecord, error) {
	payload, err := out.Payload(mime)
	if err != nil {
		return nil, &DecodeError{Cell: cell, MIME: mime, Err: err}
	}

	res, err := images.Recompress(payload, images.Params{
		Quality:      s.opts.JPEGQuality,
		MaxDimension: s.opts.MaxDimension,
	})
	if err != nil {
		return nil, &DecodeError{Cell: cell, MIME: mime, Err: err}
	}

	path := s.imagePath(s.next)
	link, err := s.imageLink(path)
	if err != nil {
		return nil, fmt.Errorf("failed to compute image link: %w", err)
	}

	if err := os.WriteFile(path, res.Data, 0644); err != nil {
		return nil, &WriteError{Path: path, Err: err}
	}

	rec := &ImageRecord{
		Index:           s.next,
		Path:            path,
		Link:            link,
		Cell:            cell,
		SourceMIME:      mime,
		DetectedMIME:    res.SourceMIME,
		OriginalBytes:   res.OriginalBytes,
		CompressedBytes: len(res.Data),
		Width:           res.Width,
		Height:          res.Height,
	}
	s.images = append(s.images, rec)
	s.next++
	return rec, nil
}
