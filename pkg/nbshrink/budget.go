package nbshrink

import (
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/output"
)

// Serialize writes nb to the output path and returns the file size.
func (s *Session) Serialize(nb *models.Notebook) (int64, error) {
	size, err := output.WriteFile(s.opts.OutputPath, nb)
	if err != nil {
		return 0, &WriteError{Path: s.opts.OutputPath, Err: err}
	}
	s.passes = append(s.passes, size)
	return size, nil
}

// Enforce serializes nb, then removes the most recently added image pair
// and serializes again for as long as the file exceeds the budget and pairs
// remain. It returns the final file size. Running out of pairs while still
// over budget is not an error.
func (s *Session) Enforce(nb *models.Notebook) (int64, error) {
	size, err := s.Serialize(nb)
	if err != nil {
		return 0, err
	}

	for BytesToMB(size) > s.opts.MaxSizeMB && len(s.pairs) > 0 {
		pair := s.pairs[len(s.pairs)-1]
		s.pairs = s.pairs[:len(s.pairs)-1]

		if err := s.trim(nb, pair); err != nil {
			return 0, err
		}

		s.logger.Debug("over budget, trimmed image",
			"size_mb", BytesToMB(size),
			"budget_mb", s.opts.MaxSizeMB,
			"image", pair.Image,
			"cell", pair.Index)

		if size, err = s.Serialize(nb); err != nil {
			return 0, err
		}
	}

	if BytesToMB(size) > s.opts.MaxSizeMB {
		s.logger.Warn("size budget not met, nothing left to trim",
			"size_mb", BytesToMB(size),
			"budget_mb", s.opts.MaxSizeMB)
	}
	return size, nil
}

// trim removes one pair from nb. Pairs are removed newest first, so the
// indexes of the remaining pairs stay valid.
func (s *Session) trim(nb *models.Notebook, pair models.ReplacementRecord) error {
	if s.opts.KeepCodeOnTrim {
		nb.Cells = slices.Delete(nb.Cells, pair.Index+1, pair.Index+2)
	} else {
		nb.Cells = slices.Delete(nb.Cells, pair.Index, pair.Index+2)
	}

	rec := s.images[pair.Image]
	rec.Trimmed = true

	if !s.opts.PruneOrphans {
		return nil
	}
	if err := os.Remove(rec.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &WriteError{Path: rec.Path, Err: err}
	}
	return nil
}
