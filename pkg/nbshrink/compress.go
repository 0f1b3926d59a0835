package nbshrink

import (
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/models"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink/parser"
)

// Result summarizes a compression run.
type Result struct {
	// InputPath is the notebook that was read.
	InputPath string
	// OutputPath is the notebook that was written.
	OutputPath string
	// Bytes is the final output size.
	Bytes int64
	// BudgetMB is the size budget the run was checked against.
	BudgetMB float64
	// Passes lists the output size after each serialization.
	Passes []int64
	// Images lists every extracted image, trimmed ones included.
	Images []*ImageRecord
	// Notebook is the final document.
	Notebook *models.Notebook
}

// SizeMB returns the final output size in megabytes.
func (r *Result) SizeMB() float64 {
	return BytesToMB(r.Bytes)
}

// BudgetMet reports whether the final size is within the budget.
func (r *Result) BudgetMet() bool {
	return r.SizeMB() <= r.BudgetMB
}

// Trimmed returns the number of images whose reference was removed.
func (r *Result) Trimmed() int {
	n := 0
	for _, img := range r.Images {
		if img.Trimmed {
			n++
		}
	}
	return n
}

// Load reads the notebook at path. Failures are returned as *ParseError.
func Load(path string) (*models.Notebook, error) {
	nb, err := parser.Load(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return nb, nil
}

// Compress runs the whole pipeline: load the input notebook, extract its
// images, write the output notebook and trim it to the size budget. When
// opts.ReportPath is set a workbook describing the run is written last.
func Compress(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.logger()

	nb, err := Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded notebook", "path", opts.InputPath, "cells", len(nb.Cells))

	s := NewSession(opts)
	if err := s.Extract(nb); err != nil {
		return nil, err
	}

	size, err := s.Enforce(nb)
	if err != nil {
		return nil, err
	}

	res := &Result{
		InputPath:  opts.InputPath,
		OutputPath: opts.OutputPath,
		Bytes:      size,
		BudgetMB:   opts.MaxSizeMB,
		Passes:     s.Passes(),
		Images:     s.Images(),
		Notebook:   nb,
	}
	logger.Info("compressed notebook",
		"output", res.OutputPath,
		"size_mb", res.SizeMB(),
		"images", len(res.Images),
		"trimmed", res.Trimmed(),
		"passes", len(res.Passes))

	if opts.ReportPath != "" {
		if err := WriteReport(opts.ReportPath, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}
