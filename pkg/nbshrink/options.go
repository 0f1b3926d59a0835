// Package nbshrink moves embedded notebook images into external JPEG files
// and trims the rewritten notebook to a size budget.
package nbshrink

import (
	"fmt"
	"log/slog"
)

const (
	// DefaultInputPath is the notebook read when no input is given.
	DefaultInputPath = "transforms_illustrations.ipynb"
	// DefaultOutputPath is where the compressed notebook is written.
	DefaultOutputPath = "transforms_illustrations_compressed.ipynb"
	// DefaultImageDir holds the extracted JPEG files.
	DefaultImageDir = "notebook_images"
	// DefaultMaxSizeMB is the size budget of the output notebook.
	DefaultMaxSizeMB = 3.0
	// DefaultJPEGQuality favors small files over fidelity.
	DefaultJPEGQuality = 50
)

// Options configures a compression run.
type Options struct {
	// InputPath is the source notebook.
	InputPath string `yaml:"input_path"`
	// OutputPath is the destination notebook.
	OutputPath string `yaml:"output_path"`
	// ImageDir is the directory receiving img_<n>.jpg files.
	ImageDir string `yaml:"image_dir"`
	// MaxSizeMB is the budget checked by the trim loop (1 MB = 1024*1024 bytes).
	MaxSizeMB float64 `yaml:"max_size_mb"`
	// JPEGQuality is the re-encoding quality, 1 to 100.
	JPEGQuality int `yaml:"jpeg_quality"`
	// MaxDimension caps the longest image side in pixels. Zero keeps the
	// original dimensions.
	MaxDimension int `yaml:"max_dimension"`
	// ClearAllOutputs empties the whole output list of a cell whose image
	// was extracted. By default only the extracted output is removed.
	ClearAllOutputs bool `yaml:"clear_all_outputs"`
	// KeepCodeOnTrim makes the trim loop drop only the image reference cell
	// and keep the output-stripped code cell.
	KeepCodeOnTrim bool `yaml:"keep_code_on_trim"`
	// PruneOrphans deletes image files whose reference was trimmed.
	// By default they stay in ImageDir.
	PruneOrphans bool `yaml:"prune_orphans"`
	// ReportPath, when set, receives an xlsx summary of the run.
	ReportPath string `yaml:"report_path"`
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{
		InputPath:   DefaultInputPath,
		OutputPath:  DefaultOutputPath,
		ImageDir:    DefaultImageDir,
		MaxSizeMB:   DefaultMaxSizeMB,
		JPEGQuality: DefaultJPEGQuality,
	}
}

// Validate reports the first invalid setting.
func (o Options) Validate() error {
	switch {
	case o.InputPath == "":
		return fmt.Errorf("%w: input path is empty", ErrInvalidOptions)
	case o.OutputPath == "":
		return fmt.Errorf("%w: output path is empty", ErrInvalidOptions)
	case o.ImageDir == "":
		return fmt.Errorf("%w: image directory is empty", ErrInvalidOptions)
	case o.MaxSizeMB < 0:
		return fmt.Errorf("%w: max size %.2f MB is negative", ErrInvalidOptions, o.MaxSizeMB)
	case o.JPEGQuality < 1 || o.JPEGQuality > 100:
		return fmt.Errorf("%w: jpeg quality %d is outside 1-100", ErrInvalidOptions, o.JPEGQuality)
	case o.MaxDimension < 0:
		return fmt.Errorf("%w: max dimension %d is negative", ErrInvalidOptions, o.MaxDimension)
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
