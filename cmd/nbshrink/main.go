// Package main provides the CLI entry point for nbshrink.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/nbshrink-go/pkg/nbshrink"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cliFlags holds the raw flag values; only flags the user set override the
// config file.
type cliFlags struct {
	configPath      string
	outputPath      string
	imageDir        string
	maxSizeMB       float64
	jpegQuality     int
	maxDimension    int
	clearAllOutputs bool
	keepCodeOnTrim  bool
	pruneOrphans    bool
	reportPath      string
	verbose         bool
}

func newRootCmd() *cobra.Command {
	var flags cliFlags
	defaults := nbshrink.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "nbshrink [notebook.ipynb]",
		Short: "Move notebook output images into small JPEG files",
		Long: `nbshrink re-encodes images embedded in notebook outputs as JPEG files,
links them from markdown cells and drops the newest images until the
notebook fits the size budget.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML config file")
	f.StringVarP(&flags.outputPath, "output", "o", defaults.OutputPath, "Output notebook path")
	f.StringVar(&flags.imageDir, "image-dir", defaults.ImageDir, "Directory for extracted images")
	f.Float64Var(&flags.maxSizeMB, "max-size-mb", defaults.MaxSizeMB, "Size budget of the output notebook in MB")
	f.IntVar(&flags.jpegQuality, "jpeg-quality", defaults.JPEGQuality, "JPEG quality (1-100)")
	f.IntVar(&flags.maxDimension, "max-dimension", 0, "Downscale images so the longest side fits (0: keep size)")
	f.BoolVar(&flags.clearAllOutputs, "clear-all-outputs", false, "Clear every output of a cell whose image was extracted")
	f.BoolVar(&flags.keepCodeOnTrim, "keep-code-on-trim", false, "Keep the code cell when trimming an image reference")
	f.BoolVar(&flags.pruneOrphans, "prune-orphans", false, "Delete image files whose reference was trimmed")
	f.StringVar(&flags.reportPath, "report", "", "Write an xlsx run report to this path")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log every trim step")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, flags cliFlags) error {
	opts, err := resolveOptions(cmd, args, flags)
	if err != nil {
		return err
	}
	opts.Logger = newLogger(cmd.ErrOrStderr(), flags.verbose)

	res, err := nbshrink.Compress(opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Compressed notebook saved to: %s\n", res.OutputPath)
	fmt.Fprintf(out, "Final size: %.2f MB\n", res.SizeMB())
	return nil
}

// resolveOptions layers defaults, the config file, explicitly set flags and
// the positional input path, in that order.
func resolveOptions(cmd *cobra.Command, args []string, flags cliFlags) (nbshrink.Options, error) {
	opts := nbshrink.DefaultOptions()
	if flags.configPath != "" {
		loaded, err := nbshrink.LoadOptions(flags.configPath, opts)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	changed := cmd.Flags().Changed
	if changed("output") {
		opts.OutputPath = flags.outputPath
	}
	if changed("image-dir") {
		opts.ImageDir = flags.imageDir
	}
	if changed("max-size-mb") {
		opts.MaxSizeMB = flags.maxSizeMB
	}
	if changed("jpeg-quality") {
		opts.JPEGQuality = flags.jpegQuality
	}
	if changed("max-dimension") {
		opts.MaxDimension = flags.maxDimension
	}
	if changed("clear-all-outputs") {
		opts.ClearAllOutputs = flags.clearAllOutputs
	}
	if changed("keep-code-on-trim") {
		opts.KeepCodeOnTrim = flags.keepCodeOnTrim
	}
	if changed("prune-orphans") {
		opts.PruneOrphans = flags.pruneOrphans
	}
	if changed("report") {
		opts.ReportPath = flags.reportPath
	}
	if len(args) == 1 {
		opts.InputPath = args[0]
	}
	return opts, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
