// Command mlib bundles text motion clips into one MLIB clip library.
//
// Usage:
//
//	mlib -o out.mlib [-compress none|zstd|s2|lz4] [-no-checksum] [-verbose] a.clip b.clip ...
//
// Each clip is stored under its file name without extension.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arloliu/mclip"
	"github.com/arloliu/mclip/format"
	"github.com/arloliu/mclip/library"
)

type options struct {
	output      string
	compression string
	noChecksum  bool
	verbose     bool
	files       []string
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("mlib", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.output, "o", "", "output library path (required)")
	fs.StringVar(&opts.compression, "compress", "zstd", "payload compression: none, zstd, s2 or lz4")
	fs.BoolVar(&opts.noChecksum, "no-checksum", false, "omit per-clip checksums")
	fs.BoolVar(&opts.verbose, "verbose", false, "log compiler details to stderr")

	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		opts.files = append(opts.files, args[0])
		args = args[1:]
	}

	if opts.output == "" {
		return nil, errors.New("missing -o output path")
	}
	if len(opts.files) == 0 {
		return nil, errors.New("no input clips")
	}

	return opts, nil
}

func run(args []string, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 2
	}

	ct, ok := format.ParseCompression(opts.compression)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown compression %q\n", opts.compression)
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	mclip.SetLogger(logger)
	defer mclip.SetLogger(nil)

	if err := build(opts, ct, logger); err != nil {
		logger.Error("mlib failed", "error", err)
		return 1
	}

	return 0
}

func build(opts *options, ct format.CompressionType, logger *slog.Logger) error {
	w, err := mclip.NewLibraryWriter(
		library.WithCompression(ct),
		library.WithChecksums(!opts.noChecksum),
	)
	if err != nil {
		return err
	}

	for _, path := range opts.files {
		if err := w.AddFile(path); err != nil {
			return err
		}
	}

	data, err := w.Finish()
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("write %s: %w", opts.output, err)
	}

	stats := w.Stats()
	logger.Info("library written",
		"output", opts.output,
		"clips", w.Len(),
		"nodes", len(w.NodeNames()),
		"compression", ct.String(),
		"payload", stats.OriginalSize,
		"packed", stats.CompressedSize,
		"savings", fmt.Sprintf("%.1f%%", stats.SpaceSavings()),
		"bytes", len(data),
	)

	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
