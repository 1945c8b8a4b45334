// Command hclip compiles a text motion clip into an MCLP file next to it, reads
// the file back and dumps it to stdout in clip syntax.
//
// Usage:
//
//	hclip <motion.clip> [-logvecs|-quats] [-verbose]
//
// By default rotations are dumped as Euler degrees; -logvecs dumps log vector
// channels and -quats quaternion channels. Flags may follow the file name.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/mclip"
	"github.com/arloliu/mclip/format"
)

const usage = "hclip -[logvecs|quats] <motion.clip>"

type options struct {
	logVecs bool
	quats   bool
	verbose bool
	files   []string
}

func (o *options) dumpMode() format.DumpMode {
	switch {
	case o.logVecs:
		return format.DumpLogVecs
	case o.quats:
		return format.DumpQuats
	default:
		return format.DumpDefault
	}
}

// parseArgs accepts flags before and after positional arguments.
func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet("hclip", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.logVecs, "logvecs", false, "dump rotations as log vectors")
	fs.BoolVar(&opts.quats, "quats", false, "dump rotations as quaternions")
	fs.BoolVar(&opts.verbose, "verbose", false, "log compiler details to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}

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

	return opts, nil
}

// outputPath replaces a .clip extension with .mclp, or appends .mclp.
func outputPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".clip") {
		return path[:len(path)-len(".clip")] + ".mclp"
	}

	return path + ".mclp"
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return -1
	}
	if len(opts.files) < 1 {
		fmt.Fprintln(stderr, usage)
		return -1
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	mclip.SetLogger(logger)
	defer mclip.SetLogger(nil)

	if err := compile(opts.files[0], opts.dumpMode(), stdout, logger); err != nil {
		logger.Error("hclip failed", "error", err)
		return 1
	}

	return 0
}

func compile(path string, mode format.DumpMode, stdout io.Writer, logger *slog.Logger) error {
	data, err := mclip.CompileFile(path)
	if err != nil {
		return err
	}

	out := outputPath(path)
	if err := os.WriteFile(out, data, 0o644); err != nil { //nolint: gosec
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Info("clip compiled", "input", path, "output", out, "bytes", len(data))

	data, err = os.ReadFile(out)
	if err != nil {
		return fmt.Errorf("read %s: %w", out, err)
	}

	c, err := mclip.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}

	bw := bufio.NewWriter(stdout)
	if err := c.Dump(bw, mode); err != nil {
		return err
	}

	return bw.Flush()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
