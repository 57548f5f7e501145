// Package commands implements the hidconf CLI commands.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hidconf/hidconf-go/pkg/catalog"
	"github.com/hidconf/hidconf-go/pkg/codec"
	"github.com/hidconf/hidconf-go/pkg/convert"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/log"
	"github.com/hidconf/hidconf-go/pkg/option"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// commonFlags are accepted by every command that touches the catalog.
type commonFlags struct {
	catalog  string
	logLevel string
	capture  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.catalog, "catalog", "", "Catalog YAML file (default: built-in nRF Desktop catalog)")
	fs.StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.StringVar(&c.capture, "capture", "", "Append codec events to a .clog capture file")
}

func (c *commonFlags) loadCatalog() (*catalog.Catalog, error) {
	if c.catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(c.catalog)
}

// newCodec builds a codec over the selected catalog, logging events to
// stderr through slog and optionally to a capture file. The returned
// function closes the capture file.
func (c *commonFlags) newCodec(stderr io.Writer) (*codec.Codec, func(), error) {
	cat, err := c.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	logger, closeFn, err := c.eventLogger(stderr)
	if err != nil {
		return nil, nil, err
	}
	return codec.New(cat, codec.WithLogger(logger)), closeFn, nil
}

func (c *commonFlags) eventLogger(stderr io.Writer) (log.Logger, func(), error) {
	level, err := parseLevel(c.logLevel)
	if err != nil {
		return nil, nil, err
	}
	console := log.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	if c.capture == "" {
		return console, func() {}, nil
	}
	file, err := log.NewFileLogger(c.capture)
	if err != nil {
		return nil, nil, err
	}
	return log.NewMultiLogger(console, file), func() { _ = file.Close() }, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// exitFor maps an error to an exit code: value and payload problems are
// validation failures, everything else is a command error.
func exitFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, option.ErrRange),
		errors.Is(err, option.ErrValueKind),
		errors.Is(err, option.ErrUnexpectedValue),
		errors.Is(err, layout.ErrMissingMember),
		errors.Is(err, layout.ErrLayoutSize),
		errors.Is(err, convert.ErrNoEncoder),
		errors.Is(err, convert.ErrChannel),
		errors.Is(err, convert.ErrInput):
		return exitValidation
	default:
		return exitCommandError
	}
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFor(err)
}

func newFlagSet(name, usage string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "hidconf %s - %s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

// parseFlags parses args, allowing flags after positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// flagExit returns the exit code for a flag parse error.
func flagExit(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return exitSuccess
	}
	return exitCommandError
}
