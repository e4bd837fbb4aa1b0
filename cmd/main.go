package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/minuteman3/icdump/internal/config"
	"github.com/minuteman3/icdump/internal/dump"
	"github.com/minuteman3/icdump/internal/logging"
	"github.com/minuteman3/icdump/internal/source"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = -1
	exitPath    = -2
)

func printHelp(w io.Writer, prog string) {
	helpText := `
icdump - Print instance counter logs

Usage:
  %[1]s [flags] file

Flags:
  --config=FILE         Path to configuration file (default: ~/.icdump.ini)
  --tz=ZONE             Time zone for timestamps, e.g. UTC (default: Local)
  --format=FORMAT       Output format: text or json (default: text)
  --compression=CODEC   Input codec: none, auto, gzip, zstd, lz4, snappy (default: none)
  --log-level=LEVEL     Diagnostic log level (default: warn)
  --log-file=FILE       Write diagnostics to a rotated file instead of stderr
  --help                Display this help message

Configuration file format (.ini):
  [dump]
  timezone = UTC
  format = text
  compression = none

  [log]
  level = warn
  file = /var/log/icdump.log
  max_size_mb = 10
  max_backups = 3

Example:
  %[1]s counts.bin
  %[1]s --tz=UTC --format=json counts.bin
  %[1]s --compression=auto counts.bin.zst
`
	fmt.Fprintf(w, helpText, prog)
}

func usage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s file\n", prog)
}

func fail(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprint(w, "Error: ")
	fmt.Fprintln(w, err)
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := filepath.Base(args[0])

	// Define command line flags
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}
	configFile := fs.String("config", config.DefaultPath(), "Path to configuration file")
	help := fs.Bool("help", false, "Display help message")
	tz := fs.String("tz", "", "Time zone for timestamps")
	format := fs.String("format", "", "Output format (text, json)")
	compression := fs.String("compression", "", "Input codec (none, auto, gzip, zstd, lz4, snappy)")
	logLevel := fs.String("log-level", "", "Diagnostic log level")
	logFile := fs.String("log-file", "", "Diagnostic log file")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			printHelp(stdout, prog)
			return exitOK
		}
		usage(stdout, prog)
		return exitUsage
	}
	if *help {
		printHelp(stdout, prog)
		return exitOK
	}

	// Validate input before anything is opened
	if fs.NArg() != 1 {
		usage(stdout, prog)
		return exitUsage
	}
	path := fs.Arg(0)
	if _, err := source.Stat(path); err != nil {
		usage(stdout, prog)
		return exitPath
	}

	// Load config from file
	cfg, err := config.Load(*configFile)
	if err != nil {
		fail(stderr, err)
		return exitFailure
	}

	// Override config with command line flags if provided
	if *tz != "" {
		cfg.Timezone = *tz
	}
	if *format != "" {
		cfg.Format = *format
	}
	if *compression != "" {
		cfg.Compression = *compression
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	loc, err := cfg.Location()
	if err != nil {
		fail(stderr, err)
		return exitFailure
	}
	formatter, err := dump.NewFormatter(cfg.Format, loc)
	if err != nil {
		fail(stderr, err)
		return exitFailure
	}
	codec, err := source.ParseCompression(cfg.Compression)
	if err != nil {
		fail(stderr, err)
		return exitFailure
	}
	logger, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		fail(stderr, err)
		return exitFailure
	}
	defer func() {
		_ = logger.Sync()
	}()

	d := &dump.Dumper{Formatter: formatter, Logger: logger}
	if _, err := d.DumpFile(stdout, path, codec); err != nil {
		fail(stderr, err)
		return exitFailure
	}
	return exitOK
}
