package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"plc/interpreter-go/pkg/driver"
	"plc/interpreter-go/pkg/logs"
)

const cliToolVersion = "plc 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// session carries what every subcommand needs: the logger, the nearby
// manifest (if any) and the pipeline.
type session struct {
	ctx      context.Context
	manifest *driver.Manifest
	logger   *slog.Logger
	pipeline *driver.Pipeline
}

func run(args []string) int {
	args, logLevel, err := splitGlobalFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		printUsage()
		return 1
	}
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	s, closer, err := newSession(ctx, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closer.Close()

	switch args[0] {
	case "run":
		return s.runEntry(args[1:])
	case "check":
		return s.runCheck(args[1:])
	case "gen":
		return s.runGen(args[1:])
	case "tokens":
		return s.runTokens(args[1:])
	default:
		if looksLikePathCandidate(args[0]) {
			return s.runEntry(args)
		}
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", args[0])
		printUsage()
		return 1
	}
}

// splitGlobalFlags strips leading --log-level options.
func splitGlobalFlags(args []string) ([]string, string, error) {
	level := ""
	for len(args) > 0 {
		arg := args[0]
		switch {
		case arg == "--log-level":
			if len(args) < 2 {
				return nil, "", errors.New("--log-level requires a value")
			}
			level = args[1]
			args = args[2:]
		case strings.HasPrefix(arg, "--log-level="):
			level = strings.TrimPrefix(arg, "--log-level=")
			args = args[1:]
		default:
			return args, level, nil
		}
	}
	return args, level, nil
}

func newSession(ctx context.Context, logLevel string) (*session, io.Closer, error) {
	manifest, err := loadManifestFrom(".")
	if err != nil && !errors.Is(err, driver.ErrManifestNotFound) {
		fmt.Fprintf(os.Stderr, "warning: unable to load manifest (%v)\n", err)
	}
	opts := logs.Options{Writer: os.Stderr}
	if manifest != nil {
		opts.Level = manifest.Log.Level
		opts.Format = manifest.Log.Format
		opts.File = manifest.Log.File
		opts.Journal = manifest.Log.Journal
	}
	if logLevel != "" {
		opts.Level = logLevel
	}
	logger, closer, err := logs.New(opts)
	if err != nil {
		return nil, nil, err
	}
	s := &session{
		ctx:      ctx,
		manifest: manifest,
		logger:   logger,
		pipeline: &driver.Pipeline{Logger: logger},
	}
	return s, closer, nil
}

func loadManifestFrom(start string) (*driver.Manifest, error) {
	path, err := driver.FindManifest(start)
	if err != nil {
		return nil, err
	}
	return driver.LoadManifest(path)
}

func looksLikePathCandidate(arg string) bool {
	if arg == "" {
		return false
	}
	if strings.Contains(arg, "/") || strings.Contains(arg, "\\") || strings.Contains(arg, string(os.PathSeparator)) {
		return true
	}
	return filepath.Ext(arg) == ".plc" || strings.HasPrefix(arg, ".")
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  plc [--log-level L] run [target | file.plc]")
	fmt.Fprintln(os.Stderr, "  plc [--log-level L] check <file.plc>")
	fmt.Fprintln(os.Stderr, "  plc [--log-level L] gen <file.plc> [-o out.java] [--class Name]")
	fmt.Fprintln(os.Stderr, "  plc tokens <file.plc>")
	fmt.Fprintln(os.Stderr, "  plc --help | --version")
}
