// Command dryc compiles a directory of DRY documents into a game file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/reoring/dryc"
	"github.com/reoring/dryc/document"
	"github.com/reoring/dryc/i18n"
	"github.com/reoring/dryc/internal/ctxlog"
	"github.com/reoring/dryc/project"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `dryc - compile DRY narrative documents

Usage:
  dryc compile [options] [DIR]   compile DIR into a game file
  dryc check [options] [DIR]     validate DIR without writing output
  dryc parse FILE                print one document's normalized form
  dryc schema info|scene         print the JSON Schema of a document kind

Run 'dryc compile -h' for options.
`)
}

func run(ctx context.Context, stdout, stderr io.Writer, args []string) error {
	if len(args) < 1 {
		usage(stderr)
		return &ExitError{Code: 2}
	}
	switch args[0] {
	case "compile":
		return compileCmd(ctx, stdout, stderr, args[1:], true)
	case "check":
		return compileCmd(ctx, stdout, stderr, args[1:], false)
	case "parse":
		return parseCmd(stdout, stderr, args[1:])
	case "schema":
		return schemaCmd(stdout, stderr, args[1:])
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", args[0])}
	}
}

// loadConfig parses the shared build flags and layers them over the config
// file and environment.
func loadConfig(name string, stderr io.Writer, args []string) (project.Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	output := fs.String("o", "", "output file ('-' for stdout)")
	logLevel := fs.String("log-level", "", "logging level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log output format: text or json")
	workers := fs.Int("workers", 0, "number of files processed concurrently")
	lang := fs.String("lang", "", "language of error labels: en or ja")
	indent := fs.Int("indent", 0, "spaces per indentation level; 0 for compact output")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return project.Config{}, &ExitError{Code: 0}
		}
		return project.Config{}, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := project.LoadConfig(*configPath)
	if err != nil {
		return project.Config{}, &ExitError{Code: 2, Message: err.Error()}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *output
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-format":
			cfg.LogFormat = *logFormat
		case "workers":
			cfg.Workers = *workers
		case "lang":
			cfg.Lang = *lang
		case "indent":
			cfg.Indent = *indent
		}
	})
	if fs.NArg() > 0 {
		cfg.Source = fs.Arg(0)
	}
	if err := cfg.Check(); err != nil {
		return project.Config{}, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, nil
}

func compileCmd(ctx context.Context, stdout, stderr io.Writer, args []string, write bool) error {
	name := "check"
	if write {
		name = "compile"
	}
	cfg, err := loadConfig(name, stderr, args)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Code == 0 {
			return nil
		}
		return err
	}
	logger := project.NewLogger(cfg, stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	game, err := project.Load(ctx, cfg)
	if err != nil {
		return describe(cfg.Lang, err)
	}
	if !write {
		logger.Info("project is valid", "source", cfg.Source)
		return nil
	}

	if cfg.Output == "-" {
		return project.Write(stdout, game, cfg.Indent)
	}
	f, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := project.Write(f, game, cfg.Indent); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logger.Info("wrote game", "output", cfg.Output)
	return nil
}

func parseCmd(stdout, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lang := fs.String("lang", "en", "language of error labels: en or ja")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() != 1 {
		return &ExitError{Code: 2, Message: "usage: dryc parse FILE"}
	}
	m, err := project.NormalizeFile(fs.Arg(0))
	if err != nil {
		return describe(*lang, err)
	}
	return project.Write(stdout, m, 2)
}

func schemaCmd(stdout, stderr io.Writer, args []string) error {
	if len(args) != 1 {
		return &ExitError{Code: 2, Message: "usage: dryc schema info|scene"}
	}
	s, ok := document.JSONSchema(args[0])
	if !ok {
		return &ExitError{Code: 2, Message: fmt.Sprintf("unknown document kind %q", args[0])}
	}
	return project.Write(stdout, s, 2)
}

// describe prefixes document errors with the translated label of their code.
func describe(lang string, err error) error {
	e, ok := dryc.AsError(err)
	if !ok {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	label := i18n.New(lang).Label(e.Code)
	return &ExitError{Code: 1, Message: fmt.Sprintf("%s: %v", label, err)}
}
