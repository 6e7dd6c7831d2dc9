// Command xsdgen generates a Go package from an XML Schema document.
//
//	xsdgen [-config file] [-pkg name] [-out dir] [-watch] [-v] schema.xsd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/xsdgen/compiler"
	"github.com/syssam/xsdgen/compiler/gen"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runWithArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("xsdgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	pkg := fs.String("pkg", "", "package name of the generated code")
	out := fs.String("out", "", "output directory")
	watch := fs.Bool("watch", false, "regenerate when the schema changes")
	verbose := fs.Bool("v", false, "enable debug logging")
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: xsdgen [options] <schema.xsd>\n\n")
		_, _ = fmt.Fprintln(stderr, "Generates a Go package from an XML Schema document.")
		_, _ = fmt.Fprintln(stderr)
		_, _ = fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var (
		schemaPath string
		opts       []gen.Option
	)
	if *configPath != "" {
		fc, err := gen.ReadConfigFile(*configPath)
		if err != nil {
			logger.Error("loading config", "err", err)
			return 1
		}
		schemaPath = fc.Schema
		opts = append(opts, fc.Options()...)
	}
	switch rest := fs.Args(); {
	case len(rest) == 1:
		schemaPath = rest[0]
	case len(rest) > 1 || schemaPath == "":
		_, _ = fmt.Fprintln(stderr, "error: exactly one schema file argument is required")
		fs.Usage()
		return 2
	}
	if *pkg != "" {
		opts = append(opts, gen.WithPackage(*pkg))
	}
	if *out != "" {
		opts = append(opts, gen.WithTarget(*out))
	}
	opts = append(opts, gen.WithLogger(logger))

	cfg := &gen.Config{}
	if err := cfg.ApplyAll(opts...); err != nil {
		logger.Error("invalid configuration", "err", err)
		return 2
	}
	if cfg.Target == "" {
		_, _ = fmt.Fprintln(stderr, "error: -out or a config file target is required")
		fs.Usage()
		return 2
	}

	if err := compiler.Generate(schemaPath, cfg); err != nil {
		logger.Error("generating code", "schema", schemaPath, "err", err)
		if !*watch {
			return 1
		}
	} else {
		_, _ = fmt.Fprintf(stdout, "generated %s from %s\n", cfg.Target, schemaPath)
	}
	if !*watch {
		return 0
	}
	if err := watchSchema(ctx, schemaPath, logger, func() error {
		return compiler.Generate(schemaPath, cfg)
	}); err != nil {
		logger.Error("watching schema", "schema", schemaPath, "err", err)
		return 1
	}
	return 0
}

// watchSchema calls regen every time the schema file is written or
// replaced, until ctx is done. Regeneration errors are logged and the
// watch goes on.
func watchSchema(ctx context.Context, schemaPath string, logger *slog.Logger, regen func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors often replace the file, so the directory is watched.
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	logger.Info("watching schema", "schema", schemaPath)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("schema changed", "op", ev.Op.String())
			if err := regen(); err != nil {
				logger.Error("generating code", "schema", schemaPath, "err", err)
				continue
			}
			logger.Info("regenerated", "schema", schemaPath)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("watch events dropped", "err", err)
				continue
			}
			return err
		}
	}
}
