package gen

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"gopkg.in/yaml.v3"
)

// DefaultRuntimePackage is the import path of the decoding runtime used by
// generated code.
const DefaultRuntimePackage = "github.com/syssam/xsdgen"

// Config holds the global codegen configuration.
type Config struct {
	// Package is the Go package name of the generated code. It defaults to
	// the base name of Target.
	Package string

	// Target is the directory the generated files are written to.
	Target string

	// Header is written at the top of every generated file in place of the
	// default "Code generated" line.
	Header string

	// RuntimePackage is the import path of the runtime imported by the
	// generated decoders.
	RuntimePackage string

	// Features enables optional codegen features.
	Features []Feature

	// Disabled lists features turned off although enabled by default.
	Disabled []string

	// Hooks wrap the generator, outermost last.
	Hooks []Hook

	// Workers bounds the number of files written in parallel.
	Workers int

	// Logger receives debug and progress records.
	Logger *slog.Logger
}

// FeatureEnabled reports if the given feature name is enabled.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	f, ok := FeatureByName(name)
	if !ok {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	if slices.Contains(c.Disabled, name) {
		return false, nil
	}
	for _, e := range c.Features {
		if e.Name == name {
			return true, nil
		}
	}
	return f.Default, nil
}

// PackageName returns the name of the generated package.
func (c *Config) PackageName() string {
	if c.Package != "" {
		return c.Package
	}
	if c.Target != "" {
		return filepath.Base(c.Target)
	}
	return "schema"
}

// Runtime returns the import path of the decoding runtime.
func (c *Config) Runtime() string {
	if c.RuntimePackage != "" {
		return c.RuntimePackage
	}
	return DefaultRuntimePackage
}

// Log returns the configured logger, or the default one.
func (c *Config) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// cleanup removes the output of disabled features.
func (c *Config) cleanup() error {
	if c.Target == "" {
		return nil
	}
	for _, f := range AllFeatures {
		if f.cleanup == nil {
			continue
		}
		if enabled, _ := c.FeatureEnabled(f.Name); !enabled {
			if err := f.cleanup(c); err != nil {
				return fmt.Errorf("cleanup %s: %w", f.Name, err)
			}
		}
	}
	return nil
}

type (
	// Generator is the interface that wraps the Generate method.
	Generator interface {
		// Generate generates the code for the given graph.
		Generate(*Graph) error
	}

	// The GenerateFunc type is an adapter to allow the use of ordinary
	// function as Generator. If f is a function with the appropriate
	// signature, GenerateFunc(f) is a Generator that calls f.
	GenerateFunc func(*Graph) error

	// Hook defines the "generate middleware". A function that gets a
	// Generator and returns a Generator. For example:
	//
	//	hook := func(next gen.Generator) gen.Generator {
	//		return gen.GenerateFunc(func(g *gen.Graph) error {
	//			fmt.Println("Graph:", g)
	//			return next.Generate(g)
	//		})
	//	}
	Hook func(Generator) Generator
)

// Generate calls f(g).
func (f GenerateFunc) Generate(g *Graph) error {
	return f(g)
}

// FileConfig is the YAML representation of a Config, as read by the
// command line tool.
type FileConfig struct {
	Schema   string   `yaml:"schema"`
	Package  string   `yaml:"package"`
	Target   string   `yaml:"target"`
	Header   string   `yaml:"header"`
	Runtime  string   `yaml:"runtime"`
	Features []string `yaml:"features"`
	Disable  []string `yaml:"disable"`
	Workers  int      `yaml:"workers"`
}

// ReadConfigFile decodes the YAML configuration stored at path.
func ReadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xsdgen: read config: %w", err)
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, fmt.Errorf("xsdgen: decode config %s: %w", path, err)
	}
	return fc, nil
}

// Options returns the options equivalent to the file configuration. Empty
// values are left out.
func (fc *FileConfig) Options() []Option {
	var opts []Option
	if fc.Package != "" {
		opts = append(opts, WithPackage(fc.Package))
	}
	if fc.Target != "" {
		opts = append(opts, WithTarget(fc.Target))
	}
	if fc.Header != "" {
		opts = append(opts, WithHeader(fc.Header))
	}
	if fc.Runtime != "" {
		opts = append(opts, WithRuntimePackage(fc.Runtime))
	}
	if len(fc.Features) > 0 {
		opts = append(opts, WithFeatureNames(fc.Features...))
	}
	if len(fc.Disable) > 0 {
		opts = append(opts, WithoutFeatures(fc.Disable...))
	}
	if fc.Workers != 0 {
		opts = append(opts, WithWorkers(fc.Workers))
	}
	return opts
}

// LoadConfigFile reads the YAML configuration stored at path and applies
// opts on top of it.
func LoadConfigFile(path string, opts ...Option) (*Config, error) {
	fc, err := ReadConfigFile(path)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := c.ApplyAll(append(fc.Options(), opts...)...); err != nil {
		return nil, err
	}
	return c, nil
}
