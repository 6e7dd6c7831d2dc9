// Package compiler loads XML Schema documents and runs code generation
// over them.
package compiler

import (
	"fmt"

	"github.com/syssam/xsdgen/compiler/gen"
	"github.com/syssam/xsdgen/compiler/gen/golang"
	"github.com/syssam/xsdgen/compiler/load"
)

// Option configures Generate.
type Option func(*options)

type options struct {
	generate func(*gen.Graph) error
}

// Generator sets the function rendering the resolved graph. It defaults
// to golang.Generate.
func Generator(fn func(*gen.Graph) error) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// LoadGraph loads the schema document at schemaPath and resolves it.
func LoadGraph(schemaPath string, cfg *gen.Config) (*gen.Graph, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "config cannot be nil")
	}
	s, err := load.ParseFile(schemaPath, load.WithLogger(cfg.Log()))
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGraph(cfg, s)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", schemaPath, err)
	}
	return g, nil
}

// Generate loads the schema document at schemaPath and writes the Go
// package describing it under cfg.Target.
//
//	cfg, err := gen.NewConfig(gen.WithTarget("./po"))
//	if err != nil {
//		return err
//	}
//	err = compiler.Generate("./po.xsd", cfg)
func Generate(schemaPath string, cfg *gen.Config, opts ...Option) error {
	o := &options{generate: golang.Generate}
	for _, opt := range opts {
		opt(o)
	}
	g, err := LoadGraph(schemaPath, cfg)
	if err != nil {
		return err
	}
	return o.generate(g)
}
