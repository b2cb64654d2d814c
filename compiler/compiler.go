// Package compiler runs a generation: it loads the configured schema,
// resolves the model graph, renders the configured formats and writes
// the files to the target directory.
package compiler

import (
	"context"
	"fmt"
	"time"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/gen/golang"
	"github.com/syssam/modelgen/compiler/gen/js"
	"github.com/syssam/modelgen/compiler/gen/sql"
	"github.com/syssam/modelgen/compiler/load"
)

// Result describes a completed generation.
type Result struct {
	Graph   *gen.Graph
	Files   []gen.Written
	Metrics gen.WriterMetrics
}

// Generators returns the generators of the configured formats, in
// configuration order.
func Generators(cfg *gen.Config) ([]gen.Generator, error) {
	var gens []gen.Generator
	for _, f := range cfg.FormatList() {
		switch f {
		case gen.FormatGo:
			gens = append(gens, golang.Generator())
		case gen.FormatJS:
			gens = append(gens, js.Generator())
		case gen.FormatSQL:
			gens = append(gens, sql.Generator())
		default:
			return nil, gen.NewConfigError("Formats", f, "unsupported format; use go, js, or sql")
		}
	}
	if len(gens) == 0 {
		return nil, gen.NewConfigError("Formats", nil, "no format selected")
	}
	return gens, nil
}

// LoadGraph loads the configured schema files and resolves their graph.
func LoadGraph(cfg *gen.Config) (*gen.Graph, error) {
	if len(cfg.Schema) == 0 {
		return nil, gen.NewConfigError("Schema", nil, "no schema file or directory")
	}
	start := time.Now()
	reg, err := (&load.Config{Paths: cfg.Schema}).Load()
	if err != nil {
		return nil, err
	}
	cfg.Logger.Debug().Int("types", reg.Len()).Dur("took", time.Since(start)).Msg("schema loaded")
	return gen.NewGraph(cfg, reg)
}

// Generate runs a full generation with the given configuration.
func Generate(ctx context.Context, cfg *gen.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("compiler: %w", gen.ErrMissingConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gens, err := Generators(cfg)
	if err != nil {
		return nil, err
	}
	g, err := LoadGraph(cfg)
	if err != nil {
		return nil, err
	}
	files, err := g.Render(gens...)
	if err != nil {
		return nil, err
	}
	w := gen.NewWriter(cfg.Target).WithWorkers(cfg.Workers).WithLogger(cfg.Logger)
	written, err := w.Write(ctx, files)
	if err != nil {
		return nil, err
	}
	m := w.Metrics()
	cfg.Logger.Debug().
		Int("written", m.FilesWritten).
		Int("unchanged", m.FilesUnchanged).
		Int64("bytes", m.TotalBytes).
		Dur("took", m.WriteTime).
		Msg("files written")
	return &Result{Graph: g, Files: written, Metrics: m}, nil
}
