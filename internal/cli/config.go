// Package cli implements the modelgen commands.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/syssam/modelgen/compiler/gen"
)

// DefaultConfigFile is read when --config is not given. It may be absent.
const DefaultConfigFile = "modelgen.yml"

// flags are shared by the commands that load a schema.
type flags struct {
	config  string
	schema  []string
	target  string
	pkg     string
	formats []string
	dialect string
	verbose bool
}

func (f *flags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", DefaultConfigFile, "configuration file")
	cmd.Flags().StringSliceVarP(&f.schema, "schema", "s", nil, "schema files or directories")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
}

func (f *flags) bindOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "output directory")
	cmd.Flags().StringVarP(&f.pkg, "package", "p", "", "Go package name")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "output formats (go, js, sql)")
	cmd.Flags().StringVar(&f.dialect, "dialect", "", "SQL dialect (sqlite, postgres, mysql)")
}

// load reads the configuration file and applies the flags on top of it.
func (f *flags) load(cmd *cobra.Command) (*gen.Config, error) {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(f.config); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := gen.LoadConfig(f.config)
	if err != nil {
		return nil, err
	}
	opts := []gen.Option{gen.WithLogger(newLogger(cmd.ErrOrStderr(), f.verbose))}
	if len(f.schema) > 0 {
		cfg.Schema = nil
		opts = append(opts, gen.WithSchema(f.schema...))
	}
	if f.target != "" {
		opts = append(opts, gen.WithTarget(f.target))
	}
	if f.pkg != "" {
		opts = append(opts, gen.WithPackage(f.pkg))
	}
	if len(f.formats) > 0 {
		opts = append(opts, gen.WithFormats(f.formats...))
	}
	if f.dialect != "" {
		opts = append(opts, gen.WithDialect(f.dialect))
	}
	if err := cfg.ApplyAll(opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
