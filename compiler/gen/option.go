package gen

import (
	"errors"
	"go/token"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Option configures code generation.
type Option func(*Config) error

// WithSchema adds schema files or directories to load.
func WithSchema(paths ...string) Option {
	return func(c *Config) error {
		if len(paths) == 0 || lo.Contains(paths, "") {
			return NewConfigError("Schema", nil, "schema path cannot be empty")
		}
		c.Schema = append(c.Schema, paths...)
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the Go package name of the generated models.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a valid Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFormats replaces the output formats.
// Supported formats: "go", "js", "sql".
func WithFormats(names ...string) Option {
	return func(c *Config) error {
		if len(names) == 0 {
			return NewConfigError("Formats", nil, "at least one format is required")
		}
		for _, f := range names {
			if !lo.Contains(formats, f) {
				return NewConfigError("Formats", f, "unsupported format; use go, js, or sql")
			}
		}
		c.Formats = append(StringList(nil), names...)
		return nil
	}
}

// WithDialect sets the SQL dialect.
// Supported dialects: "sqlite", "postgres", "mysql".
func WithDialect(name string) Option {
	return func(c *Config) error {
		if !lo.Contains(dialects, name) {
			return NewConfigError("Dialect", name, "unsupported dialect; use sqlite, postgres, or mysql")
		}
		c.Dialect = name
		return nil
	}
}

// WithWorkers bounds the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithIrregular registers a singular/plural exception.
func WithIrregular(singular, plural string) Option {
	return func(c *Config) error {
		if singular == "" || plural == "" {
			return NewConfigError("Irregulars", singular+"/"+plural, "singular and plural are required")
		}
		c.Irregulars = append(c.Irregulars, Irregular{Singular: singular, Plural: plural})
		return nil
	}
}

// WithHooks adds generation hooks.
// Hooks are applied to every generator, in order.
func WithHooks(hooks ...Hook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, hooks...)
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) error {
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
