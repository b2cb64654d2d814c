package gen

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatGo  = "go"
	FormatJS  = "js"
	FormatSQL = "sql"
)

// SQL dialects.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
)

var (
	formats  = []string{FormatGo, FormatJS, FormatSQL}
	dialects = []string{DialectSQLite, DialectPostgres, DialectMySQL}
)

// Config holds the global configuration of a generation run.
type Config struct {
	// Schema lists the SDL files or directories to load.
	Schema StringList `yaml:"schema,omitempty"`

	// Target is the output directory.
	Target string `yaml:"target,omitempty"`

	// Package is the Go package name of the generated models.
	Package string `yaml:"package,omitempty"`

	// Header is an optional header comment for generated files.
	// Defaults to "Code generated by modelgen. DO NOT EDIT.".
	Header string `yaml:"header,omitempty"`

	// Formats selects the generators to run (go, js, sql).
	Formats StringList `yaml:"formats,omitempty"`

	// Dialect is the SQL dialect of the sql format.
	Dialect string `yaml:"dialect,omitempty"`

	// Workers bounds the number of concurrent workers.
	// Defaults to GOMAXPROCS.
	Workers int `yaml:"workers,omitempty"`

	// Irregulars are singular/plural pairs that bypass the inflection rules.
	Irregulars []Irregular `yaml:"irregulars,omitempty"`

	// Hooks wrap every generator of the run.
	Hooks []Hook `yaml:"-"`

	// Logger receives debug output. Defaults to a disabled logger.
	Logger zerolog.Logger `yaml:"-"`
}

// DefaultHeader is the header comment written to generated files.
const DefaultHeader = "Code generated by modelgen. DO NOT EDIT."

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Target:     "model",
		Package:    "model",
		Formats:    StringList{FormatGo},
		Dialect:    DialectSQLite,
		Irregulars: append([]Irregular(nil), DefaultIrregulars...),
		Logger:     zerolog.Nop(),
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// A missing file yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configured formats and dialect.
func (c *Config) Validate() error {
	var errs []error
	for _, f := range c.Formats {
		if !lo.Contains(formats, f) {
			errs = append(errs, NewConfigError("Formats", f, "unsupported format; use go, js, or sql"))
		}
	}
	if c.Dialect != "" && !lo.Contains(dialects, c.Dialect) {
		errs = append(errs, NewConfigError("Dialect", c.Dialect, "unsupported dialect; use sqlite, postgres, or mysql"))
	}
	if c.Workers < 0 {
		errs = append(errs, NewConfigError("Workers", c.Workers, "workers cannot be negative"))
	}
	for _, ir := range c.Irregulars {
		if ir.Singular == "" || ir.Plural == "" {
			errs = append(errs, NewConfigError("Irregulars", ir, "singular and plural are required"))
		}
	}
	return errors.Join(errs...)
}

// HeaderComment returns the configured header or DefaultHeader.
func (c *Config) HeaderComment() string {
	if c.Header != "" {
		return c.Header
	}
	return DefaultHeader
}

// Naming returns a Naming carrying the configured irregulars.
func (c *Config) Naming() *Naming {
	return NewNaming(c.Irregulars...)
}

// FormatList returns the configured formats without duplicates,
// in configuration order.
func (c *Config) FormatList() []string {
	return lo.Uniq(c.Formats)
}

func (c *Config) workers() int {
	if c != nil && c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// StringList is a YAML type that can be either a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler for StringList.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler for StringList.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}
