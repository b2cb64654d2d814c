// Package load reads GraphQL SDL sources into an ordered registry of
// object types, the input of the model generator.
package load

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Extensions lists the file extensions picked up when a directory is loaded.
var Extensions = []string{".graphql", ".graphqls", ".gql"}

// rootTypes are operation types that never describe an entity.
var rootTypes = map[string]bool{
	"Query":        true,
	"Mutation":     true,
	"Subscription": true,
}

// Config holds the configuration for loading schema sources.
type Config struct {
	// Paths are files or directories. Directories are scanned
	// (non-recursively) for files matching Extensions, in lexical order.
	Paths []string
}

// Load reads all configured sources and returns their object types
// in source order.
func (c *Config) Load() (*Registry, error) {
	if len(c.Paths) == 0 {
		return nil, fmt.Errorf("load: no schema paths")
	}
	files, err := c.files()
	if err != nil {
		return nil, err
	}
	sources := make([]*ast.Source, 0, len(files))
	for _, name := range files {
		buf, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("load: read %s: %w", name, err)
		}
		sources = append(sources, &ast.Source{Name: name, Input: string(buf)})
	}
	return LoadSources(sources...)
}

func (c *Config) files() ([]string, error) {
	var files []string
	for _, path := range c.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("load: read dir %s: %w", path, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && slices.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
				found = append(found, filepath.Join(path, e.Name()))
			}
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("load: no schema files in %s", path)
		}
		slices.Sort(found)
		files = append(files, found...)
	}
	return files, nil
}

// Parse parses a single SDL document.
func Parse(name, input string) (*Registry, error) {
	return LoadSources(&ast.Source{Name: name, Input: input})
}

// LoadSources parses the given sources and registers their object types.
// Directives are not validated against declarations. Type extensions
// append their fields to the extended type after all definitions have
// been registered.
func LoadSources(sources ...*ast.Source) (*Registry, error) {
	doc := &ast.SchemaDocument{}
	for _, src := range sources {
		d, err := parser.ParseSchema(src)
		if err != nil {
			return nil, fmt.Errorf("load: parse %s: %w", src.Name, err)
		}
		doc.Merge(d)
	}
	r, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, def := range doc.Definitions {
		if !entity(def) {
			continue
		}
		if err := r.Add(NewSchema(def)); err != nil {
			return nil, err
		}
	}
	for _, ext := range doc.Extensions {
		if !entity(ext) {
			continue
		}
		s, ok := r.Lookup(ext.Name)
		if !ok {
			return nil, fmt.Errorf("load: extension of unknown type %q at %s", ext.Name, position(ext.Position))
		}
		s.addFields(ext.Fields)
	}
	return r, nil
}

func entity(def *ast.Definition) bool {
	return def.Kind == ast.Object && !rootTypes[def.Name]
}
