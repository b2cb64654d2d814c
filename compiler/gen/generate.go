package gen

import (
	"fmt"
	"path"

	"golang.org/x/sync/errgroup"
)

type (
	// File is a rendered output file. Path is slash-separated and
	// relative to the target directory.
	File struct {
		Path    string
		Content []byte
	}

	// Generator renders a resolved graph into files.
	Generator interface {
		// Name identifies the generator in errors and logs.
		Name() string
		// Generate renders the graph. It must not modify it.
		Generate(*Graph) ([]*File, error)
	}

	// Hook wraps a generator, for example to post-process its files.
	Hook func(Generator) Generator

	generatorFunc struct {
		name string
		fn   func(*Graph) ([]*File, error)
	}
)

// GenerateFunc returns a Generator with the given name backed by fn.
func GenerateFunc(name string, fn func(*Graph) ([]*File, error)) Generator {
	return &generatorFunc{name: name, fn: fn}
}

func (g *generatorFunc) Name() string { return g.name }

func (g *generatorFunc) Generate(graph *Graph) ([]*File, error) { return g.fn(graph) }

// Render runs the generators concurrently, each wrapped by the configured
// hooks, and returns their files in generator order. Two generators
// producing the same path is an error.
func (g *Graph) Render(gens ...Generator) ([]*File, error) {
	var (
		eg      errgroup.Group
		results = make([][]*File, len(gens))
	)
	eg.SetLimit(g.workers())
	for i, gen := range gens {
		for _, h := range g.Hooks {
			gen = h(gen)
		}
		eg.Go(func() error {
			files, err := gen.Generate(g)
			if err != nil {
				return NewGenerationError(gen.Name(), "", "render", err)
			}
			results[i] = files
			g.Logger.Debug().Str("generator", gen.Name()).Int("files", len(files)).Msg("rendered")
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	var (
		all  []*File
		seen = make(map[string]string)
	)
	for i, files := range results {
		for _, f := range files {
			p := path.Clean(f.Path)
			if prev, ok := seen[p]; ok {
				return nil, NewGenerationError(gens[i].Name(), p, fmt.Sprintf("file already rendered by %s", prev), nil)
			}
			seen[p] = gens[i].Name()
			all = append(all, &File{Path: p, Content: f.Content})
		}
	}
	return all, nil
}
