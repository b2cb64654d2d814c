package compiler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelgen/compiler/gen"
)

const store = `
type Customers {
  id: ID!
  name: String!
}

type Addresses {
  street: String
  primary: Boolean @default(value: true)
  belongsTo: Customers
}
`

func writeSchema(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out")
	cfg, err := gen.NewConfig(
		gen.WithSchema(writeSchema(t, dir, store)),
		gen.WithTarget(target),
		gen.WithPackage("store"),
		gen.WithFormats(gen.FormatGo, gen.FormatJS, gen.FormatSQL),
		gen.WithWorkers(2),
	)
	require.NoError(t, err)

	res, err := Generate(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Graph.Nodes, 2)
	for _, name := range []string{"model.go", "customer.go", "address.go", "Customer.js", "Address.js", "schema.sql"} {
		assert.FileExists(t, filepath.Join(target, name))
	}
	assert.Len(t, res.Files, 6)
	assert.Equal(t, 6, res.Metrics.FilesWritten)
	for _, f := range res.Files {
		assert.Equal(t, gen.StatusCreated, f.Status, f.Path)
	}

	buf, err := os.ReadFile(filepath.Join(target, "Address.js"))
	require.NoError(t, err)
	assert.Contains(t, string(buf), "this.customer_id = null;")
	assert.Contains(t, string(buf), "this.primary = true;")

	// A second run leaves every file untouched.
	res, err = Generate(context.Background(), cfg)
	require.NoError(t, err)
	for _, f := range res.Files {
		assert.Equal(t, gen.StatusUnchanged, f.Status, f.Path)
	}
}

func TestGenerate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Generate(ctx, nil)
	require.ErrorIs(t, err, gen.ErrMissingConfig)

	cfg := gen.DefaultConfig()
	_, err = Generate(ctx, cfg)
	require.True(t, gen.IsConfigError(err))

	cfg = gen.DefaultConfig()
	cfg.Formats = gen.StringList{"rust"}
	_, err = Generate(ctx, cfg)
	require.True(t, gen.IsConfigError(err))

	dir := t.TempDir()
	cfg, err = gen.NewConfig(
		gen.WithSchema(writeSchema(t, dir, `type Blogs { belongsTo: Users }`)),
		gen.WithTarget(filepath.Join(dir, "out")),
	)
	require.NoError(t, err)
	_, err = Generate(ctx, cfg)
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestGenerators(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Formats = gen.StringList{gen.FormatSQL, gen.FormatGo, gen.FormatSQL}
	gens, err := Generators(cfg)
	require.NoError(t, err)
	require.Len(t, gens, 2)
	assert.Equal(t, gen.FormatSQL, gens[0].Name())
	assert.Equal(t, gen.FormatGo, gens[1].Name())

	cfg.Formats = nil
	_, err = Generators(cfg)
	require.True(t, gen.IsConfigError(err))
}

func TestWatch(t *testing.T) {
	old := DebounceTime
	DebounceTime = 10 * time.Millisecond
	t.Cleanup(func() { DebounceTime = old })

	dir := t.TempDir()
	path := writeSchema(t, dir, `type Users { name: String }`)
	cfg, err := gen.NewConfig(
		gen.WithSchema(path),
		gen.WithTarget(filepath.Join(dir, "out")),
		gen.WithFormats(gen.FormatJS),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	results := make(chan *Result, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, cfg, func(r *Result, err error) {
			if err == nil {
				results <- r
			}
		})
	}()

	wait := func() *Result {
		select {
		case r := <-results:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for generation")
			return nil
		}
	}
	r := wait()
	require.Len(t, r.Graph.Nodes, 1)

	// Unrelated files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	writeSchema(t, dir, "type Users { name: String }\ntype Tags { label: String }\n")
	for r = wait(); len(r.Graph.Nodes) != 2; r = wait() {
	}
	assert.FileExists(t, filepath.Join(dir, "out", "Tag.js"))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingSchema(t *testing.T) {
	cfg := gen.DefaultConfig()
	err := Watch(context.Background(), cfg, func(*Result, error) {})
	require.True(t, gen.IsConfigError(err))

	cfg.Schema = gen.StringList{filepath.Join(t.TempDir(), "missing.graphql")}
	err = Watch(context.Background(), cfg, func(*Result, error) {})
	require.ErrorIs(t, err, os.ErrNotExist)
}
