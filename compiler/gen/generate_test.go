package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listGenerator renders one file per model holding its table name.
func listGenerator(name, ext string) Generator {
	return GenerateFunc(name, func(g *Graph) ([]*File, error) {
		files := make([]*File, 0, len(g.Nodes))
		for _, m := range g.Nodes {
			files = append(files, &File{Path: name + "/" + m.ClassName + ext, Content: []byte(m.TableName)})
		}
		return files, nil
	})
}

func TestGraph_Render(t *testing.T) {
	g := mustGraph(t, `
type Users { name: String }
type Blogs { belongsTo: Users }
`, WithWorkers(2))
	files, err := g.Render(listGenerator("a", ".txt"), listGenerator("b", ".txt"))
	require.NoError(t, err)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a/User.txt", "a/Blog.txt", "b/User.txt", "b/Blog.txt"}, paths)
	assert.Equal(t, "users", string(files[0].Content))
}

func TestGraph_RenderErrors(t *testing.T) {
	g := mustGraph(t, `type Users { name: String }`)

	t.Run("generator failure", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := g.Render(GenerateFunc("broken", func(*Graph) ([]*File, error) { return nil, boom }))
		require.ErrorIs(t, err, boom)
		require.ErrorIs(t, err, ErrGenerationFailed)
		assert.Contains(t, err.Error(), "in phase broken")
	})

	t.Run("duplicate path", func(t *testing.T) {
		_, err := g.Render(listGenerator("a", ".txt"), GenerateFunc("b", func(*Graph) ([]*File, error) {
			return []*File{{Path: "a/./User.txt"}}, nil
		}))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already rendered by a")
	})
}

func TestGraph_RenderHooks(t *testing.T) {
	var called []string
	hook := func(next Generator) Generator {
		return GenerateFunc(next.Name(), func(g *Graph) ([]*File, error) {
			files, err := next.Generate(g)
			for _, f := range files {
				f.Content = append([]byte("// header\n"), f.Content...)
			}
			called = append(called, next.Name())
			return files, err
		})
	}
	g := mustGraph(t, `type Users { name: String }`, WithHooks(hook), WithWorkers(1))
	files, err := g.Render(listGenerator("a", ".txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "// header\nusers", string(files[0].Content))
	assert.Equal(t, []string{"a"}, called)
}

func TestWriter(t *testing.T) {
	target := t.TempDir()
	files := []*File{
		{Path: "user.go", Content: []byte("package model\n")},
		{Path: "js/User.js", Content: []byte("class User {}\n")},
	}
	w := NewWriter(target).WithWorkers(2)
	written, err := w.Write(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(target, "user.go"), written[0].Path)
	assert.Equal(t, filepath.Join(target, "js", "User.js"), written[1].Path)
	assert.Equal(t, StatusCreated, written[0].Status)
	assert.Equal(t, StatusCreated, written[1].Status)

	buf, err := os.ReadFile(filepath.Join(target, "js", "User.js"))
	require.NoError(t, err)
	assert.Equal(t, "class User {}\n", string(buf))

	files[1].Content = []byte("class User extends ORM {}\n")
	written, err = w.Write(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, written[0].Status)
	assert.Equal(t, StatusUpdated, written[1].Status)

	m := w.Metrics()
	assert.Equal(t, 3, m.FilesWritten)
	assert.Equal(t, 1, m.FilesUnchanged)
	assert.Equal(t, int64(len("package model\n")+len("class User {}\n")+len("class User extends ORM {}\n")), m.TotalBytes)
}

func TestWriter_Errors(t *testing.T) {
	_, err := NewWriter("").Write(context.Background(), nil)
	require.True(t, IsConfigError(err))

	_, err = NewWriter(t.TempDir()).Write(context.Background(), []*File{{Path: "../escape.txt"}})
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "escapes the target directory")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewWriter(t.TempDir()).Write(ctx, []*File{{Path: "a.txt"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestStatus_String(t *testing.T) {
	var b strings.Builder
	for _, s := range []Status{StatusCreated, StatusUpdated, StatusUnchanged} {
		b.WriteString(s.String())
		b.WriteByte(' ')
	}
	assert.Equal(t, "created updated unchanged ", b.String())
}
