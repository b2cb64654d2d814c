package gen

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "Custom header", c.Header)
		assert.Equal(t, "Custom header", c.HeaderComment())
	})

	t.Run("empty header falls back to default", func(t *testing.T) {
		c := &Config{Header: "existing"}
		require.NoError(t, WithHeader("")(c))
		assert.Equal(t, DefaultHeader, c.HeaderComment())
	})
}

func TestWithPackage(t *testing.T) {
	tests := []struct {
		pkg     string
		wantErr bool
	}{
		{"model", false},
		{"models_v2", false},
		{"", true},
		{"my-models", true},
		{"github.com/org/model", true},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			c := &Config{}
			err := WithPackage(tt.pkg)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pkg, c.Package)
		})
	}
}

func TestWithFormats(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithFormats(FormatJS, FormatSQL)(c))
	assert.Equal(t, StringList{FormatJS, FormatSQL}, c.Formats)

	require.Error(t, WithFormats()(c))
	err := WithFormats(FormatGo, "rust")(c)
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "rust")
	assert.Equal(t, StringList{FormatJS, FormatSQL}, c.Formats, "failed option leaves config untouched")
}

func TestWithDialect(t *testing.T) {
	for _, d := range []string{DialectSQLite, DialectPostgres, DialectMySQL} {
		c := &Config{}
		require.NoError(t, WithDialect(d)(c))
		assert.Equal(t, d, c.Dialect)
	}
	assert.True(t, IsConfigError(WithDialect("oracle")(&Config{})))
}

func TestWithWorkersTargetSchema(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithWorkers(3)(c))
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, 3, c.workers())
	require.Error(t, WithWorkers(0)(c))

	require.NoError(t, WithTarget("out")(c))
	assert.Equal(t, "out", c.Target)
	require.Error(t, WithTarget("")(c))

	require.NoError(t, WithSchema("a.graphql", "b.graphql")(c))
	require.NoError(t, WithSchema("c.graphql")(c))
	assert.Equal(t, StringList{"a.graphql", "b.graphql", "c.graphql"}, c.Schema)
	require.Error(t, WithSchema()(c))
	require.Error(t, WithSchema("")(c))
}

func TestWithIrregular(t *testing.T) {
	c, err := NewConfig(WithIrregular("octopus", "octopodes"))
	require.NoError(t, err)
	assert.Equal(t, []Irregular{
		{Singular: "person", Plural: "persons"},
		{Singular: "octopus", Plural: "octopodes"},
	}, c.Irregulars)
	assert.Equal(t, "octopodes", c.Naming().Plural("octopus"))

	_, err = NewConfig(WithIrregular("octopus", ""))
	require.Error(t, err)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	c, err := NewConfig(WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	require.NoError(t, err)
	c.Logger.Debug().Msg("hello")
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithTarget(""), WithDialect("oracle"), WithPackage("model"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "oracle")
	assert.Equal(t, "model", c.Package, "valid options are still applied")

	c = &Config{}
	err = c.Apply(WithTarget(""), WithPackage("model"))
	require.Error(t, err)
	assert.Empty(t, c.Package, "Apply stops at the first error")
}

func TestMustNewConfig(t *testing.T) {
	assert.NotPanics(t, func() { MustNewConfig(WithTarget("out")) })
	assert.Panics(t, func() { MustNewConfig(WithTarget("")) })
}
