package golang

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
)

const customers = `
type Customers {
  id: ID!
  username: String
  created_at: String
  updated_at: String
}

type Addresses {
  company: String
  primary: Boolean! @default(value: true)
  belongsTo: Customers
}

type CustomerAttributes {
  value: String @default(value: "none")
  weight: Float! @default(value: 0.5)
  tags: [String] @default(value: ["a"])
  belongsToCustomer: Customers @foreignKey(value: "customer_id")
}
`

func generate(t *testing.T, sdl string, opts ...gen.Option) ([]*gen.File, error) {
	t.Helper()
	reg, err := load.Parse("schema.graphql", sdl)
	require.NoError(t, err)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	g, err := gen.NewGraph(cfg, reg)
	require.NoError(t, err)
	return g.Render(Generator())
}

// flat collapses whitespace to make gofmt alignment irrelevant.
func flat(b []byte) string {
	return strings.Join(strings.Fields(string(b)), " ")
}

func TestGenerator(t *testing.T) {
	files, err := generate(t, customers, gen.WithPackage("store"))
	require.NoError(t, err)
	require.Len(t, files, 4)
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
		_, err := parser.ParseFile(token.NewFileSet(), f.Path, f.Content, parser.AllErrors)
		require.NoError(t, err, "%s:\n%s", f.Path, f.Content)
		assert.True(t, strings.HasPrefix(string(f.Content), "// Code generated by modelgen. DO NOT EDIT."), f.Path)
		assert.Contains(t, string(f.Content), "package store")
	}
	assert.Equal(t, []string{"model.go", "customer.go", "address.go", "customer_attribute.go"}, paths)

	pkg := flat(files[0].Content)
	assert.Contains(t, pkg, `var Tables = []string{"customers", "addresses", "customer_attributes"}`)
	assert.Contains(t, pkg, "type Relation struct {")
	assert.Contains(t, pkg, "func ptr[T any](v T) *T {")

	customer := flat(files[1].Content)
	assert.Contains(t, customer, `"time"`)
	assert.Contains(t, customer, "type Customer struct { ID int `json:\"id\"` Username *string `json:\"username,omitempty\"` CreatedAt *time.Time `json:\"created_at,omitempty\"` UpdatedAt *time.Time `json:\"updated_at,omitempty\"` }")
	assert.Contains(t, customer, `CustomerTable = "customers"`)
	assert.Contains(t, customer, `CustomerJointTablePrefix = "customer"`)
	assert.Contains(t, customer, "func NewCustomer() *Customer { return &Customer{} }")
	assert.Contains(t, customer, "func (*Customer) TableName() string { return CustomerTable }")
	assert.Contains(t, customer, "CustomerHasMany = []Relation{")
	assert.Contains(t, customer, `Column: "customer_id", Model: "Address",`)
	assert.Contains(t, customer, `Column: "customer_id", Model: "CustomerAttribute",`)

	address := flat(files[2].Content)
	assert.Contains(t, address, "type Address struct { ID int `json:\"id\"` Company *string `json:\"company,omitempty\"` Primary bool `json:\"primary\"` CustomerID *int `json:\"customer_id,omitempty\"` }")
	assert.Contains(t, address, "return &Address{Primary: true}")
	assert.Contains(t, address, "AddressBelongsTo = []Relation{")
	assert.Contains(t, address, `Column: "customer_id", Model: "Customer",`)
	assert.NotContains(t, address, `"time"`)

	attr := flat(files[3].Content)
	assert.Contains(t, attr, "Tags []string `json:\"tags,omitempty\"`")
	assert.Contains(t, attr, `Value: ptr[string]("none")`)
	assert.Contains(t, attr, "Weight: 0.5")
	assert.NotContains(t, attr, "Tags:")
	assert.Contains(t, attr, `Name: "weight", Type: "Float!",`)
}

func TestGenerator_NoPointerHelper(t *testing.T) {
	files, err := generate(t, `type Users { name: String! @default(value: "anon") score: JSON }`)
	require.NoError(t, err)
	pkg := string(files[0].Content)
	assert.NotContains(t, pkg, "func ptr")
	user := flat(files[1].Content)
	assert.Contains(t, user, `return &User{Name: "anon"}`)
	assert.Contains(t, user, "Score any `json:\"score,omitempty\"`")
}

func TestGenerator_Errors(t *testing.T) {
	tests := []struct {
		name string
		sdl  string
		is   error
		msg  string
	}{
		{"field collision", `type Users { name: String Name: String }`, gen.ErrInvalidSchema, "Go field Name collides with name"},
		{"foreign key collision", `type Users { name: String } type Blogs { userID: String belongsTo: Users }`, gen.ErrInvalidSchema, "Go field UserID collides with userID"},
		{"type collision", `type Users { name: String } type User { name: String }`, gen.ErrGenerationFailed, "identifier User of User collides with Users"},
		{"package collision", `type Relations { name: String }`, gen.ErrGenerationFailed, "identifier Relation of Relations collides with model.go"},
		{"invalid default", `type Users { age: Int @default(value: "old") }`, gen.ErrInvalidSchema, "invalid default"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(t, tt.sdl)
			require.ErrorIs(t, err, tt.is)
			require.ErrorIs(t, err, gen.ErrGenerationFailed)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFileName(t *testing.T) {
	g, err := gen.NewGraph(nil, &load.Registry{})
	require.NoError(t, err)
	r := newGenerator(g)
	assert.Equal(t, "customer_attribute.go", r.fileName(&gen.Model{ClassName: "CustomerAttribute"}))
	assert.Equal(t, "unit_test_model.go", r.fileName(&gen.Model{ClassName: "UnitTest"}))
	assert.Equal(t, "test_model.go", r.fileName(&gen.Model{ClassName: "Test"}))
}
