// Package golang renders the models of a graph as a Go package: one
// struct per model with its table metadata, plus a shared model.go.
package golang

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/modelgen/compiler/gen"
)

// Name is the format name of the generator.
const Name = gen.FormatGo

// PackageFile is the file holding the declarations shared by all models.
const PackageFile = "model.go"

// Generator returns the generator of the Go package.
func Generator() gen.Generator {
	return gen.GenerateFunc(Name, func(g *gen.Graph) ([]*gen.File, error) {
		return newGenerator(g).generate()
	})
}

// generator renders one graph. Top-level identifiers are tracked in
// idents since every model shares the package scope.
type generator struct {
	graph    *gen.Graph
	naming   *gen.Naming
	idents   map[string]string
	needsPtr bool
}

func newGenerator(g *gen.Graph) *generator {
	r := &generator{
		graph:  g,
		naming: g.Naming(),
		idents: make(map[string]string),
	}
	for _, id := range []string{"Column", "Relation", "Tables", "ptr"} {
		r.idents[id] = PackageFile
	}
	return r
}

func (r *generator) generate() ([]*gen.File, error) {
	files := make([]*gen.File, 1, len(r.graph.Nodes)+1)
	for _, m := range r.graph.Nodes {
		f, err := r.genModel(m)
		if err != nil {
			return nil, err
		}
		file, err := render(r.fileName(m), f)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	pkg, err := render(PackageFile, r.genPackage())
	if err != nil {
		return nil, err
	}
	files[0] = pkg
	return files, nil
}

// fileName returns the snake_case file of a model, keeping it out of
// the _test.go namespace.
func (r *generator) fileName(m *gen.Model) string {
	name := r.naming.Snake(m.ClassName)
	if name == "test" || strings.HasSuffix(name, "_test") {
		name += "_model"
	}
	return name + ".go"
}

func (r *generator) newFile() *jen.File {
	f := jen.NewFile(r.graph.Package)
	f.HeaderComment(r.graph.HeaderComment())
	return f
}

func render(path string, f *jen.File) (*gen.File, error) {
	var b bytes.Buffer
	if err := f.Render(&b); err != nil {
		return nil, fmt.Errorf("golang: render %s: %w", path, err)
	}
	return &gen.File{Path: path, Content: b.Bytes()}, nil
}

// declare reserves a package-level identifier for the given model.
func (r *generator) declare(owner string, ids ...string) error {
	for _, id := range ids {
		if prev, ok := r.idents[id]; ok {
			return fmt.Errorf("golang: identifier %s of %s collides with %s", id, owner, prev)
		}
		r.idents[id] = owner
	}
	return nil
}

// genPackage generates model.go.
func (r *generator) genPackage() *jen.File {
	f := r.newFile()
	f.PackageComment(fmt.Sprintf("Package %s holds the generated models.", r.graph.Package))

	f.Comment("Column describes a scalar field of a model.")
	f.Type().Id("Column").Struct(
		jen.Id("Name").String().Tag(map[string]string{"json": "name"}),
		jen.Id("Type").String().Tag(map[string]string{"json": "type"}),
	)
	f.Comment("Relation pairs a foreign-key column with the model on its other side.")
	f.Type().Id("Relation").Struct(
		jen.Id("Column").String().Tag(map[string]string{"json": "column"}),
		jen.Id("Model").String().Tag(map[string]string{"json": "model"}),
	)

	f.Comment("Tables lists the table of every model.")
	f.Var().Id("Tables").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
		for _, m := range r.graph.Nodes {
			g.Lit(m.TableName)
		}
	})

	if r.needsPtr {
		f.Func().Id("ptr").Types(jen.Id("T").Any()).Params(jen.Id("v").Id("T")).Op("*").Id("T").Block(
			jen.Return(jen.Op("&").Id("v")),
		)
	}
	return f
}

// genModel generates the file of one model.
func (r *generator) genModel(m *gen.Model) (*jen.File, error) {
	name := r.naming.Pascal(m.ClassName)
	if err := r.declare(m.Name, name, name+"Table", name+"JointTablePrefix", "New"+name,
		name+"Columns", name+"BelongsTo", name+"HasMany", name+"BelongsToMany"); err != nil {
		return nil, err
	}
	f := r.newFile()

	f.Const().Defs(
		jen.Comment(name+"Table is the table of "+name+"."),
		jen.Id(name+"Table").Op("=").Lit(m.TableName),
		jen.Comment(name+"JointTablePrefix prefixes the join tables of "+name+"."),
		jen.Id(name+"JointTablePrefix").Op("=").Lit(m.JointTablePrefix),
	)

	members, err := r.genStruct(f, name, m)
	if err != nil {
		return nil, err
	}
	f.Comment("TableName returns the table of the model.")
	f.Func().Params(jen.Op("*").Id(name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Id(name + "Table")),
	)
	if err := r.genConstructor(f, name, m, members); err != nil {
		return nil, err
	}
	genRelations(f, name, m)
	return f, nil
}

// genStruct generates the model struct and returns the Go name of every
// scalar field.
func (r *generator) genStruct(f *jen.File, name string, m *gen.Model) (map[string]string, error) {
	var (
		members = map[string]string{"ID": "id", "TableName": "TableName"}
		names   = make(map[string]string, len(m.Fields))
		fields  = []jen.Code{jen.Id("ID").Int().Tag(map[string]string{"json": "id"})}
	)
	member := func(source string) (string, error) {
		id := r.naming.Pascal(source)
		if prev, ok := members[id]; ok {
			return "", gen.NewSchemaError(m.Name, source, fmt.Sprintf("Go field %s collides with %s", id, prev), nil)
		}
		members[id] = source
		return id, nil
	}
	for _, fd := range m.Fields {
		id, err := member(fd.Name)
		if err != nil {
			return nil, err
		}
		names[fd.Name] = id
		fields = append(fields, jen.Id(id).Add(goType(fd)).Tag(jsonTag(fd.Name, fd.Nullable())))
	}
	for _, ts := range []string{"created_at", "updated_at"} {
		if !m.HasReserved(ts) {
			continue
		}
		id, err := member(ts)
		if err != nil {
			return nil, err
		}
		fields = append(fields, jen.Id(id).Op("*").Qual("time", "Time").Tag(jsonTag(ts, true)))
	}
	for _, fk := range m.BelongsTo {
		id, err := member(fk.Column)
		if err != nil {
			return nil, err
		}
		fields = append(fields, jen.Id(id).Op("*").Int().Tag(jsonTag(fk.Column, true)))
	}
	f.Comment(fmt.Sprintf("%s is the model of the %s table.", name, m.TableName))
	f.Type().Id(name).Struct(fields...)
	return names, nil
}

// genConstructor generates New<Model>, applying every non-null default.
func (r *generator) genConstructor(f *jen.File, name string, m *gen.Model, members map[string]string) error {
	var values []jen.Code
	for _, fd := range m.Fields {
		if fd.Default.IsNull() || fd.Type.List {
			continue
		}
		v, ok, err := literal(fd)
		if err != nil {
			return gen.NewSchemaError(m.Name, fd.Name, "invalid default", err)
		}
		if !ok {
			continue
		}
		if fd.Nullable() {
			r.needsPtr = true
			v = jen.Id("ptr").Types(baseType(fd)).Call(v)
		}
		values = append(values, jen.Id(members[fd.Name]).Op(":").Add(v))
	}
	f.Comment(fmt.Sprintf("New%s returns a %s with the declared defaults applied.", name, name))
	f.Func().Id("New"+name).Params().Op("*").Id(name).Block(
		jen.Return(jen.Op("&").Id(name).ValuesFunc(func(g *jen.Group) {
			for _, v := range values {
				g.Add(v)
			}
		})),
	)
	return nil
}

// genRelations generates the metadata variables of a model.
func genRelations(f *jen.File, name string, m *gen.Model) {
	relations := func(g *jen.Group, column, model string) {
		g.Values(jen.Dict{
			jen.Id("Column"): jen.Lit(column),
			jen.Id("Model"):  jen.Lit(model),
		})
	}
	f.Var().Defs(
		jen.Comment(name+"Columns holds the scalar fields and their declared types."),
		jen.Id(name+"Columns").Op("=").Index().Id("Column").ValuesFunc(func(g *jen.Group) {
			for _, fd := range m.Fields {
				g.Values(jen.Dict{
					jen.Id("Name"): jen.Lit(fd.Name),
					jen.Id("Type"): jen.Lit(fd.TypeString()),
				})
			}
		}),
		jen.Comment(name+"BelongsTo holds the foreign keys of "+name+"."),
		jen.Id(name+"BelongsTo").Op("=").Index().Id("Relation").ValuesFunc(func(g *jen.Group) {
			for _, fk := range m.BelongsTo {
				relations(g, fk.Column, fk.Target)
			}
		}),
		jen.Comment(name+"HasMany holds the foreign keys referencing "+name+"."),
		jen.Id(name+"HasMany").Op("=").Index().Id("Relation").ValuesFunc(func(g *jen.Group) {
			for _, hm := range m.HasMany {
				relations(g, hm.Column, hm.Owner)
			}
		}),
		jen.Comment(name+"BelongsToMany holds the many-to-many associations of "+name+"."),
		jen.Id(name+"BelongsToMany").Op("=").Index().String().ValuesFunc(func(g *jen.Group) {
			for _, target := range m.BelongsToMany {
				g.Lit(target)
			}
		}),
	)
}

func jsonTag(name string, omitempty bool) map[string]string {
	if omitempty {
		name += ",omitempty"
	}
	return map[string]string{"json": name}
}

// baseType returns the Go type of a single value of the field.
func baseType(fd *gen.Field) *jen.Statement {
	switch fd.Scalar() {
	case gen.ScalarID, gen.ScalarString:
		return jen.String()
	case gen.ScalarInt:
		return jen.Int()
	case gen.ScalarFloat:
		return jen.Float64()
	case gen.ScalarBoolean:
		return jen.Bool()
	default:
		return jen.Any()
	}
}

// goType returns the Go type of the field. Nullable builtin scalars are
// pointers.
func goType(fd *gen.Field) *jen.Statement {
	switch {
	case fd.Type.List:
		return jen.Index().Add(baseType(fd))
	case fd.Nullable() && fd.Builtin():
		return jen.Op("*").Add(baseType(fd))
	default:
		return baseType(fd)
	}
}

// literal returns the Go literal of the field default. Defaults of
// custom scalars are not rendered.
func literal(fd *gen.Field) (*jen.Statement, bool, error) {
	raw := fd.Default.Raw()
	switch fd.Scalar() {
	case gen.ScalarID, gen.ScalarString:
		return jen.Lit(raw), true, nil
	case gen.ScalarInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, err
		}
		return jen.Lit(n), true, nil
	case gen.ScalarFloat:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, false, err
		}
		return jen.Lit(x), true, nil
	case gen.ScalarBoolean:
		return jen.Lit(raw == "true"), true, nil
	default:
		return nil, false, nil
	}
}
