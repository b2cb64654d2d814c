// Package sql renders the models of a graph as the DDL of a relational
// database. Statements are planned by Atlas for the configured dialect.
package sql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/modelgen/compiler/gen"
)

// Name is the format name of the generator.
const Name = gen.FormatSQL

// SchemaFile is the path of the rendered DDL.
const SchemaFile = "schema.sql"

// Generator returns the generator of schema.sql.
func Generator() gen.Generator {
	return gen.GenerateFunc(Name, func(g *gen.Graph) ([]*gen.File, error) {
		plan, err := Plan(context.Background(), g)
		if err != nil {
			return nil, err
		}
		return []*gen.File{{Path: SchemaFile, Content: Format(g.HeaderComment(), plan)}}, nil
	})
}

// Plan plans the creation of every table of the graph in its dialect.
func Plan(ctx context.Context, g *gen.Graph) (*migrate.Plan, error) {
	d, err := lookupDialect(g.Dialect)
	if err != nil {
		return nil, err
	}
	tables, err := Tables(g)
	if err != nil {
		return nil, err
	}
	changes := make([]schema.Change, len(tables))
	for i, t := range tables {
		changes[i] = &schema.AddTable{T: t}
	}
	plan, err := d.planner.PlanChanges(ctx, "modelgen", changes)
	if err != nil {
		return nil, fmt.Errorf("sql: plan %s schema: %w", d.name, err)
	}
	return plan, nil
}

// Format renders a plan as an SQL script.
func Format(header string, plan *migrate.Plan) []byte {
	var b strings.Builder
	if header != "" {
		b.WriteString("-- " + header + "\n")
	}
	for _, c := range plan.Changes {
		b.WriteString("\n")
		if c.Comment != "" {
			b.WriteString("-- " + c.Comment + "\n")
		}
		b.WriteString(c.Cmd + ";\n")
	}
	return []byte(b.String())
}

// Tables builds the tables of the graph: one per model, in graph order,
// followed by the join tables of the many-to-many associations.
func Tables(g *gen.Graph) ([]*schema.Table, error) {
	d, err := lookupDialect(g.Dialect)
	if err != nil {
		return nil, err
	}
	var (
		tables = make([]*schema.Table, 0, len(g.Nodes))
		byName = make(map[string]*schema.Table, len(g.Nodes))
	)
	for _, m := range g.Nodes {
		t, err := d.table(m)
		if err != nil {
			return nil, err
		}
		if _, ok := byName[m.TableName]; ok {
			return nil, gen.NewSchemaError(m.Name, "", fmt.Sprintf("table %q already declared", m.TableName), nil)
		}
		tables = append(tables, t)
		byName[m.TableName] = t
	}
	// Foreign keys are added once every referenced table exists.
	for i, m := range g.Nodes {
		t := tables[i]
		for _, fk := range m.BelongsTo {
			ref, err := refTable(g, byName, m, fk.Ref, fk.Field)
			if err != nil {
				return nil, err
			}
			c, _ := t.Column(fk.Column)
			t.AddForeignKeys(newForeignKey(t, c, ref))
		}
	}
	joins := make(map[string]bool)
	for _, m := range g.Nodes {
		owner := byName[m.TableName]
		for _, rel := range m.ManyToMany() {
			ref, err := refTable(g, byName, m, rel.Ref, rel.Field)
			if err != nil {
				return nil, err
			}
			name := m.JointTablePrefix + "_" + ref.Name
			switch {
			case joins[name]:
				continue
			case byName[name] != nil:
				return nil, gen.NewSchemaError(m.Name, rel.Field, fmt.Sprintf("join table %q collides with a model table", name), nil)
			}
			joins[name] = true
			tables = append(tables, d.joinTable(name, owner, g.Naming().Snake(m.ClassName), ref, g.Naming().Snake(rel.Target)))
		}
	}
	return tables, nil
}

func refTable(g *gen.Graph, byName map[string]*schema.Table, m *gen.Model, ref, field string) (*schema.Table, error) {
	target, ok := g.Node(ref)
	if !ok {
		return nil, gen.NewEdgeError(m.Name, ref, field, ref)
	}
	return byName[target.TableName], nil
}

// table builds the table of a model without its foreign keys.
func (d *dialect) table(m *gen.Model) (*schema.Table, error) {
	pk := d.primaryKey()
	t := schema.NewTable(m.TableName).AddColumns(pk)
	t.SetPrimaryKey(schema.NewPrimaryKey(pk))
	for _, f := range m.Fields {
		c := d.column(f)
		if !f.Default.IsNull() && !f.Type.List {
			v, err := defaultValue(f)
			if err != nil {
				return nil, gen.NewSchemaError(m.Name, f.Name, "invalid default", err)
			}
			c.SetDefault(&schema.Literal{V: v})
		}
		t.AddColumns(c)
	}
	for _, ts := range []string{"created_at", "updated_at"} {
		if m.HasReserved(ts) {
			t.AddColumns(d.timestamp(ts))
		}
	}
	for _, fk := range m.BelongsTo {
		if _, ok := t.Column(fk.Column); ok {
			return nil, gen.NewSchemaError(m.Name, fk.Field, fmt.Sprintf("foreign key %q collides with a column", fk.Column), nil)
		}
		t.AddColumns(d.foreignKey(fk.Column))
	}
	return t, nil
}

// joinTable builds the table associating two models. A model associated
// with itself gets a "related_" prefix on the second column.
func (d *dialect) joinTable(name string, owner *schema.Table, ownerName string, target *schema.Table, targetName string) *schema.Table {
	var (
		left  = ownerName + "_id"
		right = targetName + "_id"
	)
	if left == right {
		right = "related_" + right
	}
	lc := schema.NewIntColumn(left, d.key)
	rc := schema.NewIntColumn(right, d.key)
	t := schema.NewTable(name).AddColumns(lc, rc)
	t.SetPrimaryKey(schema.NewPrimaryKey(lc, rc))
	t.AddForeignKeys(
		newForeignKey(t, lc, owner).SetOnDelete(schema.Cascade),
		newForeignKey(t, rc, target).SetOnDelete(schema.Cascade),
	)
	return t
}

func newForeignKey(t *schema.Table, c *schema.Column, ref *schema.Table) *schema.ForeignKey {
	pk, _ := ref.Column("id")
	return schema.NewForeignKey(t.Name+"_"+c.Name+"_fkey").
		AddColumns(c).
		SetRefTable(ref).
		AddRefColumns(pk)
}

// defaultValue returns the raw column default of a field. Quoting is
// left to the dialect.
func defaultValue(f *gen.Field) (string, error) {
	raw := f.Default.Raw()
	if !f.Builtin() {
		return raw, nil
	}
	switch f.Scalar() {
	case gen.ScalarInt:
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return "", err
		}
	case gen.ScalarFloat:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return "", err
		}
	}
	return raw, nil
}
