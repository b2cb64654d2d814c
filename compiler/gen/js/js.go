// Package js renders every model of a graph as a K8 ORM class module.
package js

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/syssam/modelgen/compiler/gen"
)

// Name is the format name of the generator.
const Name = gen.FormatJS

var tmpl = template.Must(template.New("model").Funcs(template.FuncMap{
	"lines":  func(xs []string) string { return strings.Join(xs, "\n") },
	"commas": func(xs []string) string { return strings.Join(xs, ",\n") },
}).Parse(`const {K8} = require('@komino/k8');
const ORM = K8.require('ORM');

class {{ .ClassName }} extends ORM{
  constructor(id, options) {
    super(id, options);
    if(id)return;

    //foreignKeys
{{ lines .ForeignKeys }}

    //fields
{{ lines .Defaults }}
  }
}

{{ .ClassName }}.jointTablePrefix = '{{ .JointTablePrefix }}';
{{ .ClassName }}.tableName = '{{ .TableName }}';

{{ .ClassName }}.fields = new Map([
{{ commas .Fields }}
]);

{{ .ClassName }}.belongsTo = new Map([
{{ commas .BelongsTo }}
]);

{{ .ClassName }}.hasMany = [
{{ commas .HasMany }}
];

{{ .ClassName }}.belongsToMany = [
{{ commas .BelongsToMany }}
];

module.exports = {{ .ClassName }};
`))

// class holds the pre-formatted entries of one module.
type class struct {
	ClassName        string
	JointTablePrefix string
	TableName        string
	ForeignKeys      []string
	Defaults         []string
	Fields           []string
	BelongsTo        []string
	HasMany          []string
	BelongsToMany    []string
}

func newClass(m *gen.Model) *class {
	c := &class{
		ClassName:        m.ClassName,
		JointTablePrefix: m.JointTablePrefix,
		TableName:        m.TableName,
	}
	for _, fk := range m.BelongsTo {
		c.ForeignKeys = append(c.ForeignKeys, fmt.Sprintf("    this.%s = null;", fk.Column))
		c.BelongsTo = append(c.BelongsTo, pair(fk.Column, fk.Target))
	}
	for _, d := range m.Defaults() {
		c.Defaults = append(c.Defaults, fmt.Sprintf("    this.%s = %s;", d.Name, d.Value))
	}
	for _, f := range m.Fields {
		c.Fields = append(c.Fields, pair(f.Name, f.TypeString()))
	}
	for _, hm := range m.HasMany {
		c.HasMany = append(c.HasMany, pair(hm.Column, hm.Owner))
	}
	for _, name := range m.BelongsToMany {
		c.BelongsToMany = append(c.BelongsToMany, `"`+name+`"`)
	}
	return c
}

func pair(a, b string) string {
	return `["` + a + `", "` + b + `"]`
}

// Render renders the module of a single model.
func Render(m *gen.Model) ([]byte, error) {
	var b bytes.Buffer
	if err := tmpl.Execute(&b, newClass(m)); err != nil {
		return nil, fmt.Errorf("js: execute template for %s: %w", m.Name, err)
	}
	return b.Bytes(), nil
}

// Generator returns the generator writing one <ClassName>.js file per model.
func Generator() gen.Generator {
	return gen.GenerateFunc(Name, func(g *gen.Graph) ([]*gen.File, error) {
		files := make([]*gen.File, 0, len(g.Nodes))
		for _, m := range g.Nodes {
			b, err := Render(m)
			if err != nil {
				return nil, err
			}
			files = append(files, &gen.File{Path: m.ClassName + ".js", Content: b})
		}
		return files, nil
	})
}
