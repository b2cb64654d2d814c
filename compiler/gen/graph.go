package gen

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/syssam/modelgen/compiler/load"
)

// Graph holds the resolved models of a registry, in registry order.
type Graph struct {
	*Config
	// Nodes are the resolved models.
	Nodes []*Model

	registry *load.Registry
	naming   *Naming
	index    map[string]int
}

// NewGraph resolves every type of the registry. Resolution is all or
// nothing: on any error no graph is returned. The registry is only read.
func NewGraph(c *Config, reg *load.Registry) (*Graph, error) {
	if c == nil {
		c = DefaultConfig()
	}
	g := &Graph{
		Config:   c,
		registry: reg,
		naming:   c.Naming(),
	}
	types := reg.Types()
	start := time.Now()
	scans, err := g.scanAll(types)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug().Int("types", len(types)).Dur("took", time.Since(start)).Msg("fields classified")
	start = time.Now()
	res, err := g.resolve(scans)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug().Int("types", len(res.hasMany)).Dur("took", time.Since(start)).Msg("relations resolved")
	g.Nodes = make([]*Model, len(scans))
	g.index = make(map[string]int, len(scans))
	for i, sc := range scans {
		g.Nodes[i] = g.assemble(sc, res)
		g.index[sc.schema.Name] = i
	}
	return g, nil
}

// assemble builds the model of one type from its scan and the shared
// resolution.
func (g *Graph) assemble(sc *scan, res *resolution) *Model {
	class := g.naming.ClassName(sc.schema.Name)
	m := &Model{
		Name:             sc.schema.Name,
		TableName:        g.naming.TableName(sc.schema.Name),
		ClassName:        class,
		JointTablePrefix: g.naming.Snake(class),
		Fields:           sc.fields,
		Reserved:         sc.reserved,
		Pos:              sc.schema.Pos,
		HasMany:          append([]*HasMany(nil), res.hasMany[sc.schema.Name]...),
	}
	for _, e := range sc.edges {
		m.BelongsTo = append(m.BelongsTo, &ForeignKey{
			Column: e.column,
			Owner:  e.owner,
			Target: e.target,
			Field:  e.field,
			Ref:    res.refs[e],
		})
	}
	for _, e := range sc.m2m {
		m.BelongsToMany = append(m.BelongsToMany, e.target)
		m.m2m = append(m.m2m, &ManyToMany{
			Target: e.target,
			Field:  e.field,
			Ref:    res.refs[e],
		})
	}
	return m
}

// Node returns the model of the type with the given registry name.
func (g *Graph) Node(name string) (*Model, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.Nodes[i], true
}

// Naming returns the naming rules the graph was resolved with.
func (g *Graph) Naming() *Naming {
	return g.naming
}

// MarshalYAML implements yaml.Marshaler. The output keeps registry,
// declaration and resolution order.
func (g *Graph) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range g.Nodes {
		root.Content = append(root.Content, scalar(m.Name), m.yamlNode())
	}
	return root, nil
}

func (m *Model) yamlNode() *yaml.Node {
	var (
		fields    = &yaml.Node{Kind: yaml.MappingNode}
		defaults  = &yaml.Node{Kind: yaml.MappingNode}
		belongsTo = &yaml.Node{Kind: yaml.MappingNode}
		hasMany   = &yaml.Node{Kind: yaml.SequenceNode}
		btm       = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	)
	for _, f := range m.Fields {
		fields.Content = append(fields.Content, scalar(f.Name), scalar(f.TypeString()))
		defaults.Content = append(defaults.Content, scalar(f.Name), scalar(f.Default.String()))
	}
	for _, fk := range m.BelongsTo {
		belongsTo.Content = append(belongsTo.Content, scalar(fk.Column), scalar(fk.Target))
	}
	for _, h := range m.HasMany {
		hasMany.Content = append(hasMany.Content, &yaml.Node{
			Kind:    yaml.SequenceNode,
			Style:   yaml.FlowStyle,
			Content: []*yaml.Node{scalar(h.Column), scalar(h.Owner)},
		})
	}
	for _, t := range m.BelongsToMany {
		btm.Content = append(btm.Content, scalar(t))
	}
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("tableName"), scalar(m.TableName),
			scalar("className"), scalar(m.ClassName),
			scalar("jointTablePrefix"), scalar(m.JointTablePrefix),
			scalar("fields"), fields,
			scalar("defaults"), defaults,
			scalar("belongsTo"), belongsTo,
			scalar("hasMany"), hasMany,
			scalar("belongsToMany"), btm,
		},
	}
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}
