package gen

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/modelgen/compiler/load"
)

type (
	// scan is the result of the first pass over one type. It depends on
	// nothing but the type itself.
	scan struct {
		schema   *load.Schema
		fields   []*Field
		edges    []*edge
		m2m      []*edge
		reserved []string
	}

	// edge is an outbound relationship found in the first pass.
	edge struct {
		column   string // empty for many-to-many
		owner    string // singular name of the declaring type
		target   string // singular name of the referenced type
		declared string // referenced type name as written
		field    string
	}

	// resolution is the result of the second pass.
	resolution struct {
		// hasMany is keyed by the registry name of the referenced type.
		hasMany map[string][]*HasMany
		// refs maps each edge to the registry name it resolved to.
		refs map[*edge]string
	}
)

// scanAll runs the first pass over every type. Types are independent, so
// they are scanned concurrently; each worker writes its own slot and the
// errors are joined in registry order.
func (g *Graph) scanAll(types []*load.Schema) ([]*scan, error) {
	var (
		scans = make([]*scan, len(types))
		errs  = make([]error, len(types))
		eg    errgroup.Group
	)
	eg.SetLimit(g.workers())
	for i, s := range types {
		eg.Go(func() error {
			scans[i], errs[i] = g.scan(s)
			return errs[i]
		})
	}
	if eg.Wait() != nil {
		return nil, errors.Join(errs...)
	}
	return scans, nil
}

// scan classifies the fields of one type.
func (g *Graph) scan(s *load.Schema) (*scan, error) {
	var (
		sc      = &scan{schema: s}
		owner   = g.naming.Singular(s.Name)
		seen    = make(map[string]bool, len(s.Fields))
		columns = make(map[string]string)
		errs    []error
	)
	for _, f := range s.Fields {
		if seen[f.Name] {
			errs = append(errs, NewSchemaError(s.Name, f.Name, "field redeclared", nil))
			continue
		}
		seen[f.Name] = true
		c, err := Classify(s.Name, f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		switch c.Role {
		case RoleReserved:
			sc.reserved = append(sc.reserved, f.Name)
		case RoleSingleOwner:
			column := c.ForeignKey
			if column == "" {
				column = g.naming.ForeignKey(c.Target)
			}
			if prev, ok := columns[column]; ok {
				errs = append(errs, NewSchemaError(s.Name, f.Name, fmt.Sprintf("foreign key %q already declared by field %s", column, prev), nil))
				continue
			}
			columns[column] = f.Name
			sc.edges = append(sc.edges, &edge{
				column:   column,
				owner:    owner,
				target:   g.naming.Singular(c.Target),
				declared: c.Target,
				field:    f.Name,
			})
		case RoleManyToMany:
			sc.m2m = append(sc.m2m, &edge{
				owner:    owner,
				target:   g.naming.Singular(c.Target),
				declared: c.Target,
				field:    f.Name,
			})
		default:
			sc.fields = append(sc.fields, &Field{
				Name:    f.Name,
				Type:    f.Type,
				Default: DefaultValue(f.Type.Name, c.Default),
				Pos:     f.Pos,
			})
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sc, nil
}

// resolve runs the second pass. It folds the edges of all scans, in
// registry order and then declaration order, into a new hasMany
// accumulator. The scans are only read.
func (g *Graph) resolve(scans []*scan) (*resolution, error) {
	var (
		res = &resolution{
			hasMany: make(map[string][]*HasMany),
			refs:    make(map[*edge]string),
		}
		errs []error
	)
	for _, sc := range scans {
		for _, e := range sc.edges {
			ref, err := g.lookup(sc.schema.Name, e)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			res.refs[e] = ref
			res.hasMany[ref] = append(res.hasMany[ref], &HasMany{
				Column:    e.column,
				Owner:     e.owner,
				OwnerType: sc.schema.Name,
			})
		}
		for _, e := range sc.m2m {
			ref, err := g.lookup(sc.schema.Name, e)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			res.refs[e] = ref
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return res, nil
}

// lookup finds the registry type an edge points to: first by the exact
// singular target name, then by its plural.
func (g *Graph) lookup(from string, e *edge) (string, error) {
	if _, ok := g.registry.Lookup(e.target); ok {
		return e.target, nil
	}
	plural := g.naming.Plural(e.target)
	if _, ok := g.registry.Lookup(plural); ok {
		return plural, nil
	}
	return "", NewEdgeError(from, e.declared, e.field, lo.Uniq([]string{e.target, plural})...)
}
