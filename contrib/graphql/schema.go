package graphql

import (
	"bytes"
	"fmt"
	"math/big"
	"slices"
	"strconv"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/Telenav/smithy-sub007/schema"
)

// Directive names.
const (
	DirectiveLength  = "length"
	DirectiveRange   = "range"
	DirectivePattern = "pattern"
)

// Render returns the GraphQL SDL of g.
func Render(g *schema.Graph, opts ...Option) (string, error) {
	doc, err := Document(g, opts...)
	if err != nil {
		return "", err
	}
	return Format(doc), nil
}

// Format prints a schema document.
func Format(doc *ast.SchemaDocument) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String()
}

// Document builds the schema document of g. Mixins are skipped; their
// members are already part of the structures using them.
func Document(g *schema.Graph, opts ...Option) (*ast.SchemaDocument, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	b := &docBuilder{graph: g, cfg: cfg, scalars: make(map[string]bool)}
	doc := &ast.SchemaDocument{}
	for _, s := range g.Shapes() {
		if s.Mixin {
			continue
		}
		defs, err := b.definitions(s)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, defs...)
	}
	names := make([]string, 0, len(b.scalars))
	for name := range b.scalars {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: name})
	}
	if cfg.Directives && b.directives {
		doc.Directives = directiveDefinitions()
	}
	return doc, nil
}

// Definition returns the object type of one structure.
func Definition(g *schema.Graph, s *schema.Shape, opts ...Option) (*ast.Definition, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	b := &docBuilder{graph: g, cfg: cfg, scalars: make(map[string]bool)}
	return b.object(s, ast.Object, s.ID.Name)
}

type docBuilder struct {
	graph      *schema.Graph
	cfg        *Config
	scalars    map[string]bool
	directives bool
}

func (b *docBuilder) definitions(s *schema.Shape) ([]*ast.Definition, error) {
	switch s.Kind {
	case schema.Structure:
		obj, err := b.object(s, ast.Object, s.ID.Name)
		if err != nil {
			return nil, err
		}
		defs := []*ast.Definition{obj}
		if b.cfg.Inputs {
			in, err := b.object(s, ast.InputObject, s.ID.Name+"Input")
			if err != nil {
				return nil, err
			}
			defs = append(defs, in)
		}
		return defs, nil
	case schema.Enum:
		def := &ast.Definition{Kind: ast.Enum, Name: s.ID.Name, Description: s.Doc}
		for _, v := range s.EnumValues {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: v})
		}
		return []*ast.Definition{def}, nil
	case schema.Union:
		def := &ast.Definition{Kind: ast.Union, Name: s.ID.Name, Description: s.Doc}
		for _, m := range s.Members {
			t, err := b.graph.Target(m)
			if err != nil {
				return nil, err
			}
			if t.Kind != schema.Structure {
				return nil, fmt.Errorf("graphql: union %s member %s must target a structure, not %s", s.ID, m.Name, t.Kind)
			}
			def.Types = append(def.Types, t.ID.Name)
		}
		return []*ast.Definition{def}, nil
	}
	return nil, nil
}

func (b *docBuilder) object(s *schema.Shape, kind ast.DefinitionKind, name string) (*ast.Definition, error) {
	def := &ast.Definition{Kind: kind, Name: name, Description: s.Doc}
	for _, m := range s.Members {
		t, err := b.graph.Target(m)
		if err != nil {
			return nil, err
		}
		typ, err := b.typeOf(m, t, kind == ast.InputObject)
		if err != nil {
			return nil, fmt.Errorf("graphql: %s member %s: %w", s.ID, m.Name, err)
		}
		f := &ast.FieldDefinition{Name: m.Name, Description: m.Doc, Type: typ}
		switch {
		case kind == ast.InputObject && m.HasDefault():
			f.DefaultValue = defaultValue(t, m.Default)
			f.Type.NonNull = false
		case kind == ast.InputObject:
			f.Type.NonNull = m.Required
		default:
			f.Type.NonNull = m.Defaulted()
		}
		if b.cfg.Directives {
			f.Directives = b.constraintDirectives(m, t)
		}
		def.Fields = append(def.Fields, f)
	}
	return def, nil
}

// typeOf maps a member's target to a nullable GraphQL type.
func (b *docBuilder) typeOf(m *schema.Member, t *schema.Shape, input bool) (*ast.Type, error) {
	switch t.Kind {
	case schema.Boolean:
		return ast.NamedType("Boolean", nil), nil
	case schema.Byte, schema.Short, schema.Integer, schema.IntEnum:
		return ast.NamedType("Int", nil), nil
	case schema.Float, schema.Double:
		return ast.NamedType("Float", nil), nil
	case schema.String:
		if m != nil && m.Identity {
			return ast.NamedType("ID", nil), nil
		}
		return ast.NamedType("String", nil), nil
	case schema.Enum:
		return ast.NamedType(t.ID.Name, nil), nil
	case schema.Structure:
		if input {
			return ast.NamedType(t.ID.Name+"Input", nil), nil
		}
		return ast.NamedType(t.ID.Name, nil), nil
	case schema.Union:
		if input {
			return nil, fmt.Errorf("union %s cannot be an input", t.ID)
		}
		return ast.NamedType(t.ID.Name, nil), nil
	case schema.List, schema.Set:
		em := t.ElementMember()
		et, err := b.graph.Target(em)
		if err != nil {
			return nil, err
		}
		elem, err := b.typeOf(nil, et, input)
		if err != nil {
			return nil, err
		}
		elem.NonNull = !t.Sparse && !(m != nil && m.Sparse)
		return ast.ListType(elem, nil), nil
	}
	name, ok := b.cfg.Scalars[t.Kind]
	if !ok {
		return nil, fmt.Errorf("no GraphQL type for %s", t.Kind)
	}
	b.scalars[name] = true
	return ast.NamedType(name, nil), nil
}

func (b *docBuilder) constraintDirectives(m *schema.Member, t *schema.Shape) ast.DirectiveList {
	var out ast.DirectiveList
	length := m.Length
	if length == nil {
		length = t.Length
	}
	if length != nil {
		d := &ast.Directive{Name: DirectiveLength}
		if length.Min != nil {
			d.Arguments = append(d.Arguments, intArg("min", *length.Min))
		}
		if length.Max != nil {
			d.Arguments = append(d.Arguments, intArg("max", *length.Max))
		}
		out = append(out, d)
	}
	rng := m.Range
	if rng == nil {
		rng = t.Range
	}
	if rng != nil {
		d := &ast.Directive{Name: DirectiveRange}
		if rng.Min != nil {
			d.Arguments = append(d.Arguments, ratArg("min", rng.Min))
		}
		if rng.Max != nil {
			d.Arguments = append(d.Arguments, ratArg("max", rng.Max))
		}
		out = append(out, d)
	}
	pattern := m.Pattern
	if pattern == "" {
		pattern = t.Pattern
	}
	if pattern != "" {
		out = append(out, &ast.Directive{Name: DirectivePattern, Arguments: ast.ArgumentList{
			{Name: "regex", Value: &ast.Value{Kind: ast.StringValue, Raw: pattern}},
		}})
	}
	if len(out) > 0 {
		b.directives = true
	}
	return out
}

func intArg(name string, v int64) *ast.Argument {
	return &ast.Argument{Name: name, Value: &ast.Value{Kind: ast.IntValue, Raw: strconv.FormatInt(v, 10)}}
}

// ratArg passes range bounds as strings so no precision is lost.
func ratArg(name string, r *big.Rat) *ast.Argument {
	return &ast.Argument{Name: name, Value: &ast.Value{Kind: ast.StringValue, Raw: r.RatString()}}
}

func defaultValue(t *schema.Shape, v any) *ast.Value {
	switch t.Kind {
	case schema.Boolean:
		return &ast.Value{Kind: ast.BooleanValue, Raw: fmt.Sprint(v)}
	case schema.Byte, schema.Short, schema.Integer, schema.IntEnum:
		return &ast.Value{Kind: ast.IntValue, Raw: fmt.Sprint(v)}
	case schema.Float, schema.Double:
		f, ok := v.(float64)
		if !ok {
			return &ast.Value{Kind: ast.FloatValue, Raw: fmt.Sprint(v)}
		}
		return &ast.Value{Kind: ast.FloatValue, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
	case schema.Enum:
		return &ast.Value{Kind: ast.EnumValue, Raw: fmt.Sprint(v)}
	}
	return &ast.Value{Kind: ast.StringValue, Raw: fmt.Sprint(v)}
}

func directiveDefinitions() ast.DirectiveDefinitionList {
	locations := []ast.DirectiveLocation{ast.LocationFieldDefinition, ast.LocationInputFieldDefinition}
	arg := func(name, typ string) *ast.ArgumentDefinition {
		return &ast.ArgumentDefinition{Name: name, Type: ast.NamedType(typ, nil)}
	}
	return ast.DirectiveDefinitionList{
		{
			Name:        DirectiveLength,
			Description: "Bounds the length of a string or the size of a list.",
			Arguments:   ast.ArgumentDefinitionList{arg("min", "Int"), arg("max", "Int")},
			Locations:   locations,
		},
		{
			Name:        DirectiveRange,
			Description: "Bounds a numeric value. Bounds are exact decimal or fractional literals.",
			Arguments:   ast.ArgumentDefinitionList{arg("min", "String"), arg("max", "String")},
			Locations:   locations,
		},
		{
			Name:        DirectivePattern,
			Description: "Requires a string to match a regular expression.",
			Arguments:   ast.ArgumentDefinitionList{{Name: "regex", Type: ast.NonNullNamedType("String", nil)}},
			Locations:   locations,
		},
	}
}
