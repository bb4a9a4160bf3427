package gen

import (
	"fmt"
	"math"

	"github.com/Telenav/smithy-sub007/schema"
)

// Precedences of the built-in providers. Discovered extensions with a lower
// precedence are queried before them.
const (
	PrecedenceIdentity    = 10
	PrecedenceConstraints = 20
	PrecedenceBuilder     = 30
	PrecedenceDocs        = 40
	PrecedenceDefault     = math.MaxInt32
)

// DefaultExtension is the backstop of every chain. It has an opinion on every
// override hook, so a plan is complete even when no other provider is
// installed.
type DefaultExtension struct {
	BaseExtension
}

func (DefaultExtension) Precedence() int { return PrecedenceDefault }

func (DefaultExtension) ClassDoc(ctx *Context) (Maybe[*ClassDoc], error) {
	summary := ctx.Structure.Shape.Doc
	if summary == "" {
		summary = fmt.Sprintf("Generated from %s.", ctx.Shape())
	}
	return Some(&ClassDoc{Shape: ctx.Shape(), Summary: summary}), nil
}

func (DefaultExtension) Field(_ *Context, m *Member) (Maybe[*Field], error) {
	return Some(&Field{
		Member:    m.Name,
		Target:    m.Target.ID,
		Kind:      m.Target.Kind,
		Nullable:  m.Optional(),
		Primitive: m.Inline(),
		Default:   m.Default,
	}), nil
}

func (DefaultExtension) Getter(_ *Context, m *Member) (Maybe[*Getter], error) {
	return Some(&Getter{Member: m.Name, Name: m.Name, Optional: m.Optional()}), nil
}

// Assignment declares primitive arguments only for the primitive and
// convenience constructors; the deserialization constructor always takes the
// nullable form and substitutes defaults.
func (DefaultExtension) Assignment(_ *Context, m *Member, kind ConstructorKind) (Maybe[*Assignment], error) {
	a := &Assignment{Member: m.Name, Mode: AssignDirect, ArgKind: m.Target.Kind}
	switch {
	case kind == Convenience && m.Inline() && widensToInt(m.Target.Kind):
		a.Mode, a.ArgKind = AssignNarrowing, schema.Integer
	case kind == Convenience && m.Inline() && m.Target.Kind == schema.Float:
		a.Mode, a.ArgKind = AssignNarrowing, schema.Double
	case kind != Deserialization && m.Inline():
		a.Mode = AssignDirect
	case m.HasDefault():
		a.Mode, a.Default = AssignDefaulting, m.Default
	case m.Inline():
		a.Mode = AssignUnboxing
	}
	return Some(a), nil
}

func (DefaultExtension) Equals(ctx *Context) (Maybe[*Equals], error) {
	return Some(&Equals{Members: ctx.Structure.MemberNames()}), nil
}

func (DefaultExtension) HashCode(ctx *Context) (Maybe[*HashCode], error) {
	return Some(&HashCode{Members: ctx.Structure.MemberNames()}), nil
}

func (DefaultExtension) ToString(ctx *Context) (Maybe[*ToString], error) {
	return Some(&ToString{Members: names(ctx.Structure.MembersSortedByName())}), nil
}

// DefaultInstance is offered when every member has a default, directly or
// through a nested structure whose members all have defaults.
func (DefaultExtension) DefaultInstance(ctx *Context) (Maybe[*DefaultInstance], error) {
	members := ctx.Structure.Members()
	if len(members) == 0 {
		return None[*DefaultInstance](), nil
	}
	seen := map[schema.ShapeID]bool{ctx.Shape(): true}
	d := &DefaultInstance{}
	for _, m := range members {
		switch {
		case m.HasDefault():
			d.Values = append(d.Values, DefaultValue{Member: m.Name, Value: m.Default})
		case m.Target.Kind == schema.Structure && allDefaulted(ctx.Graph, m.Target, seen):
			d.Values = append(d.Values, DefaultValue{Member: m.Name, Nested: m.Target.ID})
		default:
			return None[*DefaultInstance](), nil
		}
	}
	return Some(d), nil
}

func allDefaulted(g *schema.Graph, s *schema.Shape, seen map[schema.ShapeID]bool) bool {
	if seen[s.ID] || len(s.Members) == 0 {
		return false
	}
	seen[s.ID] = true
	defer delete(seen, s.ID)
	for _, m := range s.Members {
		if m.HasDefault() {
			continue
		}
		t, err := g.Target(m)
		if err != nil || t.Kind != schema.Structure || !allDefaulted(g, t, seen) {
			return false
		}
	}
	return true
}

func (DefaultExtension) ConstructorKinds(ctx *Context) ([]ConstructorKind, error) {
	kinds := []ConstructorKind{Deserialization}
	var primitives, convenience bool
	for _, m := range ctx.Structure.Members() {
		if !m.Inline() {
			continue
		}
		primitives = true
		if widensToInt(m.Target.Kind) || m.Target.Kind == schema.Float {
			convenience = true
		}
	}
	if primitives {
		kinds = append(kinds, Primitives)
	}
	if convenience {
		kinds = append(kinds, Convenience)
	}
	return kinds, nil
}

var kindDocs = map[ConstructorKind]string{
	Deserialization: "Accepts every member in its nullable form and substitutes declared defaults.",
	Primitives:      "Accepts members that always have a value as primitives.",
	Convenience:     "Accepts byte and short members as int and float members as double.",
}

func (DefaultExtension) ConstructorDocs(_ *Context, kind ConstructorKind) ([]*DocSection, error) {
	return []*DocSection{{Title: kind.String(), Body: kindDocs[kind]}}, nil
}

func (DefaultExtension) MemberDocs(_ *Context, m *Member) ([]string, error) {
	var docs []string
	if m.Member.Doc != "" {
		docs = append(docs, m.Member.Doc)
	}
	switch {
	case m.HasDefault():
		docs = append(docs, fmt.Sprintf("Defaults to %v when absent.", m.Default))
	case m.Optional():
		docs = append(docs, "May be absent.")
	}
	return docs, nil
}

func (DefaultExtension) EqualsTerms(_ *Context, m *Member) ([]*Term, error) {
	return []*Term{term(m)}, nil
}

func (DefaultExtension) HashTerms(_ *Context, m *Member) ([]*Term, error) {
	return []*Term{term(m)}, nil
}

func (DefaultExtension) ToStringTerms(_ *Context, m *Member) ([]*Term, error) {
	return []*Term{term(m)}, nil
}

func (DefaultExtension) Contributors(ctx *Context, phase Phase) ([]Contributor, error) {
	if phase != PhaseOther || len(ctx.Structure.Members()) == 0 || !ctx.Structure.AllOptional() {
		return nil, nil
	}
	return []Contributor{&Method{
		In:   PhaseOther,
		Kind: MethodIsEmpty,
		Name: "IsEmpty",
		Doc:  "IsEmpty reports whether no member is set.",
	}}, nil
}

// MemberContributors adds fixed-width accessors for arbitrary-precision
// members.
func (DefaultExtension) MemberContributors(_ *Context, m *Member) ([]Contributor, error) {
	switch m.Target.Kind {
	case schema.BigInteger:
		return []Contributor{&Method{In: PhaseOther, Kind: MethodAsInt64, Name: m.Name + "AsInt64", Member: m.Name}}, nil
	case schema.BigDecimal:
		return []Contributor{&Method{In: PhaseOther, Kind: MethodAsFloat64, Name: m.Name + "AsFloat64", Member: m.Name}}, nil
	}
	return nil, nil
}

func term(m *Member) *Term {
	t := &Term{Member: m.Name, Style: TermValue, Nullable: !m.Inline()}
	switch m.Target.Kind {
	case schema.Float, schema.Double:
		t.Style = TermFloat
	case schema.List, schema.Set, schema.Map, schema.Blob, schema.Document:
		t.Style = TermDeep
	}
	return t
}

func widensToInt(k schema.Kind) bool {
	return k == schema.Byte || k == schema.Short
}
