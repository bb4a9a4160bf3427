package gen

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/Telenav/smithy-sub007/schema"
)

// Phase orders contributors within a plan.
type Phase int

// Phases in emission order.
const (
	PhaseClassDoc Phase = iota + 1
	PhaseFields
	PhaseConstructors
	PhaseGetters
	PhaseEquals
	PhaseHashCode
	PhaseToString
	PhaseBuilder
	PhaseDefaultInstance
	PhaseOther
)

var phaseNames = map[Phase]string{
	PhaseClassDoc:        "class-doc",
	PhaseFields:          "fields",
	PhaseConstructors:    "constructors",
	PhaseGetters:         "getters",
	PhaseEquals:          "equals",
	PhaseHashCode:        "hashcode",
	PhaseToString:        "tostring",
	PhaseBuilder:         "builder",
	PhaseDefaultInstance: "default-instance",
	PhaseOther:           "other",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Contributor is one generation decision handed to a back end. Providers
// must return fresh values; the pipeline attaches collected decorations to
// them.
type Contributor interface {
	Phase() Phase
	Describe() string
}

// Param is a named annotation argument.
type Param struct {
	Name  string
	Value any
}

// Annotation is a marker attached to a field, getter, constructor or
// constructor argument.
type Annotation struct {
	Name   string
	Params []Param
}

// Param returns the value of the named parameter.
func (a *Annotation) Param(name string) (any, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func (a *Annotation) String() string {
	if len(a.Params) == 0 {
		return "@" + a.Name
	}
	parts := make([]string, len(a.Params))
	for i, p := range a.Params {
		parts[i] = fmt.Sprintf("%s=%v", p.Name, p.Value)
	}
	return "@" + a.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ClassDoc is the summary documentation of the generated type.
type ClassDoc struct {
	Shape   schema.ShapeID
	Summary string
}

func (*ClassDoc) Phase() Phase { return PhaseClassDoc }

func (c *ClassDoc) Describe() string { return "class doc for " + c.Shape.String() }

// DocSection is an additional titled block of documentation.
type DocSection struct {
	Title string
	Body  string
}

func (*DocSection) Phase() Phase { return PhaseClassDoc }

func (d *DocSection) Describe() string { return "doc section " + d.Title }

// Field stores one member.
type Field struct {
	Member string
	Target schema.ShapeID
	Kind   schema.Kind
	// Nullable fields may be absent at runtime.
	Nullable bool
	// Primitive fields are stored inline.
	Primitive   bool
	Default     any
	Decorations []*Annotation
	Docs        []string
}

func (*Field) Phase() Phase { return PhaseFields }

func (f *Field) Describe() string {
	return fmt.Sprintf("field %s %s nullable=%t primitive=%t", f.Member, f.Target, f.Nullable, f.Primitive)
}

// AssignMode says how a constructor argument becomes a field value.
type AssignMode int

// Assignment modes.
const (
	// AssignDirect stores the argument unchanged.
	AssignDirect AssignMode = iota + 1
	// AssignDefaulting substitutes the declared default for an absent argument.
	AssignDefaulting
	// AssignNarrowing converts a widened convenience argument to the field width.
	AssignNarrowing
	// AssignUnboxing stores a primitive argument into a nullable-typed slot.
	AssignUnboxing
)

func (m AssignMode) String() string {
	switch m {
	case AssignDirect:
		return "direct"
	case AssignDefaulting:
		return "defaulting"
	case AssignNarrowing:
		return "narrowing"
	case AssignUnboxing:
		return "unboxing"
	}
	return "unknown"
}

// Assignment decides how one constructor argument is assigned.
type Assignment struct {
	Member  string
	Mode    AssignMode
	Default any
	// ArgKind is the kind the argument is declared as.
	ArgKind schema.Kind
}

// CheckKind is the kind of runtime argument validation.
type CheckKind int

// Argument checks.
const (
	CheckNotNull CheckKind = iota + 1
	CheckRange
	CheckLength
	CheckPattern
)

func (k CheckKind) String() string {
	switch k {
	case CheckNotNull:
		return "not-null"
	case CheckRange:
		return "range"
	case CheckLength:
		return "length"
	case CheckPattern:
		return "pattern"
	}
	return "unknown"
}

// Check is a runtime validation of one constructor argument.
type Check struct {
	Member  string
	Kind    CheckKind
	Min     *big.Rat
	Max     *big.Rat
	MinLen  *int64
	MaxLen  *int64
	Pattern string
}

// Argument is one constructor parameter.
type Argument struct {
	Member      string
	Assignment  *Assignment
	Annotations []*Annotation
	Checks      []*Check
}

// Constructor is one constructor of a given kind.
type Constructor struct {
	Kind        ConstructorKind
	Preferred   bool
	Args        []*Argument
	Annotations []*Annotation
	Docs        []*DocSection
}

func (*Constructor) Phase() Phase { return PhaseConstructors }

func (c *Constructor) Describe() string {
	names := make([]string, len(c.Args))
	for i, a := range c.Args {
		names[i] = a.Member
	}
	return fmt.Sprintf("constructor %s preferred=%t (%s)", c.Kind, c.Preferred, strings.Join(names, ", "))
}

// Argument returns the argument for the named member.
func (c *Constructor) Argument(member string) (*Argument, bool) {
	for _, a := range c.Args {
		if a.Member == member {
			return a, true
		}
	}
	return nil, false
}

// Getter exposes one member.
type Getter struct {
	Member string
	Name   string
	// Optional getters report presence separately from the value.
	Optional    bool
	Decorations []*Annotation
	Docs        []string
}

func (*Getter) Phase() Phase { return PhaseGetters }

func (g *Getter) Describe() string {
	return fmt.Sprintf("getter %s optional=%t", g.Name, g.Optional)
}

// TermStyle is how a member takes part in equality, hashing or formatting.
type TermStyle int

// Term styles.
const (
	// TermValue compares by value.
	TermValue TermStyle = iota + 1
	// TermFloat compares floating point bit patterns.
	TermFloat
	// TermDeep compares element by element.
	TermDeep
)

func (s TermStyle) String() string {
	switch s {
	case TermValue:
		return "value"
	case TermFloat:
		return "float"
	case TermDeep:
		return "deep"
	}
	return "unknown"
}

// Term is one member's contribution to equals, hashCode or toString.
type Term struct {
	Member   string
	Style    TermStyle
	Nullable bool
}

// Equals decides which members define equality.
type Equals struct {
	Members []string
	Terms   []*Term
}

func (*Equals) Phase() Phase { return PhaseEquals }

func (e *Equals) Describe() string { return "equals over " + strings.Join(e.Members, ", ") }

// HashCode decides which members feed the hash.
type HashCode struct {
	Members []string
	Terms   []*Term
}

func (*HashCode) Phase() Phase { return PhaseHashCode }

func (h *HashCode) Describe() string { return "hashCode over " + strings.Join(h.Members, ", ") }

// Wrapper is a head or tail fragment of the string form.
type Wrapper struct {
	Head bool
	Text string
}

// ToString decides the string form.
type ToString struct {
	Members []string
	Terms   []*Term
	Head    []string
	Tail    []string
}

func (*ToString) Phase() Phase { return PhaseToString }

func (t *ToString) Describe() string { return "toString over " + strings.Join(t.Members, ", ") }

// BuilderStyle is the style of a generated builder.
type BuilderStyle string

// Builder styles.
const (
	BuilderFlat   BuilderStyle = "flat"
	BuilderNested BuilderStyle = "nested"
)

// Builder requests a builder entry point.
type Builder struct {
	Style BuilderStyle
	// Kind is the constructor the builder delegates to.
	Kind ConstructorKind
}

func (*Builder) Phase() Phase { return PhaseBuilder }

func (b *Builder) Describe() string {
	return fmt.Sprintf("builder style=%s constructor=%s", b.Style, b.Kind)
}

// DefaultValue is a member value of the default instance.
type DefaultValue struct {
	Member string
	Value  any
	// Nested is set when the value is the default instance of a structure.
	Nested schema.ShapeID
}

// DefaultInstance requests a shared instance built from member defaults.
type DefaultInstance struct {
	Values []DefaultValue
}

func (*DefaultInstance) Phase() Phase { return PhaseDefaultInstance }

func (d *DefaultInstance) Describe() string {
	return fmt.Sprintf("default instance (%d values)", len(d.Values))
}

// MethodKind identifies a helper method.
type MethodKind int

// Helper methods.
const (
	// MethodIsEmpty reports whether no member is set.
	MethodIsEmpty MethodKind = iota + 1
	// MethodAsInt64 exposes a big integer member as int64.
	MethodAsInt64
	// MethodAsFloat64 exposes a big decimal member as float64.
	MethodAsFloat64
	// MethodBuilderEntry returns a new builder.
	MethodBuilderEntry
	// MethodFootprint reports the estimated instance size.
	MethodFootprint
)

// Method is a helper method contributed outside the fixed phases.
type Method struct {
	In     Phase
	Kind   MethodKind
	Name   string
	Member string
	Doc    string
}

func (m *Method) Phase() Phase { return m.In }

func (m *Method) Describe() string {
	if m.Member != "" {
		return "method " + m.Name + " for " + m.Member
	}
	return "method " + m.Name
}
