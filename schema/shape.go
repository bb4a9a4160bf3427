package schema

import (
	"fmt"
	"math/big"
	"strings"
)

// PreludeNamespace is the namespace of the shared scalar shapes.
const PreludeNamespace = "smithy.api"

// ShapeID identifies a shape by namespace and name.
type ShapeID struct {
	Namespace string
	Name      string
}

// ID returns the ShapeID for the given namespace and name.
func ID(namespace, name string) ShapeID {
	return ShapeID{Namespace: namespace, Name: name}
}

// ParseShapeID parses an absolute "namespace#Name" id.
func ParseShapeID(s string) (ShapeID, error) {
	ns, name, ok := strings.Cut(s, "#")
	if !ok || ns == "" || name == "" {
		return ShapeID{}, fmt.Errorf("schema: invalid shape id %q (want namespace#Name)", s)
	}
	return ShapeID{Namespace: ns, Name: name}, nil
}

// String returns the absolute form of the id.
func (id ShapeID) String() string {
	return id.Namespace + "#" + id.Name
}

// IsZero reports whether the id is unset.
func (id ShapeID) IsZero() bool {
	return id.Namespace == "" && id.Name == ""
}

// InPrelude reports whether the id belongs to the prelude namespace.
func (id ShapeID) InPrelude() bool {
	return id.Namespace == PreludeNamespace
}

// Compare orders ids by namespace then name.
func (id ShapeID) Compare(other ShapeID) int {
	if c := strings.Compare(id.Namespace, other.Namespace); c != 0 {
		return c
	}
	return strings.Compare(id.Name, other.Name)
}

// Length bounds the size of a string, blob or collection. A nil bound is
// unset.
type Length struct {
	Min *int64
	Max *int64
}

// Range bounds a numeric value. A nil bound is unset.
type Range struct {
	Min *big.Rat
	Max *big.Rat
}

// Shape is a node of the graph.
type Shape struct {
	ID   ShapeID
	Kind Kind
	// Members in declaration order. Aggregate kinds only.
	Members []*Member
	Length  *Length
	Range   *Range
	Pattern string
	// Sparse collections may hold null elements.
	Sparse bool
	// Boxed scalars are never stored inline.
	Boxed bool
	// Mixin marks a member-composition template.
	Mixin bool
	// Mixins lists the templates this shape was composed from. Informational;
	// their members are already flattened into Members.
	Mixins []ShapeID
	// Builder requests a builder entry point in the given style. Empty means
	// no builder.
	Builder    string
	Doc        string
	EnumValues []string
}

// Member returns the member with the given name.
func (s *Shape) Member(name string) (*Member, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// ElementMember returns the "member" member of a list or set.
func (s *Shape) ElementMember() *Member {
	m, _ := s.Member("member")
	return m
}

// KeyMember returns the key member of a map.
func (s *Shape) KeyMember() *Member {
	m, _ := s.Member("key")
	return m
}

// ValueMember returns the value member of a map.
func (s *Shape) ValueMember() *Member {
	m, _ := s.Member("value")
	return m
}

// PrimitiveCapable reports whether values of the shape can be stored
// inline as primitives. Only prelude scalars qualify.
func (s *Shape) PrimitiveCapable() bool {
	return s.ID.InPrelude() && s.Kind.IsScalarPrimitive()
}

func (s *Shape) String() string {
	return s.ID.String() + " (" + s.Kind.String() + ")"
}

// NewStructure returns a structure shape with the given members.
func NewStructure(id ShapeID, members ...*Member) *Shape {
	return &Shape{ID: id, Kind: Structure, Members: members}
}

// NewUnion returns a union shape with the given alternatives.
func NewUnion(id ShapeID, members ...*Member) *Shape {
	return &Shape{ID: id, Kind: Union, Members: members}
}

// NewList returns a list shape of the given element target.
func NewList(id ShapeID, element ShapeID) *Shape {
	return &Shape{ID: id, Kind: List, Members: []*Member{NewMember("member", element)}}
}

// NewSet returns a set shape of the given element target.
func NewSet(id ShapeID, element ShapeID) *Shape {
	return &Shape{ID: id, Kind: Set, Members: []*Member{NewMember("member", element)}}
}

// NewMap returns a map shape with the given key and value targets.
func NewMap(id ShapeID, key, value ShapeID) *Shape {
	return &Shape{ID: id, Kind: Map, Members: []*Member{
		NewMember("key", key),
		NewMember("value", value),
	}}
}

// NewScalar returns a model-defined scalar shape of the given kind.
func NewScalar(id ShapeID, kind Kind) *Shape {
	return &Shape{ID: id, Kind: kind}
}

// WithLength sets the shape's length bounds.
func (s *Shape) WithLength(min, max *int64) *Shape {
	s.Length = &Length{Min: min, Max: max}
	return s
}

// WithRange sets the shape's range bounds.
func (s *Shape) WithRange(min, max *big.Rat) *Shape {
	s.Range = &Range{Min: min, Max: max}
	return s
}

// WithPattern sets the shape's pattern.
func (s *Shape) WithPattern(p string) *Shape {
	s.Pattern = p
	return s
}

// WithBuilder requests a builder of the given style.
func (s *Shape) WithBuilder(style string) *Shape {
	s.Builder = style
	return s
}

// AsMixin marks the shape as a mixin template.
func (s *Shape) AsMixin() *Shape {
	s.Mixin = true
	return s
}

// AsSparse marks a collection as sparse.
func (s *Shape) AsSparse() *Shape {
	s.Sparse = true
	return s
}

// WithDoc sets the documentation text.
func (s *Shape) WithDoc(doc string) *Shape {
	s.Doc = doc
	return s
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Rat parses a decimal or fractional string into a *big.Rat. It panics on
// malformed input and is meant for literals.
func Rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic(fmt.Sprintf("schema: invalid rational %q", s))
	}
	return r
}
