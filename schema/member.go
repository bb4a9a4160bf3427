package schema

import "math/big"

// Member is a named edge from an aggregate shape to its target.
type Member struct {
	Name   string
	Target ShapeID
	// Required members must always carry a value.
	Required bool
	// Default is the declared default value, or nil when there is none.
	// Loaders store numbers as int64, float64 or *big.Rat.
	Default any
	// Identity members are the sole basis of equality when any are present.
	Identity bool
	// Boxed members are never stored inline.
	Boxed bool
	// Sparse allows null elements in the targeted collection.
	Sparse  bool
	Length  *Length
	Range   *Range
	Pattern string
	// Weight orders members within a structure. Ties keep declaration order.
	Weight int
	Doc    string
	// MixedIn is set by loaders on members copied from a mixin.
	MixedIn *ShapeID
}

// NewMember returns an optional member with the given target.
func NewMember(name string, target ShapeID) *Member {
	return &Member{Name: name, Target: target}
}

// HasDefault reports whether the member declares a default value.
func (m *Member) HasDefault() bool {
	return m.Default != nil
}

// Defaulted reports whether the member always has a value, either because
// it is required or because it has a default.
func (m *Member) Defaulted() bool {
	return m.Required || m.HasDefault()
}

// AsRequired marks the member required.
func (m *Member) AsRequired() *Member {
	m.Required = true
	return m
}

// AsIdentity marks the member as an identity member.
func (m *Member) AsIdentity() *Member {
	m.Identity = true
	return m
}

// AsBoxed marks the member boxed.
func (m *Member) AsBoxed() *Member {
	m.Boxed = true
	return m
}

// WithDefault sets the default value.
func (m *Member) WithDefault(v any) *Member {
	m.Default = v
	return m
}

// WithLength sets the member's length bounds.
func (m *Member) WithLength(min, max *int64) *Member {
	m.Length = &Length{Min: min, Max: max}
	return m
}

// WithRange sets the member's range bounds.
func (m *Member) WithRange(min, max *big.Rat) *Member {
	m.Range = &Range{Min: min, Max: max}
	return m
}

// WithPattern sets the member's pattern.
func (m *Member) WithPattern(p string) *Member {
	m.Pattern = p
	return m
}

// WithWeight sets the ordering weight.
func (m *Member) WithWeight(w int) *Member {
	m.Weight = w
	return m
}

// WithDoc sets the documentation text.
func (m *Member) WithDoc(doc string) *Member {
	m.Doc = doc
	return m
}
