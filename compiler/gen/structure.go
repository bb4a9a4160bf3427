package gen

import (
	"cmp"
	"slices"

	"github.com/Telenav/smithy-sub007/schema"
)

// Member is a structure member with its target resolved.
type Member struct {
	*schema.Member
	Target *schema.Shape
	// Index is the declaration index.
	Index int
}

// Optional reports whether the member may be absent: it is neither required
// nor defaulted.
func (m *Member) Optional() bool {
	return !m.Defaulted()
}

// ModelDefined reports whether the target is defined by the model rather
// than the prelude.
func (m *Member) ModelDefined() bool {
	return !m.Target.ID.InPrelude()
}

// Inline reports whether the member is stored as a primitive.
func (m *Member) Inline() bool {
	return m.Target.PrimitiveCapable() && m.Defaulted() && !m.Boxed && !m.Target.Boxed
}

// Length returns the member's length constraint, falling back to the target's.
func (m *Member) Length() *schema.Length {
	if m.Member.Length != nil {
		return m.Member.Length
	}
	return m.Target.Length
}

// Range returns the member's range constraint, falling back to the target's.
func (m *Member) Range() *schema.Range {
	if m.Member.Range != nil {
		return m.Member.Range
	}
	return m.Target.Range
}

// Pattern returns the member's pattern, falling back to the target's.
func (m *Member) Pattern() string {
	if m.Member.Pattern != "" {
		return m.Member.Pattern
	}
	return m.Target.Pattern
}

// Sparse reports whether null collection elements are allowed.
func (m *Member) Sparse() bool {
	return m.Member.Sparse || m.Target.Sparse
}

// Structure is the read-only unit the pipeline plans: a structure shape
// with its members resolved and sorted by weight.
type Structure struct {
	Shape   *schema.Shape
	Graph   *schema.Graph
	members []*Member
}

// NewStructure resolves the members of shape against g. Members are sorted
// by weight; equal weights keep declaration order.
func NewStructure(g *schema.Graph, shape *schema.Shape, omit ...string) (*Structure, error) {
	if shape.Kind != schema.Structure {
		return nil, NewConfigurationError(shape.ID, "", "not a structure: "+shape.Kind.String(), nil)
	}
	s := &Structure{Shape: shape, Graph: g}
	for i, m := range shape.Members {
		if slices.Contains(omit, m.Name) {
			continue
		}
		target, err := g.Target(m)
		if err != nil {
			return nil, NewConfigurationError(shape.ID, m.Name, "unresolved target", err)
		}
		s.members = append(s.members, &Member{Member: m, Target: target, Index: i})
	}
	slices.SortStableFunc(s.members, func(a, b *Member) int {
		return cmp.Compare(a.Weight, b.Weight)
	})
	return s, nil
}

// ID returns the shape id.
func (s *Structure) ID() schema.ShapeID {
	return s.Shape.ID
}

// Name returns the shape name.
func (s *Structure) Name() string {
	return s.Shape.ID.Name
}

// Members returns the members in weight order.
func (s *Structure) Members() []*Member {
	return s.members
}

// MemberNames returns the member names in weight order.
func (s *Structure) MemberNames() []string {
	names := make([]string, len(s.members))
	for i, m := range s.members {
		names[i] = m.Name
	}
	return names
}

// MembersSortedByName returns the members ordered by name.
func (s *Structure) MembersSortedByName() []*Member {
	out := slices.Clone(s.members)
	slices.SortFunc(out, func(a, b *Member) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Member returns the named member.
func (s *Structure) Member(name string) (*Member, bool) {
	for _, m := range s.members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// IdentityMembers returns the members flagged as identity, in weight order.
func (s *Structure) IdentityMembers() []*Member {
	var out []*Member
	for _, m := range s.members {
		if m.Identity {
			out = append(out, m)
		}
	}
	return out
}

// HasIdentity reports whether any member is an identity member.
func (s *Structure) HasIdentity() bool {
	return len(s.IdentityMembers()) > 0
}

// IsMixin reports whether the shape is a mixin template.
func (s *Structure) IsMixin() bool {
	return s.Shape.Mixin
}

// BuilderStyle returns the requested builder style, or "" for none.
func (s *Structure) BuilderStyle() BuilderStyle {
	return BuilderStyle(s.Shape.Builder)
}

// AllOptional reports whether every member may be absent.
func (s *Structure) AllOptional() bool {
	for _, m := range s.members {
		if !m.Optional() {
			return false
		}
	}
	return true
}

func names(members []*Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}
