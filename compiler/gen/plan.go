package gen

import "github.com/Telenav/smithy-sub007/schema"

// Plan is the ordered set of decisions for one structure. Contributors are
// grouped by phase, in phase order.
type Plan struct {
	Shape        schema.ShapeID
	Kinds        []ConstructorKind
	Preferred    ConstructorKind
	Contributors []Contributor
}

// InPhase returns the contributors of phase, in order.
func (p *Plan) InPhase(phase Phase) []Contributor {
	var out []Contributor
	for _, c := range p.Contributors {
		if c.Phase() == phase {
			out = append(out, c)
		}
	}
	return out
}

// Phases returns the phase of every contributor, in order.
func (p *Plan) Phases() []Phase {
	out := make([]Phase, len(p.Contributors))
	for i, c := range p.Contributors {
		out[i] = c.Phase()
	}
	return out
}

func only[T Contributor](p *Plan) []T {
	var out []T
	for _, c := range p.Contributors {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func single[T Contributor](p *Plan) (T, bool) {
	all := only[T](p)
	if len(all) == 0 {
		var zero T
		return zero, false
	}
	return all[0], true
}

// ClassDoc returns the class documentation decision.
func (p *Plan) ClassDoc() (*ClassDoc, bool) { return single[*ClassDoc](p) }

// DocSections returns the additional class documentation.
func (p *Plan) DocSections() []*DocSection { return only[*DocSection](p) }

// Fields returns the field decisions.
func (p *Plan) Fields() []*Field { return only[*Field](p) }

// Field returns the field of the named member.
func (p *Plan) Field(member string) (*Field, bool) {
	for _, f := range p.Fields() {
		if f.Member == member {
			return f, true
		}
	}
	return nil, false
}

// Constructors returns one constructor per available kind.
func (p *Plan) Constructors() []*Constructor { return only[*Constructor](p) }

// Constructor returns the constructor of the given kind.
func (p *Plan) Constructor(kind ConstructorKind) (*Constructor, bool) {
	for _, c := range p.Constructors() {
		if c.Kind == kind {
			return c, true
		}
	}
	return nil, false
}

// PreferredConstructor returns the constructor of the preferred kind.
func (p *Plan) PreferredConstructor() (*Constructor, bool) {
	return p.Constructor(p.Preferred)
}

// Getters returns the getter decisions.
func (p *Plan) Getters() []*Getter { return only[*Getter](p) }

// Equals returns the equality decision.
func (p *Plan) Equals() (*Equals, bool) { return single[*Equals](p) }

// HashCode returns the hashing decision.
func (p *Plan) HashCode() (*HashCode, bool) { return single[*HashCode](p) }

// ToString returns the string form decision.
func (p *Plan) ToString() (*ToString, bool) { return single[*ToString](p) }

// Builder returns the builder decision, if one was requested.
func (p *Plan) Builder() (*Builder, bool) { return single[*Builder](p) }

// DefaultInstance returns the default instance decision.
func (p *Plan) DefaultInstance() (*DefaultInstance, bool) { return single[*DefaultInstance](p) }

// Methods returns the helper methods of every phase.
func (p *Plan) Methods() []*Method { return only[*Method](p) }

// Method returns the first helper method of the given kind.
func (p *Plan) Method(kind MethodKind) (*Method, bool) {
	for _, m := range p.Methods() {
		if m.Kind == kind {
			return m, true
		}
	}
	return nil, false
}
