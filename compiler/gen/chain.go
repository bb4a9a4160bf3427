package gen

import (
	"cmp"
	"reflect"
	"slices"
)

// Chain is an immutable, ordered composition of extensions. Composition
// flattens nested chains, and a provider whose concrete type already
// appears in the chain is not added again, so composing a provider with
// itself (or with another instance of its type) changes nothing.
type Chain struct {
	leaves []Extension
}

var _ Extension = (*Chain)(nil)

// NewChain returns a chain querying the extensions in the given order.
func NewChain(exts ...Extension) *Chain {
	c := &Chain{}
	for _, e := range exts {
		c = c.AndThen(e)
	}
	return c
}

// AndThen returns a chain that queries first, then next.
func AndThen(first, next Extension) *Chain {
	return NewChain(first).AndThen(next)
}

// PrecededBy returns a chain that queries before, then ext.
func PrecededBy(ext, before Extension) *Chain {
	return NewChain(before).AndThen(ext)
}

// AndThen returns a new chain with next's providers appended.
func (c *Chain) AndThen(next Extension) *Chain {
	out := &Chain{leaves: slices.Clone(c.leaves)}
	for _, e := range flatten(next) {
		if !out.has(e) {
			out.leaves = append(out.leaves, e)
		}
	}
	return out
}

// PrecededBy returns a new chain with before's providers queried first.
func (c *Chain) PrecededBy(before Extension) *Chain {
	return NewChain(before).AndThen(c)
}

// Compose orders discovered extensions by precedence, keeping discovery
// order among equals, and places defaults after all of them.
func Compose(defaults Extension, discovered ...Extension) *Chain {
	sorted := slices.Clone(discovered)
	sorted = slices.DeleteFunc(sorted, func(e Extension) bool { return e == nil })
	slices.SortStableFunc(sorted, func(a, b Extension) int {
		return cmp.Compare(a.Precedence(), b.Precedence())
	})
	return NewChain(sorted...).AndThen(defaults)
}

// Leaves returns the providers in query order.
func (c *Chain) Leaves() []Extension {
	return slices.Clone(c.leaves)
}

// Len returns the number of providers.
func (c *Chain) Len() int {
	return len(c.leaves)
}

func (c *Chain) has(e Extension) bool {
	t := reflect.TypeOf(e)
	return slices.ContainsFunc(c.leaves, func(l Extension) bool {
		return reflect.TypeOf(l) == t
	})
}

func flatten(e Extension) []Extension {
	switch e := e.(type) {
	case nil:
		return nil
	case *Chain:
		if e == nil {
			return nil
		}
		return e.leaves
	default:
		return []Extension{e}
	}
}

// first resolves an override hook: the first provider with an opinion wins.
func first[T any](c *Chain, hook func(Extension) (Maybe[T], error)) (Maybe[T], error) {
	candidates := make([]func() (Maybe[T], error), len(c.leaves))
	for i, e := range c.leaves {
		candidates[i] = func() (Maybe[T], error) { return hook(e) }
	}
	return FirstSome(candidates...)
}

// all resolves a collect hook: every provider's values, in chain order.
func all[T any](c *Chain, hook func(Extension) ([]T, error)) ([]T, error) {
	var out []T
	for _, e := range c.leaves {
		vs, err := hook(e)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

// Precedence returns the precedence of the first provider.
func (c *Chain) Precedence() int {
	if len(c.leaves) == 0 {
		return 0
	}
	return c.leaves[0].Precedence()
}

func (c *Chain) ClassDoc(ctx *Context) (Maybe[*ClassDoc], error) {
	return first(c, func(e Extension) (Maybe[*ClassDoc], error) { return e.ClassDoc(ctx) })
}

func (c *Chain) Field(ctx *Context, m *Member) (Maybe[*Field], error) {
	return first(c, func(e Extension) (Maybe[*Field], error) { return e.Field(ctx, m) })
}

func (c *Chain) Getter(ctx *Context, m *Member) (Maybe[*Getter], error) {
	return first(c, func(e Extension) (Maybe[*Getter], error) { return e.Getter(ctx, m) })
}

func (c *Chain) Assignment(ctx *Context, m *Member, kind ConstructorKind) (Maybe[*Assignment], error) {
	return first(c, func(e Extension) (Maybe[*Assignment], error) { return e.Assignment(ctx, m, kind) })
}

func (c *Chain) Equals(ctx *Context) (Maybe[*Equals], error) {
	return first(c, func(e Extension) (Maybe[*Equals], error) { return e.Equals(ctx) })
}

func (c *Chain) HashCode(ctx *Context) (Maybe[*HashCode], error) {
	return first(c, func(e Extension) (Maybe[*HashCode], error) { return e.HashCode(ctx) })
}

func (c *Chain) ToString(ctx *Context) (Maybe[*ToString], error) {
	return first(c, func(e Extension) (Maybe[*ToString], error) { return e.ToString(ctx) })
}

func (c *Chain) DefaultInstance(ctx *Context) (Maybe[*DefaultInstance], error) {
	return first(c, func(e Extension) (Maybe[*DefaultInstance], error) { return e.DefaultInstance(ctx) })
}

func (c *Chain) ConstructorKinds(ctx *Context) ([]ConstructorKind, error) {
	return all(c, func(e Extension) ([]ConstructorKind, error) { return e.ConstructorKinds(ctx) })
}

func (c *Chain) ConstructorAnnotations(ctx *Context, kind ConstructorKind) ([]*Annotation, error) {
	return all(c, func(e Extension) ([]*Annotation, error) { return e.ConstructorAnnotations(ctx, kind) })
}

func (c *Chain) ConstructorDocs(ctx *Context, kind ConstructorKind) ([]*DocSection, error) {
	return all(c, func(e Extension) ([]*DocSection, error) { return e.ConstructorDocs(ctx, kind) })
}

func (c *Chain) ArgumentAnnotations(ctx *Context, m *Member, kind ConstructorKind) ([]*Annotation, error) {
	return all(c, func(e Extension) ([]*Annotation, error) { return e.ArgumentAnnotations(ctx, m, kind) })
}

func (c *Chain) ArgumentChecks(ctx *Context, m *Member, kind ConstructorKind) ([]*Check, error) {
	return all(c, func(e Extension) ([]*Check, error) { return e.ArgumentChecks(ctx, m, kind) })
}

func (c *Chain) ClassDocSections(ctx *Context) ([]*DocSection, error) {
	return all(c, func(e Extension) ([]*DocSection, error) { return e.ClassDocSections(ctx) })
}

func (c *Chain) MemberDocs(ctx *Context, m *Member) ([]string, error) {
	return all(c, func(e Extension) ([]string, error) { return e.MemberDocs(ctx, m) })
}

func (c *Chain) FieldDecorations(ctx *Context, m *Member) ([]*Annotation, error) {
	return all(c, func(e Extension) ([]*Annotation, error) { return e.FieldDecorations(ctx, m) })
}

func (c *Chain) GetterDecorations(ctx *Context, m *Member) ([]*Annotation, error) {
	return all(c, func(e Extension) ([]*Annotation, error) { return e.GetterDecorations(ctx, m) })
}

func (c *Chain) EqualsTerms(ctx *Context, m *Member) ([]*Term, error) {
	return all(c, func(e Extension) ([]*Term, error) { return e.EqualsTerms(ctx, m) })
}

func (c *Chain) HashTerms(ctx *Context, m *Member) ([]*Term, error) {
	return all(c, func(e Extension) ([]*Term, error) { return e.HashTerms(ctx, m) })
}

func (c *Chain) ToStringTerms(ctx *Context, m *Member) ([]*Term, error) {
	return all(c, func(e Extension) ([]*Term, error) { return e.ToStringTerms(ctx, m) })
}

func (c *Chain) ToStringWrappers(ctx *Context) ([]*Wrapper, error) {
	return all(c, func(e Extension) ([]*Wrapper, error) { return e.ToStringWrappers(ctx) })
}

func (c *Chain) Contributors(ctx *Context, phase Phase) ([]Contributor, error) {
	return all(c, func(e Extension) ([]Contributor, error) { return e.Contributors(ctx, phase) })
}

func (c *Chain) MemberContributors(ctx *Context, m *Member) ([]Contributor, error) {
	return all(c, func(e Extension) ([]Contributor, error) { return e.MemberContributors(ctx, m) })
}
