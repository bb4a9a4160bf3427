package gen

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Telenav/smithy-sub007/compiler/size"
	"github.com/Telenav/smithy-sub007/schema"
)

// Pipeline plans structures of one graph against one extension chain. A
// pipeline is not safe for concurrent use because its size estimator caches
// results; create one per worker and share the chain.
type Pipeline struct {
	graph  *schema.Graph
	ext    Extension
	sizes  *size.Estimator
	logger *slog.Logger
	policy PreferredKindPolicy
	omit   []string
}

// NewPipeline returns a pipeline over g. A nil ext composes the chain
// described by cfg; a nil cfg uses the defaults.
func NewPipeline(g *schema.Graph, ext Extension, cfg *Config) (*Pipeline, error) {
	if g == nil {
		return nil, NewConfigError("Graph", nil, "graph cannot be nil")
	}
	if cfg == nil {
		var err error
		if cfg, err = NewConfig(); err != nil {
			return nil, err
		}
	}
	if ext == nil {
		ext = cfg.Compose()
	}
	est, err := cfg.NewEstimator(g)
	if err != nil {
		return nil, NewConfigError("Sizes", cfg.Sizes, err.Error())
	}
	return &Pipeline{
		graph:  g,
		ext:    ext,
		sizes:  est,
		logger: cfg.logger(),
		policy: cfg.policy(),
	}, nil
}

// Omitting returns a pipeline that plans structures without the named
// members, as for partial payload types.
func (p *Pipeline) Omitting(members ...string) *Pipeline {
	c := *p
	c.omit = append(slices.Clone(p.omit), members...)
	return &c
}

// Sizes returns the pipeline's estimator.
func (p *Pipeline) Sizes() *size.Estimator {
	return p.sizes
}

// Plan decides the contributors of the structure with the given id.
func (p *Pipeline) Plan(id schema.ShapeID) (*Plan, error) {
	shape, err := p.graph.Expect(id)
	if err != nil {
		return nil, NewConfigurationError(id, "", "unknown shape", err)
	}
	s, err := NewStructure(p.graph, shape, p.omit...)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	ctx := &Context{Structure: s, Graph: p.graph, Sizes: p.sizes, Logger: p.logger}
	b := &planner{ext: p.ext, ctx: ctx, plan: &Plan{Shape: id}}
	if err := b.selectKinds(p.policy); err != nil {
		return nil, err
	}
	for _, step := range []struct {
		phase Phase
		run   func() error
	}{
		{PhaseClassDoc, b.classDoc},
		{PhaseFields, b.fields},
		{PhaseConstructors, b.constructors},
		{PhaseGetters, b.getters},
		{PhaseEquals, b.equals},
		{PhaseHashCode, b.hashCode},
		{PhaseToString, b.toString},
		{PhaseBuilder, b.builder},
		{PhaseDefaultInstance, b.defaultInstance},
		{PhaseOther, b.other},
	} {
		before := len(b.plan.Contributors)
		if err := step.run(); err != nil {
			return nil, wrapHook(step.phase, id, err)
		}
		p.logger.Debug("planned phase",
			"shape", id.String(),
			"phase", step.phase.String(),
			"contributors", len(b.plan.Contributors)-before,
		)
	}
	return b.plan, nil
}

// planner assembles one plan.
type planner struct {
	ext  Extension
	ctx  *Context
	plan *Plan
}

func (b *planner) add(cs ...Contributor) {
	b.plan.Contributors = append(b.plan.Contributors, cs...)
}

// collected appends the free-standing contributors of phase.
func (b *planner) collected(phase Phase) error {
	cs, err := b.ext.Contributors(b.ctx, phase)
	if err != nil {
		return err
	}
	return b.addIn(phase, cs)
}

func (b *planner) addIn(phase Phase, cs []Contributor) error {
	for _, c := range cs {
		if c == nil {
			continue
		}
		if c.Phase() != phase {
			return NewGenerationError(phase, b.ctx.Shape(),
				fmt.Sprintf("contributor %q belongs to phase %s", c.Describe(), c.Phase()), nil)
		}
		b.add(c)
	}
	return nil
}

func (b *planner) selectKinds(policy PreferredKindPolicy) error {
	kinds, err := b.ext.ConstructorKinds(b.ctx)
	if err != nil {
		return wrapHook(PhaseConstructors, b.ctx.Shape(), err)
	}
	kinds = normalizeKinds(kinds)
	preferred := policy.Select(kinds)
	if !slices.Contains(kinds, preferred) {
		return NewGenerationError(PhaseConstructors, b.ctx.Shape(),
			fmt.Sprintf("policy %s selected unavailable constructor kind %s", policy.Name(), preferred), nil)
	}
	b.ctx.kinds, b.ctx.preferred = kinds, preferred
	b.plan.Kinds, b.plan.Preferred = kinds, preferred
	return nil
}

func (b *planner) classDoc() error {
	doc, err := b.ext.ClassDoc(b.ctx)
	if err != nil {
		return err
	}
	d, ok, err := decided(b, doc, PhaseClassDoc, "class doc")
	if err != nil {
		return err
	}
	if ok {
		b.add(d)
	}
	sections, err := b.ext.ClassDocSections(b.ctx)
	if err != nil {
		return err
	}
	for _, s := range sections {
		b.add(s)
	}
	return b.collected(PhaseClassDoc)
}

func (b *planner) fields() error {
	for _, m := range b.ctx.Structure.Members() {
		f, err := b.ext.Field(b.ctx, m)
		if err != nil {
			return err
		}
		field, ok, err := decided(b, f, PhaseFields, "field")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		decorations, err := b.ext.FieldDecorations(b.ctx, m)
		if err != nil {
			return err
		}
		docs, err := b.ext.MemberDocs(b.ctx, m)
		if err != nil {
			return err
		}
		field.Decorations = append(field.Decorations, decorations...)
		field.Docs = append(field.Docs, docs...)
		b.add(field)
	}
	return b.collected(PhaseFields)
}

// constructors makes one pass per available kind. Constructor and argument
// annotations are only collected for the preferred kind.
func (b *planner) constructors() error {
	for _, kind := range b.ctx.kinds {
		preferred := kind == b.ctx.preferred
		c := &Constructor{Kind: kind, Preferred: preferred}
		if preferred {
			annotations, err := b.ext.ConstructorAnnotations(b.ctx, kind)
			if err != nil {
				return err
			}
			c.Annotations = annotations
		}
		docs, err := b.ext.ConstructorDocs(b.ctx, kind)
		if err != nil {
			return err
		}
		c.Docs = docs
		for _, m := range b.ctx.Structure.Members() {
			arg, err := b.argument(m, kind, preferred)
			if err != nil {
				return err
			}
			c.Args = append(c.Args, arg)
		}
		b.add(c)
	}
	return b.collected(PhaseConstructors)
}

func (b *planner) argument(m *Member, kind ConstructorKind, preferred bool) (*Argument, error) {
	a, err := b.ext.Assignment(b.ctx, m, kind)
	if err != nil {
		return nil, err
	}
	assignment, ok, err := decided(b, a, PhaseConstructors, "assignment")
	if err != nil {
		return nil, err
	}
	if !ok {
		assignment = &Assignment{Member: m.Name, Mode: AssignDirect, ArgKind: m.Target.Kind}
	}
	arg := &Argument{Member: m.Name, Assignment: assignment}
	if preferred {
		if arg.Annotations, err = b.ext.ArgumentAnnotations(b.ctx, m, kind); err != nil {
			return nil, err
		}
	}
	if arg.Checks, err = b.ext.ArgumentChecks(b.ctx, m, kind); err != nil {
		return nil, err
	}
	return arg, nil
}

func (b *planner) getters() error {
	for _, m := range b.ctx.Structure.Members() {
		g, err := b.ext.Getter(b.ctx, m)
		if err != nil {
			return err
		}
		getter, ok, err := decided(b, g, PhaseGetters, "getter")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		decorations, err := b.ext.GetterDecorations(b.ctx, m)
		if err != nil {
			return err
		}
		docs, err := b.ext.MemberDocs(b.ctx, m)
		if err != nil {
			return err
		}
		getter.Decorations = append(getter.Decorations, decorations...)
		getter.Docs = append(getter.Docs, docs...)
		b.add(getter)
	}
	return b.collected(PhaseGetters)
}

// decided unwraps an override answer. An extension answering Some with a nil
// decision is a generation error of phase.
func decided[T comparable](b *planner, m Maybe[T], phase Phase, what string) (T, bool, error) {
	v, ok := m.Get()
	var zero T
	if ok && v == zero {
		return zero, false, NewGenerationError(phase, b.ctx.Shape(), "extension returned an empty "+what+" decision", nil)
	}
	return v, ok, nil
}

// terms collects the per-member terms of the named members.
func (b *planner) terms(members []string, hook func(*Context, *Member) ([]*Term, error)) ([]*Term, error) {
	var out []*Term
	for _, name := range members {
		m, ok := b.ctx.Structure.Member(name)
		if !ok {
			return nil, NewConfigurationError(b.ctx.Shape(), name, "decision names an unknown member", nil)
		}
		ts, err := hook(b.ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

func (b *planner) equals() error {
	e, err := b.ext.Equals(b.ctx)
	if err != nil {
		return err
	}
	eq, ok, err := decided(b, e, PhaseEquals, "equals")
	if err != nil {
		return err
	}
	if ok {
		terms, err := b.terms(eq.Members, b.ext.EqualsTerms)
		if err != nil {
			return err
		}
		eq.Terms = append(eq.Terms, terms...)
		b.add(eq)
	}
	return b.collected(PhaseEquals)
}

func (b *planner) hashCode() error {
	h, err := b.ext.HashCode(b.ctx)
	if err != nil {
		return err
	}
	hc, ok, err := decided(b, h, PhaseHashCode, "hash code")
	if err != nil {
		return err
	}
	if ok {
		terms, err := b.terms(hc.Members, b.ext.HashTerms)
		if err != nil {
			return err
		}
		hc.Terms = append(hc.Terms, terms...)
		b.add(hc)
	}
	return b.collected(PhaseHashCode)
}

func (b *planner) toString() error {
	t, err := b.ext.ToString(b.ctx)
	if err != nil {
		return err
	}
	ts, ok, err := decided(b, t, PhaseToString, "string form")
	if err != nil {
		return err
	}
	if ok {
		terms, err := b.terms(ts.Members, b.ext.ToStringTerms)
		if err != nil {
			return err
		}
		ts.Terms = append(ts.Terms, terms...)
		wrappers, err := b.ext.ToStringWrappers(b.ctx)
		if err != nil {
			return err
		}
		for _, w := range wrappers {
			if w.Head {
				ts.Head = append(ts.Head, w.Text)
			} else {
				ts.Tail = append(ts.Tail, w.Text)
			}
		}
		b.add(ts)
	}
	return b.collected(PhaseToString)
}

func (b *planner) builder() error {
	if b.ctx.Structure.BuilderStyle() == "" {
		return nil
	}
	return b.collected(PhaseBuilder)
}

func (b *planner) defaultInstance() error {
	d, err := b.ext.DefaultInstance(b.ctx)
	if err != nil {
		return err
	}
	di, ok, err := decided(b, d, PhaseDefaultInstance, "default instance")
	if err != nil {
		return err
	}
	if ok {
		b.add(di)
	}
	return b.collected(PhaseDefaultInstance)
}

func (b *planner) other() error {
	if err := b.collected(PhaseOther); err != nil {
		return err
	}
	for _, m := range b.ctx.Structure.Members() {
		cs, err := b.ext.MemberContributors(b.ctx, m)
		if err != nil {
			return err
		}
		if err := b.addIn(PhaseOther, cs); err != nil {
			return err
		}
	}
	return nil
}
