package gen

// Extension contributes to, or overrides, the decisions made for a
// structure.
//
// Override hooks return at most one value; across a chain the first
// provider with an opinion wins. Collect hooks return any number of values;
// across a chain every provider's values are kept in chain order.
//
// Implementations should embed BaseExtension and override only the hooks
// they care about. Extensions must be safe for concurrent use: a composed
// chain is shared by every worker of a run.
type Extension interface {
	// Precedence orders discovered extensions in Compose. Lower values are
	// queried first.
	Precedence() int

	// Override hooks.
	ClassDoc(ctx *Context) (Maybe[*ClassDoc], error)
	Field(ctx *Context, m *Member) (Maybe[*Field], error)
	Getter(ctx *Context, m *Member) (Maybe[*Getter], error)
	Assignment(ctx *Context, m *Member, kind ConstructorKind) (Maybe[*Assignment], error)
	Equals(ctx *Context) (Maybe[*Equals], error)
	HashCode(ctx *Context) (Maybe[*HashCode], error)
	ToString(ctx *Context) (Maybe[*ToString], error)
	DefaultInstance(ctx *Context) (Maybe[*DefaultInstance], error)

	// Collect hooks.
	ConstructorKinds(ctx *Context) ([]ConstructorKind, error)
	ConstructorAnnotations(ctx *Context, kind ConstructorKind) ([]*Annotation, error)
	ConstructorDocs(ctx *Context, kind ConstructorKind) ([]*DocSection, error)
	ArgumentAnnotations(ctx *Context, m *Member, kind ConstructorKind) ([]*Annotation, error)
	ArgumentChecks(ctx *Context, m *Member, kind ConstructorKind) ([]*Check, error)
	ClassDocSections(ctx *Context) ([]*DocSection, error)
	MemberDocs(ctx *Context, m *Member) ([]string, error)
	FieldDecorations(ctx *Context, m *Member) ([]*Annotation, error)
	GetterDecorations(ctx *Context, m *Member) ([]*Annotation, error)
	EqualsTerms(ctx *Context, m *Member) ([]*Term, error)
	HashTerms(ctx *Context, m *Member) ([]*Term, error)
	ToStringTerms(ctx *Context, m *Member) ([]*Term, error)
	ToStringWrappers(ctx *Context) ([]*Wrapper, error)
	// Contributors adds free-standing contributors to the fields,
	// constructors, getters, builder and other phases.
	Contributors(ctx *Context, phase Phase) ([]Contributor, error)
	// MemberContributors adds per-member contributors to the other phase.
	MemberContributors(ctx *Context, m *Member) ([]Contributor, error)
}

// BaseExtension has no opinion on anything.
type BaseExtension struct{}

var _ Extension = BaseExtension{}

func (BaseExtension) Precedence() int { return 0 }

func (BaseExtension) ClassDoc(*Context) (Maybe[*ClassDoc], error) {
	return None[*ClassDoc](), nil
}

func (BaseExtension) Field(*Context, *Member) (Maybe[*Field], error) {
	return None[*Field](), nil
}

func (BaseExtension) Getter(*Context, *Member) (Maybe[*Getter], error) {
	return None[*Getter](), nil
}

func (BaseExtension) Assignment(*Context, *Member, ConstructorKind) (Maybe[*Assignment], error) {
	return None[*Assignment](), nil
}

func (BaseExtension) Equals(*Context) (Maybe[*Equals], error) {
	return None[*Equals](), nil
}

func (BaseExtension) HashCode(*Context) (Maybe[*HashCode], error) {
	return None[*HashCode](), nil
}

func (BaseExtension) ToString(*Context) (Maybe[*ToString], error) {
	return None[*ToString](), nil
}

func (BaseExtension) DefaultInstance(*Context) (Maybe[*DefaultInstance], error) {
	return None[*DefaultInstance](), nil
}

func (BaseExtension) ConstructorKinds(*Context) ([]ConstructorKind, error) { return nil, nil }

func (BaseExtension) ConstructorAnnotations(*Context, ConstructorKind) ([]*Annotation, error) {
	return nil, nil
}

func (BaseExtension) ConstructorDocs(*Context, ConstructorKind) ([]*DocSection, error) {
	return nil, nil
}

func (BaseExtension) ArgumentAnnotations(*Context, *Member, ConstructorKind) ([]*Annotation, error) {
	return nil, nil
}

func (BaseExtension) ArgumentChecks(*Context, *Member, ConstructorKind) ([]*Check, error) {
	return nil, nil
}

func (BaseExtension) ClassDocSections(*Context) ([]*DocSection, error) { return nil, nil }

func (BaseExtension) MemberDocs(*Context, *Member) ([]string, error) { return nil, nil }

func (BaseExtension) FieldDecorations(*Context, *Member) ([]*Annotation, error) { return nil, nil }

func (BaseExtension) GetterDecorations(*Context, *Member) ([]*Annotation, error) { return nil, nil }

func (BaseExtension) EqualsTerms(*Context, *Member) ([]*Term, error) { return nil, nil }

func (BaseExtension) HashTerms(*Context, *Member) ([]*Term, error) { return nil, nil }

func (BaseExtension) ToStringTerms(*Context, *Member) ([]*Term, error) { return nil, nil }

func (BaseExtension) ToStringWrappers(*Context) ([]*Wrapper, error) { return nil, nil }

func (BaseExtension) Contributors(*Context, Phase) ([]Contributor, error) { return nil, nil }

func (BaseExtension) MemberContributors(*Context, *Member) ([]Contributor, error) {
	return nil, nil
}
