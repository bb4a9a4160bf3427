package gen

// MarkerGenerateBuilder decorates the constructor a builder delegates to.
const MarkerGenerateBuilder = "GenerateBuilder"

// BuilderExtension honors builder requests. The request's style only changes
// the marker on the preferred constructor.
type BuilderExtension struct {
	BaseExtension
}

func (BuilderExtension) Precedence() int { return PrecedenceBuilder }

// ConstructorAnnotations is only consulted for the preferred constructor kind.
func (BuilderExtension) ConstructorAnnotations(ctx *Context, _ ConstructorKind) ([]*Annotation, error) {
	style := ctx.Structure.BuilderStyle()
	if style == "" {
		return nil, nil
	}
	if err := checkBuilder(ctx.Structure); err != nil {
		return nil, err
	}
	a := &Annotation{Name: MarkerGenerateBuilder}
	if style == BuilderFlat {
		a.Params = []Param{{"styles", "FLAT"}}
	}
	return []*Annotation{a}, nil
}

func (BuilderExtension) Contributors(ctx *Context, phase Phase) ([]Contributor, error) {
	style := ctx.Structure.BuilderStyle()
	if phase != PhaseBuilder || style == "" {
		return nil, nil
	}
	if err := checkBuilder(ctx.Structure); err != nil {
		return nil, err
	}
	return []Contributor{
		&Builder{Style: style, Kind: ctx.PreferredKind()},
		&Method{
			In:   PhaseBuilder,
			Kind: MethodBuilderEntry,
			Name: "New" + ctx.Structure.Name() + "Builder",
			Doc:  "returns a new builder of " + ctx.Structure.Name() + " values.",
		},
	}, nil
}

// checkBuilder rejects builder requests the pipeline cannot satisfy.
func checkBuilder(s *Structure) error {
	switch {
	case s.BuilderStyle() == "":
		return nil
	case s.IsMixin():
		return NewConfigurationError(s.ID(), "",
			"cannot generate builders for mixin structures; they are generated as interfaces", nil)
	case s.BuilderStyle() != BuilderFlat && s.BuilderStyle() != BuilderNested:
		return NewConfigurationError(s.ID(), "",
			"unknown builder style "+string(s.BuilderStyle())+"; use flat or nested", nil)
	}
	return nil
}
