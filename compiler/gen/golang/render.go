// Package golang renders structure plans as Go source with jennifer.
package golang

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/compiler/size"
	"github.com/Telenav/smithy-sub007/schema"
)

const (
	receiver   = "_v"
	xxhashPkg  = "github.com/cespare/xxhash/v2"
	headerText = "Code generated by shapegen, DO NOT EDIT."
)

// Renderer turns plans into Go files of one package.
type Renderer struct {
	graph *schema.Graph
	pkg   string
	sizes *size.Estimator
}

// NewRenderer returns a renderer for package pkg. sizes may be nil, in which
// case footprint methods are skipped.
func NewRenderer(g *schema.Graph, pkg string, sizes *size.Estimator) *Renderer {
	return &Renderer{graph: g, pkg: pkg, sizes: sizes}
}

// rendering is the state of one file.
type rendering struct {
	*Renderer
	plan  *gen.Plan
	shape *schema.Shape
	name  string
	f     *jen.File
	// patterns already declared as package variables.
	patterns map[string]bool
}

// Render returns the file of one plan.
func (r *Renderer) Render(plan *gen.Plan) (*jen.File, error) {
	shape, err := r.graph.Expect(plan.Shape)
	if err != nil {
		return nil, err
	}
	f := jen.NewFile(r.pkg)
	f.HeaderComment(headerText)
	x := &rendering{Renderer: r, plan: plan, shape: shape, name: Exported(shape.ID.Name), f: f, patterns: map[string]bool{}}
	x.structType()
	if err := x.constructors(); err != nil {
		return nil, err
	}
	x.getters()
	x.equals()
	x.hashCode()
	x.toString()
	x.builder()
	if err := x.defaultInstance(); err != nil {
		return nil, err
	}
	x.methods()
	return f, nil
}

func (x *rendering) member(name string) (*schema.Member, *schema.Shape) {
	m, ok := x.shape.Member(name)
	if !ok {
		return nil, nil
	}
	t, err := x.graph.Target(m)
	if err != nil {
		return m, nil
	}
	return m, t
}

func (x *rendering) field(name string) (*gen.Field, bool) {
	return x.plan.Field(name)
}

func (x *rendering) fieldType(f *gen.Field) jen.Code {
	_, t := x.member(f.Member)
	if t == nil {
		return jen.Any()
	}
	if f.Nullable {
		return x.nullableType(t)
	}
	return x.baseType(t)
}

// comment emits one line comment per line of doc.
func (x *rendering) comment(doc []string) {
	for _, d := range doc {
		for _, line := range strings.Split(d, "\n") {
			x.f.Comment(line)
		}
	}
}

func (x *rendering) self() *jen.Statement {
	return jen.Id(receiver)
}

func (x *rendering) recv() *jen.Statement {
	return jen.Params(jen.Id(receiver).Op("*").Id(x.name))
}

func (x *rendering) structType() {
	var doc []string
	if cd, ok := x.plan.ClassDoc(); ok {
		doc = append(doc, x.name+": "+cd.Summary)
	}
	for _, s := range x.plan.DocSections() {
		doc = append(doc, "", "# "+s.Title, "", s.Body)
	}
	if len(doc) > 0 {
		x.comment(doc)
	}
	x.f.Type().Id(x.name).StructFunc(func(g *jen.Group) {
		for _, fd := range x.plan.Fields() {
			for _, d := range fd.Docs {
				g.Comment(d)
			}
			for _, a := range fd.Decorations {
				g.Comment(a.String())
			}
			g.Id(Unexported(fd.Member)).Add(x.fieldType(fd))
		}
	})
}

func (x *rendering) constructorName(c *gen.Constructor) string {
	if c.Preferred {
		return "New" + x.name
	}
	return "New" + x.name + titleCaser.String(c.Kind.String())
}

// argType returns the declared type of one constructor argument.
func (x *rendering) argType(arg *gen.Argument) jen.Code {
	_, t := x.member(arg.Member)
	fd, _ := x.field(arg.Member)
	if t == nil || fd == nil {
		return jen.Any()
	}
	switch arg.Assignment.Mode {
	case gen.AssignNarrowing:
		return kindType(arg.Assignment.ArgKind)
	case gen.AssignUnboxing, gen.AssignDefaulting:
		return x.nullableType(t)
	}
	return x.fieldType(fd)
}

func argNillable(x *rendering, arg *gen.Argument) bool {
	_, t := x.member(arg.Member)
	fd, _ := x.field(arg.Member)
	if t == nil || fd == nil {
		return false
	}
	switch arg.Assignment.Mode {
	case gen.AssignUnboxing, gen.AssignDefaulting:
		return true
	case gen.AssignNarrowing:
		return false
	}
	return fd.Nullable || nillable(t.Kind)
}

func (x *rendering) constructors() error {
	for _, c := range x.plan.Constructors() {
		name := x.constructorName(c)
		doc := []string{fmt.Sprintf("%s returns a new %s.", name, x.name)}
		for _, d := range c.Docs {
			if d.Body != "" {
				doc = append(doc, d.Body)
			}
		}
		for _, a := range c.Annotations {
			doc = append(doc, a.String())
		}
		for _, arg := range c.Args {
			for _, a := range arg.Annotations {
				doc = append(doc, arg.Member+": "+a.String())
			}
		}
		var body []jen.Code
		body = append(body, jen.Id(receiver).Op(":=").Op("&").Id(x.name).Values())
		for _, arg := range c.Args {
			stmts, err := x.assign(arg)
			if err != nil {
				return err
			}
			body = append(body, stmts...)
		}
		for _, arg := range c.Args {
			body = append(body, x.checks(arg)...)
		}
		body = append(body, jen.Return(jen.Id(receiver), jen.Nil()))
		x.comment(doc)
		x.f.Func().Id(name).ParamsFunc(func(g *jen.Group) {
			for _, arg := range c.Args {
				g.Id(Unexported(arg.Member)).Add(x.argType(arg))
			}
		}).Params(jen.Op("*").Id(x.name), jen.Error()).Block(body...)
	}
	return nil
}

func (x *rendering) assign(arg *gen.Argument) ([]jen.Code, error) {
	name := Unexported(arg.Member)
	fieldRef := x.self().Dot(name)
	_, t := x.member(arg.Member)
	switch arg.Assignment.Mode {
	case gen.AssignNarrowing:
		return []jen.Code{x.self().Dot(name).Op("=").Add(x.baseType(t)).Call(jen.Id(name))}, nil
	case gen.AssignUnboxing:
		return []jen.Code{
			jen.If(jen.Id(name).Op("==").Nil()).Block(
				jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit(x.name+": "+arg.Member+" is required"))),
			),
			fieldRef.Clone().Op("=").Op("*").Id(name),
		}, nil
	case gen.AssignDefaulting:
		value := jen.Id(name)
		if !nillable(t.Kind) {
			value = jen.Op("*").Id(name)
		}
		var out []jen.Code
		if lit, ok := literal(t.Kind, arg.Assignment.Default); ok {
			out = append(out, fieldRef.Clone().Op("=").Add(lit))
		} else {
			out = append(out, jen.Comment(fmt.Sprintf("default %v of %s has no literal form", arg.Assignment.Default, arg.Member)))
		}
		out = append(out, jen.If(jen.Id(name).Op("!=").Nil()).Block(fieldRef.Clone().Op("=").Add(value)))
		return out, nil
	}
	return []jen.Code{fieldRef.Op("=").Id(name)}, nil
}

func (x *rendering) checks(arg *gen.Argument) []jen.Code {
	var out []jen.Code
	fd, _ := x.field(arg.Member)
	_, t := x.member(arg.Member)
	if fd == nil || t == nil {
		return nil
	}
	name := Unexported(arg.Member)
	fail := func(msg string) jen.Code {
		return jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit(x.name+": "+arg.Member+" "+msg)))
	}
	value := x.self().Dot(name)
	guard := jen.Null()
	if fd.Nullable {
		guard = x.self().Dot(name).Op("!=").Nil().Op("&&")
		if !nillable(t.Kind) {
			value = jen.Op("*").Add(x.self().Dot(name))
		}
	}
	for _, ch := range arg.Checks {
		switch ch.Kind {
		case gen.CheckNotNull:
			if argNillable(x, arg) && arg.Assignment.Mode != gen.AssignUnboxing {
				out = append(out, jen.If(jen.Id(name).Op("==").Nil()).Block(fail("is required")))
			}
		case gen.CheckRange:
			if t.Kind.IsBig() {
				continue
			}
			var conds []jen.Code
			if ch.Min != nil {
				conds = append(conds, jen.Parens(value.Clone()).Op("<").Add(bound(t.Kind, ch.Min)))
			}
			if ch.Max != nil {
				conds = append(conds, jen.Parens(value.Clone()).Op(">").Add(bound(t.Kind, ch.Max)))
			}
			if len(conds) > 0 {
				out = append(out, jen.If(guard.Clone().Parens(joinOr(conds))).Block(fail("is out of range")))
			}
		case gen.CheckLength:
			if t.Kind == schema.Blob {
				continue
			}
			length := jen.Len(value.Clone())
			var conds []jen.Code
			if ch.MinLen != nil {
				conds = append(conds, length.Clone().Op("<").Lit(int(*ch.MinLen)))
			}
			if ch.MaxLen != nil {
				conds = append(conds, length.Clone().Op(">").Lit(int(*ch.MaxLen)))
			}
			if len(conds) > 0 {
				out = append(out, jen.If(guard.Clone().Parens(joinOr(conds))).Block(fail("has invalid length")))
			}
		case gen.CheckPattern:
			pattern := "_" + Unexported(x.shape.ID.Name) + Exported(arg.Member) + "Pattern"
			if !x.patterns[pattern] {
				x.patterns[pattern] = true
				x.f.Var().Id(pattern).Op("=").Qual("regexp", "MustCompile").Call(jen.Lit(ch.Pattern))
			}
			out = append(out, jen.If(guard.Clone().Op("!").Id(pattern).Dot("MatchString").Call(value.Clone())).Block(fail("does not match " + ch.Pattern)))
		}
	}
	return out
}

// bound renders a range bound as a constant of the member's kind. Integral
// bounds were checked to be exact during validation.
func bound(k schema.Kind, r *big.Rat) jen.Code {
	if k == schema.Float || k == schema.Double {
		f, _ := r.Float64()
		return jen.Lit(f)
	}
	return jen.Id(r.RatString())
}

func joinOr(conds []jen.Code) *jen.Statement {
	s := jen.Add(conds[0])
	for _, c := range conds[1:] {
		s = s.Op("||").Add(c)
	}
	return s
}

func (x *rendering) getters() {
	for _, gt := range x.plan.Getters() {
		fd, ok := x.field(gt.Member)
		if !ok {
			continue
		}
		_, t := x.member(gt.Member)
		name := Exported(gt.Name)
		field := x.self().Dot(Unexported(gt.Member))
		doc := append([]string{fmt.Sprintf("%s returns the %s member.", name, gt.Member)}, gt.Docs...)
		for _, a := range gt.Decorations {
			doc = append(doc, a.String())
		}
		x.comment(doc)
		switch {
		case gt.Optional && fd.Nullable && t != nil && !nillable(t.Kind):
			x.f.Func().Add(x.recv()).Id(name).Params().Params(x.baseType(t), jen.Bool()).Block(
				jen.If(field.Clone().Op("==").Nil()).Block(
					jen.Var().Id("zero").Add(x.baseType(t)),
					jen.Return(jen.Id("zero"), jen.False()),
				),
				jen.Return(jen.Op("*").Add(field.Clone()), jen.True()),
			)
		case gt.Optional:
			x.f.Func().Add(x.recv()).Id(name).Params().Params(x.fieldType(fd), jen.Bool()).Block(
				jen.Return(field.Clone(), field.Clone().Op("!=").Nil()),
			)
		default:
			x.f.Func().Add(x.recv()).Id(name).Params().Add(x.fieldType(fd)).Block(jen.Return(field))
		}
	}
}

func (x *rendering) compare(t *gen.Term) jen.Code {
	name := Unexported(t.Member)
	a, b := x.self().Dot(name), jen.Id("other").Dot(name)
	switch {
	case t.Style == gen.TermFloat && !t.Nullable:
		bits := func(v *jen.Statement) jen.Code {
			return jen.Qual("math", "Float64bits").Call(jen.Float64().Call(v))
		}
		return jen.Add(bits(a)).Op("==").Add(bits(b))
	case t.Style == gen.TermValue && !t.Nullable:
		return a.Op("==").Add(b)
	}
	return jen.Qual("reflect", "DeepEqual").Call(a, b)
}

func (x *rendering) equals() {
	eq, ok := x.plan.Equals()
	if !ok {
		return
	}
	cond := jen.True()
	if len(eq.Terms) > 0 {
		var conds []jen.Code
		for _, t := range eq.Terms {
			conds = append(conds, x.compare(t))
		}
		cond = jen.Add(conds[0])
		for _, c := range conds[1:] {
			cond = cond.Op("&&").Add(c)
		}
	}
	x.f.Commentf("Equal compares %s.", strings.Join(eq.Members, ", "))
	x.f.Func().Add(x.recv()).Id("Equal").Params(jen.Id("other").Op("*").Id(x.name)).Bool().Block(
		jen.If(jen.Id(receiver).Op("==").Nil().Op("||").Id("other").Op("==").Nil()).Block(
			jen.Return(jen.Id(receiver).Op("==").Id("other")),
		),
		jen.Return(cond),
	)
}

func (x *rendering) hashCode() {
	hc, ok := x.plan.HashCode()
	if !ok {
		return
	}
	body := []jen.Code{jen.Id("h").Op(":=").Qual(xxhashPkg, "New").Call()}
	for _, t := range hc.Terms {
		v := x.self().Dot(Unexported(t.Member))
		switch {
		case t.Style == gen.TermFloat && !t.Nullable:
			v = jen.Qual("math", "Float64bits").Call(jen.Float64().Call(v))
		case t.Nullable:
			v = jen.Id(valueHelper).Call(v)
		}
		body = append(body, jen.Qual("fmt", "Fprintf").Call(jen.Id("h"), jen.Lit(t.Member+"=%v;"), v))
	}
	body = append(body, jen.Return(jen.Id("h").Dot("Sum64").Call()))
	x.f.Commentf("Hash hashes %s.", strings.Join(hc.Members, ", "))
	x.f.Func().Add(x.recv()).Id("Hash").Params().Uint64().Block(body...)
}

func (x *rendering) toString() {
	ts, ok := x.plan.ToString()
	if !ok {
		return
	}
	parts := make([]string, len(ts.Members))
	args := []jen.Code{nil}
	for i, m := range ts.Members {
		parts[i] = m + "=%v"
		args = append(args, jen.Id(valueHelper).Call(x.self().Dot(Unexported(m))))
	}
	format := strings.Join(ts.Head, "") + x.name + "(" + strings.Join(parts, ", ") + ")" + strings.Join(ts.Tail, "")
	args[0] = jen.Lit(format)
	x.f.Func().Add(x.recv()).Id("String").Params().String().Block(
		jen.Return(jen.Qual("fmt", "Sprintf").Call(args...)),
	)
}

func (x *rendering) builder() {
	b, ok := x.plan.Builder()
	if !ok {
		return
	}
	ctor, ok := x.plan.Constructor(b.Kind)
	if !ok {
		return
	}
	bname := x.name + "Builder"
	x.f.Commentf("%s collects the arguments of %s (%s style).", bname, x.constructorName(ctor), b.Style)
	x.f.Type().Id(bname).StructFunc(func(g *jen.Group) {
		for _, arg := range ctor.Args {
			g.Id(Unexported(arg.Member)).Add(x.argType(arg))
		}
	})
	for _, arg := range ctor.Args {
		name := Unexported(arg.Member)
		x.f.Func().Params(jen.Id("b").Op("*").Id(bname)).Id("With"+Exported(arg.Member)).
			Params(jen.Id("v").Add(x.argType(arg))).Op("*").Id(bname).Block(
			jen.Id("b").Dot(name).Op("=").Id("v"),
			jen.Return(jen.Id("b")),
		)
	}
	x.f.Func().Params(jen.Id("b").Op("*").Id(bname)).Id("Build").Params().Params(jen.Op("*").Id(x.name), jen.Error()).Block(
		jen.Return(jen.Id(x.constructorName(ctor)).CallFunc(func(g *jen.Group) {
			for _, arg := range ctor.Args {
				g.Id("b").Dot(Unexported(arg.Member))
			}
		})),
	)
	for _, m := range x.plan.InPhase(gen.PhaseBuilder) {
		if entry, ok := m.(*gen.Method); ok && entry.Kind == gen.MethodBuilderEntry {
			x.f.Comment(Exported(entry.Name) + " " + entry.Doc)
			x.f.Func().Id(Exported(entry.Name)).Params().Op("*").Id(bname).Block(
				jen.Return(jen.Op("&").Id(bname).Values()),
			)
		}
	}
}

func (x *rendering) defaultInstance() error {
	d, ok := x.plan.DefaultInstance()
	if !ok {
		return nil
	}
	values := jen.Dict{}
	for _, v := range d.Values {
		key := jen.Id(Unexported(v.Member))
		if !v.Nested.IsZero() {
			values[key] = jen.Id("Default" + Exported(v.Nested.Name))
			continue
		}
		_, t := x.member(v.Member)
		if t == nil {
			return fmt.Errorf("golang: unknown member %s of %s", v.Member, x.plan.Shape)
		}
		lit, ok := literal(t.Kind, v.Value)
		if !ok {
			return fmt.Errorf("golang: no literal for default %v of %s.%s", v.Value, x.name, v.Member)
		}
		values[key] = lit
	}
	x.f.Commentf("Default%s holds the declared default of every member.", x.name)
	x.f.Var().Id("Default"+x.name).Op("=").Op("&").Id(x.name).Values(values)
	return nil
}

func (x *rendering) methods() {
	for _, m := range x.plan.Methods() {
		name := Exported(m.Name)
		switch m.Kind {
		case gen.MethodIsEmpty:
			var conds []jen.Code
			for _, fd := range x.plan.Fields() {
				conds = append(conds, x.self().Dot(Unexported(fd.Member)).Op("==").Nil())
			}
			cond := jen.Add(conds[0])
			for _, c := range conds[1:] {
				cond = cond.Op("&&").Add(c)
			}
			x.f.Comment(m.Doc)
			x.f.Func().Add(x.recv()).Id(name).Params().Bool().Block(jen.Return(cond))
		case gen.MethodAsInt64:
			field := x.self().Dot(Unexported(m.Member))
			x.f.Func().Add(x.recv()).Id(name).Params().Params(jen.Int64(), jen.Bool()).Block(
				jen.If(field.Clone().Op("==").Nil().Op("||").Op("!").Add(field.Clone()).Dot("IsInt64").Call()).Block(
					jen.Return(jen.Lit(0), jen.False()),
				),
				jen.Return(field.Clone().Dot("Int64").Call(), jen.True()),
			)
		case gen.MethodAsFloat64:
			field := x.self().Dot(Unexported(m.Member))
			x.f.Func().Add(x.recv()).Id(name).Params().Params(jen.Float64(), jen.Bool()).Block(
				jen.If(field.Clone().Op("==").Nil()).Block(jen.Return(jen.Lit(0), jen.False())),
				jen.List(jen.Id("f"), jen.Id("_")).Op(":=").Add(field.Clone()).Dot("Float64").Call(),
				jen.Return(jen.Id("f"), jen.True()),
			)
		case gen.MethodFootprint:
			if x.sizes == nil {
				continue
			}
			est, err := x.sizes.Of(x.plan.Shape)
			if err != nil || !est.Reliable {
				continue
			}
			x.f.Comment(m.Doc)
			x.f.Func().Params(jen.Op("*").Id(x.name)).Id(name).Params().Int64().Block(jen.Return(jen.Lit(int(est.MaxDeep))))
		}
	}
}
