package golang

import "github.com/dave/jennifer/jen"

const (
	valueHelper = "shapegenValue"
	// HelpersFile holds the declarations shared by every rendered structure.
	HelpersFile = "shapegen.go"
)

// Helpers returns the file shared by all structures of the package.
func (r *Renderer) Helpers() *jen.File {
	f := jen.NewFile(r.pkg)
	f.HeaderComment(headerText)
	f.Commentf("%s dereferences non-nil pointers to plain values. Stringers are", valueHelper)
	f.Comment("kept so nested structures format with their own String method.")
	f.Func().Id(valueHelper).Params(jen.Id("v").Any()).Any().Block(
		jen.If(jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id("v").Assert(jen.Qual("fmt", "Stringer")), jen.Id("ok")).Block(
			jen.Id("rv").Op(":=").Qual("reflect", "ValueOf").Call(jen.Id("v")),
			jen.If(jen.Id("rv").Dot("Kind").Call().Op("==").Qual("reflect", "Pointer").Op("&&").Id("rv").Dot("IsNil").Call()).Block(
				jen.Return(jen.Nil()),
			),
			jen.Return(jen.Id("v")),
		),
		jen.Id("rv").Op(":=").Qual("reflect", "ValueOf").Call(jen.Id("v")),
		jen.If(jen.Id("rv").Dot("Kind").Call().Op("!=").Qual("reflect", "Pointer")).Block(
			jen.Return(jen.Id("v")),
		),
		jen.If(jen.Id("rv").Dot("IsNil").Call()).Block(jen.Return(jen.Nil())),
		jen.Return(jen.Id("rv").Dot("Elem").Call().Dot("Interface").Call()),
	)
	return f
}
