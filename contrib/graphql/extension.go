package graphql

import (
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Telenav/smithy-sub007/compiler/gen"
)

// PrecedenceGraphQL places the extension after the built-in documentation
// providers.
const PrecedenceGraphQL = gen.PrecedenceDocs + 10

// Extension documents each generated type with its GraphQL definition.
type Extension struct {
	gen.BaseExtension
	opts []Option
}

var _ gen.Extension = (*Extension)(nil)

// NewExtension returns the extension. The options are those of Render and
// are checked here.
func NewExtension(opts ...Option) (*Extension, error) {
	if _, err := newConfig(opts...); err != nil {
		return nil, err
	}
	return &Extension{opts: opts}, nil
}

func (*Extension) Precedence() int { return PrecedenceGraphQL }

// ClassDocSections adds a "GraphQL" section holding the object type.
func (e *Extension) ClassDocSections(ctx *gen.Context) ([]*gen.DocSection, error) {
	if ctx.Structure.IsMixin() {
		return nil, nil
	}
	def, err := Definition(ctx.Graph, ctx.Structure.Shape, e.opts...)
	if err != nil {
		return nil, gen.NewConfigurationError(ctx.Shape(), "", "graphql definition", err)
	}
	sdl := Format(&ast.SchemaDocument{Definitions: ast.DefinitionList{def}})
	return []*gen.DocSection{{Title: "GraphQL", Body: strings.TrimSpace(sdl)}}, nil
}
