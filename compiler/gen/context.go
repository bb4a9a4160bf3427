package gen

import (
	"log/slog"

	"github.com/Telenav/smithy-sub007/compiler/size"
	"github.com/Telenav/smithy-sub007/schema"
)

// Context is what hooks see while one structure is planned.
type Context struct {
	Structure *Structure
	Graph     *schema.Graph
	// Sizes is the run-scoped estimator.
	Sizes  *size.Estimator
	Logger *slog.Logger

	kinds     []ConstructorKind
	preferred ConstructorKind
}

// Kinds returns the available constructor kinds in ordinal order. It is
// empty while the ConstructorKinds hook runs.
func (c *Context) Kinds() []ConstructorKind {
	return c.kinds
}

// PreferredKind returns the kind that receives constructor and argument
// annotations.
func (c *Context) PreferredKind() ConstructorKind {
	return c.preferred
}

// Shape returns the id of the structure being planned.
func (c *Context) Shape() schema.ShapeID {
	return c.Structure.ID()
}
