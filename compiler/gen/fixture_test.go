package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Telenav/smithy-sub007/schema"
)

const testNamespace = "example.test"

var (
	stringID  = schema.PreludeID(schema.String)
	intID     = schema.PreludeID(schema.Integer)
	longID    = schema.PreludeID(schema.Long)
	byteID    = schema.PreludeID(schema.Byte)
	shortID   = schema.PreludeID(schema.Short)
	floatID   = schema.PreludeID(schema.Float)
	doubleID  = schema.PreludeID(schema.Double)
	boolID    = schema.PreludeID(schema.Boolean)
	bigIntID  = schema.PreludeID(schema.BigInteger)
	bigDecID  = schema.PreludeID(schema.BigDecimal)
	timeID    = schema.PreludeID(schema.Timestamp)
	blobID    = schema.PreludeID(schema.Blob)
	docID     = schema.PreludeID(schema.Document)
	stringsID = shapeID("Strings")
)

func shapeID(name string) schema.ShapeID {
	return schema.ID(testNamespace, name)
}

func newGraph(t testing.TB, shapes ...*schema.Shape) *schema.Graph {
	t.Helper()
	g, err := schema.NewGraph(shapes...)
	require.NoError(t, err)
	return g
}

func newPipeline(t testing.TB, g *schema.Graph, opts ...Option) *Pipeline {
	t.Helper()
	cfg, err := NewConfig(opts...)
	require.NoError(t, err)
	p, err := NewPipeline(g, nil, cfg)
	require.NoError(t, err)
	return p
}

func planOf(t testing.TB, g *schema.Graph, name string, opts ...Option) *Plan {
	t.Helper()
	plan, err := newPipeline(t, g, opts...).Plan(shapeID(name))
	require.NoError(t, err)
	return plan
}

func planError(t testing.TB, g *schema.Graph, name string, opts ...Option) error {
	t.Helper()
	_, err := newPipeline(t, g, opts...).Plan(shapeID(name))
	require.Error(t, err)
	return err
}

// newContext returns a hook context for the named structure with the given
// preferred kind.
func newContext(t testing.TB, g *schema.Graph, name string, preferred ConstructorKind) *Context {
	t.Helper()
	shape, err := g.Expect(shapeID(name))
	require.NoError(t, err)
	s, err := NewStructure(g, shape)
	require.NoError(t, err)
	return &Context{Structure: s, Graph: g, kinds: normalizeKinds([]ConstructorKind{preferred}), preferred: preferred}
}

// person is a structure with one identity member.
func personGraph(t testing.TB) *schema.Graph {
	return newGraph(t,
		schema.NewStructure(shapeID("Person"),
			schema.NewMember("id", stringID).AsRequired().AsIdentity(),
			schema.NewMember("name", stringID).WithLength(schema.Int64(1), schema.Int64(40)),
			schema.NewMember("age", intID).WithDefault(int64(0)).WithRange(schema.Rat("0"), schema.Rat("150")),
		),
	)
}
