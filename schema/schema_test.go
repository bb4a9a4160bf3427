package schema_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telenav/smithy-sub007/schema"
)

const ns = "example.test"

func TestParseShapeID(t *testing.T) {
	tests := []struct {
		in      string
		want    schema.ShapeID
		wantErr bool
	}{
		{"example.test#User", schema.ID("example.test", "User"), false},
		{"smithy.api#String", schema.PreludeID(schema.String), false},
		{"User", schema.ShapeID{}, true},
		{"#User", schema.ShapeID{}, true},
		{"example.test#", schema.ShapeID{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := schema.ParseShapeID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestKind(t *testing.T) {
	t.Run("names round trip", func(t *testing.T) {
		for k := schema.Boolean; k <= schema.Union; k++ {
			got, ok := schema.ParseKind(k.String())
			require.True(t, ok, k.String())
			assert.Equal(t, k, got)
			assert.True(t, k.Valid())
		}
		_, ok := schema.ParseKind("operation")
		assert.False(t, ok)
		assert.False(t, schema.Invalid.Valid())
	})

	t.Run("classification", func(t *testing.T) {
		assert.True(t, schema.Integer.IsScalarPrimitive())
		assert.False(t, schema.String.IsScalarPrimitive())
		assert.True(t, schema.BigDecimal.IsNumeric())
		assert.True(t, schema.BigDecimal.IsBig())
		assert.True(t, schema.Map.IsCollection())
		assert.True(t, schema.Union.IsAggregate())
		assert.False(t, schema.Enum.IsAggregate())
	})
}

func TestPrimitiveCapable(t *testing.T) {
	g := schema.MustNewGraph(schema.NewScalar(schema.ID(ns, "Count"), schema.Integer))

	prim, _ := g.Shape(schema.PreludeID(schema.Integer))
	assert.True(t, prim.PrimitiveCapable())

	str, _ := g.Shape(schema.PreludeID(schema.String))
	assert.False(t, str.PrimitiveCapable(), "strings are never inline")

	custom, _ := g.Shape(schema.ID(ns, "Count"))
	assert.False(t, custom.PrimitiveCapable(), "model-defined scalars are objects")
}

func TestNewGraph(t *testing.T) {
	t.Run("valid graph", func(t *testing.T) {
		user := schema.NewStructure(schema.ID(ns, "User"),
			schema.NewMember("id", schema.PreludeID(schema.String)).AsRequired(),
			schema.NewMember("tags", schema.ID(ns, "Tags")),
		)
		tags := schema.NewList(schema.ID(ns, "Tags"), schema.PreludeID(schema.String))
		g, err := schema.NewGraph(user, tags)
		require.NoError(t, err)
		assert.Equal(t, 2, g.Len())
		assert.Equal(t, []*schema.Shape{tags, user}, g.Shapes())
		assert.Equal(t, []*schema.Shape{user}, g.Structures())

		target, err := g.Target(user.Members[1])
		require.NoError(t, err)
		assert.Same(t, tags, target)
	})

	t.Run("prelude shapes are shared", func(t *testing.T) {
		g1 := schema.MustNewGraph()
		g2 := schema.MustNewGraph()
		a, _ := g1.Shape(schema.PreludeID(schema.Long))
		b, _ := g2.Shape(schema.PreludeID(schema.Long))
		assert.Same(t, a, b)
	})

	t.Run("reports every problem", func(t *testing.T) {
		_, err := schema.NewGraph(
			schema.NewStructure(schema.ID(ns, "A"), schema.NewMember("x", schema.ID(ns, "Missing"))),
			schema.NewStructure(schema.ID(ns, "A")),
			&schema.Shape{ID: schema.ID(ns, "Bad"), Kind: schema.List},
			&schema.Shape{ID: schema.PreludeID(schema.String), Kind: schema.String},
		)
		require.Error(t, err)
		assert.True(t, errors.Is(err, schema.ErrInvalidGraph))
		assert.True(t, schema.IsError(err))
		msg := err.Error()
		assert.Contains(t, msg, "unknown target example.test#Missing")
		assert.Contains(t, msg, "duplicate shape")
		assert.Contains(t, msg, "exactly one member")
		assert.Contains(t, msg, "cannot redefine a prelude shape")
	})

	t.Run("scalars have no members", func(t *testing.T) {
		s := schema.NewScalar(schema.ID(ns, "Name"), schema.String)
		s.Members = []*schema.Member{schema.NewMember("x", schema.PreludeID(schema.String))}
		_, err := schema.NewGraph(s)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot have members")
	})

	t.Run("map members", func(t *testing.T) {
		m := &schema.Shape{ID: schema.ID(ns, "M"), Kind: schema.Map, Members: []*schema.Member{
			schema.NewMember("key", schema.PreludeID(schema.String)),
		}}
		_, err := schema.NewGraph(m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "\"key\" and \"value\"")
	})

	t.Run("expect unknown", func(t *testing.T) {
		g := schema.MustNewGraph()
		_, err := g.Expect(schema.ID(ns, "Nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "example.test#Nope")
	})
}

func TestMember(t *testing.T) {
	m := schema.NewMember("n", schema.PreludeID(schema.Integer))
	assert.False(t, m.Defaulted())
	m.WithDefault(int64(0))
	assert.True(t, m.HasDefault())
	assert.True(t, m.Defaulted())

	r := schema.NewMember("r", schema.PreludeID(schema.Integer)).AsRequired()
	assert.True(t, r.Defaulted())
	assert.False(t, r.HasDefault())
}
