package size

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telenav/smithy-sub007/schema"
)

const ns = "example.size"

var (
	stringID  = schema.PreludeID(schema.String)
	integerID = schema.PreludeID(schema.Integer)
)

func newEstimator(t *testing.T, shapes ...*schema.Shape) *Estimator {
	t.Helper()
	g, err := schema.NewGraph(shapes...)
	require.NoError(t, err)
	e, err := New(g)
	require.NoError(t, err)
	return e
}

func TestCombine(t *testing.T) {
	a := Estimate{Shallow: 16, MinDeep: 40, MaxDeep: 118, Reliable: true}
	b := Estimate{Shallow: 12, MinDeep: 12, MaxDeep: 2000, Reliable: false}
	c := Combine(a, b)
	assert.Equal(t, a.Shallow+b.Shallow, c.Shallow)
	assert.Equal(t, a.MinDeep+b.MinDeep, c.MinDeep)
	assert.Equal(t, a.MaxDeep+b.MaxDeep, c.MaxDeep)
	assert.False(t, c.Reliable)
	assert.True(t, Combine(a, a).Reliable)
}

func TestCombineSaturates(t *testing.T) {
	a := Estimate{Shallow: 16, MinDeep: 16, MaxDeep: math.MaxInt64 - 10, Reliable: true}
	c := Combine(a, Fixed(12))
	assert.Equal(t, int64(math.MaxInt64), c.MaxDeep)
	assert.Equal(t, int64(28), c.MinDeep)
	assert.False(t, c.Reliable, "a saturated bound is not a guarantee")
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Estimate
		want int
	}{
		{"max wins", Estimate{MaxDeep: 64, MinDeep: 1}, Estimate{MaxDeep: 40, MinDeep: 40}, 1},
		{"min breaks ties", Estimate{MaxDeep: 64, MinDeep: 10}, Estimate{MaxDeep: 64, MinDeep: 20}, -1},
		{"shallow breaks ties", Estimate{MaxDeep: 64, MinDeep: 10, Shallow: 8}, Estimate{MaxDeep: 64, MinDeep: 10, Shallow: 4}, 1},
		{"equal", Fixed(12), Fixed(12), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestStructureWithBoundedString(t *testing.T) {
	name := schema.NewMember("name", stringID).WithLength(schema.Int64(1), schema.Int64(40))
	s := schema.NewStructure(schema.ID(ns, "Named"), name)
	e := newEstimator(t, s)

	member, err := e.OfMember(name)
	require.NoError(t, err)
	assert.Equal(t, member.Shallow+2, member.MinDeep)
	assert.Equal(t, member.Shallow+80, member.MaxDeep)
	assert.True(t, member.Reliable)

	est, err := e.Of(s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(12+4), est.Shallow)
	assert.Equal(t, est.Shallow+StringShallow+2, est.MinDeep)
	assert.Equal(t, est.Shallow+StringShallow+80, est.MaxDeep)
	assert.True(t, est.Reliable)
}

func TestStructureWithUnboundedList(t *testing.T) {
	names := schema.NewList(schema.ID(ns, "Names"), stringID)
	s := schema.NewStructure(schema.ID(ns, "Holder"), schema.NewMember("names", names.ID))
	e := newEstimator(t, names, s)

	est, err := e.Of(s.ID)
	require.NoError(t, err)
	assert.False(t, est.Reliable)

	listShallow := CompressedOops.Header + CompressedOops.Int
	elementMax := int64(StringShallow + DefaultStringLength*BytesPerChar)
	assert.Equal(t, int64(16), est.Shallow)
	assert.Equal(t, est.Shallow+listShallow, est.MinDeep, "an unbounded list may be empty")
	assert.Equal(t, est.Shallow+listShallow+elementMax*DefaultCollectionSize, est.MaxDeep)
}

func TestBoundedCollections(t *testing.T) {
	ints := schema.NewList(schema.ID(ns, "Ints"), integerID).WithLength(schema.Int64(1), schema.Int64(3))
	e := newEstimator(t, ints)

	est, err := e.Of(ints.ID)
	require.NoError(t, err)
	boxed := CompressedOops.Int + CompressedOops.Header
	assert.Equal(t, est.Shallow+boxed, est.MinDeep)
	assert.Equal(t, est.Shallow+3*boxed, est.MaxDeep)
	assert.True(t, est.Reliable)
}

func TestMap(t *testing.T) {
	m := schema.NewMap(schema.ID(ns, "Counts"), stringID, integerID).WithLength(nil, schema.Int64(2))
	e := newEstimator(t, m)

	est, err := e.Of(m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(16), est.Shallow)
	entryMax := int64(StringShallow+DefaultStringLength*BytesPerChar) + CompressedOops.Int + CompressedOops.Header
	assert.Equal(t, est.Shallow, est.MinDeep)
	assert.Equal(t, est.Shallow+2*entryMax, est.MaxDeep)
	assert.False(t, est.Reliable, "unbounded string keys are guessed")
}

func TestUnionPicksMaximumAlternative(t *testing.T) {
	// Seven required ints: min == max == 40.
	var ints []*schema.Member
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		ints = append(ints, schema.NewMember(n, integerID).AsRequired())
	}
	fixed := schema.NewStructure(schema.ID(ns, "Fixed"), ints...)
	// One string of at most 13 chars: min 38, max 64.
	varying := schema.NewStructure(schema.ID(ns, "Varying"),
		schema.NewMember("s", stringID).WithLength(nil, schema.Int64(13)))
	u := schema.NewUnion(schema.ID(ns, "Either"),
		schema.NewMember("fixed", fixed.ID),
		schema.NewMember("varying", varying.ID),
	)
	e := newEstimator(t, fixed, varying, u)

	f, err := e.Of(fixed.ID)
	require.NoError(t, err)
	require.Equal(t, Estimate{Shallow: 40, MinDeep: 40, MaxDeep: 40, Reliable: true}, f)
	v, err := e.Of(varying.ID)
	require.NoError(t, err)
	require.Equal(t, int64(38), v.MinDeep)
	require.Equal(t, int64(64), v.MaxDeep)

	est, err := e.Of(u.ID)
	require.NoError(t, err)
	unionShallow := CompressedOops.Header + CompressedOops.Reference
	assert.Equal(t, unionShallow, est.Shallow)
	assert.Equal(t, unionShallow+64, est.MaxDeep)
	assert.Equal(t, unionShallow+v.MinDeep, est.MinDeep, "min comes from the selected alternative")
	assert.NotEqual(t, unionShallow+f.MinDeep, est.MinDeep)
	assert.True(t, est.Reliable)
}

func TestUnionReliabilityCoversAllAlternatives(t *testing.T) {
	big := schema.NewStructure(schema.ID(ns, "Big"),
		schema.NewMember("s", stringID).WithLength(schema.Int64(0), schema.Int64(1000)))
	small := schema.NewStructure(schema.ID(ns, "Small"), schema.NewMember("s", stringID))
	u := schema.NewUnion(schema.ID(ns, "U"),
		schema.NewMember("big", big.ID),
		schema.NewMember("small", small.ID),
	)
	e := newEstimator(t, big, small, u)

	est, err := e.Of(u.ID)
	require.NoError(t, err)
	assert.False(t, est.Reliable)
}

func TestCycleTerminates(t *testing.T) {
	node := schema.NewStructure(schema.ID(ns, "Node"),
		schema.NewMember("children", schema.ID(ns, "Nodes")))
	nodes := schema.NewList(schema.ID(ns, "Nodes"), node.ID).WithLength(nil, schema.Int64(4))
	e := newEstimator(t, node, nodes)

	est, err := e.Of(node.ID)
	require.NoError(t, err)
	assert.False(t, est.Reliable)
	assert.Positive(t, est.MaxDeep)

	again, err := e.Of(node.ID)
	require.NoError(t, err)
	assert.Equal(t, est, again)
}

func TestCacheIsMemberSensitive(t *testing.T) {
	tight := schema.NewMember("tight", stringID).WithLength(nil, schema.Int64(4))
	loose := schema.NewMember("loose", stringID)
	s := schema.NewStructure(schema.ID(ns, "Pair"), tight, loose)
	e := newEstimator(t, s)

	for range 2 {
		a, err := e.OfMember(tight)
		require.NoError(t, err)
		b, err := e.OfMember(loose)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
		assert.Equal(t, StringShallow+int64(8), a.MaxDeep)
		assert.True(t, a.Reliable)
		assert.False(t, b.Reliable)
	}
}

func TestPrimitives(t *testing.T) {
	count := schema.NewScalar(schema.ID(ns, "Count"), schema.Integer)
	s := schema.NewStructure(schema.ID(ns, "Prims"),
		schema.NewMember("inline", integerID).AsRequired(),
		schema.NewMember("defaulted", schema.PreludeID(schema.Long)).WithDefault(int64(0)),
		schema.NewMember("optional", integerID),
		schema.NewMember("boxed", integerID).AsRequired().AsBoxed(),
		schema.NewMember("custom", count.ID).AsRequired(),
	)
	e := newEstimator(t, count, s)

	shallow, err := e.Shallow(s.ID)
	require.NoError(t, err)
	// header + int + long + 3 references
	assert.Equal(t, int64(12+4+8+3*4), shallow)

	est, err := e.Of(s.ID)
	require.NoError(t, err)
	boxed := int64(4 + 12)
	assert.Equal(t, shallow+3*boxed, est.MaxDeep)
	assert.Equal(t, est.MinDeep, est.MaxDeep)
	assert.True(t, est.Reliable)

	standalone, err := e.Of(integerID)
	require.NoError(t, err)
	assert.Equal(t, Fixed(16), standalone, "a primitive outside a structure pays the header")
}

func TestFixedKinds(t *testing.T) {
	tests := []struct {
		kind schema.Kind
		want int64
	}{
		{schema.Timestamp, 24},
		{schema.BigInteger, 36},
		{schema.BigDecimal, 40},
		{schema.Blob, 16},
		{schema.Document, 16},
		{schema.Enum, 4},
	}
	var shapes []*schema.Shape
	for _, tt := range tests {
		shapes = append(shapes, schema.NewScalar(schema.ID(ns, tt.kind.String()), tt.kind))
	}
	e := newEstimator(t, shapes...)
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			est, err := e.Of(schema.ID(ns, tt.kind.String()))
			require.NoError(t, err)
			assert.Equal(t, Fixed(tt.want), est)
		})
	}
}

func TestOperation(t *testing.T) {
	in := schema.NewStructure(schema.ID(ns, "In"), schema.NewMember("n", integerID).AsRequired())
	out := schema.NewStructure(schema.ID(ns, "Out"), schema.NewMember("s", stringID))
	e := newEstimator(t, in, out)

	a, err := e.Of(in.ID)
	require.NoError(t, err)
	b, err := e.Of(out.ID)
	require.NoError(t, err)

	both, err := e.Operation(in.ID, out.ID)
	require.NoError(t, err)
	assert.Equal(t, Combine(a, b), both)

	inputOnly, err := e.Operation(in.ID, schema.ShapeID{})
	require.NoError(t, err)
	assert.Equal(t, a, inputOnly)

	none, err := e.Operation(schema.ShapeID{}, schema.ShapeID{})
	require.NoError(t, err)
	assert.Equal(t, Estimate{Reliable: true}, none)
}

func TestOptions(t *testing.T) {
	g := schema.MustNewGraph(schema.NewStructure(schema.ID(ns, "R"), schema.NewMember("s", stringID)))

	e, err := New(g, WithSizes(UncompressedOops), WithCacheSize(0))
	require.NoError(t, err)
	shallow, err := e.Shallow(schema.ID(ns, "R"))
	require.NoError(t, err)
	assert.Equal(t, int64(12+8), shallow)

	_, err = New(g, WithCacheSize(-1))
	require.Error(t, err)
	_, err = New(g, WithSizes(Sizes{}))
	require.Error(t, err)

	_, err = e.Of(schema.ID(ns, "Missing"))
	require.Error(t, err)
}

func TestFormatMemoryUsage(t *testing.T) {
	reliable := FormatMemoryUsage(Estimate{Shallow: 16, MinDeep: 40, MaxDeep: 118, Reliable: true}, CompressedOops)
	assert.Contains(t, reliable, "Minimum instance size: 40 bytes")
	assert.Contains(t, reliable, "Maximum instance size: 118 bytes")
	assert.NotContains(t, reliable, "UNBOUNDED")

	guessed := FormatMemoryUsage(Estimate{Shallow: 16, MinDeep: 16, MaxDeep: 2000}, CompressedOops)
	assert.Contains(t, guessed, "Typical instance size: 2000 bytes")
	assert.Contains(t, guessed, "UNBOUNDED")
	assert.Contains(t, guessed, "24 elements per collection")
}

func TestHugeBoundsSaturate(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		huge := schema.NewMember("blob", stringID).WithLength(nil, schema.Int64(1<<62))
		s := schema.NewStructure(schema.ID(ns, "Huge"), huge)
		e := newEstimator(t, s)

		est, err := e.Of(s.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), est.MaxDeep)
		assert.GreaterOrEqual(t, est.MaxDeep, est.MinDeep)
		assert.False(t, est.Reliable)
	})

	t.Run("nested collections", func(t *testing.T) {
		word := schema.NewScalar(schema.ID(ns, "Word"), schema.String).WithLength(schema.Int64(1), schema.Int64(10))
		words := schema.NewList(schema.ID(ns, "Words"), word.ID).WithLength(nil, schema.Int64(1_000_000_000))
		pages := schema.NewList(schema.ID(ns, "Pages"), words.ID).WithLength(nil, schema.Int64(1_000_000_000))
		e := newEstimator(t, word, words, pages)

		inner, err := e.Of(words.ID)
		require.NoError(t, err)
		assert.True(t, inner.Reliable, "one level still fits")

		est, err := e.Of(pages.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), est.MaxDeep)
		assert.GreaterOrEqual(t, est.MaxDeep, est.MinDeep)
		assert.False(t, est.Reliable)

		doc := FormatMemoryUsage(est, e.Sizes())
		assert.Contains(t, doc, "UNBOUNDED")
		assert.NotContains(t, doc, "size: -")
	})
}

func TestCollectionWithoutMaxAssumesDefaultCount(t *testing.T) {
	ints := schema.NewList(schema.ID(ns, "SomeInts"), integerID).WithLength(schema.Int64(2), nil)
	e := newEstimator(t, ints)

	est, err := e.Of(ints.ID)
	require.NoError(t, err)
	boxed := CompressedOops.Int + CompressedOops.Header
	assert.Equal(t, est.Shallow+2*boxed, est.MinDeep)
	assert.Equal(t, est.Shallow+DefaultCollectionSize*boxed, est.MaxDeep)
	assert.False(t, est.Reliable)
}
