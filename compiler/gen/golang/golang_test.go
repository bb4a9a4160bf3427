package golang

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/schema"
)

const testNamespace = "example.test"

var (
	stringID = schema.PreludeID(schema.String)
	intID    = schema.PreludeID(schema.Integer)
	byteID   = schema.PreludeID(schema.Byte)
	bigIntID = schema.PreludeID(schema.BigInteger)
)

func shapeID(name string) schema.ShapeID {
	return schema.ID(testNamespace, name)
}

func personGraph(t *testing.T) *schema.Graph {
	t.Helper()
	g, err := schema.NewGraph(
		schema.NewStructure(shapeID("Person"),
			schema.NewMember("id", stringID).AsRequired().AsIdentity(),
			schema.NewMember("name", stringID).WithLength(schema.Int64(1), schema.Int64(40)).WithPattern("^[A-Z]"),
			schema.NewMember("age", intID).WithDefault(int64(0)).WithRange(schema.Rat("0"), schema.Rat("150")),
		).WithBuilder("flat"),
		schema.NewStructure(shapeID("Settings"),
			schema.NewMember("retries", byteID).WithDefault(int64(3)),
			schema.NewMember("budget", bigIntID).WithDefault(int64(100)),
		),
	)
	require.NoError(t, err)
	return g
}

func render(t *testing.T, g *schema.Graph, name string, opts ...gen.Option) string {
	t.Helper()
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	p, err := gen.NewPipeline(g, nil, cfg)
	require.NoError(t, err)
	plan, err := p.Plan(shapeID(name))
	require.NoError(t, err)
	f, err := NewRenderer(g, "model", p.Sizes()).Render(plan)
	require.NoError(t, err)
	return fmt.Sprintf("%#v", f)
}

func TestNaming(t *testing.T) {
	tests := []struct {
		in         string
		exported   string
		unexported string
	}{
		{in: "id", exported: "ID", unexported: "id"},
		{in: "name", exported: "Name", unexported: "name"},
		{in: "first_name", exported: "FirstName", unexported: "firstName"},
		{in: "userId", exported: "UserID", unexported: "userID"},
		{in: "homeUrl", exported: "HomeURL", unexported: "homeURL"},
		{in: "type", exported: "Type", unexported: "type_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.exported, Exported(tt.in))
			assert.Equal(t, tt.unexported, Unexported(tt.in))
		})
	}
	assert.Equal(t, "order_line.go", FileName("OrderLine"))
}

func TestRender_Person(t *testing.T) {
	out := render(t, personGraph(t), "Person")

	assert.Contains(t, out, "package model")
	assert.Contains(t, out, "Code generated by shapegen, DO NOT EDIT.")
	assert.Contains(t, out, "type Person struct")
	assert.Contains(t, out, "func NewPerson(")
	assert.Contains(t, out, "func NewPersonPrimitives(")
	assert.NotContains(t, out, "func NewPersonConvenience(")
	assert.Contains(t, out, "@GenerateBuilder(styles=FLAT)")

	t.Run("Checks", func(t *testing.T) {
		assert.Contains(t, out, `"Person: age is out of range"`)
		assert.Contains(t, out, `"Person: name has invalid length"`)
		assert.Contains(t, out, `regexp.MustCompile("^[A-Z]")`)
		assert.Contains(t, out, "_personNamePattern")
	})

	t.Run("Identity", func(t *testing.T) {
		assert.Contains(t, out, "func (_v *Person) Equal(other *Person) bool")
		assert.Contains(t, out, "func (_v *Person) Hash() uint64")
		assert.Contains(t, out, "xxhash.New()")
		assert.Contains(t, out, "// Equal compares id.")
	})

	t.Run("Accessors", func(t *testing.T) {
		assert.Contains(t, out, "func (_v *Person) ID() string")
		assert.Contains(t, out, "func (_v *Person) Name() (string, bool)")
		assert.Contains(t, out, "func (_v *Person) Age() int32")
		assert.Contains(t, out, "func (_v *Person) String() string")
	})

	t.Run("Builder", func(t *testing.T) {
		assert.Contains(t, out, "type PersonBuilder struct")
		assert.Contains(t, out, "func (b *PersonBuilder) WithName(")
		assert.Contains(t, out, "func (b *PersonBuilder) Build() (*Person, error)")
		assert.Contains(t, out, "func NewPersonBuilder() *PersonBuilder")
	})
}

func TestRender_Supplements(t *testing.T) {
	out := render(t, personGraph(t), "Settings", gen.WithFeatures(gen.FeatureFootprint))

	assert.Contains(t, out, "var DefaultSettings = &Settings{")
	assert.Contains(t, out, "big.NewInt(100)")
	assert.Contains(t, out, "func (_v *Settings) BudgetAsInt64() (int64, bool)")
	assert.Contains(t, out, "func NewSettingsConvenience(")
	assert.Contains(t, out, "int8(retries)")
	assert.NotContains(t, out, "Builder")
}

func TestRender_UnknownShape(t *testing.T) {
	g := personGraph(t)
	_, err := NewRenderer(g, "model", nil).Render(&gen.Plan{Shape: shapeID("Missing")})
	require.Error(t, err)
}

func TestHelpers(t *testing.T) {
	out := fmt.Sprintf("%#v", NewRenderer(personGraph(t), "model", nil).Helpers())
	assert.Contains(t, out, "func shapegenValue(v any) any")
}

func TestWriter_WriteAll(t *testing.T) {
	g := personGraph(t)
	p, err := gen.NewPipeline(g, nil, gen.MustNewConfig())
	require.NoError(t, err)
	var plans []*gen.Plan
	for _, s := range g.Structures() {
		plan, err := p.Plan(s.ID)
		require.NoError(t, err)
		plans = append(plans, plan)
	}

	dir := t.TempDir()
	w := NewWriter(NewRenderer(g, "model", p.Sizes()), dir).WithWorkers(2)
	require.NoError(t, w.WriteAll(context.Background(), plans))

	for _, name := range []string{HelpersFile, "person.go", "settings.go"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "package model")
	}
	assert.Equal(t, 3, w.Metrics().FilesGenerated)
	assert.Positive(t, w.Metrics().TotalBytes)
}

func TestWriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w := NewWriter(NewRenderer(personGraph(t), "model", nil), t.TempDir())
	err := w.WriteAll(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
