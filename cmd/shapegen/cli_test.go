package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/compiler/size"
)

const shopDoc = `namespace: example.shop
shapes:
  - name: Order
    type: structure
    doc: A customer order.
    builder: flat
    members:
      - name: id
        target: String
        required: true
        identity: true
        length: {min: 1, max: 36}
      - name: quantity
        target: Integer
        default: 1
        range: {min: 1, max: 1000}
      - name: note
        target: String
`

func writeDoc(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "shop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shopDoc), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"plan", "size", "render", "features"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestPlanCommand(t *testing.T) {
	path := writeDoc(t)

	out, err := execute(t, "plan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "example.shop#Order")
	assert.Contains(t, out, "preferred=deserialization")
	assert.Contains(t, out, "constructors")
	assert.Contains(t, out, "builder")

	out, err = execute(t, "plan", path, "--shape", "example.shop#Missing")
	require.NoError(t, err)
	assert.Empty(t, out)

	snap := filepath.Join(t.TempDir(), "plans.msgpack")
	_, err = execute(t, "plan", path, "--shape", "example.shop#Order", "--snapshot", snap)
	require.NoError(t, err)
	data, err := os.ReadFile(snap)
	require.NoError(t, err)
	decoded, err := gen.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, "example.shop#Order", decoded.Shape)
	assert.NotEmpty(t, decoded.Contributors)

	_, err = execute(t, "plan", path, "--shape", "no-namespace")
	assert.Error(t, err)

	_, err = execute(t, "plan")
	assert.Error(t, err, "paths are required")
}

func TestSizeCommand(t *testing.T) {
	path := writeDoc(t)

	out, err := execute(t, "size", path, "--shape", "example.shop#Order")
	require.NoError(t, err)
	assert.Contains(t, out, "example.shop#Order")
	assert.Contains(t, out, "reliable=false", "note has no length bound")

	out, err = execute(t, "size", path, "--shape", "example.shop#Order", "--doc")
	require.NoError(t, err)
	assert.Contains(t, out, "# Memory Usage")
	assert.Contains(t, out, "UNBOUNDED")

	_, err = execute(t, "size", path, "--shape", "example.shop#Missing")
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	path := writeDoc(t)
	out := t.TempDir()
	sdl := filepath.Join(out, "graph", "schema.graphql")
	gqlgen := filepath.Join(out, "gqlgen.yml")

	stdout, err := execute(t, "render", path,
		"--out", filepath.Join(out, "model"), "--package", "model",
		"--graphql", sdl, "--gqlgen", gqlgen)
	require.NoError(t, err)
	assert.Contains(t, stdout, "rendered 2 files")

	src, err := os.ReadFile(filepath.Join(out, "model", "order.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package model")
	assert.Contains(t, string(src), "func NewOrder(")

	schemaSrc, err := os.ReadFile(sdl)
	require.NoError(t, err)
	assert.Contains(t, string(schemaSrc), "type Order")

	cfg, err := os.ReadFile(gqlgen)
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "schema.graphql")
	assert.Contains(t, string(cfg), "autobind")
}

func TestRenderCommand_GQLGenNeedsSchema(t *testing.T) {
	path := writeDoc(t)
	out := t.TempDir()
	_, err := execute(t, "render", path, "--out", out, "--gqlgen", filepath.Join(out, "gqlgen.yml"))
	assert.ErrorContains(t, err, "needs a GraphQL schema")
}

func TestFeaturesCommand(t *testing.T) {
	out, err := execute(t, "features")
	require.NoError(t, err)
	assert.Contains(t, out, "identity")
	assert.Contains(t, out, "docs/memory")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "deserialization", cfg.Preferred)
		assert.Equal(t, "compressed", cfg.References)
		assert.Equal(t, size.DefaultCacheSize, cfg.CacheSize)
		assert.Equal(t, "model", cfg.Output.Dir)
	})

	t.Run("file and environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "shapegen.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
features: [builder]
disable: [identity]
references: uncompressed
output:
  dir: gen
`), 0o644))
		t.Setenv("SHAPEGEN_WORKERS", "3")
		t.Setenv("SHAPEGEN_OUTPUT_PACKAGE", "shapes")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"builder"}, cfg.Features)
		assert.Equal(t, []string{"identity"}, cfg.Disable)
		assert.Equal(t, 3, cfg.Workers)
		assert.Equal(t, "gen", cfg.Output.Dir)
		assert.Equal(t, "shapes", cfg.Output.Package)

		opts, err := cfg.GenOptions(&bytes.Buffer{})
		require.NoError(t, err)
		assert.NotEmpty(t, opts)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid options", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		cfg.References = "wide"
		_, err = cfg.GenOptions(&bytes.Buffer{})
		assert.ErrorContains(t, err, "invalid references")

		cfg.References = "compressed"
		cfg.LogLevel = "loud"
		_, err = cfg.GenOptions(&bytes.Buffer{})
		assert.ErrorContains(t, err, "invalid log_level")
	})
}
