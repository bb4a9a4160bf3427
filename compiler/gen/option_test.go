package gen

import (
	"errors"
	"log/slog"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telenav/smithy-sub007/compiler/size"
)

func TestNewConfig_Defaults(t *testing.T) {
	c, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, slog.Default(), c.Logger)
	assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
	assert.Equal(t, size.CompressedOops, c.Sizes)
	assert.Equal(t, size.DefaultCacheSize, c.CacheSize)
	assert.Equal(t, DeserializationPreferred, c.Preferred)
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"one", 1, false},
		{"many", 16, false},
		{"zero", 0, true},
		{"negative", -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithWorkers(tt.n)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, c.Workers)
		})
	}
}

func TestWithCacheSize(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithCacheSize(0)(c))
	assert.Equal(t, 0, c.CacheSize)
	err := WithCacheSize(-1)(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingConfig))
}

func TestWithPreferredKind(t *testing.T) {
	t.Run("policy", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithPreferredKind(RankedPreferred)(c))
		assert.Equal(t, RankedPreferred, c.Preferred)
		assert.Error(t, WithPreferredKind(nil)(c))
	})

	t.Run("by name", func(t *testing.T) {
		for name, want := range map[string]PreferredKindPolicy{
			"":                DeserializationPreferred,
			"deserialization": DeserializationPreferred,
			"ranked":          RankedPreferred,
		} {
			c := &Config{}
			require.NoError(t, WithPreferredKindName(name)(c))
			assert.Equal(t, want, c.Preferred)
		}
		err := WithPreferredKindName("newest")(&Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "newest")
	})
}

func TestWithLoggerAndExtensions(t *testing.T) {
	c := &Config{}
	assert.Error(t, WithLogger(nil)(c))
	l := slog.New(slog.DiscardHandler)
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.Logger)

	assert.Error(t, WithExtensions(nil)(c))
	require.NoError(t, WithExtensions(silent{}, equalsOverride{})(c))
	assert.Len(t, c.Extensions, 2)
}

func TestFeatures(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := MustNewConfig()
		assert.True(t, c.FeatureEnabled(FeatureIdentity))
		assert.True(t, c.FeatureEnabled(FeatureConstraints))
		assert.True(t, c.FeatureEnabled(FeatureBuilder))
		assert.False(t, c.FeatureEnabled(FeatureMemoryDocs))
		assert.False(t, c.FeatureEnabled(FeatureFootprint))
	})

	t.Run("enable and disable", func(t *testing.T) {
		c := MustNewConfig(WithFeatureNames("docs/memory"), WithoutFeatures("identity"))
		assert.True(t, c.FeatureEnabled(FeatureMemoryDocs))
		assert.False(t, c.FeatureEnabled(FeatureIdentity))
	})

	t.Run("unknown names", func(t *testing.T) {
		assert.True(t, IsConfigError(WithFeatureNames("telepathy")(&Config{})))
		assert.True(t, IsConfigError(WithoutFeatures("telepathy")(&Config{})))
	})

	t.Run("stage names", func(t *testing.T) {
		assert.Equal(t, "stable", FeatureIdentity.Stage.String())
		assert.Equal(t, "beta", FeatureMemoryDocs.Stage.String())
		assert.Equal(t, "experimental", FeatureFootprint.Stage.String())
		assert.Equal(t, "unknown", FeatureStage(0).String())
	})

	t.Run("compose installs enabled built-ins", func(t *testing.T) {
		c := MustNewConfig(WithExtensions(ranked{precedence: 15}), WithoutFeatures("builder"))
		leaves := c.Compose().Leaves()
		require.Len(t, leaves, 4)
		assert.IsType(t, IdentityExtension{}, leaves[0])
		assert.IsType(t, ranked{}, leaves[1])
		assert.IsType(t, ConstraintExtension{}, leaves[2])
		assert.IsType(t, DefaultExtension{}, leaves[3])
	})
}

func TestApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithWorkers(0), WithCacheSize(5))
		require.Error(t, err)
		assert.Equal(t, 0, c.CacheSize)
	})

	t.Run("ApplyAll collects every error", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithWorkers(0), WithCacheSize(-1), WithCacheSize(5))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "CacheSize")
		assert.Equal(t, 5, c.CacheSize)
	})

	t.Run("MustNewConfig panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithWorkers(0)) })
	})
}

func TestConstructorKind(t *testing.T) {
	for _, k := range []ConstructorKind{Deserialization, Primitives, Convenience} {
		got, ok := ParseConstructorKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseConstructorKind("positional")
	assert.False(t, ok)
	assert.Equal(t, []ConstructorKind{Deserialization, Primitives, Convenience},
		normalizeKinds([]ConstructorKind{Convenience, Primitives, Convenience}))
	assert.Equal(t, Deserialization, DeserializationPreferred.Select([]ConstructorKind{Deserialization, Convenience}))
}
