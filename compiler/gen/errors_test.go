package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Telenav/smithy-sub007/schema"
)

func TestConfigurationError(t *testing.T) {
	shape := schema.ID("example.test", "User")

	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewConfigurationError(shape, "email", "invalid pattern", cause)

		assert.Contains(t, err.Error(), "shapegen: configuration error")
		assert.Contains(t, err.Error(), "shape example.test#User")
		assert.Contains(t, err.Error(), "member email")
		assert.Contains(t, err.Error(), "invalid pattern")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with shape only", func(t *testing.T) {
		err := &ConfigurationError{Shape: shape}
		assert.Contains(t, err.Error(), "example.test#User")
		assert.NotContains(t, err.Error(), "member")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewConfigurationError(shape, "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrConfiguration", func(t *testing.T) {
		err := NewConfigurationError(shape, "", "", nil)
		assert.True(t, err.Is(ErrConfiguration))
		assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrConfiguration))
	})

	t.Run("IsConfigurationError helper", func(t *testing.T) {
		err := NewConfigurationError(shape, "email", "test", nil)
		assert.True(t, IsConfigurationError(err))
		assert.True(t, IsConfigurationError(errors.Join(errors.New("other"), err)))
		assert.False(t, IsConfigurationError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", 0, "must be at least 1")

		assert.Contains(t, err.Error(), "shapegen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "value: 0")
		assert.Contains(t, err.Error(), "must be at least 1")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Logger", nil, "cannot be nil")

		assert.Contains(t, err.Error(), "Logger")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Preferred", nil, "missing")
		assert.True(t, err.Is(ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		assert.True(t, IsConfigError(NewConfigError("Preferred", nil, "missing")))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	shape := schema.ID("example.test", "User")

	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewGenerationError(PhaseEquals, shape, "hook failed", errors.New("boom"))

		assert.Contains(t, err.Error(), "shapegen: generation error")
		assert.Contains(t, err.Error(), "in phase equals")
		assert.Contains(t, err.Error(), "(shape: example.test#User)")
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("Is matches ErrGenerationFailed", func(t *testing.T) {
		err := NewGenerationError(0, schema.ShapeID{}, "x", nil)
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.NotContains(t, err.Error(), "phase")
	})

	t.Run("IsGenerationError helper", func(t *testing.T) {
		assert.True(t, IsGenerationError(NewGenerationError(PhaseFields, shape, "", nil)))
		assert.False(t, IsGenerationError(errors.New("other")))
	})
}

func TestWrapHook(t *testing.T) {
	shape := schema.ID("example.test", "User")

	assert.NoError(t, wrapHook(PhaseFields, shape, nil))

	cfgErr := NewConfigurationError(shape, "id", "bad", nil)
	assert.Same(t, cfgErr, wrapHook(PhaseFields, shape, cfgErr))

	err := wrapHook(PhaseGetters, shape, errors.New("plain"))
	var genErr *GenerationError
	assert.ErrorAs(t, err, &genErr)
	assert.Equal(t, PhaseGetters, genErr.Phase)

	assert.Equal(t, "phase(42)", Phase(42).String())
}
