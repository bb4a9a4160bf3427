package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Telenav/smithy-sub007/schema"
)

// Sentinel errors for common failure cases.
var (
	// ErrConfiguration indicates an invalid combination of traits or flags.
	ErrConfiguration = errors.New("shapegen: invalid configuration")
	// ErrMissingConfig indicates an invalid generator option.
	ErrMissingConfig = errors.New("shapegen: missing configuration")
	// ErrGenerationFailed indicates a hook failure that is not a
	// configuration problem.
	ErrGenerationFailed = errors.New("shapegen: code generation failed")
)

// ConfigurationError reports a statically detectable problem with a shape
// or one of its members. It is always fatal to the run.
type ConfigurationError struct {
	Shape   schema.ShapeID
	Member  string // Member name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("shapegen: configuration error")
	if !e.Shape.IsZero() {
		b.WriteString(" on shape ")
		b.WriteString(e.Shape.String())
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(shape schema.ShapeID, member, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Shape:   shape,
		Member:  member,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents an invalid generator option.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("shapegen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("shapegen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a failing hook.
type GenerationError struct {
	Phase   Phase
	Shape   schema.ShapeID
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("shapegen: generation error")
	if e.Phase != 0 {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase.String())
	}
	if !e.Shape.IsZero() {
		b.WriteString(" (shape: ")
		b.WriteString(e.Shape.String())
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase Phase, shape schema.ShapeID, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		Shape:   shape,
		Message: message,
		Cause:   cause,
	}
}

// IsConfigurationError reports whether the error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// wrapHook attributes a hook error to a phase, leaving configuration errors
// untouched so callers can still match them directly.
func wrapHook(phase Phase, shape schema.ShapeID, err error) error {
	if err == nil || IsConfigurationError(err) || IsGenerationError(err) {
		return err
	}
	return NewGenerationError(phase, shape, "hook failed", err)
}
