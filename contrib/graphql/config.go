package graphql

import (
	"fmt"

	"github.com/Telenav/smithy-sub007/schema"
)

// Config controls the rendered schema.
type Config struct {
	// Inputs adds an input type per structure.
	Inputs bool
	// Directives carries member constraints as directives.
	Directives bool
	// Scalars names the GraphQL type of kinds without a built-in scalar.
	Scalars map[schema.Kind]string
}

// Option configures the rendered schema.
type Option func(*Config) error

// DefaultScalars are the custom scalar names used unless overridden.
var DefaultScalars = map[schema.Kind]string{
	schema.Long:       "Long",
	schema.BigInteger: "BigInteger",
	schema.BigDecimal: "BigDecimal",
	schema.Blob:       "Blob",
	schema.Timestamp:  "Timestamp",
	schema.Document:   "Document",
	schema.Map:        "Map",
}

func newConfig(opts ...Option) (*Config, error) {
	c := &Config{Scalars: make(map[schema.Kind]string, len(DefaultScalars))}
	for k, v := range DefaultScalars {
		c.Scalars[k] = v
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithInputs enables input types.
func WithInputs(enabled bool) Option {
	return func(c *Config) error {
		c.Inputs = enabled
		return nil
	}
}

// WithConstraintDirectives enables @length, @range and @pattern.
func WithConstraintDirectives(enabled bool) Option {
	return func(c *Config) error {
		c.Directives = enabled
		return nil
	}
}

// WithScalar renames the custom scalar of a kind.
func WithScalar(kind schema.Kind, name string) Option {
	return func(c *Config) error {
		if _, ok := DefaultScalars[kind]; !ok {
			return fmt.Errorf("graphql: kind %s has a built-in scalar", kind)
		}
		if name == "" {
			return fmt.Errorf("graphql: empty scalar name for %s", kind)
		}
		c.Scalars[kind] = name
		return nil
	}
}
