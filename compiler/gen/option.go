package gen

import (
	"errors"
	"log/slog"
	"runtime"
	"slices"

	"github.com/Telenav/smithy-sub007/compiler/size"
	"github.com/Telenav/smithy-sub007/schema"
)

// Config holds the settings of a generation run.
type Config struct {
	// Extensions are the discovered providers, in discovery order.
	Extensions []Extension
	// Features are explicitly enabled features.
	Features []Feature
	// Disabled names features turned off even if enabled by default.
	Disabled []string
	Logger   *slog.Logger
	// Workers bounds how many structures are planned in parallel.
	Workers   int
	Sizes     size.Sizes
	CacheSize int
	Preferred PreferredKindPolicy
}

// Option configures code generation.
type Option func(*Config) error

// WithExtensions adds discovered extensions.
func WithExtensions(exts ...Extension) Option {
	return func(c *Config) error {
		for _, e := range exts {
			if e == nil {
				return NewConfigError("Extensions", nil, "extension cannot be nil")
			}
		}
		c.Extensions = append(c.Extensions, exts...)
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, n := range names {
			f, ok := FeatureByName(n)
			if !ok {
				return NewConfigError("Features", n, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithoutFeatures disables features by name.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, n := range names {
			if _, ok := FeatureByName(n); !ok {
				return NewConfigError("Disabled", n, "unknown feature")
			}
		}
		c.Disabled = append(c.Disabled, names...)
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithSizes sets the size estimator's layout assumptions.
func WithSizes(s size.Sizes) Option {
	return func(c *Config) error {
		c.Sizes = s
		return nil
	}
}

// WithCacheSize sets the per-worker estimate cache capacity. Zero disables
// caching.
func WithCacheSize(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("CacheSize", n, "cannot be negative")
		}
		c.CacheSize = n
		return nil
	}
}

// WithPreferredKind sets the preferred constructor kind policy.
func WithPreferredKind(p PreferredKindPolicy) Option {
	return func(c *Config) error {
		if p == nil {
			return NewConfigError("Preferred", nil, "policy cannot be nil")
		}
		c.Preferred = p
		return nil
	}
}

// WithPreferredKindName sets a built-in policy by name.
func WithPreferredKindName(name string) Option {
	return func(c *Config) error {
		p, ok := PolicyByName(name)
		if !ok {
			return NewConfigError("Preferred", name, "unknown policy; use deserialization or ranked")
		}
		c.Preferred = p
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Logger:    slog.Default(),
		Workers:   runtime.GOMAXPROCS(0),
		Sizes:     size.CompressedOops,
		CacheSize: size.DefaultCacheSize,
		Preferred: DeserializationPreferred,
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// FeatureEnabled reports whether f is on for this run.
func (c *Config) FeatureEnabled(f Feature) bool {
	if slices.Contains(c.Disabled, f.Name) {
		return false
	}
	if f.Default {
		return true
	}
	return slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name })
}

// Compose returns the chain of the run: discovered extensions and enabled
// built-in features ordered by precedence, then the default extension.
func (c *Config) Compose() *Chain {
	discovered := slices.Clone(c.Extensions)
	for _, f := range AllFeatures {
		if f.extension != nil && c.FeatureEnabled(f) {
			discovered = append(discovered, f.extension())
		}
	}
	return Compose(DefaultExtension{}, discovered...)
}

// NewEstimator returns a size estimator configured for this run.
func (c *Config) NewEstimator(g *schema.Graph) (*size.Estimator, error) {
	return size.New(g, size.WithSizes(c.Sizes), size.WithCacheSize(c.CacheSize))
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Config) policy() PreferredKindPolicy {
	if c.Preferred == nil {
		return DeserializationPreferred
	}
	return c.Preferred
}
