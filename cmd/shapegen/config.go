package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/compiler/size"
)

// Config is the shapegen configuration, read from shapegen.yaml and
// SHAPEGEN_* environment variables.
type Config struct {
	Features   []string     `mapstructure:"features"`
	Disable    []string     `mapstructure:"disable"`
	Workers    int          `mapstructure:"workers"`
	Preferred  string       `mapstructure:"preferred"`
	References string       `mapstructure:"references"`
	CacheSize  int          `mapstructure:"cache_size"`
	LogLevel   string       `mapstructure:"log_level"`
	Output     OutputConfig `mapstructure:"output"`
}

// OutputConfig says where rendered files go.
type OutputConfig struct {
	Dir     string `mapstructure:"dir"`
	Package string `mapstructure:"package"`
	GraphQL string `mapstructure:"graphql"`
	GQLGen  string `mapstructure:"gqlgen"`
}

// LoadConfig reads the configuration. An explicit path must exist; the
// default shapegen.yaml is optional.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("features", []string{})
	v.SetDefault("disable", []string{})
	v.SetDefault("workers", 0)
	v.SetDefault("preferred", "deserialization")
	v.SetDefault("references", "compressed")
	v.SetDefault("cache_size", size.DefaultCacheSize)
	v.SetDefault("log_level", "info")
	v.SetDefault("output.dir", "model")
	v.SetDefault("output.package", "model")
	v.SetDefault("output.graphql", "")
	v.SetDefault("output.gqlgen", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("shapegen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SHAPEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// GenOptions converts the configuration to generation options. Logs go to w.
func (c *Config) GenOptions(w io.Writer) ([]gen.Option, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	opts := []gen.Option{
		gen.WithLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))),
		gen.WithFeatureNames(c.Features...),
		gen.WithoutFeatures(c.Disable...),
		gen.WithPreferredKindName(c.Preferred),
		gen.WithCacheSize(c.CacheSize),
	}
	if c.Workers > 0 {
		opts = append(opts, gen.WithWorkers(c.Workers))
	}
	switch c.References {
	case "compressed", "":
		opts = append(opts, gen.WithSizes(size.CompressedOops))
	case "uncompressed":
		opts = append(opts, gen.WithSizes(size.UncompressedOops))
	default:
		return nil, fmt.Errorf("invalid references %q (want compressed or uncompressed)", c.References)
	}
	return opts, nil
}
