package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/mod/modfile"

	"github.com/Telenav/smithy-sub007/compiler"
	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/compiler/gen/golang"
	"github.com/Telenav/smithy-sub007/compiler/load"
	"github.com/Telenav/smithy-sub007/contrib/graphql"
)

// NewRenderCommand renders Go value types and, optionally, a GraphQL schema.
func NewRenderCommand(a *app) *cobra.Command {
	var (
		out, pkg, sdl, gqlgen string
		watch                 bool
	)
	cmd := &cobra.Command{
		Use:   "render <path>...",
		Short: "Render Go value types from shape documents",
		Long: `Render one Go file per structure into the output directory. With
--graphql the GraphQL schema is written too, and with --gqlgen the
gqlgen configuration is updated to bind the rendered types.

Examples:
  shapegen render ./model --out ./internal/model --package model
  shapegen render ./model --graphql schema.graphql --gqlgen gqlgen.yml
  shapegen render ./model --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := a.cfg.Output
			if cmd.Flags().Changed("out") || o.Dir == "" {
				o.Dir = out
			}
			if cmd.Flags().Changed("package") || o.Package == "" {
				o.Package = pkg
			}
			if cmd.Flags().Changed("graphql") {
				o.GraphQL = sdl
			}
			if cmd.Flags().Changed("gqlgen") {
				o.GQLGen = gqlgen
			}
			cfg, err := a.genConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			run := func(ctx context.Context) error {
				return render(ctx, cmd, cfg, o, args)
			}
			if !watch {
				return run(cmd.Context())
			}
			return watchAndRun(cmd.Context(), args, cmd.ErrOrStderr(), run)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "model", "output directory")
	cmd.Flags().StringVarP(&pkg, "package", "p", "model", "Go package name of rendered files")
	cmd.Flags().StringVar(&sdl, "graphql", "", "also write the GraphQL schema to this file")
	cmd.Flags().StringVar(&gqlgen, "gqlgen", "", "gqlgen.yml to update with model bindings (requires --graphql)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render when shape documents change")
	return cmd
}

func render(ctx context.Context, cmd *cobra.Command, cfg *gen.Config, o OutputConfig, paths []string) error {
	g, err := load.Load(paths...)
	if err != nil {
		return err
	}
	res, err := compiler.Generate(ctx, g, cfg)
	if err != nil {
		return err
	}
	est, err := cfg.NewEstimator(g)
	if err != nil {
		return err
	}
	w := golang.NewWriter(golang.NewRenderer(g, o.Package, est), o.Dir).WithWorkers(cfg.Workers)
	if err := w.WriteAll(ctx, res.Plans); err != nil {
		return err
	}
	m := w.Metrics()
	stdout := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(stdout, "rendered %d files (%d bytes) into %s\n", m.FilesGenerated, m.TotalBytes, o.Dir)

	if o.GraphQL == "" {
		if o.GQLGen != "" {
			return fmt.Errorf("gqlgen config %s needs a GraphQL schema output", o.GQLGen)
		}
		return nil
	}
	schema, err := graphql.Render(g)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(o.GraphQL); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create schema directory: %w", err)
		}
	}
	if err := os.WriteFile(o.GraphQL, []byte(schema), 0o644); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", o.GraphQL)
	if o.GQLGen == "" {
		return nil
	}
	gc, err := graphql.LoadGQLGenConfig(o.GQLGen)
	if err != nil {
		return err
	}
	if err := gc.InjectBindings(g, modelImport(o.Dir), o.GraphQL); err != nil {
		return err
	}
	if err := graphql.SaveGQLGenConfig(o.GQLGen, gc); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "updated %s\n", o.GQLGen)
	return nil
}

// modelImport is the import path gqlgen binds models from. Relative output
// directories are joined to the module path found in go.mod, when there is one.
func modelImport(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.ToSlash(dir)
	}
	mod, ok := modulePath(".")
	if !ok {
		return filepath.ToSlash(filepath.Clean(dir))
	}
	return mod + "/" + filepath.ToSlash(filepath.Clean(dir))
}

// modulePath returns the module path declared by go.mod in dir.
func modulePath(dir string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", false
	}
	mod := modfile.ModulePath(data)
	return mod, mod != ""
}
