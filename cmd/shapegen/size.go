package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Telenav/smithy-sub007/compiler/load"
	"github.com/Telenav/smithy-sub007/compiler/size"
	"github.com/Telenav/smithy-sub007/schema"
)

// NewSizeCommand prints the estimated footprint of shapes.
func NewSizeCommand(a *app) *cobra.Command {
	var (
		shape string
		doc   bool
	)
	cmd := &cobra.Command{
		Use:   "size <path>...",
		Short: "Estimate the memory footprint of shapes",
		Long: `Estimate shallow, minimum and maximum instance sizes of every shape.
Estimates that depend on unconstrained strings or collections, or on
recursion, are marked as guesses.

Examples:
  shapegen size ./model
  shapegen size ./model --shape example.shop#Order --doc`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := load.Load(args...)
			if err != nil {
				return err
			}
			cfg, err := a.genConfig(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			est, err := cfg.NewEstimator(g)
			if err != nil {
				return err
			}
			shapes := g.Shapes()
			if shape != "" {
				id, err := schema.ParseShapeID(shape)
				if err != nil {
					return err
				}
				s, err := g.Expect(id)
				if err != nil {
					return err
				}
				shapes = []*schema.Shape{s}
			}
			out := cmd.OutOrStdout()
			reliable := color.New(color.FgGreen)
			guessed := color.New(color.FgYellow)
			for _, s := range shapes {
				e, err := est.Of(s.ID)
				if err != nil {
					return err
				}
				if doc {
					fmt.Fprintf(out, "%s\n\n%s\n", s.ID, size.FormatMemoryUsage(e, est.Sizes()))
					continue
				}
				fmt.Fprintf(out, "%-40s ", s.ID)
				if e.Guessed() {
					guessed.Fprintln(out, e)
				} else {
					reliable.Fprintln(out, e)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&shape, "shape", "", "only estimate this shape (namespace#Name)")
	cmd.Flags().BoolVar(&doc, "doc", false, "print the memory usage documentation stanza")
	return cmd
}
