package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Telenav/smithy-sub007/compiler"
	"github.com/Telenav/smithy-sub007/compiler/gen"
	"github.com/Telenav/smithy-sub007/compiler/load"
	"github.com/Telenav/smithy-sub007/schema"
)

// NewPlanCommand prints the generation plan of every structure.
func NewPlanCommand(a *app) *cobra.Command {
	var shape, snapshot string
	cmd := &cobra.Command{
		Use:   "plan <path>...",
		Short: "Print the generation plan of each structure",
		Long: `Load the shape documents under the given files or directories and
print, per structure, the contributors chosen for every phase.

Examples:
  shapegen plan ./model
  shapegen plan ./model/shop.yaml --shape example.shop#Order
  shapegen plan ./model --snapshot plans.msgpack`,
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
			res, err := compiler.Generate(cmd.Context(), g, cfg)
			if err != nil {
				return err
			}
			var only schema.ShapeID
			if shape != "" {
				if only, err = schema.ParseShapeID(shape); err != nil {
					return err
				}
			}
			title := color.New(color.FgCyan, color.Bold)
			phase := color.New(color.FgYellow)
			out := cmd.OutOrStdout()
			var snap bytes.Buffer
			for _, p := range res.Plans {
				if !only.IsZero() && p.Shape != only {
					continue
				}
				if snapshot != "" {
					b, err := gen.Snapshot(p)
					if err != nil {
						return err
					}
					snap.Write(b)
				}
				title.Fprintf(out, "%s", p.Shape)
				fmt.Fprintf(out, " kinds=%v preferred=%s\n", p.Kinds, p.Preferred)
				var last gen.Phase = -1
				for _, c := range p.Contributors {
					if c.Phase() != last {
						last = c.Phase()
						phase.Fprintf(out, "  %s\n", last)
					}
					fmt.Fprintf(out, "    %s\n", c.Describe())
				}
			}
			if snapshot != "" {
				if err := os.WriteFile(snapshot, snap.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&snapshot, "snapshot", "", "also write the msgpack plan snapshots, one after another, to this file")
	cmd.Flags().StringVar(&shape, "shape", "", "only print the plan of this structure (namespace#Name)")
	return cmd
}
