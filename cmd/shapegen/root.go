package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Telenav/smithy-sub007/compiler/gen"
)

// app is the state shared by the subcommands.
type app struct {
	configPath string
	cfg        *Config
}

func (a *app) genConfig(w io.Writer) (*gen.Config, error) {
	opts, err := a.cfg.GenOptions(w)
	if err != nil {
		return nil, err
	}
	return gen.NewConfig(opts...)
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "shapegen",
		Short: "Value type generator for shape models",
		Long: color.CyanString(`shapegen - value types from shape models

shapegen reads shape documents (YAML or JSON), decides what every
structure's generated type contains, estimates memory footprints and
renders Go source and GraphQL schemas.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// A missing .env file is fine.
			_ = godotenv.Load()
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./shapegen.yaml)")

	rootCmd.AddCommand(NewPlanCommand(a))
	rootCmd.AddCommand(NewSizeCommand(a))
	rootCmd.AddCommand(NewRenderCommand(a))
	rootCmd.AddCommand(NewFeaturesCommand())
	return rootCmd
}

// NewFeaturesCommand lists the generation features.
func NewFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List generation features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()
			for _, f := range gen.AllFeatures {
				state := "off"
				if f.Default {
					state = "on"
				}
				name.Fprintf(out, "%-14s", f.Name)
				fmt.Fprintf(out, " %-12s %-3s %s\n", f.Stage, state, f.Description)
			}
			return nil
		},
	}
}
