package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cropaway/internal/project"
)

func newScenarioCommand(ctx *commandContext) *cobra.Command {
	scenarioCmd := &cobra.Command{
		Use:   "scenario",
		Short: "Exchange clip timelines as YAML scenario files",
	}

	scenarioCmd.AddCommand(newScenarioExportCommand(ctx))
	scenarioCmd.AddCommand(newScenarioImportCommand(ctx))

	return scenarioCmd
}

func newScenarioExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <clip-id>...",
		Short: "Write clips and their timelines to a scenario file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseClipID(arg)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			scenario, err := store.ExportScenario(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			if err := project.WriteScenario(scenario, outPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d clip(s) to %s\n", len(scenario.Clips), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "scenario.yaml", "Destination scenario file")
	return cmd
}

func newScenarioImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <scenario-file>",
		Short: "Create clips and timelines from a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := project.ReadScenario(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clips, err := store.ImportScenario(cmd.Context(), scenario)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, clip := range clips {
				fmt.Fprintf(out, "Imported clip %d (%s)\n", clip.ID, clip.Name)
			}
			return nil
		},
	}
}
