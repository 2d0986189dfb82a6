package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cropaway/internal/crop"
	"cropaway/internal/export"
)

func newSampleCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sample <clip-id> <timestamp>...",
		Short: "Sample the interpolated crop state at one or more timestamps",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			times := make([]float64, 0, len(args)-1)
			for _, arg := range args[1:] {
				ts, err := parseTimestamp(arg)
				if err != nil {
					return err
				}
				times = append(times, ts)
			}

			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			sampler, err := export.NewSampler(track, clip.Mode, crop.Default())
			if err != nil {
				return err
			}

			if asJSON {
				type jsonSample struct {
					Time  float64    `json:"time"`
					State crop.State `json:"state"`
				}
				samples := make([]jsonSample, 0, len(times))
				for _, ts := range times {
					samples = append(samples, jsonSample{Time: ts, State: sampler.At(ts)})
				}
				return writeJSON(cmd, samples)
			}

			rows := make([][]string, 0, len(times))
			for _, ts := range times {
				rows = append(rows, []string{
					strconv.FormatFloat(ts, 'g', -1, 64),
					describeState(sampler.At(ts), clip.Mode),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Time", "State"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}
