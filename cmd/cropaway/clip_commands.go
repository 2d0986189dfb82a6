package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cropaway/internal/crop"
)

func newClipCommand(ctx *commandContext) *cobra.Command {
	clipCmd := &cobra.Command{
		Use:   "clip",
		Short: "Manage project clips",
	}

	clipCmd.AddCommand(newClipAddCommand(ctx))
	clipCmd.AddCommand(newClipListCommand(ctx))
	clipCmd.AddCommand(newClipShowCommand(ctx))
	clipCmd.AddCommand(newClipRemoveCommand(ctx))
	clipCmd.AddCommand(newClipModeCommand(ctx))
	clipCmd.AddCommand(newClipKeyframingCommand(ctx))

	return clipCmd
}

func newClipAddCommand(ctx *commandContext) *cobra.Command {
	var name string
	var duration float64

	cmd := &cobra.Command{
		Use:   "add <source-path>",
		Short: "Add a clip to the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clipName := name
			if clipName == "" {
				clipName = deriveClipName(args[0])
			}
			clip, err := store.NewClip(cmd.Context(), clipName, args[0], duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added clip %d (%s)\n", clip.ID, clip.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Clip display name (derived from the source path when empty)")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Clip duration in seconds")
	return cmd
}

func newClipListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List project clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clips, err := store.ListClips(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, clips)
			}

			if len(clips) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No clips in project")
				return nil
			}
			rows := make([][]string, 0, len(clips))
			for _, clip := range clips {
				track, err := store.LoadTrack(cmd.Context(), clip.ID)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					strconv.FormatInt(clip.ID, 10),
					clip.Name,
					string(clip.Mode),
					yesNo(clip.KeyframingEnabled),
					fmt.Sprintf("%g", clip.Duration),
					strconv.Itoa(track.Len()),
				})
			}
			headers := []string{"ID", "Name", "Mode", "Keyframing", "Duration", "Keyframes"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newClipShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <clip-id>",
		Short: "Show one clip and its timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, err := store.GetClip(cmd.Context(), id)
			if err != nil {
				return err
			}
			if clip == nil {
				return fmt.Errorf("clip %d not found", id)
			}
			track, err := store.LoadTrack(cmd.Context(), id)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"clip":      clip,
					"keyframes": track.Keyframes(),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Clip %d: %s\n", clip.ID, clip.Name)
			fmt.Fprintf(out, "  Source:     %s\n", clip.SourcePath)
			fmt.Fprintf(out, "  Duration:   %gs\n", clip.Duration)
			fmt.Fprintf(out, "  Mode:       %s\n", clip.Mode)
			fmt.Fprintf(out, "  Keyframing: %s\n", yesNo(clip.KeyframingEnabled))
			fmt.Fprintln(out)
			printKeyframeTable(out, track, clip.Mode)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newClipRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <clip-id>",
		Short: "Remove a clip and its keyframes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			removed, err := store.DeleteClip(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("clip %d not found", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clip %d removed\n", id)
			return nil
		},
	}
}

func newClipModeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mode <clip-id> <rectangle|circle|freehand|ai>",
		Short: "Switch a clip's crop mode",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			mode, err := crop.ParseMode(args[1])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, err := store.GetClip(cmd.Context(), id)
			if err != nil {
				return err
			}
			if clip == nil {
				return fmt.Errorf("clip %d not found", id)
			}
			clip.Mode = mode
			if err := store.UpdateClip(cmd.Context(), clip); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clip %d switched to %s mode\n", id, mode)
			return nil
		},
	}
}

func newClipKeyframingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keyframing <clip-id> <on|off>",
		Short: "Enable or disable keyframing for a clip",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			var enabled bool
			switch args[1] {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("invalid keyframing value %q (want on or off)", args[1])
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, err := store.GetClip(cmd.Context(), id)
			if err != nil {
				return err
			}
			if clip == nil {
				return fmt.Errorf("clip %d not found", id)
			}
			clip.KeyframingEnabled = enabled
			if err := store.UpdateClip(cmd.Context(), clip); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clip %d keyframing %s\n", id, args[1])
			return nil
		},
	}
}
