package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"cropaway/internal/crop"
	"cropaway/internal/keyframe"
	"cropaway/internal/project"
	"cropaway/internal/session"
)

func newKeyframeCommand(ctx *commandContext) *cobra.Command {
	keyframeCmd := &cobra.Command{
		Use:   "keyframe",
		Short: "Manage a clip's keyframe timeline",
	}

	keyframeCmd.AddCommand(newKeyframeAddCommand(ctx))
	keyframeCmd.AddCommand(newKeyframeListCommand(ctx))
	keyframeCmd.AddCommand(newKeyframeRemoveCommand(ctx))
	keyframeCmd.AddCommand(newKeyframeMoveCommand(ctx))
	keyframeCmd.AddCommand(newKeyframeCurveCommand(ctx))
	keyframeCmd.AddCommand(newKeyframeClearCommand(ctx))

	return keyframeCmd
}

// loadClip fetches the clip and its track, failing on a missing clip.
func loadClip(ctx context.Context, store *project.Store, id int64) (*project.Clip, *keyframe.Track, error) {
	clip, err := store.GetClip(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if clip == nil {
		return nil, nil, fmt.Errorf("clip %d not found", id)
	}
	track, err := store.LoadTrack(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return clip, track, nil
}

func newKeyframeAddCommand(ctx *commandContext) *cobra.Command {
	var rectFlag string
	var circleFlag string
	var curveFlag string

	cmd := &cobra.Command{
		Use:   "add <clip-id> <timestamp>",
		Short: "Add or overwrite a keyframe at a timestamp",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			ts, err := parseTimestamp(args[1])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}

			defaultCurve, err := keyframe.ParseCurve(cfg.Keyframes.DefaultInterpolation)
			if err != nil {
				defaultCurve = keyframe.CurveLinear
			}
			if curveFlag != "" {
				if defaultCurve, err = keyframe.ParseCurve(curveFlag); err != nil {
					return err
				}
			}

			// Drive the edit through the session so the new keyframe picks
			// up the interpolated state at the playhead before the explicit
			// geometry is applied.
			sess := session.New(
				session.WithLogger(ctx.ensureLogger()),
				session.WithDefaultCurve(defaultCurve),
			)
			sess.Bind(clip.ID, clip.Mode, track, crop.Default())
			sess.SetKeyframing(true)
			sess.SetPlayhead(ts)
			sess.BeginEdit()
			if rectFlag != "" {
				rect, err := parseRect(rectFlag)
				if err != nil {
					return err
				}
				sess.SetRect(rect)
			}
			if circleFlag != "" {
				center, radius, err := parseCircle(circleFlag)
				if err != nil {
					return err
				}
				sess.SetCircle(center, radius)
			}
			sess.EndEdit()

			if err := store.SaveTrack(cmd.Context(), clip.ID, sess.Track()); err != nil {
				return err
			}
			if !clip.KeyframingEnabled {
				clip.KeyframingEnabled = true
				if err := store.UpdateClip(cmd.Context(), clip); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keyframe recorded at %gs (%s)\n", ts, defaultCurve)
			return nil
		},
	}

	cmd.Flags().StringVar(&rectFlag, "rect", "", "Crop rectangle as x,y,w,h (normalized)")
	cmd.Flags().StringVar(&circleFlag, "circle", "", "Crop circle as cx,cy,r (normalized)")
	cmd.Flags().StringVar(&curveFlag, "curve", "", "Interpolation curve (linear, ease_in, ease_out, ease_in_out, hold)")
	return cmd
}

func newKeyframeListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list <clip-id>",
		Short: "List a clip's keyframes",
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
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, track.Keyframes())
			}
			printKeyframeTable(cmd.OutOrStdout(), track, clip.Mode)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}

func newKeyframeRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <clip-id> <keyframe-id>",
		Short: "Remove a keyframe",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			if !track.Remove(args[1]) {
				return fmt.Errorf("keyframe %s not found", args[1])
			}
			if err := store.SaveTrack(cmd.Context(), clip.ID, track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keyframe %s removed\n", args[1])
			return nil
		},
	}
}

func newKeyframeMoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "move <clip-id> <keyframe-id> <timestamp>",
		Short: "Move a keyframe to a new timestamp",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			ts, err := parseTimestamp(args[2])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			if !track.Move(args[1], ts) {
				return fmt.Errorf("cannot move keyframe %s to %gs (missing id or colliding slot)", args[1], ts)
			}
			if err := store.SaveTrack(cmd.Context(), clip.ID, track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keyframe %s moved to %gs\n", args[1], ts)
			return nil
		},
	}
}

func newKeyframeCurveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "curve <clip-id> <keyframe-id> <curve>",
		Short: "Change a keyframe's interpolation curve",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
			if err != nil {
				return err
			}
			curve, err := keyframe.ParseCurve(args[2])
			if err != nil {
				return err
			}
			store, err := ctx.ensureStore()
			if err != nil {
				return err
			}
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			if !track.SetCurve(args[1], curve) {
				return fmt.Errorf("keyframe %s not found", args[1])
			}
			if err := store.SaveTrack(cmd.Context(), clip.ID, track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Keyframe %s set to %s\n", args[1], curve)
			return nil
		},
	}
}

func newKeyframeClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <clip-id>",
		Short: "Remove every keyframe from a clip",
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
			clip, track, err := loadClip(cmd.Context(), store, id)
			if err != nil {
				return err
			}
			track.Clear()
			if err := store.SaveTrack(cmd.Context(), clip.ID, track); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared keyframes for clip %d\n", id)
			return nil
		},
	}
}

func printKeyframeTable(out io.Writer, track *keyframe.Track, mode crop.Mode) {
	if track.Len() == 0 {
		fmt.Fprintln(out, "No keyframes")
		return
	}
	rows := make([][]string, 0, track.Len())
	for _, kf := range track.Keyframes() {
		rows = append(rows, []string{
			kf.ID,
			strconv.FormatFloat(kf.Timestamp, 'g', -1, 64),
			string(kf.Curve),
			describeState(kf.State, mode),
		})
	}
	headers := []string{"ID", "Time", "Curve", "State"}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}
