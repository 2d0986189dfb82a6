package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"cropaway/internal/crop"
	"cropaway/internal/export"
	"cropaway/internal/logging"
	"cropaway/internal/mask"
	"cropaway/internal/project"
	"cropaway/internal/services"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var fps float64
	var workers int
	var maskDir string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "export <clip-id>",
		Short: "Sample every frame of a clip, optionally writing mask files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClipID(args[0])
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
			if clip.Duration <= 0 {
				return fmt.Errorf("clip %d has no duration; set one with `cropaway clip add --duration`", id)
			}
			if fps <= 0 {
				fps = cfg.Export.FPS
			}
			if workers <= 0 {
				workers = cfg.Export.Workers
			}

			runCtx := services.WithClipID(services.WithOperation(cmd.Context(), "export"), clip.ID)

			lock := project.NewExportLock(cfg)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			logger := logging.WithClip(ctx.ensureLogger(), clip.ID)
			logger.Info("export started",
				"mode", string(clip.Mode),
				"fps", fps,
				"duration", clip.Duration,
				"keyframes", track.Len(),
			)
			start := time.Now()

			sampler, err := export.NewSampler(track, clip.Mode, crop.Default())
			if err != nil {
				return err
			}
			times := export.FrameTimes(clip.Duration, fps)

			var written int
			if maskDir != "" {
				results, err := sampler.RunMasks(runCtx, times, workers, cfg.Export.MaskWidth, cfg.Export.MaskHeight)
				if err != nil {
					return err
				}
				if err := os.MkdirAll(maskDir, 0o755); err != nil {
					return fmt.Errorf("create mask directory %q: %w", maskDir, err)
				}
				for _, result := range results {
					encoded, err := mask.Encode(result.Mask)
					if err != nil {
						return fmt.Errorf("encode frame %d: %w", result.Index, err)
					}
					name := filepath.Join(maskDir, fmt.Sprintf("frame_%06d.mask", result.Index))
					if err := os.WriteFile(name, encoded, 0o644); err != nil {
						return fmt.Errorf("write frame %d: %w", result.Index, err)
					}
					written++
				}
			} else {
				if _, err := sampler.Run(runCtx, times, workers); err != nil {
					return err
				}
			}

			elapsed := time.Since(start)
			logger.Info("export finished", "frames", len(times), "masks", written, "elapsed", elapsed)

			if asJSON {
				return writeJSON(cmd, map[string]any{
					"clip":    clip.ID,
					"frames":  len(times),
					"masks":   written,
					"fps":     fps,
					"elapsed": elapsed.String(),
				})
			}

			out := cmd.OutOrStdout()
			summary := fmt.Sprintf("Exported %d frames at %g fps in %s", len(times), fps, elapsed.Round(time.Millisecond))
			if written > 0 {
				summary += fmt.Sprintf(" (%d masks in %s)", written, maskDir)
			}
			if shouldColorize(os.Stdout) {
				summary = "\x1b[32m" + summary + "\x1b[0m"
			}
			fmt.Fprintln(out, summary)
			return nil
		},
	}

	cmd.Flags().Float64Var(&fps, "fps", 0, "Frame rate for the sample schedule (defaults from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel sampling workers (0 sizes from the machine)")
	cmd.Flags().StringVar(&maskDir, "masks", "", "Write encoded mask files into this directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON output")
	return cmd
}
