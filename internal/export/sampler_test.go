package export_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cropaway/internal/crop"
	"cropaway/internal/export"
	"cropaway/internal/geometry"
	"cropaway/internal/keyframe"
)

func buildTrack(t *testing.T) *keyframe.Track {
	t.Helper()
	track := keyframe.NewTrack()

	a := crop.Default()
	a.Rect = geometry.Rect{X: 0, Y: 0, Width: 0.5, Height: 0.5}
	if _, ok := track.Insert(0, a, keyframe.CurveLinear, keyframe.Reject); !ok {
		t.Fatal("insert first keyframe")
	}

	b := crop.Default()
	b.Rect = geometry.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}
	if _, ok := track.Insert(10, b, keyframe.CurveEaseInOut, keyframe.Reject); !ok {
		t.Fatal("insert second keyframe")
	}
	return track
}

func TestFrameTimes(t *testing.T) {
	times := export.FrameTimes(1, 30)
	if len(times) != 30 {
		t.Fatalf("len(FrameTimes(1, 30)) = %d, want 30", len(times))
	}
	if times[0] != 0 {
		t.Fatalf("first frame time = %v, want 0", times[0])
	}
	if times[29] >= 1 {
		t.Fatalf("last frame time = %v, want < 1", times[29])
	}

	if times := export.FrameTimes(0, 30); times != nil {
		t.Fatalf("FrameTimes(0, 30) = %v, want nil", times)
	}
	if times := export.FrameTimes(1, 0); times != nil {
		t.Fatalf("FrameTimes(1, 0) = %v, want nil", times)
	}
}

func TestSamplerSnapshotIsolation(t *testing.T) {
	track := buildTrack(t)
	sampler, err := export.NewSampler(track, crop.ModeRectangle, crop.Default())
	if err != nil {
		t.Fatalf("NewSampler returned error: %v", err)
	}

	before := sampler.At(5)
	track.Clear()
	after := sampler.At(5)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("snapshot changed after source track mutation:\n%s", diff)
	}
	if sampler.Len() != 2 {
		t.Fatalf("snapshot length = %d, want 2", sampler.Len())
	}
}

func TestSamplerEmptyTrackUsesBase(t *testing.T) {
	base := crop.Default()
	base.Rect = geometry.Rect{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.3}

	sampler, err := export.NewSampler(keyframe.NewTrack(), crop.ModeRectangle, base)
	if err != nil {
		t.Fatalf("NewSampler returned error: %v", err)
	}
	if got := sampler.At(42); got.Rect != base.Rect {
		t.Fatalf("At on empty track = %+v, want base rect %+v", got.Rect, base.Rect)
	}
}

func TestRunMatchesSerialSampling(t *testing.T) {
	track := buildTrack(t)
	sampler, err := export.NewSampler(track, crop.ModeRectangle, crop.Default())
	if err != nil {
		t.Fatalf("NewSampler returned error: %v", err)
	}

	times := export.FrameTimes(10, 24)
	results, err := sampler.Run(context.Background(), times, 8)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != len(times) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(times))
	}
	for i, got := range results {
		if got.Index != i {
			t.Fatalf("results[%d].Index = %d", i, got.Index)
		}
		want := sampler.At(times[i])
		if diff := cmp.Diff(want, got.State); diff != "" {
			t.Fatalf("frame %d differs from serial sampling:\n%s", i, diff)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	track := buildTrack(t)
	sampler, err := export.NewSampler(track, crop.ModeRectangle, crop.Default())
	if err != nil {
		t.Fatalf("NewSampler returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := sampler.Run(ctx, export.FrameTimes(10, 24), 2); err == nil {
		t.Fatal("expected error from cancelled run")
	}
}

func TestRunMasks(t *testing.T) {
	track := buildTrack(t)
	sampler, err := export.NewSampler(track, crop.ModeRectangle, crop.Default())
	if err != nil {
		t.Fatalf("NewSampler returned error: %v", err)
	}

	results, err := sampler.RunMasks(context.Background(), []float64{0, 5, 10}, 2, 64, 64)
	if err != nil {
		t.Fatalf("RunMasks returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	// First frame crops the top-left quadrant.
	if !results[0].Mask.At(16, 16) {
		t.Fatal("expected top-left pixel inside first frame mask")
	}
	if results[0].Mask.At(48, 48) {
		t.Fatal("expected bottom-right pixel outside first frame mask")
	}
	// Last frame crops the bottom-right quadrant.
	if !results[2].Mask.At(48, 48) {
		t.Fatal("expected bottom-right pixel inside last frame mask")
	}
}

func TestWorkers(t *testing.T) {
	if got := export.Workers(4); got != 4 {
		t.Fatalf("Workers(4) = %d, want 4", got)
	}
	if got := export.Workers(0); got < 1 {
		t.Fatalf("Workers(0) = %d, want >= 1", got)
	}
}
