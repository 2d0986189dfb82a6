package export

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"github.com/jinzhu/copier"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"cropaway/internal/crop"
	"cropaway/internal/interpolate"
	"cropaway/internal/keyframe"
	"cropaway/internal/mask"
	"cropaway/internal/services"
)

// perWorkerBytes is a rough per-worker memory budget used when sizing the
// sampling pool from available system memory.
const perWorkerBytes = 64 << 20

// Sampler evaluates the crop state for arbitrary timestamps against a frozen
// snapshot of a clip's keyframe track.
type Sampler struct {
	track *keyframe.Track
	mode  crop.Mode
	base  crop.State
}

// Result is one sampled frame.
type Result struct {
	Index     int
	Timestamp float64
	State     crop.State
}

// MaskResult is one sampled frame rendered to a binary mask.
type MaskResult struct {
	Index     int
	Timestamp float64
	State     crop.State
	Mask      mask.Bitmap
}

// NewSampler snapshots the given track and returns a sampler for it. The
// snapshot is a deep copy so the caller's track can keep mutating while an
// export runs. The base state is used when the track is empty.
func NewSampler(track *keyframe.Track, mode crop.Mode, base crop.State) (*Sampler, error) {
	if !mode.Valid() {
		return nil, services.Wrap(services.ErrValidation, "export", "sampler", fmt.Sprintf("unknown crop mode %q", mode), nil)
	}

	snapshot := []keyframe.Keyframe{}
	tolerance := keyframe.DefaultTolerance
	if track != nil {
		tolerance = track.Tolerance()
		source := track.Keyframes()
		if err := copier.CopyWithOption(&snapshot, &source, copier.Option{DeepCopy: true}); err != nil {
			return nil, services.Wrap(services.ErrTransient, "export", "sampler", "snapshot keyframe track", err)
		}
	}

	return &Sampler{
		track: keyframe.FromKeyframes(snapshot, tolerance),
		mode:  mode,
		base:  base.Clone(),
	}, nil
}

// Mode returns the crop mode the sampler renders.
func (s *Sampler) Mode() crop.Mode {
	return s.mode
}

// Len returns the number of keyframes in the snapshot.
func (s *Sampler) Len() int {
	return s.track.Len()
}

// At returns the crop state at timestamp t.
func (s *Sampler) At(t float64) crop.State {
	return interpolate.Sample(s.track, s.mode, t, s.base)
}

// FrameTimes returns the timestamp of every frame in a clip of the given
// duration at the given frame rate. The schedule starts at zero and covers
// the half-open interval [0, duration).
func FrameTimes(duration, fps float64) []float64 {
	if duration <= 0 || fps <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return nil
	}
	count := int(math.Ceil(duration * fps))
	times := make([]float64, count)
	for i := range times {
		times[i] = float64(i) / fps
	}
	return times
}

// Workers returns the sampling pool size. A positive requested value wins;
// otherwise the size is derived from the logical CPU count, capped by
// available memory.
func Workers(requested int) int {
	if requested > 0 {
		return requested
	}

	workers := runtime.NumCPU()
	if counts, err := cpu.Counts(true); err == nil && counts > 0 {
		workers = counts
	}
	if vm, err := mem.VirtualMemory(); err == nil && vm.Available > 0 {
		byMemory := int(vm.Available / perWorkerBytes)
		if byMemory >= 1 && byMemory < workers {
			workers = byMemory
		}
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Run samples every timestamp in the schedule, fanning the work out across
// the given number of workers. Results come back ordered by schedule index
// regardless of completion order.
func (s *Sampler) Run(ctx context.Context, times []float64, workers int) ([]Result, error) {
	results := make([]Result, len(times))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(Workers(workers))
	for i, t := range times {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Index: i, Timestamp: t, State: s.At(t)}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "sample", "sampling run aborted", err)
	}
	return results, nil
}

// RunMasks samples every timestamp and rasterizes each state to a binary
// mask of the given pixel dimensions.
func (s *Sampler) RunMasks(ctx context.Context, times []float64, workers, width, height int) ([]MaskResult, error) {
	results := make([]MaskResult, len(times))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(Workers(workers))
	for i, t := range times {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			state := s.At(t)
			bitmap, err := mask.Rasterize(state, s.mode, width, height)
			if err != nil {
				return err
			}
			results[i] = MaskResult{Index: i, Timestamp: t, State: state, Mask: bitmap}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, services.Wrap(services.ErrTransient, "export", "rasterize", "mask run aborted", err)
	}
	return results, nil
}
