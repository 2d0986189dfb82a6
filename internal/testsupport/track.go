package testsupport

import (
	"testing"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
	"cropaway/internal/keyframe"
)

// RectState returns a crop state with the given rectangle and defaults for
// every other mode.
func RectState(x, y, w, h float64) crop.State {
	state := crop.Default()
	state.Rect = geometry.Rect{X: x, Y: y, Width: w, Height: h}
	return state
}

// MustInsert adds a keyframe to the track and fails the test on collision.
func MustInsert(t testing.TB, track *keyframe.Track, ts float64, state crop.State, curve keyframe.Curve) keyframe.Keyframe {
	t.Helper()

	kf, ok := track.Insert(ts, state, curve, keyframe.Reject)
	if !ok {
		t.Fatalf("track.Insert(%g): collision", ts)
	}
	return kf
}

// LinearTrack builds a track holding rectangle keyframes at the given
// timestamps, sweeping the crop from the top-left quadrant to the
// bottom-right.
func LinearTrack(t testing.TB, timestamps ...float64) *keyframe.Track {
	t.Helper()

	track := keyframe.NewTrack()
	for i, ts := range timestamps {
		frac := 0.0
		if len(timestamps) > 1 {
			frac = float64(i) / float64(len(timestamps)-1)
		}
		MustInsert(t, track, ts, RectState(frac*0.5, frac*0.5, 0.5, 0.5), keyframe.CurveLinear)
	}
	return track
}
