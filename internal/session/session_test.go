package session_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"cropaway/internal/crop"
	"cropaway/internal/geometry"
	"cropaway/internal/keyframe"
	"cropaway/internal/session"
)

func boundSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New()
	s.Bind(1, crop.ModeRectangle, keyframe.NewTrack(), crop.Default())
	return s
}

func TestBindResetsToFirstKeyframeOrDefaults(t *testing.T) {
	s := session.New()
	defaults := crop.Default()
	defaults.Rect = geometry.Rect{X: 0.1, Y: 0.1, Width: 0.5, Height: 0.5}
	s.Bind(7, crop.ModeRectangle, keyframe.NewTrack(), defaults)
	if got := s.Live(); got.Rect != defaults.Rect {
		t.Fatalf("live = %+v, want clip defaults", got.Rect)
	}
	if s.Phase() != session.PhaseIdle {
		t.Fatalf("phase = %s, want idle", s.Phase())
	}

	track := keyframe.NewTrack()
	snap := crop.Default()
	snap.Rect = geometry.Rect{X: 0.3, Y: 0.3, Width: 0.2, Height: 0.2}
	track.Insert(2.0, snap, keyframe.CurveLinear, keyframe.Reject)
	s.Bind(7, crop.ModeRectangle, track, defaults)
	if got := s.Live(); got.Rect != snap.Rect {
		t.Fatalf("live = %+v, want first keyframe state", got.Rect)
	}
}

func TestEndEditInsertsExactlyOneKeyframe(t *testing.T) {
	s := boundSession(t)
	s.SetKeyframing(true)
	s.SetPlayhead(1.5)

	s.BeginEdit()
	s.SetRect(geometry.Rect{X: 0.2, Y: 0.2, Width: 0.4, Height: 0.4})
	s.EndEdit()

	if s.Track().Len() != 1 {
		t.Fatalf("keyframes = %d, want 1", s.Track().Len())
	}
	kf := s.Track().At(0)
	if kf.Timestamp != 1.5 {
		t.Fatalf("keyframe timestamp = %v, want playhead 1.5", kf.Timestamp)
	}
	if kf.Curve != keyframe.CurveLinear {
		t.Fatalf("keyframe curve = %s, want default linear", kf.Curve)
	}

	// A second edit at the same playhead overwrites, never duplicates.
	s.BeginEdit()
	s.SetRect(geometry.Rect{X: 0.5, Y: 0.5, Width: 0.3, Height: 0.3})
	s.EndEdit()
	if s.Track().Len() != 1 {
		t.Fatalf("keyframes = %d after re-edit, want 1", s.Track().Len())
	}
	if got := s.Track().At(0).State.Rect.X; got != 0.5 {
		t.Fatalf("overwritten keyframe rect.x = %v, want 0.5", got)
	}
}

func TestDragGuardBlocksPlaybackOverwrite(t *testing.T) {
	s := boundSession(t)
	s.SetKeyframing(true)

	a := crop.Default()
	a.Rect = geometry.Rect{X: 0, Y: 0, Width: 0.5, Height: 0.5}
	b := crop.Default()
	b.Rect = geometry.Rect{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5}
	s.Track().Insert(0, a, keyframe.CurveLinear, keyframe.Reject)
	s.Track().Insert(2, b, keyframe.CurveLinear, keyframe.Reject)

	edited := geometry.Rect{X: 0.3, Y: 0.1, Width: 0.2, Height: 0.2}
	s.BeginEdit()
	s.SetRect(edited)
	for _, ts := range []float64{0.5, 1.0, 1.5} {
		s.SetPlayhead(ts)
	}
	if got := s.Live(); got.Rect != edited {
		t.Fatalf("playback overwrote live state mid-drag: %+v", got.Rect)
	}
	if s.Phase() != session.PhaseLiveEditing {
		t.Fatalf("phase = %s, want live_editing", s.Phase())
	}
	s.EndEdit()

	// After the drag ends, playback drives again.
	s.SetPlayhead(1.0)
	if got := s.Live(); got.Rect == edited {
		t.Fatal("playback did not resume after drag end")
	}
	if s.Phase() != session.PhasePlaybackDriven {
		t.Fatalf("phase = %s, want playback_driven", s.Phase())
	}
}

func TestPlaybackLeavesStaticCropAlone(t *testing.T) {
	s := boundSession(t)
	manual := geometry.Rect{X: 0.25, Y: 0.25, Width: 0.5, Height: 0.5}
	s.SetRect(manual)

	// Keyframing disabled: playback never touches the live state.
	s.SetPlayhead(3.0)
	if got := s.Live(); got.Rect != manual {
		t.Fatalf("live = %+v, want manual crop preserved", got.Rect)
	}

	// Keyframing enabled but fewer than two keyframes: still untouched.
	s.SetKeyframing(true)
	s.Track().Insert(0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)
	s.SetPlayhead(5.0)
	if got := s.Live(); got.Rect != manual {
		t.Fatalf("live = %+v, want manual crop preserved with single keyframe", got.Rect)
	}
}

func TestSetModeIsDiscreteReset(t *testing.T) {
	s := boundSession(t)
	s.SetRect(geometry.Rect{X: 0.2, Y: 0.2, Width: 0.3, Height: 0.3})

	s.SetMode(crop.ModeCircle)
	if s.Mode() != crop.ModeCircle {
		t.Fatalf("mode = %s", s.Mode())
	}
	if diff := cmp.Diff(crop.Default(), s.Live()); diff != "" {
		t.Fatalf("mode switch should reset live state to defaults (-want +got):\n%s", diff)
	}
}

func TestListenersReceiveChangeTags(t *testing.T) {
	s := boundSession(t)
	var seen []session.Change
	s.Subscribe(func(changes []session.Change) {
		seen = append(seen, changes...)
	})

	s.SetRect(geometry.Rect{X: 0.1, Y: 0.1, Width: 0.5, Height: 0.5})
	s.BeginEdit()
	s.EndEdit()

	want := map[session.Change]bool{
		session.ChangeLiveState: true,
		session.ChangePhase:     true,
	}
	for _, c := range seen {
		delete(want, c)
	}
	if len(want) != 0 {
		t.Fatalf("missing change tags: %v (saw %v)", want, seen)
	}
}

func TestListenerReentrancyIsDropped(t *testing.T) {
	s := boundSession(t)
	s.SetKeyframing(true)
	s.Track().Insert(0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)
	s.Track().Insert(2, crop.Default(), keyframe.CurveLinear, keyframe.Reject)

	reentered := false
	s.Subscribe(func([]session.Change) {
		if !reentered {
			reentered = true
			// A listener driving the playhead from inside a notification
			// must not trigger a nested mutation.
			s.SetPlayhead(1.0)
		}
	})

	s.SetPlayhead(0.5)
	if s.Playhead() != 0.5 {
		t.Fatalf("playhead = %v, reentrant call should have been dropped", s.Playhead())
	}
}

func TestExplicitAddKeyframeRejectsCollision(t *testing.T) {
	s := boundSession(t)
	if _, ok := s.AddKeyframe(1.0, keyframe.CurveEaseIn); !ok {
		t.Fatal("first AddKeyframe failed")
	}
	if _, ok := s.AddKeyframe(1.02, keyframe.CurveLinear); ok {
		t.Fatal("colliding AddKeyframe should be rejected")
	}
	if s.Track().Len() != 1 {
		t.Fatalf("keyframes = %d, want 1", s.Track().Len())
	}
}

func TestClearKeyframesResetsLiveState(t *testing.T) {
	s := boundSession(t)
	s.AddKeyframe(0, keyframe.CurveLinear)
	s.AddKeyframe(2, keyframe.CurveLinear)
	s.SetRect(geometry.Rect{X: 0.4, Y: 0.4, Width: 0.1, Height: 0.1})

	s.ClearKeyframes()
	if s.Track().Len() != 0 {
		t.Fatal("track not cleared")
	}
	if diff := cmp.Diff(crop.Default(), s.Live()); diff != "" {
		t.Fatalf("live state not reset (-want +got):\n%s", diff)
	}
}

func TestNegativePlayheadClampsToZero(t *testing.T) {
	s := boundSession(t)
	s.SetPlayhead(-3)
	if s.Playhead() != 0 {
		t.Fatalf("playhead = %v, want 0", s.Playhead())
	}
}
