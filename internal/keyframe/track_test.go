package keyframe_test

import (
	"math"
	"sort"
	"testing"

	"cropaway/internal/crop"
	"cropaway/internal/keyframe"
)

func stateWithRectX(x float64) crop.State {
	state := crop.Default()
	state.Rect.X = x
	return state
}

func TestInsertKeepsAscendingOrder(t *testing.T) {
	track := keyframe.NewTrack()
	for _, ts := range []float64{3.0, 1.0, 2.0, 0.0, 5.5} {
		if _, ok := track.Insert(ts, crop.Default(), keyframe.CurveLinear, keyframe.Reject); !ok {
			t.Fatalf("Insert(%v) rejected", ts)
		}
	}
	kfs := track.Keyframes()
	if !sort.SliceIsSorted(kfs, func(i, j int) bool { return kfs[i].Timestamp < kfs[j].Timestamp }) {
		t.Fatalf("keyframes not sorted: %+v", kfs)
	}
	if track.Len() != 5 {
		t.Fatalf("Len = %d, want 5", track.Len())
	}
}

func TestInsertCollisionPolicies(t *testing.T) {
	track := keyframe.NewTrack()
	first, _ := track.Insert(1.0, stateWithRectX(0.1), keyframe.CurveEaseIn, keyframe.Reject)

	if _, ok := track.Insert(1.03, stateWithRectX(0.2), keyframe.CurveLinear, keyframe.Reject); ok {
		t.Fatal("Reject policy allowed a colliding insert")
	}
	if track.Len() != 1 {
		t.Fatalf("Len = %d after rejected insert, want 1", track.Len())
	}

	updated, ok := track.Insert(1.03, stateWithRectX(0.2), keyframe.CurveLinear, keyframe.Overwrite)
	if !ok {
		t.Fatal("Overwrite policy rejected a colliding insert")
	}
	if updated.ID != first.ID {
		t.Fatal("overwrite minted a new identity")
	}
	if updated.Timestamp != 1.0 {
		t.Fatalf("overwrite moved the keyframe to %v", updated.Timestamp)
	}
	if updated.Curve != keyframe.CurveEaseIn {
		t.Fatalf("overwrite replaced the curve: %v", updated.Curve)
	}
	if updated.State.Rect.X != 0.2 {
		t.Fatalf("overwrite did not replace the state: %v", updated.State.Rect.X)
	}
}

func TestInsertRejectsInvalidTimestamps(t *testing.T) {
	track := keyframe.NewTrack()
	for _, ts := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5} {
		if _, ok := track.Insert(ts, crop.Default(), keyframe.CurveLinear, keyframe.Overwrite); ok {
			t.Fatalf("Insert(%v) accepted", ts)
		}
	}
	if track.Len() != 0 {
		t.Fatalf("Len = %d, want 0", track.Len())
	}
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	track := keyframe.NewTrack()
	kf, _ := track.Insert(1.0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)

	if track.Remove("missing") {
		t.Fatal("Remove of unknown id reported success")
	}
	if track.Len() != 1 {
		t.Fatal("Remove of unknown id changed the track")
	}
	if !track.Remove(kf.ID) {
		t.Fatal("Remove of known id failed")
	}
	if track.Len() != 0 {
		t.Fatal("keyframe not removed")
	}
}

func TestMoveCollisionIsRejected(t *testing.T) {
	track := keyframe.NewTrack()
	a, _ := track.Insert(1.0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)
	track.Insert(3.0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)

	if track.Move(a.ID, 2.96) {
		t.Fatal("Move into another keyframe's tolerance window succeeded")
	}
	moved, _ := track.ByID(a.ID)
	if moved.Timestamp != 1.0 {
		t.Fatalf("rejected move changed timestamp to %v", moved.Timestamp)
	}

	// Moving within its own tolerance window is fine.
	if !track.Move(a.ID, 1.01) {
		t.Fatal("Move within own window rejected")
	}
	if !track.Move(a.ID, 4.0) {
		t.Fatal("Move past the other keyframe rejected")
	}
	kfs := track.Keyframes()
	if kfs[0].Timestamp != 3.0 || kfs[1].Timestamp != 4.0 {
		t.Fatalf("track not re-sorted after move: %+v", kfs)
	}
}

func TestQueryBracketing(t *testing.T) {
	track := keyframe.NewTrack()
	first, _ := track.Insert(1.0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)
	last, _ := track.Insert(3.0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)

	before, after := track.Query(0.0)
	if before != nil || after == nil || after.ID != first.ID {
		t.Fatalf("Query before first = (%v, %v)", before, after)
	}

	before, after = track.Query(10.0)
	if after != nil || before == nil || before.ID != last.ID {
		t.Fatalf("Query after last = (%v, %v)", before, after)
	}

	before, after = track.Query(2.0)
	if before == nil || after == nil || before.ID != first.ID || after.ID != last.ID {
		t.Fatalf("Query inside segment = (%v, %v)", before, after)
	}

	before, after = track.Query(3.02)
	if before == nil || after == nil || before.ID != last.ID || after.ID != last.ID {
		t.Fatal("Query within tolerance of a keyframe should return a zero-length segment")
	}

	before, after = track.Query(math.NaN())
	if before != nil || after == nil || after.ID != first.ID {
		t.Fatal("Query with NaN should behave as before-first")
	}
}

func TestQueryReturnsCopies(t *testing.T) {
	track := keyframe.NewTrack()
	kf, _ := track.Insert(1.0, stateWithRectX(0.1), keyframe.CurveLinear, keyframe.Reject)

	before, _ := track.Query(5.0)
	before.State.Rect.X = 0.9
	before.Timestamp = 99

	stored, _ := track.ByID(kf.ID)
	if stored.State.Rect.X != 0.1 || stored.Timestamp != 1.0 {
		t.Fatal("mutating Query result leaked into track storage")
	}
}

func TestFromKeyframesSortsInput(t *testing.T) {
	kfs := []keyframe.Keyframe{
		keyframe.New(2.0, crop.Default(), keyframe.CurveLinear),
		keyframe.New(0.5, crop.Default(), keyframe.CurveHold),
	}
	track := keyframe.FromKeyframes(kfs, 0)
	if track.Tolerance() != keyframe.DefaultTolerance {
		t.Fatalf("tolerance fallback = %v", track.Tolerance())
	}
	if first, _ := track.First(); first.Timestamp != 0.5 {
		t.Fatalf("first = %v, want 0.5", first.Timestamp)
	}
}

func TestSetCurveAndState(t *testing.T) {
	track := keyframe.NewTrack()
	kf, _ := track.Insert(1.0, crop.Default(), keyframe.CurveLinear, keyframe.Reject)

	if track.SetCurve(kf.ID, keyframe.Curve("bogus")) {
		t.Fatal("SetCurve accepted an invalid curve")
	}
	if !track.SetCurve(kf.ID, keyframe.CurveHold) {
		t.Fatal("SetCurve failed for known id")
	}
	if !track.SetState(kf.ID, stateWithRectX(0.4)) {
		t.Fatal("SetState failed for known id")
	}
	updated, _ := track.ByID(kf.ID)
	if updated.Curve != keyframe.CurveHold || updated.State.Rect.X != 0.4 {
		t.Fatalf("updates not applied: %+v", updated)
	}
}

func TestParseCurve(t *testing.T) {
	cases := map[string]keyframe.Curve{
		"linear":      keyframe.CurveLinear,
		"Ease-In":     keyframe.CurveEaseIn,
		"EASE_OUT":    keyframe.CurveEaseOut,
		"ease-in-out": keyframe.CurveEaseInOut,
		" hold ":      keyframe.CurveHold,
	}
	for raw, want := range cases {
		got, err := keyframe.ParseCurve(raw)
		if err != nil {
			t.Fatalf("ParseCurve(%q) failed: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseCurve(%q) = %q, want %q", raw, got, want)
		}
	}
	if _, err := keyframe.ParseCurve("bounce"); err == nil {
		t.Fatal("ParseCurve accepted an unknown curve")
	}
}
