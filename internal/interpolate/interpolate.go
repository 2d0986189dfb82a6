package interpolate

import (
	"cropaway/internal/crop"
	"cropaway/internal/geometry"
	"cropaway/internal/keyframe"
)

// segmentEpsilon guards the local-parameter division: segments shorter than
// this snap to their starting keyframe instead of dividing by near-zero.
const segmentEpsilon = 1e-9

// Sample returns the crop state for the given time. current is the caller's
// live state, returned unchanged when the track is empty; animation needs at
// least two keyframes, and a single keyframe defines a static crop for every
// query time.
func Sample(track *keyframe.Track, mode crop.Mode, t float64, current crop.State) crop.State {
	if track == nil || track.Len() == 0 {
		return current
	}
	if track.Len() == 1 {
		first, _ := track.First()
		return first.State.Clone()
	}

	before, after := track.Query(t)
	switch {
	case before == nil:
		return after.State.Clone()
	case after == nil:
		return before.State.Clone()
	}

	span := after.Timestamp - before.Timestamp
	if span <= segmentEpsilon {
		return before.State.Clone()
	}
	localT := geometry.Clamp01((t - before.Timestamp) / span)
	easedT := Ease(before.Curve, localT)
	return Blend(before.State, after.State, easedT, mode)
}

// Blend mixes two crop states at an eased parameter, interpolating only the
// fields relevant to the active mode. Fields belonging to other modes are
// carried over from a, untouched. AI mask blobs are never interpolated; only
// the bounding box blends. Freehand vertex lists blend point-for-point only
// when both states agree on the vertex count; a mismatch holds a's shape,
// since no per-vertex correspondence is defined across differing counts.
func Blend(a, b crop.State, t float64, mode crop.Mode) crop.State {
	out := a.Clone()
	switch mode {
	case crop.ModeRectangle:
		out.Rect = a.Rect.Lerp(b.Rect, t)
	case crop.ModeCircle:
		out.CircleCenter = a.CircleCenter.Lerp(b.CircleCenter, t)
		out.CircleRadius = geometry.Lerp(a.CircleRadius, b.CircleRadius, t)
	case crop.ModeFreehand:
		out.FreehandPath = blendPath(a.FreehandPath, b.FreehandPath, t)
		out.FreehandPoints = blendPoints(a.FreehandPoints, b.FreehandPoints, t)
	case crop.ModeAI:
		out.AIBox = a.AIBox.Lerp(b.AIBox, t)
	}
	return out
}

func blendPath(a, b []crop.PathVertex, t float64) []crop.PathVertex {
	if len(a) == 0 {
		return nil
	}
	out := make([]crop.PathVertex, len(a))
	if len(a) != len(b) {
		copy(out, a)
		return out
	}
	for i := range a {
		out[i] = a[i].Lerp(b[i], t)
	}
	return out
}

func blendPoints(a, b []geometry.Point, t float64) []geometry.Point {
	if len(a) == 0 {
		return nil
	}
	out := make([]geometry.Point, len(a))
	if len(a) != len(b) {
		copy(out, a)
		return out
	}
	for i := range a {
		out[i] = a[i].Lerp(b[i], t)
	}
	return out
}
