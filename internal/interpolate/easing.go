package interpolate

import "cropaway/internal/keyframe"

// Ease maps a local segment parameter in [0,1] through the named easing
// curve. Unknown curves fall back to linear. Hold pins the segment to its
// starting keyframe for its entire duration; the jump to the next keyframe
// happens when the query time reaches it, which the track resolves as a
// zero-length segment rather than through easing.
func Ease(curve keyframe.Curve, t float64) float64 {
	switch curve {
	case keyframe.CurveEaseIn:
		return t * t
	case keyframe.CurveEaseOut:
		inv := 1 - t
		return 1 - inv*inv
	case keyframe.CurveEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		inv := -2*t + 2
		return 1 - inv*inv/2
	case keyframe.CurveHold:
		return 0
	default:
		return t
	}
}
