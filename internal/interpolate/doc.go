// Package interpolate computes the exact crop state for any query time from
// a clip's keyframe track.
//
// Sample is a pure function of (track contents, crop mode, timestamp): no
// hidden state, no dependence on call order. The export pipeline and the
// interactive preview both call it, which is what guarantees that a frame
// sampled during export is bit-identical to the same timestamp scrubbed in
// the editor.
//
// Out-of-range queries clamp to the nearest keyframe rather than
// extrapolating, a single keyframe defines a static crop, and an empty track
// passes the caller's current state through unchanged.
package interpolate
